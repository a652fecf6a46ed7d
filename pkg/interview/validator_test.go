package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		stage   Stage
		value   string
		wantOK  bool
		wantMsg string
	}{
		{"valid email", StageEmail, "jane.doe@example.com", true, ""},
		{"email with plus tag", StageEmail, "jane+jobs@example.co.uk", true, ""},
		{"invalid email", StageEmail, "not-an-email", false, validationErrors[StageEmail]},
		{"email missing tld", StageEmail, "jane@example", false, validationErrors[StageEmail]},
		{"email trimmed before check", StageEmail, "  jane@example.com  ", true, ""},

		{"phone with digits", StagePhone, "+1 (555) 010-0199", true, ""},
		{"phone single digit suffices", StagePhone, "call me at 5", true, ""},
		{"phone without digits", StagePhone, "my landline", false, validationErrors[StagePhone]},

		{"experience fresher", StageExperience, "fresher", true, ""},
		{"experience fresher mixed case", StageExperience, "FRESHER", true, ""},
		{"experience fresh graduate", StageExperience, "Fresh Graduate", true, ""},
		{"experience zero", StageExperience, "0", true, ""},
		{"experience years", StageExperience, "5 years", true, ""},
		{"experience words only", StageExperience, "abc", false, validationErrors[StageExperience]},

		{"name long enough", StageName, "Jo", true, ""},
		{"name too short", StageName, "J", false, "Please provide your full name (at least 2 characters)."},
		{"name counts runes not bytes", StageName, "Ü", false, "Please provide your full name (at least 2 characters)."},
		{"name two multibyte runes", StageName, "Üü", true, ""},

		{"techstack long enough", StageTechStack, "Go!", true, ""},
		{"techstack too short", StageTechStack, "Go", false, validationErrors[StageTechStack]},
		{"techstack counts runes not bytes", StageTechStack, "éé", false, validationErrors[StageTechStack]},
		{"techstack three multibyte runes", StageTechStack, "日本語", true, ""},

		{"position non-empty", StagePosition, "Backend Engineer", true, ""},
		{"position empty", StagePosition, "   ", false, "Please provide your position."},
		{"location non-empty", StageLocation, "Lisbon, Portugal", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := v.Validate(tt.stage, tt.value)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
