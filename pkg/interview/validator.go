package interview

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// validationErrors holds the canned retry messages per field.
var validationErrors = map[Stage]string{
	StageEmail:      "That doesn't look quite like a valid email. Could you please try again? (e.g., jane.doe@example.com)",
	StagePhone:      "Hmm, that doesn't seem to be a phone number. Could you please provide a number with digits?",
	StageExperience: "Could you please provide your experience as a number (like 2, 5, or 10)? If you're a recent grad, '0' or 'fresher' works perfectly!",
	StageTechStack:  "Could you please list out your technical skills? For example: Python, React, Docker, SQL",
}

// Validator checks candidate input against per-stage rules. It is stateless;
// retry bookkeeping lives in the session.
type Validator struct{}

// NewValidator creates a validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks value against the rule for stage. It returns true with an
// empty message on success, or false with a user-facing retry message.
// Values are trimmed before checking.
func (v *Validator) Validate(stage Stage, value string) (bool, string) {
	value = strings.TrimSpace(value)

	switch stage {
	case StageEmail:
		if emailRe.MatchString(value) {
			return true, ""
		}
		return false, validationErrors[StageEmail]

	case StagePhone:
		if containsDigit(value) {
			return true, ""
		}
		return false, validationErrors[StagePhone]

	case StageExperience:
		lowered := strings.ToLower(value)
		if lowered == "fresher" || lowered == "fresh graduate" || lowered == "0" || containsDigit(value) {
			return true, ""
		}
		return false, validationErrors[StageExperience]

	case StageName:
		if utf8.RuneCountInString(value) >= 2 {
			return true, ""
		}
		return false, "Please provide your full name (at least 2 characters)."

	case StageTechStack:
		if utf8.RuneCountInString(value) >= 3 {
			return true, ""
		}
		return false, validationErrors[StageTechStack]
	}

	// Any other stage accepts non-empty input.
	if len(value) > 0 {
		return true, ""
	}
	return false, fmt.Sprintf("Please provide your %s.", stage)
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
