package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "ja***@example.com", MaskEmail("jane.doe@example.com"))
	assert.Equal(t, "j***@x.io", MaskEmail("j@x.io"))
	assert.Equal(t, "***", MaskEmail("not-an-email"))
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "***-***-0199", MaskPhone("+351 555 0199"))
	assert.Equal(t, "***-***", MaskPhone("12"))
}

func TestAnonymizedLeavesOriginalIntact(t *testing.T) {
	rec := testRecord()
	masked := rec.Anonymized()

	assert.Equal(t, "jane.doe@example.com", rec.Email)
	assert.Equal(t, "ja***@example.com", masked.Email)
	assert.Equal(t, "***-***-0199", masked.Phone)
	// Non-sensitive fields pass through untouched.
	assert.Equal(t, rec.CandidateName, masked.CandidateName)
}
