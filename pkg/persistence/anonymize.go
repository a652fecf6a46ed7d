package persistence

import (
	"fmt"
	"strings"
)

// MaskEmail hides most of an email's local part: "jane.doe@example.com"
// becomes "ja***@example.com". Values without an @ are masked entirely.
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return "***"
	}
	if len(local) > 2 {
		local = local[:2]
	}
	return fmt.Sprintf("%s***@%s", local, domain)
}

// MaskPhone keeps only the last four digits: "***-***-0199".
func MaskPhone(phone string) string {
	if len(phone) < 4 {
		return "***-***"
	}
	return fmt.Sprintf("***-***-%s", phone[len(phone)-4:])
}

// Anonymized returns a copy of the record with email and phone masked, for
// sharing outside the recruitment team.
func (rec *Interview) Anonymized() *Interview {
	masked := *rec
	if masked.Email != "" {
		masked.Email = MaskEmail(masked.Email)
	}
	if masked.Phone != "" {
		masked.Phone = MaskPhone(masked.Phone)
	}
	return &masked
}
