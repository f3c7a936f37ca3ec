// Package sanitizer normalizes vendor-supplied input before validation and
// storage. All functions are idempotent and never return errors; input that
// cannot be normalized is passed through trimmed so validation can reject it
// with a useful message.
package sanitizer

import (
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"

	"resourcehub/pkg/locale"
)

// NormalizeContact converts a contact number to E.164 where possible.
// Numbers that do not parse in any supported region are returned trimmed.
func NormalizeContact(contact string) string {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return ""
	}

	for _, region := range locale.CandidateRegions(contact) {
		parsed, err := phonenumbers.Parse(contact, region)
		if err != nil || !phonenumbers.IsValidNumber(parsed) {
			continue
		}
		return phonenumbers.Format(parsed, phonenumbers.E164)
	}
	return contact
}

// TrimAndNormalize collapses internal whitespace runs to single spaces and
// trims the ends.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}
	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}
