// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "US"

// Normalize reduces a raw address to the canonical digits-only lead key.
// Protocol tags ("whatsapp:"), a leading "+", spaces, and punctuation are all
// stripped. Empty input yields an empty key. The function is idempotent:
// normalizing an already-normalized key returns it unchanged, which matters
// because the key joins leads to their message history.
func Normalize(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}

	if idx := strings.IndexByte(trimmed, ':'); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}

	if number, err := phonenumbers.Parse(trimmed, defaultRegion); err == nil {
		if phonenumbers.IsValidNumber(number) {
			return digitsOnly(phonenumbers.Format(number, phonenumbers.E164))
		}
	}

	return digitsOnly(trimmed)
}

func digitsOnly(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
