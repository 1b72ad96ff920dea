package utils

import "strings"

// CanonicalUserID normalizes a raw transport identifier into the canonical
// form used as the storage key: the transport suffix (everything from the
// first "@" on, e.g. "@s.whatsapp.net") is dropped and all non-digit
// characters are stripped.
//
// Example:
//
//	CanonicalUserID("+49 171 1234567@s.whatsapp.net") == "491711234567"
func CanonicalUserID(raw string) string {
	if at := strings.IndexByte(raw, '@'); at >= 0 {
		raw = raw[:at]
	}

	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	return b.String()
}
