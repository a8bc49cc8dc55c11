package ber

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// encodeText returns the UTF-8 octets of s. Ill-formed sequences are
// replaced with U+FFFD.
func encodeText(s string) []byte {
	if utf8.ValidString(s) {
		return []byte(s)
	}
	return sanitizeUTF8([]byte(s))
}

// decodeText interprets content as UTF-8. Ill-formed sequences are
// replaced with U+FFFD.
func decodeText(content []byte) string {
	if utf8.Valid(content) {
		return string(content)
	}
	return string(sanitizeUTF8(content))
}

// sanitizeUTF8 runs b through the x/text UTF-8 decoder, which substitutes
// U+FFFD for each ill-formed sequence.
func sanitizeUTF8(b []byte) []byte {
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return []byte(string([]rune(string(b))))
	}
	return out
}
