package normalize

import (
	"strings"
	"unicode/utf8"
)

// dropRune reports whether r must not reach storage: NUL and other ASCII
// controls (newline, carriage return and tab stay), DEL, and the C1 block
func dropRune(r rune) bool {
	switch {
	case r == '\n' || r == '\r' || r == '\t':
		return false
	case r < 0x20 || r == 0x7F:
		return true
	case r >= 0x80 && r <= 0x9F:
		return true
	}
	return false
}

// invalidByte reports whether the decode hit a lone invalid UTF-8 byte.
// A genuine U+FFFD in the input decodes with size 3 and is kept
func invalidByte(r rune, size int) bool {
	return r == utf8.RuneError && size == 1
}

// Sanitize strips control characters and invalid UTF-8 from s.
// The common case is already-clean input, so it scans first and only
// allocates when something actually has to go
func Sanitize(s string) string {
	dirty := -1
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if invalidByte(r, size) || dropRune(r) {
			dirty = i
			break
		}
		i += size
	}
	if dirty < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(s[:dirty])
	for i := dirty; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !invalidByte(r, size) && !dropRune(r) {
			// write the original bytes, no re-encode
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}
