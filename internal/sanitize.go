package internal

import (
	"strings"
)

// Mode selects which characters Sanitize treats as illegal.
type Mode int

const (
	// ModeSegment cleans a single path component; directory separators are
	// illegal.
	ModeSegment Mode = iota
	// ModeFragment cleans a value that may legitimately span directories, so
	// "/" and "\" pass through.
	ModeFragment
)

// reservedChars are rejected on every platform, not just Windows.
const reservedChars = `:|?*"<>`

// Sanitize makes a name fragment safe to use in a filesystem path. Illegal
// characters become single spaces, space runs collapse, and trailing spaces
// and dots are trimmed together so the result is stable under re-application.
// It is total: any input, including empty, produces a (possibly empty) clean
// string. Characters outside the illegal set pass through verbatim.
func Sanitize(s string, mode Mode) string {
	s = strings.TrimSpace(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r < 0x20 || strings.ContainsRune(reservedChars, r):
			b.WriteByte(' ')
		case mode == ModeSegment && (r == '/' || r == '\\'):
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}

	out := b.String()
	for strings.Contains(out, "  ") {
		out = strings.ReplaceAll(out, "  ", " ")
	}
	out = strings.TrimSpace(out)

	return strings.TrimRight(out, " .")
}
