package internal

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		mode  Mode
		want  string
	}{
		{"clean input", "One More Time", ModeSegment, "One More Time"},
		{"reserved characters", `what? really: "yes" | <no> *maybe*`, ModeSegment, "what really yes no maybe"},
		{"separators in segment mode", `AC/DC \ Back in Black`, ModeSegment, "AC DC Back in Black"},
		{"separators kept in fragment mode", "AC/DC", ModeFragment, "AC/DC"},
		{"backslash kept in fragment mode", `a\b`, ModeFragment, `a\b`},
		{"surrounding whitespace", "  padded  ", ModeSegment, "padded"},
		{"space runs collapse", "a   b    c", ModeSegment, "a b c"},
		{"trailing dots", "Vol. 2...", ModeSegment, "Vol. 2"},
		{"trailing dot then space", "a .", ModeSegment, "a"},
		{"control characters", "a\tb\nc", ModeSegment, "a b c"},
		{"empty", "", ModeSegment, ""},
		{"whitespace only", "   ", ModeSegment, ""},
		{"illegal only", `?*|`, ModeSegment, ""},
		{"cjk preserved", "宇多田ヒカル", ModeSegment, "宇多田ヒカル"},
		{"cyrillic preserved", "Кино – Группа крови", ModeSegment, "Кино – Группа крови"},
		{"diacritics preserved", "Björk: Jóga", ModeSegment, "Björk Jóga"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.input, tt.mode)
			if got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// Sanitize must be idempotent: the Placeholder Resolver and the Pattern
// Engine both apply it to the same values.
func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"", "   ", "a", `a/b:c*d`, "dots... and   spaces ", "宇多田ヒカル",
		`?<>|`, "x .", "CD2/", `weird\mix/of: everything?. .`,
	}
	for _, in := range inputs {
		for _, mode := range []Mode{ModeSegment, ModeFragment} {
			once := Sanitize(in, mode)
			twice := Sanitize(once, mode)
			if once != twice {
				t.Errorf("Sanitize(%q) not idempotent: %q then %q", in, once, twice)
			}
		}
	}
}

func TestSanitize_Totality(t *testing.T) {
	inputs := []string{
		"", " ", ".", "...", `////`, `:::`, "a  b..", "\x00\x01\x02", "ok",
	}
	for _, in := range inputs {
		got := Sanitize(in, ModeSegment)
		if strings.ContainsAny(got, reservedChars+`/\`) {
			t.Errorf("Sanitize(%q) = %q still contains illegal characters", in, got)
		}
		if strings.Contains(got, "  ") {
			t.Errorf("Sanitize(%q) = %q contains a double space", in, got)
		}
		if got != strings.TrimRight(strings.TrimSpace(got), " .") {
			t.Errorf("Sanitize(%q) = %q has untrimmed edges", in, got)
		}
	}
}
