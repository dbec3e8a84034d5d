package internal

import (
	"path/filepath"
	"strings"
)

// Pattern describes how planned files are laid out under the library root.
type Pattern struct {
	Template  string `json:"template"`
	Extension string `json:"extension"`
}

// DefaultPattern returns the default layout pattern
func DefaultPattern() Pattern {
	return Pattern{
		Template:  "{artist_name}/{album_name} ({release_year})/{multi_disc_path}{track_num} - {track_name}.mp3",
		Extension: ".mp3",
	}
}

// FormatRelative expands the template with the resolved placeholders and
// returns the library-relative target path. ok is false when the pattern
// resolves to an empty path, which means the file has no plan and should be
// skipped.
//
// Resolved values may contain directory separators (multi_disc_path does, and
// so can artist names); the expanded string is split on both separator styles
// and each segment is sanitized independently, which keeps those directories
// intact while cleaning illegal characters within each component.
func (p Pattern) FormatRelative(placeholders map[string]string) (string, bool) {
	expanded := strings.TrimSpace(expand(p.Template, placeholders))
	if expanded == "" {
		return "", false
	}

	if !strings.HasSuffix(strings.ToLower(expanded), strings.ToLower(p.Extension)) {
		expanded += p.Extension
	}

	var segments []string
	for _, seg := range strings.FieldsFunc(expanded, func(r rune) bool {
		return r == '/' || r == '\\'
	}) {
		if seg = Sanitize(seg, ModeSegment); seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) == 0 {
		return "", false
	}

	return filepath.Join(segments...), true
}

// expand substitutes every recognized {token} in a single left-to-right scan,
// equivalent to simultaneous substitution: resolved values are never
// rescanned, and unrecognized tokens pass through untouched.
func expand(template string, placeholders map[string]string) string {
	var b strings.Builder
	b.Grow(len(template))
	for i := 0; i < len(template); {
		if template[i] == '{' {
			if n := strings.IndexByte(template[i:], '}'); n > 0 {
				if value, ok := placeholders[strings.ToLower(template[i:i+n+1])]; ok {
					b.WriteString(value)
					i += n + 1
					continue
				}
			}
		}
		b.WriteByte(template[i])
		i++
	}
	return b.String()
}
