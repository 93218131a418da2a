package extract

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Clean normalizes extracted text: NFKC, no control characters besides
// newline and tab, single spaces inside lines, at most one blank line in a row.
func Clean(raw string) string {
	normalized := norm.NFKC.String(strings.ReplaceAll(raw, "\r\n", "\n"))

	var filtered strings.Builder
	filtered.Grow(len(normalized))
	for _, r := range normalized {
		switch {
		case r == '\n' || r == '\t':
			filtered.WriteRune(r)
		case r == '\r' || r == '\f' || r == '\v':
			filtered.WriteRune('\n')
		case r == unicode.ReplacementChar, unicode.IsControl(r), unicode.Is(unicode.Cf, r):
		default:
			filtered.WriteRune(r)
		}
	}

	lines := strings.Split(filtered.String(), "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
