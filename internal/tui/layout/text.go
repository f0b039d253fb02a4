package layout

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

// ansiRegex matches ANSI escape sequences.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// DisplayWidth returns the number of terminal cells s occupies, excluding
// ANSI codes. Hangul and other wide runes count as two cells.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(StripANSI(s))
}

// TruncateText truncates text to maxWidth cells with ellipsis.
// Returns the truncated text and whether truncation occurred.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}

	if runewidth.StringWidth(text) <= maxWidth {
		return text, false
	}

	ellipsisWidth := runewidth.StringWidth(cfg.Ellipsis)
	if maxWidth <= ellipsisWidth {
		return fit(cfg.Ellipsis, maxWidth), true
	}

	return fit(text, maxWidth-ellipsisWidth) + cfg.Ellipsis, true
}

// PadRight fills s with spaces up to width cells.
func PadRight(s string, width int) string {
	w := DisplayWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// fit returns the longest prefix of s that fits in width cells. A wide rune
// that would straddle the edge is dropped.
func fit(s string, width int) string {
	var b strings.Builder
	used := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if used+rw > width {
			break
		}
		b.WriteRune(r)
		used += rw
	}
	return b.String()
}
