package text

import "strings"

// Ellipsis is the truncation marker appended when a line is cut to fit.
const Ellipsis = "..."

// Measurer measures a text run under some concrete font. Width and height
// are in canvas units (pixels).
type Measurer interface {
	Measure(text string) (width, height float64)
}

// Width measures text through m, falling back to a single space for the
// empty string so measurement is total.
func Width(m Measurer, text string) float64 {
	if text == "" {
		text = " "
	}
	w, _ := m.Measure(text)
	return w
}

// Wrap splits text into lines no wider than maxWidth using greedy word
// wrapping. Tokens are whitespace-separated words; a token is tentatively
// appended (space-joined) to the current line and the line is committed when
// the tentative width would exceed maxWidth. A single token wider than
// maxWidth occupies a line of its own and is never split mid-token.
//
// maxLines zero means unlimited. When the cap is reached, the remaining text
// is folded into the final line and truncated with an ellipsis rather than
// spilling onto an extra line, so a capped result always signals the cut.
func Wrap(text string, maxWidth float64, m Measurer, maxLines int) []string {
	var lines []string
	var current string
	capped := false

	words := strings.Fields(text)
	for i, word := range words {
		test := word
		if current != "" {
			test = current + " " + word
		}
		if Width(m, test) <= maxWidth || current == "" {
			current = test
			continue
		}
		if maxLines > 0 && len(lines) == maxLines-1 {
			// Committing would spill onto line maxLines+1. Fold every
			// remaining word into the final line so the truncation below
			// accounts for all dropped text.
			current = current + " " + strings.Join(words[i:], " ")
			capped = true
			break
		}
		lines = append(lines, current)
		current = word
	}

	if current == "" {
		return lines
	}
	if capped {
		current = TruncateWithEllipsis(current, maxWidth, m)
	}
	return append(lines, current)
}

// TruncateWithEllipsis returns line unchanged when it already fits maxWidth.
// Otherwise it reserves the width of the ellipsis marker, greedily keeps
// leading characters while they stay within the remaining budget, and
// appends the marker. Truncation always consumes characters from the start
// of the sequence, for right-to-left text as well; see the package note on
// shaping delegation.
func TruncateWithEllipsis(line string, maxWidth float64, m Measurer) string {
	if Width(m, line) <= maxWidth {
		return line
	}

	budget := maxWidth - Width(m, Ellipsis)
	var kept strings.Builder
	for _, r := range line {
		if Width(m, kept.String()+string(r)) > budget {
			break
		}
		kept.WriteRune(r)
	}
	return kept.String() + Ellipsis
}
