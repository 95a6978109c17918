package layout

import (
	"math"
	"strings"
	"unicode/utf8"
)

// EstimateWidth is the heuristic rendered width of s: one CharWidth per rune.
func (c Config) EstimateWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * c.CharWidth
}

// MaxLines is how many wrapped lines fit in a box of the given height. The
// time label takes the first line slot, so n lines fit while
// (n+1)*LineHeight + TextTopOffset stays below height.
func (c Config) MaxLines(height float64) int {
	n := 0
	for float64(n+2)*c.LineHeight+c.TextTopOffset < height {
		n++
	}
	return n
}

// Wrap greedily fills lines word by word from each text in turn. A word is
// moved to a new line when the estimated width would pass
// width - WrapPadding; a word longer than a whole line is split across
// lines. Output stops silently once MaxLines(height) is reached.
func (c Config) Wrap(texts []string, width, height float64) []string {
	maxLines := c.MaxLines(height)
	maxChars := int(math.Floor((width - c.WrapPadding) / c.CharWidth))
	if maxLines <= 0 || maxChars <= 0 {
		return nil
	}

	out := make([]string, 0, maxLines)
	full := func() bool { return len(out) >= maxLines }

	for _, text := range texts {
		cur := ""
		for _, word := range strings.Fields(text) {
			for _, piece := range splitWord(word, maxChars) {
				next := piece
				if cur != "" {
					next = cur + " " + piece
				}
				if utf8.RuneCountInString(next) <= maxChars {
					cur = next
					continue
				}
				out = append(out, cur)
				if full() {
					return out
				}
				cur = piece
			}
		}
		if cur != "" {
			out = append(out, cur)
			if full() {
				return out
			}
		}
	}
	return out
}

// splitWord cuts w into chunks of at most n runes.
func splitWord(w string, n int) []string {
	if utf8.RuneCountInString(w) <= n {
		return []string{w}
	}
	var parts []string
	runes := []rune(w)
	for len(runes) > n {
		parts = append(parts, string(runes[:n]))
		runes = runes[n:]
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}
