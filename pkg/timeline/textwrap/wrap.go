// Package textwrap implements greedy word wrapping against an injected
// width measurer.
//
// The wrap decision is kept separate from any rendering surface: callers
// supply a Measurer that reports the rendered width of a candidate line,
// whether that is a font metric, a terminal cell count, or a fixed
// per-character estimate. No two invocations interact.
package textwrap

import "strings"

// Measurer reports the rendered width of a candidate line in the units
// the caller wraps against (typically pixels or terminal cells).
type Measurer func(line string) float64

// CharWidth returns a Measurer that estimates width as a fixed number of
// units per rune. Suitable for SVG output where exact font metrics are
// unavailable at layout time.
func CharWidth(unitsPerRune float64) Measurer {
	return func(line string) float64 {
		return float64(len([]rune(line))) * unitsPerRune
	}
}

// Wrap splits text into lines whose measured width does not exceed
// maxWidth, using greedy accumulation: each word is tentatively appended
// to the current line, and the line is committed without the word only
// when the tentative line overflows and the current line is non-empty.
//
// A single word wider than maxWidth stays unsplit on its own line; its
// width may overflow maxWidth. Empty or whitespace-only text yields no
// lines.
func Wrap(text string, maxWidth float64, measure Measurer) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if measure(candidate) > maxWidth && current != "" {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	return append(lines, current)
}

// LineCount returns the number of lines Wrap would produce.
func LineCount(text string, maxWidth float64, measure Measurer) int {
	return len(Wrap(text, maxWidth, measure))
}
