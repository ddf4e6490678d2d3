package doc

import "strings"

// TextMeasurer provides the font metrics the composer needs to wrap
// text and size rows. The PDF backend implements it; tests use a fixed
// per-rune measurer.
type TextMeasurer interface {
	// TextWidth is the rendered width of a single line, in millimeters.
	TextWidth(text string, f Font) float64
	// LineHeight is the vertical advance of one line, in millimeters.
	LineHeight(f Font) float64
}

// Wrap breaks text into lines no wider than width. Words that do not
// fit on a line by themselves are split by rune so no content is ever
// clipped.
func Wrap(m TextMeasurer, text string, f Font, width float64) []string {
	if text == "" {
		return []string{""}
	}

	var (
		lines   []string
		current string
	)

	flush := func() {
		if current != "" {
			lines = append(lines, current)
			current = ""
		}
	}

	for _, word := range strings.Fields(text) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}

		if m.TextWidth(candidate, f) <= width {
			current = candidate
			continue
		}

		flush()

		// The word alone may still be too wide; split it by rune.
		for m.TextWidth(word, f) > width {
			runes := []rune(word)
			cut := len(runes)

			for cut > 1 && m.TextWidth(string(runes[:cut]), f) > width {
				cut--
			}

			lines = append(lines, string(runes[:cut]))
			word = string(runes[cut:])
		}

		current = word
	}

	flush()

	if len(lines) == 0 {
		return []string{""}
	}

	return lines
}
