package feedbackcards

import (
	"strings"

	"golang.org/x/image/font"
)

// textWidth measures the advance width of s in whole pixels.
func textWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// inkHeight measures the tight bounding-box height of s in whole pixels.
func inkHeight(face font.Face, s string) int {
	b, _ := font.BoundString(face, s)
	return (b.Max.Y - b.Min.Y).Ceil()
}

// inkAscent is the distance from the top of the tight bounding box of s down
// to its baseline.
func inkAscent(face font.Face, s string) int {
	b, _ := font.BoundString(face, s)
	return (-b.Min.Y).Ceil()
}

// WrapText splits whitespace-separated words into greedy lines no wider than
// maxWidth pixels under face. A line grows while it still fits; a word wider
// than maxWidth gets a line of its own rather than being split. Blank text
// wraps to no lines.
func WrapText(face font.Face, text string, maxWidth int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if textWidth(face, candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}
