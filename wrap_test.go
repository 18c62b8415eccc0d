package feedbackcards

import (
	"strings"
	"testing"

	"golang.org/x/image/font/basicfont"
)

// Face7x13 advances every glyph exactly 7px, so expected widths are just
// 7 * rune count.

func TestWrapText_Empty(t *testing.T) {
	if lines := WrapText(basicfont.Face7x13, "", 100); lines != nil {
		t.Errorf("expected no lines for empty text, got %v", lines)
	}
	if lines := WrapText(basicfont.Face7x13, " \t\n ", 100); lines != nil {
		t.Errorf("expected no lines for blank text, got %v", lines)
	}
}

func TestWrapText_SingleLine(t *testing.T) {
	lines := WrapText(basicfont.Face7x13, "hello world", 11*7)
	if len(lines) != 1 || lines[0] != "hello world" {
		t.Fatalf("expected one exact-fit line, got %v", lines)
	}
}

func TestWrapText_GreedyBreak(t *testing.T) {
	// "aa bb" measures 35px; adding " cc" would reach 56px.
	lines := WrapText(basicfont.Face7x13, "aa bb cc", 38)
	want := []string{"aa bb", "cc"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %v", len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestWrapText_NormalizesWhitespace(t *testing.T) {
	lines := WrapText(basicfont.Face7x13, "  a \t b\nc  ", 700)
	if len(lines) != 1 || lines[0] != "a b c" {
		t.Fatalf("expected collapsed single line, got %v", lines)
	}
}

func TestWrapText_LongWordOwnLine(t *testing.T) {
	// The 10-rune word measures 70px, over the 35px limit, and must land on
	// its own line unsplit.
	lines := WrapText(basicfont.Face7x13, "aa aaaaaaaaaa bb", 35)
	want := []string{"aa", "aaaaaaaaaa", "bb"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %v", len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestWrapText_FitNeverExceeded(t *testing.T) {
	text := strings.Repeat("lorem ipsum dolor sit amet ", 4)
	max := 20 * 7
	for _, line := range WrapText(basicfont.Face7x13, text, max) {
		if w := textWidth(basicfont.Face7x13, line); w > max {
			t.Errorf("line %q measures %dpx, over the %dpx limit", line, w, max)
		}
	}
}

func TestTextMeasure_BitmapFace(t *testing.T) {
	if w := textWidth(basicfont.Face7x13, "abcd"); w != 28 {
		t.Errorf("expected advance width 28, got %d", w)
	}
	if h := inkHeight(basicfont.Face7x13, "Ay"); h != 13 {
		t.Errorf("expected ink height 13, got %d", h)
	}
	if a := inkAscent(basicfont.Face7x13, "Ay"); a != 11 {
		t.Errorf("expected ink ascent 11, got %d", a)
	}
}
