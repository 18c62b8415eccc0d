package feedbackcards

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// helper: a generator with bitmap fonts and a fixed avatar tint
func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	cfg := DefaultConfig()
	cfg.BoldFontPath = filepath.Join(t.TempDir(), "none.ttf")
	cfg.RegularFontPath = cfg.BoldFontPath
	cfg.OutputDir = filepath.Join(t.TempDir(), "cards")
	g := NewGenerator(cfg, zap.NewNop())
	return g.SetColorPicker(FixedColorPicker(RGB(200, 120, 80).NRGBA))
}

// helper: count pixels of exactly c inside the given rectangle
func countPixels(img *image.NRGBA, x1, y1, x2, y2 int, r, g, b uint8) int {
	n := 0
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			px := img.NRGBAAt(x, y)
			if px.R == r && px.G == g && px.B == b && px.A == 255 {
				n++
			}
		}
	}
	return n
}

func TestRenderCard(t *testing.T) {
	g := newTestGenerator(t)
	img, err := g.RenderCard("Loved it", "Omar")
	if err != nil {
		t.Fatalf("RenderCard failed: %v", err)
	}

	// One body line on the bitmap face: header 80 + gap 40 + line 13,
	// plus padding and margin on both sides.
	if got := img.Bounds(); got.Dx() != 1080 || got.Dy() != 333 {
		t.Fatalf("unexpected canvas size %v", got)
	}

	if px := img.NRGBAAt(5, 5); px.R != 245 || px.G != 245 || px.B != 245 {
		t.Errorf("expected gray background at margin, got %+v", px)
	}
	if px := img.NRGBAAt(540, 60); px.R != 255 || px.G != 255 || px.B != 255 {
		t.Errorf("expected white card interior, got %+v", px)
	}
	// (41,41) sits outside the rounded corner arc.
	if px := img.NRGBAAt(41, 41); px.R != 245 {
		t.Errorf("expected background outside the corner arc, got %+v", px)
	}

	// Avatar circle top, clear of the letter: canvas (140,108) is badge (40,8).
	av := img.NRGBAAt(140, 108)
	if av.A != 255 || absDiff(int(av.R), 200) > 3 || absDiff(int(av.B), 80) > 3 {
		t.Errorf("expected avatar tint beside the padding, got %+v", av)
	}

	// Author line "Omar" starts after the avatar and name spacing.
	if n := countPixels(img, 200, 130, 270, 150, 40, 40, 40); n == 0 {
		t.Error("expected author ink in the header band")
	}
	// Body line starts at the card padding under the header.
	if n := countPixels(img, 95, 215, 165, 240, 60, 60, 60); n == 0 {
		t.Error("expected feedback ink under the header")
	}
}

func TestRenderCard_RTLMirrorsLayout(t *testing.T) {
	g := newTestGenerator(t)
	img, err := g.RenderCard("خدمة ممتازة", "محمد")
	if err != nil {
		t.Fatalf("RenderCard failed: %v", err)
	}
	if got := img.Bounds(); got.Dx() != 1080 || got.Dy() != 333 {
		t.Fatalf("unexpected canvas size %v", got)
	}

	// Avatar hugs the right padding edge: x in [900,980).
	right := img.NRGBAAt(940, 108)
	if right.A != 255 || absDiff(int(right.R), 200) > 3 || absDiff(int(right.B), 80) > 3 {
		t.Errorf("expected avatar tint on the right side, got %+v", right)
	}
	// The left side of the header stays plain card.
	left := img.NRGBAAt(140, 108)
	if left.R != 255 || left.G != 255 || left.B != 255 {
		t.Errorf("expected white card on the left side, got %+v", left)
	}
}

func TestRenderCard_BlankFeedback(t *testing.T) {
	g := newTestGenerator(t)
	if _, err := g.RenderCard("", "Omar"); err == nil {
		t.Error("expected error for empty feedback")
	}
	if _, err := g.RenderCard("   ", ""); err == nil {
		t.Error("expected error for whitespace feedback")
	}
}

func TestRenderCard_AnonymousAuthor(t *testing.T) {
	g := newTestGenerator(t)
	img, err := g.RenderCard("Fine", "  ")
	if err != nil {
		t.Fatalf("RenderCard failed: %v", err)
	}
	// "Anonymous" must be drawn in place of the blank name.
	if n := countPixels(img, 200, 130, 280, 150, 40, 40, 40); n == 0 {
		t.Error("expected fallback author ink in the header band")
	}
}

func TestRenderCard_MultiLineHeight(t *testing.T) {
	g := newTestGenerator(t)
	body := strings.TrimSpace(strings.Repeat("word ", 60))
	img, err := g.RenderCard(body, "Omar")
	if err != nil {
		t.Fatalf("RenderCard failed: %v", err)
	}
	// 60 4-char words wrap to 3 lines at the bitmap advance.
	if got := img.Bounds().Dy(); got != 399 {
		t.Errorf("expected 3-line canvas height 399, got %d", got)
	}
}

func TestFillRoundedRect(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 60, 40))
	fillRoundedRect(img, 10, 10, 50, 30, 8, RGB(255, 0, 0).NRGBA)

	if px := img.NRGBAAt(30, 20); px.R != 255 || px.A != 255 {
		t.Errorf("expected fill at center, got %+v", px)
	}
	if px := img.NRGBAAt(10, 20); px.R != 255 {
		t.Errorf("expected fill at left edge midpoint, got %+v", px)
	}
	if px := img.NRGBAAt(13, 13); px.R != 255 {
		t.Errorf("expected fill inside the corner arc, got %+v", px)
	}
	if px := img.NRGBAAt(10, 10); px.A != 0 {
		t.Errorf("expected untouched pixel outside the corner arc, got %+v", px)
	}
	if px := img.NRGBAAt(50, 20); px.A != 0 {
		t.Errorf("far edges are exclusive, got %+v", px)
	}
	if px := img.NRGBAAt(49, 20); px.R != 255 {
		t.Errorf("expected fill just inside the far edge, got %+v", px)
	}
}

func TestFillRoundedRect_RadiusClamped(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 10))
	fillRoundedRect(img, 0, 0, 20, 10, 50, RGB(255, 0, 0).NRGBA)

	if px := img.NRGBAAt(10, 5); px.R != 255 {
		t.Errorf("expected fill at center, got %+v", px)
	}
	if px := img.NRGBAAt(0, 0); px.A != 0 {
		t.Errorf("expected clamped corner to stay round, got %+v", px)
	}
	if px := img.NRGBAAt(1, 4); px.R != 255 {
		t.Errorf("expected fill near the clamped arc, got %+v", px)
	}
}

func TestFillRoundedRect_Degenerate(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	fillRoundedRect(img, 5, 5, 5, 9, 3, RGB(255, 0, 0).NRGBA)
	fillRoundedRect(img, 8, 2, 2, 8, 3, RGB(255, 0, 0).NRGBA)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if img.NRGBAAt(x, y).A != 0 {
				t.Fatalf("empty spans must draw nothing, pixel (%d,%d) set", x, y)
			}
		}
	}

	fillRoundedRect(img, 0, 0, 10, 10, 0, RGB(255, 0, 0).NRGBA)
	if px := img.NRGBAAt(0, 0); px.R != 255 {
		t.Errorf("zero radius must fill square corners, got %+v", px)
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "card.png")
	img := image.NewNRGBA(image.Rect(0, 0, 12, 8))
	if err := writePNG(path, img); err != nil {
		t.Fatalf("writePNG failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open written file: %v", err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode written file: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 12 || b.Dy() != 8 {
		t.Errorf("unexpected decoded bounds %v", b)
	}
}

func TestWritePNG_ParentIsAFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	if err := writePNG(filepath.Join(blocker, "card.png"), img); err == nil {
		t.Error("expected error when the parent path is a file")
	}
}
