package feedbackcards

import "testing"

func TestComputeGeometry_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	geo := ComputeGeometry(cfg, 26, 31, 3)

	if geo.ImageWidth != 1080 {
		t.Errorf("expected image width 1080, got %d", geo.ImageWidth)
	}
	// header 80 (avatar taller than author) + gap 40 + body 3*31+2*20=133,
	// wrapped in 2*60 padding and 2*40 margin.
	wantHeight := 80 + headerBodyGap + 133 + 2*60 + 2*40
	if geo.ImageHeight != wantHeight {
		t.Errorf("expected image height %d, got %d", wantHeight, geo.ImageHeight)
	}
	if geo.CardX1 != 40 || geo.CardY1 != 40 {
		t.Errorf("expected card origin (40,40), got (%d,%d)", geo.CardX1, geo.CardY1)
	}
	if geo.CardX2 != 1040 {
		t.Errorf("expected card right edge 1040, got %d", geo.CardX2)
	}
	if geo.CardY2 != wantHeight-40 {
		t.Errorf("expected card bottom edge %d, got %d", wantHeight-40, geo.CardY2)
	}
	if geo.MaxTextWidth != 880 {
		t.Errorf("expected max text width 880, got %d", geo.MaxTextWidth)
	}
	if geo.HeaderTop != 100 {
		t.Errorf("expected header top 100, got %d", geo.HeaderTop)
	}
	if geo.HeaderHeight != 80 {
		t.Errorf("expected header height 80, got %d", geo.HeaderHeight)
	}
	if geo.BodyTop != 220 {
		t.Errorf("expected body top 220, got %d", geo.BodyTop)
	}
}

func TestComputeGeometry_TallAuthor(t *testing.T) {
	cfg := DefaultConfig()
	geo := ComputeGeometry(cfg, 120, 31, 1)
	if geo.HeaderHeight != 120 {
		t.Errorf("expected header height 120, got %d", geo.HeaderHeight)
	}
	if geo.BodyTop != geo.HeaderTop+120+headerBodyGap {
		t.Errorf("body top %d does not sit below the header", geo.BodyTop)
	}
}

func TestComputeGeometry_SingleLineNoSpacing(t *testing.T) {
	cfg := DefaultConfig()
	one := ComputeGeometry(cfg, 26, 31, 1)
	two := ComputeGeometry(cfg, 26, 31, 2)
	if got := two.ImageHeight - one.ImageHeight; got != 31+cfg.LineSpacing {
		t.Errorf("expected each extra line to add %d, got %d", 31+cfg.LineSpacing, got)
	}
}

func TestComputeGeometry_HeightIdentity(t *testing.T) {
	cfg := DefaultConfig()
	for _, lines := range []int{1, 2, 5, 12} {
		geo := ComputeGeometry(cfg, 26, 31, lines)
		body := lines*31 + (lines-1)*cfg.LineSpacing
		want := geo.BodyTop + body + cfg.CardPadding + cfg.CardMargin
		if geo.ImageHeight != want {
			t.Errorf("%d lines: image height %d, expected %d", lines, geo.ImageHeight, want)
		}
	}
}
