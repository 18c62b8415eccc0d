package feedbackcards

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// AnonymousAuthor replaces a blank author name on the card and its avatar.
const AnonymousAuthor = "Anonymous"

// RenderCard composes one card: background canvas, rounded card, avatar
// badge, author line, and the wrapped feedback body. Text arrives in logical
// order and is shaped here; when either field contains Arabic, the whole
// header and body layout mirrors right to left.
func (g *Generator) RenderCard(feedback, author string) (*image.NRGBA, error) {
	if strings.TrimSpace(feedback) == "" {
		return nil, fmt.Errorf("blank feedback")
	}
	display := strings.TrimSpace(author)
	if display == "" {
		display = AnonymousAuthor
	}
	rtl := IsArabic(feedback) || IsArabic(author)

	shapedBody := ShapeForDisplay(feedback)
	shapedAuthor := ShapeForDisplay(display)

	bodyFace := g.fonts.Face(false, g.cfg.FeedbackFontSize)
	authorFace := g.fonts.Face(true, g.cfg.AuthorFontSize)

	maxText := g.cfg.ImageWidth - 2*g.cfg.CardMargin - 2*g.cfg.CardPadding
	lines := WrapText(bodyFace, shapedBody, maxText)
	authorH := inkHeight(authorFace, shapedAuthor)
	lineH := inkHeight(bodyFace, "Ay")
	geo := ComputeGeometry(g.cfg, authorH, lineH, len(lines))

	canvas := imaging.New(geo.ImageWidth, geo.ImageHeight, g.cfg.BackgroundColor)
	fillRoundedRect(canvas, geo.CardX1, geo.CardY1, geo.CardX2, geo.CardY2,
		g.cfg.CardRadius, g.cfg.CardColor.NRGBA)

	avatar := RenderAvatar(g.fonts, display, g.cfg.AvatarSize, g.cfg.Palette(), g.pick)
	avatarX := geo.CardX1 + g.cfg.CardPadding
	if rtl {
		avatarX = geo.CardX2 - g.cfg.CardPadding - g.cfg.AvatarSize
	}
	canvas = imaging.Overlay(canvas, avatar, image.Pt(avatarX, geo.HeaderTop), 1.0)

	authorW := textWidth(authorFace, shapedAuthor)
	authorX := avatarX + g.cfg.AvatarSize + g.cfg.AvatarNameSpacing
	if rtl {
		authorX = avatarX - g.cfg.AvatarNameSpacing - authorW
	}
	authorTop := geo.HeaderTop + (g.cfg.AvatarSize-authorH)/2
	drawString(canvas, authorFace, shapedAuthor, authorX,
		authorTop+inkAscent(authorFace, shapedAuthor), g.cfg.AuthorTextColor.NRGBA)

	bodyAscent := inkAscent(bodyFace, "Ay")
	y := geo.BodyTop
	for _, line := range lines {
		w := textWidth(bodyFace, line)
		if w > geo.MaxTextWidth {
			g.log.Warn("line exceeds card text width",
				zap.Int("width", w), zap.Int("max", geo.MaxTextWidth))
		}
		x := geo.CardX1 + g.cfg.CardPadding
		if rtl {
			x = geo.CardX2 - g.cfg.CardPadding - w
		}
		drawString(canvas, bodyFace, line, x, y+bodyAscent, g.cfg.FeedbackTextColor.NRGBA)
		y += geo.LineHeight + g.cfg.LineSpacing
	}
	return canvas, nil
}

// fillRoundedRect fills the rectangle spanning (x1,y1) to (x2,y2), exclusive
// on the far edges, with corners rounded to radius. The shape is two
// overlapping rectangles plus a quarter disc per corner; the radius is
// clamped so opposite corners never cross.
func fillRoundedRect(img *image.NRGBA, x1, y1, x2, y2, radius int, c color.NRGBA) {
	w := x2 - x1
	h := y2 - y1
	if w <= 0 || h <= 0 {
		return
	}
	r := radius
	if r > w/2 {
		r = w / 2
	}
	if r > h/2 {
		r = h / 2
	}
	if r < 0 {
		r = 0
	}

	src := &image.Uniform{c}
	draw.Draw(img, image.Rect(x1+r, y1, x2-r, y2), src, image.Point{}, draw.Over)
	draw.Draw(img, image.Rect(x1, y1+r, x2, y2-r), src, image.Point{}, draw.Over)
	if r == 0 {
		return
	}
	fillQuarterDisc(img, x1+r, y1+r, r, -1, -1, c)
	fillQuarterDisc(img, x2-r, y1+r, r, +1, -1, c)
	fillQuarterDisc(img, x1+r, y2-r, r, -1, +1, c)
	fillQuarterDisc(img, x2-r, y2-r, r, +1, +1, c)
}

// fillQuarterDisc fills the quarter of the disc centered at (cx, cy) that
// extends toward (sx, sy), each being -1 or +1. Pixels are sampled at their
// centers, matching how the ellipse fill of a pie slice rasterizes.
func fillQuarterDisc(img *image.NRGBA, cx, cy, radius, sx, sy int, c color.NRGBA) {
	px1, px2 := cx-radius, cx
	if sx > 0 {
		px1, px2 = cx, cx+radius
	}
	py1, py2 := cy-radius, cy
	if sy > 0 {
		py1, py2 = cy, cy+radius
	}
	rr := float64(radius)
	for py := py1; py < py2; py++ {
		for px := px1; px < px2; px++ {
			dx := float64(px) + 0.5 - float64(cx)
			dy := float64(py) + 0.5 - float64(cy)
			if dx*dx+dy*dy <= rr*rr {
				setPixel(img, px, py, c)
			}
		}
	}
}

func setPixel(img *image.NRGBA, x, y int, c color.NRGBA) {
	bounds := img.Bounds()
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		img.SetNRGBA(x, y, c)
	}
}

// drawString draws s with its baseline starting at (x, baselineY).
func drawString(dst draw.Image, face font.Face, s string, x, baselineY int, c color.NRGBA) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  &image.Uniform{c},
		Face: face,
		Dot:  fixed.P(x, baselineY),
	}
	d.DrawString(s)
}

// writePNG writes img to path, creating parent directories as needed.
func writePNG(path string, img image.Image) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()
	return png.Encode(f, img)
}
