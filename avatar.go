package feedbackcards

import (
	"image"
	"image/color"
	"strings"
	"unicode"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
)

// avatarScale supersamples the badge: circle and letter are drawn at twice
// the target diameter and downscaled for smooth edges.
const avatarScale = 2

// avatarLetterRatio sizes the letter at half the badge diameter.
const avatarLetterRatio = 0.5

// AvatarLetter returns the badge character for a name: the first rune of the
// trimmed name, uppercased, or "?" for a blank name. An Arabic letter is
// substituted with its isolated presentation form.
func AvatarLetter(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "?"
	}
	r := []rune(trimmed)[0]
	return ShapeForDisplay(string(unicode.ToUpper(r)))
}

// RenderAvatar draws a circular letter badge of the given diameter on a
// transparent background. The tint comes from pick over palette; the letter
// is white and centered inside the circle by its exact ink box, so glyphs
// with lopsided bearings still sit visually centered.
func RenderAvatar(fonts *FontSet, name string, diameter int, palette []color.NRGBA, pick ColorPicker) *image.NRGBA {
	if pick == nil {
		pick = RandomColorPicker
	}
	size := diameter * avatarScale
	dc := gg.NewContext(size, size)

	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.SetColor(pick(palette))
	dc.Fill()

	letter := AvatarLetter(name)
	face := fonts.Face(true, avatarLetterRatio*float64(size))
	b, _ := font.BoundString(face, letter)
	w := (b.Max.X - b.Min.X).Ceil()
	h := (b.Max.Y - b.Min.Y).Ceil()
	x := (size-w)/2 - b.Min.X.Floor()
	y := (size-h)/2 - b.Min.Y.Floor()

	dc.SetFontFace(face)
	dc.SetColor(color.White)
	dc.DrawString(letter, float64(x), float64(y))

	src := dc.Image()
	dst := image.NewNRGBA(image.Rect(0, 0, diameter, diameter))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
