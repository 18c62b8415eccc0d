package feedbackcards

import (
	"fmt"
	"image/color"
	"math/rand"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseHexColor parses a "#RRGGBB" string into an opaque NRGBA color.
// The leading "#" is optional and hex digits may be in either case.
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: want RRGGBB", s)
	}
	var v [3]uint8
	for i := range v {
		h := hexVal(hex[2*i])
		l := hexVal(hex[2*i+1])
		if h < 0 || l < 0 {
			return color.NRGBA{}, fmt.Errorf("invalid color %q: bad hex digit", s)
		}
		v[i] = uint8(h<<4 | l)
	}
	return color.NRGBA{R: v[0], G: v[1], B: v[2], A: 255}, nil
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return -1
	}
}

// HexColor is a color.NRGBA that decodes from "#RRGGBB" YAML strings.
type HexColor struct {
	color.NRGBA
}

// RGB builds an opaque HexColor from 8-bit components.
func RGB(r, g, b uint8) HexColor {
	return HexColor{color.NRGBA{R: r, G: g, B: b, A: 255}}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *HexColor) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseHexColor(s)
	if err != nil {
		return err
	}
	c.NRGBA = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c HexColor) MarshalYAML() (interface{}, error) {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B), nil
}

// ColorPicker selects the avatar background tint from a palette.
type ColorPicker func(palette []color.NRGBA) color.NRGBA

// RandomColorPicker picks a uniformly random palette entry. An empty palette
// yields pastel blue.
func RandomColorPicker(palette []color.NRGBA) color.NRGBA {
	if len(palette) == 0 {
		return color.NRGBA{R: 174, G: 198, B: 207, A: 255}
	}
	return palette[rand.Intn(len(palette))]
}

// FixedColorPicker returns a picker that always selects c.
func FixedColorPicker(c color.NRGBA) ColorPicker {
	return func([]color.NRGBA) color.NRGBA { return c }
}

// DefaultPalette returns the eight pastel avatar tints used when the
// configuration does not override them.
func DefaultPalette() []HexColor {
	return []HexColor{
		RGB(174, 198, 207), // pastel blue
		RGB(189, 224, 254), // light blue
		RGB(162, 210, 223), // soft teal
		RGB(188, 224, 187), // pastel green
		RGB(255, 218, 193), // peach
		RGB(255, 204, 229), // pink
		RGB(230, 190, 255), // lavender
		RGB(255, 255, 186), // pale yellow
	}
}
