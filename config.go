package feedbackcards

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries every layout, style, and I/O knob of the card generator.
// Zero values are not usable; start from DefaultConfig or LoadConfig.
type Config struct {
	// InputPath is the source table, .xlsx or .csv.
	InputPath string `yaml:"input"`
	// OutputDir receives the rendered feedback_card_N.png files.
	OutputDir string `yaml:"output_dir"`

	// BoldFontPath and RegularFontPath locate TrueType fonts for the author
	// line plus avatar letter and for the feedback body. Empty paths trigger
	// a system font scan; a failed scan degrades to a built-in bitmap face.
	BoldFontPath    string `yaml:"bold_font"`
	RegularFontPath string `yaml:"regular_font"`

	AuthorFontSize   float64 `yaml:"author_font_size"`
	FeedbackFontSize float64 `yaml:"feedback_font_size"`

	ImageWidth  int `yaml:"image_width"`
	CardMargin  int `yaml:"card_margin"`
	CardPadding int `yaml:"card_padding"`
	CardRadius  int `yaml:"card_radius"`

	AvatarSize        int `yaml:"avatar_size"`
	AvatarNameSpacing int `yaml:"avatar_name_spacing"`
	LineSpacing       int `yaml:"line_spacing"`

	BackgroundColor   HexColor `yaml:"background_color"`
	CardColor         HexColor `yaml:"card_color"`
	AuthorTextColor   HexColor `yaml:"author_text_color"`
	FeedbackTextColor HexColor `yaml:"feedback_text_color"`

	// PastelPalette holds the candidate avatar tints.
	PastelPalette []HexColor `yaml:"pastel_palette"`
}

// DefaultConfig returns the stock card look: a 1080px-wide light gray canvas,
// white card, dark text, and pastel avatars.
func DefaultConfig() *Config {
	return &Config{
		InputPath:         "feedback_data.xlsx",
		OutputDir:         "output_cards",
		AuthorFontSize:    36,
		FeedbackFontSize:  42,
		ImageWidth:        1080,
		CardMargin:        40,
		CardPadding:       60,
		CardRadius:        30,
		AvatarSize:        80,
		AvatarNameSpacing: 20,
		LineSpacing:       20,
		BackgroundColor:   RGB(245, 245, 245),
		CardColor:         RGB(255, 255, 255),
		AuthorTextColor:   RGB(40, 40, 40),
		FeedbackTextColor: RGB(60, 60, 60),
		PastelPalette:     DefaultPalette(),
	}
}

// LoadConfig returns the default configuration overlaid with the YAML file at
// path. An empty path yields the defaults unchanged.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if len(cfg.PastelPalette) == 0 {
		cfg.PastelPalette = DefaultPalette()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first nonsensical setting, or nil.
func (c *Config) Validate() error {
	switch {
	case c.ImageWidth <= 0:
		return fmt.Errorf("image_width must be positive, got %d", c.ImageWidth)
	case c.CardMargin < 0:
		return fmt.Errorf("card_margin must not be negative, got %d", c.CardMargin)
	case c.CardPadding < 0:
		return fmt.Errorf("card_padding must not be negative, got %d", c.CardPadding)
	case c.CardRadius < 0:
		return fmt.Errorf("card_radius must not be negative, got %d", c.CardRadius)
	case c.AvatarSize <= 0:
		return fmt.Errorf("avatar_size must be positive, got %d", c.AvatarSize)
	case c.AvatarNameSpacing < 0:
		return fmt.Errorf("avatar_name_spacing must not be negative, got %d", c.AvatarNameSpacing)
	case c.LineSpacing < 0:
		return fmt.Errorf("line_spacing must not be negative, got %d", c.LineSpacing)
	case c.AuthorFontSize <= 0:
		return fmt.Errorf("author_font_size must be positive, got %g", c.AuthorFontSize)
	case c.FeedbackFontSize <= 0:
		return fmt.Errorf("feedback_font_size must be positive, got %g", c.FeedbackFontSize)
	}
	if c.ImageWidth-2*c.CardMargin-2*c.CardPadding <= 0 {
		return fmt.Errorf("image_width %d leaves no room for text inside margin %d and padding %d",
			c.ImageWidth, c.CardMargin, c.CardPadding)
	}
	return nil
}

// Palette returns the avatar tints as plain NRGBA values.
func (c *Config) Palette() []color.NRGBA {
	out := make([]color.NRGBA, len(c.PastelPalette))
	for i, p := range c.PastelPalette {
		out[i] = p.NRGBA
	}
	return out
}
