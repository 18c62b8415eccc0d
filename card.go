package feedbackcards

// headerBodyGap separates the avatar/author header from the first feedback
// line.
const headerBodyGap = 40

// Geometry is the computed pixel layout of one card image. Everything
// derives from the configuration plus three measurements, so layout stays
// testable without touching an image.
type Geometry struct {
	ImageWidth  int
	ImageHeight int

	// Card bounds, X2/Y2 exclusive.
	CardX1, CardY1 int
	CardX2, CardY2 int

	// MaxTextWidth is the room for wrapped lines inside the card padding.
	MaxTextWidth int

	HeaderTop    int
	HeaderHeight int
	BodyTop      int
	LineHeight   int
}

// ComputeGeometry sizes a card around its content: the image is exactly tall
// enough for the header, the gap, and lineCount body lines of lineHeight
// pixels, wrapped in the card padding and the outer margin. The header is as
// tall as the avatar or the author name ink, whichever is larger.
func ComputeGeometry(cfg *Config, authorHeight, lineHeight, lineCount int) Geometry {
	cardWidth := cfg.ImageWidth - 2*cfg.CardMargin

	headerHeight := cfg.AvatarSize
	if authorHeight > headerHeight {
		headerHeight = authorHeight
	}

	bodyHeight := 0
	if lineCount > 0 {
		bodyHeight = lineCount*lineHeight + (lineCount-1)*cfg.LineSpacing
	}

	contentHeight := headerHeight + headerBodyGap + bodyHeight
	cardHeight := contentHeight + 2*cfg.CardPadding
	imageHeight := cardHeight + 2*cfg.CardMargin

	return Geometry{
		ImageWidth:   cfg.ImageWidth,
		ImageHeight:  imageHeight,
		CardX1:       cfg.CardMargin,
		CardY1:       cfg.CardMargin,
		CardX2:       cfg.ImageWidth - cfg.CardMargin,
		CardY2:       imageHeight - cfg.CardMargin,
		MaxTextWidth: cardWidth - 2*cfg.CardPadding,
		HeaderTop:    cfg.CardMargin + cfg.CardPadding,
		HeaderHeight: headerHeight,
		BodyTop:      cfg.CardMargin + cfg.CardPadding + headerHeight + headerBodyGap,
		LineHeight:   lineHeight,
	}
}
