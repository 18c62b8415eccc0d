package feedbackcards

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/bidi"
)

// displayOrder rewrites logical-order text into the visual order produced by
// the Unicode bidirectional algorithm. The text is split on paragraph
// separators, which pass through unchanged, and each paragraph is reordered
// on its own with the base direction following its first strong character,
// matching how a standalone caption is read.
func displayOrder(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	rest := s
	for len(rest) > 0 {
		end, next := len(rest), len(rest)
		for i, r := range rest {
			if p, _ := bidi.LookupRune(r); p.Class() == bidi.B {
				end, next = i, i+utf8.RuneLen(r)
				break
			}
		}
		b.WriteString(orderParagraph(rest[:end]))
		b.WriteString(rest[end:next])
		rest = rest[next:]
	}
	return b.String()
}

// orderParagraph reorders one paragraph, which must hold no paragraph
// separator: bidi.Paragraph orders everything handed to SetString even when
// it reports consuming only the first paragraph, so the tail of its last run
// would repeat any text past the separator.
func orderParagraph(para string) string {
	if para == "" {
		return ""
	}
	var p bidi.Paragraph
	if _, err := p.SetString(para); err != nil {
		return para
	}
	ordering, err := p.Order()
	if err != nil {
		return para
	}
	var b strings.Builder
	b.Grow(len(para))
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		text := run.String()
		if run.Direction() == bidi.RightToLeft {
			text = reverseVisual(text)
		}
		b.WriteString(text)
	}
	return b.String()
}

// reverseVisual flips a right-to-left run into display order. Combining marks
// stay behind their base letter and paired brackets are mirrored.
func reverseVisual(s string) string {
	runes := []rune(s)
	clusters := make([][]rune, 0, len(runes))
	for _, r := range runes {
		if unicode.Is(unicode.M, r) && len(clusters) > 0 {
			last := len(clusters) - 1
			clusters[last] = append(clusters[last], r)
			continue
		}
		clusters = append(clusters, []rune{r})
	}
	out := make([]rune, 0, len(runes))
	for i := len(clusters) - 1; i >= 0; i-- {
		for _, r := range clusters[i] {
			out = append(out, mirrorRune(r))
		}
	}
	return string(out)
}

var mirrorPairs = map[rune]rune{
	'(': ')', ')': '(',
	'[': ']', ']': '[',
	'{': '}', '}': '{',
	'<': '>', '>': '<',
	'«': '»', '»': '«',
}

func mirrorRune(r rune) rune {
	if m, ok := mirrorPairs[r]; ok {
		return m
	}
	return r
}
