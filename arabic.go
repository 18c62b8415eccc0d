package feedbackcards

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/unicode/runenames"
)

// Arabic letters change shape with their position in a word. Fonts carry the
// contextual variants in the Unicode Arabic Presentation Forms blocks, so
// text drawn glyph-by-glyph must first be rewritten into those forms: resolve
// each letter's joining form per UAX #9 shaping rules, then substitute the
// matching presentation rune and collapse lam-alef pairs into ligatures.

const (
	formNone = -1
	formIsol = 0
	formFina = 1
	formMedi = 2
	formInit = 3

	formCount = 4
)

type joiningType uint8

const (
	joiningTypeU joiningType = iota // non-joining
	joiningTypeR                    // joins the preceding letter only
	joiningTypeD                    // joins on both sides
	joiningTypeT                    // transparent, skipped when resolving
	joiningTypeC                    // join-causing without changing shape
)

const (
	zwnj      = '\u200C'
	zwj       = '\u200D'
	tatweel   = 'ـ'
	lamLetter = 'ل'
)

// IsArabic reports whether s contains any character of the U+0600–U+06FF
// Arabic block or of the wider Arabic script. The block test also catches the
// Common and Inherited characters inside it, such as the Arabic comma,
// tatweel, and the harakat.
func IsArabic(s string) bool {
	for _, r := range s {
		if (r >= 0x0600 && r <= 0x06FF) || unicode.In(r, unicode.Arabic) {
			return true
		}
	}
	return false
}

// ShapeForDisplay prepares s for glyph-by-glyph left-to-right rendering:
// Arabic letters become their contextual presentation forms and the result is
// reordered into visual order. Text without Arabic passes through unchanged.
func ShapeForDisplay(s string) string {
	if !IsArabic(s) {
		return s
	}
	shaped := string(reshapeArabic([]rune(s)))
	return displayOrder(shaped)
}

// reshapeArabic rewrites letters into presentation forms, consuming each
// lam-alef pair as a single ligature rune.
func reshapeArabic(runes []rune) []rune {
	forms := resolveJoiningForms(runes)
	out := make([]rune, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == lamLetter && i+1 < len(runes) {
			if lig, ok := lamAlefLigatures[runes[i+1]]; ok {
				// The ligature takes its final form exactly when the
				// lam joins the preceding letter.
				if forms[i] == formFina || forms[i] == formMedi {
					out = append(out, lig[1])
				} else {
					out = append(out, lig[0])
				}
				i++
				continue
			}
		}
		out = append(out, contextualForm(r, forms[i]))
	}
	return out
}

// lamAlefLigatures maps each alef variant to its {isolated, final} lam-alef
// ligature.
var lamAlefLigatures = map[rune][2]rune{
	'آ': {'ﻵ', 'ﻶ'}, // alef with madda above
	'أ': {'ﻷ', 'ﻸ'}, // alef with hamza above
	'إ': {'ﻹ', 'ﻺ'}, // alef with hamza below
	'ا': {'ﻻ', 'ﻼ'}, // alef
}

// resolveJoiningForms assigns a contextual form to every dual- and
// right-joining letter. Transparent characters (combining marks) never break
// a join; ZWJ and tatweel cause joins without taking a form themselves.
func resolveJoiningForms(runes []rune) []int {
	n := len(runes)
	forms := make([]int, n)
	if n == 0 {
		return forms
	}
	for i := range forms {
		forms[i] = formNone
	}
	types := make([]joiningType, n)
	for i, r := range runes {
		types[i] = classifyJoiningType(r)
	}
	for i := 0; i < n; i++ {
		t := types[i]
		if t != joiningTypeD && t != joiningTypeR {
			continue
		}

		prev := previousJoinType(types, i)
		next := nextJoinType(types, i)

		joinPrev := prev >= 0 && canJoinFollowing(types[prev]) && canJoinPreceding(t)
		joinNext := next >= 0 && canJoinFollowing(t) && canJoinPreceding(types[next])

		switch {
		case joinPrev && joinNext:
			forms[i] = formMedi
		case joinPrev:
			forms[i] = formFina
		case joinNext:
			forms[i] = formInit
		default:
			forms[i] = formIsol
		}
	}
	return forms
}

func previousJoinType(types []joiningType, i int) int {
	for j := i - 1; j >= 0; j-- {
		if types[j] != joiningTypeT {
			return j
		}
	}
	return -1
}

func nextJoinType(types []joiningType, i int) int {
	for j := i + 1; j < len(types); j++ {
		if types[j] != joiningTypeT {
			return j
		}
	}
	return -1
}

func canJoinPreceding(t joiningType) bool {
	return t == joiningTypeD || t == joiningTypeR || t == joiningTypeC
}

func canJoinFollowing(t joiningType) bool {
	return t == joiningTypeD || t == joiningTypeC
}

func classifyJoiningType(r rune) joiningType {
	if r == zwnj { // ZWNJ explicitly breaks joining.
		return joiningTypeU
	}
	if r == zwj || r == tatweel {
		return joiningTypeC
	}
	if unicode.Is(unicode.M, r) {
		return joiningTypeT
	}
	if _, ok := nonJoiningRunes[r]; ok {
		return joiningTypeU
	}
	if _, ok := rightJoiningRunes[r]; ok {
		return joiningTypeR
	}
	if unicode.IsLetter(r) && unicode.In(r, unicode.Arabic) {
		return joiningTypeD
	}
	return joiningTypeU
}

// nonJoiningRunes are Arabic letters that connect on neither side.
var nonJoiningRunes = map[rune]struct{}{
	'ء': {}, // hamza
	'ٴ': {}, // high hamza
}

var rightJoiningRunes = map[rune]struct{}{
	'آ': {}, 'أ': {}, 'ؤ': {}, 'إ': {}, 'ا': {}, 'ة': {},
	'د': {}, 'ذ': {}, 'ر': {}, 'ز': {}, 'و': {},
	'ٱ': {}, 'ٲ': {}, 'ٳ': {}, 'ٵ': {}, 'ٶ': {}, 'ٷ': {},
	'ڈ': {}, 'ډ': {}, 'ڑ': {}, 'ۀ': {}, 'ۃ': {}, 'ۄ': {},
	'ۅ': {}, 'ۆ': {}, 'ۇ': {}, 'ۈ': {}, 'ۉ': {}, 'ۊ': {},
	'ۋ': {}, 'ۍ': {}, 'ے': {}, 'ۓ': {}, 'ە': {},
}

type presentationForms [formCount]rune

var (
	presentationOnce   sync.Once
	presentationByBase map[rune]presentationForms
)

// contextualForm returns the presentation form of r, falling back to the
// isolated form and finally to r itself when no variant exists.
func contextualForm(r rune, form int) rune {
	if form == formNone {
		return r
	}
	presentationOnce.Do(func() {
		presentationByBase = buildPresentationFormMap()
	})
	forms, ok := presentationByBase[r]
	if !ok {
		return r
	}
	if p := forms[form]; p != 0 {
		return p
	}
	if p := forms[formIsol]; p != 0 {
		return p
	}
	return r
}

// buildPresentationFormMap scans the two Arabic Presentation Forms blocks and
// indexes every single-letter contextual variant by its base letter. The
// multi-letter ligatures in those blocks are left out; lam-alef is the only
// ligature applied, by its own table.
func buildPresentationFormMap() map[rune]presentationForms {
	out := make(map[rune]presentationForms, 256)
	addRange := func(from, to rune) {
		for u := from; u <= to; u++ {
			form, ok := presentationFormFromName(u)
			if !ok {
				continue
			}
			base := presentationBaseRune(u)
			if base == 0 {
				continue
			}
			forms := out[base]
			forms[form] = u
			out[base] = forms
		}
	}
	addRange(0xFB50, 0xFDFF) // Arabic Presentation Forms-A
	addRange(0xFE70, 0xFEFF) // Arabic Presentation Forms-B
	return out
}

func presentationFormFromName(u rune) (int, bool) {
	name := runenames.Name(u)
	if name == "" || !strings.Contains(name, "ARABIC") {
		return 0, false
	}
	switch {
	case strings.Contains(name, "ISOLATED FORM"):
		return formIsol, true
	case strings.Contains(name, "FINAL FORM"):
		return formFina, true
	case strings.Contains(name, "MEDIAL FORM"):
		return formMedi, true
	case strings.Contains(name, "INITIAL FORM"):
		return formInit, true
	default:
		return 0, false
	}
}

// presentationBaseRune maps a presentation form back to its base letter. The
// compatibility decomposition is recomposed canonically so forms of hamza and
// madda carriers resolve to the precomposed letter (FE82 to alef-with-madda,
// not bare alef). Anything that is not exactly one Arabic letter, such as the
// spacing harakat forms and multi-letter ligatures, maps to zero.
func presentationBaseRune(u rune) rune {
	recomposed := norm.NFC.String(norm.NFKD.String(string(u)))
	var base rune
	for _, x := range recomposed {
		if unicode.Is(unicode.M, x) {
			continue
		}
		if !unicode.In(x, unicode.Arabic) {
			return 0
		}
		if base != 0 {
			return 0
		}
		base = x
	}
	return base
}
