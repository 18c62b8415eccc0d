package feedbackcards

import "errors"

// ErrNoTextualColumns is returned when role detection finds no column whose
// sampled values are all free-form text.
var ErrNoTextualColumns = errors.New("no textual columns in input")

const (
	// classifySampleSize caps how many leading non-empty cells decide
	// whether a column is textual.
	classifySampleSize = 5
	// authorMaxAvgLen is the exclusive upper bound on the average content
	// length of an author column.
	authorMaxAvgLen = 30
)

// ColumnProfile summarizes one column for role detection.
type ColumnProfile struct {
	Index   int
	Name    string
	Textual bool
	AvgLen  float64
}

// Roles names the detected source columns. AuthorIndex is -1 when no column
// qualifies as the author name.
type Roles struct {
	Feedback      string
	Author        string
	FeedbackIndex int
	AuthorIndex   int
}

// BuildProfiles scans the table once per column. A column is textual when its
// first classifySampleSize non-empty cells are all text. The average length
// spans every non-empty cell, with non-text cells measuring 0, so a column of
// numbers with a stray note still averages near zero.
func BuildProfiles(t *Table) []ColumnProfile {
	profiles := make([]ColumnProfile, len(t.Columns))
	for i, name := range t.Columns {
		p := ColumnProfile{Index: i, Name: name}
		sampled := 0
		textual := true
		total, count := 0, 0
		for _, row := range t.Rows {
			if i >= len(row) {
				continue
			}
			c := row[i]
			if c.Empty() {
				continue
			}
			if sampled < classifySampleSize {
				sampled++
				if !c.Text() {
					textual = false
				}
			}
			total += c.Len()
			count++
		}
		p.Textual = sampled > 0 && textual
		if count > 0 {
			p.AvgLen = float64(total) / float64(count)
		}
		profiles[i] = p
	}
	return profiles
}

// DetectRoles picks the feedback and author columns: feedback is the textual
// column with the longest average content, author the remaining textual
// column with the shortest average inside (0, authorMaxAvgLen). Earlier
// columns win ties.
func DetectRoles(profiles []ColumnProfile) (Roles, error) {
	roles := Roles{FeedbackIndex: -1, AuthorIndex: -1}

	var bestLen float64
	for _, p := range profiles {
		if !p.Textual {
			continue
		}
		if roles.FeedbackIndex < 0 || p.AvgLen > bestLen {
			bestLen = p.AvgLen
			roles.Feedback = p.Name
			roles.FeedbackIndex = p.Index
		}
	}
	if roles.FeedbackIndex < 0 {
		return Roles{}, ErrNoTextualColumns
	}

	var bestAuthor float64
	for _, p := range profiles {
		if !p.Textual || p.Index == roles.FeedbackIndex {
			continue
		}
		if p.AvgLen <= 0 || p.AvgLen >= authorMaxAvgLen {
			continue
		}
		if roles.AuthorIndex < 0 || p.AvgLen < bestAuthor {
			bestAuthor = p.AvgLen
			roles.Author = p.Name
			roles.AuthorIndex = p.Index
		}
	}
	return roles, nil
}
