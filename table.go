package feedbackcards

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// CellKind classifies a raw cell value.
type CellKind int

const (
	KindEmpty CellKind = iota
	KindText
	KindNumber
	KindBool
	KindTime
)

func (k CellKind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	}
	return "unknown"
}

// Cell is one value from the source table. Raw preserves the original text
// and Kind records what the value looks like.
type Cell struct {
	Raw  string
	Kind CellKind
}

// NewCell sniffs the kind of a raw cell value. CSV and XLSX rows both arrive
// as strings, so numbers, booleans, and timestamps are recognized by shape.
func NewCell(raw string) Cell {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Cell{Raw: raw, Kind: KindEmpty}
	}
	if _, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Cell{Raw: raw, Kind: KindNumber}
	}
	switch strings.ToLower(trimmed) {
	case "true", "false":
		return Cell{Raw: raw, Kind: KindBool}
	}
	if isTimestamp(trimmed) {
		return Cell{Raw: raw, Kind: KindTime}
	}
	return Cell{Raw: raw, Kind: KindText}
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"01-02-06", // excelize renders date cells like this by default
	"1/2/06 15:04",
}

func isTimestamp(s string) bool {
	for _, layout := range timeLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// Empty reports whether the cell has no usable content.
func (c Cell) Empty() bool { return c.Kind == KindEmpty }

// Text reports whether the cell holds free-form text.
func (c Cell) Text() bool { return c.Kind == KindText }

// Len is the rune count of text cells; other kinds measure 0.
func (c Cell) Len() int {
	if c.Kind != KindText {
		return 0
	}
	return utf8.RuneCountInString(c.Raw)
}

// Table is an ordered set of named columns over row-major records. Every row
// holds exactly len(Columns) cells; readers pad short rows with empty cells.
type Table struct {
	Columns []string
	Rows    [][]Cell
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// CellAt returns the cell in the named column of row i. Missing columns and
// out-of-range rows read as empty.
func (t *Table) CellAt(row int, name string) Cell {
	idx := t.ColumnIndex(name)
	if idx < 0 || row < 0 || row >= len(t.Rows) || idx >= len(t.Rows[row]) {
		return Cell{}
	}
	return t.Rows[row][idx]
}
