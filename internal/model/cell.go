package model

import (
	"strconv"
	"strings"
	"time"
)

// CellKind kind of a raw worksheet cell
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
	CellDate
	CellBool
)

func (k CellKind) String() string {
	switch k {
	case CellText:
		return "text"
	case CellNumber:
		return "number"
	case CellDate:
		return "date"
	case CellBool:
		return "bool"
	}
	return "empty"
}

// Cell raw worksheet value; exactly one payload is meaningful per Kind
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
	Time   time.Time
	Bool   bool
}

// Empty null cell
var Empty = Cell{}

// TextCell builds a text cell; blank text collapses to Empty
func TextCell(s string) Cell {
	if strings.TrimSpace(s) == "" {
		return Empty
	}
	return Cell{Kind: CellText, Text: s}
}

// NumberCell builds a numeric cell
func NumberCell(f float64) Cell { return Cell{Kind: CellNumber, Number: f} }

// DateCell builds a date cell
func DateCell(t time.Time) Cell { return Cell{Kind: CellDate, Time: t} }

// BoolCell builds a boolean cell
func BoolCell(b bool) Cell { return Cell{Kind: CellBool, Bool: b} }

// IsEmpty reports whether the cell is null
func (c Cell) IsEmpty() bool { return c.Kind == CellEmpty }

// String stringified form used for fuzzy matching and labels
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellDate:
		if c.Time.Hour() == 0 && c.Time.Minute() == 0 && c.Time.Second() == 0 {
			return c.Time.Format("2006-01-02")
		}
		return c.Time.Format("2006-01-02 15:04:05")
	case CellBool:
		if c.Bool {
			return "true"
		}
		return "false"
	}
	return ""
}

// Normalized lowercase trimmed string form
func (c Cell) Normalized() string {
	return strings.ToLower(strings.TrimSpace(c.String()))
}
