package model

import "strings"

// Grid row-major raw cells of a worksheet; rows may be ragged
type Grid [][]Cell

// Width widest row length
func (g Grid) Width() int {
	w := 0
	for _, row := range g {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// At returns the cell at (r, c), Empty when out of range
func (g Grid) At(r, c int) Cell {
	if r < 0 || r >= len(g) || c < 0 || c >= len(g[r]) {
		return Empty
	}
	return g[r][c]
}

// Head first n rows
func (g Grid) Head(n int) Grid {
	if n <= 0 || n >= len(g) {
		return g
	}
	return g[:n]
}

// NonEmptyCount number of non-null cells in row r
func (g Grid) NonEmptyCount(r int) int {
	if r < 0 || r >= len(g) {
		return 0
	}
	n := 0
	for _, c := range g[r] {
		if !c.IsEmpty() {
			n++
		}
	}
	return n
}

// TrimTrailingEmpty drops trailing all-empty rows
func (g Grid) TrimTrailingEmpty() Grid {
	end := len(g)
	for end > 0 && g.NonEmptyCount(end-1) == 0 {
		end--
	}
	return g[:end]
}

// Table header-resolved view over a grid
type Table struct {
	Columns []string
	Rows    [][]Cell
}

// NewTable consumes grid row headerRow as column labels; rows above it are discarded
func NewTable(g Grid, headerRow int) *Table {
	t := &Table{}
	if headerRow < 0 || headerRow >= len(g) {
		return t
	}
	width := g.Width()
	t.Columns = make([]string, width)
	for c := 0; c < width; c++ {
		t.Columns[c] = strings.TrimSpace(g.At(headerRow, c).String())
	}
	for r := headerRow + 1; r < len(g); r++ {
		if g.NonEmptyCount(r) == 0 {
			continue
		}
		row := make([]Cell, width)
		for c := 0; c < width; c++ {
			row[c] = g.At(r, c)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Len number of data rows
func (t *Table) Len() int { return len(t.Rows) }

// ColumnIndex index of the named column, -1 when absent
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column cells of column i, capped at limit rows when limit > 0
func (t *Table) Column(i, limit int) []Cell {
	n := len(t.Rows)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Cell, 0, n)
	for r := 0; r < n; r++ {
		if i < len(t.Rows[r]) {
			out = append(out, t.Rows[r][i])
		} else {
			out = append(out, Empty)
		}
	}
	return out
}
