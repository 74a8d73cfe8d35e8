package parser

import (
	"fmt"
	"strings"

	"invplanner/internal/convert"
	"invplanner/internal/model"
)

const (
	pivotMinSignals        = 2
	pivotNumericShare      = 0.7
	pivotRowHeaderMaxCols  = 5
	pivotRowHeaderStrShare = 0.7
	pivotRowHeaderUnique   = 0.4
	pivotBodyScanRows      = 10

	// Normalized pivot column labels
	ColumnHeaderLabel = "column_header"
	ValueLabel        = "value"
)

// RowHeaderLabel label of the i-th (1-based) row header column in a normalized pivot
func RowHeaderLabel(i int) string { return fmt.Sprintf("row_header_%d", i) }

// PivotSignals individual heuristics evaluated by DetectPivot
type PivotSignals struct {
	EmptyCorner          bool `json:"emptyCorner"`
	PartialHeaderRows    bool `json:"partialHeaderRows"`
	HierarchicalColumns  bool `json:"hierarchicalColumns"`
	NumericConcentration bool `json:"numericConcentration"`
}

// Count number of signals that fired
func (s PivotSignals) Count() int {
	n := 0
	for _, b := range []bool{s.EmptyCorner, s.PartialHeaderRows, s.HierarchicalColumns, s.NumericConcentration} {
		if b {
			n++
		}
	}
	return n
}

// IsPivot at least two signals
func (s PivotSignals) IsPivot() bool { return s.Count() >= pivotMinSignals }

// DetectPivot evaluates pivot heuristics on a raw sample grid.
// Grids smaller than 3x3 are never pivots.
func DetectPivot(g model.Grid) PivotSignals {
	var s PivotSignals
	rows, width := len(g), g.Width()
	if rows < 3 || width < 3 {
		return s
	}

	s.EmptyCorner = g.At(0, 0).IsEmpty()

	for r := 0; r < 3; r++ {
		if n := g.NonEmptyCount(r); n > 0 && n < width {
			s.PartialHeaderRows = true
			break
		}
	}

	if width > 3 {
		distinct := make([]int, 3)
		for c := 0; c < 3; c++ {
			seen := make(map[string]bool)
			for r := 0; r < 3; r++ {
				if cell := g.At(r, c); !cell.IsEmpty() {
					seen[cell.String()] = true
				}
			}
			distinct[c] = len(seen)
		}
		if float64(distinct[0]) < float64(distinct[1]+distinct[2])/2 {
			s.HierarchicalColumns = true
		}
	}

	if rows > 5 && width > 5 {
		numeric, total := 0, 0
		for r := 3; r < rows; r++ {
			for c := 1; c < width; c++ {
				cell := g.At(r, c)
				if cell.IsEmpty() {
					continue
				}
				total++
				if cell.Kind == model.CellNumber {
					numeric++
				}
			}
		}
		if total > 0 && float64(numeric)/float64(total) > pivotNumericShare {
			s.NumericConcentration = true
		}
	}
	return s
}

// PivotStructure header layout of a pivot grid
type PivotStructure struct {
	RowHeaderCols []int `json:"rowHeaderCols"`
	ColHeaderRows []int `json:"colHeaderRows"`
	DataStartRow  int   `json:"dataStartRow"`
	DataStartCol  int   `json:"dataStartCol"`
}

// ExtractPivotStructure locates the data body and the header rows and columns.
// Row 0 is always a header row; the body starts at the first later row that is more
// than half filled, has a leading label and at least one numeric cell after it.
func ExtractPivotStructure(g model.Grid) PivotStructure {
	width := g.Width()
	ps := PivotStructure{}
	if len(g) == 0 || width == 0 {
		return ps
	}

	ps.DataStartRow = 1
	if len(g) == 1 {
		ps.DataStartRow = 0
	}
	for r := 1; r < len(g) && r < pivotBodyScanRows; r++ {
		if isPivotBodyRow(g, r, width) {
			ps.DataStartRow = r
			break
		}
	}
	for r := 0; r < ps.DataStartRow; r++ {
		ps.ColHeaderRows = append(ps.ColHeaderRows, r)
	}

	// leave at least one value column
	for c := 0; c < pivotRowHeaderMaxCols && c < width-1; c++ {
		var values []model.Cell
		for r := ps.DataStartRow; r < len(g); r++ {
			if cell := g.At(r, c); !cell.IsEmpty() {
				values = append(values, cell)
			}
		}
		if len(values) == 0 {
			break
		}
		strs := 0
		distinct := make(map[string]bool)
		for _, v := range values {
			if v.Kind == model.CellText && !convert.IsNumeric(v) {
				strs++
			}
			distinct[v.String()] = true
		}
		strShare := float64(strs) / float64(len(values))
		uniqueShare := float64(len(distinct)) / float64(len(values))
		if strShare < pivotRowHeaderStrShare && uniqueShare >= pivotRowHeaderUnique {
			break
		}
		ps.RowHeaderCols = append(ps.RowHeaderCols, c)
		ps.DataStartCol = c + 1
	}

	if len(ps.RowHeaderCols) == 0 && ps.DataStartRow > 0 {
		ps.RowHeaderCols = []int{0}
		ps.DataStartCol = 1
	}
	return ps
}

func isPivotBodyRow(g model.Grid, r, width int) bool {
	if float64(g.NonEmptyCount(r)) <= float64(width)*0.5 {
		return false
	}
	if g.At(r, 0).IsEmpty() {
		return false
	}
	for c := 1; c < width; c++ {
		if convert.IsNumeric(g.At(r, c)) {
			return true
		}
	}
	return false
}

// NormalizePivot unpivots the grid into row_header_N, column_header, value rows.
// Only non-null data cells produce rows.
func NormalizePivot(g model.Grid, ps PivotStructure) *model.Table {
	width := g.Width()
	t := &model.Table{}
	for i := range ps.RowHeaderCols {
		t.Columns = append(t.Columns, RowHeaderLabel(i+1))
	}
	t.Columns = append(t.Columns, ColumnHeaderLabel, ValueLabel)

	labels := make([]model.Cell, width)
	for c := ps.DataStartCol; c < width; c++ {
		labels[c] = columnLabel(g, ps.ColHeaderRows, c)
	}

	for r := ps.DataStartRow; r < len(g); r++ {
		for c := ps.DataStartCol; c < width; c++ {
			v := g.At(r, c)
			if v.IsEmpty() {
				continue
			}
			row := make([]model.Cell, 0, len(t.Columns))
			for _, hc := range ps.RowHeaderCols {
				row = append(row, g.At(r, hc))
			}
			row = append(row, labels[c], v)
			t.Rows = append(t.Rows, row)
		}
	}
	return t
}

// columnLabel joins the non-null header cells of a column with " - ".
// A single header cell is kept as is so typed dates survive.
func columnLabel(g model.Grid, headerRows []int, c int) model.Cell {
	var parts []model.Cell
	for _, r := range headerRows {
		if cell := g.At(r, c); !cell.IsEmpty() {
			parts = append(parts, cell)
		}
	}
	switch len(parts) {
	case 0:
		return model.Empty
	case 1:
		return parts[0]
	}
	strs := make([]string, len(parts))
	for i, p := range parts {
		strs[i] = strings.TrimSpace(p.String())
	}
	return model.TextCell(strings.Join(strs, " - "))
}
