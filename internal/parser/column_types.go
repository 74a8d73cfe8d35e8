package parser

import (
	"strings"

	"invplanner/internal/convert"
	"invplanner/internal/model"
)

const (
	// DefaultTypeSampleRows rows sampled per column for type detection
	DefaultTypeSampleRows = 100
	typeDominance         = 0.7
)

// ColumnTypeDetector classifies the dominant value type of table columns
type ColumnTypeDetector struct {
	dates      *convert.DateParser
	sampleRows int
}

// NewColumnTypeDetector creates a detector; sampleRows <= 0 uses the default
func NewColumnTypeDetector(dates *convert.DateParser, sampleRows int) *ColumnTypeDetector {
	if dates == nil {
		dates = convert.NewDateParser()
	}
	if sampleRows <= 0 {
		sampleRows = DefaultTypeSampleRows
	}
	return &ColumnTypeDetector{dates: dates, sampleRows: sampleRows}
}

// Detect column name to type; placeholder unnamed columns are skipped
func (d *ColumnTypeDetector) Detect(t *model.Table) map[string]ColumnType {
	out := make(map[string]ColumnType, len(t.Columns))
	for i, name := range t.Columns {
		if strings.HasPrefix(name, "unnamed_") {
			continue
		}
		out[name] = d.detectColumn(t.Column(i, d.sampleRows))
	}
	return out
}

func (d *ColumnTypeDetector) detectColumn(cells []model.Cell) ColumnType {
	counts := make(map[ColumnType]int)
	total := 0
	for _, c := range cells {
		if c.IsEmpty() {
			continue
		}
		total++
		counts[d.cellType(c)]++
	}
	if total == 0 {
		return ColumnUnknown
	}
	for _, ct := range []ColumnType{ColumnNumeric, ColumnDate, ColumnBoolean, ColumnText} {
		if float64(counts[ct])/float64(total) >= typeDominance {
			return ct
		}
	}
	return ColumnMixed
}

// cellType numeric first, then date, then boolean token, else text
func (d *ColumnTypeDetector) cellType(c model.Cell) ColumnType {
	if convert.IsNumeric(c) {
		return ColumnNumeric
	}
	if c.Kind == model.CellDate {
		return ColumnDate
	}
	if c.Kind == model.CellText {
		if _, ok := d.dates.ParseString(c.Text); ok {
			return ColumnDate
		}
	}
	if convert.IsBoolToken(c) {
		return ColumnBoolean
	}
	return ColumnText
}
