package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"invplanner/internal/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// openCSV reads a CSV file as a single sheet named after the file
func openCSV(filename string, data []byte) (*Workbook, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, model.NewWorkbookError(model.KindFileRead, "failed to parse csv",
			fmt.Errorf("%w: %v", model.ErrUnreadable, err))
	}

	g := make(model.Grid, len(records))
	for i, rec := range records {
		row := make([]model.Cell, len(rec))
		for j, v := range rec {
			row[j] = csvCell(v)
		}
		g[i] = row
	}

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if name == "" {
		name = "Sheet1"
	}
	wb := newWorkbook("csv")
	wb.names = []string{name}
	wb.grids[name] = g.TrimTrailingEmpty()
	return wb, nil
}

func csvCell(v string) model.Cell {
	s := strings.TrimSpace(v)
	if s == "" {
		return model.Empty
	}
	if hasLeadingZero(s) {
		return model.TextCell(s)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return model.NumberCell(f)
	}
	return model.TextCell(s)
}

// hasLeadingZero reports codes like "00123" that lose their identity as numbers
func hasLeadingZero(s string) bool {
	return len(s) > 1 && s[0] == '0' && s[1] >= '0' && s[1] <= '9'
}
