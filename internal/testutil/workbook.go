// Package testutil builds in-memory spreadsheet fixtures for tests.
package testutil

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

// Sheet fixture sheet; nil cells are left blank
type Sheet struct {
	Name string
	Rows [][]any
}

// Workbook builds an xlsx file holding the given sheets in order
func Workbook(t testing.TB, sheets ...Sheet) *excelize.File {
	t.Helper()

	wb := excelize.NewFile()
	defaultSheet := wb.GetSheetName(wb.GetActiveSheetIndex())
	for i, s := range sheets {
		switch {
		case i > 0:
			if _, err := wb.NewSheet(s.Name); err != nil {
				t.Fatalf("new sheet %s: %v", s.Name, err)
			}
		case defaultSheet != s.Name:
			if err := wb.SetSheetName(defaultSheet, s.Name); err != nil {
				t.Fatalf("rename sheet %s: %v", s.Name, err)
			}
		}
		for r, row := range s.Rows {
			for c, v := range row {
				if v == nil {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					t.Fatalf("cell name: %v", err)
				}
				if err := wb.SetCellValue(s.Name, cell, v); err != nil {
					t.Fatalf("set %s!%s: %v", s.Name, cell, err)
				}
			}
		}
	}
	return wb
}

// WorkbookBytes serializes the fixture to xlsx bytes
func WorkbookBytes(t testing.TB, sheets ...Sheet) []byte {
	t.Helper()

	wb := Workbook(t, sheets...)
	defer wb.Close()
	buf, err := wb.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}
