package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"invplanner/internal/model"
)

const summarySheet = "Classification"

// Exporter writes extracted records to a normalized workbook
type Exporter struct{}

// NewExporter creates an Exporter
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export writes a summary sheet plus one sheet per category that has records.
// Columns follow the category schema; dates are written as date cells.
func (e *Exporter) Export(data model.ExtractedData, verdict model.ClassificationVerdict) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		f.Close()
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		f.Close()
		return nil, err
	}
	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		f.Close()
		return nil, err
	}

	summary := [][]interface{}{
		{"Metric", "Value"},
		{"Inventory planning", verdict.IsInventoryPlanning},
		{"Confidence", verdict.Confidence},
		{"Business type", string(verdict.BusinessType)},
		{"Justification", verdict.Justification},
	}
	for _, c := range model.OutputCategories {
		summary = append(summary, []interface{}{c.Title() + " records", len(data[c])})
	}
	for i, row := range summary {
		for j, val := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			if err := f.SetCellValue(summarySheet, cell, val); err != nil {
				f.Close()
				return nil, err
			}
		}
	}
	f.SetRowStyle(summarySheet, 1, 1, headerStyle)
	f.SetColWidth(summarySheet, "A", "A", 24)
	f.SetColWidth(summarySheet, "B", "B", 60)

	for _, schema := range model.Schemas() {
		records := data[schema.Category]
		if len(records) == 0 {
			continue
		}
		if err := e.writeCategory(f, schema, records, headerStyle, dateStyle); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func (e *Exporter) writeCategory(f *excelize.File, schema model.Schema, records []model.Record, headerStyle, dateStyle int) error {
	sheet := schema.Category.Title()
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	for i, fs := range schema.Fields {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, string(fs.Field)); err != nil {
			return err
		}
	}
	f.SetRowStyle(sheet, 1, 1, headerStyle)

	for r, rec := range records {
		row := r + 2
		for i, fs := range schema.Fields {
			v, ok := rec[fs.Field]
			if !ok {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			val := v.Interface()
			if v.Type == model.TypeDate {
				val = v.Date
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("%s!%s: %w", sheet, cell, err)
			}
			if v.Type == model.TypeDate {
				f.SetCellStyle(sheet, cell, cell, dateStyle)
			}
		}
	}
	last, _ := excelize.ColumnNumberToName(len(schema.Fields))
	f.SetColWidth(sheet, "A", last, 16)
	return nil
}
