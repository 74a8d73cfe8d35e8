package importer

import (
	"fmt"

	"invplanner/internal/model"
	"invplanner/internal/parser"
)

// processSheet runs the per-sheet pipeline. Panics are contained to the sheet.
func (c *Coordinator) processSheet(ec *extractContext, sheet string) (rep model.SheetReport, records []model.Record) {
	rep = model.SheetReport{Sheet: sheet, Status: model.SheetSkipped}
	log := c.log.WithSheet(sheet)

	defer func() {
		if r := recover(); r != nil {
			err := &model.SheetError{Sheet: sheet, Stage: "extract", Err: fmt.Errorf("panic: %v", r)}
			rep.Status = model.SheetFailed
			rep.Reason = err.Error()
			rep.Records = 0
			records = nil
			ec.rec.Warn("extract", sheet, "sheet processing failed", err)
		}
	}()

	sample, err := ec.provider.ReadGrid(sheet, c.opts.SampleRows+1)
	if err != nil {
		rep.Status = model.SheetFailed
		rep.Reason = "read failed"
		ec.rec.Warn("read", sheet, "failed to read sample", err)
		return rep, nil
	}
	if len(sample) < 2 || sample.Width() < 2 {
		rep.Reason = "empty or fewer than 2 columns"
		ec.rec.Info("read", sheet, rep.Reason)
		return rep, nil
	}

	recognition := ec.recognizer.Recognize(sheet)
	if !recognition.Recognized() {
		rep.Status = model.SheetUnclassified
		rep.Reason = "sheet name matched no category"
		ec.rec.Info("classify", sheet, rep.Reason)
		return rep, nil
	}
	rep.Category = recognition.Category
	rep.Score = recognition.Score
	schema, _ := model.SchemaFor(recognition.Category)

	table, pivot, headerRow, err := c.loadTable(ec, sheet, sample, schema)
	if err != nil {
		rep.Status = model.SheetFailed
		rep.Reason = "read failed"
		ec.rec.Warn("read", sheet, "failed to read sheet", err)
		return rep, nil
	}
	rep.Pivot = pivot
	rep.HeaderRow = headerRow
	if table.Len() == 0 {
		rep.Reason = "no data rows"
		ec.rec.Info("read", sheet, rep.Reason)
		return rep, nil
	}

	table.Columns = parser.UniqueColumns(table.Columns)
	types := ec.types.Detect(table)
	fm := ec.mapper.Map(table.Columns, recognition.Category, pivot, types)
	rep.Mapped = fm.Summary()
	if !fm.Sufficient(schema) {
		rep.Reason = fmt.Sprintf("insufficient mapping: %d columns mapped", fm.Len())
		ec.rec.Info("map", sheet, rep.Reason)
		return rep, nil
	}

	records = c.buildRecords(table, fm, schema)
	rep.Records = len(records)
	rep.Status = model.SheetExtracted
	log.Debug().
		Str("category", string(recognition.Category)).
		Bool("pivot", pivot).
		Int("header_row", headerRow).
		Int("records", len(records)).
		Msg("sheet extracted")
	ec.rec.Info("extract", sheet, fmt.Sprintf("%d %s records", len(records), recognition.Category))
	return rep, records
}

// loadTable reads the full sheet, unpivoting when the sample looks like a pivot.
// A pivot that normalizes to nothing falls back to the regular header path.
func (c *Coordinator) loadTable(ec *extractContext, sheet string, sample model.Grid, schema model.Schema) (*model.Table, bool, int, error) {
	full, err := ec.provider.ReadGrid(sheet, 0)
	if err != nil {
		return nil, false, 0, err
	}

	if signals := parser.DetectPivot(sample); signals.IsPivot() {
		ps := parser.ExtractPivotStructure(full)
		if t := parser.NormalizePivot(full, ps); t.Len() > 0 {
			ec.rec.Info("pivot", sheet, fmt.Sprintf("unpivoted %d cells", t.Len()))
			return t, true, ps.DataStartRow, nil
		}
		ec.rec.Info("pivot", sheet, "pivot normalization yielded no rows, using header detection")
	}

	phrases := c.vocab.RequiredPhrases(ec.businessType, schema)
	headerRow := parser.LocateHeaderRow(sample, phrases, c.opts.HeaderScanRows)
	return model.NewTable(full, headerRow), false, headerRow, nil
}

// buildRecords converts mapped cells, drops rows missing a required field and
// rows with fewer than max(2, mapped/2) values
func (c *Coordinator) buildRecords(t *model.Table, fm parser.FieldMap, schema model.Schema) []model.Record {
	mappings := fm.ForSchema(schema)
	minValues := len(mappings) / 2
	if minValues < 2 {
		minValues = 2
	}
	required := schema.Required()

	var out []model.Record
	for _, row := range t.Rows {
		rec := make(model.Record, len(mappings))
		for _, m := range mappings {
			if m.ColumnIndex >= len(row) {
				continue
			}
			spec, _ := schema.Spec(m.Field)
			if v, ok := c.validator.Convert(row[m.ColumnIndex], spec); ok {
				rec[m.Field] = v
			}
		}
		if !hasAll(rec, required) || len(rec) < minValues {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func hasAll(rec model.Record, fields []model.CanonicalField) bool {
	for _, f := range fields {
		if _, ok := rec[f]; !ok {
			return false
		}
	}
	return true
}
