package excel

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"invplanner/internal/convert"
	"invplanner/internal/model"
)

// Workbook opened spreadsheet; implements model.TableProvider
type Workbook struct {
	fileID   string
	fileType string
	file     *excelize.File
	names    []string
	dates    *convert.DateParser

	mu    sync.Mutex
	grids map[string]model.Grid
}

// Open decodes a workbook by file extension. Undecodable bytes yield a file_read_error,
// workbooks without sheets or rows an empty_file error.
func Open(filename string, data []byte) (*Workbook, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(data) == 0 {
		return nil, model.NewWorkbookError(model.KindEmptyFile, "file is empty", model.ErrEmptyWorkbook)
	}
	var (
		wb  *Workbook
		err error
	)
	switch ext {
	case ".csv":
		wb, err = openCSV(filename, data)
	case ".xlsx", ".xls", ".xlsm":
		wb, err = openSpreadsheet(data, strings.TrimPrefix(ext, "."))
	default:
		return nil, model.NewWorkbookError(model.KindInvalidFileType,
			fmt.Sprintf("unsupported file type %q", ext), nil)
	}
	if err != nil {
		return nil, err
	}
	if wb.isEmpty() {
		wb.Close()
		return nil, model.NewWorkbookError(model.KindEmptyFile, "workbook has no data", model.ErrEmptyWorkbook)
	}
	return wb, nil
}

func newWorkbook(fileType string) *Workbook {
	return &Workbook{
		fileID:   uuid.New().String(),
		fileType: fileType,
		dates:    convert.NewDateParser(),
		grids:    make(map[string]model.Grid),
	}
}

func openSpreadsheet(data []byte, fileType string) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, model.NewWorkbookError(model.KindFileRead, "failed to open workbook",
			fmt.Errorf("%w: %v", model.ErrUnreadable, err))
	}
	wb := newWorkbook(fileType)
	wb.file = f
	wb.names = f.GetSheetList()
	return wb, nil
}

// FileID random identifier assigned on open
func (w *Workbook) FileID() string { return w.fileID }

// FileType lowercase extension without the dot
func (w *Workbook) FileType() string { return w.fileType }

// SheetNames sheet names in workbook order
func (w *Workbook) SheetNames() []string {
	out := make([]string, len(w.names))
	copy(out, w.names)
	return out
}

// ReadGrid materializes a sheet once and serves row-limited views of it
func (w *Workbook) ReadGrid(sheet string, limit int) (model.Grid, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	g, ok := w.grids[sheet]
	if !ok {
		if w.file == nil {
			return nil, &model.SheetError{Sheet: sheet, Stage: "read", Err: model.ErrSheetNotFound}
		}
		var err error
		g, err = w.loadSheet(sheet)
		if err != nil {
			return nil, &model.SheetError{Sheet: sheet, Stage: "read", Err: err}
		}
		w.grids[sheet] = g
	}
	return g.Head(limit), nil
}

func (w *Workbook) loadSheet(sheet string) (model.Grid, error) {
	if idx, err := w.file.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, model.ErrSheetNotFound
	}
	formatted, err := w.file.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	raw, err := w.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	g := make(model.Grid, len(formatted))
	for r, row := range formatted {
		cells := make([]model.Cell, len(row))
		for c, text := range row {
			rawText := text
			if r < len(raw) && c < len(raw[r]) {
				rawText = raw[r][c]
			}
			cells[c] = w.inferCell(w.cellType(sheet, c, r), rawText, text)
		}
		g[r] = cells
	}
	return g.TrimTrailingEmpty(), nil
}

func (w *Workbook) cellType(sheet string, col, row int) excelize.CellType {
	axis, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return excelize.CellTypeUnset
	}
	typ, err := w.file.GetCellType(sheet, axis)
	if err != nil {
		return excelize.CellTypeUnset
	}
	return typ
}

// inferCell types a cell from its stored type and its stored and displayed forms.
// String cells stay text even when they look numeric ("00123", "1E3"). A stored
// number displayed as a date is a date serial.
func (w *Workbook) inferCell(typ excelize.CellType, raw, formatted string) model.Cell {
	display := strings.TrimSpace(formatted)
	if display == "" {
		return model.Empty
	}
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError:
		return model.TextCell(display)
	case excelize.CellTypeBool:
		return model.BoolCell(raw == "1" || strings.EqualFold(display, "TRUE"))
	case excelize.CellTypeDate:
		if t, ok := w.dates.ParseString(strings.TrimSpace(raw)); ok {
			return model.DateCell(t)
		}
		return model.TextCell(display)
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return model.TextCell(display)
	}
	if _, numErr := strconv.ParseFloat(display, 64); numErr != nil && looksLikeDate(display) {
		if t, ok := w.dates.ParseString(display); ok {
			if serial, ok := convert.FromSerial(f); ok {
				return model.DateCell(serial)
			}
			return model.DateCell(t)
		}
	}
	return model.NumberCell(f)
}

// looksLikeDate cheap pre-filter before running the date cascade on a display string
func looksLikeDate(s string) bool {
	return strings.ContainsAny(s, "/-:") || strings.IndexFunc(s, func(r rune) bool {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	}) >= 0
}

func (w *Workbook) isEmpty() bool {
	if len(w.names) == 0 {
		return true
	}
	for _, name := range w.names {
		g, err := w.ReadGrid(name, 0)
		if err != nil || len(g) > 0 {
			return false
		}
	}
	return true
}

// Close releases the underlying spreadsheet handle
func (w *Workbook) Close() error {
	if w.file == nil {
		return nil
	}
	return w.file.Close()
}
