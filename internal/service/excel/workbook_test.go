package excel_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"invplanner/internal/model"
	"invplanner/internal/service/excel"
	"invplanner/internal/testutil"
)

func TestOpenXLSXTypesCells(t *testing.T) {
	f := testutil.Workbook(t, testutil.Sheet{
		Name: "Inventory",
		Rows: [][]any{
			{"SKU", "Counted", "Qty", "Active"},
			{"A1", 45306, 12.5, true},
		},
	})
	// builtin format 14 renders as mm-dd-yy
	style, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Inventory", "B2", "B2", style))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	wb, err := excel.Open("stock.xlsx", buf.Bytes())
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"Inventory"}, wb.SheetNames())
	assert.Equal(t, "xlsx", wb.FileType())
	assert.NotEmpty(t, wb.FileID())

	g, err := wb.ReadGrid("Inventory", 0)
	require.NoError(t, err)
	require.Len(t, g, 2)
	assert.Equal(t, model.CellText, g[0][0].Kind)
	assert.Equal(t, "A1", g[1][0].Text)
	assert.Equal(t, model.CellDate, g.At(1, 1).Kind)
	assert.Equal(t, "2024-01-15", g.At(1, 1).String())
	assert.Equal(t, model.NumberCell(12.5), g.At(1, 2))
	assert.Equal(t, model.BoolCell(true), g.At(1, 3))

	head, err := wb.ReadGrid("Inventory", 1)
	require.NoError(t, err)
	assert.Len(t, head, 1)

	_, err = wb.ReadGrid("Missing", 0)
	assert.ErrorIs(t, err, model.ErrSheetNotFound)
}

func TestOpenCSV(t *testing.T) {
	data := []byte("\xEF\xBB\xBFSKU,Qty,Date\nA1,10,2024-01-15\nA2,,\n")
	wb, err := excel.Open("sales_history.csv", data)
	require.NoError(t, err)

	assert.Equal(t, []string{"sales_history"}, wb.SheetNames())
	g, err := wb.ReadGrid("sales_history", 0)
	require.NoError(t, err)
	require.Len(t, g, 3)
	assert.Equal(t, "SKU", g[0][0].Text)
	assert.Equal(t, model.NumberCell(10), g[1][1])
	assert.Equal(t, model.TextCell("2024-01-15"), g[1][2])
	assert.True(t, g[2][1].IsEmpty())
}

func TestOpenErrors(t *testing.T) {
	_, err := excel.Open("broken.xlsx", []byte("definitely not a zip archive"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUnreadable))
	assert.Equal(t, model.KindFileRead, model.KindOf(err))

	_, err = excel.Open("empty.xlsx", nil)
	assert.Equal(t, model.KindEmptyFile, model.KindOf(err))

	_, err = excel.Open("blank.csv", []byte("\n\n"))
	assert.ErrorIs(t, err, model.ErrEmptyWorkbook)

	_, err = excel.Open("notes.txt", []byte("hello"))
	assert.Equal(t, model.KindInvalidFileType, model.KindOf(err))

	blank := testutil.WorkbookBytes(t, testutil.Sheet{Name: "Sheet1"})
	_, err = excel.Open("blank.xlsx", blank)
	assert.Equal(t, model.KindEmptyFile, model.KindOf(err))
}

func TestOpenXLSXKeepsTextCodes(t *testing.T) {
	data := testutil.WorkbookBytes(t, testutil.Sheet{
		Name: "Inventory",
		Rows: [][]any{
			{"SKU", "Qty"},
			{"00123", 5},
			{"1E3", 7},
			{"42", 9},
		},
	})
	wb, err := excel.Open("stock.xlsx", data)
	require.NoError(t, err)
	defer wb.Close()

	g, err := wb.ReadGrid("Inventory", 0)
	require.NoError(t, err)
	require.Len(t, g, 4)
	assert.Equal(t, model.TextCell("00123"), g.At(1, 0))
	assert.Equal(t, model.TextCell("1E3"), g.At(2, 0))
	assert.Equal(t, model.TextCell("42"), g.At(3, 0))
	assert.Equal(t, model.NumberCell(5), g.At(1, 1))
	assert.Equal(t, model.NumberCell(7), g.At(2, 1))
}

func TestOpenCSVKeepsLeadingZeroCodes(t *testing.T) {
	wb, err := excel.Open("items.csv", []byte("SKU,Qty\n00123,5\n0.5,0\n"))
	require.NoError(t, err)

	g, err := wb.ReadGrid("items", 0)
	require.NoError(t, err)
	assert.Equal(t, model.TextCell("00123"), g.At(1, 0))
	assert.Equal(t, model.NumberCell(5), g.At(1, 1))
	assert.Equal(t, model.NumberCell(0.5), g.At(2, 0))
	assert.Equal(t, model.NumberCell(0), g.At(2, 1))
}
