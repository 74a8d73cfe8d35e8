package importer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invplanner/internal/model"
	"invplanner/internal/service/excel"
	"invplanner/internal/testutil"
)

func openFixture(t *testing.T, sheets ...testutil.Sheet) *excel.Workbook {
	t.Helper()
	wb, err := excel.Open("fixture.xlsx", testutil.WorkbookBytes(t, sheets...))
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })
	return wb
}

func extract(t *testing.T, p model.TableProvider) *Report {
	t.Helper()
	return NewCoordinator(DefaultOptions(), nil).Extract(context.Background(), p, model.BusinessGeneric, nil)
}

func TestExtractSalesHistoryRoundTrip(t *testing.T) {
	wb := openFixture(t, testutil.Sheet{
		Name: "Sales History",
		Rows: [][]any{
			{"SKU", "Date", "Qty"},
			{"A1", "2024-01-15", 10},
		},
	})

	report := extract(t, wb)
	sales := report.Data[model.CategorySalesHistory]
	require.Len(t, sales, 1)
	rec := sales[0]
	assert.Len(t, rec, 3)
	assert.Equal(t, "A1", rec[model.FieldSKU].Text)
	assert.Equal(t, "2024-01-15", rec[model.FieldTimePeriod].Date.Format(model.DateLayout))
	assert.Equal(t, 10.0, rec[model.FieldQuantity].Number)

	require.Len(t, report.Sheets, 1)
	assert.Equal(t, model.SheetExtracted, report.Sheets[0].Status)
	assert.False(t, report.Sheets[0].Pivot)
	assert.Empty(t, report.Data[model.CategoryUnclassified])
}

func TestExtractSalesPivot(t *testing.T) {
	wb := openFixture(t, testutil.Sheet{
		Name: "Sales History",
		Rows: [][]any{
			{nil, "Jan 2024", "Feb 2024"},
			{"A1", 10, 20},
			{"A2", 5, nil},
		},
	})

	report := extract(t, wb)
	sales := report.Data[model.CategorySalesHistory]
	require.Len(t, sales, 3)
	assert.True(t, report.Sheets[0].Pivot)

	got := map[string]float64{}
	for _, rec := range sales {
		key := rec[model.FieldSKU].Text + "@" + rec[model.FieldTimePeriod].Date.Format(model.DateLayout)
		got[key] = rec[model.FieldQuantity].Number
	}
	assert.Equal(t, map[string]float64{
		"A1@2024-01-01": 10,
		"A1@2024-02-01": 20,
		"A2@2024-01-01": 5,
	}, got)
}

func TestExtractDropsInvalidRows(t *testing.T) {
	wb := openFixture(t, testutil.Sheet{
		Name: "Inventory",
		Rows: [][]any{
			{"Stock Report"},
			{"SKU", "Qty", "Location"},
			{"A1", 5, "WH1"},
			{"A#2", 3, "WH1"},
			{"A3", nil, "WH2"},
			{"A4", -1, "WH2"},
			{"A5", "$1,200", nil},
		},
	})

	report := extract(t, wb)
	inv := report.Data[model.CategoryInventory]
	require.Len(t, inv, 2)
	assert.Equal(t, 1, report.Sheets[0].HeaderRow)
	schema, _ := model.SchemaFor(model.CategoryInventory)
	for _, rec := range inv {
		for _, f := range schema.Required() {
			assert.Contains(t, rec, f)
		}
	}
	assert.Equal(t, 1200.0, inv[1][model.FieldQuantity].Number)
	assert.NotContains(t, inv[1], model.FieldLocation)
}

func TestExtractPurchaseOrders(t *testing.T) {
	wb := openFixture(t, testutil.Sheet{
		Name: "Inbound",
		Rows: [][]any{
			{"PO Number", "SKU", "Qty", "ETA", "Status"},
			{"PO-1", "A1", 5, "2024-02-01", "Received"},
			{"PO-2", "A2", 7, "03/15/2024", "In Transit"},
		},
	})

	report := extract(t, wb)
	pos := report.Data[model.CategoryPurchaseOrders]
	require.Len(t, pos, 2)
	assert.Equal(t, "PO-1", pos[0][model.FieldPurchaseOrderID].Text)
	assert.True(t, pos[0][model.FieldHasArrived].Bool)
	assert.False(t, pos[1][model.FieldHasArrived].Bool)
	assert.Equal(t, "2024-03-15", pos[1][model.FieldArrivalDate].Date.Format(model.DateLayout))
}

type flakyProvider struct {
	*model.MemoryProvider
	panicOn string
}

func (f flakyProvider) ReadGrid(sheet string, limit int) (model.Grid, error) {
	if sheet == f.panicOn {
		panic("corrupt sheet")
	}
	return f.MemoryProvider.ReadGrid(sheet, limit)
}

func TestExtractContinuesPastBadSheets(t *testing.T) {
	good := model.Grid{
		{model.TextCell("SKU"), model.TextCell("Qty")},
		{model.TextCell("A1"), model.NumberCell(4)},
	}
	p := flakyProvider{
		MemoryProvider: model.NewMemoryProvider().
			AddSheet("Inventory Snapshot", good).
			AddSheet("Notes", good).
			AddSheet("Stock", good),
		panicOn: "Inventory Snapshot",
	}

	report := extract(t, p)
	require.Len(t, report.Sheets, 3)
	assert.Equal(t, model.SheetFailed, report.Sheets[0].Status)
	assert.Equal(t, model.SheetUnclassified, report.Sheets[1].Status)
	assert.Equal(t, model.SheetExtracted, report.Sheets[2].Status)
	assert.Len(t, report.Data[model.CategoryInventory], 1)
	assert.Equal(t, 1, report.Failed())
}

func TestExtractSkipsInsufficientMapping(t *testing.T) {
	p := model.NewMemoryProvider().AddSheet("Inventory", model.Grid{
		{model.TextCell("Foo"), model.TextCell("Bar")},
		{model.TextCell("x"), model.TextCell("y")},
	})
	report := extract(t, p)
	assert.Equal(t, model.SheetSkipped, report.Sheets[0].Status)
	assert.Zero(t, report.Data.Count())
}

func TestStreamEndsWithReport(t *testing.T) {
	p := model.NewMemoryProvider().AddSheet("Stock", model.Grid{
		{model.TextCell("SKU"), model.TextCell("Qty")},
		{model.TextCell("A1"), model.NumberCell(4)},
	})
	var last ProgressEvent
	count := 0
	for evt := range NewCoordinator(DefaultOptions(), nil).Stream(context.Background(), p, model.BusinessGeneric, nil) {
		last = evt
		count++
	}
	assert.Equal(t, 3, count)
	assert.Equal(t, "done", last.Type)
	report, ok := last.Data.(*Report)
	require.True(t, ok)
	assert.Equal(t, 1, report.Data.Count())
}

func TestExtractHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := model.NewMemoryProvider().AddSheet("Stock", model.Grid{{model.TextCell("SKU")}})
	report := NewCoordinator(DefaultOptions(), nil).Extract(ctx, p, model.BusinessGeneric, nil)
	assert.Empty(t, report.Sheets)
}
