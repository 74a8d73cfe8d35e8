package analysis

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invplanner/internal/convert"
	"invplanner/internal/importer"
	"invplanner/internal/model"
	"invplanner/internal/testutil"
)

func newAnalyzer() *Analyzer {
	return NewAnalyzer(Options{Extract: importer.DefaultOptions()}, nil)
}

func TestAnalyzeSalesHistory(t *testing.T) {
	data := testutil.WorkbookBytes(t, testutil.Sheet{
		Name: "Sales History",
		Rows: [][]any{
			{"SKU", "Date", "Qty"},
			{"A1", "2024-01-15", "10"},
		},
	})

	res, err := newAnalyzer().Analyze(context.Background(), "plan.xlsx", data)
	require.NoError(t, err)

	assert.True(t, res.Classification.IsInventoryPlanning)
	assert.Equal(t, model.BusinessGeneric, res.Classification.BusinessType)
	require.Len(t, res.ExtractedData[model.CategorySalesHistory], 1)
	rec := res.ExtractedData[model.CategorySalesHistory][0]
	assert.Equal(t, "A1", rec[model.FieldSKU].Text)
	assert.Equal(t, 10.0, rec[model.FieldQuantity].Number)

	for _, c := range model.OutputCategories {
		_, ok := res.ExtractedData[c]
		assert.True(t, ok, "missing bucket %s", c)
	}
	assert.NotEmpty(t, res.Debug.RequestID)
	assert.Equal(t, "xlsx", res.Debug.FileType)
	assert.Equal(t, []string{"Sales History"}, res.Debug.Sheets)
	assert.Empty(t, res.Debug.ExtractionWarning)
	require.Len(t, res.Debug.SheetReports, 1)
	assert.Equal(t, model.SheetExtracted, res.Debug.SheetReports[0].Status)
}

func TestAnalyzeIsRepeatable(t *testing.T) {
	data := testutil.WorkbookBytes(t, testutil.Sheet{
		Name: "Inbound",
		Rows: [][]any{
			{"PO Number", "SKU", "Qty", "ETA", "Unit Cost", "Status"},
			{"PO-1", "00123", 5, "Week 3", -4.5, "T"},
			{"PO-2", "1E3", 7, "2024-02-01", 12, "F"},
		},
	})
	pinned := func() *convert.DateParser {
		return &convert.DateParser{Now: func() time.Time { return time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC) }}
	}
	encode := func(res *Result) string {
		t.Helper()
		out, err := json.Marshal(map[string]any{
			"classification": res.Classification,
			"extracted_data": res.ExtractedData,
		})
		require.NoError(t, err)
		return string(out)
	}

	a := newAnalyzer().WithDateParser(pinned())
	first, err := a.Analyze(context.Background(), "plan.xlsx", data)
	require.NoError(t, err)
	second, err := a.Analyze(context.Background(), "plan.xlsx", data)
	require.NoError(t, err)
	third, err := newAnalyzer().WithDateParser(pinned()).Analyze(context.Background(), "plan.xlsx", data)
	require.NoError(t, err)

	assert.Equal(t, encode(first), encode(second))
	assert.Equal(t, encode(first), encode(third))

	pos := first.ExtractedData[model.CategoryPurchaseOrders]
	require.Len(t, pos, 2)
	assert.Equal(t, "00123", pos[0][model.FieldSKU].Text)
	assert.Equal(t, "1E3", pos[1][model.FieldSKU].Text)
	assert.Equal(t, "2025-01-15", pos[0][model.FieldArrivalDate].Date.Format(model.DateLayout))
	assert.Equal(t, -4.5, pos[0][model.FieldCost].Number)
	assert.True(t, pos[0][model.FieldHasArrived].Bool)
	assert.False(t, pos[1][model.FieldHasArrived].Bool)
}

func TestAnalyzeCSV(t *testing.T) {
	data := []byte("SKU,Quantity,Location\nA1,5,Main\nA2,3,Annex\n")

	res, err := newAnalyzer().Analyze(context.Background(), "inventory.csv", data)
	require.NoError(t, err)

	assert.Equal(t, "csv", res.Debug.FileType)
	assert.Equal(t, []string{"inventory"}, res.Debug.Sheets)
	assert.True(t, res.Classification.IsInventoryPlanning)
	assert.Len(t, res.ExtractedData[model.CategoryInventory], 2)
}

func TestAnalyzeWarnsWhenNothingExtracted(t *testing.T) {
	data := testutil.WorkbookBytes(t, testutil.Sheet{
		Name: "Inventory",
		Rows: [][]any{
			{"SKU", "Quantity"},
			{"A1", "lots"},
		},
	})

	res, err := newAnalyzer().Analyze(context.Background(), "plan.xlsx", data)
	require.NoError(t, err)

	assert.True(t, res.Classification.IsInventoryPlanning)
	assert.Zero(t, res.ExtractedData.Count())
	assert.Equal(t, ExtractionWarning, res.Debug.ExtractionWarning)
}

func TestAnalyzeUnreadableWorkbook(t *testing.T) {
	res, err := newAnalyzer().Analyze(context.Background(), "broken.xlsx", []byte("definitely not a zip archive"))
	require.Error(t, err)
	assert.Equal(t, model.KindFileRead, model.KindOf(err))
	assert.ErrorIs(t, err, model.ErrUnreadable)

	require.NotNil(t, res)
	assert.False(t, res.Classification.IsInventoryPlanning)
	assert.Zero(t, res.Classification.Confidence)
	assert.Equal(t, model.BusinessUnknown, res.Classification.BusinessType)
	assert.True(t, strings.HasPrefix(res.Classification.Justification, "File read error: "))
}

func TestAnalyzeRejectsUnsupportedType(t *testing.T) {
	res, err := newAnalyzer().Analyze(context.Background(), "notes.txt", []byte("hello"))
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Equal(t, model.KindInvalidFileType, model.KindOf(err))
}

func TestAnalyzeCancelled(t *testing.T) {
	data := testutil.WorkbookBytes(t, testutil.Sheet{
		Name: "Inventory",
		Rows: [][]any{{"SKU", "Quantity"}, {"A1", 5}},
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := newAnalyzer().Analyze(ctx, "plan.xlsx", data)
	require.Error(t, err)
	assert.Equal(t, model.KindExtraction, model.KindOf(err))
	require.NotNil(t, res)
	assert.True(t, res.Classification.IsInventoryPlanning)
	assert.Zero(t, res.ExtractedData.Count())
}

func TestStream(t *testing.T) {
	data := testutil.WorkbookBytes(t, testutil.Sheet{
		Name: "Inventory",
		Rows: [][]any{{"SKU", "Quantity"}, {"A1", 5}},
	})

	events, err := newAnalyzer().Stream(context.Background(), "plan.xlsx", data)
	require.NoError(t, err)

	var got []importer.ProgressEvent
	for e := range events {
		got = append(got, e)
	}
	require.GreaterOrEqual(t, len(got), 3)
	assert.Equal(t, "classified", got[0].Type)
	verdict, ok := got[0].Data.(model.ClassificationVerdict)
	require.True(t, ok)
	assert.True(t, verdict.IsInventoryPlanning)

	last := got[len(got)-1]
	assert.Equal(t, "done", last.Type)
	report, ok := last.Data.(*importer.Report)
	require.True(t, ok)
	assert.Len(t, report.Data[model.CategoryInventory], 1)
}
