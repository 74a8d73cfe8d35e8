package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invplanner/internal/convert"
	"invplanner/internal/model"
)

func text(s string) model.Cell { return model.TextCell(s) }
func num(f float64) model.Cell { return model.NumberCell(f) }

func TestUniqueColumns(t *testing.T) {
	t.Parallel()

	got := UniqueColumns([]string{"SKU", "", "Unnamed: 2", "sku", " Qty ", "sku"})
	assert.Equal(t, []string{"sku", "unnamed_2", "unnamed_3", "sku_1", "qty", "sku_2"}, got)
}

func TestLocateHeaderRow(t *testing.T) {
	t.Parallel()

	s, _ := model.SchemaFor(model.CategoryInventory)
	phrases := DefaultVocabularies().RequiredPhrases(model.BusinessGeneric, s)
	g := model.Grid{
		{text("Inventory Report")},
		{text("As of 2024")},
		{text("SKU"), text("Qty"), text("Location")},
		{text("A1"), num(5), text("WH1")},
	}
	assert.Equal(t, 2, LocateHeaderRow(g, phrases, 10))
	assert.Equal(t, 0, LocateHeaderRow(g, phrases, 2), "header outside scan window")

	none := model.Grid{{text("foo"), text("bar")}, {text("A1"), num(5)}}
	assert.Equal(t, 0, LocateHeaderRow(none, phrases, 10))
}

func TestDetectPivot(t *testing.T) {
	t.Parallel()

	regular := model.Grid{
		{text("SKU"), text("Qty"), text("Loc")},
		{text("A1"), num(1), text("X")},
		{text("A2"), num(2), text("Y")},
	}
	assert.False(t, DetectPivot(regular).IsPivot())

	hierarchical := model.Grid{
		{text("Region"), text("Jan"), text("Feb"), text("Mar")},
		{text("East"), num(1), num(2), num(3)},
		{text("East"), num(4), num(5), num(6)},
	}
	sig := DetectPivot(hierarchical)
	assert.True(t, sig.HierarchicalColumns)
	assert.Equal(t, 1, sig.Count())
	assert.False(t, sig.IsPivot())

	small := model.Grid{{model.Empty, text("Jan")}, {text("A1"), num(1)}}
	assert.False(t, DetectPivot(small).IsPivot())
}

func twoLevelPivot() model.Grid {
	return model.Grid{
		{model.Empty, text("Units"), text("Units")},
		{model.Empty, text("Jan"), text("Feb")},
		{text("A1"), num(10), num(20)},
		{text("A2"), model.Empty, num(40)},
	}
}

func TestPivotStructureAndNormalize(t *testing.T) {
	t.Parallel()

	g := twoLevelPivot()
	sig := DetectPivot(g)
	require.True(t, sig.IsPivot())
	assert.True(t, sig.EmptyCorner)
	assert.True(t, sig.PartialHeaderRows)

	ps := ExtractPivotStructure(g)
	assert.Equal(t, []int{0}, ps.RowHeaderCols)
	assert.Equal(t, []int{0, 1}, ps.ColHeaderRows)
	assert.Equal(t, 2, ps.DataStartRow)
	assert.Equal(t, 1, ps.DataStartCol)

	tbl := NormalizePivot(g, ps)
	assert.Equal(t, []string{"row_header_1", "column_header", "value"}, tbl.Columns)
	require.Equal(t, 3, tbl.Len())
	assert.Equal(t, "A1", tbl.Rows[0][0].String())
	assert.Equal(t, "Units - Jan", tbl.Rows[0][1].String())
	assert.Equal(t, 10.0, tbl.Rows[0][2].Number)
	assert.Equal(t, "Units - Feb", tbl.Rows[2][1].String())
	assert.Equal(t, 40.0, tbl.Rows[2][2].Number)
}

func TestPivotStructureInvariants(t *testing.T) {
	t.Parallel()

	grids := []model.Grid{
		twoLevelPivot(),
		{
			{model.Empty, text("2024-01"), text("2024-02"), text("2024-03")},
			{text("North"), text("A1"), num(1), num(2)},
			{text("North"), text("A2"), num(3), num(4)},
			{text("South"), text("A1"), num(5), num(6)},
		},
		{{text("only")}},
	}
	for _, g := range grids {
		ps := ExtractPivotStructure(g)
		for _, c := range ps.RowHeaderCols {
			assert.Less(t, c, ps.DataStartCol)
		}
		for _, r := range ps.ColHeaderRows {
			assert.Less(t, r, ps.DataStartRow)
		}
	}
}

func TestColumnTypeDetector(t *testing.T) {
	t.Parallel()

	tbl := &model.Table{
		Columns: []string{"qty", "when", "arrived", "name", "blank", "mixed", "unnamed_7"},
		Rows: [][]model.Cell{
			{num(1), text("2024-01-01"), text("yes"), text("Widget"), model.Empty, num(1), num(1)},
			{text("2"), text("Jan 2024"), text("no"), text("Gadget"), model.Empty, text("Widget")},
			{num(3), text("Q2 2024"), text("received"), text("Gizmo"), model.Empty},
		},
	}
	types := NewColumnTypeDetector(convert.NewDateParser(), 0).Detect(tbl)
	assert.Equal(t, ColumnNumeric, types["qty"])
	assert.Equal(t, ColumnDate, types["when"])
	assert.Equal(t, ColumnBoolean, types["arrived"])
	assert.Equal(t, ColumnText, types["name"])
	assert.Equal(t, ColumnUnknown, types["blank"])
	assert.Equal(t, ColumnMixed, types["mixed"])
	_, ok := types["unnamed_7"]
	assert.False(t, ok)
}

func TestColumnTypeDetectorSingleLetterBooleans(t *testing.T) {
	t.Parallel()

	tbl := &model.Table{
		Columns: []string{"arrived"},
		Rows:    [][]model.Cell{{text("T")}, {text("F")}, {text("t")}, {text("f")}},
	}
	types := NewColumnTypeDetector(convert.NewDateParser(), 0).Detect(tbl)
	if types["arrived"] != ColumnBoolean {
		t.Fatalf("arrived = %q, want %q", types["arrived"], ColumnBoolean)
	}
}

func TestFieldMapper_ExactAndFuzzy(t *testing.T) {
	t.Parallel()

	m := NewFieldMapper(nil, model.BusinessGeneric)
	fm := m.Map([]string{"sku", "qty", "warehouse", "order date"}, model.CategoryInventory, false, nil)
	assert.Equal(t, map[string]string{
		"sku":        "sku",
		"qty":        "quantity",
		"warehouse":  "location",
		"order date": "time_period",
	}, fm.Summary())
	for _, mp := range fm.Mappings {
		assert.Equal(t, PassExact, mp.Pass)
	}
}

func TestFieldMapper_PivotOverrides(t *testing.T) {
	t.Parallel()

	m := NewFieldMapper(nil, model.BusinessGeneric)
	cols := []string{"row_header_1", "row_header_2", "column_header", "value"}
	fm := m.Map(cols, model.CategoryPurchaseOrders, true, nil)
	assert.Equal(t, 0, fm.ColumnFor(model.FieldPurchaseOrderID))
	assert.Equal(t, 1, fm.ColumnFor(model.FieldSKU))
	assert.Equal(t, 2, fm.ColumnFor(model.FieldArrivalDate))
	assert.Equal(t, 3, fm.ColumnFor(model.FieldQuantity))

	fm = m.Map([]string{"row_header_1", "column_header", "value"}, model.CategorySalesHistory, true, nil)
	assert.Equal(t, 0, fm.ColumnFor(model.FieldSKU))
	assert.Equal(t, 1, fm.ColumnFor(model.FieldTimePeriod))
	assert.Equal(t, 2, fm.ColumnFor(model.FieldQuantity))
}

func TestFieldMapper_TypeFallbackAndUniqueness(t *testing.T) {
	t.Parallel()

	m := NewFieldMapper(nil, model.BusinessGeneric)
	fm := m.Map([]string{"zzz", "yyy"}, model.CategorySalesHistory, false, map[string]ColumnType{
		"zzz": ColumnNumeric,
		"yyy": ColumnDate,
	})
	assert.Equal(t, 0, fm.ColumnFor(model.FieldQuantity))
	assert.Equal(t, 1, fm.ColumnFor(model.FieldTimePeriod))
	assert.Equal(t, PassType, fm.Mappings[0].Pass)

	fm = m.Map([]string{"qty", "quantity", "sku", "SKU"}, model.CategoryInventory, false, nil)
	fields := map[model.CanonicalField]bool{}
	cols := map[int]bool{}
	for _, mp := range fm.Mappings {
		require.False(t, fields[mp.Field], "field %s claimed twice", mp.Field)
		require.False(t, cols[mp.ColumnIndex], "column %d claimed twice", mp.ColumnIndex)
		fields[mp.Field], cols[mp.ColumnIndex] = true, true
	}
	inv, _ := model.SchemaFor(model.CategoryInventory)
	assert.True(t, fm.Sufficient(inv))
	assert.False(t, FieldMap{}.Sufficient(inv))
}

func TestDetectBusinessType(t *testing.T) {
	t.Parallel()

	p := model.NewMemoryProvider().
		AddSheet("Jewelry Sales", model.Grid{{text("SKU"), text("Desc")}, {text("A1"), text("gold watches")}})
	assert.Equal(t, model.BusinessRetail, DetectBusinessType(p).Type)

	tie := model.NewMemoryProvider().AddSheet("Warehouse Production", model.Grid{{text("a")}})
	res := DetectBusinessType(tie)
	assert.Equal(t, model.BusinessGeneric, res.Type)
	assert.Equal(t, 2, res.Scores[model.BusinessFoodCPG])
	assert.Equal(t, 2, res.Scores[model.BusinessDistribution])

	none := model.NewMemoryProvider().AddSheet("Sheet1", model.Grid{{text("x")}, {text("y")}})
	assert.Equal(t, model.BusinessGeneric, DetectBusinessType(none).Type)
}
