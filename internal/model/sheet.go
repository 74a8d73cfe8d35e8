package model

// RecordCategory record type a worksheet can be classified into
type RecordCategory string

const (
	CategoryUnclassified   RecordCategory = "unclassified"
	CategoryInventory      RecordCategory = "inventory_on_hand"
	CategorySalesHistory   RecordCategory = "sales_history"
	CategoryPurchaseOrders RecordCategory = "purchase_orders"
	CategoryItemMaster     RecordCategory = "item_master"
)

// Categories fixed category iteration order; ties resolve to the earlier entry
var Categories = []RecordCategory{
	CategoryInventory,
	CategorySalesHistory,
	CategoryPurchaseOrders,
	CategoryItemMaster,
}

// OutputCategories keys always present in extracted data
var OutputCategories = append(append([]RecordCategory{}, Categories...), CategoryUnclassified)

// Title human readable name, e.g. "Sales History"
func (c RecordCategory) Title() string {
	switch c {
	case CategoryInventory:
		return "Inventory On Hand"
	case CategorySalesHistory:
		return "Sales History"
	case CategoryPurchaseOrders:
		return "Purchase Orders"
	case CategoryItemMaster:
		return "Item Master"
	}
	return "Unclassified"
}

// BusinessType workbook-wide vertical used to select vocabulary extensions
type BusinessType string

const (
	BusinessGeneric      BusinessType = "generic"
	BusinessRetail       BusinessType = "retail"
	BusinessFoodCPG      BusinessType = "food_cpg"
	BusinessDistribution BusinessType = "distribution"
	// BusinessUnknown only reported when the workbook could not be read
	BusinessUnknown BusinessType = "unknown"
)

// BusinessTypes detection order; ties fall back to generic
var BusinessTypes = []BusinessType{BusinessRetail, BusinessFoodCPG, BusinessDistribution}

// SheetStatus outcome of processing a single worksheet
type SheetStatus string

const (
	SheetExtracted    SheetStatus = "extracted"
	SheetSkipped      SheetStatus = "skipped"
	SheetUnclassified SheetStatus = "unclassified"
	SheetFailed       SheetStatus = "failed"
)

// SheetReport per-sheet summary kept in debug output
type SheetReport struct {
	Sheet     string            `json:"sheet"`
	Category  RecordCategory    `json:"category,omitempty"`
	Score     int               `json:"score,omitempty"`
	Pivot     bool              `json:"pivot"`
	HeaderRow int               `json:"headerRow"`
	Mapped    map[string]string `json:"mapped,omitempty"`
	Records   int               `json:"records"`
	Status    SheetStatus       `json:"status"`
	Reason    string            `json:"reason,omitempty"`
}
