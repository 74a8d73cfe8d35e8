package model

// CanonicalField normalized field a source column can be mapped onto
type CanonicalField string

const (
	FieldSKU             CanonicalField = "sku"
	FieldQuantity        CanonicalField = "quantity"
	FieldLocation        CanonicalField = "location"
	FieldTimePeriod      CanonicalField = "time_period"
	FieldRevenue         CanonicalField = "revenue"
	FieldChannel         CanonicalField = "channel"
	FieldPurchaseOrderID CanonicalField = "purchase_order_id"
	FieldArrivalDate     CanonicalField = "arrival_date"
	FieldCost            CanonicalField = "cost"
	FieldOrderDate       CanonicalField = "order_date"
	FieldVendor          CanonicalField = "vendor"
	FieldHasArrived      CanonicalField = "has_arrived"
	FieldPrice           CanonicalField = "price"
	FieldCategory        CanonicalField = "category"
)

// CanonicalFields declaration order; field mapping iterates in this order
var CanonicalFields = []CanonicalField{
	FieldSKU,
	FieldQuantity,
	FieldLocation,
	FieldTimePeriod,
	FieldRevenue,
	FieldChannel,
	FieldPurchaseOrderID,
	FieldArrivalDate,
	FieldCost,
	FieldOrderDate,
	FieldVendor,
	FieldHasArrived,
	FieldPrice,
	FieldCategory,
}

// FieldType target value type
type FieldType string

const (
	TypeText    FieldType = "text"
	TypeNumber  FieldType = "number"
	TypeDate    FieldType = "date"
	TypeBoolean FieldType = "boolean"
)

// Validation rule applied while converting a cell
type Validation string

const (
	ValidateAlphanumeric    Validation = "alphanumeric"
	ValidateText            Validation = "text"
	ValidateNumeric         Validation = "numeric"
	ValidatePositiveNumeric Validation = "positive_numeric"
	ValidateDate            Validation = "date"
	ValidateBoolean         Validation = "boolean"
)

// FieldSpec schema entry for one canonical field
type FieldSpec struct {
	Field      CanonicalField `json:"field"`
	Required   bool           `json:"required"`
	Type       FieldType      `json:"type"`
	Validation Validation     `json:"validation"`
}
