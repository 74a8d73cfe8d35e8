package parser

import (
	"strings"
	"sync"

	"invplanner/internal/model"
)

type sheetVocab map[model.RecordCategory][]string
type fieldVocab map[model.CanonicalField][]string

var genericSheets = sheetVocab{
	model.CategoryInventory: {
		"inventory snapshot", "stock summary", "on-hand inventory", "current stock",
		"current inventory", "inventory", "total inventory", "inventory summary",
		"inventory on hand", "stock", "on hand", "warehouse inventory",
	},
	model.CategorySalesHistory: {
		"sales data", "revenue report", "orders", "sales records", "depletions", "sales",
		"sales history", "order history", "revenue", "sales report", "historical sales",
		"sales by sku", "order data", "shipping data",
	},
	model.CategoryPurchaseOrders: {
		"purchase orders", "po summary", "incoming stock", "replen orders", "po",
		"orders", "procurement", "inbound", "pending orders", "arrivals",
		"po tracking", "inventory receipts", "receiving",
	},
	model.CategoryItemMaster: {
		"item master", "product catalog", "product details", "sku list", "products",
		"items", "product data", "product master", "item list", "product information",
		"sku details", "item details", "product inventory",
	},
}

var businessSheets = map[model.BusinessType]sheetVocab{
	model.BusinessRetail: {
		model.CategoryInventory: {
			"shipmonk", "outerspace", "warehouse", "dc inventory", "stock levels",
			"category inventory", "distribution center", "total inventory", "inventory by category",
		},
		model.CategorySalesHistory: {
			"sku sales data", "category sales", "watches sales", "jewelry sales",
			"eyewear sales", "straps sales", "orders shipped", "wow sales projections",
			"sales by channel", "returns",
		},
		model.CategoryPurchaseOrders: {
			"order sheet", "os receivings report", "inbound receipts", "wip", "arrivals",
			"shipments", "po tracking", "supplier orders", "vendor orders",
		},
		model.CategoryItemMaster: {
			"product", "product data", "watches master", "jewelry master", "product master",
			"product category", "sku master", "product catalog", "item attribute", "carry master",
			"eyewear master",
		},
	},
	model.BusinessFoodCPG: {
		model.CategoryInventory: {
			"inventory snapshot", "inventory detail", "dot inventory", "current inventory",
			"warehouse stock", "comarco stock", "lineage", "inventory monthly", "owned inventory",
		},
		model.CategorySalesHistory: {
			"delivery by month", "delivery by customer", "production and delivery",
			"customer delivery", "shipments", "sales by location", "order volume", "order data",
		},
		model.CategoryPurchaseOrders: {
			"production by month", "production", "true up template", "invoice tracker",
			"supplier orders", "manufacturing plan", "production schedule",
		},
		model.CategoryItemMaster: {
			"item list", "product codes", "sku detail", "products", "product description",
			"product master", "code list", "case pack data", "product specs",
		},
	},
	model.BusinessDistribution: {
		model.CategoryInventory: {
			"dc inventory", "total inventory", "warehouse", "inventory by location",
			"stock by sku", "stock levels", "inventory variance", "inv variance", "on hand",
		},
		model.CategorySalesHistory: {
			"sku depletions", "orders shipped", "order history", "sales forecast",
			"rolling sales forecast", "take rate per sku", "share by sku", "sales by dc",
		},
		model.CategoryPurchaseOrders: {
			"inbound receipts", "replen orders", "replen tool", "supply forecast",
			"incoming shipments", "vendor orders", "arrival schedule",
		},
		model.CategoryItemMaster: {
			"sku list", "product data", "cost", "cogs", "product catalog", "item detail",
			"product master", "product specs", "item attributes",
		},
	},
}

var genericFields = fieldVocab{
	model.FieldSKU: {
		"sku", "product code", "item id", "stock keeping unit", "item code", "product",
		"product id", "item number", "part number", "material number", "sku code",
		"product number", "variant id", "item", "upc", "product sku",
	},
	model.FieldQuantity: {
		"quantity", "qty", "stock count", "inventory level", "on hand",
		"available", "stock", "inventory", "in stock", "units", "on-hand",
		"qty on hand", "physical qty", "inventory on hand", "available quantity",
		"total qty", "cases", "pallets", "inventory value", "count",
	},
	model.FieldLocation: {
		"location", "warehouse", "store", "dc", "site", "facility", "storage location",
		"bin", "branch", "distribution center", "storage", "inventory location",
		"warehouse location", "destination", "origin", "location name",
	},
	model.FieldTimePeriod: {
		"date", "time period", "month", "week", "year", "period", "sales date",
		"order date", "transaction date", "ship date", "sales period",
		"order period", "fiscal period", "date range", "day", "quarter",
	},
	model.FieldRevenue: {
		"revenue", "sales value", "total sales", "sales amount", "gross sales",
		"sales revenue", "net sales", "sales total", "amount", "order value",
		"transaction value", "gross revenue", "total value", "total revenue",
	},
	model.FieldChannel: {
		"channel", "sales channel", "platform", "marketplace", "store type",
		"sales source", "outlet", "point of sale", "pos", "sales medium",
		"sales location", "customer type", "order type", "order source",
	},
	model.FieldPurchaseOrderID: {
		"purchase order id", "po id", "order number", "po number", "po #",
		"purchase order", "order id", "po reference", "po no", "po num",
		"po", "order #", "reference number", "order reference", "po name",
	},
	model.FieldArrivalDate: {
		"arrival date", "expected delivery", "eta", "delivery date",
		"due date", "expected arrival", "receipt date", "promised date",
		"expected receipt", "delivery", "ship by", "ship date",
		"planned arrival date", "pickup date",
	},
	model.FieldCost: {
		"cost", "unit cost", "purchase price", "item cost", "po cost",
		"invoice cost", "order cost", "product cost", "buying cost",
		"acquisition cost", "landed cost", "cost price", "purchase cost",
		"invoice $ per case", "price per unit", "cogs",
	},
	model.FieldOrderDate: {
		"order date", "order placed", "date ordered", "po date", "issue date",
		"creation date", "placed date", "purchase date", "ordering date",
		"submitted date", "created date", "po created", "order created",
	},
	model.FieldVendor: {
		"vendor", "supplier", "manufacturer", "seller", "vendor name",
		"supplier name", "manufacturer name", "company", "vendor id",
		"supplier id", "provider", "source", "partner", "procurement source",
		"transport", "carrier",
	},
	model.FieldHasArrived: {
		"has arrived", "arrived", "received", "status", "receipt status",
		"delivery status", "arrival status", "receipt confirmed", "in stock",
		"arrived status", "received status", "status code", "reception status",
	},
	model.FieldPrice: {
		"price", "unit price", "selling price", "retail price", "msrp",
		"list price", "sales price", "item price", "product price",
		"standard price", "base price", "rrp", "market price", "purchase price",
	},
	model.FieldCategory: {
		"category", "product category", "item type", "product type",
		"department", "class", "group", "product group", "merchandise group",
		"item category", "product class", "merchandise category", "category name",
		"collection", "hierarchy", "product family",
	},
}

var businessFields = map[model.BusinessType]fieldVocab{
	model.BusinessRetail: {
		model.FieldSKU:        {"sku", "variant_sku", "variant sku", "product sku", "product code", "style number", "style code"},
		model.FieldQuantity:   {"available", "in stock", "on hand", "physical quantity", "inventory value"},
		model.FieldLocation:   {"warehouse", "store", "dc", "fulfillment center", "storage"},
		model.FieldTimePeriod: {"month", "date", "period", "week", "quarter", "year", "season"},
		model.FieldCategory:   {"collection", "category", "product type", "style", "department"},
	},
	model.BusinessFoodCPG: {
		model.FieldSKU:        {"item code", "product code", "upc", "gtin"},
		model.FieldQuantity:   {"cases", "pallets", "units", "eaches", "case quantity", "physical inventory"},
		model.FieldLocation:   {"facility", "warehouse", "dc", "lineage", "distribution center"},
		model.FieldTimePeriod: {"production date", "expiration date", "best by", "manufacture date"},
		model.FieldCategory:   {"product type", "category", "product family"},
	},
	model.BusinessDistribution: {
		model.FieldSKU:        {"smart sku id", "item code", "product", "sku code", "item number"},
		model.FieldQuantity:   {"on hand (actl)", "available", "on hand", "qty", "inventory on hand"},
		model.FieldLocation:   {"dc", "warehouse", "storage location", "fulfillment center"},
		model.FieldTimePeriod: {"week", "weeknum", "week tue", "fiscal week", "period"},
		model.FieldCategory:   {"product group", "category", "class", "department"},
	},
}

// Vocabularies merged phrase lists per business type; immutable once built
type Vocabularies struct {
	sheets map[model.BusinessType]sheetVocab
	fields map[model.BusinessType]fieldVocab
}

var (
	defaultVocab     *Vocabularies
	defaultVocabOnce sync.Once
)

// DefaultVocabularies shared vocabulary set, built on first use
func DefaultVocabularies() *Vocabularies {
	defaultVocabOnce.Do(func() {
		defaultVocab = buildVocabularies()
	})
	return defaultVocab
}

func buildVocabularies() *Vocabularies {
	v := &Vocabularies{
		sheets: make(map[model.BusinessType]sheetVocab),
		fields: make(map[model.BusinessType]fieldVocab),
	}
	for _, bt := range append([]model.BusinessType{model.BusinessGeneric}, model.BusinessTypes...) {
		sv := make(sheetVocab, len(genericSheets))
		for _, c := range model.Categories {
			sv[c] = mergePhrases(genericSheets[c], businessSheets[bt][c])
		}
		v.sheets[bt] = sv

		fv := make(fieldVocab, len(genericFields))
		for _, f := range model.CanonicalFields {
			fv[f] = mergePhrases(genericFields[f], businessFields[bt][f])
		}
		v.fields[bt] = fv
	}
	return v
}

// mergePhrases generic entries first, extension appended; lowercase set union
func mergePhrases(base, ext []string) []string {
	seen := make(map[string]bool, len(base)+len(ext))
	out := make([]string, 0, len(base)+len(ext))
	for _, list := range [][]string{base, ext} {
		for _, p := range list {
			p = strings.ToLower(strings.TrimSpace(p))
			if p == "" || seen[p] {
				continue
			}
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

func (v *Vocabularies) layer(bt model.BusinessType) model.BusinessType {
	if _, ok := v.sheets[bt]; ok {
		return bt
	}
	return model.BusinessGeneric
}

// SheetPhrases sheet-name phrases for a category under a business type
func (v *Vocabularies) SheetPhrases(bt model.BusinessType, c model.RecordCategory) []string {
	return v.sheets[v.layer(bt)][c]
}

// FieldPhrases column phrases for a canonical field under a business type
func (v *Vocabularies) FieldPhrases(bt model.BusinessType, f model.CanonicalField) []string {
	return v.fields[v.layer(bt)][f]
}

// HasExactField reports whether the lowercased label is itself a phrase of the field
func (v *Vocabularies) HasExactField(bt model.BusinessType, f model.CanonicalField, label string) bool {
	label = strings.ToLower(strings.TrimSpace(label))
	for _, p := range v.FieldPhrases(bt, f) {
		if p == label {
			return true
		}
	}
	return false
}

// RequiredPhrases union of phrases of all required fields of a schema
func (v *Vocabularies) RequiredPhrases(bt model.BusinessType, s model.Schema) []string {
	var lists []string
	for _, f := range s.Required() {
		lists = mergePhrases(lists, v.FieldPhrases(bt, f))
	}
	return lists
}
