package model

// Schema ordered field specs of one record category
type Schema struct {
	Category RecordCategory `json:"category"`
	Fields   []FieldSpec    `json:"fields"`
}

// Spec looks up the spec of a field
func (s Schema) Spec(f CanonicalField) (FieldSpec, bool) {
	for _, fs := range s.Fields {
		if fs.Field == f {
			return fs, true
		}
	}
	return FieldSpec{}, false
}

// Has reports whether the field belongs to the schema
func (s Schema) Has(f CanonicalField) bool {
	_, ok := s.Spec(f)
	return ok
}

// Required required fields in schema order
func (s Schema) Required() []CanonicalField {
	var out []CanonicalField
	for _, fs := range s.Fields {
		if fs.Required {
			out = append(out, fs.Field)
		}
	}
	return out
}

// Optional optional fields in schema order
func (s Schema) Optional() []CanonicalField {
	var out []CanonicalField
	for _, fs := range s.Fields {
		if !fs.Required {
			out = append(out, fs.Field)
		}
	}
	return out
}

func required(f CanonicalField, t FieldType, v Validation) FieldSpec {
	return FieldSpec{Field: f, Required: true, Type: t, Validation: v}
}

func optional(f CanonicalField, t FieldType, v Validation) FieldSpec {
	return FieldSpec{Field: f, Type: t, Validation: v}
}

var schemas = map[RecordCategory]Schema{
	CategoryInventory: {
		Category: CategoryInventory,
		Fields: []FieldSpec{
			required(FieldSKU, TypeText, ValidateAlphanumeric),
			required(FieldQuantity, TypeNumber, ValidatePositiveNumeric),
			optional(FieldLocation, TypeText, ValidateText),
		},
	},
	CategorySalesHistory: {
		Category: CategorySalesHistory,
		Fields: []FieldSpec{
			required(FieldSKU, TypeText, ValidateAlphanumeric),
			required(FieldTimePeriod, TypeDate, ValidateDate),
			required(FieldQuantity, TypeNumber, ValidateNumeric),
			optional(FieldLocation, TypeText, ValidateText),
			optional(FieldRevenue, TypeNumber, ValidateNumeric),
			optional(FieldChannel, TypeText, ValidateText),
		},
	},
	CategoryPurchaseOrders: {
		Category: CategoryPurchaseOrders,
		Fields: []FieldSpec{
			required(FieldPurchaseOrderID, TypeText, ValidateAlphanumeric),
			required(FieldSKU, TypeText, ValidateAlphanumeric),
			required(FieldQuantity, TypeNumber, ValidatePositiveNumeric),
			required(FieldArrivalDate, TypeDate, ValidateDate),
			optional(FieldCost, TypeNumber, ValidateNumeric),
			optional(FieldOrderDate, TypeDate, ValidateDate),
			optional(FieldVendor, TypeText, ValidateText),
			optional(FieldLocation, TypeText, ValidateText),
			optional(FieldHasArrived, TypeBoolean, ValidateBoolean),
		},
	},
	CategoryItemMaster: {
		Category: CategoryItemMaster,
		Fields: []FieldSpec{
			required(FieldSKU, TypeText, ValidateAlphanumeric),
			optional(FieldCategory, TypeText, ValidateText),
			optional(FieldVendor, TypeText, ValidateText),
			optional(FieldPrice, TypeNumber, ValidateNumeric),
			optional(FieldCost, TypeNumber, ValidateNumeric),
		},
	},
}

// SchemaFor returns the extraction schema of a category
func SchemaFor(c RecordCategory) (Schema, bool) {
	s, ok := schemas[c]
	if !ok {
		return Schema{}, false
	}
	fields := make([]FieldSpec, len(s.Fields))
	copy(fields, s.Fields)
	return Schema{Category: s.Category, Fields: fields}, true
}

// Schemas all schemas in category order
func Schemas() []Schema {
	out := make([]Schema, 0, len(Categories))
	for _, c := range Categories {
		s, _ := SchemaFor(c)
		out = append(out, s)
	}
	return out
}
