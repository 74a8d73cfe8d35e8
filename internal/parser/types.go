package parser

import "invplanner/internal/model"

// SheetRecognitionResult sheet classification result
type SheetRecognitionResult struct {
	SheetName string               `json:"sheetName"`
	Category  model.RecordCategory `json:"category"`
	Score     int                  `json:"score"`
	Phrase    string               `json:"phrase,omitempty"`
}

// Recognized reports whether a category was assigned
func (r SheetRecognitionResult) Recognized() bool {
	return r.Category != model.CategoryUnclassified
}

// ColumnType dominant value type of a column
type ColumnType string

const (
	ColumnNumeric ColumnType = "numeric"
	ColumnDate    ColumnType = "date"
	ColumnBoolean ColumnType = "boolean"
	ColumnText    ColumnType = "text"
	ColumnMixed   ColumnType = "mixed"
	ColumnUnknown ColumnType = "unknown"
)

// MappingPass which pass of the field mapper claimed a column
type MappingPass string

const (
	PassPivot MappingPass = "pivot"
	PassExact MappingPass = "exact"
	PassHigh  MappingPass = "fuzzy_high"
	PassLow   MappingPass = "fuzzy_low"
	PassType  MappingPass = "type"
)

// FieldMapping one claimed column
type FieldMapping struct {
	ColumnIndex int                  `json:"columnIndex"`
	ColumnName  string               `json:"columnName"`
	Field       model.CanonicalField `json:"field"`
	Pass        MappingPass          `json:"pass"`
	Score       int                  `json:"score,omitempty"`
}

// FieldMap one-to-one column to field assignment in claim order
type FieldMap struct {
	Mappings []FieldMapping `json:"mappings"`
}

// Len number of mapped columns
func (m FieldMap) Len() int { return len(m.Mappings) }

// ColumnFor column index mapped to a field, -1 when unmapped
func (m FieldMap) ColumnFor(f model.CanonicalField) int {
	for _, fm := range m.Mappings {
		if fm.Field == f {
			return fm.ColumnIndex
		}
	}
	return -1
}

// HasField reports whether the field has a column
func (m FieldMap) HasField(f model.CanonicalField) bool { return m.ColumnFor(f) >= 0 }

// ForSchema mappings whose field belongs to the schema, in schema order
func (m FieldMap) ForSchema(s model.Schema) []FieldMapping {
	var out []FieldMapping
	for _, fs := range s.Fields {
		for _, fm := range m.Mappings {
			if fm.Field == fs.Field {
				out = append(out, fm)
			}
		}
	}
	return out
}

// Summary column name to field name, for reports
func (m FieldMap) Summary() map[string]string {
	out := make(map[string]string, len(m.Mappings))
	for _, fm := range m.Mappings {
		out[fm.ColumnName] = string(fm.Field)
	}
	return out
}
