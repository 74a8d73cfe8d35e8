package model

import (
	"encoding/json"
	"time"
)

// DateLayout output format of date fields
const DateLayout = "2006-01-02"

// Value converted field value
type Value struct {
	Type   FieldType
	Text   string
	Number float64
	Date   time.Time
	Bool   bool
}

// TextValue builds a text value
func TextValue(s string) Value { return Value{Type: TypeText, Text: s} }

// NumberValue builds a numeric value
func NumberValue(f float64) Value { return Value{Type: TypeNumber, Number: f} }

// DateValue builds a date value
func DateValue(t time.Time) Value { return Value{Type: TypeDate, Date: t} }

// BoolValue builds a boolean value
func BoolValue(b bool) Value { return Value{Type: TypeBoolean, Bool: b} }

// Interface plain Go form of the value as it is serialized
func (v Value) Interface() any {
	switch v.Type {
	case TypeNumber:
		return v.Number
	case TypeDate:
		return v.Date.Format(DateLayout)
	case TypeBoolean:
		return v.Bool
	}
	return v.Text
}

// MarshalJSON dates render as YYYY-MM-DD, numbers as floats
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// Record one extracted row keyed by canonical field; null fields are absent
type Record map[CanonicalField]Value

// ExtractedData records grouped by category
type ExtractedData map[RecordCategory][]Record

// NewExtractedData creates data with an empty bucket for every category
func NewExtractedData() ExtractedData {
	d := make(ExtractedData, len(OutputCategories))
	for _, c := range OutputCategories {
		d[c] = []Record{}
	}
	return d
}

// Add appends records to the category bucket
func (d ExtractedData) Add(c RecordCategory, recs ...Record) {
	if len(recs) == 0 {
		return
	}
	d[c] = append(d[c], recs...)
}

// Count total number of records
func (d ExtractedData) Count() int {
	n := 0
	for _, recs := range d {
		n += len(recs)
	}
	return n
}

// ClassificationVerdict workbook level verdict
type ClassificationVerdict struct {
	IsInventoryPlanning bool                       `json:"is_inventory_planning"`
	Confidence          float64                    `json:"confidence"`
	Justification       string                     `json:"justification"`
	BusinessType        BusinessType               `json:"business_type"`
	CategoryConfidence  map[RecordCategory]float64 `json:"category_confidence,omitempty"`
}
