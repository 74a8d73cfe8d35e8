package convert

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"invplanner/internal/model"
)

var alphanumericRe = regexp.MustCompile(`^[A-Za-z0-9\-_./\s]+$`)

var (
	trueTokens = map[string]bool{
		"true": true, "t": true, "yes": true, "y": true, "1": true,
		"received": true, "arrived": true, "approved": true, "delivered": true, "complete": true,
	}
	falseTokens = map[string]bool{
		"false": true, "f": true, "no": true, "n": true, "0": true,
		"pending": true, "not received": true, "open": true, "in transit": true,
	}
)

// Validator converts cells to typed field values
type Validator struct {
	dates *DateParser
}

// NewValidator creates a Validator backed by the given date parser
func NewValidator(dates *DateParser) *Validator {
	if dates == nil {
		dates = NewDateParser()
	}
	return &Validator{dates: dates}
}

// Convert applies the field's validation; ok is false when the value is null or rejected
func (v *Validator) Convert(c model.Cell, spec model.FieldSpec) (model.Value, bool) {
	if c.IsEmpty() {
		return model.Value{}, false
	}
	switch spec.Validation {
	case model.ValidateAlphanumeric:
		s := strings.TrimSpace(c.String())
		if s == "" || !alphanumericRe.MatchString(s) {
			return model.Value{}, false
		}
		return model.TextValue(s), true
	case model.ValidateText:
		s := strings.TrimSpace(c.String())
		if s == "" || strings.EqualFold(s, "nan") {
			return model.Value{}, false
		}
		return model.TextValue(s), true
	case model.ValidateNumeric, model.ValidatePositiveNumeric:
		f, ok := ParseNumber(c)
		if !ok || (spec.Validation == model.ValidatePositiveNumeric && f < 0) {
			return model.Value{}, false
		}
		return model.NumberValue(f), true
	case model.ValidateDate:
		t, ok := v.dates.Parse(c)
		if !ok {
			return model.Value{}, false
		}
		return model.DateValue(t), true
	case model.ValidateBoolean:
		b, ok := ParseBool(c)
		if !ok {
			return model.Value{}, false
		}
		return model.BoolValue(b), true
	}
	return model.Value{}, false
}

// ParseNumber reads a number after stripping currency, thousands and percent marks
func ParseNumber(c model.Cell) (float64, bool) {
	switch c.Kind {
	case model.CellNumber:
		if math.IsNaN(c.Number) || math.IsInf(c.Number, 0) {
			return 0, false
		}
		return c.Number, true
	case model.CellBool:
		if c.Bool {
			return 1, true
		}
		return 0, true
	case model.CellText:
		s := strings.TrimSpace(c.Text)
		s = strings.NewReplacer("$", "", ",", "", "%", "").Replace(s)
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// IsNumeric reports whether a cell reads as a plain number
func IsNumeric(c model.Cell) bool {
	switch c.Kind {
	case model.CellNumber:
		return true
	case model.CellText:
		_, err := strconv.ParseFloat(strings.TrimSpace(c.Text), 64)
		return err == nil
	}
	return false
}

// ParseBool maps boolean cells, numbers and domain tokens
func ParseBool(c model.Cell) (bool, bool) {
	switch c.Kind {
	case model.CellBool:
		return c.Bool, true
	case model.CellNumber:
		return c.Number != 0, true
	case model.CellText:
		s := strings.ToLower(strings.TrimSpace(c.Text))
		if trueTokens[s] {
			return true, true
		}
		if falseTokens[s] {
			return false, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f != 0, true
		}
	}
	return false, false
}

// IsBoolToken reports whether a cell holds a recognized boolean token
func IsBoolToken(c model.Cell) bool {
	switch c.Kind {
	case model.CellBool:
		return true
	case model.CellText:
		s := strings.ToLower(strings.TrimSpace(c.Text))
		return trueTokens[s] || falseTokens[s]
	}
	return false
}
