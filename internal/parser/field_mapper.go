package parser

import (
	"invplanner/internal/model"
)

const (
	highMatchThreshold = 90
	lowMatchThreshold  = 80
)

var (
	numericFields = []model.CanonicalField{model.FieldQuantity, model.FieldPrice, model.FieldCost, model.FieldRevenue}
	dateFields    = []model.CanonicalField{model.FieldTimePeriod, model.FieldOrderDate, model.FieldArrivalDate}
)

// FieldMapper assigns table columns to canonical fields
type FieldMapper struct {
	vocab        *Vocabularies
	businessType model.BusinessType
}

// NewFieldMapper creates a mapper for one business type
func NewFieldMapper(vocab *Vocabularies, bt model.BusinessType) *FieldMapper {
	if vocab == nil {
		vocab = DefaultVocabularies()
	}
	return &FieldMapper{vocab: vocab, businessType: bt}
}

type mappingState struct {
	columns      []string
	fm           FieldMap
	claimedCol   map[int]bool
	claimedField map[model.CanonicalField]bool
}

func (s *mappingState) claim(col int, f model.CanonicalField, pass MappingPass, score int) bool {
	if col < 0 || s.claimedCol[col] || s.claimedField[f] {
		return false
	}
	s.claimedCol[col] = true
	s.claimedField[f] = true
	s.fm.Mappings = append(s.fm.Mappings, FieldMapping{
		ColumnIndex: col,
		ColumnName:  s.columns[col],
		Field:       f,
		Pass:        pass,
		Score:       score,
	})
	return true
}

func (s *mappingState) index(name string) int {
	for i, c := range s.columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Map runs the claim passes in order: pivot overrides, exact or high fuzzy,
// low fuzzy, then type fallback. Each column and each field is claimed at most once.
func (m *FieldMapper) Map(columns []string, category model.RecordCategory, pivot bool, types map[string]ColumnType) FieldMap {
	s := &mappingState{
		columns:      columns,
		claimedCol:   make(map[int]bool),
		claimedField: make(map[model.CanonicalField]bool),
	}

	if pivot {
		m.pivotOverrides(s, category)
	}

	for i, col := range columns {
		if s.claimedCol[i] {
			continue
		}
		m.claimByLabel(s, i, col)
	}

	for i, col := range columns {
		if s.claimedCol[i] {
			continue
		}
		for _, f := range model.CanonicalFields {
			if s.claimedField[f] {
				continue
			}
			if mt, ok := BestMatch(col, m.vocab.FieldPhrases(m.businessType, f), lowMatchThreshold); ok {
				s.claim(i, f, PassLow, mt.Score)
				break
			}
		}
	}

	for i, col := range columns {
		if s.claimedCol[i] {
			continue
		}
		var candidates []model.CanonicalField
		switch types[col] {
		case ColumnNumeric:
			candidates = numericFields
		case ColumnDate:
			candidates = dateFields
		}
		for _, f := range candidates {
			if s.claim(i, f, PassType, 0) {
				break
			}
		}
	}
	return s.fm
}

// claimByLabel exact vocabulary membership wins over a high fuzzy match
func (m *FieldMapper) claimByLabel(s *mappingState, i int, col string) {
	label, ok := normalizeTarget(col)
	if !ok {
		return
	}
	for _, f := range model.CanonicalFields {
		if !s.claimedField[f] && m.vocab.HasExactField(m.businessType, f, label) {
			s.claim(i, f, PassExact, 100)
			return
		}
	}
	for _, f := range model.CanonicalFields {
		if s.claimedField[f] {
			continue
		}
		if mt, ok := BestMatch(label, m.vocab.FieldPhrases(m.businessType, f), highMatchThreshold); ok {
			s.claim(i, f, PassHigh, mt.Score)
			return
		}
	}
}

func (m *FieldMapper) pivotOverrides(s *mappingState, category model.RecordCategory) {
	s.claim(s.index(ValueLabel), model.FieldQuantity, PassPivot, 100)

	rh1, rh2 := s.index(RowHeaderLabel(1)), s.index(RowHeaderLabel(2))
	switch category {
	case model.CategoryPurchaseOrders:
		s.claim(rh1, model.FieldPurchaseOrderID, PassPivot, 100)
		s.claim(rh2, model.FieldSKU, PassPivot, 100)
	case model.CategoryInventory, model.CategorySalesHistory, model.CategoryItemMaster:
		s.claim(rh1, model.FieldSKU, PassPivot, 100)
	}

	ch := s.index(ColumnHeaderLabel)
	switch category {
	case model.CategorySalesHistory:
		s.claim(ch, model.FieldTimePeriod, PassPivot, 100)
	case model.CategoryPurchaseOrders:
		s.claim(ch, model.FieldArrivalDate, PassPivot, 100)
	}
}

// Sufficient at least two mapped columns, at least one of them a required field
func (m FieldMap) Sufficient(s model.Schema) bool {
	if m.Len() < 2 {
		return false
	}
	for _, f := range s.Required() {
		if m.HasField(f) {
			return true
		}
	}
	return false
}
