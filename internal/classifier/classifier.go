// Package classifier decides whether a workbook holds inventory planning data.
package classifier

import (
	"fmt"
	"math"
	"strings"

	"invplanner/internal/model"
	"invplanner/internal/observability"
	"invplanner/internal/parser"
)

const (
	// DecisionThreshold minimum confidence for a positive verdict
	DecisionThreshold = 0.5
	// DefaultSampleRows rows read per sheet for column analysis
	DefaultSampleRows = 10

	requiredCoverageShare = 0.6
	sheetWeight           = 3.0
	columnWeight          = 7.0
	sheetStep             = 0.25
	coverageWeight        = 0.7
	proportionWeight      = 0.3
)

// SheetMatch sheet name matched to a category
type SheetMatch struct {
	Sheet  string `json:"sheet"`
	Phrase string `json:"phrase"`
	Score  int    `json:"score"`
}

// ColumnMatch column evidence gathered from one sheet
type ColumnMatch struct {
	Sheet          string                 `json:"sheet"`
	RequiredFields []model.CanonicalField `json:"requiredFields"`
	RequiredCount  int                    `json:"requiredCount"`
	TotalCount     int                    `json:"totalCount"`
}

// evidenceFields columns looked for per category, required first
var evidenceFields = map[model.RecordCategory]struct {
	required []model.CanonicalField
	optional []model.CanonicalField
}{
	model.CategoryInventory: {
		required: []model.CanonicalField{model.FieldSKU, model.FieldQuantity},
		optional: []model.CanonicalField{model.FieldLocation},
	},
	model.CategorySalesHistory: {
		required: []model.CanonicalField{model.FieldSKU, model.FieldTimePeriod, model.FieldQuantity},
		optional: []model.CanonicalField{model.FieldRevenue, model.FieldChannel},
	},
	model.CategoryPurchaseOrders: {
		required: []model.CanonicalField{model.FieldPurchaseOrderID, model.FieldSKU, model.FieldQuantity, model.FieldArrivalDate},
		optional: []model.CanonicalField{model.FieldCost, model.FieldOrderDate, model.FieldVendor, model.FieldHasArrived},
	},
	model.CategoryItemMaster: {
		required: []model.CanonicalField{model.FieldSKU},
		optional: []model.CanonicalField{model.FieldCategory, model.FieldVendor, model.FieldPrice, model.FieldCost},
	},
}

// Engine scores workbooks against the category vocabularies
type Engine struct {
	vocab      *parser.Vocabularies
	sampleRows int
	log        *observability.Logger
}

// NewEngine creates an Engine; sampleRows <= 0 uses the default
func NewEngine(sampleRows int, log *observability.Logger) *Engine {
	if sampleRows <= 0 {
		sampleRows = DefaultSampleRows
	}
	if log == nil {
		log = observability.Nop()
	}
	return &Engine{
		vocab:      parser.DefaultVocabularies(),
		sampleRows: sampleRows,
		log:        log.WithOperation("classify"),
	}
}

// Unreadable verdict for a workbook that could not be opened
func Unreadable(err error) model.ClassificationVerdict {
	return model.ClassificationVerdict{
		IsInventoryPlanning: false,
		Confidence:          0,
		Justification:       fmt.Sprintf("File read error: %v", err),
		BusinessType:        model.BusinessUnknown,
	}
}

// Classify matches sheet names and header columns per category and combines them
// into a confidence; the workbook confidence is the best category's.
func (e *Engine) Classify(p model.TableProvider, bt model.BusinessType) model.ClassificationVerdict {
	recognizer := parser.NewSheetRecognizer(e.vocab, bt)
	sheetMatches := make(map[model.RecordCategory][]SheetMatch)
	var parts []string

	for _, sheet := range p.SheetNames() {
		for _, m := range recognizer.MatchAll(sheet, parser.ClassifyThreshold) {
			sheetMatches[m.Category] = append(sheetMatches[m.Category], SheetMatch{
				Sheet: sheet, Phrase: m.Phrase, Score: m.Score,
			})
			parts = append(parts, fmt.Sprintf("Sheet %q identified as %s data (match: %s, confidence: %d%%)",
				sheet, m.Category, m.Phrase, m.Score))
		}
	}

	columnMatches := make(map[model.RecordCategory][]ColumnMatch)
	for _, c := range model.Categories {
		if len(sheetMatches[c]) == 0 {
			continue
		}
		for _, cm := range e.analyzeColumns(p, bt, c, sheetMatches[c]) {
			columnMatches[c] = append(columnMatches[c], cm)
			parts = append(parts, fmt.Sprintf("Sheet %q contains key %s fields: %s",
				cm.Sheet, c, joinFields(cm.RequiredFields)))
		}
	}

	verdict := model.ClassificationVerdict{
		BusinessType:       bt,
		CategoryConfidence: make(map[model.RecordCategory]float64),
	}
	for _, c := range model.Categories {
		if len(sheetMatches[c]) == 0 {
			continue
		}
		conf := Confidence(len(sheetMatches[c]), columnMatches[c])
		verdict.CategoryConfidence[c] = conf
		if conf > verdict.Confidence {
			verdict.Confidence = conf
		}
	}
	verdict.IsInventoryPlanning = verdict.Confidence >= DecisionThreshold

	if verdict.IsInventoryPlanning {
		parts = append([]string{fmt.Sprintf("Detected business type: %s", bt)}, parts...)
		for _, c := range model.Categories {
			if conf, ok := verdict.CategoryConfidence[c]; ok {
				parts = append(parts, fmt.Sprintf("%s data identified with %s confidence", c.Title(), percent(conf)))
			}
		}
		parts = append(parts, fmt.Sprintf("Overall confidence: %s - This is an inventory planning workbook",
			percent(verdict.Confidence)))
	} else {
		parts = append(parts, fmt.Sprintf("Insufficient inventory planning signals detected (confidence: %s)",
			percent(verdict.Confidence)))
		switch {
		case len(sheetMatches) == 0:
			parts = append(parts, "No recognized inventory sheets found")
		case len(columnMatches) == 0:
			parts = append(parts, "Missing expected column patterns for inventory data")
		}
	}
	verdict.Justification = strings.Join(parts, ". ")

	e.log.Info().
		Bool("inventory_planning", verdict.IsInventoryPlanning).
		Float64("confidence", verdict.Confidence).
		Str("business_type", string(bt)).
		Msg("workbook classified")
	return verdict
}

// analyzeColumns matches header labels of the category's sheets against its fields.
// A sheet counts when it covers at least 60% of the required fields.
func (e *Engine) analyzeColumns(p model.TableProvider, bt model.BusinessType, c model.RecordCategory, sheets []SheetMatch) []ColumnMatch {
	fields, ok := evidenceFields[c]
	if !ok {
		return nil
	}

	var out []ColumnMatch
	for _, sm := range sheets {
		g, err := p.ReadGrid(sm.Sheet, e.sampleRows+1)
		if err != nil {
			e.log.Warn().Err(err).Str("sheet", sm.Sheet).Msg("column analysis skipped")
			continue
		}
		if len(g) < 2 || g.Width() < 2 {
			continue
		}
		labels := make([]string, 0, g.Width())
		for col := 0; col < g.Width(); col++ {
			labels = append(labels, g.At(0, col).String())
		}

		cm := ColumnMatch{Sheet: sm.Sheet}
		for _, f := range fields.required {
			if anyLabelMatches(labels, e.vocab.FieldPhrases(bt, f)) {
				cm.RequiredCount++
				cm.TotalCount++
				cm.RequiredFields = append(cm.RequiredFields, f)
			}
		}
		for _, f := range fields.optional {
			if anyLabelMatches(labels, e.vocab.FieldPhrases(bt, f)) {
				cm.TotalCount++
			}
		}
		if cm.TotalCount == 0 {
			continue
		}
		if float64(cm.RequiredCount) >= float64(len(fields.required))*requiredCoverageShare {
			out = append(out, cm)
		}
	}
	return out
}

func anyLabelMatches(labels, phrases []string) bool {
	for _, l := range labels {
		if _, ok := parser.BestMatch(l, phrases, parser.ClassifyThreshold); ok {
			return true
		}
	}
	return false
}

// Confidence combines sheet-name evidence (weight 3) and column evidence (weight 7)
// into [0,1].
func Confidence(sheetMatches int, columnMatches []ColumnMatch) float64 {
	sheetScore := math.Min(float64(sheetMatches)*sheetStep, 1) * sheetWeight

	columnScore := 0.0
	if len(columnMatches) > 0 {
		coverage, n := 0.0, 0
		for _, cm := range columnMatches {
			if cm.TotalCount > 0 {
				coverage += float64(cm.RequiredCount) / float64(cm.TotalCount)
				n++
			}
		}
		if n > 0 {
			coverage /= float64(n)
		}
		denom := sheetMatches
		if denom < 1 {
			denom = 1
		}
		proportion := math.Min(float64(len(columnMatches))/float64(denom), 1)
		columnScore = (coverage*coverageWeight + proportion*proportionWeight) * columnWeight
	}
	return math.Min(math.Max((sheetScore+columnScore)/10, 0), 1)
}

func percent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

func joinFields(fields []model.CanonicalField) string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = string(f)
	}
	return strings.Join(out, ", ")
}
