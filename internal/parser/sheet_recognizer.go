package parser

import (
	"invplanner/internal/model"
)

const (
	// sheetMatchThreshold per-phrase acceptance score for sheet names
	sheetMatchThreshold = DefaultThreshold
	// sheetCategoryFloor minimum best score for a category to be assigned
	sheetCategoryFloor = 75
	// ClassifyThreshold per-phrase acceptance score used by workbook classification
	ClassifyThreshold = 80
)

// SheetRecognizer classifies worksheet names into record categories
type SheetRecognizer struct {
	vocab        *Vocabularies
	businessType model.BusinessType
}

// NewSheetRecognizer creates a recognizer for one business type
func NewSheetRecognizer(vocab *Vocabularies, bt model.BusinessType) *SheetRecognizer {
	if vocab == nil {
		vocab = DefaultVocabularies()
	}
	return &SheetRecognizer{vocab: vocab, businessType: bt}
}

// Recognize picks the category whose vocabulary scores highest against the sheet name.
// Categories are tried in fixed order and only a strictly higher score replaces the current pick.
func (r *SheetRecognizer) Recognize(sheetName string) SheetRecognitionResult {
	res := SheetRecognitionResult{SheetName: sheetName, Category: model.CategoryUnclassified}
	for _, c := range model.Categories {
		m, ok := BestMatch(sheetName, r.vocab.SheetPhrases(r.businessType, c), sheetMatchThreshold)
		if ok && m.Score > res.Score {
			res.Category = c
			res.Score = m.Score
			res.Phrase = m.Phrase
		}
	}
	if res.Score < sheetCategoryFloor {
		return SheetRecognitionResult{SheetName: sheetName, Category: model.CategoryUnclassified}
	}
	return res
}

// MatchAll every category whose vocabulary matches the sheet name at threshold
func (r *SheetRecognizer) MatchAll(sheetName string, threshold int) []SheetRecognitionResult {
	var out []SheetRecognitionResult
	for _, c := range model.Categories {
		if m, ok := BestMatch(sheetName, r.vocab.SheetPhrases(r.businessType, c), threshold); ok {
			out = append(out, SheetRecognitionResult{
				SheetName: sheetName,
				Category:  c,
				Score:     m.Score,
				Phrase:    m.Phrase,
			})
		}
	}
	return out
}
