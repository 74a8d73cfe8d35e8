package parser

import (
	"strings"

	"invplanner/internal/model"
)

const (
	businessSampleSheets = 5
	businessSampleRows   = 50
	businessSampleValues = 20
)

var sheetNameKeywords = map[model.BusinessType][]string{
	model.BusinessRetail: {
		"jewelry", "watches", "eyewear", "fashion", "apparel",
		"product category", "style", "collection",
	},
	model.BusinessFoodCPG: {
		"production", "recipe", "ingredient", "true up",
		"lineage", "food", "beverage", "manufacturing",
	},
	model.BusinessDistribution: {
		"dc ", "distribution center", "replen", "supply chain",
		"warehouse", "logistics", "fulfillment",
	},
}

var contentKeywords = map[model.BusinessType][]string{
	model.BusinessRetail: {
		"jewelry", "watches", "eyewear", "apparel", "fashion", "accessories",
		"clothing", "shoes", "garment", "style",
	},
	model.BusinessFoodCPG: {
		"food", "beverage", "ingredient", "recipe", "pack", "pouch", "box",
		"cases", "pallets", "production",
	},
	model.BusinessDistribution: {
		"warehouse", "pallet", "shipping", "freight", "carrier", "logistics",
		"distribution", "fulfillment", "supply chain",
	},
}

// BusinessTypeResult detected vertical with its raw scores
type BusinessTypeResult struct {
	Type   model.BusinessType         `json:"type"`
	Scores map[model.BusinessType]int `json:"scores"`
}

// DetectBusinessType scores sheet names and sampled content against vertical keywords.
// Sheets that fail to read are skipped; a tie or no signal yields generic.
func DetectBusinessType(p model.TableProvider) BusinessTypeResult {
	scores := make(map[model.BusinessType]int, len(model.BusinessTypes))
	names := p.SheetNames()

	for _, name := range names {
		lower := strings.ToLower(name)
		for _, bt := range model.BusinessTypes {
			if ContainsAny(lower, sheetNameKeywords[bt]) {
				scores[bt] += 2
			}
		}
	}

	var sb strings.Builder
	for i, name := range names {
		if i >= businessSampleSheets {
			break
		}
		g, err := p.ReadGrid(name, businessSampleRows+1)
		if err != nil || len(g) < 2 {
			continue
		}
		for c := 0; c < g.Width(); c++ {
			taken := 0
			for r := 1; r < len(g) && taken < businessSampleValues; r++ {
				taken++
				if v := g.At(r, c).Normalized(); v != "" {
					sb.WriteString(v)
					sb.WriteByte(' ')
				}
			}
		}
	}
	content := sb.String()
	for _, bt := range model.BusinessTypes {
		for _, kw := range contentKeywords[bt] {
			if strings.Contains(content, kw) {
				scores[bt]++
			}
		}
	}

	res := BusinessTypeResult{Type: model.BusinessGeneric, Scores: scores}
	best, tied := 0, false
	for _, bt := range model.BusinessTypes {
		switch s := scores[bt]; {
		case s > best:
			best, tied = s, false
			res.Type = bt
		case s == best && s > 0:
			tied = true
		}
	}
	if best == 0 || tied {
		res.Type = model.BusinessGeneric
	}
	return res
}
