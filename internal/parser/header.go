package parser

import (
	"invplanner/internal/model"
)

const (
	// DefaultHeaderScanRows rows inspected when locating the header
	DefaultHeaderScanRows = 10
	headerCellThreshold   = 80
	headerMinMatches      = 2
)

// LocateHeaderRow returns the grid row within the first scanRows that matches the most
// required-field phrases. Rows need at least two matching cells; otherwise row 0.
func LocateHeaderRow(g model.Grid, phrases []string, scanRows int) int {
	if scanRows <= 0 {
		scanRows = DefaultHeaderScanRows
	}
	best, bestCount := 0, 0
	for r := 0; r < len(g) && r < scanRows; r++ {
		count := 0
		for _, cell := range g[r] {
			label, ok := normalizeTarget(cell.String())
			if !ok {
				continue
			}
			for _, p := range phrases {
				if Ratio(label, p) >= headerCellThreshold {
					count++
					break
				}
			}
		}
		if count > bestCount {
			best, bestCount = r, count
		}
	}
	if bestCount < headerMinMatches {
		return 0
	}
	return best
}
