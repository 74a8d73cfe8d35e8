package parser

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/xrash/smetrics"
)

// DefaultThreshold default acceptance score for BestMatch
const DefaultThreshold = 85

// Match best scoring vocabulary phrase
type Match struct {
	Phrase string `json:"phrase"`
	Score  int    `json:"score"`
}

// Ratio indel similarity on a 0-100 scale
func Ratio(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	total := len(a) + len(b)
	dist := smetrics.WagnerFischer(a, b, 1, 1, 2)
	return int(math.Round(100 * float64(total-dist) / float64(total)))
}

// PartialRatio best Ratio of the shorter string against equal length windows of the longer
func PartialRatio(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	s := string(short)
	best := 0
	for i := 0; i+len(short) <= len(long); i++ {
		r := Ratio(s, string(long[i:i+len(short)]))
		if r > best {
			best = r
			if best == 100 {
				break
			}
		}
	}
	return best
}

// TokenSortRatio Ratio after tokenizing on non alphanumerics and sorting tokens
func TokenSortRatio(a, b string) int {
	return Ratio(sortedTokens(a), sortedTokens(b))
}

func sortedTokens(s string) string {
	tokens := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// Score max of Ratio, PartialRatio and TokenSortRatio
func Score(target, candidate string) int {
	score := Ratio(target, candidate)
	if p := PartialRatio(target, candidate); p > score {
		score = p
	}
	if ts := TokenSortRatio(target, candidate); ts > score {
		score = ts
	}
	return score
}

// normalizeTarget trims and lowercases; "" and "nan" never match
func normalizeTarget(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "nan" {
		return "", false
	}
	return s, true
}

// BestMatch highest scoring candidate at or above threshold; earlier candidates win ties
func BestMatch(target string, candidates []string, threshold int) (Match, bool) {
	t, ok := normalizeTarget(target)
	if !ok {
		return Match{}, false
	}
	var best Match
	found := false
	for _, c := range candidates {
		score := Score(t, strings.ToLower(c))
		if score > best.Score && score >= threshold {
			best = Match{Phrase: c, Score: score}
			found = true
		}
	}
	return best, found
}
