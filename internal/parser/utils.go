package parser

import (
	"fmt"
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeColumnName trims, lowercases and collapses inner whitespace
func NormalizeColumnName(name string) string {
	name = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ").Replace(name)
	name = whitespaceRe.ReplaceAllString(strings.TrimSpace(name), " ")
	return strings.ToLower(name)
}

// ContainsAny reports whether text contains any keyword
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// UniqueColumns normalizes labels; blank and "unnamed" labels become unnamed_{position},
// repeats get a numeric suffix starting at _1
func UniqueColumns(columns []string) []string {
	out := make([]string, len(columns))
	counts := make(map[string]int, len(columns))
	used := make(map[string]bool, len(columns))
	for i, col := range columns {
		name := NormalizeColumnName(col)
		if name == "" || strings.HasPrefix(name, "unnamed") || name == "nan" {
			name = fmt.Sprintf("unnamed_%d", i+1)
		}
		if used[name] {
			base := name
			for {
				counts[base]++
				name = fmt.Sprintf("%s_%d", base, counts[base])
				if !used[name] {
					break
				}
			}
		}
		used[name] = true
		out[i] = name
	}
	return out
}
