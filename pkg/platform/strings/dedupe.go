// Package strings provides string helpers shared by config and parsers.
package strings

import (
	"strings"
)

// NormalizeList trims every element and drops empties and repeats, keeping
// first-seen order.
//
//	NormalizeList([]string{" b1:9092", "b2:9092", "b1:9092 ", ""})
//	// []string{"b1:9092", "b2:9092"}
func NormalizeList(values []string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// NormalizeCode trims and upper-cases a code value such as a country or
// category code.
func NormalizeCode(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}
