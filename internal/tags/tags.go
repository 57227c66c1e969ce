// Package tags derives the distinct tag listing from the free-text tags
// fields stored on quotes.
package tags

import (
	"sort"
	"strings"
)

// Unique splits each raw comma-separated tags field, trims surrounding
// whitespace per tag and returns the distinct tags sorted
// lexicographically. Dedup is case-sensitive: "Love" and "love" are two
// tags. Empty fields and empty pieces contribute nothing.
func Unique(rawFields []string) []string {
	set := make(map[string]struct{})
	for _, field := range rawFields {
		if field == "" {
			continue
		}
		for _, piece := range strings.Split(field, ",") {
			tag := strings.TrimSpace(piece)
			if tag == "" {
				continue
			}
			set[tag] = struct{}{}
		}
	}

	result := make([]string, 0, len(set))
	for tag := range set {
		result = append(result, tag)
	}
	sort.Strings(result)
	return result
}
