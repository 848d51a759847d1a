// Package scopeset normalizes scope lists into canonical keys.
//
// Two requests for the same capability set may order scopes differently or
// repeat entries; the canonical key makes them comparable, which the broker
// uses for in-flight request coalescing and the test issuer for per-set
// fetch accounting.
package scopeset

import (
	"sort"
	"strings"
)

// Key returns the canonical key for a scope list: entries are deduplicated
// and sorted, then joined with commas. The input slice is not modified.
func Key(scopes []string) string {
	switch len(scopes) {
	case 0:
		return ""
	case 1:
		return scopes[0]
	}
	unique := make([]string, 0, len(scopes))
	seen := make(map[string]struct{}, len(scopes))
	for _, scope := range scopes {
		if _, ok := seen[scope]; ok {
			continue
		}
		seen[scope] = struct{}{}
		unique = append(unique, scope)
	}
	sort.Strings(unique)
	return strings.Join(unique, ",")
}
