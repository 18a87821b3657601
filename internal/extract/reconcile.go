package extract

import (
	"sort"
	"strings"

	"github.com/harshajxn/gecf-knowledge-insight/internal/registry"
)

// Reconcile narrows countriesFound down to those actually referenced in the
// generated summary. One alias correction applies: a summary naming the
// United Arab Emirates by full name counts as mentioning "UAE" when the
// registry tracked the abbreviation. The result is de-duplicated and sorted
// lexicographically.
func Reconcile(countriesFound []string, summary string) []string {
	lowerSummary := strings.ToLower(summary)

	mentioned := make(map[string]bool)
	for _, country := range countriesFound {
		if strings.Contains(lowerSummary, strings.ToLower(country)) {
			mentioned[country] = true
		}
	}

	if strings.Contains(lowerSummary, strings.ToLower(registry.UAEFullName)) &&
		contains(countriesFound, registry.UAEAlias) {
		mentioned[registry.UAEAlias] = true
	}

	out := make([]string, 0, len(mentioned))
	for country := range mentioned {
		out = append(out, country)
	}
	sort.Strings(out)
	return out
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
