// Package registry holds the static GECF country and news-source registries.
// Registries are immutable values injected into the extraction components at
// construction, so tests can substitute their own.
package registry

import "strings"

// UAEAlias is tracked as a recognized string of its own while remaining
// semantically tied to the full name during mention reconciliation.
const (
	UAEAlias    = "UAE"
	UAEFullName = "United Arab Emirates"
)

// Countries is the recognized-entity registry: the ordered union of GECF
// member and observer states.
type Countries struct {
	Members   []string
	Observers []string
}

// Sources is the known-source registry, ordered by match priority. First
// match wins when multiple sources could match the same text.
type Sources []string

// DefaultCountries returns the GECF membership as of the platform's launch.
func DefaultCountries() Countries {
	return Countries{
		Members: []string{
			"Algeria", "Bolivia", "Egypt", "Equatorial Guinea", "Iran",
			"Libya", "Nigeria", "Qatar", "Russia", "Trinidad and Tobago",
			UAEFullName, UAEAlias, "Venezuela",
		},
		Observers: []string{
			"Angola", "Azerbaijan", "Iraq", "Malaysia", "Mauritania",
			"Mozambique", "Peru", "Senegal",
		},
	}
}

// DefaultSources returns the known information providers in priority order.
func DefaultSources() Sources {
	return Sources{"Rystad Energy", "Enerdata", "Argus", "Wood Mackenzie", "Bloomberg"}
}

// MonthNames are the lowercase English month names, used to recognize
// date lines during heading derivation.
var MonthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// All returns members followed by observers, preserving registry order.
func (c Countries) All() []string {
	all := make([]string, 0, len(c.Members)+len(c.Observers))
	all = append(all, c.Members...)
	all = append(all, c.Observers...)
	return all
}

// FindMentions returns every registry entry whose lowercase form appears as
// a substring of the lowercased text, in registry order with canonical
// spelling. Matching is deliberately substring-only with no word-boundary
// check ("Russian doll" matches "Russia").
func (c Countries) FindMentions(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, country := range c.All() {
		if strings.Contains(lower, strings.ToLower(country)) {
			found = append(found, country)
		}
	}
	return found
}

// Match searches text for a known source, whitespace-stripped and
// case-insensitive, and returns the first registry entry found.
func (s Sources) Match(text string) (string, bool) {
	squashed := strings.ToLower(strings.Join(strings.Fields(text), ""))
	for _, src := range s {
		needle := strings.ToLower(strings.Join(strings.Fields(src), ""))
		if needle != "" && strings.Contains(squashed, needle) {
			return src, true
		}
	}
	return "", false
}

// MentionsAny reports whether the lowercased line names any known source.
func (s Sources) MentionsAny(line string) bool {
	lower := strings.ToLower(line)
	for _, src := range s {
		if strings.Contains(lower, strings.ToLower(src)) {
			return true
		}
	}
	return false
}

// LooksLikeDate reports whether the lowercased line contains a month name.
func LooksLikeDate(line string) bool {
	lower := strings.ToLower(line)
	for _, month := range MonthNames {
		if strings.Contains(lower, month) {
			return true
		}
	}
	return false
}
