// Package extract implements the document-to-summary pipeline: feature
// extraction, summarization, and mention reconciliation.
package extract

import (
	"strings"

	"github.com/harshajxn/gecf-knowledge-insight/internal/domain"
	"github.com/harshajxn/gecf-knowledge-insight/internal/registry"
)

// FeatureExtractor derives document metadata from parsed page texts. The
// registries are immutable configuration injected at construction.
type FeatureExtractor struct {
	countries registry.Countries
	sources   registry.Sources
}

// NewFeatureExtractor creates a feature extractor bound to the given
// registries.
func NewFeatureExtractor(countries registry.Countries, sources registry.Sources) *FeatureExtractor {
	return &FeatureExtractor{countries: countries, sources: sources}
}

// Extract derives (text, countries, heading, source) from the page texts of
// one document. fileName is the heading fallback.
func (f *FeatureExtractor) Extract(pages []string, fileName string) domain.Features {
	features := domain.Features{
		Heading: fileName,
		Source:  "Unknown",
	}

	if len(pages) > 0 {
		features.Heading = f.deriveHeading(pages[0], fileName)
		features.Source = f.attributeSource(pages)
	}

	features.FullText = strings.Join(pages, "\n\n")
	features.Countries = f.countries.FindMentions(features.FullText)
	features.RelevantText = f.relevantText(pages)

	return features
}

// deriveHeading builds the document title from the first page. The first
// non-empty line starts the heading; a second line is absorbed only when it
// looks like a wrapped title rather than a "Source: X, Month Year" byline.
func (f *FeatureExtractor) deriveHeading(firstPage, fileName string) string {
	var lines []string
	for _, line := range strings.Split(firstPage, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) == 0 {
		return fileName
	}

	heading := lines[0]
	if len(lines) > 1 && !f.sources.MentionsAny(lines[1]) && !registry.LooksLikeDate(lines[1]) {
		heading += " " + lines[1]
	}
	return heading
}

// attributeSource looks for a known provider name, last page first. Publishers
// place attribution at the end or the very top; checking the end first avoids
// false positives from title-page boilerplate.
func (f *FeatureExtractor) attributeSource(pages []string) string {
	if src, ok := f.sources.Match(pages[len(pages)-1]); ok {
		return src
	}
	if src, ok := f.sources.Match(pages[0]); ok {
		return src
	}
	return "Unknown"
}

// relevantText concatenates only the pages mentioning at least one registry
// entity. Empty when no page matches.
func (f *FeatureExtractor) relevantText(pages []string) string {
	var relevant []string
	for _, page := range pages {
		if len(f.countries.FindMentions(page)) > 0 {
			relevant = append(relevant, page)
		}
	}
	return strings.Join(relevant, "\n\n")
}
