// Package pdf wraps the PDF parsing collaborators behind narrow interfaces:
// per-page plain text and embedded raster images.
package pdf

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/harshajxn/gecf-knowledge-insight/internal/domain"
)

// PageTexts returns the plain text of every page of the PDF at path, in page
// order. Malformed documents surface as a catchable extraction error, never
// a panic: the underlying parser is panic-happy on corrupt input.
func PageTexts(path string) (texts []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			texts = nil
			err = domain.ExtractionError(fmt.Sprintf("parse PDF %q", path), fmt.Errorf("%v", r))
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, domain.ExtractionError(fmt.Sprintf("open PDF %q", path), err)
	}
	defer f.Close()

	numPages := reader.NumPage()
	texts = make([]string, 0, numPages)
	fonts := make(map[string]*pdf.Font)

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			texts = append(texts, "")
			continue
		}
		texts = append(texts, pageText(page, fonts))
	}

	return texts, nil
}

// pageText extracts one page's text with line structure preserved where the
// row extractor succeeds, falling back to the flat text layer.
func pageText(page pdf.Page, fonts map[string]*pdf.Font) string {
	rows, err := page.GetTextByRow()
	if err == nil && len(rows) > 0 {
		var sb strings.Builder
		for _, row := range rows {
			var line strings.Builder
			for _, t := range row.Content {
				line.WriteString(t.S)
			}
			trimmed := strings.TrimSpace(line.String())
			if trimmed == "" {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(trimmed)
		}
		if sb.Len() > 0 {
			return sb.String()
		}
	}

	text, err := page.GetPlainText(fonts)
	if err != nil {
		return ""
	}
	return text
}
