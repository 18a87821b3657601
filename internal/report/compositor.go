// Package report renders selected document summaries into a styled,
// paginated PDF. Layout state lives in the underlying document object and is
// advanced explicitly by the compositor methods.
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/harshajxn/gecf-knowledge-insight/internal/domain"
	"github.com/harshajxn/gecf-knowledge-insight/internal/observability"
)

const (
	headerHeight    = 35.0
	pageBreakMargin = 15.0
	fontFamily      = "DejaVu"
	fallbackFamily  = "Helvetica"
)

// Brand palette, RGB.
var (
	gecfBlue  = [3]int{0, 75, 153}
	textDark  = [3]int{19, 52, 59}
	textGray  = [3]int{98, 108, 113}
	lineColor = [3]int{220, 220, 220}
)

// Compositor renders report entries into PDF bytes. Missing fonts and logo
// degrade the rendering instead of failing it.
type Compositor struct {
	fontDir  string
	logoPath string
	logger   *observability.Logger
}

// NewCompositor builds a compositor reading optional assets from fontDir and
// logoPath.
func NewCompositor(fontDir, logoPath string, logger *observability.Logger) *Compositor {
	return &Compositor{
		fontDir:  fontDir,
		logoPath: logoPath,
		logger:   logger.WithComponent("report"),
	}
}

// Compose renders the entries into a complete PDF document. At least one
// entry is required.
func (c *Compositor) Compose(entries []domain.ReportEntry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, domain.ValidationError("no report entries selected", nil)
	}

	doc := fpdf.New("P", "mm", "A4", "")
	family, translate := c.loadFonts(doc)
	logoUsable := c.logoUsable()

	doc.SetHeaderFunc(func() {
		c.drawHeader(doc, family, translate, logoUsable)
	})
	doc.SetFooterFunc(func() {
		c.drawFooter(doc, family, translate)
	})
	doc.SetAutoPageBreak(true, pageBreakMargin)
	doc.AddPage()

	for _, entry := range entries {
		c.drawEntry(doc, family, translate, entry)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, domain.IOError("render report", err)
	}
	return buf.Bytes(), nil
}

// loadFonts registers the DejaVu faces when all three files exist, otherwise
// falls back to the built-in Helvetica with a latin-1 translator.
func (c *Compositor) loadFonts(doc *fpdf.Fpdf) (string, func(string) string) {
	faces := map[string]string{
		"":  "DejaVuSans.ttf",
		"B": "DejaVuSans-Bold.ttf",
		"I": "DejaVuSans-Oblique.ttf",
	}
	for _, file := range faces {
		if _, err := os.Stat(filepath.Join(c.fontDir, file)); err != nil {
			c.logger.Warn().Str("font_dir", c.fontDir).Str("file", file).Msg("DejaVu fonts not found, falling back to Helvetica")
			return fallbackFamily, doc.UnicodeTranslatorFromDescriptor("")
		}
	}
	for style, file := range faces {
		doc.AddUTF8Font(fontFamily, style, filepath.Join(c.fontDir, file))
	}
	if doc.Err() {
		c.logger.Warn().Err(doc.Error()).Msg("Could not register DejaVu fonts, falling back to Helvetica")
		return fallbackFamily, doc.UnicodeTranslatorFromDescriptor("")
	}
	return fontFamily, func(s string) string { return s }
}

func (c *Compositor) logoUsable() bool {
	if _, err := os.Stat(c.logoPath); err != nil {
		c.logger.Warn().Str("path", c.logoPath).Msg("Logo not found, skipping it in the report header")
		return false
	}
	return true
}

// drawHeader paints the brand band with logo, titles, and generation date on
// the current page.
func (c *Compositor) drawHeader(doc *fpdf.Fpdf, family string, tr func(string) string, logoUsable bool) {
	pageWidth, _ := doc.GetPageSize()

	doc.SetFillColor(gecfBlue[0], gecfBlue[1], gecfBlue[2])
	doc.Rect(0, 0, pageWidth, headerHeight, "F")

	if logoUsable {
		doc.ImageOptions(c.logoPath, 15, 8, 20, 0, false, fpdf.ImageOptions{}, 0, "")
	}

	doc.SetTextColor(255, 255, 255)
	doc.SetFont(family, "B", 16)
	doc.SetXY(40, 9)
	doc.CellFormat(0, 8, tr("GECF Knowledge Insight Platform"), "", 0, "L", false, 0, "")

	doc.SetFont(family, "", 10)
	doc.SetXY(40, 17)
	doc.CellFormat(0, 8, tr("Automated News Summary Report"), "", 0, "L", false, 0, "")

	doc.SetY(12.5)
	doc.SetFont(family, "", 9)
	doc.CellFormat(0, 10, tr("Generated: "+time.Now().Format("2006-01-02")), "", 0, "R", false, 0, "")

	doc.SetY(headerHeight + 5)
}

func (c *Compositor) drawFooter(doc *fpdf.Fpdf, family string, tr func(string) string) {
	doc.SetY(-15)
	doc.SetFont(family, "I", 8)
	doc.SetTextColor(textGray[0], textGray[1], textGray[2])
	doc.CellFormat(0, 10, tr(fmt.Sprintf("Page %d", doc.PageNo())), "", 0, "C", false, 0, "")
}

// drawEntry lays out one report section: blue title, combined countries and
// source line, summary paragraph, separator rule.
func (c *Compositor) drawEntry(doc *fpdf.Fpdf, family string, tr func(string) string, entry domain.ReportEntry) {
	pageWidth, _ := doc.GetPageSize()
	_, _, rightMargin, _ := doc.GetMargins()

	doc.SetFont(family, "B", 14)
	doc.SetTextColor(gecfBlue[0], gecfBlue[1], gecfBlue[2])
	doc.MultiCell(0, 8, tr(entry.Title), "", "L", false)
	doc.Ln(3)

	countries := "None"
	if len(entry.Countries) > 0 {
		countries = strings.Join(entry.Countries, ", ")
	}
	doc.SetFont(family, "B", 9)
	doc.SetTextColor(textDark[0], textDark[1], textDark[2])
	doc.CellFormat(pageWidth/2, 8, tr("GECF Countries: "+countries), "", 0, "L", false, 0, "")

	doc.SetFont(family, "I", 9)
	doc.SetTextColor(textGray[0], textGray[1], textGray[2])
	source := ""
	if entry.Source != "" && entry.Source != "Unknown" {
		source = "Source: " + entry.Source
	}
	doc.CellFormat(0, 8, tr(source), "", 1, "R", false, 0, "")

	doc.Ln(4)
	doc.SetFont(family, "", 11)
	doc.SetTextColor(textDark[0], textDark[1], textDark[2])
	doc.MultiCell(0, 6, tr(entry.Summary), "", "L", false)

	doc.Ln(10)
	doc.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
	doc.SetLineWidth(0.5)
	doc.Line(doc.GetX(), doc.GetY(), pageWidth-rightMargin, doc.GetY())
	doc.Ln(10)
}
