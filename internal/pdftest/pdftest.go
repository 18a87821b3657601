// Package pdftest builds minimal, well-formed PDF documents for tests. Text
// documents carry uncompressed content streams with one line per Tj operator,
// which the text-layer parser reads back verbatim; image documents embed
// JPEGs as DCTDecode XObjects with explicit placements.
package pdftest

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// DocWithPages builds a PDF with one page per entry; newline-separated lines
// within an entry become separate text rows on that page.
func DocWithPages(pages ...string) []byte {
	n := len(pages)
	// Object numbering: 1 catalog, 2 page tree, 3 font, then per page
	// (page dict, content stream) pairs.
	pageObjNr := func(i int) int { return 4 + i*2 }
	contentObjNr := func(i int) int { return 5 + i*2 }

	var buf bytes.Buffer
	offsets := make(map[int]int)

	write := func(objNr int, body string) {
		offsets[objNr] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", objNr, body)
	}

	buf.WriteString("%PDF-1.4\n")

	kids := make([]string, n)
	for i := 0; i < n; i++ {
		kids[i] = fmt.Sprintf("%d 0 R", pageObjNr(i))
	}

	write(1, "<< /Type /Catalog /Pages 2 0 R >>")
	write(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n))
	write(3, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	for i, text := range pages {
		stream := contentStream(text)
		write(pageObjNr(i), fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			contentObjNr(i)))
		offsets[contentObjNr(i)] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n",
			contentObjNr(i), len(stream), stream)
	}

	maxObj := 3 + 2*n
	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", maxObj+1)
	buf.WriteString("0000000000 65535 f \n")
	for objNr := 1; objNr <= maxObj; objNr++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[objNr])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", maxObj+1, xrefOffset)

	return buf.Bytes()
}

// ImageXObject describes one embedded JPEG for DocWithImages. Placement is
// in page space (origin bottom left, page 612x792); an unplaced image is
// registered as a resource but never drawn.
type ImageXObject struct {
	Name   string
	JPEG   []byte
	Width  int // pixel dimensions, must match the JPEG
	Height int
	Placed bool
	X, Y   float64 // lower-left corner of the drawn image
	DispW  float64 // drawn size in page units
	DispH  float64
}

// DocWithImages builds a single-page PDF embedding the given images as
// DCTDecode XObjects.
func DocWithImages(images ...ImageXObject) []byte {
	// Object numbering: 1 catalog, 2 page tree, 3 page, 4 content stream,
	// then one object per image.
	imageObjNr := func(i int) int { return 5 + i }

	var buf bytes.Buffer
	offsets := make(map[int]int)

	write := func(objNr int, body string) {
		offsets[objNr] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", objNr, body)
	}

	buf.WriteString("%PDF-1.4\n")

	var refs strings.Builder
	for i, im := range images {
		fmt.Fprintf(&refs, "/%s %d 0 R ", im.Name, imageObjNr(i))
	}

	var cs strings.Builder
	for _, im := range images {
		if !im.Placed {
			continue
		}
		fmt.Fprintf(&cs, "q\n%s 0 0 %s %s %s cm\n/%s Do\nQ\n",
			num(im.DispW), num(im.DispH), num(im.X), num(im.Y), im.Name)
	}
	content := strings.TrimSuffix(cs.String(), "\n")

	write(1, "<< /Type /Catalog /Pages 2 0 R >>")
	write(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	write(3, fmt.Sprintf(
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /XObject << %s>> >> /Contents 4 0 R >>",
		refs.String()))

	offsets[4] = buf.Len()
	fmt.Fprintf(&buf, "4 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(content), content)

	for i, im := range images {
		offsets[imageObjNr(i)] = buf.Len()
		fmt.Fprintf(&buf,
			"%d 0 obj\n<< /Type /XObject /Subtype /Image /Width %d /Height %d /ColorSpace /DeviceRGB /BitsPerComponent 8 /Filter /DCTDecode /Length %d >>\nstream\n",
			imageObjNr(i), im.Width, im.Height, len(im.JPEG))
		buf.Write(im.JPEG)
		buf.WriteString("\nendstream\nendobj\n")
	}

	maxObj := 4 + len(images)
	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", maxObj+1)
	buf.WriteString("0000000000 65535 f \n")
	for objNr := 1; objNr <= maxObj; objNr++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[objNr])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", maxObj+1, xrefOffset)

	return buf.Bytes()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// contentStream renders each line of text as its own positioned Tj run.
// Positioning uses Tm rather than Td because the text-layer parser's row
// walker only tracks Tm; Td-positioned lines would all collapse into one row.
func contentStream(text string) string {
	var sb strings.Builder
	sb.WriteString("BT\n/F1 12 Tf\n")
	y := 720
	for _, line := range strings.Split(text, "\n") {
		fmt.Fprintf(&sb, "1 0 0 1 72 %d Tm\n(%s) Tj\n", y, escape(line))
		y -= 16
	}
	sb.WriteString("ET")
	return sb.String()
}

func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "(", `\(`)
	s = strings.ReplaceAll(s, ")", `\)`)
	return s
}
