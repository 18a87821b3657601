package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"regexp"
	"sort"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/harshajxn/gecf-knowledge-insight/internal/domain"
)

// ExtractedImage is one embedded raster image that survived filtering.
type ExtractedImage struct {
	PageNr int
	Img    image.Image
}

// ImageFilter holds the content-image heuristics: minimum pixel size and the
// header/footer margin band as a fraction of page height.
type ImageFilter struct {
	MinWidth   int
	MinHeight  int
	MarginBand float64
}

// placementRe matches the common image drawing pattern in a page content
// stream: a transform followed by an XObject invocation,
// "a b c d e f cm ... /Name Do". Images placed through nested form XObjects
// are not matched and are treated as having unknown position.
var placementRe = regexp.MustCompile(
	`(-?[\d.]+)\s+(-?[\d.]+)\s+(-?[\d.]+)\s+(-?[\d.]+)\s+(-?[\d.]+)\s+(-?[\d.]+)\s+cm\s*(?:q\s+)?/([\w.]+)\s+Do`)

// placement is an image's vertical extent in page space.
type placement struct {
	name       string
	yMin, yMax float64
}

// ExtractImages pulls embedded raster images out of the PDF, in page order
// then in-page discovery order, applying the size and margin-band filters.
// Per-image failures are skipped; a whole-document parse failure returns an
// error the caller is expected to absorb into an empty image list.
func ExtractImages(data []byte, filter ImageFilter) ([]ExtractedImage, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, domain.ImageError("read PDF for image extraction", err)
	}

	var out []ExtractedImage
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		out = append(out, extractPageImages(ctx, pageNr, filter)...)
	}
	return out, nil
}

func extractPageImages(ctx *model.Context, pageNr int, filter ImageFilter) (imgs []ExtractedImage) {
	// Malformed object graphs can panic deep inside the parser; contain the
	// blast radius to the page.
	defer func() {
		if r := recover(); r != nil {
			imgs = nil
		}
	}()

	if ctx.Optimize != nil && len(pdfcpu.ImageObjNrs(ctx, pageNr)) == 0 {
		return nil
	}

	_, _, inhPAttrs, err := ctx.PageDict(pageNr, false)
	if err != nil || inhPAttrs == nil {
		return nil
	}

	xObjects := xObjectDict(ctx, inhPAttrs.Resources)
	if xObjects == nil {
		return nil
	}

	var pageHeight float64
	if inhPAttrs.MediaBox != nil {
		pageHeight = inhPAttrs.MediaBox.Height()
	}

	placements := pagePlacements(ctx, pageNr)

	seen := make(map[string]bool)
	for _, pl := range placements {
		obj, found := xObjects.Find(pl.name)
		if !found {
			continue
		}
		seen[pl.name] = true
		img, ok := decodeCandidate(ctx, obj, filter)
		if !ok {
			continue
		}
		if pageHeight > 0 && insideMarginBand(pl, pageHeight, filter.MarginBand) {
			continue
		}
		imgs = append(imgs, ExtractedImage{PageNr: pageNr, Img: img})
	}

	// Images the placement scan could not locate keep their spot: the band
	// filter only discards what it can positively place.
	names := make([]string, 0, len(xObjects))
	for name := range xObjects {
		if !seen[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		obj, found := xObjects.Find(name)
		if !found {
			continue
		}
		img, ok := decodeCandidate(ctx, obj, filter)
		if !ok {
			continue
		}
		imgs = append(imgs, ExtractedImage{PageNr: pageNr, Img: img})
	}

	return imgs
}

// insideMarginBand reports whether the placement lies entirely within the
// top or bottom margin band. PDF page space has its origin at the bottom
// left.
func insideMarginBand(pl placement, pageHeight, band float64) bool {
	top := pageHeight * (1 - band)
	bottom := pageHeight * band
	return pl.yMin >= top || pl.yMax <= bottom
}

// pagePlacements scans the page content stream for image draw operations.
func pagePlacements(ctx *model.Context, pageNr int) []placement {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil || r == nil {
		return nil
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return nil
	}

	var placements []placement
	for _, m := range placementRe.FindAllStringSubmatch(string(content), -1) {
		d, errD := strconv.ParseFloat(m[4], 64)
		f, errF := strconv.ParseFloat(m[6], 64)
		if errD != nil || errF != nil {
			continue
		}
		yMin, yMax := f, f+d
		if yMax < yMin {
			yMin, yMax = yMax, yMin
		}
		placements = append(placements, placement{name: m[7], yMin: yMin, yMax: yMax})
	}
	return placements
}

// xObjectDict resolves the page's XObject resource dictionary.
func xObjectDict(ctx *model.Context, resources types.Dict) types.Dict {
	if resources == nil {
		return nil
	}
	obj, found := resources.Find("XObject")
	if !found {
		return nil
	}
	d, err := ctx.DereferenceDict(obj)
	if err != nil {
		return nil
	}
	return d
}

// decodeCandidate resolves an XObject reference, applies the minimum-size
// filter, and decodes its pixel data. Unsupported encodings are a per-image
// failure and are skipped.
func decodeCandidate(ctx *model.Context, obj types.Object, filter ImageFilter) (image.Image, bool) {
	sd, _, err := ctx.DereferenceStreamDict(obj)
	if err != nil || sd == nil {
		return nil, false
	}

	if subtype, found := sd.Find("Subtype"); found {
		if name, ok := subtype.(types.Name); !ok || name != "Image" {
			return nil, false
		}
	} else {
		return nil, false
	}

	width := sd.IntEntry("Width")
	height := sd.IntEntry("Height")
	if width == nil || height == nil {
		return nil, false
	}
	if *width < filter.MinWidth || *height < filter.MinHeight {
		return nil, false
	}

	img, err := decodeImageStream(sd, *width, *height)
	if err != nil {
		return nil, false
	}
	return img, true
}

// decodeImageStream turns an image XObject stream into pixels. DCTDecode
// streams are JPEG as-is; single-pass FlateDecode streams are raw samples in
// the declared color space. Everything else (JBIG2, JPX, CCITT, multi-pass
// pipelines) is reported as unsupported.
func decodeImageStream(sd *types.StreamDict, width, height int) (image.Image, error) {
	if len(sd.FilterPipeline) == 1 && sd.FilterPipeline[0].Name == "DCTDecode" {
		img, err := jpeg.Decode(bytes.NewReader(sd.Raw))
		if err != nil {
			return nil, domain.ImageError("decode JPEG stream", err)
		}
		return img, nil
	}

	if len(sd.FilterPipeline) == 1 && sd.FilterPipeline[0].Name == "FlateDecode" {
		if err := sd.Decode(); err != nil {
			return nil, domain.ImageError("inflate image stream", err)
		}
		return rawSamplesToImage(sd, width, height)
	}

	return nil, domain.ImageError(fmt.Sprintf("unsupported image filter pipeline (%d stages)", len(sd.FilterPipeline)), nil)
}

// rawSamplesToImage rebuilds an 8-bit DeviceRGB or DeviceGray bitmap.
func rawSamplesToImage(sd *types.StreamDict, width, height int) (image.Image, error) {
	bpc := sd.IntEntry("BitsPerComponent")
	if bpc != nil && *bpc != 8 {
		return nil, domain.ImageError(fmt.Sprintf("unsupported bits per component %d", *bpc), nil)
	}

	data := sd.Content
	switch {
	case len(data) >= width*height*3:
		img := image.NewRGBA(image.Rect(0, 0, width, height))
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				off := (y*width + x) * 3
				dst := img.PixOffset(x, y)
				img.Pix[dst] = data[off]
				img.Pix[dst+1] = data[off+1]
				img.Pix[dst+2] = data[off+2]
				img.Pix[dst+3] = 0xff
			}
		}
		return img, nil
	case len(data) >= width*height:
		img := image.NewGray(image.Rect(0, 0, width, height))
		for y := 0; y < height; y++ {
			copy(img.Pix[y*img.Stride:y*img.Stride+width], data[y*width:])
		}
		return img, nil
	default:
		return nil, domain.ImageError("image stream shorter than declared dimensions", nil)
	}
}
