package pdf

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshajxn/gecf-knowledge-insight/internal/domain"
	"github.com/harshajxn/gecf-knowledge-insight/internal/pdftest"
)

func jpegBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func defaultFilter() ImageFilter {
	return ImageFilter{MinWidth: 100, MinHeight: 100, MarginBand: 0.15}
}

// Page height is 792, so the top band starts at 673.2 and the bottom band
// ends at 118.8.
func TestExtractImages_SizeAndBandFiltering(t *testing.T) {
	doc := pdftest.DocWithImages(
		pdftest.ImageXObject{
			Name: "Small", JPEG: jpegBytes(t, 50, 50, color.RGBA{R: 0xff, A: 0xff}),
			Width: 50, Height: 50,
			Placed: true, X: 100, Y: 400, DispW: 50, DispH: 50,
		},
		pdftest.ImageXObject{
			Name: "Banner", JPEG: jpegBytes(t, 200, 200, color.RGBA{G: 0xff, A: 0xff}),
			Width: 200, Height: 200,
			Placed: true, X: 100, Y: 700, DispW: 200, DispH: 80,
		},
		pdftest.ImageXObject{
			Name: "Chart", JPEG: jpegBytes(t, 200, 200, color.RGBA{B: 0xff, A: 0xff}),
			Width: 200, Height: 200,
			Placed: true, X: 100, Y: 350, DispW: 200, DispH: 80,
		},
	)

	imgs, err := ExtractImages(doc, defaultFilter())
	require.NoError(t, err)

	// The 50x50 image is always too small, the header banner sits entirely
	// in the top band; only the mid-page chart survives.
	require.Len(t, imgs, 1)
	assert.Equal(t, 1, imgs[0].PageNr)
	assert.Equal(t, 200, imgs[0].Img.Bounds().Dx())
	assert.Equal(t, 200, imgs[0].Img.Bounds().Dy())
}

func TestExtractImages_SmallImageExcludedAnywhere(t *testing.T) {
	// Same undersized image at mid-height: position never rescues it.
	doc := pdftest.DocWithImages(
		pdftest.ImageXObject{
			Name: "Small", JPEG: jpegBytes(t, 50, 50, color.Black),
			Width: 50, Height: 50,
			Placed: true, X: 200, Y: 396, DispW: 50, DispH: 50,
		},
	)

	imgs, err := ExtractImages(doc, defaultFilter())
	require.NoError(t, err)
	assert.Empty(t, imgs)
}

func TestExtractImages_UnplacedImageKept(t *testing.T) {
	doc := pdftest.DocWithImages(
		pdftest.ImageXObject{
			Name: "Chart", JPEG: jpegBytes(t, 200, 200, color.White),
			Width: 200, Height: 200,
			Placed: true, X: 100, Y: 350, DispW: 200, DispH: 80,
		},
		pdftest.ImageXObject{
			Name: "Floater", JPEG: jpegBytes(t, 300, 150, color.Black),
			Width: 300, Height: 150,
		},
	)

	imgs, err := ExtractImages(doc, defaultFilter())
	require.NoError(t, err)

	// The band filter only discards what it can positively place; the image
	// never drawn by the content stream is kept, after the placed ones.
	require.Len(t, imgs, 2)
	assert.Equal(t, 200, imgs[0].Img.Bounds().Dx())
	assert.Equal(t, 300, imgs[1].Img.Bounds().Dx())
}

func TestExtractImages_BottomBandExcluded(t *testing.T) {
	doc := pdftest.DocWithImages(
		pdftest.ImageXObject{
			Name: "Footer", JPEG: jpegBytes(t, 200, 200, color.Black),
			Width: 200, Height: 200,
			Placed: true, X: 100, Y: 20, DispW: 200, DispH: 80,
		},
	)

	imgs, err := ExtractImages(doc, defaultFilter())
	require.NoError(t, err)
	assert.Empty(t, imgs)
}

func TestExtractImages_MalformedDocument(t *testing.T) {
	_, err := ExtractImages([]byte("not a pdf"), defaultFilter())
	require.Error(t, err)
	kind, ok := domain.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindImage, kind)
}
