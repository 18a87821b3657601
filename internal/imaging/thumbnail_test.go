package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 30, G: 80, B: 160, A: 255})
		}
	}
	return img
}

func decodeThumbnail(t *testing.T, b64 string) image.Image {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(b64)
	require.NoError(t, err)
	img, err := jpeg.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	return img
}

func TestEncoder_Thumbnail_ResizesWideImages(t *testing.T) {
	enc := NewEncoder(800, 85)

	b64, err := enc.Thumbnail(solidImage(1600, 900))

	require.NoError(t, err)
	img := decodeThumbnail(t, b64)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 450, img.Bounds().Dy())
}

func TestEncoder_Thumbnail_NeverUpscales(t *testing.T) {
	enc := NewEncoder(800, 85)

	b64, err := enc.Thumbnail(solidImage(300, 200))

	require.NoError(t, err)
	img := decodeThumbnail(t, b64)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestEncoder_Thumbnail_EmptyImageFails(t *testing.T) {
	enc := NewEncoder(800, 85)

	_, err := enc.Thumbnail(image.NewRGBA(image.Rect(0, 0, 0, 0)))

	assert.Error(t, err)
}
