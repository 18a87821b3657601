// Package imaging produces compact thumbnails from extracted page images.
package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/jpeg"

	xdraw "golang.org/x/image/draw"

	"github.com/harshajxn/gecf-knowledge-insight/internal/domain"
)

// Encoder resizes and re-encodes images for transport.
type Encoder struct {
	MaxWidth int
	Quality  int
}

// NewEncoder creates an encoder with the given max width and JPEG quality.
func NewEncoder(maxWidth, quality int) *Encoder {
	return &Encoder{MaxWidth: maxWidth, Quality: quality}
}

// Thumbnail resizes img down to MaxWidth (aspect preserved, never upscales),
// re-encodes it as JPEG, and returns the base64 string.
func (e *Encoder) Thumbnail(img image.Image) (string, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return "", domain.ImageError("image has no pixels", nil)
	}

	if e.MaxWidth > 0 && w > e.MaxWidth {
		scaled := image.NewRGBA(image.Rect(0, 0, e.MaxWidth, h*e.MaxWidth/w))
		xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, xdraw.Over, nil)
		img = scaled
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: e.Quality}); err != nil {
		return "", domain.ImageError("encode thumbnail", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
