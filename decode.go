package icons

import (
	"bytes"
	"fmt"
	"image"

	// Icon payloads arrive as whatever the CDN serves; register the
	// formats seen in practice.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DecodeFunc turns raw downloaded bytes into a display-ready bitmap no
// larger than size pixels per side. Implementations must treat undecodable
// input as an error, never a panic.
type DecodeFunc func(data []byte, size int) (image.Image, error)

// DecodeIcon is the default DecodeFunc: it decodes PNG, JPEG, GIF, or WebP
// payloads and rescales them so the longer side equals size, preserving
// aspect ratio, with Catmull-Rom resampling.
func DecodeIcon(data []byte, size int) (image.Image, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("icons: decode: %w", err)
	}

	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("icons: decode: empty image")
	}

	w, h := fitWithin(b.Dx(), b.Dy(), size)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst, nil
}

// fitWithin scales (w, h) so the longer side equals size, keeping aspect
// ratio and never returning a zero dimension.
func fitWithin(w, h, size int) (int, int) {
	if w >= h {
		scaled := h * size / w
		return size, max(scaled, 1)
	}
	scaled := w * size / h
	return max(scaled, 1), size
}
