// Package imaging downsizes uploaded images before they reach object storage.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

const (
	// MaxEdge is the longest allowed edge after compression.
	MaxEdge = 1200
	// JPEGQuality is the re-encode quality.
	JPEGQuality = 85
)

// Result describes a compressed image.
type Result struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
}

// Compress decodes a JPEG, PNG or GIF, scales it down so the longest edge is
// at most MaxEdge (never upscaling) while preserving aspect ratio, and
// re-encodes as JPEG. The output is always image/jpeg regardless of input
// format.
func Compress(data []byte) (*Result, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unsupported image: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	tw, th := targetSize(w, h)

	var out image.Image = src
	if tw != w || th != h {
		dst := image.NewRGBA(image.Rect(0, 0, tw, th))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	return &Result{
		Data:        buf.Bytes(),
		ContentType: "image/jpeg",
		Width:       tw,
		Height:      th,
	}, nil
}

// targetSize scales (w, h) so the longest edge is MaxEdge, keeping aspect
// ratio. Images already within bounds keep their size.
func targetSize(w, h int) (int, int) {
	if w <= MaxEdge && h <= MaxEdge {
		return w, h
	}
	if w >= h {
		return MaxEdge, max(1, h*MaxEdge/w)
	}
	return max(1, w*MaxEdge/h), MaxEdge
}
