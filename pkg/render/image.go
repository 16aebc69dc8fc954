// image.go — Still captioned renders.
package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	"github.com/xob0t/GoCaption/pkg/style"
)

// RenderImage captions the style's base image with text and returns the
// result as PNG bytes. An unknown style id propagates as
// *style.UnknownStyleError; an undecodable base image as *style.AssetError.
func (r *Renderer) RenderImage(ctx context.Context, text, styleID string) (Media, error) {
	if err := ctx.Err(); err != nil {
		return Media{}, err
	}

	s, err := r.styles.Lookup(styleID)
	if err != nil {
		return Media{}, err
	}

	canvas, err := loadCanvas(s.ImagePath)
	if err != nil {
		return Media{}, err
	}

	if err := r.captionCanvas(canvas, text); err != nil {
		return Media{}, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return Media{}, fmt.Errorf("encode PNG: %w", err)
	}

	return Media{Bytes: buf.Bytes(), ContentType: MIMEPNG}, nil
}

// loadCanvas decodes a style's base image into a mutable canvas. Pixel
// formats the compositor cannot handle are caught there, not here.
func loadCanvas(path string) (draw.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &style.AssetError{Path: path, Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &style.AssetError{Path: path, Err: fmt.Errorf("decode: %w", err)}
	}

	canvas, ok := img.(draw.Image)
	if !ok {
		return nil, &style.AssetError{Path: path, Err: fmt.Errorf("image type %T is not drawable", img)}
	}
	return canvas, nil
}
