// video.go — Captioned video renders driven through the external encoder.
package render

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// RenderVideo captions the style's base video with text and returns the
// result as MP4 bytes. The caption is rendered once onto a transparent frame
// matching the base video's dimensions, then the external encoder overlays
// it onto every frame, re-encoding video and copying audio unchanged.
//
// All intermediate files live in a per-call temporary directory that is
// removed on every exit path. Cancelling ctx kills the encoder process; the
// render then returns the context error with no partial result.
func (r *Renderer) RenderVideo(ctx context.Context, text, styleID string) (Media, error) {
	s, err := r.styles.Lookup(styleID)
	if err != nil {
		return Media{}, err
	}

	// Bound the number of concurrent encoder processes before doing any
	// per-render work.
	if err := r.acquireVideoSlot(ctx); err != nil {
		return Media{}, err
	}
	defer r.releaseVideoSlot()

	width, height, err := r.encoder.ProbeSize(ctx, s.VideoPath)
	if err != nil {
		return Media{}, err
	}

	overlay := image.NewNRGBA(image.Rect(0, 0, width, height))
	if err := r.captionCanvas(overlay, text); err != nil {
		return Media{}, err
	}

	tmpDir, err := os.MkdirTemp("", "gocaption-*")
	if err != nil {
		return Media{}, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	renderID := uuid.NewString()
	overlayPath := filepath.Join(tmpDir, "overlay-"+renderID+".png")
	resultPath := filepath.Join(tmpDir, "result-"+renderID+".mp4")

	if err := writePNG(overlayPath, overlay); err != nil {
		return Media{}, err
	}

	if err := r.encoder.Overlay(ctx, s.VideoPath, overlayPath, resultPath); err != nil {
		return Media{}, err
	}

	data, err := os.ReadFile(resultPath)
	if err != nil {
		return Media{}, fmt.Errorf("read encoded video: %w", err)
	}

	return Media{Bytes: data, ContentType: MIMEMP4}, nil
}

// writePNG encodes img to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode PNG: %w", err)
	}
	return nil
}
