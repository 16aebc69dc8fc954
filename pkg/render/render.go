// Package render produces finished caption media — PNG stills and MP4 clips —
// from (text, style id) pairs.
package render

import (
	"context"
	"fmt"
	"image/draw"

	"github.com/xob0t/GoCaption/pkg/caption"
	"github.com/xob0t/GoCaption/pkg/style"
)

// MIME types of the two media kinds a Renderer can produce.
const (
	MIMEPNG = "image/png"
	MIMEMP4 = "video/mp4"
)

// DefaultVideoJobs bounds concurrent encoder processes. Encoding is the one
// slow, CPU-heavy operation; renders beyond the bound queue on the semaphore
// so they never starve concurrent image renders.
const DefaultVideoJobs = 2

// Media is a finished render: raw bytes plus their MIME type. Ownership
// passes to the caller; the renderer keeps no reference.
type Media struct {
	Bytes       []byte
	ContentType string
}

// Renderer turns (text, style id) pairs into captioned media. All fields are
// read-only after New, so a single Renderer serves concurrent requests
// without locking.
type Renderer struct {
	styles  *style.Registry
	fonts   *caption.FontManager
	encoder *Encoder

	videoSem chan struct{}
}

// New wires a renderer. A nil enc gets the default ffmpeg/ffprobe encoder;
// videoJobs <= 0 falls back to DefaultVideoJobs.
func New(styles *style.Registry, fonts *caption.FontManager, enc *Encoder, videoJobs int) *Renderer {
	if enc == nil {
		enc = NewEncoder()
	}
	if videoJobs <= 0 {
		videoJobs = DefaultVideoJobs
	}
	return &Renderer{
		styles:   styles,
		fonts:    fonts,
		encoder:  enc,
		videoSem: make(chan struct{}, videoJobs),
	}
}

// Styles exposes the catalog for enumeration surfaces (menus, listings).
func (r *Renderer) Styles() []style.Info {
	return r.styles.List()
}

// captionCanvas wraps text to the canvas width and draws it centered.
func (r *Renderer) captionCanvas(canvas draw.Image, text string) error {
	face, err := r.fonts.CaptionFace()
	if err != nil {
		return fmt.Errorf("caption face: %w", err)
	}
	if closer, ok := face.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	layout := caption.Wrap(text, face, canvas.Bounds().Dx())
	return caption.DrawCentered(canvas, layout, face)
}

// acquireVideoSlot blocks until an encoder slot frees up or ctx is done.
func (r *Renderer) acquireVideoSlot(ctx context.Context) error {
	select {
	case r.videoSem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for encoder slot: %w", ctx.Err())
	}
}

func (r *Renderer) releaseVideoSlot() { <-r.videoSem }
