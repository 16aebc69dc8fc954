// compositor.go — Draw a measured caption block centered on a canvas, white
// fill over a single-pixel black outline.
package caption

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// UnsupportedColorModeError reports a canvas pixel layout the compositor
// cannot caption. Only opaque truecolor and truecolor-with-alpha canvases
// are handled; anything else points at a mis-authored style asset.
type UnsupportedColorModeError struct {
	Mode string
}

func (e *UnsupportedColorModeError) Error() string {
	return fmt.Sprintf("unsupported canvas color mode %s: want RGBA or NRGBA", e.Mode)
}

var (
	fillSrc   = image.NewUniform(color.RGBA{255, 255, 255, 255})
	strokeSrc = image.NewUniform(color.RGBA{0, 0, 0, 255})
)

// strokeOffsets are the eight pixel displacements of the outline pass.
var strokeOffsets = [...][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// DrawCentered paints layout onto dst so that the text block's center
// coincides with the canvas's geometric center. Lines are center-aligned
// against each other using the widths recorded at wrap time. The glyphs are
// drawn white with a one-pixel black outline behind them. dst is mutated in
// place; the layout must have been measured with the same face.
func DrawCentered(dst draw.Image, layout Layout, face font.Face) error {
	switch dst.(type) {
	case *image.RGBA, *image.NRGBA:
	default:
		return &UnsupportedColorModeError{Mode: fmt.Sprintf("%T", dst)}
	}

	bounds := dst.Bounds()
	blockTop := bounds.Min.Y + (bounds.Dy()-layout.Height)/2
	blockLeft := bounds.Min.X + (bounds.Dx()-layout.Width)/2

	for i, line := range layout.lines {
		if line == "" {
			continue
		}
		x := blockLeft + (layout.Width-layout.lineWidths[i])/2
		y := blockTop + i*(layout.lineHeight+lineSpacing) + layout.ascent

		// Outline first so the fill pass covers its interior.
		for _, off := range strokeOffsets {
			drawString(dst, line, face, strokeSrc, x+off[0], y+off[1])
		}
		drawString(dst, line, face, fillSrc, x, y)
	}

	return nil
}

func drawString(dst draw.Image, s string, face font.Face, src image.Image, x, y int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  src,
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
