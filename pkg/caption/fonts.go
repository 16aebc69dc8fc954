// fonts.go — Caption font loading with custom TTF support and embedded
// fallback. Uses golang.org/x/image/font for OpenType rendering; defaults to
// Go Regular when no custom font is specified or when loading it fails.
package caption

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// CaptionSize is the fixed point size used for every caption.
const CaptionSize = 48

const captionDPI = 72

// FontManager parses one font at startup and hands out faces. The parsed
// font is read-only and safe for concurrent use; faces carry rasterizer
// state, so each render gets its own.
type FontManager struct {
	parsed *opentype.Font
}

// NewFontManager creates a font manager with the specified font.
// If customPath is empty or unreadable, the embedded Go font is used.
func NewFontManager(customPath string) (*FontManager, error) {
	var fontData []byte
	var err error

	if customPath != "" {
		fontData, err = os.ReadFile(customPath)
		if err != nil {
			fmt.Printf("Warning: could not load custom font '%s', using default\n", customPath)
			fontData = nil
		}
	}

	if fontData == nil {
		fontData = goregular.TTF
	}

	parsed, err := opentype.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	return &FontManager{parsed: parsed}, nil
}

// CaptionFace returns a fresh face at the caption size. Close it after use
// when the face supports it.
func (fm *FontManager) CaptionFace() (font.Face, error) {
	return fm.Face(CaptionSize)
}

// Face returns a fresh face at the specified point size.
func (fm *FontManager) Face(size float64) (font.Face, error) {
	face, err := opentype.NewFace(fm.parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     captionDPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}
