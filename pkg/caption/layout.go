// Package caption measures, wraps and composites caption text. The layout
// stage and the drawing stage share one metric function (font.MeasureString)
// so wrap decisions and draw positions can never drift apart.
package caption

import (
	"strings"

	"golang.org/x/image/font"
)

// lineSpacing is the extra pixel gap between caption lines.
const lineSpacing = 4

// Layout is wrapped caption text plus the exact pixel box it occupies under
// the face it was measured with.
type Layout struct {
	Text   string // input text with inserted line breaks
	Width  int
	Height int

	lines      []string
	lineWidths []int
	lineHeight int
	ascent     int
}

// Wrap inserts line breaks into text so that no line's rendered advance under
// face exceeds maxWidth. Line breaks already present in the input are hard
// breaks: they are never removed or merged, and wrapping only subdivides
// within them. A measured width equal to maxWidth counts as fitting. A single
// word wider than maxWidth is left alone on its own line, unsplit.
func Wrap(text string, face font.Face, maxWidth int) Layout {
	var out []string
	for _, hard := range strings.Split(text, "\n") {
		if measure(face, hard) <= maxWidth {
			out = append(out, hard)
			continue
		}
		out = append(out, wrapLine(hard, face, maxWidth)...)
	}
	return measureBlock(out, face)
}

// wrapLine greedily packs space-separated words, committing the accumulated
// line the moment the next word would push its advance past maxWidth.
func wrapLine(line string, face font.Face, maxWidth int) []string {
	var wrapped []string
	var current string

	for _, word := range strings.Fields(line) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if measure(face, candidate) > maxWidth && current != "" {
			wrapped = append(wrapped, current)
			current = word
			continue
		}
		current = candidate
	}
	if current != "" {
		wrapped = append(wrapped, current)
	}

	if len(wrapped) == 0 {
		wrapped = append(wrapped, "")
	}
	return wrapped
}

// measureBlock computes the bounding box of the joined lines: width is the
// longest line advance, height is line count times the face's line height
// plus inter-line spacing. Empty input yields a degenerate box.
func measureBlock(lines []string, face font.Face) Layout {
	m := face.Metrics()

	l := Layout{
		Text:       strings.Join(lines, "\n"),
		lines:      lines,
		lineWidths: make([]int, len(lines)),
		lineHeight: (m.Ascent + m.Descent).Ceil(),
		ascent:     m.Ascent.Ceil(),
	}

	for i, line := range lines {
		w := measure(face, line)
		l.lineWidths[i] = w
		if w > l.Width {
			l.Width = w
		}
	}

	if len(lines) == 1 && lines[0] == "" {
		return l // zero-area box, nothing to draw
	}
	l.Height = len(lines)*l.lineHeight + (len(lines)-1)*lineSpacing

	return l
}

// Lines returns the wrapped lines in order.
func (l Layout) Lines() []string {
	return l.lines
}

// measure is the single text metric used by both wrapping and drawing.
func measure(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}
