package mapevent

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// FontSource wraps an Ebitengine TrueType face source and hands out faces per
// size. Name tag presets pick their own font size, so faces are cached by size.
type FontSource struct {
	source *text.GoTextFaceSource
	faces  map[float64]*text.GoTextFace
}

// LoadFontSource parses TrueType/OpenType data.
func LoadFontSource(ttfData []byte) (*FontSource, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("mapevent: failed to parse TTF data: %w", err)
	}
	return &FontSource{source: source, faces: make(map[float64]*text.GoTextFace)}, nil
}

// DefaultFontSource loads the Go Regular font bundled with golang.org/x/image.
// It has no CJK glyphs; load a CJK font for Japanese tags.
func DefaultFontSource() (*FontSource, error) {
	return LoadFontSource(goregular.TTF)
}

// Face returns the face for size, creating it on first use.
func (f *FontSource) Face(size float64) *text.GoTextFace {
	if face, ok := f.faces[size]; ok {
		return face
	}
	face := &text.GoTextFace{Source: f.source, Size: size}
	f.faces[size] = face
	return face
}

// LineHeight returns the vertical distance between baselines at size.
func (f *FontSource) LineHeight(size float64) float64 {
	m := f.Face(size).Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

// MeasureString returns the width and height of s rendered at size.
func (f *FontSource) MeasureString(s string, size float64) (width, height float64) {
	return text.Measure(s, f.Face(size), f.LineHeight(size))
}
