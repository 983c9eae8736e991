package mapevent

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// TagPainter measures and rasterizes name tags.
type TagPainter interface {
	// MeasureText returns the advance width of s at the given font size.
	MeasureText(s string, fontSize float64) float64
	// PaintTag renders s centred on a w×h image styled by style.
	PaintTag(s string, style StylePreset, w, h int) *ebiten.Image
}

// EbitenPainter is the TagPainter backed by Ebitengine text/v2 and vector.
type EbitenPainter struct {
	font *FontSource
}

// NewEbitenPainter returns a painter drawing with font.
func NewEbitenPainter(font *FontSource) *EbitenPainter {
	return &EbitenPainter{font: font}
}

// MeasureText implements TagPainter.
func (p *EbitenPainter) MeasureText(s string, fontSize float64) float64 {
	w, _ := p.font.MeasureString(s, fontSize)
	return w
}

// PaintTag implements TagPainter. The background is a rounded rectangle; the
// text is drawn in two passes, outline then fill, each at its own opacity.
func (p *EbitenPainter) PaintTag(s string, style StylePreset, w, h int) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	if style.BgOpacity > 0 {
		drawRoundedRect(img, float32(w), float32(h), float32(style.BgRadius), style.BgColor, float32(style.BgOpacity)/255)
	}

	face := p.font.Face(style.FontSize)
	lh := p.font.LineHeight(style.FontSize)
	tw, th := text.Measure(s, face, lh)
	x := (float64(w) - tw) / 2
	y := (float64(h) - th) / 2

	// Outline pass: the glyphs stamped in 8 directions onto a scratch image,
	// composited once so overlapping stamps do not stack alpha.
	if t := style.OutlineWidth; t > 0 && style.OutlineOpacity > 0 {
		scratch := ebiten.NewImage(w, h)
		offsets := [8][2]float64{
			{-t, 0}, {t, 0}, {0, -t}, {0, t},
			{-t, -t}, {t, -t}, {-t, t}, {t, t},
		}
		for _, off := range offsets {
			op := &text.DrawOptions{}
			op.GeoM.Translate(x+off[0], y+off[1])
			op.ColorScale.ScaleWithColor(style.OutlineColor.RGBA())
			op.LineSpacing = lh
			text.Draw(scratch, s, face, op)
		}
		cop := &ebiten.DrawImageOptions{}
		cop.ColorScale.ScaleAlpha(float32(style.OutlineOpacity) / 255)
		img.DrawImage(scratch, cop)
		scratch.Deallocate()
	}

	// Fill pass.
	if style.TextOpacity > 0 {
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleWithColor(style.TextColor.RGBA())
		op.ColorScale.ScaleAlpha(float32(style.TextOpacity) / 255)
		op.LineSpacing = lh
		text.Draw(img, s, face, op)
	}
	return img
}

// drawRoundedRect fills a w×h rounded rectangle at the origin of dst with
// opacity alpha. The shape is built opaque on a scratch image from
// overlapping rects and corner discs, then composited once.
func drawRoundedRect(dst *ebiten.Image, w, h, r float32, c Color, alpha float32) {
	r = float32(math.Max(0, math.Min(float64(r), math.Min(float64(w), float64(h))/2)))
	shape := ebiten.NewImage(int(w), int(h))
	clr := c.RGBA()
	if r == 0 {
		vector.DrawFilledRect(shape, 0, 0, w, h, clr, false)
	} else {
		vector.DrawFilledRect(shape, r, 0, w-2*r, h, clr, false)
		vector.DrawFilledRect(shape, 0, r, w, h-2*r, clr, false)
		vector.DrawFilledCircle(shape, r, r, r, clr, true)
		vector.DrawFilledCircle(shape, w-r, r, r, clr, true)
		vector.DrawFilledCircle(shape, r, h-r, r, clr, true)
		vector.DrawFilledCircle(shape, w-r, h-r, r, clr, true)
	}
	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(alpha)
	dst.DrawImage(shape, op)
	shape.Deallocate()
}

// tagSize returns the image size for s under style: the measured width plus
// horizontal padding, and a height of the font size plus a fixed margin.
func tagSize(p TagPainter, s string, style StylePreset) (w, h int) {
	tw := int(math.Ceil(p.MeasureText(s, style.FontSize)))
	w = max(4, tw+int(style.Padding)*2)
	h = int(math.Ceil(style.FontSize + 8))
	return w, h
}
