package mapevent

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when the color is handed to Ebitengine.
type Color struct {
	R, G, B, A float64
}

// ColorWhite and ColorBlack are the name tag defaults for fill and outline.
var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
)

// RGBA converts c to a premultiplied color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A)*255 + 0.5),
		G: uint8(clamp01(c.G*c.A)*255 + 0.5),
		B: uint8(clamp01(c.B*c.A)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// ParseColor parses "#RGB", "#RRGGBB", "#RRGGBBAA" (leading '#' optional) or
// a comma separated "r,g,b[,a]" triple of 0-255 values.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		return parseColorTuple(s)
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return Color{}, fmt.Errorf("mapevent: invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("mapevent: invalid color %q: %w", s, err)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

func parseColorTuple(s string) (Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, fmt.Errorf("mapevent: invalid color %q", s)
	}
	var ch [4]float64
	ch[3] = 1
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Color{}, fmt.Errorf("mapevent: invalid color %q: %w", s, err)
		}
		ch[i] = clamp01(float64(n) / 255)
	}
	return Color{ch[0], ch[1], ch[2], ch[3]}, nil
}

// Vec2 is a 2D vector used for pixel offsets and screen positions.
type Vec2 struct {
	X, Y float64
}

// Direction is a four-way facing or step direction on the tile grid. Values
// follow the numpad convention used by tile RPG engines.
type Direction uint8

const (
	DirNone  Direction = 0
	DirDown  Direction = 2
	DirLeft  Direction = 4
	DirRight Direction = 6
	DirUp    Direction = 8
)

// Delta returns the tile offset of a single step in direction d.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	case DirUp:
		return 0, -1
	}
	return 0, 0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
