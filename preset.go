package mapevent

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// DefaultStyleKey is the style key reported when no preset applies.
const DefaultStyleKey = "(default)"

// StylePreset is a named bundle of name tag appearance settings. Opacities
// are 0-255.
type StylePreset struct {
	Tag            string
	FontSize       float64
	TextColor      Color
	OutlineColor   Color
	OutlineWidth   float64
	OutlineOpacity int
	TextOpacity    int
	BgColor        Color
	BgOpacity      int
	BgRadius       float64
	Padding        float64
	OffsetY        float64
}

// DefaultStyle returns the built-in appearance used when no preset resolves.
func DefaultStyle() StylePreset {
	return StylePreset{
		Tag:            DefaultStyleKey,
		FontSize:       18,
		TextColor:      ColorWhite,
		OutlineColor:   ColorBlack,
		OutlineWidth:   3,
		OutlineOpacity: 255,
		TextOpacity:    255,
		BgColor:        ColorBlack,
		BgOpacity:      153,
		BgRadius:       6,
		Padding:        8,
		OffsetY:        -4,
	}
}

// normalize clamps out-of-range values.
func (p StylePreset) normalize() StylePreset {
	if p.FontSize <= 0 {
		p.FontSize = 18
	}
	p.OutlineWidth = max(p.OutlineWidth, 0)
	p.OutlineOpacity = clampInt(p.OutlineOpacity, 0, 255)
	p.TextOpacity = clampInt(p.TextOpacity, 0, 255)
	p.BgOpacity = clampInt(p.BgOpacity, 0, 255)
	p.BgRadius = max(p.BgRadius, 0)
	p.Padding = max(p.Padding, 0)
	return p
}

// PresetTable holds presets in registration order, keyed by tag.
type PresetTable struct {
	order []string
	byTag map[string]StylePreset
}

// NewPresetTable returns a table holding presets. A later preset replaces an
// earlier one with the same tag; presets with an empty tag are skipped.
func NewPresetTable(presets ...StylePreset) *PresetTable {
	t := &PresetTable{byTag: make(map[string]StylePreset)}
	for _, p := range presets {
		t.Add(p)
	}
	return t
}

// Add registers p under its tag.
func (t *PresetTable) Add(p StylePreset) {
	p.Tag = strings.TrimSpace(p.Tag)
	if p.Tag == "" {
		return
	}
	if _, ok := t.byTag[p.Tag]; !ok {
		t.order = append(t.order, p.Tag)
	}
	t.byTag[p.Tag] = p.normalize()
}

// Lookup returns the preset registered under tag.
func (t *PresetTable) Lookup(tag string) (StylePreset, bool) {
	if t == nil || tag == "" {
		return StylePreset{}, false
	}
	p, ok := t.byTag[tag]
	return p, ok
}

// Has reports whether tag is registered.
func (t *PresetTable) Has(tag string) bool {
	_, ok := t.Lookup(tag)
	return ok
}

// Tags returns the registered tags in registration order.
func (t *PresetTable) Tags() []string {
	if t == nil {
		return nil
	}
	return t.order
}

// Len returns the number of presets.
func (t *PresetTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Resolve returns the preset for key, or the built-in default.
func (t *PresetTable) Resolve(key string) StylePreset {
	if p, ok := t.Lookup(key); ok {
		return p
	}
	return DefaultStyle()
}

// ParsePresetParams parses a preset list in the plugin-parameter format: a
// JSON array whose elements are either objects or JSON-encoded object
// strings, with every field value stringly typed, e.g.
//
//	["{\"Tag\":\"Door\",\"FontSize\":\"18\",\"BgOpacity\":\"220\"}"]
//
// Missing fields take the built-in defaults.
func ParsePresetParams(raw string) ([]StylePreset, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("mapevent: preset params are not valid JSON")
	}
	arr := gjson.Parse(raw)
	if !arr.IsArray() {
		return nil, fmt.Errorf("mapevent: preset params must be a JSON array")
	}

	var presets []StylePreset
	var err error
	arr.ForEach(func(_, v gjson.Result) bool {
		obj := v
		if v.Type == gjson.String {
			if !gjson.Valid(v.Str) {
				err = fmt.Errorf("mapevent: preset entry %q is not valid JSON", v.Str)
				return false
			}
			obj = gjson.Parse(v.Str)
		}
		if !obj.IsObject() {
			return true
		}
		var p StylePreset
		if p, err = presetFromJSON(obj); err != nil {
			return false
		}
		presets = append(presets, p)
		return true
	})
	if err != nil {
		return nil, err
	}
	return presets, nil
}

func presetFromJSON(obj gjson.Result) (StylePreset, error) {
	p := DefaultStyle()
	p.Tag = strings.TrimSpace(obj.Get("Tag").String())

	num := func(field string, dst *float64) {
		if r := obj.Get(field); r.Exists() && strings.TrimSpace(r.String()) != "" {
			*dst = r.Float()
		}
	}
	opacity := func(field string, dst *int) {
		if r := obj.Get(field); r.Exists() && strings.TrimSpace(r.String()) != "" {
			*dst = int(r.Int())
		}
	}
	var err error
	col := func(field string, dst *Color) {
		if r := obj.Get(field); r.Exists() && strings.TrimSpace(r.String()) != "" && err == nil {
			*dst, err = ParseColor(r.String())
		}
	}

	num("FontSize", &p.FontSize)
	num("OutlineWidth", &p.OutlineWidth)
	num("BgRadius", &p.BgRadius)
	num("Padding", &p.Padding)
	num("OffsetY", &p.OffsetY)
	opacity("OutlineOpacity", &p.OutlineOpacity)
	opacity("TextOpacity", &p.TextOpacity)
	opacity("BgOpacity", &p.BgOpacity)
	col("TextColor", &p.TextColor)
	col("OutlineColor", &p.OutlineColor)
	col("BgColor", &p.BgColor)
	if err != nil {
		return StylePreset{}, fmt.Errorf("mapevent: preset %q: %w", p.Tag, err)
	}
	return p.normalize(), nil
}
