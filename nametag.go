package mapevent

import "strings"

// NameTagConfig controls name tag resolution.
type NameTagConfig struct {
	Enabled       bool
	GateSwitch    int    // 0 = always shown; otherwise shown only while on
	DefaultPreset string // preset used when a note names none
	Presets       *PresetTable
}

// NameTags resolves each entity's tag text and style from its note and
// runtime overrides. It also owns the Show/Hide override surface.
type NameTags struct {
	cfg      NameTagConfig
	switches Switches
	vars     Variables
	world    Map
}

// NewNameTags returns a resolver. Any collaborator may be nil.
func NewNameTags(cfg NameTagConfig, switches Switches, vars Variables, world Map) *NameTags {
	if cfg.Presets == nil {
		cfg.Presets = NewPresetTable()
	}
	return &NameTags{cfg: cfg, switches: switches, vars: vars, world: world}
}

// Config returns the resolver configuration.
func (r *NameTags) Config() NameTagConfig {
	return r.cfg
}

// suppressed reports whether no tag may show for e right now.
func (r *NameTags) suppressed(e *Entity) bool {
	if e == nil || !r.cfg.Enabled {
		return true
	}
	if r.cfg.GateSwitch > 0 && !switchOn(r.switches, r.cfg.GateSwitch) {
		return true
	}
	return e.NameTag.Hidden
}

// noteSpec derives text and preset from the entity's markers.
//
// A marker named after a registered preset selects both. Otherwise the text
// comes from the name marker and the style from the preset marker, falling
// back to the default preset.
func (r *NameTags) noteSpec(e *Entity) (text, preset string) {
	md := e.Metadata()
	presets := r.cfg.Presets
	for _, tag := range presets.Tags() {
		if v := md.Value(tag); v != "" {
			return v, tag
		}
	}

	presetKey := md.Value(PresetMarkers...)
	text = md.Value(NameMarkers...)
	def := r.cfg.DefaultPreset

	if text == "" && def != "" {
		if t := md.Value(def); t != "" {
			if presets.Has(def) {
				return t, def
			}
			return t, presetKey
		}
	}
	if presetKey != "" {
		return text, presetKey
	}
	if presets.Has(def) {
		return text, def
	}
	return text, ""
}

// RawText returns the unexpanded tag text, "" when the tag is suppressed.
func (r *NameTags) RawText(e *Entity) string {
	if r.suppressed(e) {
		return ""
	}
	if e.NameTag.HasText {
		return e.NameTag.Text
	}
	text, _ := r.noteSpec(e)
	return text
}

// StyleKey returns the preset tag for e. ok is false when the tag is
// suppressed or no preset applies, in which case the built-in style is used.
func (r *NameTags) StyleKey(e *Entity) (key string, ok bool) {
	if r.suppressed(e) {
		return "", false
	}
	if e.NameTag.Style != "" {
		return e.NameTag.Style, true
	}
	_, preset := r.noteSpec(e)
	return preset, preset != ""
}

// Text returns the displayed text: RawText with placeholders expanded.
func (r *NameTags) Text(e *Entity) string {
	return ExpandText(r.RawText(e), TextContext{Vars: r.vars, Map: r.world, Entity: e})
}

// Style returns the resolved appearance. Unknown keys resolve to the
// built-in style, whose Tag is DefaultStyleKey.
func (r *NameTags) Style(e *Entity) StylePreset {
	key, _ := r.StyleKey(e)
	return r.cfg.Presets.Resolve(key)
}

// Show sets override text and style and clears any hide. Blank arguments
// leave that part to the note.
func (r *NameTags) Show(e *Entity, style, text string) {
	if e == nil {
		return
	}
	style = strings.TrimSpace(style)
	text = strings.TrimSpace(text)
	e.NameTag = NameTagState{
		Text:    text,
		HasText: text != "",
		Style:   style,
	}
}

// Hide suppresses the tag. frames > 0 restores it automatically after that
// many entity ticks; otherwise it stays hidden until Show.
func (r *NameTags) Hide(e *Entity, frames int) {
	if e == nil {
		return
	}
	e.NameTag.Hidden = true
	e.NameTag.HideTimed = frames > 0
	e.NameTag.HideTimer = max(frames, 0)
}

// UpdateEntity implements EntityUpdateHook.
func (r *NameTags) UpdateEntity(e *Entity) { r.Tick(e) }

// Tick advances the hide countdown by one entity update.
func (r *NameTags) Tick(e *Entity) {
	st := &e.NameTag
	if !st.Hidden || !st.HideTimed {
		return
	}
	if st.HideTimer > 0 {
		st.HideTimer--
		return
	}
	st.Hidden = false
	st.HideTimed = false
}
