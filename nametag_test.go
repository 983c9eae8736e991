package mapevent

import "testing"

// newTagWorld returns a grid and a resolver whose preset table holds
// "Label" (the default preset) and "Door".
func newTagWorld(t *testing.T) (*GridMap, *NameTags) {
	t.Helper()
	label := DefaultStyle()
	label.Tag = "Label"
	door := DefaultStyle()
	door.Tag = "Door"
	door.BgOpacity = 220
	g := NewGridMap(10, 10)
	g.Name = "Harbor"
	cfg := NameTagConfig{
		Enabled:       true,
		DefaultPreset: "Label",
		Presets:       NewPresetTable(label, door),
	}
	return g, NewNameTags(cfg, g, g, g)
}

func TestNameTagDefaultPreset(t *testing.T) {
	g, tags := newTagWorld(t)
	e := NewEntity(1, "npc", "<Name:Tom>")
	g.AddEntity(e)

	if got := tags.RawText(e); got != "Tom" {
		t.Errorf("RawText = %q, want Tom", got)
	}
	key, ok := tags.StyleKey(e)
	if !ok || key != "Label" {
		t.Errorf("StyleKey = %q, %v, want Label, true", key, ok)
	}
}

func TestNameTagNoteSpec(t *testing.T) {
	tests := []struct {
		name     string
		note     string
		wantText string
		wantKey  string
	}{
		{"preset tag marker", "<Door:Back room>", "Back room", "Door"},
		{"preset tag beats name", "<Name:Tom><Door:Exit>", "Exit", "Door"},
		{"explicit preset", "<Name:Tom><NamePreset:Door>", "Tom", "Door"},
		{"japanese aliases", "<名前:トム><名前プリセット:Door>", "トム", "Door"},
		{"default-named marker", "<Label:Sign>", "Sign", "Label"},
		{"unknown preset kept", "<Name:Tom><NamePreset:Fancy>", "Tom", "Fancy"},
		{"no markers", "", "", "Label"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, tags := newTagWorld(t)
			e := NewEntity(1, "npc", tt.note)
			if got := tags.RawText(e); got != tt.wantText {
				t.Errorf("RawText = %q, want %q", got, tt.wantText)
			}
			if got, _ := tags.StyleKey(e); got != tt.wantKey {
				t.Errorf("StyleKey = %q, want %q", got, tt.wantKey)
			}
		})
	}
}

func TestNameTagUnknownPresetUsesBuiltInStyle(t *testing.T) {
	_, tags := newTagWorld(t)
	e := NewEntity(1, "npc", "<Name:Tom><NamePreset:Fancy>")
	if got := tags.Style(e).Tag; got != DefaultStyleKey {
		t.Errorf("Style.Tag = %q, want %q", got, DefaultStyleKey)
	}
}

func TestNameTagTextExpansion(t *testing.T) {
	g, tags := newTagWorld(t)
	g.SetVariable(2, 7)
	e := NewEntity(4, "Guard", `<Name:\EVNAME #\V[2] @ \MAPNAME>`)
	g.AddEntity(e)
	if got := tags.Text(e); got != "Guard #7 @ Harbor" {
		t.Errorf("Text = %q, want %q", got, "Guard #7 @ Harbor")
	}
	if got := tags.RawText(e); got != `\EVNAME #\V[2] @ \MAPNAME` {
		t.Errorf("RawText should stay unexpanded, got %q", got)
	}
}

func TestNameTagGating(t *testing.T) {
	g, tags := newTagWorld(t)
	e := NewEntity(1, "npc", "<Name:Tom>")

	tags.cfg.GateSwitch = 5
	if tags.RawText(e) != "" {
		t.Error("gate switch off should suppress the tag")
	}
	if _, ok := tags.StyleKey(e); ok {
		t.Error("gate switch off should report no style key")
	}
	g.SetSwitch(5, true)
	if tags.RawText(e) != "Tom" {
		t.Error("gate switch on should show the tag")
	}

	tags.cfg.Enabled = false
	if tags.RawText(e) != "" {
		t.Error("disabled feature should suppress the tag")
	}
}

func TestNameTagShowOverrides(t *testing.T) {
	_, tags := newTagWorld(t)
	e := NewEntity(1, "npc", "<Name:Tom>")

	tags.Show(e, " Door ", " Open ")
	if got := tags.RawText(e); got != "Open" {
		t.Errorf("RawText = %q, want Open", got)
	}
	if got, _ := tags.StyleKey(e); got != "Door" {
		t.Errorf("StyleKey = %q, want Door", got)
	}

	// Blank arguments fall back to the note.
	tags.Show(e, "", "")
	if got := tags.RawText(e); got != "Tom" {
		t.Errorf("RawText = %q, want Tom", got)
	}
	if got, _ := tags.StyleKey(e); got != "Label" {
		t.Errorf("StyleKey = %q, want Label", got)
	}
}

func TestNameTagShowIdempotent(t *testing.T) {
	_, tags := newTagWorld(t)
	e := NewEntity(1, "npc", "")
	tags.Show(e, "Door", "Shop")
	first := e.NameTag
	text1, key1 := tags.RawText(e), tags.Style(e).Tag
	tags.Show(e, "Door", "Shop")
	if e.NameTag != first {
		t.Errorf("state changed: %+v -> %+v", first, e.NameTag)
	}
	if tags.RawText(e) != text1 || tags.Style(e).Tag != key1 {
		t.Error("second Show changed the outputs")
	}
}

func TestNameTagShowClearsHide(t *testing.T) {
	_, tags := newTagWorld(t)
	e := NewEntity(1, "npc", "<Name:Tom>")
	tags.Hide(e, 0)
	if tags.RawText(e) != "" {
		t.Fatal("Hide should suppress the tag")
	}
	tags.Show(e, "", "")
	if tags.RawText(e) != "Tom" {
		t.Error("Show should clear the hide")
	}
}

func TestNameTagHideTimed(t *testing.T) {
	_, tags := newTagWorld(t)
	e := NewEntity(1, "npc", "<Name:Tom>")
	const d = 3
	tags.Hide(e, d)
	for tick := 1; tick <= d; tick++ {
		tags.Tick(e)
		if !e.NameTag.Hidden {
			t.Fatalf("tick %d: Hidden = false, want true", tick)
		}
	}
	tags.Tick(e)
	if e.NameTag.Hidden {
		t.Errorf("tick %d: Hidden = true, want false", d+1)
	}
	if tags.RawText(e) != "Tom" {
		t.Error("tag should be back after the countdown")
	}
}

func TestNameTagHideUntimed(t *testing.T) {
	_, tags := newTagWorld(t)
	e := NewEntity(1, "npc", "<Name:Tom>")
	tags.Hide(e, 0)
	for i := 0; i < 100; i++ {
		tags.UpdateEntity(e)
	}
	if !e.NameTag.Hidden {
		t.Error("untimed hide should persist")
	}
}

func TestNameTagNilEntity(t *testing.T) {
	_, tags := newTagWorld(t)
	tags.Show(nil, "Door", "x")
	tags.Hide(nil, 5)
	if tags.RawText(nil) != "" {
		t.Error("nil entity should have no text")
	}
}
