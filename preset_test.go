package mapevent

import (
	"strings"
	"testing"
)

func TestDefaultStyle(t *testing.T) {
	s := DefaultStyle()
	if s.Tag != DefaultStyleKey {
		t.Errorf("Tag = %q, want %q", s.Tag, DefaultStyleKey)
	}
	if s.FontSize != 18 || s.OutlineWidth != 3 || s.BgOpacity != 153 || s.Padding != 8 || s.OffsetY != -4 {
		t.Errorf("unexpected defaults: %+v", s)
	}
	if s.TextColor != ColorWhite || s.OutlineColor != ColorBlack || s.BgColor != ColorBlack {
		t.Errorf("unexpected default colors: %+v", s)
	}
}

func TestPresetTable(t *testing.T) {
	a := DefaultStyle()
	a.Tag = "A"
	b := DefaultStyle()
	b.Tag = "B"
	b.FontSize = 24
	blank := DefaultStyle()
	blank.Tag = "  "

	table := NewPresetTable(a, b, blank)
	if table.Len() != 2 {
		t.Fatalf("Len = %d, want 2", table.Len())
	}
	if got := strings.Join(table.Tags(), ","); got != "A,B" {
		t.Errorf("Tags = %q, want %q", got, "A,B")
	}

	b2 := b
	b2.FontSize = 30
	table.Add(b2)
	if got := strings.Join(table.Tags(), ","); got != "A,B" {
		t.Errorf("replacing a preset should keep its order, got %q", got)
	}
	if p, _ := table.Lookup("B"); p.FontSize != 30 {
		t.Errorf("FontSize = %v, want 30", p.FontSize)
	}

	if got := table.Resolve("missing"); got.Tag != DefaultStyleKey {
		t.Errorf("Resolve(missing).Tag = %q, want %q", got.Tag, DefaultStyleKey)
	}
	if got := table.Resolve(""); got.Tag != DefaultStyleKey {
		t.Errorf("Resolve(\"\").Tag = %q, want %q", got.Tag, DefaultStyleKey)
	}
	if got := table.Resolve("A"); got.Tag != "A" {
		t.Errorf("Resolve(A).Tag = %q, want A", got.Tag)
	}
}

func TestParsePresetParamsStringElements(t *testing.T) {
	raw := `["{\"Tag\":\"Door\",\"FontSize\":\"20\",\"BgOpacity\":\"220\",\"TextColor\":\"#FF0000\"}",` +
		`"{\"Tag\":\"Sign\",\"OutlineOpacity\":\"\",\"Padding\":\"10\"}"]`
	presets, err := ParsePresetParams(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(presets) != 2 {
		t.Fatalf("len = %d, want 2", len(presets))
	}
	door := presets[0]
	if door.Tag != "Door" || door.FontSize != 20 || door.BgOpacity != 220 {
		t.Errorf("door = %+v", door)
	}
	if door.TextColor != (Color{1, 0, 0, 1}) {
		t.Errorf("door TextColor = %+v, want red", door.TextColor)
	}
	sign := presets[1]
	if sign.OutlineOpacity != 255 || sign.Padding != 10 || sign.FontSize != 18 {
		t.Errorf("blank fields should take defaults: %+v", sign)
	}
}

func TestParsePresetParamsObjects(t *testing.T) {
	presets, err := ParsePresetParams(`[{"Tag":"A","BgOpacity":999,"FontSize":-1}]`)
	if err != nil {
		t.Fatal(err)
	}
	if len(presets) != 1 {
		t.Fatalf("len = %d, want 1", len(presets))
	}
	if presets[0].BgOpacity != 255 {
		t.Errorf("BgOpacity = %d, want clamped 255", presets[0].BgOpacity)
	}
	if presets[0].FontSize != 18 {
		t.Errorf("FontSize = %v, want 18", presets[0].FontSize)
	}
}

func TestParsePresetParamsErrors(t *testing.T) {
	tests := []string{
		`not json`,
		`{"Tag":"A"}`,
		`["{broken"]`,
		`[{"Tag":"A","TextColor":"#GG0000"}]`,
	}
	for _, raw := range tests {
		if _, err := ParsePresetParams(raw); err == nil {
			t.Errorf("ParsePresetParams(%q) should fail", raw)
		}
	}
	if presets, err := ParsePresetParams("  "); err != nil || presets != nil {
		t.Errorf("blank params = %v, %v, want nil, nil", presets, err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#FFFFFF", Color{1, 1, 1, 1}},
		{"#000", Color{0, 0, 0, 1}},
		{"ff0000", Color{1, 0, 0, 1}},
		{"#00FF0000", Color{0, 1, 0, 0}},
		{"0,0,255", Color{0, 0, 1, 1}},
		{"255, 255, 255, 0", Color{1, 1, 1, 0}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"", "#12", "#GGGGGG", "1,2", "a,b,c"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) should fail", bad)
		}
	}
}
