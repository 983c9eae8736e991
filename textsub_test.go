package mapevent

import "testing"

func TestExpandText(t *testing.T) {
	g := NewGridMap(5, 5)
	g.Name = "Harbor"
	g.SetVariable(3, 42)
	g.SetVariable(4, 1.5)
	shop := NewEntity(7, "Shopkeeper", "")
	g.AddEntity(shop)
	self := NewEntity(2, "Guard", "")
	g.AddEntity(self)

	ctx := TextContext{Vars: g, Map: g, Entity: self}
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{`Gold: \V[3]`, "Gold: 42"},
		{`\v[4]x`, "1.5x"},
		{`\V[99]`, ""},
		{`\EVNAME[7]`, "Shopkeeper"},
		{`\evname[8]`, ""},
		{`I am \EVNAME`, "I am Guard"},
		{`\ENAME/\EN`, "Guard/Guard"},
		{`Welcome to \MAPNAME`, "Welcome to Harbor"},
		{"このイベントの名前@このマップ名", "Guard@Harbor"},
		{`  \V[99]  Tom  `, "Tom"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ExpandText(tt.in, ctx); got != tt.want {
				t.Errorf("ExpandText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExpandTextNilContext(t *testing.T) {
	got := ExpandText(`a\V[1]b\EVNAME\MAPNAME\EVNAME[1]c`, TextContext{})
	if got != "abc" {
		t.Errorf("ExpandText = %q, want %q", got, "abc")
	}
}
