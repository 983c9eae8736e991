package mapevent

import "testing"

func TestNewMapSceneLayout(t *testing.T) {
	s := NewMapScene()
	root := s.Root()
	if root.NumChildren() != 2 {
		t.Fatalf("root children = %d, want 2", root.NumChildren())
	}
	if root.ChildAt(0) != s.Tilemap() || root.ChildAt(1) != s.Foreground() {
		t.Error("root should hold tilemap then foreground")
	}
	if s.OverlayLayer() != nil {
		t.Error("overlay layer should not exist before CreateOverlayLayer")
	}
}

func TestCreateOverlayLayerIdempotent(t *testing.T) {
	s := NewMapScene()
	a := s.CreateOverlayLayer()
	b := s.CreateOverlayLayer()
	if a != b {
		t.Error("CreateOverlayLayer should return the same layer")
	}
	if a.Parent != s.Tilemap() {
		t.Error("overlay layer should be a tilemap child")
	}
	if s.Tilemap().NumChildren() != 1 {
		t.Errorf("tilemap children = %d, want 1", s.Tilemap().NumChildren())
	}
}

func TestAddSpriteBelowOverlay(t *testing.T) {
	s := NewMapScene()
	layer := s.CreateOverlayLayer()
	sp := NewSprite("npc", nil)
	s.AddSprite(7, sp)

	tm := s.Tilemap()
	if tm.ChildIndex(sp) != 0 || tm.ChildIndex(layer) != 1 {
		t.Errorf("sprite at %d, layer at %d, want 0 and 1", tm.ChildIndex(sp), tm.ChildIndex(layer))
	}
	if sp.EntityID != 7 {
		t.Errorf("EntityID = %d, want 7", sp.EntityID)
	}
	if s.Sprite(7) != sp {
		t.Error("Sprite(7) should return the sprite")
	}
}

func TestKeepOverlayOnTop(t *testing.T) {
	s := NewMapScene()
	layer := s.CreateOverlayLayer()
	tm := s.Tilemap()

	// Host code appends content after the layer.
	tm.AddChild(NewContainer("weather"))
	tm.AddChild(NewContainer("balloon"))
	if tm.ChildIndex(layer) == tm.NumChildren()-1 {
		t.Fatal("setup: layer should not be on top")
	}

	s.KeepOverlayOnTop()
	if got := tm.ChildIndex(layer); got != tm.NumChildren()-1 {
		t.Errorf("layer index = %d, want %d", got, tm.NumChildren()-1)
	}
	if s.Foreground().Parent != s.Root() || s.Root().ChildIndex(s.Foreground()) != 1 {
		t.Error("foreground should stay above the tilemap")
	}
}

func TestKeepOverlayOnTopWithoutLayer(t *testing.T) {
	s := NewMapScene()
	s.KeepOverlayOnTop() // must not panic
}

func TestRemoveSprite(t *testing.T) {
	s := NewMapScene()
	sp := NewSprite("npc", nil)
	child := NewSprite("tag", nil)
	sp.AddChild(child)
	s.AddSprite(3, sp)

	s.RemoveSprite(3)
	if s.Sprite(3) != nil {
		t.Error("Sprite(3) should be nil after RemoveSprite")
	}
	if !sp.IsDisposed() || !child.IsDisposed() {
		t.Error("sprite subtree should be disposed")
	}
	if s.Tilemap().NumChildren() != 0 {
		t.Errorf("tilemap children = %d, want 0", s.Tilemap().NumChildren())
	}
}

func TestAddSpriteReplaces(t *testing.T) {
	s := NewMapScene()
	old := NewSprite("old", nil)
	s.AddSprite(1, old)
	nw := NewSprite("new", nil)
	s.AddSprite(1, nw)
	if !old.IsDisposed() {
		t.Error("replaced sprite should be disposed")
	}
	if s.Sprite(1) != nw {
		t.Error("Sprite(1) should be the new sprite")
	}
}
