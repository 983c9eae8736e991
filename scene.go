package mapevent

import "github.com/hajimehoshi/ebiten/v2"

// MapScene is the draw tree of a map screen:
//
//	root
//	├── tilemap      tiles and entity sprites, overlay layer last
//	│   └── overlay  name tags
//	└── foreground   pictures and UI, always above name tags
//
// The overlay layer is created on demand; until then overlays stay parented
// to their entity sprites.
type MapScene struct {
	root       *Node
	tilemap    *Node
	foreground *Node
	overlay    *Node

	sprites map[int]*Node

	// ClearColor fills the screen before drawing when its alpha is non-zero.
	ClearColor Color
}

// NewMapScene creates a scene with the tilemap and foreground containers.
func NewMapScene() *MapScene {
	s := &MapScene{
		root:       NewContainer("root"),
		tilemap:    NewContainer("tilemap"),
		foreground: NewContainer("foreground"),
		sprites:    make(map[int]*Node),
	}
	s.root.AddChild(s.tilemap)
	s.root.AddChild(s.foreground)
	return s
}

// Root returns the scene root.
func (s *MapScene) Root() *Node { return s.root }

// Tilemap returns the container holding tiles, sprites and the overlay layer.
func (s *MapScene) Tilemap() *Node { return s.tilemap }

// Foreground returns the container drawn above the whole tilemap.
func (s *MapScene) Foreground() *Node { return s.foreground }

// OverlayLayer returns the name tag layer, or nil before CreateOverlayLayer.
func (s *MapScene) OverlayLayer() *Node { return s.overlay }

// CreateOverlayLayer adds the name tag layer as the last tilemap child. It is
// idempotent.
func (s *MapScene) CreateOverlayLayer() *Node {
	if s.overlay == nil || s.overlay.IsDisposed() {
		s.overlay = NewContainer("overlay")
		s.tilemap.AddChild(s.overlay)
	}
	return s.overlay
}

// KeepOverlayOnTop moves the overlay layer back to the last tilemap slot if
// anything was inserted after it.
func (s *MapScene) KeepOverlayOnTop() {
	if s.overlay == nil || s.overlay.Parent != s.tilemap {
		return
	}
	top := s.tilemap.NumChildren() - 1
	if s.tilemap.ChildIndex(s.overlay) != top {
		s.tilemap.SetChildIndex(s.overlay, top)
	}
}

// AddSprite registers and attaches the sprite for entity id. Sprites are
// inserted below the overlay layer.
func (s *MapScene) AddSprite(id int, sprite *Node) {
	if old := s.sprites[id]; old != nil && old != sprite {
		old.Dispose()
	}
	sprite.EntityID = id
	s.sprites[id] = sprite
	sprite.RemoveFromParent()
	if s.overlay != nil && s.overlay.Parent == s.tilemap {
		s.tilemap.AddChildAt(sprite, s.tilemap.ChildIndex(s.overlay))
		return
	}
	s.tilemap.AddChild(sprite)
}

// Sprite returns the sprite for entity id, or nil.
func (s *MapScene) Sprite(id int) *Node { return s.sprites[id] }

// RemoveSprite disposes the sprite for entity id and its subtree.
func (s *MapScene) RemoveSprite(id int) {
	if sp := s.sprites[id]; sp != nil {
		sp.Dispose()
		delete(s.sprites, id)
	}
}

// Draw renders the tree onto screen in child order.
func (s *MapScene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.RGBA())
	}
	drawNode(screen, s.root, 0, 0, 1)
}

func drawNode(dst *ebiten.Image, n *Node, px, py, alpha float64) {
	if !n.Visible {
		return
	}
	x, y := px+n.X, py+n.Y
	a := alpha * n.Alpha
	if n.Image != nil && a > 0 {
		b := n.Image.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(x-n.PivotX*float64(b.Dx()), y-n.PivotY*float64(b.Dy()))
		op.ColorScale.ScaleAlpha(float32(a))
		dst.DrawImage(n.Image, op)
	}
	for _, c := range n.children {
		drawNode(dst, c, x, y, a)
	}
}
