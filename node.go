package mapevent

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// lastNodeID numbers nodes; the draw tree is only touched from the game loop.
var lastNodeID uint32

// Node is a draw-tree element. Containers have no image; sprites draw Image
// with its pivot at (X, Y) relative to the parent. Children draw after, and
// therefore above, their parent and earlier siblings.
type Node struct {
	ID   uint32
	Name string

	Parent   *Node
	children []*Node

	X, Y float64

	// PivotX and PivotY locate the anchor inside Image as fractions of its
	// size: (0.5, 1) anchors at the bottom-centre.
	PivotX, PivotY float64

	Alpha   float64
	Visible bool

	Image *ebiten.Image

	// EntityID links a sprite back to the entity it represents, 0 for none.
	EntityID int

	disposed bool
}

func newNode(name string, img *ebiten.Image) *Node {
	lastNodeID++
	return &Node{ID: lastNodeID, Name: name, Image: img, Alpha: 1, Visible: true}
}

// NewContainer creates a node that only groups children.
func NewContainer(name string) *Node {
	return newNode(name, nil)
}

// NewSprite creates a node drawing img. img may be nil and set later.
func NewSprite(name string, img *ebiten.Image) *Node {
	return newNode(name, img)
}

// AddChild appends child on top of n's children, detaching it from any
// previous parent. It panics on a nil child or when child is an ancestor
// of n.
func (n *Node) AddChild(child *Node) {
	n.adopt(child)
	n.children = append(n.children, child)
}

// AddChildAt is AddChild with an explicit draw position among the children.
func (n *Node) AddChildAt(child *Node, index int) {
	n.adopt(child)
	if index < 0 || index > len(n.children) {
		child.Parent = nil
		panic("mapevent: child index out of range")
	}
	n.children = slices.Insert(n.children, index, child)
}

func (n *Node) adopt(child *Node) {
	if child == nil {
		panic("mapevent: cannot add nil child")
	}
	for p := n; p != nil; p = p.Parent {
		if p == child {
			panic("mapevent: adding child would create a cycle")
		}
	}
	if child.Parent != nil {
		child.Parent.detach(child)
	}
	child.Parent = n
}

// RemoveChild detaches child. It panics if n is not child's parent.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("mapevent: child's parent is not this node")
	}
	n.detach(child)
	child.Parent = nil
}

// RemoveFromParent detaches n; it does nothing for a root.
func (n *Node) RemoveFromParent() {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Children returns the children in draw order. Callers must not modify the
// slice.
func (n *Node) Children() []*Node { return n.children }

func (n *Node) NumChildren() int { return len(n.children) }

func (n *Node) ChildAt(index int) *Node { return n.children[index] }

// ChildIndex returns the position of child among n's children, or -1.
func (n *Node) ChildIndex(child *Node) int {
	return slices.Index(n.children, child)
}

// SetChildIndex moves child to index, shifting the siblings in between.
func (n *Node) SetChildIndex(child *Node, index int) {
	if child.Parent != n {
		panic("mapevent: child's parent is not this node")
	}
	if index < 0 || index >= len(n.children) {
		panic("mapevent: child index out of range")
	}
	if old := n.ChildIndex(child); old != index {
		n.children = slices.Insert(slices.Delete(n.children, old, old+1), index, child)
	}
}

// WorldPosition sums the offsets from n up to the root.
func (n *Node) WorldPosition() (x, y float64) {
	for p := n; p != nil; p = p.Parent {
		x += p.X
		y += p.Y
	}
	return x, y
}

// Dispose detaches n and marks it and its subtree disposed. Images are left
// to their owner.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.markDisposed()
}

func (n *Node) markDisposed() {
	n.disposed = true
	n.ID = 0
	n.Parent = nil
	n.Image = nil
	for _, c := range n.children {
		c.markDisposed()
	}
	n.children = nil
}

func (n *Node) IsDisposed() bool { return n.disposed }

// detach drops child from n.children, leaving child.Parent untouched.
func (n *Node) detach(child *Node) {
	if i := n.ChildIndex(child); i >= 0 {
		n.children = slices.Delete(n.children, i, i+1)
	}
}
