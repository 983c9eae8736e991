package mapevent

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Fade animates a node's Alpha between two values. Durations are in ticks;
// call Update once per tick. If the target node is disposed, the fade stops
// immediately.
type Fade struct {
	tween  *gween.Tween
	target *Node
	Done   bool
}

// FadeIn returns a fade of node.Alpha from 0 to 1 over frames ticks.
func FadeIn(node *Node, frames int) *Fade {
	return FadeAlpha(node, 0, 1, frames, ease.OutQuad)
}

// FadeAlpha returns a fade of node.Alpha from `from` to `to` over frames ticks
// using fn. A non-positive frame count applies `to` at once.
func FadeAlpha(node *Node, from, to float64, frames int, fn ease.TweenFunc) *Fade {
	f := &Fade{target: node}
	if frames <= 0 {
		node.Alpha = to
		f.Done = true
		return f
	}
	node.Alpha = from
	f.tween = gween.New(float32(from), float32(to), float32(frames), fn)
	return f
}

// Update advances the fade by one tick and writes the value to the node.
func (f *Fade) Update() {
	if f.Done {
		return
	}
	if f.target.IsDisposed() {
		f.Done = true
		return
	}
	v, finished := f.tween.Update(1)
	f.target.Alpha = float64(v)
	f.Done = finished
}
