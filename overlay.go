package mapevent

import "sort"

// Overlay is the name tag drawable of one entity. Its image is rebuilt only
// when the displayed text or the resolved preset key changes.
type Overlay struct {
	entity *Entity
	sprite *Node
	node   *Node

	text    string
	key     string
	drawn   bool
	shown   bool
	redraws int
	fade    *Fade
}

// Node returns the overlay's draw node.
func (o *Overlay) Node() *Node { return o.node }

// Redraws returns how many times the image has been rebuilt.
func (o *Overlay) Redraws() int { return o.redraws }

// Visible reports whether the overlay was shown on the last update.
func (o *Overlay) Visible() bool { return o.shown }

// Text returns the text of the current image.
func (o *Overlay) Text() string { return o.text }

// OverlayRenderer keeps one Overlay per entity sprite in sync with the name
// tag resolver and the scene.
type OverlayRenderer struct {
	scene      *MapScene
	tags       *NameTags
	painter    TagPainter
	screen     Screen
	vars       Variables
	sink       EventSink
	fadeFrames int

	overlays map[int]*Overlay
}

// NewOverlayRenderer returns a renderer drawing into scene.
func NewOverlayRenderer(scene *MapScene, tags *NameTags, painter TagPainter, screen Screen, vars Variables) *OverlayRenderer {
	return &OverlayRenderer{
		scene:    scene,
		tags:     tags,
		painter:  painter,
		screen:   screen,
		vars:     vars,
		overlays: make(map[int]*Overlay),
	}
}

// SetFadeFrames sets the fade-in length applied whenever an overlay appears.
func (r *OverlayRenderer) SetFadeFrames(frames int) { r.fadeFrames = max(frames, 0) }

// SetEventSink sets the observer notified of overlay visibility changes.
func (r *OverlayRenderer) SetEventSink(sink EventSink) { r.sink = sink }

// Overlay returns the overlay for entity id, or nil.
func (r *OverlayRenderer) Overlay(id int) *Overlay { return r.overlays[id] }

// Len returns the number of live overlays.
func (r *OverlayRenderer) Len() int { return len(r.overlays) }

// SpriteCreated attaches an overlay to a newly created entity sprite. The
// overlay starts as a child of the sprite and moves to the overlay layer once
// the layer exists.
func (r *OverlayRenderer) SpriteCreated(e *Entity, sprite *Node) {
	if old := r.overlays[e.ID]; old != nil {
		r.release(old)
	}
	node := NewSprite("nametag", nil)
	node.PivotX, node.PivotY = 0.5, 1
	node.EntityID = e.ID
	node.Visible = false
	sprite.AddChild(node)
	o := &Overlay{entity: e, sprite: sprite, node: node}
	r.overlays[e.ID] = o
	r.redraw(o, true)
}

// SpriteDisposed destroys the overlay of e.
func (r *OverlayRenderer) SpriteDisposed(e *Entity) {
	if o := r.overlays[e.ID]; o != nil {
		r.release(o)
		delete(r.overlays, e.ID)
	}
}

func (r *OverlayRenderer) release(o *Overlay) {
	if o.node.Image != nil {
		o.node.Image.Deallocate()
	}
	o.node.Dispose()
}

// Refresh forces a redraw of the overlay for entity id on its next visible
// update.
func (r *OverlayRenderer) Refresh(id int) {
	if o := r.overlays[id]; o != nil {
		o.drawn = false
	}
}

// Update syncs every overlay with its entity, then restores the overlay
// layer's top position.
func (r *OverlayRenderer) Update() {
	ids := make([]int, 0, len(r.overlays))
	for id := range r.overlays {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		r.updateOverlay(r.overlays[id])
	}
	r.scene.KeepOverlayOnTop()
}

func (r *OverlayRenderer) updateOverlay(o *Overlay) {
	if o.sprite.IsDisposed() {
		r.SpriteDisposed(o.entity)
		return
	}
	e := o.entity
	r.placeSprite(o)

	visible := r.tags.RawText(e) != "" && !e.Transparent
	if !visible {
		o.node.Visible = false
		if o.shown {
			o.shown = false
			emit(r.sink, Event{Type: EventNameTagHidden, EntityID: e.ID})
		}
		return
	}

	r.attachToLayer(o)
	style := r.tags.Style(e)
	r.placeOverlay(o, style)
	changed := r.redraw(o, false)
	o.node.Visible = true

	if !o.shown {
		o.shown = true
		if r.fadeFrames > 0 {
			o.fade = FadeIn(o.node, r.fadeFrames)
		}
		emit(r.sink, Event{Type: EventNameTagShown, EntityID: e.ID, Text: o.text, StyleKey: o.key})
	} else if changed {
		emit(r.sink, Event{Type: EventNameTagShown, EntityID: e.ID, Text: o.text, StyleKey: o.key})
	}
	if o.fade != nil {
		o.fade.Update()
		if o.fade.Done {
			o.fade = nil
		}
	}
}

// placeSprite positions the entity sprite at its screen anchor plus the
// entity's locate offset.
func (r *OverlayRenderer) placeSprite(o *Overlay) {
	if r.screen == nil {
		return
	}
	x, y, _ := r.screen.ScreenPosition(o.entity)
	off := o.entity.LocateOffset(r.vars)
	o.sprite.X = x + off.X
	o.sprite.Y = y + off.Y
}

// placeOverlay puts the tag's bottom-centre one pattern height above the
// sprite anchor, adjusted by the preset's vertical offset.
func (r *OverlayRenderer) placeOverlay(o *Overlay, style StylePreset) {
	var height float64
	if r.screen != nil {
		_, _, height = r.screen.ScreenPosition(o.entity)
	}
	y := -height + style.OffsetY
	if o.node.Parent == o.sprite {
		o.node.X, o.node.Y = 0, y
		return
	}
	o.node.X = o.sprite.X
	o.node.Y = o.sprite.Y + y
}

// attachToLayer reparents the overlay to the overlay layer if the layer
// exists and the overlay is not there yet.
func (r *OverlayRenderer) attachToLayer(o *Overlay) {
	layer := r.scene.OverlayLayer()
	if layer == nil || layer.IsDisposed() || o.node.Parent == layer {
		return
	}
	layer.AddChild(o.node)
}

// redraw rebuilds the image when the expanded text or the preset key changed,
// or when force is set. It reports whether the image was rebuilt.
func (r *OverlayRenderer) redraw(o *Overlay, force bool) bool {
	text := r.tags.Text(o.entity)
	style := r.tags.Style(o.entity)
	if !force && o.drawn && text == o.text && style.Tag == o.key {
		return false
	}
	o.text, o.key, o.drawn = text, style.Tag, true

	if o.node.Image != nil {
		o.node.Image.Deallocate()
		o.node.Image = nil
	}
	if text == "" || r.painter == nil {
		return true
	}
	w, h := tagSize(r.painter, text, style)
	o.node.Image = r.painter.PaintTag(text, style, w, h)
	o.redraws++
	return true
}
