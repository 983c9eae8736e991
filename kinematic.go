package mapevent

import "github.com/sirupsen/logrus"

// Linkage wraps a Mover so that every motion of a parent is repeated by its
// enabled direct children. Children never cascade to their own children
// within the same motion.
type Linkage struct {
	base     Mover
	world    Map
	switches Switches
	log      logrus.FieldLogger
	sink     EventSink

	// moving holds the entities taking part in the motion being propagated.
	moving map[int]bool
}

// NewLinkage returns a Linkage delegating primitives to base.
func NewLinkage(base Mover, world Map, switches Switches, log logrus.FieldLogger) *Linkage {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Linkage{
		base:     base,
		world:    world,
		switches: switches,
		log:      log,
		moving:   make(map[int]bool),
	}
}

// SetEventSink sets the observer notified of propagated motion.
func (l *Linkage) SetEventSink(sink EventSink) {
	l.sink = sink
}

// FollowEnabled reports whether e currently follows its parent: its gate
// switch is on, or it has none.
func (l *Linkage) FollowEnabled(e *Entity) bool {
	link := e.ParentLink()
	if link.ParentID == 0 {
		return false
	}
	if link.GateSwitch == 0 {
		return true
	}
	return switchOn(l.switches, link.GateSwitch)
}

// Parent returns e's parent entity, or nil.
func (l *Linkage) Parent(e *Entity) *Entity {
	id := e.ParentLink().ParentID
	if id <= 0 {
		return nil
	}
	return l.world.Entity(id)
}

// Children returns the enabled direct children of the entity with id.
func (l *Linkage) Children(id int) []*Entity {
	if id <= 0 {
		return nil
	}
	var kids []*Entity
	for _, e := range l.world.Entities() {
		if e != nil && e.ID != id && e.ParentLink().ParentID == id && l.FollowEnabled(e) {
			kids = append(kids, e)
		}
	}
	return kids
}

// MoveStraight steps e one tile and repeats the step on its children.
func (l *Linkage) MoveStraight(e *Entity, d Direction) {
	l.motion(e,
		func() { l.base.MoveStraight(e, d) },
		func(k *Entity, _, _ int) { l.MoveStraight(k, d) })
}

// MoveDiagonally steps e diagonally and repeats the step on its children.
func (l *Linkage) MoveDiagonally(e *Entity, horz, vert Direction) {
	l.motion(e,
		func() { l.base.MoveDiagonally(e, horz, vert) },
		func(k *Entity, _, _ int) { l.MoveDiagonally(k, horz, vert) })
}

// Jump jumps e by (dx, dy) and repeats the jump on its children.
func (l *Linkage) Jump(e *Entity, dx, dy int) {
	l.motion(e,
		func() { l.base.Jump(e, dx, dy) },
		func(k *Entity, _, _ int) { l.Jump(k, dx, dy) })
}

// Locate places e at (x, y) and shifts its children by the same delta. A
// child whose target lies outside the map stays where it is.
func (l *Linkage) Locate(e *Entity, x, y int) {
	l.motion(e,
		func() { l.base.Locate(e, x, y) },
		func(k *Entity, dx, dy int) {
			nx, ny := k.X+dx, k.Y+dy
			if !l.world.IsValid(nx, ny) {
				l.log.WithFields(logrus.Fields{
					"entity": k.ID,
					"parent": e.ID,
					"x":      nx,
					"y":      ny,
				}).Debug("child relocation out of bounds")
				return
			}
			l.Locate(k, nx, ny)
		})
}

// motion runs self on e and, if e moved and is not itself moving as a child,
// fans the motion out to e's enabled children.
func (l *Linkage) motion(e *Entity, self func(), child func(k *Entity, dx, dy int)) {
	if e == nil {
		return
	}
	wasX, wasY := e.X, e.Y
	self()
	dx, dy := e.X-wasX, e.Y-wasY
	if l.moving[e.ID] || (dx == 0 && dy == 0) {
		return
	}

	l.moving[e.ID] = true
	defer delete(l.moving, e.ID)

	for _, k := range l.Children(e.ID) {
		syncMotionAttributes(k, e)
		if l.moving[k.ID] {
			continue
		}
		kx, ky := k.X, k.Y
		l.moving[k.ID] = true
		child(k, dx, dy)
		delete(l.moving, k.ID)
		if k.X != kx || k.Y != ky {
			emit(l.sink, Event{
				Type:     EventChildMoved,
				EntityID: k.ID,
				ParentID: e.ID,
				DX:       k.X - kx,
				DY:       k.Y - ky,
			})
		}
	}
}

// UpdateEntity keeps an enabled child's speed and frequency equal to its
// parent's.
func (l *Linkage) UpdateEntity(e *Entity) {
	if !l.FollowEnabled(e) {
		return
	}
	if p := l.Parent(e); p != nil {
		syncMotionAttributes(e, p)
	}
}

func syncMotionAttributes(child, parent *Entity) {
	if child.MoveSpeed != parent.MoveSpeed {
		child.MoveSpeed = parent.MoveSpeed
	}
	if child.MoveFrequency != parent.MoveFrequency {
		child.MoveFrequency = parent.MoveFrequency
	}
}

// ValidateLinks drops parent links that name a missing entity or close a
// cycle. It returns the number of links dropped. Dropped links stay cleared
// until the entity's page changes.
func (l *Linkage) ValidateLinks() int {
	entities := l.world.Entities()
	dropped := 0
	for _, e := range entities {
		if e == nil {
			continue
		}
		id := e.ParentLink().ParentID
		if id == 0 {
			continue
		}
		if l.world.Entity(id) == nil {
			l.log.WithFields(logrus.Fields{"entity": e.ID, "parent": id}).
				Warn("parent link names a missing entity; link dropped")
			e.clearParentLink()
			dropped++
		}
	}
	for _, e := range entities {
		if e == nil || e.ParentLink().ParentID == 0 {
			continue
		}
		if l.inCycle(e, len(entities)) {
			l.log.WithFields(logrus.Fields{"entity": e.ID, "parent": e.ParentLink().ParentID}).
				Warn("parent link closes a cycle; link dropped")
			e.clearParentLink()
			dropped++
		}
	}
	return dropped
}

// inCycle reports whether following parent links from e leads back to e.
func (l *Linkage) inCycle(e *Entity, limit int) bool {
	cur := e
	for i := 0; i <= limit; i++ {
		id := cur.ParentLink().ParentID
		if id == 0 {
			return false
		}
		if id == e.ID {
			return true
		}
		next := l.world.Entity(id)
		if next == nil {
			return false
		}
		cur = next
	}
	return false
}
