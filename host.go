package mapevent

// Switches reads host flag registers. Id 0 is never a valid switch.
type Switches interface {
	Switch(id int) bool
}

// Variables reads host numeric registers.
type Variables interface {
	Variable(id int) (float64, bool)
}

// Map is the host world model the engine consults.
type Map interface {
	// Entity returns the entity with the given id, or nil.
	Entity(id int) *Entity
	// Entities returns every entity on the map, in id order.
	Entities() []*Entity
	// IsValid reports whether (x, y) lies inside the map bounds.
	IsValid(x, y int) bool
	// DisplayName returns the name shown for the current map.
	DisplayName() string
	// PlayerFront returns the tile in front of the player avatar.
	PlayerFront() (x, y int)
	// EntityAt returns the id of an entity on (x, y), 0 when none.
	EntityAt(x, y int) int
}

// Mover performs the host's position-changing primitives. Passability and
// facing rules belong to the implementation.
type Mover interface {
	MoveStraight(e *Entity, d Direction)
	MoveDiagonally(e *Entity, horz, vert Direction)
	Jump(e *Entity, dx, dy int)
	Locate(e *Entity, x, y int)
}

// EntityUpdateHook runs once per entity per tick, after the host's own
// entity update.
type EntityUpdateHook interface {
	UpdateEntity(e *Entity)
}

// SpriteLifecycleHook is notified when an entity's sprite enters or leaves the
// scene.
type SpriteLifecycleHook interface {
	SpriteCreated(e *Entity, sprite *Node)
	SpriteDisposed(e *Entity)
}

// Screen converts map coordinates to screen pixels.
type Screen interface {
	// ScreenPosition returns the pixel position of the entity's sprite
	// anchor (bottom-centre) and the sprite's pattern height.
	ScreenPosition(e *Entity) (x, y, height float64)
}

// switchOn is a nil-safe switch read.
func switchOn(s Switches, id int) bool {
	if s == nil || id <= 0 {
		return false
	}
	return s.Switch(id)
}
