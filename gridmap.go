package mapevent

import "sort"

// GridMap is a small in-memory host: a rectangular tile map with blocked
// tiles, entities, a player avatar and switch/variable registers. It
// implements Map, Mover, Switches, Variables and Screen, and is enough to run
// the engine without an external game.
type GridMap struct {
	Width, Height         int
	TileWidth, TileHeight int
	Name                  string

	PlayerX, PlayerY int
	PlayerDir        Direction

	blocked   map[[2]int]bool
	entities  map[int]*Entity
	ids       []int
	switches  map[int]bool
	variables map[int]float64
}

// NewGridMap returns an empty w×h map with 48px tiles.
func NewGridMap(w, h int) *GridMap {
	return &GridMap{
		Width:      w,
		Height:     h,
		TileWidth:  48,
		TileHeight: 48,
		PlayerDir:  DirDown,
		blocked:    make(map[[2]int]bool),
		entities:   make(map[int]*Entity),
		switches:   make(map[int]bool),
		variables:  make(map[int]float64),
	}
}

// AddEntity places e on the map, replacing any entity with the same id.
func (g *GridMap) AddEntity(e *Entity) {
	if _, ok := g.entities[e.ID]; !ok {
		g.ids = append(g.ids, e.ID)
		sort.Ints(g.ids)
	}
	g.entities[e.ID] = e
}

// RemoveEntity removes the entity with id.
func (g *GridMap) RemoveEntity(id int) {
	if _, ok := g.entities[id]; !ok {
		return
	}
	delete(g.entities, id)
	for i, v := range g.ids {
		if v == id {
			g.ids = append(g.ids[:i], g.ids[i+1:]...)
			break
		}
	}
}

// SetBlocked marks (x, y) impassable or passable.
func (g *GridMap) SetBlocked(x, y int, blocked bool) {
	if blocked {
		g.blocked[[2]int{x, y}] = true
		return
	}
	delete(g.blocked, [2]int{x, y})
}

// SetSwitch sets switch id.
func (g *GridMap) SetSwitch(id int, on bool) { g.switches[id] = on }

// SetVariable sets variable id.
func (g *GridMap) SetVariable(id int, v float64) { g.variables[id] = v }

// --- Switches / Variables ---

func (g *GridMap) Switch(id int) bool { return g.switches[id] }

func (g *GridMap) Variable(id int) (float64, bool) {
	v, ok := g.variables[id]
	return v, ok
}

// --- Map ---

func (g *GridMap) Entity(id int) *Entity { return g.entities[id] }

func (g *GridMap) Entities() []*Entity {
	out := make([]*Entity, 0, len(g.ids))
	for _, id := range g.ids {
		out = append(out, g.entities[id])
	}
	return out
}

func (g *GridMap) IsValid(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

func (g *GridMap) DisplayName() string { return g.Name }

func (g *GridMap) PlayerFront() (int, int) {
	dx, dy := g.PlayerDir.Delta()
	return g.PlayerX + dx, g.PlayerY + dy
}

func (g *GridMap) EntityAt(x, y int) int {
	for _, id := range g.ids {
		if e := g.entities[id]; e.X == x && e.Y == y {
			return id
		}
	}
	return 0
}

// Passable reports whether (x, y) is inside the map and not blocked.
func (g *GridMap) Passable(x, y int) bool {
	return g.IsValid(x, y) && !g.blocked[[2]int{x, y}]
}

// --- Mover ---

func (g *GridMap) MoveStraight(e *Entity, d Direction) {
	e.Direction = d
	dx, dy := d.Delta()
	if g.Passable(e.X+dx, e.Y+dy) {
		e.X += dx
		e.Y += dy
	}
}

func (g *GridMap) MoveDiagonally(e *Entity, horz, vert Direction) {
	dx, _ := horz.Delta()
	_, dy := vert.Delta()
	if g.Passable(e.X+dx, e.Y+dy) {
		e.X += dx
		e.Y += dy
	}
}

func (g *GridMap) Jump(e *Entity, dx, dy int) {
	e.X += dx
	e.Y += dy
}

func (g *GridMap) Locate(e *Entity, x, y int) {
	e.X, e.Y = x, y
}

// --- Screen ---

// ScreenPosition anchors sprites at the bottom-centre of their tile.
func (g *GridMap) ScreenPosition(e *Entity) (x, y, height float64) {
	tw, th := float64(g.TileWidth), float64(g.TileHeight)
	return (float64(e.X) + 0.5) * tw, float64(e.Y+1) * th, th
}
