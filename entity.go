package mapevent

// NameTagState is the runtime override record of an entity's name tag. It is
// not part of authored data and lives as long as the entity does.
type NameTagState struct {
	Text      string // override text, used when HasText is set
	HasText   bool
	Style     string // override preset tag, "" = none
	Hidden    bool   // manual hide
	HideTimed bool   // Hidden clears once HideTimer runs out
	HideTimer int    // remaining hidden ticks when HideTimed
}

// pageCache holds values derived from the current page. It is dropped on
// every page swap and rebuilt lazily.
type pageCache struct {
	locate      Vec2
	locateReady bool
	parent      ParentLink
	parentReady bool
}

// Entity is a map object running authored command pages.
type Entity struct {
	ID   int
	Name string
	Note string // authored marker metadata

	Pages []*CommandList

	X, Y          int
	MoveSpeed     int
	MoveFrequency int
	Transparent   bool
	Direction     Direction

	// NameTag holds Show/Hide overrides.
	NameTag NameTagState

	page      int
	meta      Metadata
	metaReady bool
	cache     pageCache
}

// NewEntity returns an entity on page 1 (index 0) when pages exist.
func NewEntity(id int, name, note string, pages ...*CommandList) *Entity {
	e := &Entity{
		ID:            id,
		Name:          name,
		Note:          note,
		Pages:         pages,
		MoveSpeed:     4,
		MoveFrequency: 3,
		Direction:     DirDown,
		page:          -1,
	}
	if len(pages) > 0 {
		e.page = 0
	}
	return e
}

// PageIndex returns the zero-based active page, -1 when none is active.
func (e *Entity) PageIndex() int {
	return e.page
}

// CurrentList returns the active page's command list, or nil.
func (e *Entity) CurrentList() *CommandList {
	if e.page < 0 || e.page >= len(e.Pages) {
		return nil
	}
	return e.Pages[e.page]
}

// SetPage activates page index i (-1 for none) and invalidates page-derived
// caches.
func (e *Entity) SetPage(i int) {
	if i < -1 || i >= len(e.Pages) {
		i = -1
	}
	e.page = i
	e.cache = pageCache{}
}

// Metadata returns the parsed note markers.
func (e *Entity) Metadata() Metadata {
	if !e.metaReady {
		e.meta = ParseMetadata(e.Note)
		e.metaReady = true
	}
	return e.meta
}

// SetNote replaces the authored metadata and drops everything derived from it.
func (e *Entity) SetNote(note string) {
	e.Note = note
	e.metaReady = false
	e.cache = pageCache{}
}

// LocateOffset returns the pixel nudge declared by the locate marker.
func (e *Entity) LocateOffset(vars Variables) Vec2 {
	if !e.cache.locateReady {
		e.cache.locate = ParseLocateOffset(e.Metadata().Value(LocateMarkers...), vars)
		e.cache.locateReady = true
	}
	return e.cache.locate
}

// ParentLink returns the declared parent. A link to the entity itself is
// reported as no parent.
func (e *Entity) ParentLink() ParentLink {
	if !e.cache.parentReady {
		link := ParseParentLink(e.Metadata())
		if link.ParentID == e.ID {
			link = ParentLink{}
		}
		e.cache.parent = link
		e.cache.parentReady = true
	}
	return e.cache.parent
}

// clearParentLink overrides the cached link until the next page swap.
func (e *Entity) clearParentLink() {
	e.cache.parent = ParentLink{}
	e.cache.parentReady = true
}
