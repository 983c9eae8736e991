// Package mapevent is a map-event runtime for tile-based RPGs on [Ebitengine].
//
// It adds three things to a host game's map entities: cross-page control
// transfer for event scripts, name tag overlays, and parent/child movement
// linkage. The host owns the world; mapevent reaches it through small
// interfaces ([Map], [Mover], [Switches], [Variables], [Screen]).
// [GridMap] implements all of them for tests and simple games.
//
// # Quick start
//
//	grid := mapevent.NewGridMap(20, 15)
//	grid.AddEntity(mapevent.NewEntity(1, "Door", "<Name:Door>", pages...))
//
//	scene := mapevent.NewMapScene()
//	opts := mapevent.OptionsFor(grid, mapevent.DefaultConfig())
//	opts.Scene = scene
//	opts.Painter = mapevent.NewEbitenPainter(font)
//	engine := mapevent.NewEngine(opts)
//
// Call [Engine.Update] once per tick and [MapScene.Draw] from the game's Draw.
//
// # Event scripts
//
// A script is a [CommandList]; an [Interpreter] executes it with the
// [Engine] as its [CommandExecutor]. The CrossPageJump and CrossPageCall
// commands find a label on any page of a target entity. A label text of the
// form "#N:Name" pins the search to page N first:
//
//	mapevent.PluginCommand(mapevent.CmdCrossPageCall, map[string]string{
//		"labelText": "#2:Open",
//	})
//
// A jump replaces the running list; a call runs the label's suffix as a child
// frame and resumes afterwards. A missing label is ignored, logged or
// returned as [ErrLabelNotFound], per the command's ifNotFound argument.
//
// # Name tags
//
// Entity notes carry markers such as <Name:Shop>, <NamePreset:Door> or a
// preset tag used directly, <Door:Back room>. Tag text may reference
// variables (\V[n]), entity names (\EVNAME, \EVNAME[n]) and the map name
// (\MAPNAME). Presets come from the INI configuration ([LoadConfig]).
// Overlays are drawn on a layer kept above every other tilemap child and are
// only re-rendered when their text or preset changes.
//
// # Linkage
//
// An entity whose note says <ParentId:5> (or <ParentId[12]:5>, gated by
// switch 12) repeats every motion of entity 5. Route host motion through
// [Engine.Linkage] for this to apply. Children follow their direct parent
// only; a motion never cascades further.
//
// # ECS integration
//
// The mapevent/ecs module publishes engine events into a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package mapevent
