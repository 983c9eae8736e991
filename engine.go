package mapevent

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Host bundles the host collaborators an Engine needs. GridMap implements all
// of them.
type Host interface {
	Map
	Switches
	Variables
	Mover
	Screen
}

// Options configures NewEngine. Map, Switches, Variables and Mover are
// required; the rest are optional.
type Options struct {
	Config Config

	Map       Map
	Switches  Switches
	Variables Variables
	Mover     Mover
	Screen    Screen

	// Scene and Painter enable name tag overlays. Without a scene the
	// resolver still works but nothing is drawn.
	Scene   *MapScene
	Painter TagPainter

	// Fallback executes every opcode the engine does not own.
	Fallback CommandExecutor

	Logger logrus.FieldLogger
	Sink   EventSink
}

// OptionsFor returns Options wired to a single host value.
func OptionsFor(h Host, cfg Config) Options {
	return Options{
		Config:    cfg,
		Map:       h,
		Switches:  h,
		Variables: h,
		Mover:     h,
		Screen:    h,
	}
}

// Engine is the per-map runtime: it executes the engine's plugin commands,
// runs the per-entity update hooks and drives the overlay renderer.
type Engine struct {
	cfg      Config
	world    Map
	switches Switches
	vars     Variables
	log      logrus.FieldLogger
	sink     EventSink
	fallback CommandExecutor

	linkage  *Linkage
	tags     *NameTags
	scene    *MapScene
	overlays *OverlayRenderer

	commands map[string]CommandFunc
	hooks    []EntityUpdateHook
}

// NewEngine wires an engine from opts and registers the built-in commands.
func NewEngine(opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = NewLogger(opts.Config.LogLevel, opts.Config.LogFormat)
	}
	e := &Engine{
		cfg:      opts.Config,
		world:    opts.Map,
		switches: opts.Switches,
		vars:     opts.Variables,
		log:      log,
		fallback: opts.Fallback,
		scene:    opts.Scene,
		commands: make(map[string]CommandFunc),
	}
	e.linkage = NewLinkage(opts.Mover, opts.Map, opts.Switches, log)
	e.tags = NewNameTags(opts.Config.NameTags, opts.Switches, opts.Variables, opts.Map)
	if opts.Scene != nil {
		e.overlays = NewOverlayRenderer(opts.Scene, e.tags, opts.Painter, opts.Screen, opts.Variables)
		e.overlays.SetFadeFrames(opts.Config.FadeFrames)
	}
	e.hooks = []EntityUpdateHook{e.tags, e.linkage}
	e.SetEventSink(opts.Sink)

	e.Register(CmdCrossPageJump, WithArgs(e.crossPageJump))
	e.Register(CmdCrossPageCall, WithArgs(e.crossPageCall))
	e.Register(CmdNameTagShow, WithArgs(e.nameTagShow))
	e.Register(CmdNameTagHide, WithArgs(e.nameTagHide))

	e.linkage.ValidateLinks()
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Linkage returns the linkage-aware mover. Hosts route every motion of map
// entities through it.
func (e *Engine) Linkage() *Linkage { return e.linkage }

// NameTags returns the name tag resolver.
func (e *Engine) NameTags() *NameTags { return e.tags }

// Scene returns the scene, or nil.
func (e *Engine) Scene() *MapScene { return e.scene }

// Overlays returns the overlay renderer, or nil without a scene.
func (e *Engine) Overlays() *OverlayRenderer { return e.overlays }

// SetEventSink sets the observer of engine activity; nil disables events.
func (e *Engine) SetEventSink(sink EventSink) {
	e.sink = sink
	e.linkage.SetEventSink(sink)
	if e.overlays != nil {
		e.overlays.SetEventSink(sink)
	}
}

// Register installs fn as the handler of the plugin command name, replacing
// any previous handler.
func (e *Engine) Register(name string, fn CommandFunc) {
	e.commands[name] = fn
}

// AddHook appends an entity update hook run after the built-in ones.
func (e *Engine) AddHook(h EntityUpdateHook) {
	e.hooks = append(e.hooks, h)
}

// ExecuteCommand implements CommandExecutor.
func (e *Engine) ExecuteCommand(in *Interpreter, cmd Command) error {
	switch cmd.Code {
	case OpEnd, OpLabel:
		return nil
	case OpPluginCommand:
		name := cmd.Param(0)
		fn, ok := e.commands[name]
		if !ok {
			if e.fallback != nil {
				return e.fallback.ExecuteCommand(in, cmd)
			}
			e.log.WithField("command", name).Warn("unknown plugin command")
			return nil
		}
		return fn(in, Args(cmd.Args))
	}
	if e.fallback != nil {
		return e.fallback.ExecuteCommand(in, cmd)
	}
	return nil
}

// Update runs one tick: every entity's update hooks in id order, then the
// overlays. Motion propagated during the hooks is therefore visible to the
// name tags of the same tick.
func (e *Engine) Update() {
	for _, ent := range e.world.Entities() {
		if ent == nil {
			continue
		}
		for _, h := range e.hooks {
			h.UpdateEntity(ent)
		}
	}
	if e.overlays != nil {
		e.overlays.Update()
	}
}

// SpriteCreated implements SpriteLifecycleHook. The sprite is added to the
// scene if it is not attached yet.
func (e *Engine) SpriteCreated(ent *Entity, sprite *Node) {
	if e.scene == nil {
		return
	}
	if e.scene.Sprite(ent.ID) != sprite {
		e.scene.AddSprite(ent.ID, sprite)
	}
	e.overlays.SpriteCreated(ent, sprite)
}

// SpriteDisposed implements SpriteLifecycleHook.
func (e *Engine) SpriteDisposed(ent *Entity) {
	if e.scene == nil {
		return
	}
	e.overlays.SpriteDisposed(ent)
	e.scene.RemoveSprite(ent.ID)
}

// SetPage switches ent to page index i and revalidates parent links, which
// may have changed with the page.
func (e *Engine) SetPage(ent *Entity, i int) {
	ent.SetPage(i)
	e.linkage.ValidateLinks()
	if e.overlays != nil {
		e.overlays.Refresh(ent.ID)
	}
}

// ResolveTarget maps a command's eventId argument to an entity id: 0 is the
// frame's own entity, -1 the entity in front of the player, and a positive
// value is taken as is. Anything else resolves to 0, no entity.
func (e *Engine) ResolveTarget(in *Interpreter, id int) int {
	switch {
	case id > 0:
		return id
	case id == -1:
		return e.world.EntityAt(e.world.PlayerFront())
	case id == 0 && in != nil:
		return in.EntityID()
	}
	return 0
}

func (e *Engine) entity(id int) *Entity {
	if id <= 0 {
		return nil
	}
	return e.world.Entity(id)
}

func (e *Engine) crossPageJump(in *Interpreter, a CrossArgs) error {
	return e.CrossTransfer(in, a, TransferJump)
}

func (e *Engine) crossPageCall(in *Interpreter, a CrossArgs) error {
	return e.CrossTransfer(in, a, TransferCall)
}

// CrossTransfer resolves a label across the target entity's pages and jumps
// or calls to it. A miss is handled by a.OnNotFound.
func (e *Engine) CrossTransfer(in *Interpreter, a CrossArgs, mode TransferMode) error {
	if in == nil {
		return nil
	}
	eid := e.ResolveTarget(in, a.Target)
	target := e.entity(eid)

	label := ExpandText(a.Label, TextContext{Vars: e.vars, Map: e.world, Entity: target})
	ref := ParseLabelRef(label)

	var pages []*CommandList
	if target != nil {
		pages = target.Pages
	}
	loc, ok := ResolveLabel(pages, in.List(), ref, a.Order)
	if !ok {
		return e.labelMissing(eid, a, mode)
	}

	Transfer(in, mode, loc, eid)
	emit(e.sink, Event{
		Type:     EventTransfer,
		EntityID: eid,
		Label:    ref.Name,
		Page:     pageNumber(pages, loc.List),
		Mode:     mode,
	})
	e.log.WithFields(logrus.Fields{
		"entity": eid,
		"label":  ref.Name,
		"mode":   mode.String(),
		"index":  loc.Index,
	}).Debug("cross-page transfer")
	return nil
}

func (e *Engine) labelMissing(eid int, a CrossArgs, mode TransferMode) error {
	emit(e.sink, Event{Type: EventLabelMissing, EntityID: eid, Label: a.Label, Mode: mode})
	switch a.OnNotFound {
	case PolicyIgnore:
		return nil
	case PolicyError:
		return fmt.Errorf("%w: entity %d, label %q", ErrLabelNotFound, eid, a.Label)
	}
	e.log.WithFields(logrus.Fields{
		"entity": eid,
		"label":  a.Label,
		"mode":   mode.String(),
	}).Warn("cross-page label not found")
	return nil
}

// pageNumber returns the 1-based index of list in pages, 0 when absent.
func pageNumber(pages []*CommandList, list *CommandList) int {
	for i, p := range pages {
		if p == list {
			return i + 1
		}
	}
	return 0
}

func (e *Engine) nameTagShow(in *Interpreter, a ShowArgs) error {
	ent := e.entity(e.ResolveTarget(in, a.Target))
	if ent == nil {
		return nil
	}
	e.tags.Show(ent, a.Preset, a.Text)
	return nil
}

func (e *Engine) nameTagHide(in *Interpreter, a HideArgs) error {
	ent := e.entity(e.ResolveTarget(in, a.Target))
	if ent == nil {
		return nil
	}
	e.tags.Hide(ent, a.Frames)
	return nil
}
