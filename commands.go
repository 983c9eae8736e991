package mapevent

import (
	"math"
	"strconv"
	"strings"
)

// Command names registered by NewEngine.
const (
	CmdCrossPageJump = "CrossPageJump"
	CmdCrossPageCall = "CrossPageCall"
	CmdNameTagShow   = "NameTagShow"
	CmdNameTagHide   = "NameTagHide"
)

// Args are the raw string arguments of a plugin command.
type Args map[string]string

// String returns the trimmed value of key, or def when it is blank.
func (a Args) String(key, def string) string {
	if v := strings.TrimSpace(a[key]); v != "" {
		return v
	}
	return def
}

// Int returns key as an integer. Blank values give def; values that are not
// numbers give bad.
func (a Args) Int(key string, def, bad int) int {
	v := strings.TrimSpace(foldDigits(a[key]))
	if v == "" {
		return def
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return bad
	}
	return int(n)
}

// CommandFunc executes a plugin command for the interpreter frame in.
type CommandFunc func(in *Interpreter, args Args) error

// argDecoder is implemented by the typed argument structs.
type argDecoder interface {
	decode(args Args)
}

// WithArgs adapts a handler taking typed arguments into a CommandFunc.
func WithArgs[T any, P interface {
	*T
	argDecoder
}](handler func(in *Interpreter, args T) error) CommandFunc {
	return func(in *Interpreter, raw Args) error {
		var a T
		P(&a).decode(raw)
		return handler(in, a)
	}
}

// noTarget is the target id used for eventId values that are not numbers.
// It resolves to no entity.
const noTarget = math.MinInt32

// CrossArgs are the arguments of CrossPageJump and CrossPageCall.
type CrossArgs struct {
	Label      string
	Target     int
	Order      SearchOrder
	OnNotFound NotFoundPolicy
}

func (a *CrossArgs) decode(args Args) {
	a.Label = args["labelText"]
	a.Target = args.Int("eventId", 0, noTarget)
	a.Order = ParseSearchOrder(args.String("searchMode", "auto"))
	a.OnNotFound = ParseNotFoundPolicy(args.String("ifNotFound", "warn"))
}

// ShowArgs are the arguments of NameTagShow.
type ShowArgs struct {
	Target int
	Preset string
	Text   string
}

func (a *ShowArgs) decode(args Args) {
	a.Target = args.Int("eventId", 0, noTarget)
	a.Preset = args.String("presetTag", "")
	a.Text = args.String("displayText", "")
}

// HideArgs are the arguments of NameTagHide.
type HideArgs struct {
	Target int
	Frames int
}

func (a *HideArgs) decode(args Args) {
	a.Target = args.Int("eventId", 0, noTarget)
	a.Frames = max(args.Int("durationFrames", 0, 0), 0)
}
