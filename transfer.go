package mapevent

import (
	"errors"
	"strings"
)

// ErrLabelNotFound is returned by a cross-page transfer whose label could not
// be resolved under the error policy.
var ErrLabelNotFound = errors.New("mapevent: label not found")

// NotFoundPolicy decides what a failed label lookup does.
type NotFoundPolicy uint8

const (
	PolicyWarn   NotFoundPolicy = iota // log and continue (default)
	PolicyIgnore                       // silent no-op
	PolicyError                        // abort the invoking script path
)

// ParseNotFoundPolicy maps a command argument to a policy. Unknown values fall
// back to PolicyWarn.
func ParseNotFoundPolicy(s string) NotFoundPolicy {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ignore":
		return PolicyIgnore
	case "error":
		return PolicyError
	}
	return PolicyWarn
}

func (p NotFoundPolicy) String() string {
	switch p {
	case PolicyIgnore:
		return "ignore"
	case PolicyError:
		return "error"
	}
	return "warn"
}

// TransferMode distinguishes a non-returning jump from a returning call.
type TransferMode uint8

const (
	TransferJump TransferMode = iota
	TransferCall
)

func (m TransferMode) String() string {
	if m == TransferCall {
		return "call"
	}
	return "jump"
}

// Jump reinitializes in on loc.List and moves the cursor to the label. Pending
// child frames of in are dropped, so nothing resumes the pre-jump list.
func Jump(in *Interpreter, loc Location, entityID int) {
	in.Setup(loc.List, entityID)
	in.JumpTo(loc.Index)
}

// Call runs the suffix of loc.List starting at the label as a child frame of
// in. in resumes at its current cursor once the child finishes.
func Call(in *Interpreter, loc Location, entityID int) {
	in.SetupChild(loc.List.Slice(loc.Index), entityID)
}

// Transfer applies mode to in.
func Transfer(in *Interpreter, mode TransferMode, loc Location, entityID int) {
	if mode == TransferCall {
		Call(in, loc, entityID)
		return
	}
	Jump(in, loc, entityID)
}
