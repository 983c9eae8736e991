package mapevent

import (
	"errors"
	"testing"
)

// Opcodes used by the test scripts. They belong to no engine feature.
const (
	opMark Opcode = 900 // Params[0] is appended to the trace
	opFail Opcode = 901 // returns errBoom
)

var errBoom = errors.New("boom")

func mark(s string) Command { return Command{Code: opMark, Params: []string{s}} }

// traceExec records marks and lets a test hook plugin commands.
type traceExec struct {
	trace  []string
	plugin func(in *Interpreter, cmd Command) error
}

func (x *traceExec) ExecuteCommand(in *Interpreter, cmd Command) error {
	switch cmd.Code {
	case opMark:
		x.trace = append(x.trace, cmd.Param(0))
	case opFail:
		return errBoom
	case OpPluginCommand:
		if x.plugin != nil {
			return x.plugin(in, cmd)
		}
	}
	return nil
}

func traceString(trace []string) string {
	s := ""
	for _, v := range trace {
		s += v
	}
	return s
}

func TestInterpreterRunsInOrder(t *testing.T) {
	in := NewInterpreter(NewCommandList(mark("a"), Label("x"), mark("b"), mark("c")), 1)
	x := &traceExec{}
	if err := in.Run(x, 0); err != nil {
		t.Fatal(err)
	}
	if got := traceString(x.trace); got != "abc" {
		t.Errorf("trace = %q, want %q", got, "abc")
	}
	if in.IsRunning() {
		t.Error("interpreter should have finished")
	}
	if ok, _ := in.Step(x); ok {
		t.Error("Step after the end should report false")
	}
}

func TestInterpreterRunLimit(t *testing.T) {
	in := NewInterpreter(NewCommandList(mark("a"), mark("b"), mark("c")), 0)
	x := &traceExec{}
	if err := in.Run(x, 2); err != nil {
		t.Fatal(err)
	}
	if got := traceString(x.trace); got != "ab" {
		t.Errorf("trace = %q, want %q", got, "ab")
	}
	if in.Index() != 2 {
		t.Errorf("Index = %d, want 2", in.Index())
	}
}

func TestInterpreterErrorStops(t *testing.T) {
	in := NewInterpreter(NewCommandList(mark("a"), Command{Code: opFail}, mark("b")), 0)
	x := &traceExec{}
	if err := in.Run(x, 0); !errors.Is(err, errBoom) {
		t.Fatalf("Run error = %v, want errBoom", err)
	}
	if got := traceString(x.trace); got != "a" {
		t.Errorf("trace = %q, want %q", got, "a")
	}
}

func TestJumpToClamps(t *testing.T) {
	in := NewInterpreter(NewCommandList(mark("a"), mark("b")), 0)
	in.JumpTo(10)
	if in.Index() != 2 {
		t.Errorf("Index = %d, want 2", in.Index())
	}
	in.JumpTo(-3)
	if in.Index() != 0 {
		t.Errorf("Index = %d, want 0", in.Index())
	}
}

// Jump is non-returning: the pre-jump list never resumes.
func TestJumpIsNonReturning(t *testing.T) {
	target := NewCommandList(mark("x"), Label("L"), mark("t1"), mark("t2"))
	start := NewCommandList(mark("s1"), PluginCommand("go", nil), mark("s2"))

	x := &traceExec{}
	x.plugin = func(in *Interpreter, _ Command) error {
		loc, ok := ResolveLabel(nil, target, LabelRef{Name: "L"}, SearchAuto)
		if !ok {
			t.Fatal("label not resolved")
		}
		Jump(in, loc, 5)
		return nil
	}
	in := NewInterpreter(start, 1)
	if err := in.Run(x, 0); err != nil {
		t.Fatal(err)
	}
	if got := traceString(x.trace); got != "s1t1t2" {
		t.Errorf("trace = %q, want %q", got, "s1t1t2")
	}
	if in.List() != target {
		t.Error("frame should now run the target list")
	}
	if in.EntityID() != 5 {
		t.Errorf("EntityID = %d, want 5", in.EntityID())
	}
	if in.Depth() != 1 {
		t.Errorf("Depth = %d, want 1", in.Depth())
	}
}

// Call is returning: the caller resumes right after the call.
func TestCallResumesAfterCall(t *testing.T) {
	target := NewCommandList(mark("x"), Label("L"), mark("t1"), mark("t2"))
	start := NewCommandList(mark("s1"), PluginCommand("go", nil), mark("s2"))

	x := &traceExec{}
	x.plugin = func(in *Interpreter, _ Command) error {
		Call(in, Location{List: target, Index: 1}, 5)
		if in.Depth() != 2 {
			t.Errorf("Depth after Call = %d, want 2", in.Depth())
		}
		if in.Child().EntityID() != 5 {
			t.Errorf("child EntityID = %d, want 5", in.Child().EntityID())
		}
		return nil
	}
	in := NewInterpreter(start, 1)
	if err := in.Run(x, 0); err != nil {
		t.Fatal(err)
	}
	if got := traceString(x.trace); got != "s1t1t2s2" {
		t.Errorf("trace = %q, want %q", got, "s1t1t2s2")
	}
	if in.List() != start || in.EntityID() != 1 {
		t.Error("caller frame should be unchanged")
	}
	if in.Child() != nil {
		t.Error("finished child should be dropped")
	}
}

// A jump inside a called frame re-points only that frame; the caller still
// resumes once it finishes.
func TestJumpInsideCall(t *testing.T) {
	other := NewCommandList(Label("J"), mark("j"))
	called := NewCommandList(Label("C"), mark("c1"), PluginCommand("jump", nil), mark("c2"))
	start := NewCommandList(PluginCommand("call", nil), mark("s"))

	x := &traceExec{}
	x.plugin = func(in *Interpreter, cmd Command) error {
		switch cmd.Param(0) {
		case "call":
			Transfer(in, TransferCall, Location{List: called, Index: 0}, 0)
		case "jump":
			Transfer(in, TransferJump, Location{List: other, Index: 0}, 0)
		}
		return nil
	}
	in := NewInterpreter(start, 0)
	if err := in.Run(x, 0); err != nil {
		t.Fatal(err)
	}
	if got := traceString(x.trace); got != "c1js" {
		t.Errorf("trace = %q, want %q", got, "c1js")
	}
}

func TestCurrentFrame(t *testing.T) {
	in := NewInterpreter(NewCommandList(mark("a")), 0)
	if in.Current() != in {
		t.Error("Current without child should be the frame itself")
	}
	in.SetupChild(NewCommandList(mark("b")), 0)
	if in.Current() != in.Child() {
		t.Error("Current should be the innermost frame")
	}
	in.Setup(NewCommandList(), 0)
	if in.Child() != nil {
		t.Error("Setup should drop the child frame")
	}
}
