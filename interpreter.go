package mapevent

// CommandExecutor executes one command on behalf of an interpreter frame.
// Implementations may re-point the frame (Setup, JumpTo, SetupChild); the
// cursor has already moved past cmd when ExecuteCommand is called.
type CommandExecutor interface {
	ExecuteCommand(in *Interpreter, cmd Command) error
}

// Interpreter is a command-list execution frame. A frame with a running child
// steps the child until it finishes, then resumes its own list.
type Interpreter struct {
	list     *CommandList
	index    int
	entityID int
	child    *Interpreter
}

// NewInterpreter returns a frame positioned at the start of list.
func NewInterpreter(list *CommandList, entityID int) *Interpreter {
	in := &Interpreter{}
	in.Setup(list, entityID)
	return in
}

// Setup reinitializes the frame on list with the cursor at 0. Any running
// child frame is discarded.
func (in *Interpreter) Setup(list *CommandList, entityID int) {
	in.list = list
	in.index = 0
	in.entityID = entityID
	in.child = nil
}

// JumpTo moves the cursor to index. The command at index runs next.
func (in *Interpreter) JumpTo(index int) {
	in.index = clampInt(index, 0, in.list.Len())
}

// SetupChild starts a nested frame on list. The parent resumes after the child
// reaches the end of its list.
func (in *Interpreter) SetupChild(list *CommandList, entityID int) {
	in.child = NewInterpreter(list, entityID)
}

// List returns the list the frame is executing.
func (in *Interpreter) List() *CommandList { return in.list }

// Index returns the position of the next command to run.
func (in *Interpreter) Index() int { return in.index }

// EntityID returns the entity the frame runs for, 0 when none.
func (in *Interpreter) EntityID() int { return in.entityID }

// Child returns the running nested frame, or nil.
func (in *Interpreter) Child() *Interpreter { return in.child }

// Depth returns the number of frames in the chain, including in.
func (in *Interpreter) Depth() int {
	d := 0
	for f := in; f != nil; f = f.child {
		d++
	}
	return d
}

// Current returns the innermost running frame.
func (in *Interpreter) Current() *Interpreter {
	f := in
	for f.child != nil {
		f = f.child
	}
	return f
}

// IsRunning reports whether any command remains in the chain.
func (in *Interpreter) IsRunning() bool {
	if in.child != nil && in.child.IsRunning() {
		return true
	}
	return in.index < in.list.Len()
}

// Step executes one command in the innermost running frame. It returns false
// once the whole chain has finished.
func (in *Interpreter) Step(exec CommandExecutor) (bool, error) {
	if in.child != nil {
		if in.child.IsRunning() {
			_, err := in.child.Step(exec)
			return true, err
		}
		in.child = nil
	}
	if in.index >= in.list.Len() {
		return false, nil
	}
	cmd := in.list.At(in.index)
	in.index++
	if err := exec.ExecuteCommand(in, cmd); err != nil {
		return true, err
	}
	return true, nil
}

// Run steps the chain until it finishes, an error is returned, or limit
// commands have run. A limit of 0 means no limit.
func (in *Interpreter) Run(exec CommandExecutor, limit int) error {
	for n := 0; limit == 0 || n < limit; n++ {
		ok, err := in.Step(exec)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
	return nil
}
