package mapevent

// Opcode identifies a primitive command. Only the opcodes the engine itself
// interprets are named; every other value belongs to the host.
type Opcode int

const (
	OpEnd           Opcode = 0   // end-of-list marker, a no-op
	OpLabel         Opcode = 118 // named jump/call target, Params[0] is the name
	OpPluginCommand Opcode = 357 // engine command, Params[0] is the command name
)

// Command is a single authored instruction.
type Command struct {
	Code   Opcode
	Indent int
	Params []string

	// Args holds named arguments for OpPluginCommand.
	Args map[string]string
}

// Label returns a label command named name.
func Label(name string) Command {
	return Command{Code: OpLabel, Params: []string{name}}
}

// PluginCommand returns an engine command invoking name with args.
func PluginCommand(name string, args map[string]string) Command {
	return Command{Code: OpPluginCommand, Params: []string{name}, Args: args}
}

// Param returns Params[i], or "" when absent.
func (c Command) Param(i int) string {
	if i < 0 || i >= len(c.Params) {
		return ""
	}
	return c.Params[i]
}

// CommandList is an ordered, authored script. Lists are compared by pointer:
// two lists with equal contents are still different pages.
type CommandList struct {
	Commands []Command
}

// NewCommandList wraps cmds in a CommandList.
func NewCommandList(cmds ...Command) *CommandList {
	return &CommandList{Commands: cmds}
}

// Len returns the number of commands, treating a nil list as empty.
func (l *CommandList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Commands)
}

// At returns the command at index i.
func (l *CommandList) At(i int) Command {
	return l.Commands[i]
}

// Slice returns a new list holding the commands from index i to the end. The
// backing storage is shared.
func (l *CommandList) Slice(i int) *CommandList {
	if l == nil || i >= len(l.Commands) {
		return &CommandList{}
	}
	if i < 0 {
		i = 0
	}
	return &CommandList{Commands: l.Commands[i:]}
}

// FindLabel returns the position of the first label command named name.
// Matching is exact; no trimming or case folding is applied.
func (l *CommandList) FindLabel(name string) (int, bool) {
	if l == nil {
		return -1, false
	}
	for i, cmd := range l.Commands {
		if cmd.Code == OpLabel && cmd.Param(0) == name {
			return i, true
		}
	}
	return -1, false
}
