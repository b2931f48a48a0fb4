package shell

// Command is a parsed command line. It is built fresh for every line and
// treated as an immutable value: operations return modified copies.
type Command struct {
	// Args holds the argument vector, the command name is Args[0].
	// Redirection, background and here-document tokens never appear here.
	Args []string

	// InputFile is the file bound to standard input, empty if unset.
	InputFile string
	// OutputFile is the file bound to standard output, empty if unset.
	OutputFile string

	// Background is set when the line carried the background operator.
	Background bool
	// HereDoc is set when the line carried the here-document opener.
	HereDoc bool
}

// Name returns the command name, empty if there are no arguments.
func (c Command) Name() string {
	if len(c.Args) == 0 {
		return ""
	}
	return c.Args[0]
}

// Shift returns a copy of the command with the first argument dropped.
func (c Command) Shift() Command {
	out := c
	if len(c.Args) == 0 {
		out.Args = nil
		return out
	}
	out.Args = append([]string(nil), c.Args[1:]...)
	return out
}

// WithArgs returns a copy of the command with the given arguments.
func (c Command) WithArgs(args []string) Command {
	out := c
	out.Args = args
	return out
}
