package shell

import (
	"fmt"
	"strings"
)

// DefaultSigil marks a word as a variable reference.
const DefaultSigil = "$"

// Resolver looks up variable values.
type Resolver interface {
	Lookup(name string) (string, bool)
}

// UnresolvedVariableError is returned when a referenced variable isn't set.
type UnresolvedVariableError struct {
	Name string
}

func (e *UnresolvedVariableError) Error() string {
	return fmt.Sprintf("variable %s does not exist", e.Name)
}

// Substitute replaces every argument starting with sigil by the value of the
// variable it names. Arguments are resolved left to right and the first
// failure aborts the whole command; the input command is never modified.
func Substitute(cmd Command, vars Resolver, sigil string) (Command, error) {
	if sigil == "" {
		sigil = DefaultSigil
	}

	args := make([]string, len(cmd.Args))
	for i, arg := range cmd.Args {
		if !strings.HasPrefix(arg, sigil) {
			args[i] = arg
			continue
		}

		name := strings.TrimPrefix(arg, sigil)
		value, ok := vars.Lookup(name)
		if !ok {
			return Command{}, &UnresolvedVariableError{Name: name}
		}
		args[i] = value
	}

	return cmd.WithArgs(args), nil
}
