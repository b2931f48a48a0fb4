package commands

import (
	"os"
	"strconv"

	"github.com/josephlewis42/resultsh/core/proc"
	"github.com/josephlewis42/resultsh/core/shell"
)

// AllBuiltins holds a list of all registered shell builtins
var AllBuiltins = make(map[string]ShellBuiltin)

// ShellBuiltin is a command handled by the shell itself, Main returns its
// exit status.
type ShellBuiltin interface {
	Main(s *Shell, cmd shell.Command) int
}

type ShellBuiltinFunc func(s *Shell, cmd shell.Command) int

func (f ShellBuiltinFunc) Main(s *Shell, cmd shell.Command) int {
	return f(s, cmd)
}

var _ ShellBuiltin = (ShellBuiltinFunc)(nil)

// exitUsage is the status of exit given a non-numeric code.
const exitUsage = 2

// Cd is the cd shell builtin. Without an argument it changes to $HOME.
func Cd(s *Shell, cmd shell.Command) int {
	var dir string
	if len(cmd.Args) > 1 {
		dir = cmd.Args[1]
	} else {
		dir = os.Getenv(EnvHome)
		if dir == "" {
			s.Errorf("%s: %s not set", cmd.Name(), EnvHome)
			return proc.ExitFailure
		}
	}

	if err := os.Chdir(dir); err != nil {
		s.Errorf("%s: %v", cmd.Name(), err)
		return proc.ExitFailure
	}
	return proc.ExitSuccess
}

// IfOk runs the rest of the line as an external command if the last command
// succeeded.
func IfOk(s *Shell, cmd shell.Command) int {
	return runIf(s, cmd, s.Vars.Status() == "0")
}

// IfNot runs the rest of the line as an external command if the last command
// failed.
func IfNot(s *Shell, cmd shell.Command) int {
	return runIf(s, cmd, s.Vars.Status() != "0")
}

// runIf goes straight to the executor: `ifok cd x` looks for a program named
// cd rather than running the builtin.
func runIf(s *Shell, cmd shell.Command, cond bool) int {
	if !cond {
		return proc.ExitFailure
	}

	rest := cmd.Shift()
	if len(rest.Args) == 0 {
		s.Errorf("%s: missing command", cmd.Name())
		return proc.ExitFailure
	}
	return s.execute(rest)
}

// Exit quits the shell with the code given as first argument, 0 if there's
// none.
func Exit(s *Shell, cmd shell.Command) int {
	code := proc.ExitSuccess
	if len(cmd.Args) > 1 {
		parsed, err := strconv.Atoi(cmd.Args[1])
		if err != nil {
			s.Errorf("%s: %s: numeric argument required", cmd.Name(), cmd.Args[1])
			parsed = exitUsage
		}
		code = parsed
	}

	s.Quit = true
	s.exitCode = code
	return code
}

func init() {
	AllBuiltins["cd"] = ShellBuiltinFunc(Cd)
	AllBuiltins["ifok"] = ShellBuiltinFunc(IfOk)
	AllBuiltins["ifnot"] = ShellBuiltinFunc(IfNot)
	AllBuiltins["exit"] = ShellBuiltinFunc(Exit)
}
