package commands

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/josephlewis42/resultsh/core/config"
	"github.com/josephlewis42/resultsh/core/env"
	"github.com/josephlewis42/resultsh/core/lineio"
	"github.com/josephlewis42/resultsh/core/logger"
	"github.com/josephlewis42/resultsh/core/proc"
	"github.com/josephlewis42/resultsh/core/shell"
)

const (
	EnvHome = "HOME"
	EnvPath = "PATH"

	// Name prefixes every diagnostic.
	Name = "resultsh"
)

var (
	// ErrNoSearchPath is returned when there is no search path to find commands.
	ErrNoSearchPath = errors.New("search path is not set")
	// ErrStatusMismatch is returned when the given variables reserve a
	// different status variable than the configuration.
	ErrStatusMismatch = errors.New("status variable doesn't match configuration")
)

// Options configures a Shell.
type Options struct {
	Config *config.Configuration

	// Vars holds the variables, a new store is created if nil.
	Vars *env.Store

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Path is the PATH style list of directories holding commands.
	Path string

	// Events receives a record of every processed line, dropped if nil.
	Events *logger.SessionLogger
}

// Shell is the read, parse, substitute, execute loop.
type Shell struct {
	Config   *config.Configuration
	Vars     *env.Store
	Input    *lineio.Reader
	Parser   *shell.Parser
	Executor *proc.Executor
	Events   *logger.SessionLogger

	stdout io.Writer
	log    *log.Logger

	// Set to true to quit the shell
	Quit     bool
	exitCode int
}

// NewShell creates a shell over the given streams.
func NewShell(opts Options) (*Shell, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	searchPath := proc.SplitPath(opts.Path)
	if len(searchPath) == 0 {
		return nil, ErrNoSearchPath
	}

	vars := opts.Vars
	if vars == nil {
		vars = env.NewStore(cfg.StatusVariable, cfg.MaxVariables)
	}
	if vars.StatusName() != cfg.StatusVariable {
		return nil, fmt.Errorf("%w: %q, want %q", ErrStatusMismatch, vars.StatusName(), cfg.StatusVariable)
	}

	events := opts.Events
	if events == nil {
		events = logger.NewNopLogger().Sessionless()
	}

	printer := &ColorPrinter{Mode: cfg.Color, Out: opts.Stderr}
	diagnostics := log.New(opts.Stderr, printer.Sprint(ColorBoldRed, Name+":")+" ", 0)

	input := lineio.NewReader(opts.Stdin, opts.Stdout, cfg.MaxLineLength)

	executor := &proc.Executor{
		Path:             searchPath,
		Stdout:           opts.Stdout,
		Stderr:           opts.Stderr,
		NullDevice:       cfg.NullDevice,
		HereDoc:          input,
		HereDocDelimiter: cfg.HereDocDelimiter,
		Log:              diagnostics,
	}
	if f, ok := opts.Stdin.(*os.File); ok {
		executor.Stdin = f
	}

	return &Shell{
		Config: cfg,
		Vars:   vars,
		Input:  input,
		Parser: shell.NewParser(shell.ParserOptions{
			HereDocOpener: cfg.HereDocOpener,
			MaxArgs:       cfg.MaxArguments,
			Quoting:       cfg.Quoting,
		}),
		Executor: executor,
		Events:   events,
		stdout:   opts.Stdout,
		log:      diagnostics,
	}, nil
}

// Run reads and executes lines until the input ends or exit is called. It
// returns the interpreter's exit code.
func (s *Shell) Run() int {
	for !s.Quit {
		line, err := s.Input.ReadLine(s.Config.Prompt)

		switch {
		case err == io.EOF:
			if s.Input.Interactive() {
				fmt.Fprintln(s.stdout)
			}
			return proc.ExitSuccess // Input closed, quit.

		case errors.Is(err, lineio.ErrLineTooLong):
			s.reportLine("", err)
			continue

		case err != nil:
			s.log.Printf("reading input: %v", err)
			return proc.ExitFailure

		default:
			s.RunLine(line)
		}
	}
	return s.exitCode
}

// RunLine handles a single line: blank lines are ignored, assignments update
// the variables and anything else is executed as a command. The status
// variable is updated after every command, builtins included.
func (s *Shell) RunLine(line string) {
	if strings.TrimSpace(line) == "" {
		return // empty line
	}

	if shell.IsAssignment(line) {
		s.assign(line)
		return
	}

	cmd, err := s.Parser.Parse(line)
	if err != nil {
		s.reportLine(line, err)
		return
	}

	cmd, err = shell.Substitute(cmd, s.Vars, s.Config.VariableSigil)
	if err != nil {
		s.reportLine(line, err)
		return
	}

	status, builtin := s.dispatch(cmd)
	s.Vars.SetStatus(status)

	s.record(&logger.CommandEvent{
		Args:       cmd.Args,
		Builtin:    builtin,
		Background: cmd.Background,
		Status:     status,
	})
}

func (s *Shell) assign(line string) {
	name, value := shell.ParseAssignment(line)
	err := s.Vars.Set(name, value)
	s.record(&logger.AssignmentEvent{Name: name, Accepted: err == nil})

	switch {
	case err == nil:
	case errors.Is(err, env.ErrCapacity), s.Config.ReportAssignmentErrors:
		s.log.Println(err)
	}
}

// dispatch runs builtins itself and hands everything else to the executor.
func (s *Shell) dispatch(cmd shell.Command) (status int, builtin bool) {
	if b, ok := AllBuiltins[cmd.Name()]; ok {
		return b.Main(s, cmd), true
	}
	return s.execute(cmd), false
}

// execute runs an external command, reporting why it couldn't run if so.
func (s *Shell) execute(cmd shell.Command) int {
	status, err := s.Executor.Execute(cmd)
	if err != nil {
		s.log.Println(err)
		s.record(&logger.ErrorEvent{Message: err.Error()})
	}
	return status
}

// reportLine reports a line that was skipped.
func (s *Shell) reportLine(line string, err error) {
	s.log.Println(err)
	s.record(&logger.ErrorEvent{Line: line, Message: err.Error()})
}

// Errorf reports a diagnostic to the user.
func (s *Shell) Errorf(format string, args ...interface{}) {
	s.log.Printf(format, args...)
}

func (s *Shell) record(event logger.LogType) {
	if err := s.Events.Record(event); err != nil {
		s.log.Printf("recording event: %v", err)
	}
}

// Close releases the variables held by the shell.
func (s *Shell) Close() error {
	s.Vars.Clear()
	return nil
}
