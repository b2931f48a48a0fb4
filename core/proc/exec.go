// Package proc runs external commands as child processes.
package proc

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/josephlewis42/resultsh/core/shell"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// DefaultNullDevice is the stdin of background commands.
const DefaultNullDevice = "/dev/null"

// HereDocReader supplies here-document contents from the interpreter's input.
type HereDocReader interface {
	ReadHereDoc(delimiter string) (string, error)
}

// Executor spawns external commands.
//
// Foreground commands are waited for with wait4(-1): children that finished
// earlier in the background are reaped along the way and reported as
// warnings. Background commands are never waited for directly.
type Executor struct {
	// Path holds the directories searched for executables.
	Path []string
	// Stdin is inherited by foreground children, nil means the null device.
	Stdin *os.File
	// Stdout and Stderr receive the children's output. Anything other than
	// an *os.File is fed through a pipe.
	Stdout io.Writer
	Stderr io.Writer

	// NullDevice is the stdin of background commands.
	NullDevice string

	// HereDoc and HereDocDelimiter supply here-documents.
	HereDoc          HereDocReader
	HereDocDelimiter string

	// Log receives warnings, nil discards them.
	Log *log.Logger

	mu sync.Mutex
}

func (e *Executor) nullDevice() string {
	if e.NullDevice == "" {
		return DefaultNullDevice
	}
	return e.NullDevice
}

func (e *Executor) warnf(format string, args ...interface{}) {
	if e.Log != nil {
		e.Log.Output(2, fmt.Sprintf(format, args...))
	}
}

// Execute runs cmd and returns its exit status.
//
// The returned error describes why the command couldn't run at all
// (redirection failure, command not found, spawn failure); the status is
// ExitFailure in that case. Background commands report ExitSuccess once
// started.
func (e *Executor) Execute(cmd shell.Command) (int, error) {
	st, err := e.stage(cmd)
	if err != nil {
		return ExitFailure, err
	}
	defer st.release()

	path, err := LookPath(e.Path, cmd.Name())
	if err != nil {
		return ExitFailure, err
	}

	// Children inherit the interpreter's environment.
	proc, err := os.StartProcess(path, cmd.Args, &os.ProcAttr{
		Files: st.files[:],
	})
	if err != nil {
		return ExitFailure, errors.Wrap(err, cmd.Name())
	}
	st.release()

	if cmd.Background {
		proc.Release()
		return ExitSuccess, nil
	}

	status, err := e.wait(proc.Pid)
	proc.Release()

	// Let output copies drain before the next prompt.
	st.copies.Wait()
	return status, err
}

// wait blocks until the child pid terminates, reaping any other child that
// finishes first.
func (e *Executor) wait(pid int) (int, error) {
	for {
		var ws unix.WaitStatus
		wpid, err := unix.Wait4(-1, &ws, 0, nil)
		switch {
		case err == unix.EINTR:
			continue
		case err != nil:
			return ExitFailure, errors.Wrapf(err, "waiting for %d", pid)
		case wpid != pid:
			e.warnf("reaped additional child %d", wpid)
			continue
		}

		return ExitCode(ws), nil
	}
}
