package proc

import (
	"io"
	"os"
	"sync"

	"github.com/josephlewis42/resultsh/core/shell"
	"github.com/pkg/errors"
)

// staged holds the standard streams prepared for one child.
type staged struct {
	files [3]*os.File

	// toClose holds the parent's copies of descriptors that only the child
	// needs, they're released once the child started or staging failed.
	toClose listCloser

	// copies tracks the goroutines draining output pipes.
	copies sync.WaitGroup
}

// release closes the parent's copies of the child's descriptors.
func (s *staged) release() {
	s.toClose.Close()
	s.toClose = nil
}

func (s *staged) own(f *os.File) *os.File {
	s.toClose = append(s.toClose, f)
	return f
}

// stage prepares the child's standard streams:
//
//   - a here-document is read from the shared input and fed through a pipe,
//     it replaces any file redirection for the command;
//   - the input file, or the null device for background commands, is bound
//     to stdin;
//   - the output file is created or truncated and bound to stdout.
//
// On error everything opened so far is released.
func (e *Executor) stage(cmd shell.Command) (st *staged, err error) {
	st = &staged{}
	defer func() {
		if err != nil {
			st.release()
		}
	}()

	switch {
	case cmd.HereDoc:
		in, err := e.stageHereDoc()
		if err != nil {
			return st, err
		}
		st.files[0] = st.own(in)

	case cmd.InputFile != "":
		in, err := os.Open(cmd.InputFile)
		if err != nil {
			return st, errors.Wrap(err, "redirecting input")
		}
		st.files[0] = st.own(in)

	case cmd.Background || e.Stdin == nil:
		in, err := os.Open(e.nullDevice())
		if err != nil {
			return st, errors.Wrap(err, "redirecting input")
		}
		st.files[0] = st.own(in)

	default:
		st.files[0] = e.Stdin
	}

	if cmd.OutputFile != "" && !cmd.HereDoc {
		out, err := os.OpenFile(cmd.OutputFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return st, errors.Wrap(err, "redirecting output")
		}
		st.files[1] = st.own(out)
	} else {
		st.files[1], err = e.stageWriter(st, e.Stdout)
		if err != nil {
			return st, err
		}
	}

	st.files[2], err = e.stageWriter(st, e.Stderr)
	return st, err
}

func (e *Executor) stageWriter(st *staged, w io.Writer) (*os.File, error) {
	f, owned, err := fileWriter(w, &e.mu, e.nullDevice(), &st.copies)
	if err != nil {
		return nil, errors.Wrap(err, "preparing output")
	}
	if owned {
		st.own(f)
	}
	return f, nil
}

// stageHereDoc reads the here-document and returns the read end of a pipe
// holding it. The document is written from a goroutine so it may exceed the
// pipe buffer.
func (e *Executor) stageHereDoc() (*os.File, error) {
	if e.HereDoc == nil {
		return nil, errors.New("here-document: no input available")
	}

	doc, err := e.HereDoc.ReadHereDoc(e.HereDocDelimiter)
	if err != nil {
		return nil, errors.Wrap(err, "here-document")
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, errors.Wrap(err, "here-document")
	}

	go func() {
		// A child that doesn't read its input makes this fail with EPIPE.
		_, _ = io.WriteString(pw, doc)
		pw.Close()
	}()

	return pr, nil
}
