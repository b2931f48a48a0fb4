// Package lineio reads newline terminated lines from the interpreter's input.
//
// A single Reader is shared between the REPL loop and here-document
// collection so no line is ever consumed twice.
package lineio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// DefaultMaxLine is the default line length limit in bytes.
const DefaultMaxLine = 256

// ErrLineTooLong is returned when a line exceeds the length limit. The whole
// line is consumed.
var ErrLineTooLong = errors.New("line too long")

// Reader reads lines one at a time.
//
// Input is read a byte at a time without read-ahead, a child process that
// inherits the same descriptor sees exactly what the Reader hasn't consumed.
type Reader struct {
	in      io.Reader
	prompt  io.Writer
	maxLine int

	interactive bool
	buf         [1]byte
}

// NewReader creates a Reader over in. Prompts are written to prompt when in
// is a terminal.
func NewReader(in io.Reader, prompt io.Writer, maxLine int) *Reader {
	if maxLine <= 0 {
		maxLine = DefaultMaxLine
	}

	return &Reader{
		in:          in,
		prompt:      prompt,
		maxLine:     maxLine,
		interactive: IsTerminal(in),
	}
}

// IsTerminal reports whether v is a file attached to a terminal.
func IsTerminal(v interface{}) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Interactive reports whether the input is a terminal.
func (r *Reader) Interactive() bool {
	return r.interactive
}

// SetInteractive overrides terminal detection.
func (r *Reader) SetInteractive(interactive bool) {
	r.interactive = interactive
}

// ReadLine returns the next line without its terminator, "\r\n" is treated as
// "\n". The prompt is shown first if the input is interactive.
//
// A final line without terminator is returned with a nil error, io.EOF is
// returned once the input is exhausted.
func (r *Reader) ReadLine(prompt string) (string, error) {
	if r.interactive && prompt != "" && r.prompt != nil {
		fmt.Fprint(r.prompt, prompt)
	}

	var sb strings.Builder
	tooLong := false
	for {
		n, err := r.in.Read(r.buf[:])
		if n == 1 {
			if r.buf[0] == '\n' {
				break
			}
			if sb.Len() >= r.maxLine+1 {
				// Keep consuming until the end of the line.
				tooLong = true
				continue
			}
			sb.WriteByte(r.buf[0])
			continue
		}

		if err == io.EOF {
			if sb.Len() == 0 && !tooLong {
				return "", io.EOF
			}
			break
		}
		if err != nil {
			return "", err
		}
	}

	line := strings.TrimSuffix(sb.String(), "\r")
	if tooLong || len(line) > r.maxLine {
		return "", fmt.Errorf("%w: limit is %d bytes", ErrLineTooLong, r.maxLine)
	}
	return line, nil
}

// ReadHereDoc collects lines until one consists solely of delimiter or the
// input ends. Every collected line is returned with a "\n" terminator.
//
// A line over the length limit doesn't end the document: the rest of it is
// still consumed up to the delimiter, then ErrLineTooLong is returned.
func (r *Reader) ReadHereDoc(delimiter string) (string, error) {
	var sb strings.Builder
	var lineErr error
	for {
		line, err := r.ReadLine("")
		switch {
		case errors.Is(err, io.EOF):
			return hereDocResult(sb.String(), lineErr)
		case errors.Is(err, ErrLineTooLong):
			if lineErr == nil {
				lineErr = err
			}
			continue
		case err != nil:
			return "", err
		}

		if line == delimiter {
			return hereDocResult(sb.String(), lineErr)
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
}

func hereDocResult(doc string, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return doc, nil
}
