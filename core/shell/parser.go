package shell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/anmitsu/go-shlex"
)

// Operator tokens recognized by the parser.
const (
	OpInput      = "<"
	OpOutput     = ">"
	OpBackground = "&"

	DefaultHereDocOpener = "HERE{"
	DefaultMaxArgs       = 64
)

var (
	// ErrSyntax is returned for lines that can't be turned into a command.
	ErrSyntax = errors.New("syntax error")
	// ErrTooManyArguments is returned when a line exceeds the argument limit.
	ErrTooManyArguments = errors.New("too many arguments")
	// ErrEmptyCommand is returned when a line carries operators but no words.
	ErrEmptyCommand = errors.New("missing command")
)

// ParserOptions configures a Parser.
type ParserOptions struct {
	// HereDocOpener is the token that sets Command.HereDoc.
	HereDocOpener string
	// MaxArgs bounds the argument count, zero means DefaultMaxArgs.
	MaxArgs int
	// Quoting enables POSIX quote handling when splitting words.
	Quoting bool
}

// Parser turns raw lines into commands.
type Parser struct {
	opts ParserOptions
}

// NewParser creates a parser, filling unset options with defaults.
func NewParser(opts ParserOptions) *Parser {
	if opts.HereDocOpener == "" {
		opts.HereDocOpener = DefaultHereDocOpener
	}
	if opts.MaxArgs <= 0 {
		opts.MaxArgs = DefaultMaxArgs
	}
	return &Parser{opts: opts}
}

// Split breaks a line into words.
func (p *Parser) Split(line string) ([]string, error) {
	if !p.opts.Quoting {
		return strings.Fields(line), nil
	}

	words, err := shlex.Split(line, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return words, nil
}

// Parse turns a line, already stripped of its terminator, into a command.
func (p *Parser) Parse(line string) (Command, error) {
	words, err := p.Split(line)
	if err != nil {
		return Command{}, err
	}

	var cmd Command
	for i := 0; i < len(words); i++ {
		switch tok := words[i]; tok {
		case OpInput, OpOutput:
			if i+1 >= len(words) {
				return Command{}, fmt.Errorf("%w: missing file after %q", ErrSyntax, tok)
			}
			i++
			if tok == OpInput {
				cmd.InputFile = words[i]
			} else {
				cmd.OutputFile = words[i]
			}
		case OpBackground:
			cmd.Background = true
		case p.opts.HereDocOpener:
			cmd.HereDoc = true
		default:
			if len(cmd.Args) >= p.opts.MaxArgs {
				return Command{}, fmt.Errorf("%w: limit is %d", ErrTooManyArguments, p.opts.MaxArgs)
			}
			cmd.Args = append(cmd.Args, tok)
		}
	}

	if len(cmd.Args) == 0 {
		return Command{}, fmt.Errorf("%w: %w", ErrSyntax, ErrEmptyCommand)
	}
	return cmd, nil
}
