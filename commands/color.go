package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/josephlewis42/resultsh/core/config"
	"github.com/josephlewis42/resultsh/core/lineio"
)

var (
	ColorBoldRed = []color.Attribute{color.FgRed, color.Bold}
)

// ColorPrinter decides whether diagnostics are colorized.
type ColorPrinter struct {
	// Mode is one of config.ColorAlways, config.ColorAuto or config.ColorNever.
	Mode string
	// Out is where colorized text ends up, consulted in auto mode.
	Out io.Writer
}

func (c *ColorPrinter) ShouldColor() bool {
	switch c.Mode {
	case config.ColorNever:
		return false
	case config.ColorAlways:
		return true
	default:
		return lineio.IsTerminal(c.Out)
	}
}

// Sprint formats a with the given attributes if coloring is enabled.
func (c *ColorPrinter) Sprint(attrs []color.Attribute, a ...interface{}) string {
	if !c.ShouldColor() {
		return fmt.Sprint(a...)
	}

	col := color.New(attrs...)
	col.EnableColor()
	return col.Sprint(a...)
}
