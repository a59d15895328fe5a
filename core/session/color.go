package session

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/josephlewis42/replrc/core/config"
)

var (
	ColorBoldGreen = color.New(color.FgGreen, color.Bold)
	ColorBoldRed   = color.New(color.FgRed, color.Bold)
)

type ColorPrinter struct {
	value      string
	isTerminal bool
}

// NewColorPrinter creates a printer for the given color setting
// (always|auto|never). Auto colors only when writing to a terminal.
func NewColorPrinter(value string, isTerminal bool) *ColorPrinter {
	return &ColorPrinter{
		value:      value,
		isTerminal: isTerminal,
	}
}

func (c *ColorPrinter) ShouldColor() bool {
	switch {
	case c.value == config.ColorNever:
		return false
	case c.value == config.ColorAlways:
		return true
	default:
		return c.isTerminal
	}
}

func (c *ColorPrinter) Sprintf(col *color.Color, format string, a ...interface{}) string {
	if !c.ShouldColor() {
		return fmt.Sprintf(format, a...)
	}

	// The color package disables itself when the process' stdout isn't a
	// terminal, which may not be where this output goes.
	forced := *col
	forced.EnableColor()
	return forced.Sprintf(format, a...)
}
