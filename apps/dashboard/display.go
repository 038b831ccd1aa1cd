package main

import (
	"io"

	"github.com/labstack/gommon/color"

	"github.com/trezcool/educonnect/core/notify"
)

// consoleDisplay prints notifications as they are shown. A terminal cannot take a line back,
// so Clear does nothing.
type consoleDisplay struct {
	c *color.Color
}

var _ notify.Display = (*consoleDisplay)(nil)

func newConsoleDisplay(out io.Writer, colored bool) *consoleDisplay {
	c := color.New()
	c.SetOutput(out)
	if colored {
		c.Enable()
	} else {
		c.Disable()
	}
	return &consoleDisplay{c: c}
}

func (d *consoleDisplay) Show(n notify.Notification) {
	if n.Kind == notify.Error {
		d.c.Println(d.c.Red("✖ " + n.Message))
		return
	}
	d.c.Println(d.c.Green("✔ " + n.Message))
}

func (d *consoleDisplay) Clear() {}

// Field prints the violation of one form field.
func (d *consoleDisplay) Field(name, msg string) {
	d.c.Printf("  %s: %s\n", d.c.Yellow(name), msg)
}

// Heading prints a bold title line.
func (d *consoleDisplay) Heading(title string) {
	d.c.Println(d.c.Bold(title))
}
