package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Console prints human-readable progress and summary lines. Numbers go
// through an x/text printer so large pixel counts stay readable.
type Console struct {
	w io.Writer
	p *message.Printer
}

// NewConsole returns a Console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w, p: message.NewPrinter(language.English)}
}

// Header prints a report title with an underline rule.
func (c *Console) Header(title string) {
	fmt.Fprintln(c.w, title)
	fmt.Fprintln(c.w, strings.Repeat("=", 50))
}

// Section prints a sub-heading with a lighter rule.
func (c *Console) Section(title string) {
	fmt.Fprintln(c.w, title)
	fmt.Fprintln(c.w, strings.Repeat("-", 30))
}

// Line prints one formatted line.
func (c *Console) Line(format string, args ...any) {
	c.p.Fprintf(c.w, format, args...)
	fmt.Fprintln(c.w)
}

// Blank prints an empty line.
func (c *Console) Blank() {
	fmt.Fprintln(c.w)
}
