package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	highlightColor = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	dimColor       = lipgloss.Color("241")
)

// Console writes the REPL's human readable status lines.
type Console struct {
	w io.Writer

	titleStyle   lipgloss.Style
	hintStyle    lipgloss.Style
	successStyle lipgloss.Style
	headerStyle  lipgloss.Style
	errorStyle   lipgloss.Style
	noticeStyle  lipgloss.Style
}

// NewConsole returns a Console writing to w with the given color profile.
// Use termenv.Ascii for plain text.
func NewConsole(w io.Writer, profile termenv.Profile) *Console {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)

	return &Console{
		w:            w,
		titleStyle:   r.NewStyle().Bold(true).Foreground(highlightColor),
		hintStyle:    r.NewStyle().Foreground(dimColor),
		successStyle: r.NewStyle().Foreground(lipgloss.Color("green")),
		headerStyle:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("red")),
		errorStyle:   r.NewStyle().Foreground(lipgloss.Color("red")),
		noticeStyle:  r.NewStyle().Foreground(lipgloss.Color("yellow")),
	}
}

// Writer returns the underlying writer.
func (c *Console) Writer() io.Writer {
	return c.w
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.w, s)
}

// Banner prints the greeting shown when the REPL starts.
func (c *Console) Banner(compileCommand string) {
	c.println(c.titleStyle.Render("--- LaTeX Live Preview CLI ---"))
	c.println(c.hintStyle.Render(fmt.Sprintf("Type your LaTeX code. Enter '%s' on a new line to compile.", compileCommand)))
	c.println(c.hintStyle.Render("Press Ctrl+C to exit."))
}

// Status prints a plain progress line.
func (c *Console) Status(msg string) {
	c.println(msg)
}

// Success prints a green status line.
func (c *Console) Success(msg string) {
	c.println(c.successStyle.Render(msg))
}

// Notice prints an informational line such as "No code to compile."
func (c *Console) Notice(msg string) {
	c.println(c.noticeStyle.Render(msg))
}

// Hint prints a dimmed line.
func (c *Console) Hint(msg string) {
	c.println(c.hintStyle.Render(msg))
}

// Error prints a single red error line.
func (c *Console) Error(msg string) {
	c.println(c.errorStyle.Render(msg))
}

// Section prints a blank line, a bold header and then body.
func (c *Console) Section(header, body string) {
	c.println("")
	c.println(c.headerStyle.Render("--- " + header + " ---"))
	for _, line := range strings.Split(body, "\n") {
		c.println(c.errorStyle.Render(line))
	}
}
