package tui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// NewRenderer returns a function that renders markdown using glamour.
// The style follows the terminal background.
func NewRenderer() (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return nil, err
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// RenderIfTerminal renders markdown through glamour when f is a terminal and
// returns it unchanged otherwise, so piped output stays plain Markdown.
func RenderIfTerminal(f *os.File, markdown string) string {
	if !IsTerminal(f) {
		return markdown
	}
	render, err := NewRenderer()
	if err != nil {
		return markdown
	}
	out, err := render(markdown)
	if err != nil {
		return markdown
	}
	return out
}
