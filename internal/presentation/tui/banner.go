package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the strumyk ASCII banner followed by version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"      _                             _   ", "#38bdf8"},
		{"  ___| |_ _ __ _   _ _ __ ___  _   _| | __", "#22d3ee"},
		{" / __| __| '__| | | | '_ ` _ \\| | | | |/ /", "#2dd4bf"},
		{" \\__ \\ |_| |  | |_| | | | | | | |_| |   < ", "#34d399"},
		{" |___/\\__|_|   \\__,_|_| |_| |_|\\__, |_|\\_\\", "#4ade80"},
		{"                                |___/     ", "#a3e635"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintf(w, "  %s\n\n", termenv.String("workflow-net validator "+version).Faint())
}
