package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"github.com/aretw0/strumyk/pkg/domain"
)

const (
	colorOK   = "#22c55e"
	colorWarn = "#f59e0b"
	colorFail = "#ef4444"
)

// Verdict writes a single coloured line: a check mark and msg when ok,
// a cross and msg otherwise.
func Verdict(w io.Writer, ok bool, msg string) {
	p := termenv.ColorProfile()
	if ok {
		fmt.Fprintln(w, termenv.String("✔ "+msg).Foreground(p.Color(colorOK)))
		return
	}
	fmt.Fprintln(w, termenv.String("✘ "+msg).Foreground(p.Color(colorFail)))
}

// StatusLine writes the terminal status of a run in its colour.
func StatusLine(w io.Writer, status domain.RunStatus) {
	p := termenv.ColorProfile()
	color := colorWarn
	switch status {
	case domain.StatusCompleted:
		color = colorOK
	case domain.StatusDeadlocked:
		color = colorFail
	}
	fmt.Fprintln(w, termenv.String(string(status)).Bold().Foreground(p.Color(color)))
}
