package tui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// OutputMode is how results are presented on the current stdout.
type OutputMode int

// Output modes, from least to most capable.
const (
	// OutputModePlain writes unstyled text, for pipes and NO_COLOR.
	OutputModePlain OutputMode = iota
	// OutputModeStyled writes lipgloss-styled text without taking over the terminal.
	OutputModeStyled
	// OutputModeInteractive runs the Bubble Tea program.
	OutputModeInteractive
)

// defaultTerminalWidth is used when the width cannot be queried.
const defaultTerminalWidth = 80

// DetectOutputMode picks a mode for os.Stdout. plain and noColor force plain
// output; forceColor styles output even when stdout is not a terminal.
func DetectOutputMode(forceColor, noColor, plain bool) OutputMode {
	return detectOutputMode(forceColor, noColor, plain, IsTerminal(os.Stdout), os.Getenv)
}

func detectOutputMode(forceColor, noColor, plain, isTTY bool, getenv func(string) string) OutputMode {
	if plain || noColor || getenv("NO_COLOR") != "" {
		return OutputModePlain
	}
	if !isTTY {
		if forceColor {
			return OutputModeStyled
		}
		return OutputModePlain
	}
	if getenv("CI") != "" || getenv("TERM") == "dumb" {
		return OutputModeStyled
	}
	return OutputModeInteractive
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the column count of w when it is a terminal, and a
// default otherwise.
func TerminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultTerminalWidth
}
