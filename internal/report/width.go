package report

import (
	"os"

	"golang.org/x/term"
)

const (
	terminalWidthBackup = 80
	minNameWidth        = 8
	// Width of every column except the class name, including separators.
	fixedColumnsWidth = 48
)

// TerminalWidth returns the width of stdout, or a default when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// NameWidthFor returns how many cells a class name may use in a table of the given width.
func NameWidthFor(totalWidth int) int {
	w := totalWidth - fixedColumnsWidth
	if w < minNameWidth {
		return minNameWidth
	}
	return w
}
