package tui

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsTTY reports whether both stdin and stdout are connected to a real
// terminal, so the interactive viewer can fall back to a flat printout
// otherwise.
func IsTTY() bool {
	if !((isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
		(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))) {
		return false
	}
	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}
