package output

import (
	"io"
	"os"

	"golang.org/x/term"
)

// fdWriter is satisfied by *os.File and anything else backed by a descriptor.
type fdWriter interface {
	Fd() uintptr
}

// IsTTY reports whether w is an interactive terminal.
func IsTTY(w any) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// IsInteractive reports whether both stdin and stdout are terminals, which is
// what the changeset review prompt needs to be usable.
func IsInteractive(in io.Reader, out io.Writer) bool {
	return IsTTY(in) && IsTTY(out)
}

// NoColor reports whether the NO_COLOR convention disables styling.
func NoColor() bool {
	_, set := os.LookupEnv("NO_COLOR")
	return set
}
