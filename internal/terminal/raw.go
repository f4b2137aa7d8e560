// Package terminal owns the process-wide terminal state: raw mode
// acquisition and restoration, size tracking, and the byte source the
// key decoder reads from.
package terminal

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// RawGuard holds the pre-raw terminal state so it can be restored on
// every exit path. A nil guard is safe to restore.
type RawGuard struct {
	fd   int
	prev *term.State
}

// MakeRaw switches the file descriptor into raw mode and returns a
// guard that restores the previous state.
func MakeRaw(f *os.File) (*RawGuard, error) {
	fd := int(f.Fd())
	prev, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to enter raw mode: %w", err)
	}
	return &RawGuard{fd: fd, prev: prev}, nil
}

// Restore puts the terminal back into the state captured by MakeRaw.
// Safe to call more than once and on a nil guard.
func (g *RawGuard) Restore() {
	if g == nil || g.prev == nil {
		return
	}
	term.Restore(g.fd, g.prev)
	g.prev = nil
}

// IsTerminal reports whether the file is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
