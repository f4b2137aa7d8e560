package terminal

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"
)

// Default dimensions used when the terminal size cannot be measured.
const (
	FallbackWidth  = 80
	FallbackHeight = 24
)

// Geometry tracks the terminal dimensions. SIGWINCH deliveries only
// mark a flag via the signal channel; the owner polls Changed from its
// loop and re-measures with Size. Nothing here blocks.
type Geometry struct {
	f     *os.File
	winch chan os.Signal
}

// NewGeometry starts listening for resize signals on behalf of f.
func NewGeometry(f *os.File) *Geometry {
	g := &Geometry{
		f:     f,
		winch: make(chan os.Signal, 1),
	}
	signal.Notify(g.winch, syscall.SIGWINCH)
	return g
}

// Changed reports whether a resize signal arrived since the last call.
// Multiple pending signals coalesce into one report.
func (g *Geometry) Changed() bool {
	changed := false
	for {
		select {
		case <-g.winch:
			changed = true
		default:
			return changed
		}
	}
}

// Size returns the current terminal dimensions, falling back to 80x24
// when measurement fails.
func (g *Geometry) Size() (width, height int) {
	w, h, err := term.GetSize(int(g.f.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return FallbackWidth, FallbackHeight
	}
	return w, h
}

// Close stops resize signal delivery.
func (g *Geometry) Close() {
	signal.Stop(g.winch)
}
