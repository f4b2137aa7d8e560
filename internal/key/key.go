// Package key turns raw terminal bytes into logical key events.
package key

import "fmt"

// Kind identifies a logical key event.
type Kind int

const (
	Unknown Kind = iota
	Up
	Down
	Enter
	Tab
	Back
	Help
	Quit
	ViewHistory
	Backspace
	Printable
	Resize
)

// Event is a decoded keypress. Ch is set only for Printable events.
type Event struct {
	Kind Kind
	Ch   byte
}

var kindNames = map[Kind]string{
	Unknown:     "unknown",
	Up:          "up",
	Down:        "down",
	Enter:       "enter",
	Tab:         "tab",
	Back:        "back",
	Help:        "help",
	Quit:        "quit",
	ViewHistory: "view_history",
	Backspace:   "backspace",
	Printable:   "printable",
	Resize:      "resize",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Source produces one event per call, blocking until input is
// available. literal suppresses the letter shortcuts so chat entry
// receives letters as text.
type Source interface {
	Next(literal bool) (Event, error)
}
