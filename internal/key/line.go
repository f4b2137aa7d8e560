package key

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// LineDecoder emulates the key set over line-buffered input for
// sessions without a controlling terminal. Typed words map to events;
// in chat entry a whole line is replayed as printable input followed
// by Enter so chat stays usable.
type LineDecoder struct {
	sc    *bufio.Scanner
	out   io.Writer
	queue []Event
}

// NewLineDecoder reads lines from r and writes its prompt to w.
func NewLineDecoder(r io.Reader, w io.Writer) *LineDecoder {
	return &LineDecoder{
		sc:  bufio.NewScanner(r),
		out: w,
	}
}

// Next prompts for and consumes one line, returning the first mapped
// event. Replayed chat input is drained across subsequent calls.
func (d *LineDecoder) Next(literal bool) (Event, error) {
	if len(d.queue) > 0 {
		ev := d.queue[0]
		d.queue = d.queue[1:]
		return ev, nil
	}

	fmt.Fprint(d.out, "> ")
	if !d.sc.Scan() {
		if err := d.sc.Err(); err != nil {
			return Event{}, err
		}
		return Event{}, io.EOF
	}
	line := strings.TrimSpace(d.sc.Text())

	if literal {
		return d.replay(line), nil
	}

	switch strings.ToLower(line) {
	case "up", "k":
		return Event{Kind: Up}, nil
	case "down", "j":
		return Event{Kind: Down}, nil
	case "enter", "":
		return Event{Kind: Enter}, nil
	case "tab":
		return Event{Kind: Tab}, nil
	case "b", "back":
		return Event{Kind: Back}, nil
	case "h", "help":
		return Event{Kind: Help}, nil
	case "q", "quit":
		return Event{Kind: Quit}, nil
	}
	return Event{Kind: Unknown}, nil
}

// replay converts a chat line into queued printable events plus Enter.
// The control words that leave chat keep their meaning so the mode
// stays escapable without a tty.
func (d *LineDecoder) replay(line string) Event {
	switch strings.ToLower(line) {
	case "tab":
		return Event{Kind: Tab}
	case "q":
		return Event{Kind: Quit}
	}

	for i := 0; i < len(line); i++ {
		if line[i] >= 0x20 && line[i] <= 0x7E {
			d.queue = append(d.queue, Event{Kind: Printable, Ch: line[i]})
		}
	}
	d.queue = append(d.queue, Event{Kind: Enter})

	ev := d.queue[0]
	d.queue = d.queue[1:]
	return ev
}
