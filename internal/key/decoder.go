package key

import "time"

// Poll windows for the raw decoder. The probe window bounds how long a
// lone ESC waits for sequence continuation bytes before it is reported
// on its own; the read window bounds how long a blocking read goes
// between resize checks.
const (
	probeWindow = 50 * time.Millisecond
	readWindow  = 50 * time.Millisecond
)

// ByteSource yields single bytes within a bounded window. ok is false
// when the window expired with no input.
type ByteSource interface {
	Poll(window time.Duration) (b byte, ok bool, err error)
}

// Decoder decodes a raw byte stream into events. It is single-reader:
// exactly one event is produced per Next call.
type Decoder struct {
	src     ByteSource
	resized func() bool
	probe   time.Duration
	window  time.Duration
}

// NewDecoder builds a decoder over src. resized is polled between
// reads; when it reports true a Resize event is synthesized without
// consuming input. It may be nil.
func NewDecoder(src ByteSource, resized func() bool) *Decoder {
	return &Decoder{
		src:     src,
		resized: resized,
		probe:   probeWindow,
		window:  readWindow,
	}
}

// Next blocks until one event is available.
func (d *Decoder) Next(literal bool) (Event, error) {
	for {
		if d.resized != nil && d.resized() {
			return Event{Kind: Resize}, nil
		}
		b, ok, err := d.src.Poll(d.window)
		if err != nil {
			return Event{}, err
		}
		if !ok {
			continue
		}
		return d.decode(b, literal)
	}
}

func (d *Decoder) decode(b0 byte, literal bool) (Event, error) {
	switch b0 {
	case 0x03:
		return Event{Kind: Quit}, nil
	case 0x09:
		return Event{Kind: Tab}, nil
	case 0x0D, 0x0A:
		return Event{Kind: Enter}, nil
	case 0x7F, 0x08:
		return Event{Kind: Backspace}, nil
	case 0x1B:
		return d.decodeEscape()
	}

	if !literal {
		switch b0 {
		case 'b':
			return Event{Kind: Back}, nil
		case 'h':
			return Event{Kind: Help}, nil
		case 'q':
			return Event{Kind: Quit}, nil
		case 'j':
			return Event{Kind: Down}, nil
		case 'k':
			return Event{Kind: Up}, nil
		}
	}

	if b0 >= 0x20 && b0 <= 0x7E {
		return Event{Kind: Printable, Ch: b0}, nil
	}
	return Event{Kind: Unknown}, nil
}

// decodeEscape resolves what follows an ESC byte. No continuation
// within the probe window means the user pressed Escape itself.
func (d *Decoder) decodeEscape() (Event, error) {
	b1, ok, err := d.src.Poll(d.probe)
	if err != nil {
		return Event{}, err
	}
	if !ok {
		return Event{Kind: Unknown}, nil
	}

	switch b1 {
	case '[':
		b2, ok, err := d.src.Poll(d.probe)
		if err != nil {
			return Event{}, err
		}
		if !ok {
			return Event{Kind: Unknown}, nil
		}
		switch b2 {
		case 'A':
			return Event{Kind: Up}, nil
		case 'B':
			return Event{Kind: Down}, nil
		}
		// C and D (left/right) stay unbound, as does everything else.
		return Event{Kind: Unknown}, nil
	case 'm':
		return Event{Kind: ViewHistory}, nil
	}
	return Event{Kind: Unknown}, nil
}
