package key

import (
	"io"
	"testing"
	"time"
)

// scriptSource feeds a fixed byte sequence to the decoder. An empty
// queue behaves like an expired poll window, which is how a bare ESC
// presents in the wild.
type scriptSource struct {
	bytes []byte
}

func (s *scriptSource) Poll(time.Duration) (byte, bool, error) {
	if len(s.bytes) == 0 {
		return 0, false, nil
	}
	b := s.bytes[0]
	s.bytes = s.bytes[1:]
	return b, true, nil
}

func decodeOne(t *testing.T, input []byte, literal bool) Event {
	t.Helper()
	d := NewDecoder(&scriptSource{bytes: input}, nil)
	ev, err := d.Next(literal)
	if err != nil {
		t.Fatalf("expected event, got error %v", err)
	}
	return ev
}

func TestDecodeArrowSequences(t *testing.T) {
	if ev := decodeOne(t, []byte{0x1B, 0x5B, 0x41}, false); ev.Kind != Up {
		t.Fatalf("expected Up, got %v", ev.Kind)
	}
	if ev := decodeOne(t, []byte{0x1B, 0x5B, 0x42}, false); ev.Kind != Down {
		t.Fatalf("expected Down, got %v", ev.Kind)
	}
}

func TestDecodeViewHistoryBinding(t *testing.T) {
	if ev := decodeOne(t, []byte{0x1B, 0x6D}, false); ev.Kind != ViewHistory {
		t.Fatalf("expected ViewHistory, got %v", ev.Kind)
	}
}

func TestDecodeBareEscape(t *testing.T) {
	if ev := decodeOne(t, []byte{0x1B}, false); ev.Kind != Unknown {
		t.Fatalf("expected Unknown for bare escape, got %v", ev.Kind)
	}
}

func TestDecodeLeftRightUnbound(t *testing.T) {
	if ev := decodeOne(t, []byte{0x1B, '[', 'C'}, false); ev.Kind != Unknown {
		t.Fatalf("expected Unknown for right arrow, got %v", ev.Kind)
	}
	if ev := decodeOne(t, []byte{0x1B, '[', 'D'}, false); ev.Kind != Unknown {
		t.Fatalf("expected Unknown for left arrow, got %v", ev.Kind)
	}
}

func TestDecodeTruncatedBracketSequence(t *testing.T) {
	if ev := decodeOne(t, []byte{0x1B, '['}, false); ev.Kind != Unknown {
		t.Fatalf("expected Unknown for truncated sequence, got %v", ev.Kind)
	}
}

func TestDecodeControlBytes(t *testing.T) {
	cases := []struct {
		b    byte
		want Kind
	}{
		{0x03, Quit},
		{0x09, Tab},
		{0x0D, Enter},
		{0x0A, Enter},
		{0x7F, Backspace},
		{0x08, Backspace},
	}
	for _, tc := range cases {
		if ev := decodeOne(t, []byte{tc.b}, false); ev.Kind != tc.want {
			t.Fatalf("byte 0x%02X: expected %v, got %v", tc.b, tc.want, ev.Kind)
		}
		// Control bytes keep their meaning during chat entry too.
		if ev := decodeOne(t, []byte{tc.b}, true); ev.Kind != tc.want {
			t.Fatalf("byte 0x%02X literal: expected %v, got %v", tc.b, tc.want, ev.Kind)
		}
	}
}

func TestLetterShortcutsOutsideChat(t *testing.T) {
	cases := []struct {
		b    byte
		want Kind
	}{
		{'b', Back},
		{'h', Help},
		{'q', Quit},
		{'j', Down},
		{'k', Up},
	}
	for _, tc := range cases {
		if ev := decodeOne(t, []byte{tc.b}, false); ev.Kind != tc.want {
			t.Fatalf("letter %q: expected %v, got %v", tc.b, tc.want, ev.Kind)
		}
	}
}

func TestLettersAreLiteralInChat(t *testing.T) {
	for _, b := range []byte{'b', 'h', 'q', 'j', 'k'} {
		ev := decodeOne(t, []byte{b}, true)
		if ev.Kind != Printable || ev.Ch != b {
			t.Fatalf("letter %q: expected Printable(%q), got %v(%q)", b, b, ev.Kind, ev.Ch)
		}
	}
}

func TestPrintableRange(t *testing.T) {
	if ev := decodeOne(t, []byte{' '}, false); ev.Kind != Printable || ev.Ch != ' ' {
		t.Fatalf("expected Printable space, got %v", ev.Kind)
	}
	if ev := decodeOne(t, []byte{'~'}, false); ev.Kind != Printable || ev.Ch != '~' {
		t.Fatalf("expected Printable tilde, got %v", ev.Kind)
	}
	if ev := decodeOne(t, []byte{0x1F}, false); ev.Kind != Unknown {
		t.Fatalf("expected Unknown below printable range, got %v", ev.Kind)
	}
	if ev := decodeOne(t, []byte{0x7F + 1}, false); ev.Kind != Unknown {
		t.Fatalf("expected Unknown above printable range, got %v", ev.Kind)
	}
}

func TestResizeSynthesizedBeforeRead(t *testing.T) {
	pending := true
	src := &scriptSource{bytes: []byte{'q'}}
	d := NewDecoder(src, func() bool {
		if pending {
			pending = false
			return true
		}
		return false
	})

	ev, err := d.Next(false)
	if err != nil {
		t.Fatalf("expected resize event, got error %v", err)
	}
	if ev.Kind != Resize {
		t.Fatalf("expected Resize, got %v", ev.Kind)
	}
	if len(src.bytes) != 1 {
		t.Fatalf("expected resize to consume no input, %d bytes left", len(src.bytes))
	}

	ev, err = d.Next(false)
	if err != nil {
		t.Fatalf("expected quit event, got error %v", err)
	}
	if ev.Kind != Quit {
		t.Fatalf("expected Quit after resize, got %v", ev.Kind)
	}
}

type failingSource struct{}

func (failingSource) Poll(time.Duration) (byte, bool, error) {
	return 0, false, io.EOF
}

func TestReadErrorPropagates(t *testing.T) {
	d := NewDecoder(failingSource{}, nil)
	if _, err := d.Next(false); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}
