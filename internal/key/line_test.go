package key

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestLineDecoderWordMapping(t *testing.T) {
	input := "up\ndown\nenter\ntab\nb\nh\nq\nbogus\n"
	var prompt bytes.Buffer
	d := NewLineDecoder(strings.NewReader(input), &prompt)

	want := []Kind{Up, Down, Enter, Tab, Back, Help, Quit, Unknown}
	for i, k := range want {
		ev, err := d.Next(false)
		if err != nil {
			t.Fatalf("line %d: expected event, got error %v", i, err)
		}
		if ev.Kind != k {
			t.Fatalf("line %d: expected %v, got %v", i, k, ev.Kind)
		}
	}
	if !strings.Contains(prompt.String(), "> ") {
		t.Fatalf("expected prompt to be written, got %q", prompt.String())
	}
}

func TestLineDecoderReplaysChatInput(t *testing.T) {
	d := NewLineDecoder(strings.NewReader("hi\n"), io.Discard)

	first, err := d.Next(true)
	if err != nil {
		t.Fatalf("expected event, got error %v", err)
	}
	if first.Kind != Printable || first.Ch != 'h' {
		t.Fatalf("expected Printable 'h', got %v %q", first.Kind, first.Ch)
	}

	second, _ := d.Next(true)
	if second.Kind != Printable || second.Ch != 'i' {
		t.Fatalf("expected Printable 'i', got %v %q", second.Kind, second.Ch)
	}

	third, _ := d.Next(true)
	if third.Kind != Enter {
		t.Fatalf("expected Enter after replayed text, got %v", third.Kind)
	}
}

func TestLineDecoderChatControlWords(t *testing.T) {
	d := NewLineDecoder(strings.NewReader("tab\nq\n"), io.Discard)

	ev, _ := d.Next(true)
	if ev.Kind != Tab {
		t.Fatalf("expected Tab to keep its meaning in chat, got %v", ev.Kind)
	}
	ev, _ = d.Next(true)
	if ev.Kind != Quit {
		t.Fatalf("expected q to keep its meaning in chat, got %v", ev.Kind)
	}
}

func TestLineDecoderEOF(t *testing.T) {
	d := NewLineDecoder(strings.NewReader(""), io.Discard)
	if _, err := d.Next(false); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}
