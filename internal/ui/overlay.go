package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/modeterm/modeterm/internal/key"
	"github.com/modeterm/modeterm/internal/logging/events"
	"github.com/modeterm/modeterm/internal/theme"
	"github.com/modeterm/modeterm/internal/ui/state"
)

// ShowOverlay paints a full-screen text page and blocks until a key
// dismisses it. Resize repaints in place. Callers use it from a Help
// callback; the session repaints its own frame afterwards.
func ShowOverlay(out io.Writer, styles *theme.Styles, keys key.Source, title, body string) error {
	if styles == nil {
		styles = theme.Default()
	}
	paint := func() {
		frame := styles.OverlayTitle.Render(title) + "\n\n" +
			styles.OverlayBody.Render(body) + "\n\n" +
			styles.Hint.Render("press any key to return")
		writeFrame(out, frame)
	}
	paint()
	for {
		ev, err := keys.Next(false)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if ev.Kind == key.Resize {
			paint()
			continue
		}
		return nil
	}
}

// showHistory draws the full-screen transcript overlay and blocks until
// the next key returns to the chat. Resize repaints the overlay in
// place; every other key dismisses it.
func (s *Session) showHistory() {
	events.UI.HistoryOverlay(len(s.chat.History))
	s.renderHistoryOverlay()
	for {
		ev, err := s.keys.Next(false)
		if err != nil {
			break
		}
		if ev.Kind == key.Resize {
			s.width, s.height = s.geometry.Size()
			s.renderHistoryOverlay()
			continue
		}
		break
	}
	s.markDirty()
}

func (s *Session) renderHistoryOverlay() {
	body, err := renderMarkdown(s.historyMarkdown(), s.width)
	if err != nil {
		body = s.historyMarkdown()
	}
	frame := s.styles.OverlayTitle.Render("Conversation") + "\n" +
		body + "\n" +
		s.styles.Hint.Render("press any key to return")
	writeFrame(s.out, frame)
}

// historyMarkdown formats the retained transcript as markdown so
// assistant replies keep their code blocks and lists.
func (s *Session) historyMarkdown() string {
	if len(s.chat.History) == 0 {
		return "_no messages yet_"
	}
	var b strings.Builder
	for _, msg := range s.chat.History {
		if msg.Role == state.User {
			fmt.Fprintf(&b, "**you:** %s\n\n", msg.Text)
			continue
		}
		fmt.Fprintf(&b, "%s\n\n", msg.Text)
	}
	return b.String()
}

func renderMarkdown(text string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-2),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(text)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}
