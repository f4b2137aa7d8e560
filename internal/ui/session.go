package ui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/modeterm/modeterm/internal/key"
	"github.com/modeterm/modeterm/internal/logging/events"
	"github.com/modeterm/modeterm/internal/menu"
	"github.com/modeterm/modeterm/internal/theme"
	"github.com/modeterm/modeterm/internal/ui/state"
)

// Mode identifies the current interaction mode of a session.
type Mode int

const (
	ModeMenu Mode = iota
	ModeChatEntry
	ModeChatPending
)

func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModeChatEntry:
		return "chat_entry"
	case ModeChatPending:
		return "chat_pending"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Terminal outcomes that are not a selected value.
var (
	// ErrBack reports that the user backed out of the menu.
	ErrBack = errors.New("menu: back")
	// ErrQuit reports that the user cancelled the session.
	ErrQuit = errors.New("menu: quit")
)

// Assistant answers free-text chat requests. A failed request is shown
// to the user as an assistant message, never treated as fatal.
type Assistant interface {
	Send(ctx context.Context, text string) (string, error)
}

// Geometry reports terminal dimensions and consumed resize signals.
type Geometry interface {
	Changed() bool
	Size() (width, height int)
}

// Params configures one menu session.
type Params struct {
	Title   string
	Options []menu.Option

	// Help blocks until the user is done reading. Optional.
	Help func() error
	// Header replaces the default title panel heading. It receives the
	// current terminal width and may return multiple lines. Optional.
	Header func(width int) string
	// Assistant enables the chat sub-mode. Without it Tab is a no-op.
	Assistant Assistant

	Keys     key.Source
	Geometry Geometry
	Output   io.Writer
	Styles   *theme.Styles

	// HistorySize bounds the retained chat history. Zero means the
	// default capacity.
	HistorySize int
	// Chat lets the caller thread retained history through successive
	// menu invocations. When nil a fresh history is used.
	Chat *state.Chat
}

// Session drives one interactive menu invocation: a menu model, a chat
// model, and the render state, advanced one key event at a time.
type Session struct {
	title  string
	menu   *state.Menu
	chat   *state.Chat
	mode   Mode
	dirty  bool
	notice string

	keys      key.Source
	geometry  Geometry
	assistant Assistant
	help      func() error
	header    func(width int) string

	ctx    context.Context
	out    io.Writer
	styles *theme.Styles
	width  int
	height int
}

// NewSession validates params and builds a session ready to run.
func NewSession(ctx context.Context, p Params) (*Session, error) {
	if len(p.Options) == 0 {
		return nil, errors.New("menu requires at least one option")
	}
	if p.Keys == nil {
		return nil, errors.New("menu requires a key source")
	}
	if p.Geometry == nil {
		return nil, errors.New("menu requires terminal geometry")
	}
	if p.Output == nil {
		return nil, errors.New("menu requires an output writer")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	styles := p.Styles
	if styles == nil {
		styles = theme.Default()
	}
	chat := p.Chat
	if chat == nil {
		chat = state.NewChat(p.HistorySize)
	}
	return &Session{
		title:     p.Title,
		menu:      state.NewMenu(p.Title, p.Options),
		chat:      chat,
		mode:      ModeMenu,
		keys:      p.Keys,
		geometry:  p.Geometry,
		assistant: p.Assistant,
		help:      p.Help,
		header:    p.Header,
		ctx:       ctx,
		out:       p.Output,
		styles:    styles,
	}, nil
}

// RunMenu builds and runs a session, returning the selected option's
// value. ErrBack and ErrQuit are the non-value outcomes.
func RunMenu(ctx context.Context, p Params) (string, error) {
	s, err := NewSession(ctx, p)
	if err != nil {
		return "", err
	}
	return s.Run()
}

// Run executes the interaction loop until a terminal outcome. The
// caller owns raw-mode acquisition and restoration.
func (s *Session) Run() (string, error) {
	s.width, s.height = s.geometry.Size()
	s.markDirty()
	s.redraw()
	defer s.finish()

	for {
		ev, err := s.keys.Next(s.mode == ModeChatEntry)
		if err != nil {
			if errors.Is(err, io.EOF) {
				events.UI.Quit(s.title)
				return "", ErrQuit
			}
			return "", fmt.Errorf("reading key events failed: %w", err)
		}
		value, done, terr := s.apply(ev)
		if terr != nil {
			return "", terr
		}
		if done {
			return value, nil
		}
		s.redraw()
	}
}

// Mode exposes the current interaction mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// apply performs exactly one transition for the event. done reports a
// selected value; err carries the Back and Quit outcomes. Unmapped
// combinations fall through as no-ops.
func (s *Session) apply(ev key.Event) (value string, done bool, err error) {
	if s.notice != "" && ev.Kind != key.Resize {
		s.notice = ""
		s.markDirty()
	}
	if ev.Kind == key.Resize {
		s.width, s.height = s.geometry.Size()
		events.UI.Resize(s.width, s.height)
		s.markDirty()
		return "", false, nil
	}

	switch s.mode {
	case ModeMenu:
		return s.applyMenu(ev)
	case ModeChatEntry, ModeChatPending:
		return s.applyChat(ev)
	}
	return "", false, nil
}

func (s *Session) applyMenu(ev key.Event) (string, bool, error) {
	switch ev.Kind {
	case key.Up:
		if s.menu.MoveUp() {
			events.UI.MenuCursor(s.title, s.menu.Index)
			s.markDirty()
		}
	case key.Down:
		if s.menu.MoveDown() {
			events.UI.MenuCursor(s.title, s.menu.Index)
			s.markDirty()
		}
	case key.Enter:
		opt := s.menu.Current()
		events.UI.MenuEnter(s.title, opt.Value, opt.Label)
		return opt.Value, true, nil
	case key.Back:
		events.UI.MenuBack(s.title)
		return "", false, ErrBack
	case key.Quit:
		events.UI.Quit(s.title)
		return "", false, ErrQuit
	case key.Help:
		s.runHelp()
	case key.Tab:
		if s.assistant == nil {
			return "", false, nil
		}
		s.setMode(ModeChatEntry)
		s.chat.Engaged = true
		s.markDirty()
	}
	return "", false, nil
}

func (s *Session) applyChat(ev key.Event) (string, bool, error) {
	switch ev.Kind {
	case key.Printable:
		if s.mode != ModeChatEntry {
			return "", false, nil
		}
		s.chat.Append(ev.Ch)
		s.markDirty()
	case key.Backspace:
		// Input is locked while a request is outstanding.
		if s.mode != ModeChatEntry {
			return "", false, nil
		}
		if s.chat.Backspace() {
			s.markDirty()
		}
	case key.Enter:
		if s.mode != ModeChatEntry {
			return "", false, nil
		}
		s.submitChat()
	case key.Tab, key.Quit:
		s.chat.Reset()
		s.setMode(ModeMenu)
		s.markDirty()
	case key.ViewHistory:
		s.showHistory()
	}
	return "", false, nil
}

// submitChat moves the session through the pending request lifecycle.
// The assistant call blocks the loop; the pending frame is drawn first
// so the user sees the locked state.
func (s *Session) submitChat() {
	text, ok := s.chat.Submit()
	if !ok {
		return
	}
	s.setMode(ModeChatPending)
	s.chat.PushUser(text)
	s.markDirty()
	s.redraw()

	reply, err := s.assistant.Send(s.ctx, text)
	if err != nil {
		s.chat.PushAssistant(fmt.Sprintf("error: %v", err))
	} else {
		s.chat.PushAssistant(reply)
	}
	s.setMode(ModeChatEntry)
	s.markDirty()
}

func (s *Session) runHelp() {
	if s.help == nil {
		return
	}
	if err := s.help(); err != nil {
		s.notice = fmt.Sprintf("help unavailable: %v (press any key)", err)
	}
	s.markDirty()
}

func (s *Session) setMode(m Mode) {
	if s.mode == m {
		return
	}
	events.UI.ModeChange(s.title, s.mode.String(), m.String())
	s.mode = m
}
