package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Title             *lipgloss.Style
	Border            *lipgloss.Style
	Item              *lipgloss.Style
	ItemIndicator     *lipgloss.Style
	SelectedItem      *lipgloss.Style
	SelectedIndicator *lipgloss.Style
	HelpText          *lipgloss.Style
	Hint              *lipgloss.Style
	ChatPrompt        *lipgloss.Style
	ChatInput         *lipgloss.Style
	ChatCursor        *lipgloss.Style
	ChatUser          *lipgloss.Style
	ChatAssistant     *lipgloss.Style
	Pending           *lipgloss.Style
	Notice            *lipgloss.Style
	Error             *lipgloss.Style
	OverlayTitle      *lipgloss.Style
	OverlayBody       *lipgloss.Style
}

// DefaultAccent is the ANSI-256 color used for selection and prompts when the
// configuration does not override it.
const DefaultAccent = "39"

// New builds the style set around a single accent color.
func New(accent string) *Styles {
	if accent == "" {
		accent = DefaultAccent
	}
	return &Styles{
		Title: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true),
		),
		Border: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		),
		Item: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
		),
		ItemIndicator: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		),
		SelectedItem: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
		),
		SelectedIndicator: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Background(lipgloss.Color("238")),
		),
		HelpText: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Italic(true),
		),
		Hint: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		),
		ChatPrompt: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true),
		),
		ChatInput: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		),
		ChatCursor: ptr(
			lipgloss.NewStyle().Reverse(true),
		),
		ChatUser: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		),
		ChatAssistant: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		),
		Pending: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
		),
		Notice: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
		),
		Error: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		),
		OverlayTitle: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
		),
		OverlayBody: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		),
	}
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return New(DefaultAccent)
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
