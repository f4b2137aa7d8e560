package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/modeterm/modeterm/internal/menu"
	"github.com/modeterm/modeterm/internal/ui/state"
)

const (
	chatPromptGlyph = "› "
	pendingText     = "waiting for assistant…"
	footerText      = "↑/↓ move  enter select  tab chat  b back  h help  q quit"
)

// Raw-mode control sequences. Every repaint is a full clear-and-redraw;
// there is no partial repaint path.
const (
	clearScreen = "\x1b[2J\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// markDirty schedules a full render pass on the next redraw.
func (s *Session) markDirty() {
	s.dirty = true
}

// redraw repaints the screen when state changed since the last pass,
// otherwise does nothing.
func (s *Session) redraw() {
	if !s.dirty {
		return
	}
	writeFrame(s.out, s.buildFrame())
	s.dirty = false
}

func (s *Session) finish() {
	io.WriteString(s.out, showCursor+"\r\n")
}

// writeFrame clears the screen and writes one frame. Output goes to a
// raw-mode terminal, so newlines need explicit carriage returns.
func writeFrame(w io.Writer, frame string) {
	io.WriteString(w, clearScreen+hideCursor+strings.ReplaceAll(frame, "\n", "\r\n")+"\r\n")
}

// buildFrame assembles the full screen: header, menu panel, selected
// option help, chat panel once engaged, notice, hint line, and the
// trailing chat history.
func (s *Session) buildFrame() string {
	lines := make([]styledLine, 0, 32)
	if s.header != nil {
		for _, ln := range strings.Split(strings.TrimRight(s.header(s.width), "\n"), "\n") {
			lines = append(lines, styledLine{text: ln, raw: true})
		}
		lines = append(lines, styledLine{})
	}

	visible := s.maxVisibleOptions()
	s.menu.EnsureVisible(visible)
	start := s.menu.ViewportOffset
	end := len(s.menu.Options)
	if visible > 0 && start+visible < end {
		end = start + visible
	}
	body := make([]styledLine, 0, end-start)
	for i := start; i < end; i++ {
		body = append(body, styledLine{
			text: s.renderOptionRow(s.menu.Options[i], i == s.menu.Index, s.width-2),
			raw:  true,
		})
	}
	lines = append(lines, s.renderPanel(s.title, body, s.width)...)

	if help := strings.TrimSpace(s.menu.Current().Help); help != "" {
		lines = append(lines, styledLine{text: help, style: s.styles.HelpText})
	}
	if s.chat.Engaged {
		row := styledLine{text: s.renderChatRow(s.width - 2), raw: true}
		lines = append(lines, s.renderPanel("Assistant", []styledLine{row}, s.width)...)
	}
	if s.notice != "" {
		lines = append(lines, styledLine{text: s.notice, style: s.styles.Notice})
	}
	lines = append(lines, styledLine{})
	lines = append(lines, styledLine{text: footerText, style: s.styles.Hint})
	lines = append(lines, s.historyLines()...)

	lines = limitHeight(lines, s.height, s.width)
	lines = applyWidth(lines, s.width)
	return renderLines(lines)
}

// renderOptionRow styles one menu row. The text is padded before
// styling so the selected background spans the panel interior.
func (s *Session) renderOptionRow(opt menu.Option, selected bool, innerW int) string {
	indicator := "▌"
	lineStyle := s.styles.Item
	indicatorStyle := s.styles.ItemIndicator
	if selected {
		indicatorStyle = s.styles.SelectedIndicator
		lineStyle = s.styles.SelectedItem
	}
	label := " " + opt.Label
	label = truncateText(label, innerW-1)
	if pad := innerW - 1 - len([]rune(label)); pad > 0 {
		label += strings.Repeat(" ", pad)
	}
	return indicatorStyle.Render(indicator) + lineStyle.Render(label)
}

// renderChatRow is the chat panel interior: the input line while the
// user types, a wait indicator while a request is outstanding.
func (s *Session) renderChatRow(innerW int) string {
	if s.mode == ModeChatPending {
		return s.styles.Pending.Render(pendingText)
	}
	buf := s.chat.Buffer
	avail := innerW - len([]rune(chatPromptGlyph)) - 1
	if avail < 1 {
		avail = 1
	}
	if runes := []rune(buf); len(runes) > avail {
		buf = string(runes[len(runes)-avail:])
	}
	row := s.styles.ChatPrompt.Render(chatPromptGlyph) + s.styles.ChatInput.Render(buf)
	if s.mode == ModeChatEntry {
		row += s.styles.ChatCursor.Render(" ")
	}
	return row
}

// renderPanel builds a bordered box with the title embedded in the top
// border. Every row is exactly totalWidth columns.
func (s *Session) renderPanel(title string, body []styledLine, totalWidth int) []styledLine {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)

	innerW := totalWidth - 2
	if innerW < 1 {
		innerW = 1
	}

	// Top border: ╭─ title ─────╮ with the title set off by one dash on
	// each side. dashes = totalWidth - corners - flanking dashes - title.
	titleSeg := " " + title + " "
	dashes := totalWidth - 4 - len([]rune(titleSeg))
	if dashes < 0 {
		titleSeg = " … "
		dashes = totalWidth - 4 - len([]rune(titleSeg))
	}
	if dashes < 0 {
		dashes = 0
	}
	border := s.styles.Border
	top := border.Render(tlc+hz) + s.styles.Title.Render(titleSeg) + border.Render(strings.Repeat(hz, dashes)+hz+trc)
	bottom := border.Render(blc + strings.Repeat(hz, innerW) + brc)

	rows := make([]styledLine, 0, len(body)+2)
	rows = append(rows, styledLine{text: top, raw: true})
	for _, line := range body {
		content := line.text
		if !line.raw && line.style != nil {
			content = line.style.Render(content)
		}
		// Pad and truncate with ANSI-aware measurement; rows carry
		// escape sequences from the item styles.
		w := lipgloss.Width(content)
		if w > innerW {
			content = truncate.StringWithTail(content, uint(innerW-1), "…")
			w = lipgloss.Width(content)
		}
		if w < innerW {
			content += strings.Repeat(" ", innerW-w)
		}
		rows = append(rows, styledLine{text: border.Render(vt) + content + border.Render(vt), raw: true})
	}
	rows = append(rows, styledLine{text: bottom, raw: true})
	return rows
}

// historyLines renders the retained transcript tail beneath the hint
// line, newest last.
func (s *Session) historyLines() []styledLine {
	hist := s.chat.History
	if len(hist) == 0 {
		return nil
	}
	out := make([]styledLine, 0, len(hist)+1)
	out = append(out, styledLine{})
	for _, msg := range hist {
		prefix := "you"
		st := s.styles.ChatUser
		if msg.Role == state.Assistant {
			prefix = " ai"
			st = s.styles.ChatAssistant
		}
		text := strings.ReplaceAll(msg.Text, "\n", " ")
		out = append(out, styledLine{
			text:          prefix + " ▏" + text,
			prefixStyle:   st,
			style:         s.styles.Notice,
			highlightFrom: len([]rune(prefix)) + 2,
		})
	}
	return out
}

func (s *Session) headerRows() int {
	if s.header == nil {
		return 0
	}
	return strings.Count(strings.TrimRight(s.header(s.width), "\n"), "\n") + 2
}

// maxVisibleOptions budgets the rows left for menu items after the
// fixed chrome around them.
func (s *Session) maxVisibleOptions() int {
	if s.height <= 0 {
		return -1
	}
	used := 2 // menu panel borders
	used += s.headerRows()
	if help := strings.TrimSpace(s.menu.Current().Help); help != "" {
		used++
	}
	if s.chat.Engaged {
		used += 3 // chat panel borders + input row
	}
	if s.notice != "" {
		used++
	}
	used += 2 // blank + hint line
	if n := len(s.chat.History); n > 0 {
		used += n + 1
	}
	remain := s.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			w := lipgloss.Width(text)
			if w > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{
			text:          text,
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
			raw:           line.raw,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			// Already carries ANSI escapes; pass through as-is.
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
