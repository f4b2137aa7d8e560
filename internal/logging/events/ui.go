package events

import "github.com/modeterm/modeterm/internal/logging"

type UITracer struct{}

type ActionTracer struct{}

var (
	UI     = UITracer{}
	Action = ActionTracer{}
)

func (UITracer) MenuCursor(menu string, cursor int) {
	logging.Trace("menu.cursor", "menu", menu, "cursor", cursor)
}

func (UITracer) MenuEnter(menu, value, label string) {
	logging.Trace("menu.enter", "menu", menu, "value", value, "label", label)
}

func (UITracer) MenuBack(menu string) {
	logging.Trace("menu.back", "menu", menu)
}

func (UITracer) ModeChange(menu, from, to string) {
	logging.Trace("mode.change", "menu", menu, "from", from, "to", to)
}

func (UITracer) Resize(width, height int) {
	logging.Trace("terminal.resize", "width", width, "height", height)
}

func (UITracer) HistoryOverlay(messages int) {
	logging.Trace("chat.history-overlay", "messages", messages)
}

func (UITracer) Quit(menu string) {
	logging.Trace("menu.quit", "menu", menu)
}

func (ActionTracer) Success(id, info string) {
	logging.Trace("action.success", "action", id, "info", info)
}

func (ActionTracer) Error(id string, err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", "action", id, "error", err.Error())
}
