package events

import "github.com/modeterm/modeterm/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(provider, model string, width, height int) {
	logging.Trace("app.start", "provider", provider, "model", model, "width", width, "height", height)
}

func (AppTracer) Exit(reason string) {
	logging.Trace("app.exit", "reason", reason)
}

func (AppTracer) ChangeDir(dir string) {
	logging.Trace("app.cd", "dir", dir)
}
