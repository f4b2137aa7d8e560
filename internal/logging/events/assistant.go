package events

import "github.com/modeterm/modeterm/internal/logging"

type AssistantTracer struct{}

type CommandTracer struct{}

var (
	Assistant = AssistantTracer{}
	Command   = CommandTracer{}
)

func (AssistantTracer) Request(provider string, inputChars int) {
	logging.Trace("assistant.request", "provider", provider, "inputChars", inputChars)
}

func (AssistantTracer) Response(provider string, outputChars int, latencyMs int64) {
	logging.Trace("assistant.response", "provider", provider, "outputChars", outputChars, "latencyMs", latencyMs)
}

func (AssistantTracer) Error(provider string, err error) {
	if err == nil {
		return
	}
	logging.Trace("assistant.error", "provider", provider, "error", err.Error())
}

func (CommandTracer) Extracted(count int) {
	logging.Trace("command.extracted", "count", count)
}

func (CommandTracer) Run(command string, exitOK bool) {
	logging.Trace("command.run", "command", command, "ok", exitOK)
}

func (CommandTracer) Skipped(command, reason string) {
	logging.Trace("command.skipped", "command", command, "reason", reason)
}
