package command

import (
	"context"
	"strings"

	"github.com/modeterm/modeterm/internal/assistant"
	"github.com/modeterm/modeterm/internal/logging/events"
)

// Pipeline decorates an assistant handle: every reply is scanned for
// commands, safe ones run, and each outcome is appended to the text
// the chat panel shows.
type Pipeline struct {
	backend assistant.Handle
	runner  *Runner
}

func NewPipeline(backend assistant.Handle, runner *Runner) *Pipeline {
	return &Pipeline{backend: backend, runner: runner}
}

func (p *Pipeline) Send(ctx context.Context, text string) (string, error) {
	reply, err := p.backend.Send(ctx, text)
	if err != nil {
		return "", err
	}
	commands := p.runner.classifier.Extract(reply)
	events.Command.Extracted(len(commands))
	if len(commands) == 0 {
		return reply, nil
	}
	lines := []string{reply, ""}
	for _, cmd := range commands {
		lines = append(lines, p.runner.Review(ctx, cmd)...)
	}
	return strings.Join(lines, "\n"), nil
}
