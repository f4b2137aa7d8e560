package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/modeterm/modeterm/internal/logging/events"
)

const (
	// runTimeout bounds a single safe command.
	runTimeout = 30 * time.Second
	// maxCaptured bounds how much of a command's output is quoted
	// back into the chat transcript, per stream.
	maxCaptured = 4096
)

// Runner executes safe-classified commands and phrases every outcome
// as chat lines. Commands run inside base when the process is working
// somewhere else; base empty means no guard.
type Runner struct {
	classifier *Classifier
	base       string
}

func NewRunner(classifier *Classifier, base string) *Runner {
	return &Runner{classifier: classifier, base: base}
}

// Review classifies one extracted command and acts on it: safe
// commands run with captured output, the rest are announced or
// refused. The returned lines are appended to the assistant reply.
func (r *Runner) Review(ctx context.Context, line string) []string {
	d := r.classifier.Classify(line)
	switch d.Class {
	case Confirm:
		events.Command.Skipped(line, d.Reason)
		return []string{fmt.Sprintf("Would execute: %s (confirmation required)", line)}
	case Blocked:
		events.Command.Skipped(line, d.Reason)
		return []string{fmt.Sprintf("Command blocked: %s", line)}
	}
	return r.run(ctx, line, d.Argv)
}

func (r *Runner) run(ctx context.Context, line string, argv []string) []string {
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = r.workDir()
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		events.Command.Run(line, false)
		return []string{fmt.Sprintf("Command timed out: %s", line)}
	}
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		events.Command.Run(line, false)
		return []string{fmt.Sprintf("Command not found: %s", argv[0])}
	}

	var out []string
	if text := clip(stdout.String()); text != "" {
		out = append(out, fmt.Sprintf("Output: %s", text))
	}
	if text := clip(stderr.String()); text != "" {
		out = append(out, fmt.Sprintf("Error: %s", text))
	}
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		events.Command.Run(line, true)
	case errors.As(err, &exitErr):
		events.Command.Run(line, false)
		out = append(out, fmt.Sprintf("Command failed with code: %d", exitErr.ExitCode()))
	default:
		events.Command.Run(line, false)
		out = append(out, fmt.Sprintf("Execution error: %v", err))
	}
	return out
}

// workDir keeps commands inside the allowed base. An empty result
// leaves the process working directory in effect.
func (r *Runner) workDir() string {
	if r.base == "" {
		return ""
	}
	cwd, err := os.Getwd()
	if err != nil || !strings.HasPrefix(cwd, r.base) {
		return r.base
	}
	return ""
}

func clip(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxCaptured {
		return s
	}
	return strings.ToValidUTF8(s[:maxCaptured], "") + "…"
}
