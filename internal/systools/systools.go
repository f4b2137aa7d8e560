// Package systools shells out to the OS utilities the menus report
// on: lsof, df, uname, uptime, git, ping. One entry point keeps the
// timeout and logging policy in a single place.
package systools

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/modeterm/modeterm/internal/logging/events"
)

const defaultTimeout = 10 * time.Second

// Run executes one utility and returns its trimmed stdout. A non-zero
// exit becomes an error carrying the utility's stderr. Callers without
// a deadline get a ten second one.
func Run(ctx context.Context, name string, args ...string) (string, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultTimeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	events.Command.Run(strings.Join(append([]string{name}, args...), " "), err == nil)
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %s", name, msg)
		}
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Lenient runs the utility and returns whatever stdout it produced,
// ignoring the exit status. lsof exits non-zero when nothing matches.
func Lenient(ctx context.Context, name string, args ...string) string {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultTimeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	_ = cmd.Run()
	return strings.TrimSpace(stdout.String())
}

// Have reports whether the utility is installed.
func Have(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
