// Package assistant routes free-text chat requests to a configured
// language-model backend.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/modeterm/modeterm/internal/config"
)

// Handle answers one chat request. The session loop calls it
// synchronously, so implementations block until the reply is ready.
type Handle interface {
	Send(ctx context.Context, text string) (string, error)
}

// ErrUnavailable reports that the backend cannot be reached. Callers
// show it to the user instead of failing the session.
var ErrUnavailable = errors.New("assistant backend unavailable")

// Constructor builds a provider from the assistant configuration.
type Constructor func(cfg config.Assistant) (Handle, error)

var registry = map[string]Constructor{}

// Register records a provider constructor under its name. Providers
// self-register from init.
func Register(name string, build Constructor) {
	name = strings.TrimSpace(name)
	if name == "" || build == nil {
		return
	}
	registry[name] = build
}

// New builds the provider named by cfg.Provider. Provider "off"
// disables chat and returns a nil Handle.
func New(cfg config.Assistant) (Handle, error) {
	if cfg.Provider == "off" {
		return nil, nil
	}
	build, ok := registry[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown assistant provider %q (have %s)", cfg.Provider, strings.Join(Providers(), ", "))
	}
	return build(cfg)
}

// Providers returns the registered provider names in sorted order.
func Providers() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func requestTimeout(cfg config.Assistant) time.Duration {
	if cfg.TimeoutSeconds > 0 {
		return time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return 30 * time.Second
}
