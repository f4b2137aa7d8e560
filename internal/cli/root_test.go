package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modeterm/modeterm/internal/version"
)

func resetFlags() {
	flagConfig = ""
	flagProvider = ""
	flagModel = ""
	flagVerbose = false
	flagNoAssistant = false
	flagWidth = 0
	flagHeight = 0
}

func TestLoadConfigAppliesFlagOverrides(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)
	flagConfig = filepath.Join(t.TempDir(), "missing.yaml")
	flagProvider = "openai"
	flagModel = "gpt-4o-mini"
	flagVerbose = true
	flagWidth = 100

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Assistant.Provider != "openai" {
		t.Fatalf("expected provider openai, got %q", cfg.Assistant.Provider)
	}
	if cfg.Assistant.Model != "gpt-4o-mini" {
		t.Fatalf("expected model gpt-4o-mini, got %q", cfg.Assistant.Model)
	}
	if !cfg.Verbose() {
		t.Fatalf("expected debug logging after --verbose")
	}
	if cfg.UI.Width != 100 {
		t.Fatalf("expected width 100, got %d", cfg.UI.Width)
	}
}

func TestLoadConfigNoAssistantWins(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)
	flagConfig = filepath.Join(t.TempDir(), "missing.yaml")
	flagProvider = "ollama"
	flagNoAssistant = true

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Assistant.Provider != "off" {
		t.Fatalf("expected provider off, got %q", cfg.Assistant.Provider)
	}
}

func TestLoadConfigRejectsUnknownProvider(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)
	flagConfig = filepath.Join(t.TempDir(), "missing.yaml")
	flagProvider = "duck"

	if _, err := loadConfig(); err == nil {
		t.Fatalf("expected an error for an unknown provider")
	}
}

func TestShellInitPrintsWrapper(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)
	t.Setenv("MODETERM_STATE_DIR", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "shell-init"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("shell-init: %v", err)
	}
	script := out.String()
	if !strings.Contains(script, "modeterm() {") {
		t.Fatalf("expected a wrapper function, got:\n%s", script)
	}
	if !strings.Contains(script, "-eq 42") {
		t.Fatalf("expected the exit-code check, got:\n%s", script)
	}
}

func TestVersionCommandPrints(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != version.AppVersion {
		t.Fatalf("expected %q, got %q", version.AppVersion, got)
	}
}
