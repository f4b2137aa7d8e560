package assistant

import (
	"strings"
	"testing"

	"github.com/modeterm/modeterm/internal/config"
)

func TestRegistryKnowsBuiltinProviders(t *testing.T) {
	names := Providers()
	for _, want := range []string{"anthropic", "ollama", "openai"} {
		found := false
		for _, name := range names {
			if name == want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected provider %q registered, have %v", want, names)
		}
	}
}

func TestNewOffDisablesAssistant(t *testing.T) {
	cfg := config.Default().Assistant
	cfg.Provider = "off"
	h, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if h != nil {
		t.Fatal("expected nil handle for provider off")
	}
}

func TestNewUnknownProvider(t *testing.T) {
	cfg := config.Default().Assistant
	cfg.Provider = "hal9000"
	if _, err := New(cfg); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNewOllamaNeedsNoKey(t *testing.T) {
	cfg := config.Default().Assistant
	h, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if h == nil {
		t.Fatal("expected ollama handle")
	}
}

func TestNewOpenAIRequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	cfg := config.Default().Assistant
	cfg.Provider = "openai"
	if _, err := New(cfg); err == nil {
		t.Fatal("expected error without an API key")
	}
	cfg.APIKey = "sk-test"
	if _, err := New(cfg); err != nil {
		t.Fatalf("expected handle with explicit key, got %v", err)
	}
}

func TestNewAnthropicRequiresKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	cfg := config.Default().Assistant
	cfg.Provider = "anthropic"
	if _, err := New(cfg); err == nil {
		t.Fatal("expected error without an API key")
	}
}

func TestSystemPromptNamesConventions(t *testing.T) {
	prompt := systemPrompt()
	if !strings.Contains(prompt, "Working directory") {
		t.Fatalf("expected working directory section, got %q", prompt)
	}
	if !strings.Contains(prompt, `"$ "`) {
		t.Fatalf("expected command prefix convention, got %q", prompt)
	}
}
