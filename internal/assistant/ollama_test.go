package assistant

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/modeterm/modeterm/internal/config"
	"github.com/modeterm/modeterm/internal/testutil"
)

func ollamaForTest(t *testing.T) (*Ollama, *testutil.FakeOllama) {
	t.Helper()
	fake := testutil.StartFakeOllama(t)
	cfg := config.Default().Assistant
	cfg.BaseURL = fake.URL()
	return NewOllama(cfg), fake
}

func TestOllamaHealth(t *testing.T) {
	o, fake := ollamaForTest(t)
	if err := o.Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
	fake.SetHealthy(false)
	err := o.Health(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestOllamaHealthUnreachable(t *testing.T) {
	cfg := config.Default().Assistant
	cfg.BaseURL = "http://127.0.0.1:1"
	o := NewOllama(cfg)
	if err := o.Health(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestOllamaSendCarriesModelAndSystem(t *testing.T) {
	o, fake := ollamaForTest(t)
	fake.SetReply("run `ls` to see the files")

	reply, err := o.Send(context.Background(), "what is here?")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply != "run `ls` to see the files" {
		t.Fatalf("unexpected reply %q", reply)
	}

	reqs := fake.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(reqs))
	}
	if reqs[0].Model != ollamaDefaultModel {
		t.Fatalf("expected default model, got %q", reqs[0].Model)
	}
	if reqs[0].Prompt != "what is here?" {
		t.Fatalf("unexpected prompt %q", reqs[0].Prompt)
	}
	if !strings.Contains(reqs[0].System, "Working directory") {
		t.Fatalf("expected working directory in system prompt, got %q", reqs[0].System)
	}
	if reqs[0].Stream {
		t.Fatal("expected stream to be off")
	}
}

func TestOllamaSendSanitizesReply(t *testing.T) {
	o, fake := ollamaForTest(t)
	fake.SetReply("here   you go 🚀\n\n\n`ls -la`")

	reply, err := o.Send(context.Background(), "list")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if strings.Contains(reply, "🚀") {
		t.Fatalf("expected emoji stripped, got %q", reply)
	}
	if strings.Contains(reply, "here   you") {
		t.Fatalf("expected spaces collapsed, got %q", reply)
	}
	if !strings.Contains(reply, "`ls -la`") {
		t.Fatalf("expected command span preserved, got %q", reply)
	}
}

func TestOllamaSendServerError(t *testing.T) {
	o, fake := ollamaForTest(t)
	fake.FailWith(http.StatusInternalServerError)
	if _, err := o.Send(context.Background(), "hi"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestOllamaSendUnreachable(t *testing.T) {
	cfg := config.Default().Assistant
	cfg.BaseURL = "http://127.0.0.1:1"
	o := NewOllama(cfg)
	if _, err := o.Send(context.Background(), "hi"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
