package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/modeterm/modeterm/internal/config"
	"github.com/modeterm/modeterm/internal/logging/events"
)

const (
	ollamaDefaultBaseURL = "http://localhost:11434"
	ollamaDefaultModel   = "dolphin-mistral:7b"
	ollamaHealthTimeout  = 5 * time.Second
)

func init() {
	Register("ollama", func(cfg config.Assistant) (Handle, error) {
		return NewOllama(cfg), nil
	})
}

// Ollama talks to a local Ollama server over its native generate API.
type Ollama struct {
	base   string
	model  string
	client *http.Client
}

func NewOllama(cfg config.Assistant) *Ollama {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = ollamaDefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = ollamaDefaultModel
	}
	return &Ollama{
		base:   base,
		model:  model,
		client: &http.Client{Timeout: requestTimeout(cfg)},
	}
}

// Health probes the tag listing, the cheapest liveness check the API
// offers. A failure wraps ErrUnavailable.
func (o *Ollama) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, ollamaHealthTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.base+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("building health request: %w", err)
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: tags returned %s", ErrUnavailable, resp.Status)
	}
	return nil
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	System string `json:"system,omitempty"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// Send implements Handle over POST /api/generate with streaming off.
func (o *Ollama) Send(ctx context.Context, text string) (string, error) {
	start := time.Now()
	events.Assistant.Request("ollama", len(text))

	body, err := json.Marshal(generateRequest{
		Model:  o.model,
		Prompt: text,
		System: systemPrompt(),
	})
	if err != nil {
		return "", fmt.Errorf("encoding generate request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.base+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		events.Assistant.Error("ollama", err)
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("generate returned %s", resp.Status)
		events.Assistant.Error("ollama", err)
		return "", err
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding generate response: %w", err)
	}
	if out.Error != "" {
		err := fmt.Errorf("generate failed: %s", out.Error)
		events.Assistant.Error("ollama", err)
		return "", err
	}

	reply := Sanitize(out.Response)
	events.Assistant.Response("ollama", len(reply), time.Since(start).Milliseconds())
	return reply, nil
}
