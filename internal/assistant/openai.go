package assistant

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	openai "github.com/openai/openai-go/v3"
	oaioption "github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/modeterm/modeterm/internal/config"
	"github.com/modeterm/modeterm/internal/logging/events"
)

const (
	openaiDefaultModel = "gpt-4o-mini"
	sdkMaxRetries      = 2
)

func init() {
	Register("openai", func(cfg config.Assistant) (Handle, error) {
		return NewOpenAI(cfg)
	})
}

// OpenAI talks to the chat completions API, or to any server that
// speaks it (including Ollama's /v1 endpoint) via base_url.
type OpenAI struct {
	client      openai.Client
	model       string
	maxTokens   int
	temperature float64
	timeout     time.Duration
}

func NewOpenAI(cfg config.Assistant) (*OpenAI, error) {
	key := cfg.APIKey
	if key == "" {
		key = os.Getenv("OPENAI_API_KEY")
	}
	if key == "" {
		return nil, errors.New("openai: API key missing (set MODETERM_API_KEY or OPENAI_API_KEY)")
	}
	opts := []oaioption.RequestOption{
		oaioption.WithAPIKey(key),
		oaioption.WithMaxRetries(sdkMaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, oaioption.WithBaseURL(cfg.BaseURL))
	}
	model := cfg.Model
	if model == "" {
		model = openaiDefaultModel
	}
	return &OpenAI{
		client:      openai.NewClient(opts...),
		model:       model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		timeout:     requestTimeout(cfg),
	}, nil
}

// Send implements Handle.
func (p *OpenAI) Send(ctx context.Context, text string) (string, error) {
	start := time.Now()
	events.Assistant.Request("openai", len(text))
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt()),
			openai.UserMessage(text),
		},
	}
	if p.maxTokens > 0 {
		req.MaxTokens = openai.Int(int64(p.maxTokens))
	}
	if p.temperature > 0 {
		req.Temperature = openai.Float(p.temperature)
	}

	resp, err := p.client.Chat.Completions.New(ctx, req)
	if err != nil {
		events.Assistant.Error("openai", err)
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		err := errors.New("no choices in response")
		events.Assistant.Error("openai", err)
		return "", err
	}

	reply := Sanitize(resp.Choices[0].Message.Content)
	events.Assistant.Response("openai", len(reply), time.Since(start).Milliseconds())
	return reply, nil
}
