package assistant

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	antoption "github.com/anthropics/anthropic-sdk-go/option"

	"github.com/modeterm/modeterm/internal/config"
	"github.com/modeterm/modeterm/internal/logging/events"
)

const anthropicDefaultModel = "claude-3-5-haiku-latest"

func init() {
	Register("anthropic", func(cfg config.Assistant) (Handle, error) {
		return NewAnthropic(cfg)
	})
}

// Anthropic talks to the messages API.
type Anthropic struct {
	client      anthropic.Client
	model       string
	maxTokens   int
	temperature float64
	timeout     time.Duration
}

func NewAnthropic(cfg config.Assistant) (*Anthropic, error) {
	key := cfg.APIKey
	if key == "" {
		key = os.Getenv("ANTHROPIC_API_KEY")
	}
	if key == "" {
		return nil, errors.New("anthropic: API key missing (set MODETERM_API_KEY or ANTHROPIC_API_KEY)")
	}
	opts := []antoption.RequestOption{antoption.WithAPIKey(key)}
	if cfg.BaseURL != "" {
		opts = append(opts, antoption.WithBaseURL(cfg.BaseURL))
	}
	model := cfg.Model
	if model == "" {
		model = anthropicDefaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 500
	}
	return &Anthropic{
		client:      anthropic.NewClient(opts...),
		model:       model,
		maxTokens:   maxTokens,
		temperature: cfg.Temperature,
		timeout:     requestTimeout(cfg),
	}, nil
}

// Send implements Handle.
func (p *Anthropic) Send(ctx context.Context, text string) (string, error) {
	start := time.Now()
	events.Assistant.Request("anthropic", len(text))
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(p.maxTokens),
		System:    []anthropic.TextBlockParam{{Text: systemPrompt()}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(text)),
		},
	}
	if p.temperature > 0 {
		params.Temperature = anthropic.Float(p.temperature)
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		events.Assistant.Error("anthropic", err)
		return "", fmt.Errorf("message request failed: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	reply := Sanitize(b.String())
	events.Assistant.Response("anthropic", len(reply), time.Since(start).Milliseconds())
	return reply, nil
}
