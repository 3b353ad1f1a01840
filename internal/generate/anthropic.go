package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicModel = string(anthropic.ModelClaudeSonnet4_0)

// Anthropic generates content models through the Claude Messages API.
type Anthropic struct {
	client anthropic.Client
	apiKey string
	model  string
}

// NewAnthropic creates the Anthropic provider.
func NewAnthropic(apiKey, model string) *Anthropic {
	if model == "" {
		model = defaultAnthropicModel
	}
	return &Anthropic{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		apiKey: apiKey,
		model:  model,
	}
}

func (a *Anthropic) Name() string { return "anthropic" }

func (a *Anthropic) Validate() error {
	if a.apiKey == "" {
		return fmt.Errorf("anthropic: api key is required")
	}
	return nil
}

func (a *Anthropic) Generate(ctx context.Context, req Request, opts Options) (*Result, error) {
	model := a.model
	if opts.Model != "" {
		model = opts.Model
	}

	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		MaxTokens:   int64(opts.MaxTokens),
		Temperature: anthropic.Float(opts.Temperature),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(req))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic api error: %w", err)
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return nil, fmt.Errorf("anthropic: empty response")
	}

	m, err := decodeModel(sb.String())
	if err != nil {
		return nil, err
	}
	return &Result{
		Model: m,
		LLM:   string(message.Model),
		Usage: TokenUsage{
			InputTokens:  int(message.Usage.InputTokens),
			OutputTokens: int(message.Usage.OutputTokens),
			TotalTokens:  int(message.Usage.InputTokens + message.Usage.OutputTokens),
		},
	}, nil
}
