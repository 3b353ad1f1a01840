package generate

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = openai.GPT4o

// OpenAI generates content models through the chat completions API.
type OpenAI struct {
	client *openai.Client
	apiKey string
	model  string
}

// NewOpenAI creates the OpenAI provider.
func NewOpenAI(apiKey, model string) *OpenAI {
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAI{
		client: openai.NewClient(apiKey),
		apiKey: apiKey,
		model:  model,
	}
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Validate() error {
	if o.apiKey == "" {
		return fmt.Errorf("openai: api key is required")
	}
	return nil
}

func (o *OpenAI) Generate(ctx context.Context, req Request, opts Options) (*Result, error) {
	model := o.model
	if opts.Model != "" {
		model = opts.Model
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		MaxTokens:   opts.MaxTokens,
		Temperature: float32(opts.Temperature),
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(req)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai: empty response")
	}

	m, err := decodeModel(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	return &Result{
		Model: m,
		LLM:   resp.Model,
		Usage: TokenUsage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}
