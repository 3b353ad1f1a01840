package generate

import (
	"context"
	"fmt"

	genai "google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// Gemini generates content models through the Gemini API.
type Gemini struct {
	client *genai.Client
	apiKey string
	model  string
}

// NewGemini creates the Gemini provider. Client construction needs a
// context because the SDK may probe credentials.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if model == "" {
		model = defaultGeminiModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Gemini{client: client, apiKey: apiKey, model: model}, nil
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Validate() error {
	if g.apiKey == "" {
		return fmt.Errorf("gemini: api key is required")
	}
	return nil
}

func (g *Gemini) Generate(ctx context.Context, req Request, opts Options) (*Result, error) {
	model := g.model
	if opts.Model != "" {
		model = opts.Model
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(float32(opts.Temperature)),
		ResponseMIMEType:  "application/json",
	}
	if opts.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(opts.MaxTokens)
	}

	res, err := g.client.Models.GenerateContent(ctx, model, []*genai.Content{
		genai.NewContentFromText(buildPrompt(req), genai.RoleUser),
	}, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini api error: %w", err)
	}

	text := res.Text()
	if text == "" {
		return nil, fmt.Errorf("gemini: empty response")
	}

	m, err := decodeModel(text)
	if err != nil {
		return nil, err
	}

	result := &Result{Model: m, LLM: model}
	if res.UsageMetadata != nil {
		result.Usage = TokenUsage{
			InputTokens:  int(res.UsageMetadata.PromptTokenCount),
			OutputTokens: int(res.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int(res.UsageMetadata.TotalTokenCount),
		}
	}
	return result, nil
}
