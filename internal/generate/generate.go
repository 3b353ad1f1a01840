// Package generate provides the LLM provider interface and registry for
// producing content models from a topic brief.
package generate

import (
	"context"
	"errors"

	"github.com/skylarmartinex/pagesmith/internal/content"
)

// ErrMalformedResponse indicates the model returned output that could not
// be decoded into a content model even after repair.
var ErrMalformedResponse = errors.New("malformed generation response")

// Provider is the interface that all generation providers must implement.
type Provider interface {
	// Name returns the provider identifier (e.g., "openai", "anthropic").
	Name() string

	// Generate produces a content model from the request brief.
	Generate(ctx context.Context, req Request, opts Options) (*Result, error)

	// Validate checks if the provider is properly configured.
	Validate() error
}

// Request is the brief handed to a provider.
type Request struct {
	Topic         string   `json:"topic"`
	Outline       []string `json:"outline,omitempty"`       // optional fixed section titles
	SectionCount  int      `json:"section_count,omitempty"` // ignored when Outline is set
	BrandVoice    string   `json:"brand_voice,omitempty"`
	TargetPersona string   `json:"target_persona,omitempty"`
}

// Options contains tuning options for generation.
type Options struct {
	Model       string  `json:"model,omitempty"`       // provider-specific model override
	MaxTokens   int     `json:"max_tokens,omitempty"`  // maximum tokens for response
	Temperature float64 `json:"temperature,omitempty"` // creativity level (0.0 - 1.0)
}

// Result contains the outcome of a generation call.
type Result struct {
	Model *content.Model `json:"model"`
	Usage TokenUsage     `json:"usage"`
	LLM   string         `json:"llm"`
}

// TokenUsage contains token usage statistics.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// DefaultOptions returns the default generation options.
func DefaultOptions() Options {
	return Options{
		MaxTokens:   8192,
		Temperature: 0.7,
	}
}

func (r Request) sectionCount() int {
	if len(r.Outline) > 0 {
		return len(r.Outline)
	}
	if r.SectionCount > 0 {
		return r.SectionCount
	}
	return 6
}
