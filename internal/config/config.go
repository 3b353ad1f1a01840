// Package config manages application configuration.
package config

import (
	"time"

	"github.com/skylarmartinex/pagesmith/internal/export"
)

// Config represents the application configuration.
type Config struct {
	DefaultProvider string              `yaml:"default_provider"`
	Providers       map[string]Provider `yaml:"providers"`
	Images          ImagesConfig        `yaml:"images"`
	Export          ExportConfig        `yaml:"export"`
	Server          ServerConfig        `yaml:"server"`
	Storage         StorageConfig       `yaml:"storage"`
	PDF             PDFConfig           `yaml:"pdf"`
}

// Provider represents an LLM provider configuration.
type Provider struct {
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// ImagesConfig holds the stock photo API keys.
type ImagesConfig struct {
	DefaultSource string `yaml:"default_source"`
	UnsplashKey   string `yaml:"unsplash_key"`
	PexelsKey     string `yaml:"pexels_key"`
}

// ExportConfig carries the default presentation settings.
type ExportConfig struct {
	Theme      export.Theme `yaml:"theme"`
	FontFamily string       `yaml:"font_family"`
	TemplateID string       `yaml:"template_id"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	RateLimit       int           `yaml:"rate_limit"` // requests per minute per IP
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StorageConfig selects and configures the project store.
type StorageConfig struct {
	Backend string      `yaml:"backend"` // "memory" or "redis"
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig holds the redis connection settings.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// PDFConfig selects the rasterize engine.
type PDFConfig struct {
	Engine     string        `yaml:"engine"` // "chrome" or "local"
	ChromePath string        `yaml:"chrome_path"`
	Timeout    time.Duration `yaml:"timeout"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultProvider: "anthropic",
		Providers: map[string]Provider{
			"openai": {
				APIKey:      "${OPENAI_API_KEY}",
				Model:       "gpt-4o",
				MaxTokens:   8192,
				Temperature: 0.7,
			},
			"anthropic": {
				APIKey:      "${ANTHROPIC_API_KEY}",
				Model:       "claude-sonnet-4-0",
				MaxTokens:   8192,
				Temperature: 0.7,
			},
			"gemini": {
				APIKey:      "${GOOGLE_API_KEY}",
				Model:       "gemini-2.5-flash",
				MaxTokens:   8192,
				Temperature: 0.7,
			},
		},
		Images: ImagesConfig{
			DefaultSource: "unsplash",
			UnsplashKey:   "${UNSPLASH_ACCESS_KEY}",
			PexelsKey:     "${PEXELS_API_KEY}",
		},
		Export: ExportConfig{
			Theme:      export.DefaultTheme(),
			FontFamily: "Georgia, serif",
			TemplateID: "minimal",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			RateLimit:       60,
			ShutdownTimeout: 15 * time.Second,
		},
		Storage: StorageConfig{
			Backend: "memory",
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		PDF: PDFConfig{
			Engine:  "chrome",
			Timeout: 60 * time.Second,
		},
	}
}

// GetProvider returns the provider configuration by name.
func (c *Config) GetProvider(name string) (*Provider, bool) {
	p, ok := c.Providers[name]
	if !ok {
		return nil, false
	}
	return &p, true
}

// GetDefaultProvider returns the default provider configuration.
func (c *Config) GetDefaultProvider() (*Provider, bool) {
	return c.GetProvider(c.DefaultProvider)
}
