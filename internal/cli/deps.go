package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/skylarmartinex/pagesmith/internal/config"
	"github.com/skylarmartinex/pagesmith/internal/content"
	"github.com/skylarmartinex/pagesmith/internal/export"
	"github.com/skylarmartinex/pagesmith/internal/generate"
	"github.com/skylarmartinex/pagesmith/internal/images"
	"github.com/skylarmartinex/pagesmith/internal/rasterize"
	"github.com/skylarmartinex/pagesmith/internal/store"
)

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewLoader()
	if err != nil {
		return nil, fmt.Errorf("initializing config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// buildProvider constructs a single generation provider from its
// configuration. Name selects the provider; empty means the default.
func buildProvider(ctx context.Context, cfg *config.Config, name string) (generate.Provider, error) {
	if name == "" {
		name = cfg.DefaultProvider
	}
	pc, ok := cfg.GetProvider(name)
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", name)
	}

	switch name {
	case "anthropic":
		return generate.NewAnthropic(pc.APIKey, pc.Model), nil
	case "openai":
		return generate.NewOpenAI(pc.APIKey, pc.Model), nil
	case "gemini":
		return generate.NewGemini(ctx, pc.APIKey, pc.Model)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
}

// buildProviderRegistry registers every configured provider that has an
// API key. Providers without keys are skipped rather than failing, so a
// partially configured setup still serves the providers it can.
func buildProviderRegistry(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*generate.Registry, error) {
	reg := generate.NewRegistry()
	for name, pc := range cfg.Providers {
		if pc.APIKey == "" {
			logger.Debug("skipping provider without api key", zap.String("provider", name))
			continue
		}
		p, err := buildProvider(ctx, cfg, name)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(p); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// buildSearcher returns the configured stock photo client, or nil when
// no source is usable (missing key). Image search is best-effort.
func buildSearcher(cfg *config.Config) images.Searcher {
	switch cfg.Images.DefaultSource {
	case "pexels":
		s, err := images.NewPexels(images.PexelsConfig{APIKey: cfg.Images.PexelsKey})
		if err != nil {
			return nil
		}
		return s
	default:
		s, err := images.NewUnsplash(images.UnsplashConfig{AccessKey: cfg.Images.UnsplashKey})
		if err != nil {
			return nil
		}
		return s
	}
}

func buildEngine(cfg *config.Config, logger *zap.Logger) (rasterize.Engine, error) {
	switch cfg.PDF.Engine {
	case "", "chrome":
		opts := []rasterize.ChromeOption{}
		if cfg.PDF.Timeout > 0 {
			opts = append(opts, rasterize.WithTimeout(cfg.PDF.Timeout))
		}
		if cfg.PDF.ChromePath != "" {
			opts = append(opts, rasterize.WithExecPath(cfg.PDF.ChromePath))
		}
		return rasterize.NewChrome(logger, opts...), nil
	case "local":
		return rasterize.NewLocal(logger), nil
	default:
		return nil, fmt.Errorf("unknown pdf engine: %s", cfg.PDF.Engine)
	}
}

func buildFormats(cfg *config.Config, logger *zap.Logger) (*export.Registry, error) {
	engine, err := buildEngine(cfg, logger)
	if err != nil {
		return nil, err
	}

	reg := export.NewRegistry()
	serializers := []export.Serializer{
		export.NewHTML(),
		export.NewMarkdown(),
		export.NewEPUB(),
		export.NewPPTX(),
		export.NewPDF(engine),
	}
	for _, s := range serializers {
		if err := reg.Register(s); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func buildProjects(ctx context.Context, cfg *config.Config) (*store.Projects, error) {
	switch cfg.Storage.Backend {
	case "", "memory":
		return store.NewProjects(store.NewMemory(0)), nil
	case "redis":
		rc := cfg.Storage.Redis
		s, err := store.NewRedis(ctx, store.RedisConfig{
			Addr:     rc.Addr,
			Password: rc.Password,
			DB:       rc.DB,
			TTL:      rc.TTL,
		})
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		return store.NewProjects(s), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}

func exportOptions(cfg *config.Config) export.Options {
	return export.Options{
		Theme:      cfg.Export.Theme,
		FontFamily: cfg.Export.FontFamily,
		TemplateID: cfg.Export.TemplateID,
	}
}

// readModel loads a content model from a JSON file, or stdin when the
// path is "-". The model is normalized and validated before return.
func readModel(path string) (*content.Model, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading model: %w", err)
	}

	var m content.Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing model: %w", err)
	}
	m.Normalize()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// writeOutput writes data to the given path, or stdout when empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
