// Package export serializes a content model into the supported document
// formats. Every serializer is a pure transform over an in-memory model:
// safe for concurrent use, and either a complete valid document comes
// back or an error does, never a partial file.
package export

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/skylarmartinex/pagesmith/internal/content"
	"github.com/skylarmartinex/pagesmith/internal/render"
)

// Theme is the color palette applied by the visual formats.
type Theme struct {
	Primary    string `json:"primary" yaml:"primary"`
	Accent     string `json:"accent" yaml:"accent"`
	Background string `json:"background" yaml:"background"`
	Text       string `json:"text" yaml:"text"`
	Secondary  string `json:"secondary" yaml:"secondary"`
}

// DefaultTheme returns the stock palette.
func DefaultTheme() Theme {
	return Theme{
		Primary:    "#2563eb",
		Accent:     "#f59e0b",
		Background: "#ffffff",
		Text:       "#1f2937",
		Secondary:  "#6b7280",
	}
}

// Options carries per-export presentation settings. The zero value is
// usable: missing theme fields fall back to the defaults.
type Options struct {
	Theme       Theme  `json:"theme"`
	FontFamily  string `json:"fontFamily"`
	LogoDataURL string `json:"logoDataUrl"`
	TemplateID  string `json:"templateId"`
}

func (o Options) theme() Theme {
	def := DefaultTheme()
	t := o.Theme
	if t.Primary == "" {
		t.Primary = def.Primary
	}
	if t.Accent == "" {
		t.Accent = def.Accent
	}
	if t.Background == "" {
		t.Background = def.Background
	}
	if t.Text == "" {
		t.Text = def.Text
	}
	if t.Secondary == "" {
		t.Secondary = def.Secondary
	}
	return t
}

func (o Options) fontFamily() string {
	if o.FontFamily == "" {
		return "Georgia, serif"
	}
	return o.FontFamily
}

// Serializer converts a validated model into one output format.
type Serializer interface {
	// Format returns the registry key (e.g. "epub").
	Format() string

	// ContentType returns the MIME type of the produced document.
	ContentType() string

	// Extension returns the suggested file extension, with dot.
	Extension() string

	// Serialize renders the model. The model is read-only; callers that
	// need layout applied run the layout pipeline first.
	Serialize(ctx context.Context, m *content.Model, opts Options) ([]byte, error)
}

// Registry maps format names to serializers.
type Registry struct {
	mu          sync.RWMutex
	serializers map[string]Serializer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{serializers: make(map[string]Serializer)}
}

// Register adds a serializer to the registry.
func (r *Registry) Register(s Serializer) error {
	if s == nil {
		return fmt.Errorf("cannot register nil serializer")
	}
	name := s.Format()
	if name == "" {
		return fmt.Errorf("serializer format cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.serializers[name]; exists {
		return fmt.Errorf("serializer already registered: %s", name)
	}
	r.serializers[name] = s
	return nil
}

// Get returns the serializer for the given format.
func (r *Registry) Get(format string) (Serializer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.serializers[format]
	if !ok {
		return nil, fmt.Errorf("unknown export format: %s", format)
	}
	return s, nil
}

// List returns all registered format names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.serializers))
	for name := range r.serializers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has checks whether a format is registered.
func (r *Registry) Has(format string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.serializers[format]
	return ok
}

// Filename derives the suggested download filename for a model exported
// with the given serializer.
func Filename(m *content.Model, s Serializer) string {
	slug := render.Slugify(m.Title)
	if slug == "" {
		slug = "document"
	}
	return slug + s.Extension()
}
