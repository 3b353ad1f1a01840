package export

import (
	"testing"

	"github.com/skylarmartinex/pagesmith/internal/content"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(NewMarkdown()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(NewHTML()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := r.Register(NewMarkdown()); err == nil {
		t.Error("expected duplicate registration error")
	}
	if err := r.Register(nil); err == nil {
		t.Error("expected nil registration error")
	}

	if !r.Has("html") || r.Has("pdf") {
		t.Error("unexpected Has results")
	}

	s, err := r.Get("markdown")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Extension() != ".md" {
		t.Errorf("expected .md extension, got %s", s.Extension())
	}

	if _, err := r.Get("docx"); err == nil {
		t.Error("expected error for unknown format")
	}

	list := r.List()
	if len(list) != 2 || list[0] != "html" || list[1] != "markdown" {
		t.Errorf("expected sorted format list, got %v", list)
	}
}

func TestFilename(t *testing.T) {
	md := NewMarkdown()

	m := &content.Model{Title: "What's Next: AI & You!"}
	if got := Filename(m, md); got != "whats-next-ai-you.md" {
		t.Errorf("unexpected filename: %s", got)
	}

	m = &content.Model{Title: "???"}
	if got := Filename(m, md); got != "document.md" {
		t.Errorf("expected fallback filename, got %s", got)
	}
}

func TestOptionsThemeFallback(t *testing.T) {
	var o Options
	th := o.theme()
	if th != DefaultTheme() {
		t.Errorf("zero options must yield default theme, got %+v", th)
	}

	o.Theme.Primary = "#123456"
	th = o.theme()
	if th.Primary != "#123456" {
		t.Error("explicit primary must be kept")
	}
	if th.Accent != DefaultTheme().Accent {
		t.Error("missing accent must fall back")
	}
}
