package images

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestUnsplash_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Client-ID test-key" {
			t.Errorf("unexpected auth header: %s", got)
		}
		if got := r.URL.Query().Get("query"); got != "remote work" {
			t.Errorf("unexpected query: %s", got)
		}
		if got := r.URL.Query().Get("per_page"); got != "2" {
			t.Errorf("unexpected per_page: %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results": [
			{"alt_description": "a desk", "urls": {"regular": "https://u/1.jpg", "thumb": "https://u/1-t.jpg"}, "user": {"name": "Ana"}},
			{"alt_description": "", "urls": {"regular": "https://u/2.jpg", "thumb": "https://u/2-t.jpg"}, "user": {"name": "Bo"}}
		]}`))
	}))
	defer srv.Close()

	u, err := NewUnsplash(UnsplashConfig{AccessKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assets, err := u.Search(context.Background(), "remote work", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(assets) != 2 {
		t.Fatalf("expected 2 assets, got %d", len(assets))
	}
	if assets[0].URL != "https://u/1.jpg" || assets[0].Alt != "a desk" {
		t.Errorf("unexpected first asset: %+v", assets[0])
	}
	if assets[0].Attribution != "Photo by Ana on Unsplash" {
		t.Errorf("unexpected attribution: %s", assets[0].Attribution)
	}
	// empty alt falls back to the query
	if assets[1].Alt != "remote work" {
		t.Errorf("expected query fallback alt, got %s", assets[1].Alt)
	}
}

func TestUnsplash_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":["rate limited"]}`, http.StatusForbidden)
	}))
	defer srv.Close()

	u, err := NewUnsplash(UnsplashConfig{AccessKey: "k", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := u.Search(context.Background(), "x", 1); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestUnsplash_MissingKey(t *testing.T) {
	t.Setenv("UNSPLASH_ACCESS_KEY", "")
	if _, err := NewUnsplash(UnsplashConfig{}); err == nil {
		t.Fatal("expected error without access key")
	}
}

func TestPexels_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "test-key" {
			t.Errorf("unexpected auth header: %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"photos": [
			{"alt": "office", "photographer": "Cy", "src": {"large": "https://p/1.jpg", "tiny": "https://p/1-t.jpg"}}
		]}`))
	}))
	defer srv.Close()

	p, err := NewPexels(PexelsConfig{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assets, err := p.Search(context.Background(), "office", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(assets) != 1 {
		t.Fatalf("expected 1 asset, got %d", len(assets))
	}
	if assets[0].URL != "https://p/1.jpg" || assets[0].Thumb != "https://p/1-t.jpg" {
		t.Errorf("unexpected asset: %+v", assets[0])
	}
	if assets[0].Attribution != "Photo by Cy on Pexels" {
		t.Errorf("unexpected attribution: %s", assets[0].Attribution)
	}
}

func TestPexels_MissingKey(t *testing.T) {
	t.Setenv("PEXELS_API_KEY", "")
	if _, err := NewPexels(PexelsConfig{}); err == nil {
		t.Fatal("expected error without api key")
	}
}
