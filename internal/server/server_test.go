package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/skylarmartinex/pagesmith/internal/config"
	"github.com/skylarmartinex/pagesmith/internal/content"
	"github.com/skylarmartinex/pagesmith/internal/export"
	"github.com/skylarmartinex/pagesmith/internal/generate"
	"github.com/skylarmartinex/pagesmith/internal/store"
)

type stubProvider struct {
	result *generate.Result
	err    error
}

func (p *stubProvider) Name() string    { return "stub" }
func (p *stubProvider) Validate() error { return nil }
func (p *stubProvider) Generate(_ context.Context, _ generate.Request, _ generate.Options) (*generate.Result, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.result, nil
}

func testServer(t *testing.T, provider generate.Provider) *Server {
	t.Helper()

	formats := export.NewRegistry()
	if err := formats.Register(export.NewMarkdown()); err != nil {
		t.Fatal(err)
	}
	if err := formats.Register(export.NewHTML()); err != nil {
		t.Fatal(err)
	}

	providers := generate.NewRegistry()
	if provider != nil {
		if err := providers.Register(provider); err != nil {
			t.Fatal(err)
		}
	}

	return New(config.ServerConfig{RateLimit: 1000}, Deps{
		Logger:          zap.NewNop(),
		Formats:         formats,
		Providers:       providers,
		Projects:        store.NewProjects(store.NewMemory(0)),
		DefaultProvider: "stub",
	})
}

func modelJSON() []byte {
	m := content.Model{
		Title: "Remote Work",
		Sections: []content.Section{
			{Title: "Intro", Content: "Hello there."},
			{Title: "Steps", Content: "1. One\n2. Two\n3. Three"},
		},
	}
	data, _ := json.Marshal(m)
	return data
}

func TestHealthz(t *testing.T) {
	srv := testServer(t, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestExport_Markdown(t *testing.T) {
	srv := testServer(t, nil)

	body, _ := json.Marshal(map[string]json.RawMessage{"model": modelJSON()})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("POST", "/api/export/markdown", bytes.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/markdown; charset=utf-8" {
		t.Errorf("unexpected content type: %s", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="remote-work.md"` {
		t.Errorf("unexpected disposition: %s", cd)
	}
	if !strings.Contains(rec.Body.String(), "# Remote Work") {
		t.Error("expected rendered markdown in response")
	}
}

func TestExport_UnknownFormat(t *testing.T) {
	srv := testServer(t, nil)

	body, _ := json.Marshal(map[string]json.RawMessage{"model": modelJSON()})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("POST", "/api/export/docx", bytes.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error"`) {
		t.Errorf("expected error payload, got %s", rec.Body.String())
	}
}

func TestExport_InvalidModel(t *testing.T) {
	srv := testServer(t, nil)

	body := []byte(`{"model": {"title": "  ", "sections": []}}`)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("POST", "/api/export/markdown", bytes.NewReader(body)))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestExport_MissingModel(t *testing.T) {
	srv := testServer(t, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("POST", "/api/export/markdown", strings.NewReader("{}")))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestLayout(t *testing.T) {
	srv := testServer(t, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("POST", "/api/layout", bytes.NewReader(modelJSON())))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var m content.Model
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	for _, s := range m.Sections {
		if !s.Layout.Valid() {
			t.Errorf("section %q has no layout assigned", s.Title)
		}
	}
}

func TestLayout_InvalidModel(t *testing.T) {
	srv := testServer(t, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("POST", "/api/layout", strings.NewReader(`{"title":"x","sections":[]}`)))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestGenerate(t *testing.T) {
	provider := &stubProvider{result: &generate.Result{
		Model: &content.Model{
			Title:    "Generated Doc",
			Sections: []content.Section{{Title: "A", Content: "text"}},
		},
		LLM: "stub-1",
	}}
	srv := testServer(t, provider)

	body := `{"topic": "remote work", "sectionCount": 3}`
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("POST", "/api/generate", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result generate.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if result.Model.Title != "Generated Doc" {
		t.Errorf("unexpected title: %s", result.Model.Title)
	}
	// layout pipeline runs on the generated model
	if !result.Model.Sections[0].Layout.Valid() {
		t.Error("expected layout applied to generated sections")
	}
}

func TestGenerate_MissingTopic(t *testing.T) {
	srv := testServer(t, &stubProvider{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("POST", "/api/generate", strings.NewReader(`{}`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGenerate_ProviderFailure(t *testing.T) {
	srv := testServer(t, &stubProvider{err: errors.New("upstream exploded")})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("POST", "/api/generate", strings.NewReader(`{"topic":"x"}`)))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestGenerate_UnknownProvider(t *testing.T) {
	srv := testServer(t, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("POST", "/api/generate", strings.NewReader(`{"topic":"x","provider":"nope"}`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestProjects_CRUD(t *testing.T) {
	srv := testServer(t, nil)

	// create
	body, _ := json.Marshal(map[string]json.RawMessage{"model": modelJSON()})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("POST", "/api/projects/", bytes.NewReader(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created store.Project
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected assigned project id")
	}

	// read
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("GET", "/api/projects/"+created.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// update
	updated := created
	updated.Model = &content.Model{
		Title:    "Renamed",
		Sections: []content.Section{{Title: "A", Content: "x"}},
	}
	upBody, _ := json.Marshal(updated)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("PUT", "/api/projects/"+created.ID, bytes.NewReader(upBody)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("GET", "/api/projects/"+created.ID, nil))
	var loaded store.Project
	_ = json.Unmarshal(rec.Body.Bytes(), &loaded)
	if loaded.Model.Title != "Renamed" {
		t.Errorf("expected updated title, got %s", loaded.Model.Title)
	}

	// delete
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("DELETE", "/api/projects/"+created.ID, nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("GET", "/api/projects/"+created.ID, nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

type stubSearcher struct {
	assets []content.ImageAsset
	err    error
}

func (s *stubSearcher) Name() string { return "stub-photos" }
func (s *stubSearcher) Search(_ context.Context, _ string, _ int) ([]content.ImageAsset, error) {
	return s.assets, s.err
}

func TestImageSearch(t *testing.T) {
	srv := testServer(t, nil)
	srv.searcher = &stubSearcher{assets: []content.ImageAsset{
		{URL: "https://img/1.jpg", Alt: "a desk"},
	}}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("GET", "/api/images/search?query=desk", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "https://img/1.jpg") {
		t.Errorf("expected image url in response, got %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"source":"stub-photos"`) {
		t.Errorf("expected source in response, got %s", rec.Body.String())
	}
}

func TestImageSearch_MissingQuery(t *testing.T) {
	srv := testServer(t, nil)
	srv.searcher = &stubSearcher{}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("GET", "/api/images/search", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestImageSearch_NotConfigured(t *testing.T) {
	srv := testServer(t, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("GET", "/api/images/search?query=desk", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestImageSearch_UpstreamFailure(t *testing.T) {
	srv := testServer(t, nil)
	srv.searcher = &stubSearcher{err: errors.New("quota exceeded")}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("GET", "/api/images/search?query=desk", nil))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestProjects_GetMissing(t *testing.T) {
	srv := testServer(t, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("GET", "/api/projects/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
