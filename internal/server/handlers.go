package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/skylarmartinex/pagesmith/internal/content"
	"github.com/skylarmartinex/pagesmith/internal/export"
	"github.com/skylarmartinex/pagesmith/internal/generate"
	"github.com/skylarmartinex/pagesmith/internal/images"
	"github.com/skylarmartinex/pagesmith/internal/layout"
	"github.com/skylarmartinex/pagesmith/internal/store"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type generateRequest struct {
	Provider string `json:"provider,omitempty"`
	generate.Request
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Topic == "" {
		s.writeError(w, http.StatusBadRequest, "topic is required")
		return
	}

	name := req.Provider
	if name == "" {
		name = s.defaultProvider
	}
	provider, err := s.providers.Get(name)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := provider.Generate(r.Context(), req.Request, generate.DefaultOptions())
	if err != nil {
		s.logger.Error("generation failed",
			zap.String("provider", name), zap.Error(err))
		s.writeError(w, http.StatusBadGateway, "generation failed: "+err.Error())
		return
	}

	result.Model = images.Attach(r.Context(), s.searcher, s.logger, result.Model)
	result.Model = layout.ApplyModel(result.Model)
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleImageSearch(w http.ResponseWriter, r *http.Request) {
	if s.searcher == nil {
		s.writeError(w, http.StatusBadRequest, "image search not configured")
		return
	}

	query := r.URL.Query().Get("query")
	if query == "" {
		s.writeError(w, http.StatusBadRequest, "query is required")
		return
	}
	limit := 6
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	assets, err := s.searcher.Search(r.Context(), query, limit)
	if err != nil {
		s.logger.Error("image search failed",
			zap.String("source", s.searcher.Name()), zap.Error(err))
		s.writeError(w, http.StatusBadGateway, "image search failed: "+err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"source": s.searcher.Name(),
		"images": assets,
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var m content.Model
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	m.Normalize()
	if err := m.Validate(); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, layout.ApplyModel(&m))
}

type exportRequest struct {
	Model   *content.Model  `json:"model"`
	Options *export.Options `json:"options,omitempty"`
	// ApplyLayout runs the layout pipeline before serialization.
	ApplyLayout bool `json:"applyLayout,omitempty"`
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	serializer, err := s.formats.Get(format)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Model == nil {
		s.writeError(w, http.StatusUnprocessableEntity, "model is required")
		return
	}
	req.Model.Normalize()
	if err := req.Model.Validate(); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	opts := s.defaultOptions
	if req.Options != nil {
		opts = *req.Options
	}

	m := req.Model
	if req.ApplyLayout {
		m = layout.ApplyModel(m)
	}

	data, err := serializer.Serialize(r.Context(), m, opts)
	if err != nil {
		if errors.Is(err, content.ErrInvalidModel) {
			s.writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.logger.Error("export failed",
			zap.String("format", format), zap.Error(err))
		s.writeError(w, http.StatusBadGateway, "export failed: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", serializer.ContentType())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename(m, serializer)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Error("writing export response", zap.Error(err))
	}
}

func (s *Server) handleProjectCreate(w http.ResponseWriter, r *http.Request) {
	var proj store.Project
	if err := json.NewDecoder(r.Body).Decode(&proj); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	proj.ID = ""

	if err := s.projects.Save(r.Context(), &proj); err != nil {
		if errors.Is(err, content.ErrInvalidModel) {
			s.writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.logger.Error("saving project", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to save project")
		return
	}
	s.writeJSON(w, http.StatusCreated, proj)
}

func (s *Server) handleProjectGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	proj, err := s.projects.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "project not found")
			return
		}
		s.logger.Error("loading project", zap.String("id", id), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to load project")
		return
	}
	s.writeJSON(w, http.StatusOK, proj)
}

func (s *Server) handleProjectUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := s.projects.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "project not found")
			return
		}
		s.writeError(w, http.StatusInternalServerError, "failed to load project")
		return
	}

	var proj store.Project
	if err := json.NewDecoder(r.Body).Decode(&proj); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	proj.ID = id
	proj.CreatedAt = existing.CreatedAt

	if err := s.projects.Save(r.Context(), &proj); err != nil {
		if errors.Is(err, content.ErrInvalidModel) {
			s.writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.logger.Error("saving project", zap.String("id", id), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to save project")
		return
	}
	s.writeJSON(w, http.StatusOK, proj)
}

func (s *Server) handleProjectDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.projects.Remove(r.Context(), id); err != nil {
		s.logger.Error("deleting project", zap.String("id", id), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to delete project")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
