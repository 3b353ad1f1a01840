// Package store persists document projects. The Store interface is a flat
// key/value contract; Projects layers JSON encoding and identifiers on top
// so callers never see raw bytes.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/skylarmartinex/pagesmith/internal/content"
	"github.com/skylarmartinex/pagesmith/internal/export"
)

// ErrNotFound indicates the key does not exist.
var ErrNotFound = errors.New("key not found")

// Store is a flat key/value backend.
type Store interface {
	Put(ctx context.Context, key string, value []byte) error
	// Get returns ErrNotFound when the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// Project is a saved document: the content model plus its export settings.
type Project struct {
	ID        string         `json:"id"`
	Model     *content.Model `json:"model"`
	Options   export.Options `json:"options"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// Projects wraps a Store with project encoding.
type Projects struct {
	store Store
	now   func() time.Time
}

// NewProjects creates the project layer over a backend.
func NewProjects(s Store) *Projects {
	return &Projects{store: s, now: time.Now}
}

func projectKey(id string) string {
	return "project:" + id
}

// Save writes the project, assigning an id and timestamps on first save.
func (p *Projects) Save(ctx context.Context, proj *Project) error {
	if proj == nil || proj.Model == nil {
		return fmt.Errorf("project model is required")
	}
	if err := proj.Model.Validate(); err != nil {
		return err
	}

	now := p.now()
	if proj.ID == "" {
		proj.ID = uuid.NewString()
		proj.CreatedAt = now
	}
	proj.UpdatedAt = now

	data, err := json.Marshal(proj)
	if err != nil {
		return fmt.Errorf("encoding project: %w", err)
	}
	if err := p.store.Put(ctx, projectKey(proj.ID), data); err != nil {
		return fmt.Errorf("saving project %s: %w", proj.ID, err)
	}
	return nil
}

// Load reads a project by id.
func (p *Projects) Load(ctx context.Context, id string) (*Project, error) {
	data, err := p.store.Get(ctx, projectKey(id))
	if err != nil {
		return nil, err
	}

	var proj Project
	if err := json.Unmarshal(data, &proj); err != nil {
		return nil, fmt.Errorf("decoding project %s: %w", id, err)
	}
	proj.Model.Normalize()
	return &proj, nil
}

// Remove deletes a project by id.
func (p *Projects) Remove(ctx context.Context, id string) error {
	return p.store.Delete(ctx, projectKey(id))
}
