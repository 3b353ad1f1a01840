// Package content defines the canonical in-memory representation of a
// generated document. A Model is produced once by the generation pipeline,
// optionally run through the layout pipeline, and then consumed read-only by
// exactly one serializer per export. All fields are plain data and round-trip
// losslessly through JSON.
package content

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidModel indicates a model that cannot be exported.
var ErrInvalidModel = errors.New("invalid content model")

// Model is the root document entity.
type Model struct {
	Title      string      `json:"title"`
	Subtitle   string      `json:"subtitle,omitempty"`
	Author     string      `json:"author,omitempty"`
	CoverImage *ImageAsset `json:"coverImage,omitempty"`
	Sections   []Section   `json:"sections"`
}

// ImageAsset is a fetched image reference. Assets are owned by their section
// (or by the model for the cover) and are never mutated after fetch.
type ImageAsset struct {
	URL         string `json:"url"`
	Thumb       string `json:"thumb,omitempty"`
	Alt         string `json:"alt"`
	Attribution string `json:"attribution,omitempty"`
}

// Validate checks the model invariants that every serializer relies on:
// a non-empty title and at least one section.
func (m *Model) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: model is nil", ErrInvalidModel)
	}
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidModel)
	}
	if len(m.Sections) == 0 {
		return fmt.Errorf("%w: at least one section is required", ErrInvalidModel)
	}
	return nil
}

// Normalize resolves legacy fields in place: a section's single `image`
// field is folded into `images`. Safe to call any number of times.
func (m *Model) Normalize() {
	for i := range m.Sections {
		m.Sections[i].normalize()
	}
}

// Clone returns a deep copy of the model. Serializers and the layout
// pipeline work on copies so the original is never mutated.
func (m *Model) Clone() *Model {
	if m == nil {
		return nil
	}
	out := &Model{
		Title:      m.Title,
		Subtitle:   m.Subtitle,
		Author:     m.Author,
		CoverImage: m.CoverImage.clone(),
	}
	if m.Sections != nil {
		out.Sections = make([]Section, len(m.Sections))
		for i := range m.Sections {
			out.Sections[i] = *m.Sections[i].Clone()
		}
	}
	return out
}

func (a *ImageAsset) clone() *ImageAsset {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}
