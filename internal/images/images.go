// Package images provides stock-photo search clients used to attach
// imagery to generated sections.
package images

import (
	"context"

	"github.com/skylarmartinex/pagesmith/internal/content"
)

// Searcher finds stock images for a query.
type Searcher interface {
	// Name returns the searcher identifier (e.g., "unsplash", "pexels").
	Name() string

	// Search returns up to limit image assets for the query. An empty
	// result is not an error; sections render fine without images.
	Search(ctx context.Context, query string, limit int) ([]content.ImageAsset, error)
}
