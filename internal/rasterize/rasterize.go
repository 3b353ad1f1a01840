// Package rasterize turns a rendered HTML document into PDF bytes. The
// Chrome engine produces faithful output via the DevTools protocol; the
// Local engine is a dependency-free fallback that approximates the layout
// with a direct PDF writer.
package rasterize

import "context"

// Engine renders a complete HTML document to PDF.
type Engine interface {
	Render(ctx context.Context, html string) ([]byte, error)
}
