package images

import (
	"context"

	"go.uber.org/zap"

	"github.com/skylarmartinex/pagesmith/internal/content"
)

// Attach fills in imagery for sections that have none, querying the
// searcher with the section title. Search failures are logged and the
// section is left as-is; a document without photos is still a document.
// The input model is not modified.
func Attach(ctx context.Context, s Searcher, logger *zap.Logger, m *content.Model) *content.Model {
	if s == nil || m == nil {
		return m
	}

	out := *m
	out.Sections = make([]content.Section, len(m.Sections))
	copy(out.Sections, m.Sections)

	for i := range out.Sections {
		sec := &out.Sections[i]
		if len(sec.Images) > 0 || sec.Image != nil {
			continue
		}

		assets, err := s.Search(ctx, sec.Title, 1)
		if err != nil {
			logger.Warn("image search failed",
				zap.String("source", s.Name()),
				zap.String("query", sec.Title),
				zap.Error(err))
			continue
		}
		if len(assets) == 0 {
			continue
		}
		sec.Images = []content.ImageAsset{assets[0]}
	}

	return &out
}
