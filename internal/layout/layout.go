package layout

import (
	"github.com/skylarmartinex/pagesmith/internal/content"
)

// layoutFor maps a content type to its proposed layout.
var layoutFor = map[ContentType]content.LayoutType{
	ContentIntro:      content.LayoutImageFull,
	ContentStory:      content.LayoutImageFull,
	ContentProcess:    content.LayoutImageGrid,
	ContentComparison: content.LayoutTextOnly,
	ContentBenefits:   content.LayoutTextOnly,
	ContentStats:      content.LayoutImageLeft,
	ContentQuote:      content.LayoutImageOverlay,
	ContentConclusion: content.LayoutImageOverlay,
	ContentConcept:    content.LayoutImageRight,
}

// textOnlyStreakLimit is the number of consecutive text-only sections after
// which the balance pass forces an image layout.
const textOnlyStreakLimit = 3

// Apply runs the full layout pipeline over the section sequence and returns
// a new slice; the input is never modified. The pipeline classifies each
// section, maps the classification to a layout, downgrades image layouts on
// image-less sections, trusts an upstream layout choice when the section
// has images, and finally balances the sequence for visual variety.
func Apply(sections []content.Section) []content.Section {
	out := make([]content.Section, len(sections))
	for i := range sections {
		out[i] = *sections[i].Clone()
		out[i].Layout = chooseLayout(&out[i], i, len(sections))
	}
	balance(out)
	return out
}

// ApplyModel returns a copy of the model with section layouts assigned.
func ApplyModel(m *content.Model) *content.Model {
	out := m.Clone()
	out.Sections = Apply(out.Sections)
	return out
}

func chooseLayout(s *content.Section, index, total int) content.LayoutType {
	// A layout set by the generation pipeline is trusted over the
	// heuristic, but only when the section actually has images to lay out.
	if s.Layout.Valid() && s.HasImages() {
		return s.Layout
	}

	proposed := layoutFor[Classify(s, index, total)]
	if requiresImage(proposed) && !s.HasImages() {
		return content.LayoutTextOnly
	}
	return proposed
}

func requiresImage(l content.LayoutType) bool {
	return l != content.LayoutTextOnly
}

// balance walks the assigned sequence and fixes two monotony patterns:
// a streak of three or more text-only sections (broken with image-right
// when the section has images) and consecutive same-side image layouts
// (alternated right/left). Full-bleed layouts are never flipped.
func balance(sections []content.Section) {
	streak := 0
	var lastNonText content.LayoutType

	for i := range sections {
		s := &sections[i]

		if s.Layout == content.LayoutTextOnly {
			streak++
			if streak >= textOnlyStreakLimit && s.HasImages() {
				s.Layout = content.LayoutImageRight
				streak = 0
			}
		} else {
			streak = 0
		}

		if isSideLayout(s.Layout) && s.Layout == lastNonText {
			s.Layout = flipSide(s.Layout)
		}
		if s.Layout != content.LayoutTextOnly {
			lastNonText = s.Layout
		}
	}
}

func isSideLayout(l content.LayoutType) bool {
	return l == content.LayoutImageRight || l == content.LayoutImageLeft
}

func flipSide(l content.LayoutType) content.LayoutType {
	if l == content.LayoutImageRight {
		return content.LayoutImageLeft
	}
	return content.LayoutImageRight
}
