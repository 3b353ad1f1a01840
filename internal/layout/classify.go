// Package layout assigns a layout type to every section of a content model.
// Classification and layout assignment are pure functions over the section
// sequence: the pipeline never mutates its input and is idempotent on its
// own output, so the "re-run layout" user action is always safe.
package layout

import (
	"regexp"
	"strings"

	"github.com/skylarmartinex/pagesmith/internal/content"
)

// ContentType is the heuristic classification of a section. It is derived,
// never persisted; its only consumer is the layout lookup table.
type ContentType string

const (
	ContentIntro      ContentType = "intro"
	ContentConclusion ContentType = "conclusion"
	ContentProcess    ContentType = "process"
	ContentComparison ContentType = "comparison"
	ContentStats      ContentType = "stats"
	ContentBenefits   ContentType = "benefits"
	ContentQuote      ContentType = "quote"
	ContentStory      ContentType = "story"
	ContentConcept    ContentType = "concept"
)

var (
	processRE    = regexp.MustCompile(`(?i)step|how to|guide|tutorial|phase|stage|workflow|implement|install|setup|configure`)
	comparisonRE = regexp.MustCompile(`(?i)\bvs\b|versus|compar|difference|choice|option|alternative|between|which`)
	benefitRE    = regexp.MustCompile(`(?i)benefit|advantage|why use|reason|pros|feature|value|gain`)
	storyRE      = regexp.MustCompile(`(?i)story|journey|case study|example|experience|real-world|discover`)
	percentRE    = regexp.MustCompile(`\d+%`)
	numberedRE   = regexp.MustCompile(`(?m)^\s*\d+[.)]\s`)
)

// quoteWordLimit is the body length below which a pull-quote section reads
// as a quote rather than prose with an excerpt.
const quoteWordLimit = 120

// Classify derives the content type of the section at index within a
// sequence of total sections. Position wins over keywords, keywords are
// checked in a fixed priority order, and shape (attached visuals, stats)
// backs up the keyword rules.
func Classify(s *content.Section, index, total int) ContentType {
	if index == 0 {
		return ContentIntro
	}
	if index == total-1 {
		return ContentConclusion
	}

	haystack := s.Title + "\n" + s.Content

	if processRE.MatchString(haystack) || countNumberedLines(s.Content) >= 3 {
		return ContentProcess
	}
	if comparisonRE.MatchString(haystack) || s.ComparisonTable != nil {
		return ContentComparison
	}
	if len(s.Stats) >= 2 || percentRE.MatchString(s.Content) || s.Chart != nil {
		return ContentStats
	}
	if benefitRE.MatchString(haystack) || s.IconGrid != nil {
		return ContentBenefits
	}
	if s.PullQuote != "" && wordCount(s.Content) < quoteWordLimit {
		return ContentQuote
	}
	if storyRE.MatchString(haystack) {
		return ContentStory
	}
	return ContentConcept
}

func countNumberedLines(s string) int {
	return len(numberedRE.FindAllString(s, -1))
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
