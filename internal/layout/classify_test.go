package layout

import (
	"testing"

	"github.com/skylarmartinex/pagesmith/internal/content"
)

// mid classifies a section at a middle position so positional rules don't
// fire.
func mid(s content.Section) ContentType {
	return Classify(&s, 1, 3)
}

func TestClassify_Position(t *testing.T) {
	s := &content.Section{Title: "Anything", Content: "Some text"}

	if got := Classify(s, 0, 5); got != ContentIntro {
		t.Errorf("expected intro for first section, got %s", got)
	}
	if got := Classify(s, 4, 5); got != ContentConclusion {
		t.Errorf("expected conclusion for last section, got %s", got)
	}
	if got := Classify(s, 0, 1); got != ContentIntro {
		t.Errorf("expected intro for single section, got %s", got)
	}
}

func TestClassify_Keywords(t *testing.T) {
	cases := []struct {
		name    string
		section content.Section
		want    ContentType
	}{
		{"process title", content.Section{Title: "How to get started", Content: "text"}, ContentProcess},
		{"process content", content.Section{Title: "Basics", Content: "First install the tool, then configure it."}, ContentProcess},
		{"numbered steps", content.Section{Title: "Basics", Content: "1. one\n2. two\n3. three"}, ContentProcess},
		{"comparison title", content.Section{Title: "React vs Vue", Content: "text"}, ContentComparison},
		{"comparison table", content.Section{Title: "Frameworks", Content: "text", ComparisonTable: &content.ComparisonTable{Headers: []string{"A"}}}, ContentComparison},
		{"percentage", content.Section{Title: "Adoption", Content: "Over 80% of teams agree."}, ContentStats},
		{"two stats", content.Section{Title: "Numbers", Content: "text", Stats: []content.Stat{{Label: "a", Value: "1"}, {Label: "b", Value: "2"}}}, ContentStats},
		{"chart present", content.Section{Title: "Growth", Content: "text", Chart: &content.Chart{Type: content.ChartBar}}, ContentStats},
		{"benefits", content.Section{Title: "Key advantages", Content: "text"}, ContentBenefits},
		{"icon grid", content.Section{Title: "Overview", Content: "text", IconGrid: &content.IconGrid{Items: []content.IconItem{{Icon: "x"}}}}, ContentBenefits},
		{"quote", content.Section{Title: "Wisdom", Content: "Short body.", PullQuote: "Less is more."}, ContentQuote},
		{"story", content.Section{Title: "A customer journey", Content: "text"}, ContentStory},
		{"fallback", content.Section{Title: "Thoughts", Content: "Nothing special here."}, ContentConcept},
	}

	for _, tc := range cases {
		if got := mid(tc.section); got != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestClassify_PriorityOrder(t *testing.T) {
	// Process keywords outrank comparison keywords.
	s := content.Section{Title: "Step-by-step: React vs Vue", Content: "text"}
	if got := mid(s); got != ContentProcess {
		t.Errorf("expected process to win over comparison, got %s", got)
	}

	// A pull quote with a long body is not a quote section.
	long := content.Section{
		Title:     "Musing",
		Content:   longBody(150),
		PullQuote: "Less is more.",
	}
	if got := mid(long); got != ContentConcept {
		t.Errorf("expected long pull-quote section to fall through, got %s", got)
	}
}

func longBody(words int) string {
	out := ""
	for i := 0; i < words; i++ {
		out += "lorem "
	}
	return out
}
