package export

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/skylarmartinex/pagesmith/internal/content"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
}

func sampleModel() *content.Model {
	return &content.Model{
		Title:    "What's Next: AI & You!",
		Subtitle: "A practical look",
		Author:   "Riley Stone",
		Sections: []content.Section{
			{
				Title:   "First Steps",
				Content: "Getting started is **easy** & fun.",
				Layout:  content.LayoutImageRight,
				Images: []content.ImageAsset{
					{URL: "https://img.example/a.jpg", Alt: "a photo", Attribution: "Photo by A"},
				},
			},
			{
				Title:     "The Numbers",
				Content:   "Look at these figures.",
				Layout:    content.LayoutTextOnly,
				PullQuote: "Numbers don't lie",
				Stats: []content.Stat{
					{Value: "92%", Label: "satisfaction"},
				},
			},
		},
	}
}

func TestHTML_Serialize(t *testing.T) {
	h := NewHTML()
	h.Now = fixedNow

	out, err := h.Serialize(context.Background(), sampleModel(), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := string(out)

	if !strings.HasPrefix(doc, "<!DOCTYPE html>") {
		t.Error("expected doctype prefix")
	}
	if !strings.Contains(doc, "<title>What&#39;s Next: AI &amp; You!</title>") {
		t.Errorf("expected escaped title, got:\n%s", doc[:200])
	}
	if !strings.Contains(doc, "Generated on March 14, 2026") {
		t.Error("expected footer with fixed date")
	}
	if strings.Contains(doc, "What's Next") {
		t.Error("raw apostrophe leaked into output")
	}
}

func TestHTML_TOCAnchorsMatchSectionIDs(t *testing.T) {
	h := NewHTML()
	h.Now = fixedNow

	out, err := h.Serialize(context.Background(), sampleModel(), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := string(out)

	for _, want := range []string{"first-steps", "the-numbers"} {
		if !strings.Contains(doc, `href="#`+want+`"`) {
			t.Errorf("expected TOC link to #%s", want)
		}
		if !strings.Contains(doc, `<section id="`+want+`"`) {
			t.Errorf("expected section id %s", want)
		}
	}
}

func TestHTML_SectionElements(t *testing.T) {
	h := NewHTML()
	h.Now = fixedNow

	out, err := h.Serialize(context.Background(), sampleModel(), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := string(out)

	if !strings.Contains(doc, `<img src="https://img.example/a.jpg" alt="a photo"/>`) {
		t.Error("expected section image")
	}
	if !strings.Contains(doc, "<figcaption>Photo by A</figcaption>") {
		t.Error("expected image attribution")
	}
	if !strings.Contains(doc, "<strong>easy</strong> &amp; fun") {
		t.Error("expected bold substitution after escaping")
	}
	if !strings.Contains(doc, `<blockquote class="pullquote">Numbers don&#39;t lie</blockquote>`) {
		t.Error("expected escaped pull quote")
	}
	if !strings.Contains(doc, `<div class="value">92%</div>`) {
		t.Error("expected stat value")
	}
}

func TestHTML_TextOnlySkipsImage(t *testing.T) {
	m := sampleModel()
	m.Sections[0].Layout = content.LayoutTextOnly

	h := NewHTML()
	h.Now = fixedNow
	out, err := h.Serialize(context.Background(), m, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(out), "<img ") {
		t.Error("text-only layout must not render the image")
	}
}

func TestHTML_SinglePrimaryVisual(t *testing.T) {
	m := sampleModel()
	m.Sections[0].Chart = &content.Chart{
		Type:  content.ChartBar,
		Title: "Adoption",
		Data:  []content.ChartPoint{{Label: "2025", Value: 40}, {Label: "2026", Value: 80}},
	}
	m.Sections[0].Diagram = &content.Diagram{
		Type:  content.DiagramProcess,
		Steps: []content.DiagramStep{{Title: "Plan"}, {Title: "Build"}},
	}

	h := NewHTML()
	h.Now = fixedNow
	out, err := h.Serialize(context.Background(), m, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := string(out)

	if !strings.Contains(doc, `class="chart"`) {
		t.Error("expected chart rendered")
	}
	if strings.Contains(doc, `class="diagram"`) {
		t.Error("diagram must be suppressed when a chart is present")
	}
}

func TestHTML_UnknownChartTypeSkipped(t *testing.T) {
	m := sampleModel()
	m.Sections[0].Chart = &content.Chart{
		Type: content.ChartType("radar"),
		Data: []content.ChartPoint{{Label: "x", Value: 1}},
	}

	h := NewHTML()
	h.Now = fixedNow
	out, err := h.Serialize(context.Background(), m, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(out), `class="chart"`) {
		t.Error("unknown chart type must be skipped")
	}
}

func TestHTML_ThemeColorsInCSS(t *testing.T) {
	h := NewHTML()
	h.Now = fixedNow

	opts := Options{Theme: Theme{Primary: "#112233"}}
	out, err := h.Serialize(context.Background(), sampleModel(), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := string(out)

	if !strings.Contains(doc, "#112233") {
		t.Error("expected custom primary color in stylesheet")
	}
	if !strings.Contains(doc, "#f59e0b") {
		t.Error("expected default accent fallback in stylesheet")
	}
}

func TestHTML_InvalidModel(t *testing.T) {
	h := NewHTML()
	_, err := h.Serialize(context.Background(), &content.Model{Title: "  "}, Options{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "invalid") {
		t.Errorf("expected invalid model error, got %v", err)
	}
}
