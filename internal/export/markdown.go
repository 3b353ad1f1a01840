package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/skylarmartinex/pagesmith/internal/content"
	"github.com/skylarmartinex/pagesmith/internal/render"
)

// Markdown serializes a model to a single markdown document with YAML
// front matter and slug anchors.
type Markdown struct {
	// Now supplies the generation date; overridable in tests.
	Now func() time.Time
}

// NewMarkdown creates the markdown serializer.
func NewMarkdown() *Markdown {
	return &Markdown{Now: time.Now}
}

func (md *Markdown) Format() string      { return "markdown" }
func (md *Markdown) ContentType() string { return "text/markdown; charset=utf-8" }
func (md *Markdown) Extension() string   { return ".md" }

// Serialize renders the model as markdown. Section content is emitted raw:
// it already is markdown, so re-escaping would corrupt it.
func (md *Markdown) Serialize(_ context.Context, m *content.Model, _ Options) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	date := md.Now().Format("2006-01-02")
	var sb strings.Builder

	md.writeFrontMatter(&sb, m, date)

	sb.WriteString("# " + m.Title + "\n\n")
	if m.Subtitle != "" {
		sb.WriteString("*" + m.Subtitle + "*\n\n")
	}
	if m.Author != "" {
		sb.WriteString("**By " + m.Author + "**\n\n")
	}
	sb.WriteString("---\n\n")

	md.writeTOC(&sb, m)

	for i := range m.Sections {
		md.writeSection(&sb, &m.Sections[i])
		if i < len(m.Sections)-1 {
			sb.WriteString("---\n\n")
		}
	}

	sb.WriteString(fmt.Sprintf("\n*Generated on %s*\n", date))
	return []byte(sb.String()), nil
}

func (md *Markdown) writeFrontMatter(sb *strings.Builder, m *content.Model, date string) {
	sb.WriteString("---\n")
	sb.WriteString("title: " + yamlQuote(m.Title) + "\n")
	if m.Subtitle != "" {
		sb.WriteString("description: " + yamlQuote(m.Subtitle) + "\n")
	}
	if m.Author != "" {
		sb.WriteString("author: " + yamlQuote(m.Author) + "\n")
	}
	sb.WriteString("date: " + yamlQuote(date) + "\n")
	sb.WriteString("slug: " + yamlQuote(render.Slugify(m.Title)) + "\n")
	sb.WriteString("tags: []\n")
	sb.WriteString("draft: false\n")
	sb.WriteString("---\n\n")
}

func (md *Markdown) writeTOC(sb *strings.Builder, m *content.Model) {
	sb.WriteString("## Table of Contents\n\n")
	for i := range m.Sections {
		title := m.Sections[i].Title
		fmt.Fprintf(sb, "%d. [%s](#%s)\n", i+1, title, render.Slugify(title))
	}
	sb.WriteString("\n---\n\n")
}

func (md *Markdown) writeSection(sb *strings.Builder, s *content.Section) {
	fmt.Fprintf(sb, "## %s {#%s}\n\n", s.Title, render.Slugify(s.Title))

	if img := s.FirstImage(); img != nil {
		fmt.Fprintf(sb, "![%s](%s)\n", img.Alt, img.URL)
		if img.Attribution != "" {
			sb.WriteString("*" + img.Attribution + "*\n")
		}
		sb.WriteString("\n")
	}

	if body := render.Body(s.Content, render.TargetMarkdown); body != "" {
		sb.WriteString(body + "\n\n")
	}

	if s.PullQuote != "" {
		sb.WriteString("> **" + s.PullQuote + "**\n\n")
	}

	if len(s.Stats) > 0 {
		sb.WriteString("| Metric | Value |\n| --- | --- |\n")
		for _, st := range s.Stats {
			fmt.Fprintf(sb, "| %s | %s |\n", st.Label, st.Value)
		}
		sb.WriteString("\n")
	}

	md.writeVisual(sb, s)

	if s.Callout != nil {
		fmt.Fprintf(sb, "> %s **%s:** %s\n\n",
			s.Callout.Type.Emoji(), s.Callout.Type.Label(), s.Callout.Text)
	}
}

// writeVisual renders the section's primary visual element. Unknown
// chart/diagram types are skipped rather than failing the export.
func (md *Markdown) writeVisual(sb *strings.Builder, s *content.Section) {
	switch s.PrimaryVisual() {
	case content.VisualComparisonTable:
		md.writeComparison(sb, s.ComparisonTable)
	case content.VisualChart:
		md.writeChart(sb, s.Chart)
	case content.VisualDiagram:
		md.writeDiagram(sb, s.Diagram)
	case content.VisualIconGrid:
		md.writeIconGrid(sb, s.IconGrid)
	}
}

func (md *Markdown) writeComparison(sb *strings.Builder, t *content.ComparisonTable) {
	if len(t.Headers) == 0 {
		return
	}
	if t.Title != "" {
		sb.WriteString("### " + t.Title + "\n\n")
	}
	sb.WriteString("| " + strings.Join(t.Headers, " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat(" --- |", len(t.Headers)) + "\n")
	for _, row := range t.Rows {
		cells := append([]string{row.Feature}, row.Values...)
		sb.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	sb.WriteString("\n")
}

func (md *Markdown) writeChart(sb *strings.Builder, c *content.Chart) {
	if !c.Type.Valid() || len(c.Data) == 0 {
		return
	}
	if c.Title != "" {
		sb.WriteString("### " + c.Title + "\n\n")
	}
	sb.WriteString("| Label | Value |\n| --- | --- |\n")
	for _, p := range c.Data {
		value := trimFloat(p.Value)
		if c.Unit != "" {
			value += " " + c.Unit
		}
		fmt.Fprintf(sb, "| %s | %s |\n", p.Label, value)
	}
	sb.WriteString("\n")
}

func (md *Markdown) writeDiagram(sb *strings.Builder, d *content.Diagram) {
	if !d.Type.Valid() || len(d.Steps) == 0 {
		return
	}
	if d.Title != "" {
		sb.WriteString("### " + d.Title + "\n\n")
	}
	for i, step := range d.Steps {
		line := fmt.Sprintf("%d. **%s**", i+1, step.Title)
		if step.Date != "" {
			line += " (" + step.Date + ")"
		}
		if step.Description != "" {
			line += " - " + step.Description
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n")
}

func (md *Markdown) writeIconGrid(sb *strings.Builder, g *content.IconGrid) {
	if len(g.Items) == 0 {
		return
	}
	if g.Title != "" {
		sb.WriteString("### " + g.Title + "\n\n")
	}
	for _, item := range g.Items {
		fmt.Fprintf(sb, "- **%s** - %s\n", item.Title, item.Description)
	}
	sb.WriteString("\n")
}

// yamlQuote double-quotes a front-matter value and escapes embedded quotes
// and backslashes.
func yamlQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
