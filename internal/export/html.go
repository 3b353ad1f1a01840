package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/skylarmartinex/pagesmith/internal/content"
	"github.com/skylarmartinex/pagesmith/internal/render"
)

// HTML serializes a model to a single self-contained styled document. The
// only external references in the output are the image URLs themselves.
type HTML struct {
	Now func() time.Time
}

// NewHTML creates the HTML serializer.
func NewHTML() *HTML {
	return &HTML{Now: time.Now}
}

func (h *HTML) Format() string      { return "html" }
func (h *HTML) ContentType() string { return "text/html; charset=utf-8" }
func (h *HTML) Extension() string   { return ".html" }

func (h *HTML) Serialize(_ context.Context, m *content.Model, opts Options) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	theme := opts.theme()
	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	sb.WriteString("<meta charset=\"utf-8\"/>\n")
	sb.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"/>\n")
	sb.WriteString("<title>" + render.EscapeHTML(m.Title) + "</title>\n")
	sb.WriteString("<style>\n" + documentCSS(theme, opts.fontFamily()) + "</style>\n")
	sb.WriteString("</head>\n<body>\n")

	writeCover(&sb, m)
	writeTOC(&sb, m)

	for i := range m.Sections {
		writeSectionHTML(&sb, &m.Sections[i])
	}

	fmt.Fprintf(&sb, "<footer class=\"footer\">Generated on %s</footer>\n",
		h.Now().Format("January 2, 2006"))
	sb.WriteString("</body>\n</html>\n")

	return []byte(sb.String()), nil
}

func documentCSS(t Theme, font string) string {
	return fmt.Sprintf(`body{margin:0;font-family:%s;background:%s;color:%s;line-height:1.7}
.cover{padding:96px 48px;text-align:center;color:#fff;background:linear-gradient(135deg,%s,%s)}
.cover.with-image{background-size:cover;background-position:center}
.cover h1{font-size:2.8em;margin:0 0 16px}
.cover .subtitle{font-size:1.3em;opacity:.9}
.cover .author{margin-top:24px;opacity:.8}
.toc{max-width:720px;margin:48px auto;padding:0 24px}
.toc ol{padding-left:24px}
.toc a{color:%s;text-decoration:none}
section{max-width:720px;margin:0 auto 64px;padding:0 24px}
section h2{color:%s;border-bottom:2px solid %s;padding-bottom:8px}
section img{max-width:100%%;border-radius:8px}
blockquote.pullquote{border-left:4px solid %s;margin:24px 0;padding:8px 24px;font-size:1.2em;font-style:italic;color:%s}
.stats{display:flex;flex-wrap:wrap;gap:16px;margin:24px 0}
.stat{flex:1 1 140px;padding:16px;border-radius:8px;background:rgba(0,0,0,.04);text-align:center}
.stat .value{font-size:1.6em;font-weight:700;color:%s}
.stat .label{color:%s;font-size:.9em}
.callout{border-radius:8px;padding:16px 20px;margin:24px 0;background:rgba(0,0,0,.04);border-left:4px solid %s}
.callout .label{font-weight:700}
table{border-collapse:collapse;width:100%%;margin:24px 0}
th,td{border:1px solid #ddd;padding:8px 12px;text-align:left}
th{background:%s;color:#fff}
td.highlight,th.highlight{background:rgba(245,158,11,.15)}
.chart .bar{background:%s;color:#fff;padding:4px 8px;border-radius:4px;margin:4px 0;white-space:nowrap}
.diagram{padding-left:24px}
.icon-grid{display:grid;grid-template-columns:repeat(auto-fit,minmax(180px,1fr));gap:16px;margin:24px 0}
.icon-grid .cell{padding:16px;border:1px solid #eee;border-radius:8px}
.footer{text-align:center;padding:48px 0;color:%s;font-size:.9em}
`,
		font, t.Background, t.Text,
		t.Primary, t.Accent,
		t.Primary,
		t.Primary, t.Accent,
		t.Accent, t.Secondary,
		t.Primary, t.Secondary,
		t.Accent,
		t.Primary,
		t.Primary,
		t.Secondary)
}

func writeCover(sb *strings.Builder, m *content.Model) {
	if m.CoverImage != nil && m.CoverImage.URL != "" {
		fmt.Fprintf(sb, "<header class=\"cover with-image\" style=\"background-image:url('%s')\">\n",
			render.EscapeHTML(m.CoverImage.URL))
	} else {
		sb.WriteString("<header class=\"cover\">\n")
	}
	sb.WriteString("<h1>" + render.EscapeHTML(m.Title) + "</h1>\n")
	if m.Subtitle != "" {
		sb.WriteString("<div class=\"subtitle\">" + render.EscapeHTML(m.Subtitle) + "</div>\n")
	}
	if m.Author != "" {
		sb.WriteString("<div class=\"author\">" + render.EscapeHTML(m.Author) + "</div>\n")
	}
	sb.WriteString("</header>\n")
}

func writeTOC(sb *strings.Builder, m *content.Model) {
	sb.WriteString("<nav class=\"toc\">\n<h2>Contents</h2>\n<ol>\n")
	for i := range m.Sections {
		title := m.Sections[i].Title
		fmt.Fprintf(sb, "<li><a href=\"#%s\">%s</a></li>\n",
			render.Slugify(title), render.EscapeHTML(title))
	}
	sb.WriteString("</ol>\n</nav>\n")
}

func writeSectionHTML(sb *strings.Builder, s *content.Section) {
	fmt.Fprintf(sb, "<section id=\"%s\" class=\"layout-%s\">\n",
		render.Slugify(s.Title), layoutClass(s.Layout))
	sb.WriteString("<h2>" + render.EscapeHTML(s.Title) + "</h2>\n")

	if img := s.FirstImage(); img != nil && s.Layout != content.LayoutTextOnly {
		fmt.Fprintf(sb, "<figure><img src=\"%s\" alt=\"%s\"/>",
			render.EscapeHTML(img.URL), render.EscapeHTML(img.Alt))
		if img.Attribution != "" {
			sb.WriteString("<figcaption>" + render.EscapeHTML(img.Attribution) + "</figcaption>")
		}
		sb.WriteString("</figure>\n")
	}

	if body := render.Body(s.Content, render.TargetHTML); body != "" {
		sb.WriteString(body + "\n")
	}

	if s.PullQuote != "" {
		sb.WriteString("<blockquote class=\"pullquote\">" +
			render.EscapeHTML(s.PullQuote) + "</blockquote>\n")
	}

	if len(s.Stats) > 0 {
		sb.WriteString("<div class=\"stats\">\n")
		for _, st := range s.Stats {
			fmt.Fprintf(sb, "<div class=\"stat\"><div class=\"value\">%s</div><div class=\"label\">%s</div></div>\n",
				render.EscapeHTML(st.Value), render.EscapeHTML(st.Label))
		}
		sb.WriteString("</div>\n")
	}

	writeVisualHTML(sb, s)

	if s.Callout != nil {
		fmt.Fprintf(sb, "<div class=\"callout callout-%s\"><span class=\"label\">%s %s:</span> %s</div>\n",
			render.EscapeHTML(string(s.Callout.Type)), s.Callout.Type.Emoji(),
			s.Callout.Type.Label(), render.EscapeHTML(s.Callout.Text))
	}

	sb.WriteString("</section>\n")
}

func layoutClass(l content.LayoutType) string {
	if !l.Valid() {
		return string(content.LayoutTextOnly)
	}
	return string(l)
}

// writeVisualHTML renders exactly one visual element per section; unknown
// chart/diagram types degrade to nothing.
func writeVisualHTML(sb *strings.Builder, s *content.Section) {
	switch s.PrimaryVisual() {
	case content.VisualComparisonTable:
		writeComparisonHTML(sb, s.ComparisonTable)
	case content.VisualChart:
		writeChartHTML(sb, s.Chart)
	case content.VisualDiagram:
		writeDiagramHTML(sb, s.Diagram)
	case content.VisualIconGrid:
		writeIconGridHTML(sb, s.IconGrid)
	}
}

func writeComparisonHTML(sb *strings.Builder, t *content.ComparisonTable) {
	if len(t.Headers) == 0 {
		return
	}
	highlight := -1
	if t.HighlightCol != nil {
		highlight = *t.HighlightCol
	}
	if t.Title != "" {
		sb.WriteString("<h3>" + render.EscapeHTML(t.Title) + "</h3>\n")
	}
	sb.WriteString("<table>\n<thead><tr>")
	for i, hd := range t.Headers {
		cls := ""
		if i == highlight {
			cls = " class=\"highlight\""
		}
		fmt.Fprintf(sb, "<th%s>%s</th>", cls, render.EscapeHTML(hd))
	}
	sb.WriteString("</tr></thead>\n<tbody>\n")
	for _, row := range t.Rows {
		sb.WriteString("<tr><td>" + render.EscapeHTML(row.Feature) + "</td>")
		for i, v := range row.Values {
			cls := ""
			if i+1 == highlight {
				cls = " class=\"highlight\""
			}
			fmt.Fprintf(sb, "<td%s>%s</td>", cls, render.EscapeHTML(v))
		}
		sb.WriteString("</tr>\n")
	}
	sb.WriteString("</tbody>\n</table>\n")
}

func writeChartHTML(sb *strings.Builder, c *content.Chart) {
	if !c.Type.Valid() || len(c.Data) == 0 {
		return
	}
	max := c.MaxValue()
	if max <= 0 {
		max = 1
	}
	sb.WriteString("<div class=\"chart\">\n")
	if c.Title != "" {
		sb.WriteString("<h3>" + render.EscapeHTML(c.Title) + "</h3>\n")
	}
	for _, p := range c.Data {
		pct := p.Value / max * 100
		value := trimFloat(p.Value)
		if c.Unit != "" {
			value += " " + c.Unit
		}
		fmt.Fprintf(sb, "<div class=\"bar\" style=\"width:%.0f%%\">%s: %s</div>\n",
			pct, render.EscapeHTML(p.Label), render.EscapeHTML(value))
	}
	sb.WriteString("</div>\n")
}

func writeDiagramHTML(sb *strings.Builder, d *content.Diagram) {
	if !d.Type.Valid() || len(d.Steps) == 0 {
		return
	}
	if d.Title != "" {
		sb.WriteString("<h3>" + render.EscapeHTML(d.Title) + "</h3>\n")
	}
	sb.WriteString("<ol class=\"diagram\">\n")
	for _, step := range d.Steps {
		sb.WriteString("<li><strong>" + render.EscapeHTML(step.Title) + "</strong>")
		if step.Date != "" {
			sb.WriteString(" <em>(" + render.EscapeHTML(step.Date) + ")</em>")
		}
		if step.Description != "" {
			sb.WriteString(" " + render.EscapeHTML(step.Description))
		}
		sb.WriteString("</li>\n")
	}
	sb.WriteString("</ol>\n")
}

func writeIconGridHTML(sb *strings.Builder, g *content.IconGrid) {
	if len(g.Items) == 0 {
		return
	}
	if g.Title != "" {
		sb.WriteString("<h3>" + render.EscapeHTML(g.Title) + "</h3>\n")
	}
	sb.WriteString("<div class=\"icon-grid\">\n")
	for _, item := range g.Items {
		fmt.Fprintf(sb, "<div class=\"cell\"><div class=\"icon\">%s</div><strong>%s</strong><p>%s</p></div>\n",
			render.EscapeHTML(item.Icon), render.EscapeHTML(item.Title),
			render.EscapeHTML(item.Description))
	}
	sb.WriteString("</div>\n")
}
