package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/skylarmartinex/pagesmith/internal/content"
	"github.com/skylarmartinex/pagesmith/internal/rasterize"
	"github.com/skylarmartinex/pagesmith/internal/render"
)

// PDF template identifiers. An unknown templateId falls back to minimal.
const (
	TemplateMinimal   = "minimal"
	TemplateMagazine  = "magazine"
	TemplateSlideDeck = "slide-deck"
)

// PDF serializes a model by building a print-oriented HTML variant and
// handing it to a rasterizer.
type PDF struct {
	engine rasterize.Engine
	Now    func() time.Time
}

// NewPDF creates the PDF serializer backed by the given engine.
func NewPDF(engine rasterize.Engine) *PDF {
	return &PDF{engine: engine, Now: time.Now}
}

func (p *PDF) Format() string      { return "pdf" }
func (p *PDF) ContentType() string { return "application/pdf" }
func (p *PDF) Extension() string   { return ".pdf" }

func (p *PDF) Serialize(ctx context.Context, m *content.Model, opts Options) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if p.engine == nil {
		return nil, fmt.Errorf("no rasterize engine configured")
	}

	doc := p.printHTML(m, opts)
	pdf, err := p.engine.Render(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return pdf, nil
}

// printHTML builds the print document for the selected template. All
// variants share the section markup; the template decides the page rules
// and chrome around it.
func (p *PDF) printHTML(m *content.Model, opts Options) string {
	theme := opts.theme()
	template := opts.TemplateID
	switch template {
	case TemplateMagazine, TemplateSlideDeck:
	default:
		template = TemplateMinimal
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\"/>\n")
	sb.WriteString("<title>" + render.EscapeHTML(m.Title) + "</title>\n")
	sb.WriteString("<style>\n" + printCSS(template, theme, opts.fontFamily()) + "</style>\n")
	sb.WriteString("</head>\n<body class=\"" + template + "\">\n")

	sb.WriteString("<div class=\"title-page\">\n")
	sb.WriteString("<h1>" + render.EscapeHTML(m.Title) + "</h1>\n")
	if m.Subtitle != "" {
		sb.WriteString("<p class=\"subtitle\">" + render.EscapeHTML(m.Subtitle) + "</p>\n")
	}
	if m.Author != "" {
		sb.WriteString("<p class=\"author\">" + render.EscapeHTML(m.Author) + "</p>\n")
	}
	fmt.Fprintf(&sb, "<p class=\"date\">%s</p>\n", p.Now().Format("January 2, 2006"))
	sb.WriteString("</div>\n")

	for i := range m.Sections {
		writeSectionHTML(&sb, &m.Sections[i])
	}

	sb.WriteString("</body>\n</html>\n")
	return sb.String()
}

func printCSS(template string, t Theme, font string) string {
	base := fmt.Sprintf(`@page{size:A4;margin:18mm}
body{font-family:%s;color:%s;line-height:1.6;margin:0}
.title-page{text-align:center;padding-top:35%%;page-break-after:always}
.title-page h1{font-size:2.6em;color:%s}
.title-page .subtitle{font-size:1.3em;font-style:italic}
.title-page .author{margin-top:2em}
.title-page .date{color:%s;font-size:.9em}
section{page-break-inside:avoid;margin-bottom:2em}
section h2{color:%s}
section img{max-width:100%%}
blockquote.pullquote{border-left:3px solid %s;padding-left:1em;font-style:italic}
table{border-collapse:collapse;width:100%%}
td,th{border:1px solid #ccc;padding:4pt 8pt;text-align:left}
`, font, t.Text, t.Primary, t.Secondary, t.Primary, t.Accent)

	switch template {
	case TemplateMagazine:
		return base + fmt.Sprintf(`@page{size:A4;margin:12mm}
section{column-count:2;column-gap:8mm}
section h2{column-span:all;border-bottom:3px solid %s;padding-bottom:4pt}
.stats{display:flex;gap:4mm}
.stat{flex:1;background:%s;color:#fff;padding:4mm;border-radius:2mm;text-align:center}
`, t.Accent, t.Primary)
	case TemplateSlideDeck:
		return base + fmt.Sprintf(`@page{size:A4 landscape;margin:10mm}
section{page-break-after:always;page-break-inside:auto;padding:8mm;min-height:160mm}
section h2{font-size:2em;border-bottom:4px solid %s}
`, t.Accent)
	}
	return base
}
