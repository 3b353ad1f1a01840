package export

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"

	"github.com/skylarmartinex/pagesmith/internal/content"
	"github.com/skylarmartinex/pagesmith/internal/render"
)

// EPUB serializes a model to an EPUB 3 container. The mimetype entry is
// written first and stored uncompressed, as the format requires.
type EPUB struct {
	Now func() time.Time
	// NewID supplies the package unique-identifier; overridable in tests.
	NewID func() string
}

// NewEPUB creates the EPUB serializer.
func NewEPUB() *EPUB {
	return &EPUB{
		Now:   time.Now,
		NewID: uuid.NewString,
	}
}

func (e *EPUB) Format() string      { return "epub" }
func (e *EPUB) ContentType() string { return "application/epub+zip" }
func (e *EPUB) Extension() string   { return ".epub" }

func (e *EPUB) Serialize(_ context.Context, m *content.Model, opts Options) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	bookID := "urn:uuid:" + e.NewID()
	now := e.Now().UTC()
	modified := now.Format("2006-01-02T15:04:05Z")
	date := now.Format("2006-01-02")

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		return nil, fmt.Errorf("creating mimetype entry: %w", err)
	}
	if _, err := w.Write([]byte("application/epub+zip")); err != nil {
		return nil, fmt.Errorf("writing mimetype entry: %w", err)
	}

	entries := []struct {
		name string
		gen  func() ([]byte, error)
	}{
		{"META-INF/container.xml", containerXML},
		{"OEBPS/content.opf", func() ([]byte, error) { return packageOPF(m, bookID, modified, date) }},
		{"OEBPS/nav.xhtml", func() ([]byte, error) { return navXHTML(m) }},
		{"OEBPS/styles/stylesheet.css", func() ([]byte, error) { return []byte(epubCSS(opts.theme())), nil }},
		{"OEBPS/cover.xhtml", func() ([]byte, error) { return coverXHTML(m), nil }},
	}
	for i := range m.Sections {
		s := &m.Sections[i]
		name := fmt.Sprintf("OEBPS/chapter-%d.xhtml", i+1)
		entries = append(entries, struct {
			name string
			gen  func() ([]byte, error)
		}{name, func() ([]byte, error) { return chapterXHTML(s), nil }})
	}

	for _, entry := range entries {
		data, err := entry.gen()
		if err != nil {
			return nil, fmt.Errorf("building %s: %w", entry.name, err)
		}
		w, err := zw.Create(entry.name)
		if err != nil {
			return nil, fmt.Errorf("creating %s: %w", entry.name, err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("writing %s: %w", entry.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing epub container: %w", err)
	}
	return buf.Bytes(), nil
}

func containerXML() ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	container := doc.CreateElement("container")
	container.CreateAttr("version", "1.0")
	container.CreateAttr("xmlns", "urn:oasis:names:tc:opendocument:xmlns:container")
	rootfile := container.CreateElement("rootfiles").CreateElement("rootfile")
	rootfile.CreateAttr("full-path", "OEBPS/content.opf")
	rootfile.CreateAttr("media-type", "application/oebps-package+xml")
	doc.Indent(2)
	return doc.WriteToBytes()
}

func packageOPF(m *content.Model, bookID, modified, date string) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	pkg := doc.CreateElement("package")
	pkg.CreateAttr("xmlns", "http://www.idpf.org/2007/opf")
	pkg.CreateAttr("version", "3.0")
	pkg.CreateAttr("unique-identifier", "book-id")

	meta := pkg.CreateElement("metadata")
	meta.CreateAttr("xmlns:dc", "http://purl.org/dc/elements/1.1/")

	id := meta.CreateElement("dc:identifier")
	id.CreateAttr("id", "book-id")
	id.SetText(bookID)
	meta.CreateElement("dc:title").SetText(m.Title)
	meta.CreateElement("dc:language").SetText("en")
	if m.Author != "" {
		meta.CreateElement("dc:creator").SetText(m.Author)
	}
	if m.Subtitle != "" {
		meta.CreateElement("dc:description").SetText(m.Subtitle)
	}
	meta.CreateElement("dc:date").SetText(date)
	mod := meta.CreateElement("meta")
	mod.CreateAttr("property", "dcterms:modified")
	mod.SetText(modified)

	manifest := pkg.CreateElement("manifest")
	addItem := func(id, href, mediaType string, props string) {
		item := manifest.CreateElement("item")
		item.CreateAttr("id", id)
		item.CreateAttr("href", href)
		item.CreateAttr("media-type", mediaType)
		if props != "" {
			item.CreateAttr("properties", props)
		}
	}
	addItem("nav", "nav.xhtml", "application/xhtml+xml", "nav")
	addItem("css", "styles/stylesheet.css", "text/css", "")
	addItem("cover", "cover.xhtml", "application/xhtml+xml", "")
	for i := range m.Sections {
		addItem(fmt.Sprintf("chapter-%d", i+1),
			fmt.Sprintf("chapter-%d.xhtml", i+1), "application/xhtml+xml", "")
	}

	// The nav doc stays out of the spine: reading order is cover then
	// chapters, navigation is chrome.
	spine := pkg.CreateElement("spine")
	addRef := func(idref string) {
		spine.CreateElement("itemref").CreateAttr("idref", idref)
	}
	addRef("cover")
	for i := range m.Sections {
		addRef(fmt.Sprintf("chapter-%d", i+1))
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

func navXHTML(m *content.Model) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateDirective("DOCTYPE html")

	html := doc.CreateElement("html")
	html.CreateAttr("xmlns", "http://www.w3.org/1999/xhtml")
	html.CreateAttr("xmlns:epub", "http://www.idpf.org/2007/ops")

	head := html.CreateElement("head")
	head.CreateElement("title").SetText("Contents")
	link := head.CreateElement("link")
	link.CreateAttr("rel", "stylesheet")
	link.CreateAttr("href", "styles/stylesheet.css")

	nav := html.CreateElement("body").CreateElement("nav")
	nav.CreateAttr("epub:type", "toc")
	nav.CreateElement("h1").SetText("Contents")
	ol := nav.CreateElement("ol")
	coverLink := ol.CreateElement("li").CreateElement("a")
	coverLink.CreateAttr("href", "cover.xhtml")
	coverLink.SetText("Cover")
	for i := range m.Sections {
		a := ol.CreateElement("li").CreateElement("a")
		a.CreateAttr("href", fmt.Sprintf("chapter-%d.xhtml", i+1))
		a.SetText(m.Sections[i].Title)
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

func coverXHTML(m *content.Model) []byte {
	var sb strings.Builder
	writeXHTMLHead(&sb, m.Title)
	sb.WriteString("<body class=\"cover\">\n")
	sb.WriteString("<h1>" + render.EscapeXML(m.Title) + "</h1>\n")
	if m.Subtitle != "" {
		sb.WriteString("<p class=\"subtitle\">" + render.EscapeXML(m.Subtitle) + "</p>\n")
	}
	if m.Author != "" {
		sb.WriteString("<p class=\"author\">" + render.EscapeXML(m.Author) + "</p>\n")
	}
	sb.WriteString("</body>\n</html>\n")
	return []byte(sb.String())
}

// chapterXHTML builds a chapter by hand rather than through etree: the body
// markup comes pre-rendered from the shared body renderer and must be
// embedded verbatim.
func chapterXHTML(s *content.Section) []byte {
	var sb strings.Builder
	writeXHTMLHead(&sb, s.Title)
	sb.WriteString("<body>\n")
	sb.WriteString("<h2>" + render.EscapeXML(s.Title) + "</h2>\n")

	if img := s.FirstImage(); img != nil && s.Layout != content.LayoutTextOnly {
		fmt.Fprintf(&sb, "<img src=\"%s\" alt=\"%s\"/>\n",
			render.EscapeXML(img.URL), render.EscapeXML(img.Alt))
	}

	if body := render.Body(s.Content, render.TargetXHTML); body != "" {
		sb.WriteString(body + "\n")
	}

	if s.PullQuote != "" {
		sb.WriteString("<blockquote>" + render.EscapeXML(s.PullQuote) + "</blockquote>\n")
	}

	if len(s.Stats) > 0 {
		sb.WriteString("<table class=\"stats\">\n")
		for _, st := range s.Stats {
			fmt.Fprintf(&sb, "<tr><td>%s</td><td>%s</td></tr>\n",
				render.EscapeXML(st.Label), render.EscapeXML(st.Value))
		}
		sb.WriteString("</table>\n")
	}

	writeVisualXHTML(&sb, s)

	if s.Callout != nil {
		fmt.Fprintf(&sb, "<div class=\"callout\"><strong>%s %s:</strong> %s</div>\n",
			s.Callout.Type.Emoji(), s.Callout.Type.Label(),
			render.EscapeXML(s.Callout.Text))
	}

	sb.WriteString("</body>\n</html>\n")
	return []byte(sb.String())
}

func writeXHTMLHead(sb *strings.Builder, title string) {
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString(`<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">` + "\n<head>\n")
	sb.WriteString("<title>" + render.EscapeXML(title) + "</title>\n")
	sb.WriteString(`<link rel="stylesheet" href="styles/stylesheet.css"/>` + "\n")
	sb.WriteString("</head>\n")
}

func writeVisualXHTML(sb *strings.Builder, s *content.Section) {
	switch s.PrimaryVisual() {
	case content.VisualComparisonTable:
		t := s.ComparisonTable
		if len(t.Headers) == 0 {
			return
		}
		sb.WriteString("<table>\n<tr>")
		for _, h := range t.Headers {
			sb.WriteString("<th>" + render.EscapeXML(h) + "</th>")
		}
		sb.WriteString("</tr>\n")
		for _, row := range t.Rows {
			sb.WriteString("<tr><td>" + render.EscapeXML(row.Feature) + "</td>")
			for _, v := range row.Values {
				sb.WriteString("<td>" + render.EscapeXML(v) + "</td>")
			}
			sb.WriteString("</tr>\n")
		}
		sb.WriteString("</table>\n")
	case content.VisualChart:
		c := s.Chart
		if !c.Type.Valid() || len(c.Data) == 0 {
			return
		}
		sb.WriteString("<table class=\"chart\">\n")
		for _, p := range c.Data {
			value := trimFloat(p.Value)
			if c.Unit != "" {
				value += " " + c.Unit
			}
			fmt.Fprintf(sb, "<tr><td>%s</td><td>%s</td></tr>\n",
				render.EscapeXML(p.Label), render.EscapeXML(value))
		}
		sb.WriteString("</table>\n")
	case content.VisualDiagram:
		d := s.Diagram
		if !d.Type.Valid() || len(d.Steps) == 0 {
			return
		}
		sb.WriteString("<ol>\n")
		for _, step := range d.Steps {
			sb.WriteString("<li><strong>" + render.EscapeXML(step.Title) + "</strong>")
			if step.Description != "" {
				sb.WriteString(" " + render.EscapeXML(step.Description))
			}
			sb.WriteString("</li>\n")
		}
		sb.WriteString("</ol>\n")
	case content.VisualIconGrid:
		g := s.IconGrid
		if len(g.Items) == 0 {
			return
		}
		sb.WriteString("<ul>\n")
		for _, item := range g.Items {
			fmt.Fprintf(sb, "<li>%s <strong>%s</strong> %s</li>\n",
				render.EscapeXML(item.Icon), render.EscapeXML(item.Title),
				render.EscapeXML(item.Description))
		}
		sb.WriteString("</ul>\n")
	}
}

func epubCSS(t Theme) string {
	return fmt.Sprintf(`body{font-family:Georgia,serif;line-height:1.6;color:%s;margin:1em}
h1,h2{color:%s}
.cover{text-align:center;margin-top:30%%}
.cover .subtitle{font-style:italic}
.cover .author{color:%s}
img{max-width:100%%}
blockquote{border-left:3px solid %s;margin-left:0;padding-left:1em;font-style:italic}
table{border-collapse:collapse;width:100%%;margin:1em 0}
td,th{border:1px solid #ccc;padding:.3em .6em;text-align:left}
.callout{border:1px solid %s;border-radius:4px;padding:.6em 1em;margin:1em 0}
`, t.Text, t.Primary, t.Secondary, t.Accent, t.Accent)
}
