package rasterize

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Local renders without a browser by walking the HTML tree and emitting
// text into a direct PDF writer. Stylesheets and images are ignored; the
// document structure (headings, paragraphs, lists, quotes) survives.
type Local struct {
	logger *zap.Logger
}

// NewLocal creates the browserless rasterizer.
func NewLocal(logger *zap.Logger) *Local {
	return &Local{logger: logger}
}

type localState struct {
	pdf    *gofpdf.Fpdf
	indent float64
}

// Render parses the document and lays it out on A4 pages.
func (l *Local) Render(ctx context.Context, htmlDoc string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := html.Parse(strings.NewReader(htmlDoc))
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("%d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	st := &localState{pdf: pdf}
	st.walk(doc)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}

	l.logger.Debug("rendered pdf without browser", zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

func (st *localState) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "style", "script", "head":
			return
		case "h1":
			st.block(n, "Helvetica", "B", 22, 12)
			return
		case "h2":
			st.block(n, "Helvetica", "B", 16, 9)
			return
		case "h3":
			st.block(n, "Helvetica", "B", 13, 7)
			return
		case "p", "figcaption":
			st.block(n, "Helvetica", "", 11, 6)
			return
		case "blockquote":
			st.indent += 8
			st.block(n, "Helvetica", "I", 12, 7)
			st.indent -= 8
			return
		case "li":
			st.indent += 6
			st.bullet(n)
			st.indent -= 6
			return
		case "td", "th":
			st.block(n, "Helvetica", "", 10, 5)
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		st.walk(c)
	}
}

func (st *localState) block(n *html.Node, family, style string, size, lead float64) {
	text := strings.TrimSpace(collectText(n))
	if text == "" {
		return
	}
	st.pdf.SetFont(family, style, size)
	st.pdf.SetX(20 + st.indent)
	st.pdf.MultiCell(170-st.indent, size*0.5, text, "", "L", false)
	st.pdf.Ln(lead * 0.5)
}

func (st *localState) bullet(n *html.Node) {
	text := strings.TrimSpace(collectText(n))
	if text == "" {
		return
	}
	st.pdf.SetFont("Helvetica", "", 11)
	st.pdf.SetX(20 + st.indent)
	st.pdf.MultiCell(170-st.indent, 5.5, "- "+text, "", "L", false)
}

func collectText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
