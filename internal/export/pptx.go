package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/beevik/etree"

	"github.com/skylarmartinex/pagesmith/internal/content"
)

// Slide geometry in EMU, 16:9.
const (
	slideWidthEMU  = 12192000
	slideHeightEMU = 6858000
)

// slideBodyLimit caps section text per slide, in runes.
const slideBodyLimit = 650

const (
	relTypeSlide       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relTypeSlideMaster = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	relTypeSlideLayout = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	relTypeTheme       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
	relTypeImage       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	relTypeOfficeDoc   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"

	nsDrawing      = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPresentation = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsRelationship = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// PPTX serializes a model to an Office Open XML presentation: a title
// slide, one slide per section, and a closing slide. Section images are
// referenced by external link so the archive stays self-contained without
// fetching anything; only the logo (supplied as a data URL) is embedded as
// media.
type PPTX struct {
	Now func() time.Time
}

// NewPPTX creates the PPTX serializer.
func NewPPTX() *PPTX {
	return &PPTX{Now: time.Now}
}

func (p *PPTX) Format() string { return "pptx" }
func (p *PPTX) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
}
func (p *PPTX) Extension() string { return ".pptx" }

type pptxRel struct {
	id     string
	typ    string
	target string
	mode   string // "External" or empty
}

func (p *PPTX) Serialize(_ context.Context, m *content.Model, opts Options) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	theme := opts.theme()
	logo, logoExt := decodeDataURL(opts.LogoDataURL)
	slideCount := len(m.Sections) + 2

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	write := func(name string, data []byte, err error) error {
		if err != nil {
			return fmt.Errorf("building %s: %w", name, err)
		}
		w, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("creating %s: %w", name, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		return nil
	}

	parts := []struct {
		name string
		gen  func() ([]byte, error)
	}{
		{"[Content_Types].xml", func() ([]byte, error) { return contentTypesXML(slideCount, logo != nil, logoExt) }},
		{"_rels/.rels", func() ([]byte, error) {
			return relsXML([]pptxRel{{"rId1", relTypeOfficeDoc, "ppt/presentation.xml", ""}})
		}},
		{"ppt/presentation.xml", func() ([]byte, error) { return presentationXML(slideCount) }},
		{"ppt/_rels/presentation.xml.rels", func() ([]byte, error) { return presentationRels(slideCount) }},
		{"ppt/theme/theme1.xml", func() ([]byte, error) { return themeXML(theme) }},
		{"ppt/slideMasters/slideMaster1.xml", slideMasterXML},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", func() ([]byte, error) {
			return relsXML([]pptxRel{
				{"rId1", relTypeSlideLayout, "../slideLayouts/slideLayout1.xml", ""},
				{"rId2", relTypeTheme, "../theme/theme1.xml", ""},
			})
		}},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayoutXML},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", func() ([]byte, error) {
			return relsXML([]pptxRel{{"rId1", relTypeSlideMaster, "../slideMasters/slideMaster1.xml", ""}})
		}},
	}
	for _, part := range parts {
		data, err := part.gen()
		if err := write(part.name, data, err); err != nil {
			return nil, err
		}
	}

	if logo != nil {
		if err := write("ppt/media/logo."+logoExt, logo, nil); err != nil {
			return nil, err
		}
	}

	// Title slide.
	data, rels, err := titleSlideXML(m, theme, logo != nil, logoExt, p.Now())
	if err := write("ppt/slides/slide1.xml", data, err); err != nil {
		return nil, err
	}
	relData, err := relsXML(rels)
	if err := write("ppt/slides/_rels/slide1.xml.rels", relData, err); err != nil {
		return nil, err
	}

	// One slide per section.
	for i := range m.Sections {
		n := i + 2
		data, rels, err := sectionSlideXML(&m.Sections[i], theme, i+1, slideCount)
		if err := write(fmt.Sprintf("ppt/slides/slide%d.xml", n), data, err); err != nil {
			return nil, err
		}
		relData, err := relsXML(rels)
		if err := write(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), relData, err); err != nil {
			return nil, err
		}
	}

	// Closing slide.
	data, rels, err = closingSlideXML(m, theme)
	if err := write(fmt.Sprintf("ppt/slides/slide%d.xml", slideCount), data, err); err != nil {
		return nil, err
	}
	relData, err = relsXML(rels)
	if err := write(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", slideCount), relData, err); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing pptx archive: %w", err)
	}
	return buf.Bytes(), nil
}

// slideColor normalizes a #RRGGBB theme color for srgbClr values. Channels
// that are not two hex digits are replaced with 00 so a malformed theme can
// never produce invalid XML.
func slideColor(hex string) string {
	hex = strings.TrimPrefix(hex, "#")
	var sb strings.Builder
	for i := 0; i < 3; i++ {
		ch := "00"
		if len(hex) >= (i+1)*2 {
			pair := hex[i*2 : i*2+2]
			if isHexPair(pair) {
				ch = strings.ToUpper(pair)
			}
		}
		sb.WriteString(ch)
	}
	return sb.String()
}

func isHexPair(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return len(s) == 2
}

// truncateRunes caps s at limit runes, appending an ellipsis when cut.
func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "…"
}

// decodeDataURL extracts the media bytes and extension from a base64 image
// data URL. Anything unparseable yields nil, which simply skips the logo.
func decodeDataURL(dataURL string) ([]byte, string) {
	if !strings.HasPrefix(dataURL, "data:image/") {
		return nil, ""
	}
	rest := strings.TrimPrefix(dataURL, "data:image/")
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return nil, ""
	}
	ext := rest[:sep]
	if ext == "jpg" {
		ext = "jpeg"
	}
	data, err := base64.StdEncoding.DecodeString(rest[sep+len(";base64,"):])
	if err != nil {
		return nil, ""
	}
	return data, ext
}

func contentTypesXML(slideCount int, hasLogo bool, logoExt string) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	types := doc.CreateElement("Types")
	types.CreateAttr("xmlns", "http://schemas.openxmlformats.org/package/2006/content-types")

	def := func(ext, ct string) {
		d := types.CreateElement("Default")
		d.CreateAttr("Extension", ext)
		d.CreateAttr("ContentType", ct)
	}
	def("rels", "application/vnd.openxmlformats-package.relationships+xml")
	def("xml", "application/xml")
	if hasLogo {
		def(logoExt, "image/"+logoExt)
	}

	override := func(part, ct string) {
		o := types.CreateElement("Override")
		o.CreateAttr("PartName", part)
		o.CreateAttr("ContentType", ct)
	}
	override("/ppt/presentation.xml",
		"application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml")
	override("/ppt/slideMasters/slideMaster1.xml",
		"application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml")
	override("/ppt/slideLayouts/slideLayout1.xml",
		"application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml")
	override("/ppt/theme/theme1.xml",
		"application/vnd.openxmlformats-officedocument.theme+xml")
	for i := 1; i <= slideCount; i++ {
		override(fmt.Sprintf("/ppt/slides/slide%d.xml", i),
			"application/vnd.openxmlformats-officedocument.presentationml.slide+xml")
	}
	return doc.WriteToBytes()
}

func relsXML(rels []pptxRel) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	root := doc.CreateElement("Relationships")
	root.CreateAttr("xmlns", "http://schemas.openxmlformats.org/package/2006/relationships")
	for _, r := range rels {
		el := root.CreateElement("Relationship")
		el.CreateAttr("Id", r.id)
		el.CreateAttr("Type", r.typ)
		el.CreateAttr("Target", r.target)
		if r.mode != "" {
			el.CreateAttr("TargetMode", r.mode)
		}
	}
	return doc.WriteToBytes()
}

func presentationXML(slideCount int) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	pres := doc.CreateElement("p:presentation")
	pres.CreateAttr("xmlns:a", nsDrawing)
	pres.CreateAttr("xmlns:p", nsPresentation)
	pres.CreateAttr("xmlns:r", nsRelationship)

	masters := pres.CreateElement("p:sldMasterIdLst")
	master := masters.CreateElement("p:sldMasterId")
	master.CreateAttr("id", "2147483648")
	master.CreateAttr("r:id", "rId1")

	slides := pres.CreateElement("p:sldIdLst")
	for i := 0; i < slideCount; i++ {
		s := slides.CreateElement("p:sldId")
		s.CreateAttr("id", fmt.Sprintf("%d", 256+i))
		s.CreateAttr("r:id", fmt.Sprintf("rId%d", i+2))
	}

	size := pres.CreateElement("p:sldSz")
	size.CreateAttr("cx", fmt.Sprintf("%d", slideWidthEMU))
	size.CreateAttr("cy", fmt.Sprintf("%d", slideHeightEMU))
	return doc.WriteToBytes()
}

func presentationRels(slideCount int) ([]byte, error) {
	rels := []pptxRel{{"rId1", relTypeSlideMaster, "slideMasters/slideMaster1.xml", ""}}
	for i := 0; i < slideCount; i++ {
		rels = append(rels, pptxRel{
			fmt.Sprintf("rId%d", i+2), relTypeSlide,
			fmt.Sprintf("slides/slide%d.xml", i+1), "",
		})
	}
	rels = append(rels, pptxRel{
		fmt.Sprintf("rId%d", slideCount+2), relTypeTheme, "theme/theme1.xml", "",
	})
	return relsXML(rels)
}

func themeXML(t Theme) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	theme := doc.CreateElement("a:theme")
	theme.CreateAttr("xmlns:a", nsDrawing)
	theme.CreateAttr("name", "Document")

	elements := theme.CreateElement("a:themeElements")
	scheme := elements.CreateElement("a:clrScheme")
	scheme.CreateAttr("name", "Document")
	addColor := func(name, value string) {
		scheme.CreateElement("a:"+name).CreateElement("a:srgbClr").
			CreateAttr("val", value)
	}
	addColor("dk1", slideColor(t.Text))
	addColor("lt1", slideColor(t.Background))
	addColor("dk2", slideColor(t.Text))
	addColor("lt2", slideColor(t.Background))
	addColor("accent1", slideColor(t.Primary))
	addColor("accent2", slideColor(t.Accent))
	addColor("accent3", slideColor(t.Secondary))
	addColor("accent4", slideColor(t.Primary))
	addColor("accent5", slideColor(t.Accent))
	addColor("accent6", slideColor(t.Secondary))
	addColor("hlink", slideColor(t.Primary))
	addColor("folHlink", slideColor(t.Accent))

	fonts := elements.CreateElement("a:fontScheme")
	fonts.CreateAttr("name", "Document")
	fonts.CreateElement("a:majorFont").CreateElement("a:latin").CreateAttr("typeface", "Calibri Light")
	fonts.CreateElement("a:minorFont").CreateElement("a:latin").CreateAttr("typeface", "Calibri")

	fmtScheme := elements.CreateElement("a:fmtScheme")
	fmtScheme.CreateAttr("name", "Document")
	fills := fmtScheme.CreateElement("a:fillStyleLst")
	for i := 0; i < 3; i++ {
		fills.CreateElement("a:solidFill").CreateElement("a:schemeClr").CreateAttr("val", "phClr")
	}
	lines := fmtScheme.CreateElement("a:lnStyleLst")
	for i := 0; i < 3; i++ {
		ln := lines.CreateElement("a:ln")
		ln.CreateElement("a:solidFill").CreateElement("a:schemeClr").CreateAttr("val", "phClr")
	}
	effects := fmtScheme.CreateElement("a:effectStyleLst")
	for i := 0; i < 3; i++ {
		effects.CreateElement("a:effectStyle").CreateElement("a:effectLst")
	}
	bg := fmtScheme.CreateElement("a:bgFillStyleLst")
	for i := 0; i < 3; i++ {
		bg.CreateElement("a:solidFill").CreateElement("a:schemeClr").CreateAttr("val", "phClr")
	}
	return doc.WriteToBytes()
}

func slideMasterXML() ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	master := doc.CreateElement("p:sldMaster")
	master.CreateAttr("xmlns:a", nsDrawing)
	master.CreateAttr("xmlns:p", nsPresentation)
	master.CreateAttr("xmlns:r", nsRelationship)

	cSld := master.CreateElement("p:cSld")
	tree := cSld.CreateElement("p:spTree")
	tree.AddChild(emptyGroupShape())
	tree.CreateElement("p:grpSpPr")

	clrMap := master.CreateElement("p:clrMap")
	for k, v := range map[string]string{
		"bg1": "lt1", "tx1": "dk1", "bg2": "lt2", "tx2": "dk2",
		"accent1": "accent1", "accent2": "accent2", "accent3": "accent3",
		"accent4": "accent4", "accent5": "accent5", "accent6": "accent6",
		"hlink": "hlink", "folHlink": "folHlink",
	} {
		clrMap.CreateAttr(k, v)
	}

	layouts := master.CreateElement("p:sldLayoutIdLst")
	layout := layouts.CreateElement("p:sldLayoutId")
	layout.CreateAttr("id", "2147483649")
	layout.CreateAttr("r:id", "rId1")
	return doc.WriteToBytes()
}

func slideLayoutXML() ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	layout := doc.CreateElement("p:sldLayout")
	layout.CreateAttr("xmlns:a", nsDrawing)
	layout.CreateAttr("xmlns:p", nsPresentation)
	layout.CreateAttr("xmlns:r", nsRelationship)
	cSld := layout.CreateElement("p:cSld")
	tree := cSld.CreateElement("p:spTree")
	tree.AddChild(emptyGroupShape())
	tree.CreateElement("p:grpSpPr")
	return doc.WriteToBytes()
}

// emptyGroupShape is the mandatory nvGrpSpPr/grpSpPr pair every spTree
// starts with.
func emptyGroupShape() *etree.Element {
	nv := etree.NewElement("p:nvGrpSpPr")
	props := nv.CreateElement("p:cNvPr")
	props.CreateAttr("id", "1")
	props.CreateAttr("name", "")
	nv.CreateElement("p:cNvGrpSpPr")
	nv.CreateElement("p:nvPr")
	return nv
}

type slideBuilder struct {
	doc    *etree.Document
	tree   *etree.Element
	nextID int
	rels   []pptxRel
}

func newSlideBuilder() *slideBuilder {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	sld := doc.CreateElement("p:sld")
	sld.CreateAttr("xmlns:a", nsDrawing)
	sld.CreateAttr("xmlns:p", nsPresentation)
	sld.CreateAttr("xmlns:r", nsRelationship)

	tree := sld.CreateElement("p:cSld").CreateElement("p:spTree")
	tree.AddChild(emptyGroupShape())
	tree.CreateElement("p:grpSpPr")

	return &slideBuilder{
		doc:    doc,
		tree:   tree,
		nextID: 2,
		rels:   []pptxRel{{"rId1", relTypeSlideLayout, "../slideLayouts/slideLayout1.xml", ""}},
	}
}

func (b *slideBuilder) background(color string) {
	bg := etree.NewElement("p:bg")
	bg.CreateElement("p:bgPr").CreateElement("a:solidFill").
		CreateElement("a:srgbClr").CreateAttr("val", color)
	cSld := b.doc.FindElement("//p:cSld")
	cSld.InsertChildAt(0, bg)
}

type textStyle struct {
	size  int // hundredths of a point
	bold  bool
	color string
	align string // "ctr" or empty
}

// rect adds a solid-filled rectangle shape, used for slide chrome like the
// sidebar stripe and divider rules.
func (b *slideBuilder) rect(x, y, w, h int, color string) {
	sp := b.tree.CreateElement("p:sp")

	nv := sp.CreateElement("p:nvSpPr")
	props := nv.CreateElement("p:cNvPr")
	props.CreateAttr("id", fmt.Sprintf("%d", b.nextID))
	props.CreateAttr("name", fmt.Sprintf("Rectangle %d", b.nextID))
	b.nextID++
	nv.CreateElement("p:cNvSpPr")
	nv.CreateElement("p:nvPr")

	spPr := sp.CreateElement("p:spPr")
	xfrm := spPr.CreateElement("a:xfrm")
	off := xfrm.CreateElement("a:off")
	off.CreateAttr("x", fmt.Sprintf("%d", x))
	off.CreateAttr("y", fmt.Sprintf("%d", y))
	ext := xfrm.CreateElement("a:ext")
	ext.CreateAttr("cx", fmt.Sprintf("%d", w))
	ext.CreateAttr("cy", fmt.Sprintf("%d", h))
	geom := spPr.CreateElement("a:prstGeom")
	geom.CreateAttr("prst", "rect")
	geom.CreateElement("a:avLst")
	spPr.CreateElement("a:solidFill").CreateElement("a:srgbClr").
		CreateAttr("val", color)

	body := sp.CreateElement("p:txBody")
	body.CreateElement("a:bodyPr")
	body.CreateElement("a:lstStyle")
	body.CreateElement("a:p")
}

// textBox adds a shape at the given EMU rectangle; each line becomes its
// own paragraph.
func (b *slideBuilder) textBox(x, y, w, h int, lines []string, style textStyle) {
	sp := b.tree.CreateElement("p:sp")

	nv := sp.CreateElement("p:nvSpPr")
	props := nv.CreateElement("p:cNvPr")
	props.CreateAttr("id", fmt.Sprintf("%d", b.nextID))
	props.CreateAttr("name", fmt.Sprintf("TextBox %d", b.nextID))
	b.nextID++
	nv.CreateElement("p:cNvSpPr").CreateAttr("txBox", "1")
	nv.CreateElement("p:nvPr")

	spPr := sp.CreateElement("p:spPr")
	xfrm := spPr.CreateElement("a:xfrm")
	off := xfrm.CreateElement("a:off")
	off.CreateAttr("x", fmt.Sprintf("%d", x))
	off.CreateAttr("y", fmt.Sprintf("%d", y))
	ext := xfrm.CreateElement("a:ext")
	ext.CreateAttr("cx", fmt.Sprintf("%d", w))
	ext.CreateAttr("cy", fmt.Sprintf("%d", h))
	geom := spPr.CreateElement("a:prstGeom")
	geom.CreateAttr("prst", "rect")
	geom.CreateElement("a:avLst")

	body := sp.CreateElement("p:txBody")
	bodyPr := body.CreateElement("a:bodyPr")
	bodyPr.CreateAttr("wrap", "square")
	body.CreateElement("a:lstStyle")

	for _, line := range lines {
		para := body.CreateElement("a:p")
		if style.align != "" {
			para.CreateElement("a:pPr").CreateAttr("algn", style.align)
		}
		run := para.CreateElement("a:r")
		rPr := run.CreateElement("a:rPr")
		rPr.CreateAttr("lang", "en-US")
		rPr.CreateAttr("sz", fmt.Sprintf("%d", style.size))
		if style.bold {
			rPr.CreateAttr("b", "1")
		}
		rPr.CreateElement("a:solidFill").CreateElement("a:srgbClr").
			CreateAttr("val", style.color)
		run.CreateElement("a:t").SetText(line)
	}
}

// image adds a picture shape. External URLs are linked, not embedded, so
// serialization stays pure; embedded targets reference archive media.
func (b *slideBuilder) image(x, y, w, h int, target string, external bool) {
	relID := fmt.Sprintf("rId%d", len(b.rels)+1)
	mode := ""
	if external {
		mode = "External"
	}
	b.rels = append(b.rels, pptxRel{relID, relTypeImage, target, mode})

	pic := b.tree.CreateElement("p:pic")
	nv := pic.CreateElement("p:nvPicPr")
	props := nv.CreateElement("p:cNvPr")
	props.CreateAttr("id", fmt.Sprintf("%d", b.nextID))
	props.CreateAttr("name", fmt.Sprintf("Picture %d", b.nextID))
	b.nextID++
	nv.CreateElement("p:cNvPicPr")
	nv.CreateElement("p:nvPr")

	fill := pic.CreateElement("p:blipFill")
	blip := fill.CreateElement("a:blip")
	if external {
		blip.CreateAttr("r:link", relID)
	} else {
		blip.CreateAttr("r:embed", relID)
	}
	fill.CreateElement("a:stretch").CreateElement("a:fillRect")

	spPr := pic.CreateElement("p:spPr")
	xfrm := spPr.CreateElement("a:xfrm")
	off := xfrm.CreateElement("a:off")
	off.CreateAttr("x", fmt.Sprintf("%d", x))
	off.CreateAttr("y", fmt.Sprintf("%d", y))
	ext := xfrm.CreateElement("a:ext")
	ext.CreateAttr("cx", fmt.Sprintf("%d", w))
	ext.CreateAttr("cy", fmt.Sprintf("%d", h))
	geom := spPr.CreateElement("a:prstGeom")
	geom.CreateAttr("prst", "rect")
	geom.CreateElement("a:avLst")
}

func (b *slideBuilder) build() ([]byte, []pptxRel, error) {
	data, err := b.doc.WriteToBytes()
	return data, b.rels, err
}

func titleSlideXML(m *content.Model, t Theme, hasLogo bool, logoExt string, now time.Time) ([]byte, []pptxRel, error) {
	b := newSlideBuilder()
	b.background(slideColor(t.Primary))

	// Accent bar along the bottom edge.
	b.rect(0, 6629400, slideWidthEMU, 228600, slideColor(t.Accent))

	b.textBox(914400, 2200000, 10363200, 1400000,
		[]string{m.Title}, textStyle{size: 4400, bold: true, color: "FFFFFF", align: "ctr"})
	if m.Subtitle != "" {
		b.textBox(914400, 3700000, 10363200, 800000,
			[]string{m.Subtitle}, textStyle{size: 2400, color: "FFFFFF", align: "ctr"})
	}
	byline := now.Format("January 2006")
	if m.Author != "" {
		byline = m.Author + " · " + byline
	}
	b.textBox(914400, 5600000, 10363200, 600000,
		[]string{byline}, textStyle{size: 1600, color: "FFFFFF", align: "ctr"})

	if hasLogo {
		b.image(457200, 457200, 1143000, 1143000, "../media/logo."+logoExt, false)
	}
	return b.build()
}

// sectionSlideXML builds one content slide. num is the 1-based section
// ordinal shown in the chip badge; slideCount positions the footer counter.
func sectionSlideXML(s *content.Section, t Theme, num, slideCount int) ([]byte, []pptxRel, error) {
	b := newSlideBuilder()
	b.background(slideColor(t.Background))
	accent := slideColor(t.Accent)

	// Sidebar stripe down the left edge.
	b.rect(0, 0, 228600, slideHeightEMU, accent)

	// Numbered chip badge next to the title.
	b.rect(685800, 411480, 548640, 548640, accent)
	b.textBox(685800, 457200, 548640, 457200,
		[]string{fmt.Sprintf("%d", num)},
		textStyle{size: 2000, bold: true, color: "FFFFFF", align: "ctr"})

	b.textBox(1463040, 365760, 10043160, 914400,
		[]string{s.Title}, textStyle{size: 3200, bold: true, color: slideColor(t.Primary)})

	// Divider rule under the title.
	b.rect(1463040, 1280160, 10043160, 27432, accent)

	img := s.FirstImage()
	withImage := img != nil && s.Layout != content.LayoutTextOnly
	bodyWidth := 10820400
	bodyX := 685800
	if withImage {
		bodyWidth = 6400800
		imgX := 7315200
		if s.Layout == content.LayoutImageLeft {
			bodyX = 4343400
			imgX = 685800
		}
		b.image(imgX, 1371600, 4191000, 4191000, img.URL, true)
	}

	lines := slideBodyLines(s)
	b.textBox(bodyX, 1371600, bodyWidth, 4800600, lines,
		textStyle{size: 1600, color: slideColor(t.Text)})

	// Slide number footer, bottom right.
	b.textBox(11064240, 6492240, 822960, 274320,
		[]string{fmt.Sprintf("%d / %d", num+1, slideCount)},
		textStyle{size: 1200, color: slideColor(t.Secondary), align: "ctr"})

	return b.build()
}

// slideBodyLines flattens section content to slide paragraphs, capped at
// slideBodyLimit runes of body text.
func slideBodyLines(s *content.Section) []string {
	var lines []string
	body := strings.TrimSpace(s.Content)
	if body != "" {
		body = truncateRunes(body, slideBodyLimit)
		for _, line := range strings.Split(body, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			line = strings.TrimPrefix(line, "### ")
			line = strings.ReplaceAll(line, "**", "")
			if cut, ok := strings.CutPrefix(line, "- "); ok {
				line = "• " + cut
			} else if cut, ok := strings.CutPrefix(line, "* "); ok {
				line = "• " + cut
			}
			lines = append(lines, line)
		}
	}

	if s.PullQuote != "" {
		lines = append(lines, "“"+s.PullQuote+"”")
	}
	for _, st := range s.Stats {
		lines = append(lines, fmt.Sprintf("%s - %s", st.Value, st.Label))
	}

	switch s.PrimaryVisual() {
	case content.VisualComparisonTable:
		for _, row := range s.ComparisonTable.Rows {
			lines = append(lines, row.Feature+": "+strings.Join(row.Values, " / "))
		}
	case content.VisualChart:
		if s.Chart.Type.Valid() {
			for _, p := range s.Chart.Data {
				value := trimFloat(p.Value)
				if s.Chart.Unit != "" {
					value += " " + s.Chart.Unit
				}
				lines = append(lines, p.Label+": "+value)
			}
		}
	case content.VisualDiagram:
		if s.Diagram.Type.Valid() {
			for i, step := range s.Diagram.Steps {
				lines = append(lines, fmt.Sprintf("%d. %s", i+1, step.Title))
			}
		}
	case content.VisualIconGrid:
		for _, item := range s.IconGrid.Items {
			lines = append(lines, item.Icon+" "+item.Title)
		}
	}

	if s.Callout != nil {
		lines = append(lines, s.Callout.Type.Emoji()+" "+s.Callout.Type.Label()+": "+s.Callout.Text)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

func closingSlideXML(m *content.Model, t Theme) ([]byte, []pptxRel, error) {
	b := newSlideBuilder()
	b.background(slideColor(t.Accent))

	b.textBox(914400, 2700000, 10363200, 1000000,
		[]string{"Thank You"}, textStyle{size: 4400, bold: true, color: "FFFFFF", align: "ctr"})
	if m.Author != "" {
		b.textBox(914400, 4000000, 10363200, 600000,
			[]string{m.Author}, textStyle{size: 2000, color: "FFFFFF", align: "ctr"})
	}
	return b.build()
}
