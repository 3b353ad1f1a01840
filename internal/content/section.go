package content

// LayoutType is the chosen spatial arrangement of text and image(s) for a
// section.
type LayoutType string

const (
	LayoutTextOnly     LayoutType = "text-only"
	LayoutImageRight   LayoutType = "image-right"
	LayoutImageLeft    LayoutType = "image-left"
	LayoutImageFull    LayoutType = "image-full"
	LayoutImageGrid    LayoutType = "image-grid"
	LayoutImageOverlay LayoutType = "image-overlay"
)

// Valid reports whether l is one of the known layout types.
func (l LayoutType) Valid() bool {
	switch l {
	case LayoutTextOnly, LayoutImageRight, LayoutImageLeft,
		LayoutImageFull, LayoutImageGrid, LayoutImageOverlay:
		return true
	}
	return false
}

// Section is one chapter/slide-equivalent unit of a document.
type Section struct {
	Title   string     `json:"title"`
	Content string     `json:"content"`
	Layout  LayoutType `json:"layoutType,omitempty"`

	Images []ImageAsset `json:"images,omitempty"`
	// Image is the legacy single-image field, an alias for Images[0].
	Image *ImageAsset `json:"image,omitempty"`

	PullQuote string   `json:"pullQuote,omitempty"`
	Callout   *Callout `json:"callout,omitempty"`
	Stats     []Stat   `json:"stats,omitempty"`

	Chart           *Chart           `json:"chart,omitempty"`
	Diagram         *Diagram         `json:"diagram,omitempty"`
	ComparisonTable *ComparisonTable `json:"comparisonTable,omitempty"`
	IconGrid        *IconGrid        `json:"iconGrid,omitempty"`
}

// CalloutType classifies a callout box.
type CalloutType string

const (
	CalloutTip     CalloutType = "tip"
	CalloutWarning CalloutType = "warning"
	CalloutInsight CalloutType = "insight"
)

// Label returns the display label for the callout type. Unknown types get
// a neutral label so a malformed section still renders.
func (t CalloutType) Label() string {
	switch t {
	case CalloutTip:
		return "Pro Tip"
	case CalloutWarning:
		return "Watch Out"
	case CalloutInsight:
		return "Key Insight"
	}
	return "Note"
}

// Emoji returns the marker used by text-based formats.
func (t CalloutType) Emoji() string {
	switch t {
	case CalloutTip:
		return "💡"
	case CalloutWarning:
		return "⚠️"
	case CalloutInsight:
		return "🔍"
	}
	return "📌"
}

// Callout is a highlighted aside within a section.
type Callout struct {
	Type CalloutType `json:"type"`
	Text string      `json:"text"`
}

// Stat is a single label/value pair shown in a stat grid.
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// normalize folds the legacy single-image alias into Images.
func (s *Section) normalize() {
	if s.Image != nil && len(s.Images) == 0 {
		s.Images = []ImageAsset{*s.Image}
	}
}

// HasImages reports whether the section has at least one image.
func (s *Section) HasImages() bool {
	return len(s.Images) > 0 || s.Image != nil
}

// FirstImage returns the section's primary image, or nil.
func (s *Section) FirstImage() *ImageAsset {
	if len(s.Images) > 0 {
		return &s.Images[0]
	}
	return s.Image
}

// Clone returns a deep copy of the section.
func (s *Section) Clone() *Section {
	out := *s
	out.Image = s.Image.clone()
	if s.Images != nil {
		out.Images = make([]ImageAsset, len(s.Images))
		copy(out.Images, s.Images)
	}
	if s.Callout != nil {
		c := *s.Callout
		out.Callout = &c
	}
	if s.Stats != nil {
		out.Stats = make([]Stat, len(s.Stats))
		copy(out.Stats, s.Stats)
	}
	out.Chart = s.Chart.clone()
	out.Diagram = s.Diagram.clone()
	out.ComparisonTable = s.ComparisonTable.clone()
	out.IconGrid = s.IconGrid.clone()
	return &out
}
