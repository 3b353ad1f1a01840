package content

// ChartType identifies the chart rendering style.
type ChartType string

const (
	ChartBar      ChartType = "bar"
	ChartLine     ChartType = "line"
	ChartPie      ChartType = "pie"
	ChartDonut    ChartType = "donut"
	ChartProgress ChartType = "progress"
)

// Valid reports whether t is a known chart type.
func (t ChartType) Valid() bool {
	switch t {
	case ChartBar, ChartLine, ChartPie, ChartDonut, ChartProgress:
		return true
	}
	return false
}

// ChartPoint is a single datum in a chart.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
}

// Chart is a data visualization attached to a section.
type Chart struct {
	Type  ChartType    `json:"type"`
	Title string       `json:"title,omitempty"`
	Unit  string       `json:"unit,omitempty"`
	Data  []ChartPoint `json:"data"`
}

// MaxValue returns the largest data value, or 0 for an empty chart.
func (c *Chart) MaxValue() float64 {
	var max float64
	for _, p := range c.Data {
		if p.Value > max {
			max = p.Value
		}
	}
	return max
}

// DiagramType identifies the diagram rendering style.
type DiagramType string

const (
	DiagramProcess  DiagramType = "process"
	DiagramTimeline DiagramType = "timeline"
)

// Valid reports whether t is a known diagram type.
func (t DiagramType) Valid() bool {
	return t == DiagramProcess || t == DiagramTimeline
}

// DiagramStep is one step in a process or timeline diagram.
type DiagramStep struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date,omitempty"`
}

// Diagram is a step-sequence visualization attached to a section.
type Diagram struct {
	Type  DiagramType   `json:"type"`
	Title string        `json:"title,omitempty"`
	Steps []DiagramStep `json:"steps"`
}

// ComparisonRow is one feature row in a comparison table.
type ComparisonRow struct {
	Feature string   `json:"feature"`
	Values  []string `json:"values"`
}

// ComparisonTable is a feature comparison grid attached to a section.
type ComparisonTable struct {
	Title        string          `json:"title,omitempty"`
	Headers      []string        `json:"headers"`
	Rows         []ComparisonRow `json:"rows"`
	HighlightCol *int            `json:"highlightCol,omitempty"`
}

// IconItem is one cell in an icon grid.
type IconItem struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// IconGrid is a grid of icon/title/description cells attached to a section.
type IconGrid struct {
	Title   string     `json:"title,omitempty"`
	Columns int        `json:"columns,omitempty"`
	Items   []IconItem `json:"items"`
}

// VisualKind identifies which of the mutually-exclusive visual elements a
// serializer should render for a section.
type VisualKind int

const (
	VisualNone VisualKind = iota
	VisualComparisonTable
	VisualChart
	VisualDiagram
	VisualIconGrid
)

// PrimaryVisual resolves the single visual element to render. Generation is
// supposed to populate at most one of the four visual fields; when that
// invariant is violated the fixed precedence comparisonTable > chart >
// diagram > iconGrid applies, so every serializer picks the same one.
func (s *Section) PrimaryVisual() VisualKind {
	switch {
	case s.ComparisonTable != nil:
		return VisualComparisonTable
	case s.Chart != nil:
		return VisualChart
	case s.Diagram != nil:
		return VisualDiagram
	case s.IconGrid != nil:
		return VisualIconGrid
	}
	return VisualNone
}

func (c *Chart) clone() *Chart {
	if c == nil {
		return nil
	}
	out := *c
	if c.Data != nil {
		out.Data = make([]ChartPoint, len(c.Data))
		copy(out.Data, c.Data)
	}
	return &out
}

func (d *Diagram) clone() *Diagram {
	if d == nil {
		return nil
	}
	out := *d
	if d.Steps != nil {
		out.Steps = make([]DiagramStep, len(d.Steps))
		copy(out.Steps, d.Steps)
	}
	return &out
}

func (t *ComparisonTable) clone() *ComparisonTable {
	if t == nil {
		return nil
	}
	out := *t
	if t.HighlightCol != nil {
		col := *t.HighlightCol
		out.HighlightCol = &col
	}
	if t.Headers != nil {
		out.Headers = make([]string, len(t.Headers))
		copy(out.Headers, t.Headers)
	}
	if t.Rows != nil {
		out.Rows = make([]ComparisonRow, len(t.Rows))
		for i, r := range t.Rows {
			row := ComparisonRow{Feature: r.Feature}
			if r.Values != nil {
				row.Values = make([]string, len(r.Values))
				copy(row.Values, r.Values)
			}
			out.Rows[i] = row
		}
	}
	return &out
}

func (g *IconGrid) clone() *IconGrid {
	if g == nil {
		return nil
	}
	out := *g
	if g.Items != nil {
		out.Items = make([]IconItem, len(g.Items))
		copy(out.Items, g.Items)
	}
	return &out
}
