package generate

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a professional content designer producing complete, well-structured documents. You respond with strict JSON only.`

// buildPrompt assembles the user prompt for the request. Providers share
// one prompt so switching providers cannot change the document schema.
func buildPrompt(req Request) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Write a complete document about: %s\n\n", req.Topic)
	if req.BrandVoice != "" {
		fmt.Fprintf(&sb, "Write in this voice: %s\n", req.BrandVoice)
	}
	if req.TargetPersona != "" {
		fmt.Fprintf(&sb, "Write for this audience: %s\n", req.TargetPersona)
	}

	if len(req.Outline) > 0 {
		sb.WriteString("\nUse exactly these section titles, in order:\n")
		for i, title := range req.Outline {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, title)
		}
	} else {
		fmt.Fprintf(&sb, "\nProduce exactly %d sections: an introduction first, a conclusion last.\n", req.sectionCount())
	}

	sb.WriteString(`
Return ONLY valid JSON - no markdown code blocks, no explanations.
Output ONLY this JSON structure (no ` + "```json" + ` wrappers):
{
  "title": "Document title",
  "subtitle": "One-line subtitle",
  "sections": [
    {
      "title": "Section title",
      "content": "2-4 paragraphs. Allowed formatting: ### subheadings, - bullet lists, **bold**. Separate paragraphs with blank lines.",
      "pullQuote": "optional, one memorable sentence",
      "stats": [{"label": "metric name", "value": "92%"}],
      "callout": {"type": "tip|warning|insight", "text": "optional aside"},
      "chart": {"type": "bar|line|pie|donut|progress", "title": "...", "unit": "...", "data": [{"label": "...", "value": 42}]},
      "diagram": {"type": "process|timeline", "title": "...", "steps": [{"title": "...", "description": "..."}]},
      "comparisonTable": {"headers": ["Feature", "A", "B"], "rows": [{"feature": "...", "values": ["...", "..."]}]},
      "iconGrid": {"items": [{"icon": "⚙️", "title": "...", "description": "..."}]}
    }
  ]
}

CRITICAL RULES:
- Include at most ONE of chart/diagram/comparisonTable/iconGrid per section
- pullQuote, stats, callout and every visual are optional; include them only where they strengthen the section
- Every string must be plain text, no HTML
- Return ONLY the JSON object
`)
	return sb.String()
}
