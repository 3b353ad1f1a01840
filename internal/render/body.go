// Package render converts the constrained markdown subset used in section
// bodies (### headings, - bullets, **bold**, blank-line paragraphs) into
// format-specific markup. All serializers share this package so the parse
// and escaping rules cannot drift between formats.
package render

import (
	"regexp"
	"strings"
)

// Target selects the output grammar for Body.
type Target string

const (
	TargetHTML     Target = "html"
	TargetXHTML    Target = "xhtml"
	TargetMarkdown Target = "markdown"
)

var (
	blockSplitRE = regexp.MustCompile(`\n{2,}`)
	bulletRE     = regexp.MustCompile(`^[-*]\s`)
	boldRE       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
)

// Body renders a section's freeform content for the given target. Markdown
// is a passthrough (the content already is markdown). For HTML/XHTML every
// literal character is escaped before bold markup is substituted; the bold
// regex injects raw tags, so the order matters. An unclosed ** span fails
// the regex and passes through literally.
func Body(content string, target Target) string {
	if target == TargetMarkdown {
		return strings.TrimSpace(content)
	}

	escape := escaperFor(target)
	var blocks []string

	for _, block := range blockSplitRE.Split(content, -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		if rest, ok := strings.CutPrefix(block, "### "); ok {
			blocks = append(blocks, "<h3>"+escape(rest)+"</h3>")
			continue
		}

		if lines, ok := bulletLines(block); ok {
			var sb strings.Builder
			sb.WriteString("<ul>")
			for _, line := range lines {
				sb.WriteString("<li>" + inline(line, escape) + "</li>")
			}
			sb.WriteString("</ul>")
			blocks = append(blocks, sb.String())
			continue
		}

		blocks = append(blocks, "<p>"+inline(block, escape)+"</p>")
	}

	return strings.Join(blocks, "\n")
}

// bulletLines returns the stripped item texts when every non-blank line of
// the block is a bullet. A block with mixed bullet and prose lines is not a
// list and falls through to paragraph handling.
func bulletLines(block string) ([]string, bool) {
	var items []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !bulletRE.MatchString(line) {
			return nil, false
		}
		items = append(items, strings.TrimSpace(bulletRE.ReplaceAllString(line, "")))
	}
	return items, len(items) > 0
}

// inline escapes text and then substitutes **spans** with <strong> tags.
func inline(s string, escape func(string) string) string {
	return boldRE.ReplaceAllString(escape(s), "<strong>$1</strong>")
}

func escaperFor(target Target) func(string) string {
	if target == TargetXHTML {
		return EscapeXML
	}
	return EscapeHTML
}
