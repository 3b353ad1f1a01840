package render

import "strings"

// htmlEscaper escapes the five characters that are unsafe in HTML text and
// attribute content. The numeric form is used for the apostrophe because
// &apos; is not defined in HTML 4 documents.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// xmlEscaper escapes the same set for XML/XHTML output, where &apos; is a
// predefined entity.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeHTML escapes text for insertion into HTML markup.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// EscapeXML escapes text for insertion into XML/XHTML markup.
func EscapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
