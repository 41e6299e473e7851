package display

import "strings"

// Quotes are deliberately left alone: inside element text content they are
// inert, and the native browser text-node serialization this mirrors does not
// touch them either. Only the three characters that can open markup are
// rewritten.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// EscapeHTML converts arbitrary text into HTML-safe markup for element text
// content. Unicode passes through unchanged; the empty string maps to itself.
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}
