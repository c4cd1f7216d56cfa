// Package render provides the message formatter and the TUI themes.
//
// The formatter is deliberately minimal: bold spans and line breaks
// only. It is not a markdown engine and must never interpret any other
// markup in model output.
package render

import (
	"html"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var boldSpan = regexp.MustCompile(`\*\*(.+?)\*\*`)

// FormatHTML renders text for HTML output. The input is HTML-escaped
// first so injected markup displays literally, then **bold** spans
// become <strong> and newlines become <br>.
func FormatHTML(text string) string {
	escaped := html.EscapeString(text)
	escaped = boldSpan.ReplaceAllString(escaped, "<strong>$1</strong>")
	return strings.ReplaceAll(escaped, "\n", "<br>")
}

// FormatTerminal renders text for the TUI. **bold** spans are drawn
// with the given style; everything else, markup included, passes
// through literally.
func FormatTerminal(text string, bold lipgloss.Style) string {
	return boldSpan.ReplaceAllStringFunc(text, func(span string) string {
		inner := span[2 : len(span)-2]
		return bold.Render(inner)
	})
}
