// Package export writes one-shot transcript files for the current
// session. Nothing is ever read back; this is not session persistence.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tmaia/bugreport/internal/models"
	"github.com/tmaia/bugreport/internal/render"
)

// Format represents the transcript output format
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ToMarkdown renders the conversation as a Markdown document
func ToMarkdown(entries []models.ConversationEntry) string {
	var sb strings.Builder

	sb.WriteString("# Bug Report Conversation\n\n")
	sb.WriteString("**Exported:** ")
	sb.WriteString(time.Now().Format("2006-01-02 15:04:05"))
	sb.WriteString("\n**Messages:** ")
	sb.WriteString(fmt.Sprintf("%d", len(entries)))
	sb.WriteString("\n\n---\n\n")

	for i, entry := range entries {
		role := "User"
		if entry.Role == models.RoleAssistant {
			role = "Assistant"
		}

		sb.WriteString("## ")
		sb.WriteString(role)
		sb.WriteString("\n\n")

		sb.WriteString(entry.Text())
		if entry.HasImage() {
			sb.WriteString("\n\n*(screenshot attached)*")
		}
		sb.WriteString("\n")

		if i < len(entries)-1 {
			sb.WriteString("\n---\n\n")
		}
	}

	return sb.String()
}

// ToHTML renders the conversation as a minimal standalone HTML page.
// Message text goes through the escaping formatter, so model output can
// never inject markup into the page.
func ToHTML(entries []models.ConversationEntry) string {
	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	sb.WriteString("<meta charset=\"utf-8\">\n<title>Bug Report Conversation</title>\n")
	sb.WriteString("</head>\n<body>\n")

	for _, entry := range entries {
		role := "user"
		if entry.Role == models.RoleAssistant {
			role = "assistant"
		}
		sb.WriteString(fmt.Sprintf("<div class=\"message %s\">\n", role))
		sb.WriteString("<p>")
		sb.WriteString(render.FormatHTML(entry.Text()))
		sb.WriteString("</p>\n")
		if entry.HasImage() {
			sb.WriteString("<p><em>(screenshot attached)</em></p>\n")
		}
		sb.WriteString("</div>\n")
	}

	sb.WriteString("</body>\n</html>\n")
	return sb.String()
}

// WriteTranscript writes the transcript to a timestamped file in dir
// and returns its path.
func WriteTranscript(dir string, format Format, entries []models.ConversationEntry) (string, error) {
	var content, ext string
	switch format {
	case FormatHTML:
		content = ToHTML(entries)
		ext = "html"
	case FormatMarkdown:
		content = ToMarkdown(entries)
		ext = "md"
	default:
		return "", fmt.Errorf("unknown export format: %s", format)
	}

	name := fmt.Sprintf("bugreport-%s.%s", time.Now().Format("20060102-150405"), ext)
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("failed to write transcript: %w", err)
	}

	return path, nil
}
