// Package models contains the wire types shared by the chat client and
// the proxy.
package models

import "strings"

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Content part kinds, matching the completion API wire format
const (
	PartTypeText  = "text"
	PartTypeImage = "image_url"
)

// ImageURL wraps an image reference. The URL is a base64 data URI for
// attached screenshots.
type ImageURL struct {
	URL string `json:"url"`
}

// ContentPart is one typed fragment of a message: either text or an
// image. Exactly one of Text/ImageURL is meaningful depending on Type.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// NewTextPart creates a text content part
func NewTextPart(text string) ContentPart {
	return ContentPart{Type: PartTypeText, Text: text}
}

// NewImagePart creates an image content part from a data URI
func NewImagePart(dataURI string) ContentPart {
	return ContentPart{Type: PartTypeImage, ImageURL: &ImageURL{URL: dataURI}}
}

// ConversationEntry is one turn (user or assistant) in the visible chat.
// Entries are immutable once appended to the history.
type ConversationEntry struct {
	Role    string        `json:"role"`
	Content []ContentPart `json:"content"`
}

// Text returns the concatenated text parts of the entry
func (e ConversationEntry) Text() string {
	var sb strings.Builder
	for _, p := range e.Content {
		if p.Type == PartTypeText {
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}

// HasImage reports whether the entry carries an image part
func (e ConversationEntry) HasImage() bool {
	for _, p := range e.Content {
		if p.Type == PartTypeImage {
			return true
		}
	}
	return false
}

// PendingImage is the single image attached to the input form but not
// yet sent. At most one exists at a time.
type PendingImage struct {
	FileName string
	MIMEType string
	DataURI  string
}

// ChatRequest is the client-to-proxy request body
type ChatRequest struct {
	Messages []ConversationEntry `json:"messages"`
}
