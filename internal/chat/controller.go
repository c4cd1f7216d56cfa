// Package chat owns the client-side conversation state: message
// history, the single pending image slot, and the in-flight gate.
package chat

import (
	"encoding/base64"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"

	apierrors "github.com/tmaia/bugreport/internal/errors"
	"github.com/tmaia/bugreport/internal/models"
)

// Controller is the single owner of all mutable client state. Every UI
// front-end (one per session/tab) gets its own instance, so concurrent
// sessions never interact.
type Controller struct {
	mu       sync.Mutex
	history  []models.ConversationEntry
	pending  *models.PendingImage
	awaiting bool
}

// NewController creates an empty controller
func NewController() *Controller {
	return &Controller{}
}

// AttachImage validates and attaches raw image bytes, replacing any
// previously pending image. The MIME type must begin with "image/" and
// the data must not exceed the 10 MiB limit.
func (c *Controller) AttachImage(fileName, mimeType string, data []byte) error {
	if !strings.HasPrefix(mimeType, "image/") {
		return apierrors.NewInvalidFileTypeError(mimeType)
	}
	if int64(len(data)) > models.MaxImageBytes {
		return apierrors.NewFileTooLargeError(int64(len(data)), models.MaxImageBytes)
	}

	dataURI := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = &models.PendingImage{
		FileName: fileName,
		MIMEType: mimeType,
		DataURI:  dataURI,
	}
	return nil
}

// AttachImageFile attaches an image from disk. The size is checked
// before reading so an oversized file is rejected without loading it.
func (c *Controller) AttachImageFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return apierrors.NewReadError(path, err)
	}
	if info.Size() > models.MaxImageBytes {
		return apierrors.NewFileTooLargeError(info.Size(), models.MaxImageBytes)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if !strings.HasPrefix(mimeType, "image/") {
		return apierrors.NewInvalidFileTypeError(mimeType)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return apierrors.NewReadError(path, err)
	}

	return c.AttachImage(filepath.Base(path), mimeType, data)
}

// RemoveImage clears the pending image. Idempotent.
func (c *Controller) RemoveImage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = nil
}

// PendingImage returns the pending image, or nil
func (c *Controller) PendingImage() *models.PendingImage {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return nil
	}
	img := *c.pending
	return &img
}

// BeginSend starts a send cycle. When both the trimmed text and the
// pending image are empty, or a request is already in flight, it
// reports ok=false and changes nothing. Otherwise it appends the user
// entry, consumes the pending image, raises the in-flight gate, and
// returns the history snapshot to post to the proxy.
func (c *Controller) BeginSend(text string) (history []models.ConversationEntry, ok bool) {
	trimmed := strings.TrimSpace(text)

	c.mu.Lock()
	defer c.mu.Unlock()

	if trimmed == "" && c.pending == nil {
		return nil, false
	}
	if c.awaiting {
		return nil, false
	}

	var parts []models.ContentPart
	if trimmed != "" {
		parts = append(parts, models.NewTextPart(trimmed))
	}
	if c.pending != nil {
		parts = append(parts, models.NewImagePart(c.pending.DataURI))
	}

	c.history = append(c.history, models.ConversationEntry{
		Role:    models.RoleUser,
		Content: parts,
	})
	c.pending = nil
	c.awaiting = true

	return c.historySnapshotLocked(), true
}

// CompleteSend records the assistant reply and lowers the in-flight gate
func (c *Controller) CompleteSend(reply string) models.ConversationEntry {
	entry := models.ConversationEntry{
		Role:    models.RoleAssistant,
		Content: []models.ContentPart{models.NewTextPart(reply)},
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append(c.history, entry)
	c.awaiting = false
	return entry
}

// FailSend lowers the in-flight gate without touching the history.
// The optimistic user entry from BeginSend stays, so a later retry
// resends the same conversation.
func (c *Controller) FailSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.awaiting = false
}

// Reset clears the conversation and the pending image unconditionally
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = nil
	c.pending = nil
}

// Awaiting reports whether a request is in flight
func (c *Controller) Awaiting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.awaiting
}

// History returns a copy of the conversation so far. Growth is
// unbounded; nothing truncates or summarizes old turns.
func (c *Controller) History() []models.ConversationEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.historySnapshotLocked()
}

// Len returns the number of entries in the conversation
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.history)
}

func (c *Controller) historySnapshotLocked() []models.ConversationEntry {
	snapshot := make([]models.ConversationEntry, len(c.history))
	copy(snapshot, c.history)
	return snapshot
}
