package chat

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	apierrors "github.com/tmaia/bugreport/internal/errors"
	"github.com/tmaia/bugreport/internal/models"
)

func TestBeginSend_EmptyIsNoOp(t *testing.T) {
	c := NewController()

	for _, input := range []string{"", "   ", "\n\t "} {
		if _, ok := c.BeginSend(input); ok {
			t.Errorf("BeginSend(%q) with no image should be a no-op", input)
		}
	}
	if c.Len() != 0 {
		t.Errorf("history length = %d, want 0", c.Len())
	}
	if c.Awaiting() {
		t.Error("Awaiting() = true after no-op sends")
	}
}

func TestBeginSend_AppendsUserEntryBeforeCall(t *testing.T) {
	c := NewController()

	history, ok := c.BeginSend("button is broken")
	if !ok {
		t.Fatal("BeginSend() = false, want true")
	}
	if len(history) != 1 {
		t.Fatalf("snapshot length = %d, want 1", len(history))
	}
	entry := history[0]
	if entry.Role != models.RoleUser {
		t.Errorf("role = %s, want user", entry.Role)
	}
	if entry.Text() != "button is broken" {
		t.Errorf("text = %q", entry.Text())
	}
	if !c.Awaiting() {
		t.Error("Awaiting() = false after BeginSend")
	}
}

func TestBeginSend_GatedWhileAwaiting(t *testing.T) {
	c := NewController()

	if _, ok := c.BeginSend("first"); !ok {
		t.Fatal("first BeginSend() failed")
	}
	if _, ok := c.BeginSend("second"); ok {
		t.Error("BeginSend() while awaiting should be dropped")
	}
	if c.Len() != 1 {
		t.Errorf("history length = %d, want 1 (second send must not append)", c.Len())
	}
}

func TestCompleteSend_AppendsAssistantAndLowersGate(t *testing.T) {
	c := NewController()
	c.BeginSend("button is broken")

	entry := c.CompleteSend("Summary: the button is broken")
	if entry.Role != models.RoleAssistant {
		t.Errorf("role = %s, want assistant", entry.Role)
	}
	if c.Len() != 2 {
		t.Errorf("history length = %d, want 2", c.Len())
	}
	if c.Awaiting() {
		t.Error("Awaiting() = true after CompleteSend")
	}

	// A new send is possible again
	if _, ok := c.BeginSend("another issue"); !ok {
		t.Error("BeginSend() after completion should succeed")
	}
}

func TestFailSend_KeepsUserEntryLowersGate(t *testing.T) {
	c := NewController()
	c.BeginSend("button is broken")

	c.FailSend()
	if c.Len() != 1 {
		t.Errorf("history length = %d, want 1 (failure must not append)", c.Len())
	}
	if c.Awaiting() {
		t.Error("Awaiting() = true after FailSend")
	}
}

func TestBeginSend_ImageOnly(t *testing.T) {
	c := NewController()
	if err := c.AttachImage("shot.png", "image/png", []byte("fakepng")); err != nil {
		t.Fatalf("AttachImage() returned error: %v", err)
	}

	history, ok := c.BeginSend("   ")
	if !ok {
		t.Fatal("BeginSend() with pending image should proceed")
	}
	entry := history[0]
	if len(entry.Content) != 1 || entry.Content[0].Type != models.PartTypeImage {
		t.Errorf("expected a single image part, got %+v", entry.Content)
	}
	if c.PendingImage() != nil {
		t.Error("pending image should be consumed by send")
	}
}

func TestBeginSend_TextAndImageParts(t *testing.T) {
	c := NewController()
	if err := c.AttachImage("shot.png", "image/png", []byte("fakepng")); err != nil {
		t.Fatalf("AttachImage() returned error: %v", err)
	}

	history, _ := c.BeginSend("  button is broken  ")
	entry := history[0]
	if len(entry.Content) != 2 {
		t.Fatalf("part count = %d, want 2", len(entry.Content))
	}
	if entry.Content[0].Type != models.PartTypeText || entry.Content[0].Text != "button is broken" {
		t.Errorf("first part = %+v, want trimmed text", entry.Content[0])
	}
	if entry.Content[1].Type != models.PartTypeImage {
		t.Errorf("second part = %+v, want image", entry.Content[1])
	}
}

func TestAttachImage_RejectsNonImage(t *testing.T) {
	c := NewController()

	err := c.AttachImage("report.pdf", "application/pdf", []byte("%PDF"))
	if err == nil {
		t.Fatal("Expected error for non-image MIME type")
	}
	if !apierrors.IsAttachError(err) {
		t.Errorf("Expected attach error, got %T", err)
	}
	if c.PendingImage() != nil {
		t.Error("rejected file must not populate the pending image")
	}
}

func TestAttachImage_RejectsOversize(t *testing.T) {
	c := NewController()

	big := bytes.Repeat([]byte("a"), int(models.MaxImageBytes)+1)
	err := c.AttachImage("huge.png", "image/png", big)
	if err == nil {
		t.Fatal("Expected error for oversized image")
	}
	if c.PendingImage() != nil {
		t.Error("rejected file must not populate the pending image")
	}
}

func TestAttachImage_AcceptsBoundarySize(t *testing.T) {
	c := NewController()

	exact := bytes.Repeat([]byte("a"), int(models.MaxImageBytes))
	if err := c.AttachImage("max.png", "image/png", exact); err != nil {
		t.Errorf("AttachImage() at the limit returned error: %v", err)
	}
}

func TestAttachImage_ReplacesPrevious(t *testing.T) {
	c := NewController()

	_ = c.AttachImage("first.png", "image/png", []byte("one"))
	_ = c.AttachImage("second.jpg", "image/jpeg", []byte("two"))

	img := c.PendingImage()
	if img == nil {
		t.Fatal("PendingImage() = nil")
	}
	if img.FileName != "second.jpg" || img.MIMEType != "image/jpeg" {
		t.Errorf("pending image = %+v, want the replacement", img)
	}
}

func TestAttachImage_DataURIEncoding(t *testing.T) {
	c := NewController()

	_ = c.AttachImage("shot.png", "image/png", []byte("hi"))
	img := c.PendingImage()
	if img.DataURI != "data:image/png;base64,aGk=" {
		t.Errorf("DataURI = %q", img.DataURI)
	}
}

func TestAttachImageFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "shot.png")
	if err := os.WriteFile(path, []byte("fakepng"), 0o600); err != nil {
		t.Fatal(err)
	}

	c := NewController()
	if err := c.AttachImageFile(path); err != nil {
		t.Fatalf("AttachImageFile() returned error: %v", err)
	}
	img := c.PendingImage()
	if img == nil || img.FileName != "shot.png" || img.MIMEType != "image/png" {
		t.Errorf("pending image = %+v", img)
	}
}

func TestAttachImageFile_RejectsByExtension(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o600); err != nil {
		t.Fatal(err)
	}

	c := NewController()
	if err := c.AttachImageFile(path); err == nil {
		t.Error("Expected error for non-image extension")
	}
}

func TestAttachImageFile_MissingFile(t *testing.T) {
	c := NewController()
	err := c.AttachImageFile(filepath.Join(t.TempDir(), "nope.png"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if !apierrors.IsAttachError(err) {
		t.Errorf("Expected attach error, got %T", err)
	}
}

func TestRemoveImage_Idempotent(t *testing.T) {
	c := NewController()

	c.RemoveImage() // nothing attached yet
	_ = c.AttachImage("shot.png", "image/png", []byte("x"))
	c.RemoveImage()
	c.RemoveImage()

	if c.PendingImage() != nil {
		t.Error("PendingImage() != nil after removal")
	}
}

func TestReset_ClearsEverything(t *testing.T) {
	c := NewController()
	c.BeginSend("first")
	c.CompleteSend("Summary: ...")
	_ = c.AttachImage("shot.png", "image/png", []byte("x"))

	c.Reset()

	if c.Len() != 0 {
		t.Errorf("history length = %d, want 0", c.Len())
	}
	if c.PendingImage() != nil {
		t.Error("pending image should be cleared by reset")
	}
}

func TestHistory_ReturnsCopy(t *testing.T) {
	c := NewController()
	c.BeginSend("first")

	h := c.History()
	h[0].Role = "tampered"

	if c.History()[0].Role != models.RoleUser {
		t.Error("History() must return a copy, not the backing slice")
	}
}
