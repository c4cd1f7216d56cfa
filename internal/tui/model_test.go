package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tmaia/bugreport/internal/api"
	"github.com/tmaia/bugreport/internal/config"
	"github.com/tmaia/bugreport/internal/models"
)

func newTestModel(client api.Client) Model {
	cfg := config.DefaultConfig()
	cfg.Theme = config.ThemeDark

	m := NewModel(client, cfg)

	// Simulate the initial window size message so the viewport exists
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

func TestSubmit_EmptyInputIsNoOp(t *testing.T) {
	m := newTestModel(&api.MockClient{})

	updated, cmd := m.submit("")
	m = updated.(Model)

	if cmd != nil {
		t.Error("Expected no command for empty input")
	}
	if m.loading {
		t.Error("Empty input must not raise the loading state")
	}
	if m.controller.Len() != 0 {
		t.Errorf("history length = %d, want 0", m.controller.Len())
	}
}

func TestSubmit_AppendsUserEntryAndLoads(t *testing.T) {
	m := newTestModel(&api.MockClient{Response: "**Summary:** broken"})

	updated, cmd := m.submit("the save button is broken")
	m = updated.(Model)

	if cmd == nil {
		t.Fatal("Expected a send command")
	}
	if !m.loading {
		t.Error("Expected loading state after submit")
	}

	history := m.controller.History()
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
	if history[0].Role != models.RoleUser {
		t.Errorf("role = %s, want %s", history[0].Role, models.RoleUser)
	}
	if history[0].Text() != "the save button is broken" {
		t.Errorf("text = %q", history[0].Text())
	}
}

func TestSubmit_ExitWordsQuit(t *testing.T) {
	for _, word := range []string{"exit", "quit", "/exit", "/quit"} {
		m := newTestModel(&api.MockClient{})

		_, cmd := m.submit(word)
		if cmd == nil {
			t.Errorf("submit(%q) returned no command, want quit", word)
		}
	}
}

func TestSendMessage_ReturnsResponseMsg(t *testing.T) {
	mock := &api.MockClient{Response: "Summary: ..."}
	m := newTestModel(mock)

	history, ok := m.controller.BeginSend("hello")
	if !ok {
		t.Fatal("BeginSend() refused")
	}

	msg := m.sendMessage(history)()
	resp, ok := msg.(responseMsg)
	if !ok {
		t.Fatalf("message type = %T, want responseMsg", msg)
	}
	if resp.reply != "Summary: ..." {
		t.Errorf("reply = %q", resp.reply)
	}
	if mock.CallCount() != 1 {
		t.Errorf("client calls = %d, want 1", mock.CallCount())
	}
}

func TestUpdate_ResponseMsgCompletesSend(t *testing.T) {
	m := newTestModel(&api.MockClient{})
	m.controller.BeginSend("hello")
	m.loading = true

	updated, _ := m.Update(responseMsg{reply: "**Summary:** it broke"})
	m = updated.(Model)

	if m.loading {
		t.Error("loading should be cleared after a response")
	}
	if m.controller.Awaiting() {
		t.Error("controller gate should be lowered after a response")
	}

	history := m.controller.History()
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if history[1].Role != models.RoleAssistant {
		t.Errorf("role = %s, want %s", history[1].Role, models.RoleAssistant)
	}
}

func TestUpdate_ErrMsgKeepsUserEntry(t *testing.T) {
	m := newTestModel(&api.MockClient{})
	m.controller.BeginSend("hello")
	m.loading = true

	updated, _ := m.Update(errMsg{err: errSentinel})
	m = updated.(Model)

	if m.loading {
		t.Error("loading should be cleared after an error")
	}
	if m.err == nil {
		t.Error("Expected error to be surfaced")
	}
	if m.controller.Len() != 1 {
		t.Errorf("history length = %d, want 1 (optimistic entry kept)", m.controller.Len())
	}
	if m.controller.Awaiting() {
		t.Error("controller gate should be lowered after an error")
	}
}

var errSentinel = errTest("send failed")

type errTest string

func (e errTest) Error() string { return string(e) }

func TestHandleCommand_Unknown(t *testing.T) {
	m := newTestModel(&api.MockClient{})

	m.handleCommand("/bogus")
	if m.err == nil {
		t.Error("Expected error for unknown command")
	}
}

func TestHandleCommand_AttachRequiresPath(t *testing.T) {
	m := newTestModel(&api.MockClient{})

	m.handleCommand("/attach")
	if m.err == nil {
		t.Error("Expected usage error for /attach without a path")
	}
}

func TestHandleCommand_RemoveAndReset(t *testing.T) {
	m := newTestModel(&api.MockClient{})
	if err := m.controller.AttachImage("s.png", "image/png", []byte("hi")); err != nil {
		t.Fatalf("AttachImage() returned error: %v", err)
	}

	m.handleCommand("/remove")
	if m.controller.PendingImage() != nil {
		t.Error("/remove should clear the pending image")
	}

	m.controller.BeginSend("hello")
	m.controller.CompleteSend("world")

	m.handleCommand("/reset")
	if m.controller.Len() != 0 {
		t.Error("/reset should clear the conversation")
	}
}

func TestToggleTheme_PersistsChoice(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	m := newTestModel(&api.MockClient{})
	before := m.theme.Name

	m.toggleTheme()

	if m.theme.Name == before {
		t.Error("toggleTheme() did not switch the theme")
	}
	if m.cfg.Theme != m.theme.Name {
		t.Errorf("config theme = %q, want %q", m.cfg.Theme, m.theme.Name)
	}

	saved, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if saved.Theme != m.theme.Name {
		t.Errorf("persisted theme = %q, want %q", saved.Theme, m.theme.Name)
	}
}

func TestUpdateViewport_ShowsAttachmentMarker(t *testing.T) {
	m := newTestModel(&api.MockClient{})
	if err := m.controller.AttachImage("s.png", "image/png", []byte("hi")); err != nil {
		t.Fatalf("AttachImage() returned error: %v", err)
	}
	m.controller.BeginSend("see screenshot")
	m.updateViewport()

	view := m.viewport.View()
	if !strings.Contains(view, "(screenshot attached)") {
		t.Error("viewport missing attachment marker")
	}
}

func TestFormatError(t *testing.T) {
	if FormatError(nil) != "" {
		t.Error("FormatError(nil) should be empty")
	}
	if out := FormatError(errSentinel); !strings.Contains(out, "send failed") {
		t.Errorf("FormatError() = %q, want it to contain the message", out)
	}
}
