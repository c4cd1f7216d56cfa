package api

import (
	"sync"

	"github.com/tmaia/bugreport/internal/models"
)

// MockClient is a test double implementing Client. It records every
// history passed to Send and replies with the configured response.
type MockClient struct {
	mu sync.Mutex

	// Response is returned from Send when Err is nil
	Response string
	// Err, when set, is returned from Send
	Err error
	// SendFunc, when set, overrides Response/Err entirely
	SendFunc func(history []models.ConversationEntry) (string, error)

	calls [][]models.ConversationEntry
}

// Send implements Client
func (m *MockClient) Send(history []models.ConversationEntry) (string, error) {
	m.mu.Lock()
	snapshot := make([]models.ConversationEntry, len(history))
	copy(snapshot, history)
	m.calls = append(m.calls, snapshot)
	m.mu.Unlock()

	if m.SendFunc != nil {
		return m.SendFunc(history)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// Calls returns the histories passed to Send, in order
func (m *MockClient) Calls() [][]models.ConversationEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]models.ConversationEntry, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times Send was invoked
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
