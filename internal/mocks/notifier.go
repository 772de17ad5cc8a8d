package mocks

import (
	"context"
	"sync"
)

// SentPush records one SendPush call.
type SentPush struct {
	Title  string
	Intent string
}

// MockNotifier is a mock implementation of Notifier interface
type MockNotifier struct {
	mu           sync.Mutex
	Sent         []SentPush
	SendPushFunc func(ctx context.Context, title, intent string) error
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) SendPush(ctx context.Context, title, intent string) error {
	m.mu.Lock()
	m.Sent = append(m.Sent, SentPush{Title: title, Intent: intent})
	m.mu.Unlock()
	if m.SendPushFunc != nil {
		return m.SendPushFunc(ctx, title, intent)
	}
	return nil
}

// SentCount returns how many pushes were attempted.
func (m *MockNotifier) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}
