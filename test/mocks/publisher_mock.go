package mocks

import (
	"context"
	"sync"

	"github.com/matchmyvibe/roommate-service/internal/core/ports"
)

// MockMatchEventPublisher implements ports.MatchEventPublisher for the outbox
// relay tests.
type MockMatchEventPublisher struct {
	mu sync.RWMutex

	PublishedEvents []ports.MatchConfirmedEvent

	// PublishError is returned by every publish while set.
	PublishError error

	PublishCallCount int
}

var _ ports.MatchEventPublisher = (*MockMatchEventPublisher)(nil)

func NewMockMatchEventPublisher() *MockMatchEventPublisher {
	return &MockMatchEventPublisher{
		PublishedEvents: make([]ports.MatchConfirmedEvent, 0),
	}
}

func (m *MockMatchEventPublisher) PublishMatchConfirmed(ctx context.Context, evt ports.MatchConfirmedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PublishCallCount++

	if m.PublishError != nil {
		return m.PublishError
	}

	m.PublishedEvents = append(m.PublishedEvents, evt)
	return nil
}

// GetPublishedEvents returns a copy of the published events.
func (m *MockMatchEventPublisher) GetPublishedEvents() []ports.MatchConfirmedEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]ports.MatchConfirmedEvent, len(m.PublishedEvents))
	copy(events, m.PublishedEvents)
	return events
}

func (m *MockMatchEventPublisher) GetPublishCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.PublishCallCount
}
