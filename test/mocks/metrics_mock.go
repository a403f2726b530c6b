package mocks

import (
	"sync"
	"time"

	"github.com/matchmyvibe/roommate-service/internal/core/ports"
)

// MockMetrics counts observations by label.
type MockMetrics struct {
	mu sync.Mutex

	Swipes   map[string]int
	Outcomes map[string]int
	Rankings []int
}

var _ ports.Metrics = (*MockMetrics)(nil)

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Swipes:   make(map[string]int),
		Outcomes: make(map[string]int),
	}
}

func (m *MockMetrics) ObserveSwipe(direction string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Swipes[direction]++
}

func (m *MockMetrics) ObserveMatchOutcome(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Outcomes[status]++
}

func (m *MockMetrics) ObserveRanking(rooms int, elapsed time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rankings = append(m.Rankings, rooms)
}

func (m *MockMetrics) Outcome(status string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Outcomes[status]
}
