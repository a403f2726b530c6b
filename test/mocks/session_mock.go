package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/matchmyvibe/roommate-service/internal/core/ports"
)

// MockSessionStore implements ports.SessionStore in memory.
type MockSessionStore struct {
	mu sync.RWMutex

	currentUser string
	revoked     map[string]time.Time

	// Error injection
	SetCurrentUserError error
	CurrentUserError    error
	RevokeError         error
	IsRevokedError      error
}

var _ ports.SessionStore = (*MockSessionStore)(nil)

func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{revoked: make(map[string]time.Time)}
}

func (m *MockSessionStore) SetCurrentUser(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetCurrentUserError != nil {
		return m.SetCurrentUserError
	}
	m.currentUser = userID
	return nil
}

func (m *MockSessionStore) CurrentUser(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.CurrentUserError != nil {
		return "", m.CurrentUserError
	}
	if m.currentUser == "" {
		return "", ports.ErrNoCurrentUser
	}
	return m.currentUser, nil
}

func (m *MockSessionStore) ClearCurrentUser(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.currentUser == userID {
		m.currentUser = ""
	}
	return nil
}

func (m *MockSessionStore) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RevokeError != nil {
		return m.RevokeError
	}
	m.revoked[tokenID] = time.Now().Add(ttl)
	return nil
}

func (m *MockSessionStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.IsRevokedError != nil {
		return false, m.IsRevokedError
	}
	expiresAt, ok := m.revoked[tokenID]
	return ok && time.Now().Before(expiresAt), nil
}

// Current returns the current webhook user without error handling.
func (m *MockSessionStore) Current() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentUser
}
