// Package mocks provides in-memory implementations of the port interfaces
// for service and handler tests.
package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/matchmyvibe/roommate-service/internal/core/domain"
	"github.com/matchmyvibe/roommate-service/internal/core/ports"
)

// MockStore implements every repository port in memory. Match confirmation
// holds a per room lock like the row lock of the Postgres adapter.
type MockStore struct {
	mu sync.RWMutex

	profiles  map[string]*domain.Profile
	rooms     map[string]*domain.Room
	roomOrder []string
	swipes    map[string]*domain.SwipeRecord
	matches   map[string]*domain.Match
	events    []ports.MatchConfirmedEvent

	locksMu   sync.Mutex
	roomLocks map[string]*sync.Mutex

	// Call tracking for verification
	ConfirmMatchCalls []domain.MatchConfirmation
	RecordSwipeCalls  int

	// Error injection for testing error scenarios
	CreateProfileError error
	FindProfileError   error
	MergeTraitsError   error
	ListRoomsError     error
	RecordSwipeError   error
	GetSwipesError     error
	FindMatchError     error
	ConfirmMatchError  error
}

var (
	_ ports.ProfileRepository = (*MockStore)(nil)
	_ ports.RoomRepository    = (*MockStore)(nil)
	_ ports.SwipeRepository   = (*MockStore)(nil)
	_ ports.MatchRepository   = (*MockStore)(nil)
)

func NewMockStore() *MockStore {
	return &MockStore{
		profiles:  make(map[string]*domain.Profile),
		rooms:     make(map[string]*domain.Room),
		swipes:    make(map[string]*domain.SwipeRecord),
		matches:   make(map[string]*domain.Match),
		roomLocks: make(map[string]*sync.Mutex),
	}
}

// SeedProfile adds a profile for test setup.
func (m *MockStore) SeedProfile(p domain.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := copyProfile(p)
	m.profiles[p.ID] = &cp
}

// SeedSwipe records a swipe for test setup.
func (m *MockStore) SeedSwipe(userID, targetID string, direction domain.Direction) {
	_, _ = m.RecordSwipe(context.Background(), userID, targetID, direction)
}

func (m *MockStore) CreateProfile(ctx context.Context, p domain.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateProfileError != nil {
		return m.CreateProfileError
	}
	if _, ok := m.profiles[p.ID]; ok {
		return ports.ErrEmailTaken
	}
	cp := copyProfile(p)
	m.profiles[p.ID] = &cp
	return nil
}

func (m *MockStore) FindProfile(ctx context.Context, id string) (*domain.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.FindProfileError != nil {
		return nil, m.FindProfileError
	}
	p, ok := m.profiles[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	cp := copyProfile(*p)
	return &cp, nil
}

func (m *MockStore) MergeTraits(ctx context.Context, id string, traits domain.Traits) (domain.Traits, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.MergeTraitsError != nil {
		return domain.Traits{}, m.MergeTraitsError
	}
	p, ok := m.profiles[id]
	if !ok {
		return domain.Traits{}, ports.ErrNotFound
	}
	p.Traits.Merge(traits)
	return domain.NewTraits(p.Traits.Flat()), nil
}

func (m *MockStore) UpdateRoomPreferences(ctx context.Context, id string, prefs domain.Logistics) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[id]
	if !ok {
		return ports.ErrNotFound
	}
	p.RoomPreferences = prefs
	return nil
}

func (m *MockStore) ListRooms(ctx context.Context) ([]domain.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.ListRoomsError != nil {
		return nil, m.ListRoomsError
	}
	rooms := make([]domain.Room, 0, len(m.roomOrder))
	for _, id := range m.roomOrder {
		rooms = append(rooms, copyRoom(*m.rooms[id]))
	}
	return rooms, nil
}

func (m *MockStore) SeedRoom(ctx context.Context, room domain.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rooms[room.ID]; !ok {
		m.roomOrder = append(m.roomOrder, room.ID)
	}
	cp := copyRoom(room)
	m.rooms[room.ID] = &cp
	return nil
}

func (m *MockStore) AddOccupant(ctx context.Context, roomID string, occ domain.Occupant) error {
	lock := m.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.rooms[roomID]
	if !ok {
		return ports.ErrNotFound
	}
	if !room.HasOccupant(occ.ID) && room.Full() {
		return ports.ErrRoomFull
	}
	for _, r := range m.rooms {
		r.Occupants = withoutOccupants(r.Occupants, occ.ID, occ.ID)
	}
	room.Occupants = append(room.Occupants, occ)
	return nil
}

func (m *MockStore) RecordSwipe(ctx context.Context, userID, targetID string, direction domain.Direction) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RecordSwipeCalls++
	if m.RecordSwipeError != nil {
		return false, m.RecordSwipeError
	}
	record, ok := m.swipes[userID]
	if !ok {
		record = &domain.SwipeRecord{}
		m.swipes[userID] = record
	}
	return record.Add(targetID, direction), nil
}

func (m *MockStore) GetSwipes(ctx context.Context, userID string) (domain.SwipeRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.GetSwipesError != nil {
		return domain.SwipeRecord{}, m.GetSwipesError
	}
	record, ok := m.swipes[userID]
	if !ok {
		return domain.SwipeRecord{}, nil
	}
	return domain.SwipeRecord{
		Liked:    append([]string(nil), record.Liked...),
		Disliked: append([]string(nil), record.Disliked...),
	}, nil
}

func (m *MockStore) FindMatch(ctx context.Context, pairKey string) (*domain.Match, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.FindMatchError != nil {
		return nil, m.FindMatchError
	}
	match, ok := m.matches[pairKey]
	if !ok {
		return nil, ports.ErrNotFound
	}
	cp := *match
	return &cp, nil
}

func (m *MockStore) ConfirmMatch(ctx context.Context, c domain.MatchConfirmation) (*domain.Match, error) {
	lock := m.roomLock(c.RoomID)
	lock.Lock()
	defer lock.Unlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.ConfirmMatchCalls = append(m.ConfirmMatchCalls, c)
	if m.ConfirmMatchError != nil {
		return nil, m.ConfirmMatchError
	}

	room, ok := m.rooms[c.RoomID]
	if !ok {
		return nil, ports.ErrNotFound
	}

	others := 0
	for _, o := range room.Occupants {
		if o.ID != c.ActorID && o.ID != c.TargetID {
			others++
		}
	}
	if others+2 > room.Capacity {
		return nil, ports.ErrRoomFull
	}

	pair := c.PairKey()
	if _, ok := m.matches[pair]; ok {
		return nil, ports.ErrAlreadyMatched
	}

	userA, userB := c.Users()
	for _, id := range []string{userA, userB} {
		if _, ok := m.profiles[id]; !ok {
			return nil, ports.ErrNotFound
		}
	}

	for _, r := range m.rooms {
		r.Occupants = withoutOccupants(r.Occupants, userA, userB)
	}
	roomID := c.RoomID
	for _, id := range []string{userA, userB} {
		p := m.profiles[id]
		p.AssignedRoom = &roomID
		room.Occupants = append(room.Occupants, p.AsOccupant())
	}

	match := &domain.Match{
		PairKey:   pair,
		UserA:     userA,
		UserB:     userB,
		RoomID:    c.RoomID,
		Score:     c.Score,
		CreatedAt: time.Now().UTC(),
	}
	m.matches[pair] = match
	m.events = append(m.events, ports.MatchConfirmedEvent{
		PairKey:     pair,
		UserA:       userA,
		UserB:       userB,
		RoomID:      c.RoomID,
		Score:       c.Score,
		ConfirmedAt: match.CreatedAt,
	})

	cp := *match
	return &cp, nil
}

// Room returns a copy of a stored room.
func (m *MockStore) Room(id string) (domain.Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	if !ok {
		return domain.Room{}, false
	}
	return copyRoom(*r), true
}

// MatchCount returns the number of stored matches.
func (m *MockStore) MatchCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.matches)
}

// Events returns the match.confirmed events staged by ConfirmMatch.
func (m *MockStore) Events() []ports.MatchConfirmedEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	events := make([]ports.MatchConfirmedEvent, len(m.events))
	copy(events, m.events)
	return events
}

func (m *MockStore) roomLock(id string) *sync.Mutex {
	m.locksMu.Lock()
	defer m.locksMu.Unlock()
	lock, ok := m.roomLocks[id]
	if !ok {
		lock = &sync.Mutex{}
		m.roomLocks[id] = lock
	}
	return lock
}

func withoutOccupants(occupants []domain.Occupant, a, b string) []domain.Occupant {
	kept := occupants[:0]
	for _, o := range occupants {
		if o.ID != a && o.ID != b {
			kept = append(kept, o)
		}
	}
	return kept
}

func copyProfile(p domain.Profile) domain.Profile {
	p.Traits = domain.NewTraits(p.Traits.Flat())
	if p.AssignedRoom != nil {
		room := *p.AssignedRoom
		p.AssignedRoom = &room
	}
	return p
}

func copyRoom(r domain.Room) domain.Room {
	occupants := make([]domain.Occupant, len(r.Occupants))
	for i, o := range r.Occupants {
		o.Traits = domain.NewTraits(o.Traits.Flat())
		occupants[i] = o
	}
	r.Occupants = occupants
	return r
}
