package ports

import (
	"context"
	"time"

	"github.com/matchmyvibe/roommate-service/internal/core/domain"
)

type ProfileRepository interface {
	// CreateProfile returns ErrEmailTaken when the id is already used.
	CreateProfile(ctx context.Context, profile domain.Profile) error
	// FindProfile returns ErrNotFound for unknown ids.
	FindProfile(ctx context.Context, id string) (*domain.Profile, error)
	// MergeTraits overlays traits on the stored map and returns the result.
	MergeTraits(ctx context.Context, id string, traits domain.Traits) (domain.Traits, error)
	UpdateRoomPreferences(ctx context.Context, id string, prefs domain.Logistics) error
}

type RoomRepository interface {
	// ListRooms returns rooms in their seeding order with occupants in seat order.
	ListRooms(ctx context.Context) ([]domain.Room, error)
	// SeedRoom inserts or replaces a room together with its occupants.
	SeedRoom(ctx context.Context, room domain.Room) error
	// AddOccupant seats occ in the room, moving it out of any other room.
	// It returns ErrNotFound for unknown rooms and ErrRoomFull when no seat
	// is left.
	AddOccupant(ctx context.Context, roomID string, occ domain.Occupant) error
}

type SwipeRepository interface {
	// RecordSwipe stores the swipe unless the target was already swiped by
	// user. It reports whether anything was written.
	RecordSwipe(ctx context.Context, userID, targetID string, direction domain.Direction) (bool, error)
	GetSwipes(ctx context.Context, userID string) (domain.SwipeRecord, error)
}

type MatchRepository interface {
	// FindMatch returns ErrNotFound when the pair has no match.
	FindMatch(ctx context.Context, pairKey string) (*domain.Match, error)
	// ConfirmMatch persists the match, both room assignments, the pair as
	// occupants and a match.confirmed event atomically. It returns
	// ErrRoomFull when the room cannot seat the pair and ErrAlreadyMatched
	// when the pair already has a match.
	ConfirmMatch(ctx context.Context, confirmation domain.MatchConfirmation) (*domain.Match, error)
}

// SessionStore keeps the current webhook user and revoked tokens.
type SessionStore interface {
	SetCurrentUser(ctx context.Context, userID string) error
	// CurrentUser returns ErrNoCurrentUser when nobody is logged in.
	CurrentUser(ctx context.Context) (string, error)
	// ClearCurrentUser only clears the session when it belongs to userID.
	ClearCurrentUser(ctx context.Context, userID string) error
	RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
