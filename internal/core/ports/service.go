package ports

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/matchmyvibe/roommate-service/internal/core/domain"
	"github.com/matchmyvibe/roommate-service/internal/core/matching"
)

type SignupInput struct {
	Name     string
	Email    string
	Password string
	DOB      string
}

// Session is an issued access token.
type Session struct {
	Token     string    `json:"token"`
	TokenID   string    `json:"-"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type AccountService interface {
	Signup(ctx context.Context, in SignupInput) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Logout(ctx context.Context, userID, tokenID string, expiresAt time.Time) error
	Profile(ctx context.Context, userID string) (*domain.Profile, error)
	UpdatePreferences(ctx context.Context, userID string, prefs domain.Logistics) (*domain.Profile, error)
}

type RankingService interface {
	RankedMatches(ctx context.Context, userID string) ([]matching.RankedRoom, error)
}

type SwipeStatus string

const (
	StatusRecorded       SwipeStatus = "recorded"
	StatusSwipeOnly      SwipeStatus = "swipe_only"
	StatusMatched        SwipeStatus = "matched"
	StatusAlreadyMatched SwipeStatus = "already_matched"
	StatusNoRoom         SwipeStatus = "no_room"
)

type SwipeRequest struct {
	Target    string           `json:"target"`
	Direction domain.Direction `json:"direction"`
}

type SwipeResult struct {
	Status SwipeStatus   `json:"status"`
	Target string        `json:"target"`
	Match  *domain.Match `json:"match,omitempty"`
	// Compatibility is the profile to profile score of a mutual like.
	Compatibility *matching.Score `json:"compatibility,omitempty"`
}

type MatchService interface {
	Swipe(ctx context.Context, actorID string, req SwipeRequest) (*SwipeResult, error)
}

type ExtractedVariable struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// UnmarshalJSON accepts any JSON value. Non-string values are kept as their
// compact JSON text and null becomes the empty string.
func (v *ExtractedVariable) UnmarshalJSON(data []byte) error {
	var raw struct {
		Key   string          `json:"key"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	v.Key = raw.Key
	value := bytes.TrimSpace(raw.Value)
	switch {
	case len(value) == 0 || bytes.Equal(value, []byte("null")):
		v.Value = ""
	case value[0] == '"':
		return json.Unmarshal(value, &v.Value)
	default:
		var buf bytes.Buffer
		if err := json.Compact(&buf, value); err != nil {
			return err
		}
		v.Value = buf.String()
	}
	return nil
}

type TraitService interface {
	// ReceiveTraits merges vars into the traits of the current webhook user.
	ReceiveTraits(ctx context.Context, vars []ExtractedVariable) (string, domain.Traits, error)
}
