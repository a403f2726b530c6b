package domain

import "time"

const pairSeparator = "|"

// PairKey is the canonical key of an unordered pair of user ids.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + pairSeparator + b
}

type Match struct {
	PairKey   string    `json:"pair"`
	UserA     string    `json:"user_a"`
	UserB     string    `json:"user_b"`
	RoomID    string    `json:"room"`
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// MatchConfirmation is everything needed to persist a mutual match.
type MatchConfirmation struct {
	ActorID  string
	TargetID string
	RoomID   string
	Score    float64
}

func (c MatchConfirmation) PairKey() string {
	return PairKey(c.ActorID, c.TargetID)
}

// Users returns the pair in canonical order.
func (c MatchConfirmation) Users() (string, string) {
	if c.TargetID < c.ActorID {
		return c.TargetID, c.ActorID
	}
	return c.ActorID, c.TargetID
}
