package ports

import (
	"context"
	"time"
)

const (
	EventMatchConfirmed = "match.confirmed"
	// OutboxChannel is the Postgres NOTIFY channel carrying new outbox event ids.
	OutboxChannel = "outbox_channel"
)

type MatchConfirmedEvent struct {
	PairKey     string    `json:"pair"`
	UserA       string    `json:"user_a"`
	UserB       string    `json:"user_b"`
	RoomID      string    `json:"room_id"`
	Score       float64   `json:"score"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

type MatchEventPublisher interface {
	PublishMatchConfirmed(ctx context.Context, evt MatchConfirmedEvent) error
}
