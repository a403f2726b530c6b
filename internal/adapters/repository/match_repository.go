package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/matchmyvibe/roommate-service/internal/core/domain"
	"github.com/matchmyvibe/roommate-service/internal/core/ports"
	"github.com/matchmyvibe/roommate-service/internal/logger"
)

func (r *PostgresRepository) FindMatch(ctx context.Context, pairKey string) (*domain.Match, error) {
	var m domain.Match
	err := r.db.QueryRowContext(ctx,
		`SELECT pair_key, user_a, user_b, room_id, score, created_at FROM matches WHERE pair_key = $1`,
		pairKey,
	).Scan(&m.PairKey, &m.UserA, &m.UserB, &m.RoomID, &m.Score, &m.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

// ConfirmMatch locks the room row so concurrent confirmations for the same
// room are serialized, then writes the match, the seats, both assignments and
// the outbox event in one transaction.
func (r *PostgresRepository) ConfirmMatch(ctx context.Context, c domain.MatchConfirmation) (*domain.Match, error) {
	userA, userB := c.Users()
	pair := pq.Array([]string{userA, userB})
	match := &domain.Match{
		PairKey:   c.PairKey(),
		UserA:     userA,
		UserB:     userB,
		RoomID:    c.RoomID,
		Score:     c.Score,
		CreatedAt: r.now().UTC(),
	}

	payload, err := json.Marshal(ports.MatchConfirmedEvent{
		PairKey:     match.PairKey,
		UserA:       userA,
		UserB:       userB,
		RoomID:      match.RoomID,
		Score:       match.Score,
		ConfirmedAt: match.CreatedAt,
	})
	if err != nil {
		return nil, err
	}
	eventID := uuid.NewString()

	err = r.withTx(ctx, func(tx *sql.Tx) error {
		var capacity int
		err := tx.QueryRowContext(ctx,
			`SELECT capacity FROM rooms WHERE id = $1 FOR UPDATE`, c.RoomID).Scan(&capacity)
		if err != nil {
			return notFound(err)
		}

		var others int
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM room_occupants WHERE room_id = $1 AND occupant_id <> ALL($2)`,
			c.RoomID, pair,
		).Scan(&others)
		if err != nil {
			return fmt.Errorf("count occupants: %w", err)
		}
		if others+2 > capacity {
			return ports.ErrRoomFull
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO matches (pair_key, user_a, user_b, room_id, score, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (pair_key) DO NOTHING`,
			match.PairKey, userA, userB, match.RoomID, match.Score, match.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert match: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return ports.ErrAlreadyMatched
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM room_occupants WHERE occupant_id = ANY($1)`, pair); err != nil {
			return fmt.Errorf("vacate previous seats: %w", err)
		}

		res, err = tx.ExecContext(ctx,
			`UPDATE profiles SET assigned_room = $1 WHERE id = ANY($2)`, match.RoomID, pair)
		if err != nil {
			return fmt.Errorf("assign room: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n != 2 {
			return ports.ErrNotFound
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO room_occupants (occupant_id, room_id, name, dob, traits)
			 SELECT id, $1, name, dob, traits FROM profiles WHERE id = ANY($2) ORDER BY id`,
			match.RoomID, pair,
		); err != nil {
			return fmt.Errorf("seat pair: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO outbox_events (id, event_type, payload, created_at) VALUES ($1, $2, $3, $4)`,
			eventID, ports.EventMatchConfirmed, payload, match.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert outbox event: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `SELECT pg_notify($1, $2)`, ports.OutboxChannel, eventID); err != nil {
			return fmt.Errorf("notify outbox: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("match stored",
		zap.String(logger.FieldPair, match.PairKey),
		zap.String(logger.FieldRoomID, match.RoomID),
		zap.String("event_id", eventID),
	)
	return match, nil
}
