package repository

import (
	"context"
	"fmt"

	"github.com/matchmyvibe/roommate-service/internal/core/domain"
)

// RecordSwipe relies on the (user_id, target_id) key: a second swipe on the
// same target is dropped, whatever its direction.
func (r *PostgresRepository) RecordSwipe(ctx context.Context, userID, targetID string, direction domain.Direction) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO swipes (user_id, target_id, direction) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, target_id) DO NOTHING`,
		userID,
		targetID,
		string(direction),
	)
	if err != nil {
		return false, fmt.Errorf("insert swipe: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *PostgresRepository) GetSwipes(ctx context.Context, userID string) (domain.SwipeRecord, error) {
	var record domain.SwipeRecord

	rows, err := r.db.QueryContext(ctx,
		`SELECT target_id, direction FROM swipes WHERE user_id = $1 ORDER BY seq`, userID)
	if err != nil {
		return record, fmt.Errorf("list swipes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var target, direction string
		if err := rows.Scan(&target, &direction); err != nil {
			return record, err
		}
		record.Add(target, domain.Direction(direction))
	}
	return record, rows.Err()
}
