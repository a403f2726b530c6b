package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/matchmyvibe/roommate-service/internal/core/domain"
	"github.com/matchmyvibe/roommate-service/internal/core/ports"
)

func (r *PostgresRepository) CreateProfile(ctx context.Context, p domain.Profile) error {
	traits, err := json.Marshal(p.Traits)
	if err != nil {
		return err
	}
	prefs, err := json.Marshal(p.RoomPreferences)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO profiles (id, name, dob, password_hash, traits, room_preferences, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID,
		p.Name,
		p.DOB,
		p.PasswordHash,
		traits,
		prefs,
		p.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ports.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindProfile(ctx context.Context, id string) (*domain.Profile, error) {
	var (
		p            domain.Profile
		traits       []byte
		prefs        []byte
		assignedRoom sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, dob, password_hash, traits, room_preferences, assigned_room, created_at
		 FROM profiles WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Name, &p.DOB, &p.PasswordHash, &traits, &prefs, &assignedRoom, &p.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}

	if err := json.Unmarshal(traits, &p.Traits); err != nil {
		return nil, fmt.Errorf("decode traits of %s: %w", id, err)
	}
	if err := json.Unmarshal(prefs, &p.RoomPreferences); err != nil {
		return nil, fmt.Errorf("decode room preferences of %s: %w", id, err)
	}
	if assignedRoom.Valid {
		p.AssignedRoom = &assignedRoom.String
	}
	return &p, nil
}

// MergeTraits overlays traits with the jsonb concatenation operator, so
// concurrent webhook calls never lose keys.
func (r *PostgresRepository) MergeTraits(ctx context.Context, id string, traits domain.Traits) (domain.Traits, error) {
	patch, err := json.Marshal(traits)
	if err != nil {
		return domain.Traits{}, err
	}

	var merged []byte
	err = r.db.QueryRowContext(ctx,
		`UPDATE profiles SET traits = traits || $2::jsonb WHERE id = $1 RETURNING traits`,
		id,
		patch,
	).Scan(&merged)
	if err != nil {
		return domain.Traits{}, notFound(err)
	}

	var result domain.Traits
	if err := json.Unmarshal(merged, &result); err != nil {
		return domain.Traits{}, fmt.Errorf("decode traits of %s: %w", id, err)
	}
	return result, nil
}

func (r *PostgresRepository) UpdateRoomPreferences(ctx context.Context, id string, prefs domain.Logistics) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET room_preferences = $2 WHERE id = $1`,
		id,
		data,
	)
	if err != nil {
		return fmt.Errorf("update room preferences: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ports.ErrNotFound
	}
	return nil
}
