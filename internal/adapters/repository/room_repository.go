package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/matchmyvibe/roommate-service/internal/core/domain"
	"github.com/matchmyvibe/roommate-service/internal/core/ports"
)

// ListRooms loads every room and its occupants in two queries.
func (r *PostgresRepository) ListRooms(ctx context.Context) ([]domain.Room, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, capacity, room_type, floor, has_window FROM rooms ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []domain.Room
	index := make(map[string]int)
	for rows.Next() {
		var (
			room   domain.Room
			floor  string
			window sql.NullBool
		)
		if err := rows.Scan(&room.ID, &room.Capacity, &room.RoomType, &floor, &window); err != nil {
			return nil, err
		}
		room.Floor = domain.Floor(floor)
		if window.Valid {
			room.HasWindow = &window.Bool
		}
		index[room.ID] = len(rooms)
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	occRows, err := r.db.QueryContext(ctx,
		`SELECT room_id, occupant_id, name, dob, traits FROM room_occupants ORDER BY seat`)
	if err != nil {
		return nil, fmt.Errorf("list occupants: %w", err)
	}
	defer occRows.Close()

	for occRows.Next() {
		var (
			roomID string
			occ    domain.Occupant
			traits []byte
		)
		if err := occRows.Scan(&roomID, &occ.ID, &occ.Name, &occ.DOB, &traits); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(traits, &occ.Traits); err != nil {
			return nil, fmt.Errorf("decode traits of occupant %s: %w", occ.ID, err)
		}
		if i, ok := index[roomID]; ok {
			rooms[i].Occupants = append(rooms[i].Occupants, occ)
		}
	}
	return rooms, occRows.Err()
}

func (r *PostgresRepository) SeedRoom(ctx context.Context, room domain.Room) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO rooms (id, capacity, room_type, floor, has_window)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (id) DO UPDATE SET
			     capacity = EXCLUDED.capacity,
			     room_type = EXCLUDED.room_type,
			     floor = EXCLUDED.floor,
			     has_window = EXCLUDED.has_window`,
			room.ID,
			room.Capacity,
			room.RoomType,
			string(room.Floor),
			nullBool(room.HasWindow),
		)
		if err != nil {
			return fmt.Errorf("upsert room %s: %w", room.ID, err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM room_occupants WHERE room_id = $1`, room.ID); err != nil {
			return fmt.Errorf("clear occupants of %s: %w", room.ID, err)
		}

		for _, occ := range room.Occupants {
			if err := upsertOccupant(ctx, tx, room.ID, occ); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PostgresRepository) AddOccupant(ctx context.Context, roomID string, occ domain.Occupant) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		var capacity int
		err := tx.QueryRowContext(ctx,
			`SELECT capacity FROM rooms WHERE id = $1 FOR UPDATE`, roomID).Scan(&capacity)
		if err != nil {
			return notFound(err)
		}

		var others int
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM room_occupants WHERE room_id = $1 AND occupant_id <> $2`,
			roomID, occ.ID,
		).Scan(&others)
		if err != nil {
			return err
		}
		if others >= capacity {
			return ports.ErrRoomFull
		}

		return upsertOccupant(ctx, tx, roomID, occ)
	})
}

func upsertOccupant(ctx context.Context, tx *sql.Tx, roomID string, occ domain.Occupant) error {
	traits, err := json.Marshal(occ.Traits)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO room_occupants (occupant_id, room_id, name, dob, traits)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (occupant_id) DO UPDATE SET
		     room_id = EXCLUDED.room_id,
		     name = EXCLUDED.name,
		     dob = EXCLUDED.dob,
		     traits = EXCLUDED.traits`,
		occ.ID,
		roomID,
		occ.Name,
		occ.DOB,
		traits,
	)
	if err != nil {
		return fmt.Errorf("upsert occupant %s: %w", occ.ID, err)
	}
	return nil
}

func nullBool(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}
