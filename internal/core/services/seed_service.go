package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/matchmyvibe/roommate-service/internal/core/domain"
	"github.com/matchmyvibe/roommate-service/internal/core/ports"
	"github.com/matchmyvibe/roommate-service/internal/logger"
)

// SeedService loads the room catalogue and persona fixtures.
type SeedService struct {
	rooms  ports.RoomRepository
	swipes ports.SwipeRepository
	logger *zap.Logger
}

func NewSeedService(rooms ports.RoomRepository, swipes ports.SwipeRepository, log *zap.Logger) *SeedService {
	return &SeedService{rooms: rooms, swipes: swipes, logger: logger.OrNop(log)}
}

type PersonaReport struct {
	Seated  int
	Skipped int
	Swipes  int
}

func DecodeRooms(r io.Reader) ([]domain.Room, error) {
	var rooms []domain.Room
	if err := json.NewDecoder(r).Decode(&rooms); err != nil {
		return nil, fmt.Errorf("decode rooms: %w", err)
	}
	return rooms, nil
}

func DecodePersonas(r io.Reader) ([]domain.Persona, error) {
	var personas []domain.Persona
	if err := json.NewDecoder(r).Decode(&personas); err != nil {
		return nil, fmt.Errorf("decode personas: %w", err)
	}
	return personas, nil
}

// SeedRooms replaces every room in rooms with its listed occupants, in order.
// Occupants without an id get a generated one.
func (s *SeedService) SeedRooms(ctx context.Context, rooms []domain.Room) (int, error) {
	for i, room := range rooms {
		if strings.TrimSpace(room.ID) == "" {
			return i, fmt.Errorf("room %d has no room_id", i)
		}
		for j := range room.Occupants {
			if room.Occupants[j].ID == "" {
				room.Occupants[j].ID = uuid.NewString()
			}
		}
		if err := s.rooms.SeedRoom(ctx, room); err != nil {
			return i, fmt.Errorf("seed room %s: %w", room.ID, err)
		}
		s.logger.Debug("room seeded",
			zap.String(logger.FieldRoomID, room.ID),
			zap.Int("occupants", len(room.Occupants)),
		)
	}
	return len(rooms), nil
}

// SeedPersonas seats personas that name a room and records their likes as
// right swipes. A persona whose room is unknown or full is skipped with a
// warning and its likes are still recorded.
func (s *SeedService) SeedPersonas(ctx context.Context, personas []domain.Persona) (PersonaReport, error) {
	var report PersonaReport
	for _, p := range personas {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		log := logger.WithUser(s.logger, p.ID)

		if p.RoomID != "" {
			err := s.rooms.AddOccupant(ctx, p.RoomID, p.AsOccupant())
			switch {
			case errors.Is(err, ports.ErrRoomFull), errors.Is(err, ports.ErrNotFound):
				log.Warn("persona not seated", zap.String(logger.FieldRoomID, p.RoomID), zap.Error(err))
				report.Skipped++
			case err != nil:
				return report, fmt.Errorf("seat persona %s: %w", p.ID, err)
			default:
				report.Seated++
			}
		}

		for _, target := range p.Likes {
			if target == "" || target == p.ID {
				continue
			}
			written, err := s.swipes.RecordSwipe(ctx, p.ID, target, domain.DirectionRight)
			if err != nil {
				return report, fmt.Errorf("record like of %s: %w", p.ID, err)
			}
			if written {
				report.Swipes++
			}
		}
	}
	return report, nil
}
