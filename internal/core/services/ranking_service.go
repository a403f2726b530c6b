package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/matchmyvibe/roommate-service/internal/core/domain"
	"github.com/matchmyvibe/roommate-service/internal/core/matching"
	"github.com/matchmyvibe/roommate-service/internal/core/ports"
	"github.com/matchmyvibe/roommate-service/internal/logger"
)

type RankingService struct {
	profiles ports.ProfileRepository
	rooms    ports.RoomRepository
	swipes   ports.SwipeRepository
	engine   *matching.Engine
	metrics  ports.Metrics
	logger   *zap.Logger
}

var _ ports.RankingService = (*RankingService)(nil)

func NewRankingService(
	profiles ports.ProfileRepository,
	rooms ports.RoomRepository,
	swipes ports.SwipeRepository,
	engine *matching.Engine,
	metrics ports.Metrics,
	log *zap.Logger,
) *RankingService {
	log = logger.OrNop(log)
	if engine == nil {
		engine = matching.NewEngine(matching.Options{}, log)
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &RankingService{
		profiles: profiles,
		rooms:    rooms,
		swipes:   swipes,
		engine:   engine,
		metrics:  metrics,
		logger:   log,
	}
}

// RankedMatches ranks the rooms the user has not swiped on yet.
func (s *RankingService) RankedMatches(ctx context.Context, userID string) ([]matching.RankedRoom, error) {
	profile, err := s.profiles.FindProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen, err := s.swipes.GetSwipes(ctx, userID)
	if err != nil {
		return nil, err
	}

	rooms, err := s.rooms.ListRooms(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ranked := s.engine.Rank(*profile, unseenRooms(rooms, seen, userID))
	s.metrics.ObserveRanking(len(ranked), time.Since(start))

	s.logger.Debug("ranked rooms",
		zap.String(logger.FieldUserID, userID),
		zap.Int("candidates", len(ranked)),
	)
	return ranked, nil
}

// unseenRooms also skips the room the caller already sits in, which would
// otherwise be scored against the caller's own traits.
func unseenRooms(rooms []domain.Room, seen domain.SwipeRecord, userID string) []domain.Room {
	available := make([]domain.Room, 0, len(rooms))
	for _, room := range rooms {
		if !seen.Seen(room.ID) && !room.HasOccupant(userID) {
			available = append(available, room)
		}
	}
	return available
}
