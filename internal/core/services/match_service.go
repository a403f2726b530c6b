package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/matchmyvibe/roommate-service/internal/core/domain"
	"github.com/matchmyvibe/roommate-service/internal/core/matching"
	"github.com/matchmyvibe/roommate-service/internal/core/ports"
	"github.com/matchmyvibe/roommate-service/internal/logger"
)

// MatchService turns mutual likes into confirmed room assignments.
type MatchService struct {
	profiles ports.ProfileRepository
	rooms    ports.RoomRepository
	swipes   ports.SwipeRepository
	matches  ports.MatchRepository
	engine   *matching.Engine
	metrics  ports.Metrics
	logger   *zap.Logger
}

var _ ports.MatchService = (*MatchService)(nil)

func NewMatchService(
	profiles ports.ProfileRepository,
	rooms ports.RoomRepository,
	swipes ports.SwipeRepository,
	matches ports.MatchRepository,
	engine *matching.Engine,
	metrics ports.Metrics,
	log *zap.Logger,
) *MatchService {
	log = logger.OrNop(log)
	if engine == nil {
		engine = matching.NewEngine(matching.Options{}, log)
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &MatchService{
		profiles: profiles,
		rooms:    rooms,
		swipes:   swipes,
		matches:  matches,
		engine:   engine,
		metrics:  metrics,
		logger:   log,
	}
}

// Swipe records the swipe of actorID on req.Target. A right swipe on someone
// who already liked the actor assigns both to the best room for the actor.
func (s *MatchService) Swipe(ctx context.Context, actorID string, req ports.SwipeRequest) (*ports.SwipeResult, error) {
	target := strings.TrimSpace(req.Target)
	switch {
	case !req.Direction.Valid():
		return nil, ports.ErrInvalidDirection
	case target == "":
		return nil, ports.ErrMissingTarget
	case target == actorID:
		return nil, ports.ErrSelfSwipe
	}

	log := logger.WithUser(s.logger, actorID).With(zap.String("target", target))

	recorded, err := s.swipes.RecordSwipe(ctx, actorID, target, req.Direction)
	if err != nil {
		return nil, fmt.Errorf("record swipe: %w", err)
	}
	if recorded {
		s.metrics.ObserveSwipe(string(req.Direction))
	}

	result, err := s.resolve(ctx, log, actorID, target, recorded, req.Direction)
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveMatchOutcome(string(result.Status))
	log.Debug("swipe resolved", zap.String("status", string(result.Status)))
	return result, nil
}

func (s *MatchService) resolve(
	ctx context.Context,
	log *zap.Logger,
	actorID, target string,
	recorded bool,
	direction domain.Direction,
) (*ports.SwipeResult, error) {
	result := &ports.SwipeResult{Status: ports.StatusRecorded, Target: target}

	likes, err := s.actorLikes(ctx, actorID, target, recorded, direction)
	if err != nil || !likes {
		return result, err
	}

	theirs, err := s.swipes.GetSwipes(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("load target swipes: %w", err)
	}
	if !theirs.Likes(actorID) {
		return result, nil
	}

	other, err := s.profiles.FindProfile(ctx, target)
	if errors.Is(err, ports.ErrNotFound) {
		// rooms and seeded personas like back but cannot be assigned
		result.Status = ports.StatusSwipeOnly
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load target profile: %w", err)
	}

	actor, err := s.profiles.FindProfile(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("load actor profile: %w", err)
	}

	compatibility := s.engine.ProfileScore(*actor, *other)
	result.Compatibility = &compatibility

	existing, err := s.matches.FindMatch(ctx, domain.PairKey(actorID, target))
	switch {
	case err == nil:
		result.Status = ports.StatusAlreadyMatched
		result.Match = existing
		return result, nil
	case !errors.Is(err, ports.ErrNotFound):
		return nil, fmt.Errorf("load match: %w", err)
	}

	return s.assign(ctx, log, *actor, target, result)
}

// actorLikes reports the direction that actually stands for the pair. A
// swipe that was not recorded keeps the earlier direction.
func (s *MatchService) actorLikes(
	ctx context.Context,
	actorID, target string,
	recorded bool,
	direction domain.Direction,
) (bool, error) {
	if recorded {
		return direction == domain.DirectionRight, nil
	}
	mine, err := s.swipes.GetSwipes(ctx, actorID)
	if err != nil {
		return false, fmt.Errorf("load actor swipes: %w", err)
	}
	return mine.Likes(target), nil
}

// assign runs the assigner and confirms its pick. A room that turns out to
// be full is dropped and the assigner runs again on what is left.
func (s *MatchService) assign(
	ctx context.Context,
	log *zap.Logger,
	actor domain.Profile,
	target string,
	result *ports.SwipeResult,
) (*ports.SwipeResult, error) {
	rooms, err := s.rooms.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	candidates := seatablePairRooms(rooms, actor.ID, target)
	for range rooms {
		assignment := s.engine.Assign(actor, candidates)
		if !assignment.Found {
			break
		}

		match, err := s.matches.ConfirmMatch(ctx, domain.MatchConfirmation{
			ActorID:  actor.ID,
			TargetID: target,
			RoomID:   assignment.RoomID,
			Score:    assignment.Score,
		})
		switch {
		case err == nil:
			log.Info("match confirmed",
				zap.String(logger.FieldPair, match.PairKey),
				zap.String(logger.FieldRoomID, match.RoomID),
				zap.String("score", assignment.Percent()),
			)
			result.Status = ports.StatusMatched
			result.Match = match
			return result, nil

		case errors.Is(err, ports.ErrAlreadyMatched):
			existing, ferr := s.matches.FindMatch(ctx, domain.PairKey(actor.ID, target))
			if ferr != nil {
				return nil, fmt.Errorf("load concurrent match: %w", ferr)
			}
			result.Status = ports.StatusAlreadyMatched
			result.Match = existing
			return result, nil

		case errors.Is(err, ports.ErrRoomFull):
			log.Info("room filled up, trying next best", zap.String(logger.FieldRoomID, assignment.RoomID))
			candidates = withoutRoom(candidates, assignment.RoomID)

		default:
			return nil, fmt.Errorf("confirm match: %w", err)
		}
	}

	log.Info("no room available for pair")
	result.Status = ports.StatusNoRoom
	return result, nil
}

// seatablePairRooms drops the pair from every room's occupants, so neither is
// scored against themselves, and keeps only rooms with two free seats.
func seatablePairRooms(rooms []domain.Room, actorID, targetID string) []domain.Room {
	kept := make([]domain.Room, 0, len(rooms))
	for _, room := range rooms {
		room = room.WithoutOccupants(actorID, targetID)
		if room.FreeSeats() >= 2 {
			kept = append(kept, room)
		}
	}
	return kept
}

func withoutRoom(rooms []domain.Room, id string) []domain.Room {
	kept := make([]domain.Room, 0, len(rooms))
	for _, room := range rooms {
		if room.ID != id {
			kept = append(kept, room)
		}
	}
	return kept
}
