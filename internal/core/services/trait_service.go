package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/matchmyvibe/roommate-service/internal/core/domain"
	"github.com/matchmyvibe/roommate-service/internal/core/ports"
	"github.com/matchmyvibe/roommate-service/internal/logger"
)

type TraitService struct {
	profiles ports.ProfileRepository
	sessions ports.SessionStore
	logger   *zap.Logger
}

var _ ports.TraitService = (*TraitService)(nil)

func NewTraitService(profiles ports.ProfileRepository, sessions ports.SessionStore, log *zap.Logger) *TraitService {
	return &TraitService{
		profiles: profiles,
		sessions: sessions,
		logger:   logger.OrNop(log),
	}
}

// ReceiveTraits returns ErrNoCurrentUser when nobody is logged in and
// ErrNotFound when the logged in user has no profile. Later variables with
// the same key win.
func (s *TraitService) ReceiveTraits(ctx context.Context, vars []ports.ExtractedVariable) (string, domain.Traits, error) {
	userID, err := s.sessions.CurrentUser(ctx)
	if err != nil {
		return "", domain.Traits{}, err
	}

	var incoming domain.Traits
	for _, v := range vars {
		key := strings.TrimSpace(v.Key)
		if key == "" {
			continue
		}
		incoming.Set(key, v.Value)
	}

	merged, err := s.profiles.MergeTraits(ctx, userID, incoming)
	if err != nil {
		return "", domain.Traits{}, err
	}

	s.logger.Info("traits saved",
		zap.String(logger.FieldUserID, userID),
		zap.Int("received", incoming.Len()),
		zap.Int("total", merged.Len()),
	)
	return userID, merged, nil
}
