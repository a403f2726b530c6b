// Package matching scores roommate compatibility and picks rooms.
// Everything here is a pure function of its inputs.
package matching

import (
	"math"

	"go.uber.org/zap"

	"github.com/matchmyvibe/roommate-service/internal/core/domain"
)

// Options tunes the engine. The zero value reproduces exact-match scoring.
type Options struct {
	// PartialCredit is the share of a match granted to acceptable adjacent
	// trait values. Clamped to [0, 1].
	PartialCredit float64
}

type Engine struct {
	partialCredit float64
	logger        *zap.Logger
}

// exact backs the package-level functions.
var exact = NewEngine(Options{}, nil)

func NewEngine(opts Options, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		partialCredit: math.Max(0, math.Min(1, opts.PartialCredit)),
		logger:        logger,
	}
}

func (e *Engine) traitScore(mine, theirs domain.Traits) float64 {
	return TraitScoreWithAdjacency(mine, theirs, e.partialCredit)
}

func (e *Engine) logScore(roomID string, s Score) {
	e.logger.Debug("room score",
		zap.String("room_id", roomID),
		zap.Float64("compatibility", s.Roommate),
		zap.Float64("logistics", s.Logistics),
		zap.Float64("numerology", s.Numerology),
		zap.Float64("total", s.Total),
	)
}
