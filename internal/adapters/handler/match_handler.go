package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/matchmyvibe/roommate-service/internal/adapters/middleware"
	"github.com/matchmyvibe/roommate-service/internal/core/matching"
	"github.com/matchmyvibe/roommate-service/internal/core/ports"
	"github.com/matchmyvibe/roommate-service/internal/logger"
)

type MatchHandler struct {
	ranking ports.RankingService
	matches ports.MatchService
	logger  *zap.Logger
}

func NewMatchHandler(ranking ports.RankingService, matches ports.MatchService, log *zap.Logger) *MatchHandler {
	return &MatchHandler{ranking: ranking, matches: matches, logger: logger.OrNop(log)}
}

func (h *MatchHandler) RankedMatches(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	ranked, err := h.ranking.RankedMatches(r.Context(), userID)
	switch {
	case errors.Is(err, ports.ErrNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
		return
	case err != nil:
		logger.WithUser(h.logger, userID).Error("ranking failed", zap.Error(err))
		http.Error(w, "ranking failed", http.StatusInternalServerError)
		return
	}

	if ranked == nil {
		ranked = []matching.RankedRoom{}
	}
	writeJSON(w, h.logger, http.StatusOK, ranked)
}

func (h *MatchHandler) Swipe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req ports.SwipeRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.matches.Swipe(r.Context(), userID, req)
	switch {
	case errors.Is(err, ports.ErrInvalidDirection),
		errors.Is(err, ports.ErrMissingTarget),
		errors.Is(err, ports.ErrSelfSwipe):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ports.ErrNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
		return
	case err != nil:
		logger.WithUser(h.logger, userID).Error("swipe failed", zap.String("target", req.Target), zap.Error(err))
		http.Error(w, "swipe failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}
