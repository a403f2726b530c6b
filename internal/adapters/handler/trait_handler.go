package handler

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/matchmyvibe/roommate-service/internal/core/ports"
	"github.com/matchmyvibe/roommate-service/internal/logger"
)

const webhookSecretHeader = "X-Webhook-Secret"

// TraitHandler receives the variables extracted by the voice onboarding
// agent. The agent does not authenticate as a user.
type TraitHandler struct {
	traits ports.TraitService
	secret string
	logger *zap.Logger
}

// NewTraitHandler checks the X-Webhook-Secret header when secret is set.
func NewTraitHandler(traits ports.TraitService, secret string, log *zap.Logger) *TraitHandler {
	return &TraitHandler{traits: traits, secret: secret, logger: logger.OrNop(log)}
}

type ReceiveTraitsRequest struct {
	ExtractedVariables []ports.ExtractedVariable `json:"extracted_variables"`
}

func (h *TraitHandler) ReceiveTraits(w http.ResponseWriter, r *http.Request) {
	if h.secret != "" && subtle.ConstantTimeCompare([]byte(r.Header.Get(webhookSecretHeader)), []byte(h.secret)) != 1 {
		writeJSON(w, h.logger, http.StatusUnauthorized, StatusResponse{Status: "invalid webhook secret"})
		return
	}

	var req ReceiveTraitsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, StatusResponse{Status: "invalid request body"})
		return
	}

	_, _, err := h.traits.ReceiveTraits(r.Context(), req.ExtractedVariables)
	switch {
	case errors.Is(err, ports.ErrNoCurrentUser):
		writeJSON(w, h.logger, http.StatusBadRequest, StatusResponse{Status: "no user currently logged in"})
		return
	case errors.Is(err, ports.ErrNotFound):
		writeJSON(w, h.logger, http.StatusNotFound, StatusResponse{Status: "user not found"})
		return
	case err != nil:
		h.logger.Error("saving traits failed", zap.Error(err))
		writeJSON(w, h.logger, http.StatusInternalServerError, StatusResponse{Status: "saving traits failed"})
		return
	}

	writeJSON(w, h.logger, http.StatusOK, StatusResponse{Status: "traits saved successfully"})
}
