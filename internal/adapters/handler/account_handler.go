package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/matchmyvibe/roommate-service/internal/adapters/middleware"
	"github.com/matchmyvibe/roommate-service/internal/core/domain"
	"github.com/matchmyvibe/roommate-service/internal/core/ports"
	"github.com/matchmyvibe/roommate-service/internal/logger"
)

type AccountHandler struct {
	accounts ports.AccountService
	logger   *zap.Logger
}

func NewAccountHandler(accounts ports.AccountService, log *zap.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, logger: logger.OrNop(log)}
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	DOB      string `json:"dob"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	Message string `json:"message"`
	*ports.Session
}

func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.accounts.Signup(r.Context(), ports.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		DOB:      req.DOB,
	})
	switch {
	case errors.Is(err, ports.ErrInvalidSignup):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ports.ErrEmailTaken):
		http.Error(w, "email already registered", http.StatusConflict)
		return
	case err != nil:
		h.logger.Error("signup failed", zap.Error(err))
		http.Error(w, "signup failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, SessionResponse{Message: "Signup successful", Session: session})
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, ports.ErrInvalidCredentials):
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	case err != nil:
		h.logger.Error("login failed", zap.Error(err))
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, SessionResponse{Message: "Login successful", Session: session})
}

func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.UserID(ctx)

	if err := h.accounts.Logout(ctx, userID, middleware.TokenID(ctx), middleware.ExpiresAt(ctx)); err != nil {
		logger.WithUser(h.logger, userID).Error("logout failed", zap.Error(err))
		http.Error(w, "logout failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, StatusResponse{Status: "logged out"})
}

func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	profile, err := h.accounts.Profile(r.Context(), userID)
	if err != nil {
		h.profileError(w, userID, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, profile)
}

func (h *AccountHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var prefs domain.Logistics
	if err := decodeJSON(r, &prefs); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	profile, err := h.accounts.UpdatePreferences(r.Context(), userID, prefs)
	if err != nil {
		h.profileError(w, userID, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, profile)
}

func (h *AccountHandler) profileError(w http.ResponseWriter, userID string, err error) {
	if errors.Is(err, ports.ErrNotFound) {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	logger.WithUser(h.logger, userID).Error("profile request failed", zap.Error(err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}
