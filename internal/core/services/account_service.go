package services

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/matchmyvibe/roommate-service/internal/core/domain"
	"github.com/matchmyvibe/roommate-service/internal/core/ports"
	"github.com/matchmyvibe/roommate-service/internal/logger"
)

var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[cC][oO][mM]$`)

type AccountService struct {
	profiles   ports.ProfileRepository
	sessions   ports.SessionStore
	privateKey *rsa.PrivateKey
	tokenTTL   time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

var _ ports.AccountService = (*AccountService)(nil)

func NewAccountService(
	profiles ports.ProfileRepository,
	sessions ports.SessionStore,
	privateKey *rsa.PrivateKey,
	tokenTTL time.Duration,
	log *zap.Logger,
) *AccountService {
	return &AccountService{
		profiles:   profiles,
		sessions:   sessions,
		privateKey: privateKey,
		tokenTTL:   tokenTTL,
		logger:     logger.OrNop(log),
		now:        time.Now,
	}
}

// Signup creates a profile keyed by email and logs it in.
func (s *AccountService) Signup(ctx context.Context, in ports.SignupInput) (*ports.Session, error) {
	email := strings.TrimSpace(in.Email)
	name := strings.TrimSpace(in.Name)

	switch {
	case name == "":
		return nil, fmt.Errorf("%w: name is required", ports.ErrInvalidSignup)
	case !emailPattern.MatchString(email):
		return nil, fmt.Errorf("%w: enter a valid email ending with .com", ports.ErrInvalidSignup)
	case in.Password == "":
		return nil, fmt.Errorf("%w: password is required", ports.ErrInvalidSignup)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	profile := domain.Profile{
		ID:           email,
		Name:         name,
		DOB:          strings.TrimSpace(in.DOB),
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.profiles.CreateProfile(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("profile created", zap.String(logger.FieldUserID, email))
	return s.startSession(ctx, email)
}

func (s *AccountService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	email = strings.TrimSpace(email)

	profile, err := s.profiles.FindProfile(ctx, email)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, ports.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return nil, ports.ErrInvalidCredentials
	}

	return s.startSession(ctx, profile.ID)
}

// Logout revokes the token for the rest of its lifetime and ends the webhook
// session of the user.
func (s *AccountService) Logout(ctx context.Context, userID, tokenID string, expiresAt time.Time) error {
	if ttl := expiresAt.Sub(s.now()); ttl > 0 && tokenID != "" {
		if err := s.sessions.RevokeToken(ctx, tokenID, ttl); err != nil {
			return fmt.Errorf("revoke token: %w", err)
		}
	}
	if err := s.sessions.ClearCurrentUser(ctx, userID); err != nil {
		return fmt.Errorf("clear current user: %w", err)
	}

	s.logger.Info("logged out", zap.String(logger.FieldUserID, userID))
	return nil
}

func (s *AccountService) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.profiles.FindProfile(ctx, userID)
}

func (s *AccountService) UpdatePreferences(ctx context.Context, userID string, prefs domain.Logistics) (*domain.Profile, error) {
	if err := s.profiles.UpdateRoomPreferences(ctx, userID, prefs); err != nil {
		return nil, err
	}
	return s.profiles.FindProfile(ctx, userID)
}

func (s *AccountService) startSession(ctx context.Context, userID string) (*ports.Session, error) {
	session, err := s.issueToken(userID)
	if err != nil {
		return nil, err
	}

	// The voice agent webhook writes traits for whoever logged in last.
	if err := s.sessions.SetCurrentUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("set current user: %w", err)
	}
	return session, nil
}

func (s *AccountService) issueToken(userID string) (*ports.Session, error) {
	now := s.now()
	session := &ports.Session{
		TokenID:   uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(s.tokenTTL),
	}

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ID:        session.TokenID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.privateKey)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	session.Token = token
	return session, nil
}
