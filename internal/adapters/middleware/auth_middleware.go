package middleware

import (
	"context"
	"crypto/rsa"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/matchmyvibe/roommate-service/internal/logger"
)

// RevocationChecker reports whether a token id was revoked by a logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type AuthMiddleware struct {
	publicKey *rsa.PublicKey
	revoked   RevocationChecker
	logger    *zap.Logger
}

func NewAuthMiddleware(publicKey *rsa.PublicKey, revoked RevocationChecker, log *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		publicKey: publicKey,
		revoked:   revoked,
		logger:    logger.OrNop(log),
	}
}

type contextKey string

const (
	UserIDKey    contextKey = "userID"
	TokenIDKey   contextKey = "tokenID"
	ExpiresAtKey contextKey = "expiresAt"
)

var errMalformedHeader = errors.New("invalid authorization header")

// Authenticate rejects requests without a valid, unrevoked bearer token and
// stores the token subject, id and expiry in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := bearerToken(r)
		if err != nil {
			m.logger.Debug("rejecting request", zap.String("path", r.URL.Path), zap.Error(err))
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return m.publicKey, nil
		}, jwt.WithExpirationRequired())
		if err != nil || !token.Valid {
			m.logger.Debug("token rejected", zap.Error(err))
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		if claims.Subject == "" {
			http.Error(w, "invalid token: missing user ID", http.StatusUnauthorized)
			return
		}

		if claims.ID != "" && m.revoked != nil {
			revoked, err := m.revoked.IsRevoked(r.Context(), claims.ID)
			if err != nil {
				m.logger.Error("checking token revocation", zap.Error(err))
				http.Error(w, "session store unavailable", http.StatusServiceUnavailable)
				return
			}
			if revoked {
				http.Error(w, "token revoked", http.StatusUnauthorized)
				return
			}
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.Subject)
		ctx = context.WithValue(ctx, TokenIDKey, claims.ID)
		ctx = context.WithValue(ctx, ExpiresAtKey, claims.ExpiresAt.Time)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("missing authorization header")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errMalformedHeader
	}
	return parts[1], nil
}

func UserID(ctx context.Context) string {
	id, _ := ctx.Value(UserIDKey).(string)
	return id
}

func TokenID(ctx context.Context) string {
	id, _ := ctx.Value(TokenIDKey).(string)
	return id
}

func ExpiresAt(ctx context.Context) time.Time {
	t, _ := ctx.Value(ExpiresAtKey).(time.Time)
	return t
}
