package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/matchmyvibe/roommate-service/internal/config"
	"github.com/matchmyvibe/roommate-service/internal/core/ports"
	"github.com/matchmyvibe/roommate-service/internal/logger"
)

const (
	currentUserKey   = "webhook:current_user"
	revokedKeyPrefix = "token:revoked:"
)

// clearIfOwner deletes KEYS[1] only while it still holds ARGV[1].
var clearIfOwner = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisStore keeps the current webhook user and the token deny list in Redis.
type RedisStore struct {
	client  *redis.Client
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

var _ ports.SessionStore = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client, log *zap.Logger) *RedisStore {
	log = logger.OrNop(log)
	return &RedisStore{
		client:  client,
		breaker: config.NewCircuitBreaker(config.BreakerRedis, log),
		logger:  log,
	}
}

func (s *RedisStore) SetCurrentUser(ctx context.Context, userID string) error {
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.client.Set(ctx, currentUserKey, userID, 0).Err()
	})
	if err != nil {
		return fmt.Errorf("set current user: %w", err)
	}
	return nil
}

func (s *RedisStore) CurrentUser(ctx context.Context) (string, error) {
	result, err := s.breaker.Execute(func() (interface{}, error) {
		userID, err := s.client.Get(ctx, currentUserKey).Result()
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return userID, err
	})
	if err != nil {
		return "", fmt.Errorf("get current user: %w", err)
	}

	userID := result.(string)
	if userID == "" {
		return "", ports.ErrNoCurrentUser
	}
	return userID, nil
}

func (s *RedisStore) ClearCurrentUser(ctx context.Context, userID string) error {
	result, err := s.breaker.Execute(func() (interface{}, error) {
		return clearIfOwner.Run(ctx, s.client, []string{currentUserKey}, userID).Int()
	})
	if err != nil {
		return fmt.Errorf("clear current user: %w", err)
	}
	if result.(int) == 0 {
		s.logger.Debug("current user belongs to someone else, left in place", zap.String(logger.FieldUserID, userID))
	}
	return nil
}

// RevokeToken denies tokenID until ttl elapses, which should be the remaining
// lifetime of the token.
func (s *RedisStore) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *RedisStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	})
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return result.(int64) > 0, nil
}

// Ping reports whether Redis answers, for readiness probes.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
