package config

import (
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const (
	BreakerRedis         = "Redis-Session"
	BreakerPostgres      = "PostgreSQL"
	BreakerRelayPostgres = "Relay-PostgreSQL"
	BreakerRabbitMQ      = "RabbitMQ-Publisher"
)

// NewCircuitBreaker creates a circuit breaker with standard settings.
// The name parameter uniquely identifies the circuit breaker instance.
func NewCircuitBreaker(name string, logger *zap.Logger) *gobreaker.CircuitBreaker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Second * 10,
		Timeout:     breakerTimeout(name),
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Error("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}

// breakerTimeout matches the 5s health check timeout for Redis, so an open
// breaker and a failing probe agree.
func breakerTimeout(name string) time.Duration {
	switch name {
	case BreakerRedis:
		return time.Second * 5
	case BreakerPostgres, BreakerRelayPostgres:
		return time.Second * 10
	default:
		return time.Second * 30
	}
}
