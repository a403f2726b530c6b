package config

import "errors"

// RelayConfig holds what the outbox relay needs.
type RelayConfig struct {
	DatabaseURL    string
	RabbitMQURL    string
	MatchQueueName string
	HealthPort     string

	LogJSON  bool
	LogDebug bool
}

func LoadRelayConfig() (*RelayConfig, error) {
	v := newViper()
	v.SetDefault("MATCH_QUEUE_NAME", "match.confirmed")
	v.SetDefault("RELAY_HEALTH_PORT", "8090")

	dbURL := v.GetString("DB_CONNECTION_STRING")
	if dbURL == "" {
		return nil, errors.New("DB_CONNECTION_STRING environment variable is required")
	}

	rabbitURL := v.GetString("RABBITMQ_URL")
	if rabbitURL == "" {
		return nil, errors.New("RABBITMQ_URL environment variable is required")
	}

	return &RelayConfig{
		DatabaseURL:    dbURL,
		RabbitMQURL:    rabbitURL,
		MatchQueueName: v.GetString("MATCH_QUEUE_NAME"),
		HealthPort:     v.GetString("RELAY_HEALTH_PORT"),
		LogJSON:        v.GetBool("LOG_JSON"),
		LogDebug:       v.GetBool("LOG_DEBUG"),
	}, nil
}
