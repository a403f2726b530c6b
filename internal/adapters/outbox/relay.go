package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/lib/pq"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/matchmyvibe/roommate-service/internal/config"
	"github.com/matchmyvibe/roommate-service/internal/core/ports"
	"github.com/matchmyvibe/roommate-service/internal/logger"
)

const (
	listenerMinReconnectInterval = 10 * time.Second
	listenerMaxReconnectInterval = time.Minute

	eventProcessTimeout     = 30 * time.Second
	batchProcessTimeout     = 60 * time.Second
	periodicProcessInterval = 90 * time.Second

	healthCheckStaleThreshold = 5 * time.Minute

	maxEventsPerBatch = 100
)

type record struct {
	ID        string
	EventType string
	Payload   []byte
}

// Relay listens for NOTIFY signals on the outbox channel and publishes the
// referenced events to the message broker.
type Relay struct {
	db            *sql.DB
	publisher     ports.MatchEventPublisher
	dbURL         string
	dbCB          *gobreaker.CircuitBreaker
	logger        *zap.Logger
	lastProcessed atomic.Int64
	healthy       atomic.Bool
	now           func() time.Time
}

func NewRelay(db *sql.DB, dbURL string, publisher ports.MatchEventPublisher, log *zap.Logger) *Relay {
	log = logger.OrNop(log)
	r := &Relay{
		db:        db,
		dbURL:     dbURL,
		publisher: publisher,
		dbCB:      config.NewCircuitBreaker(config.BreakerRelayPostgres, log),
		logger:    log,
		now:       time.Now,
	}
	r.markProcessed()
	r.healthy.Store(true)
	return r
}

// IsHealthy is the liveness check. An open breaker is degraded but
// recoverable and does not count.
func (r *Relay) IsHealthy() bool {
	return r.healthy.Load()
}

// IsReady reports whether the relay can process events right now.
func (r *Relay) IsReady() bool {
	if r.dbCB.State() == gobreaker.StateOpen {
		return false
	}
	last := time.Unix(0, r.lastProcessed.Load())
	if r.now().Sub(last) > healthCheckStaleThreshold {
		return false
	}
	return r.healthy.Load()
}

func (r *Relay) markProcessed() {
	r.lastProcessed.Store(r.now().UnixNano())
}

// Start blocks until ctx is cancelled or the listener cannot subscribe.
func (r *Relay) Start(ctx context.Context) error {
	reportProblem := func(ev pq.ListenerEventType, err error) {
		if err != nil {
			r.logger.Warn("listener error", zap.Error(err))
		}
	}

	listener := pq.NewListener(r.dbURL, listenerMinReconnectInterval, listenerMaxReconnectInterval, reportProblem)
	defer listener.Close()

	if err := listener.Listen(ports.OutboxChannel); err != nil {
		return err
	}
	r.logger.Info("listening for outbox notifications", zap.String("channel", ports.OutboxChannel))

	// Catch up on events written while the relay was down.
	if err := r.processUnprocessedEvents(ctx); err != nil {
		r.logger.Error("processing startup backlog", zap.Error(err))
	}

	ticker := time.NewTicker(periodicProcessInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("relay shutting down")
			return ctx.Err()

		case notification := <-listener.Notify:
			if notification == nil {
				r.logger.Warn("nil notification, listener reconnecting")
				r.healthy.Store(false)
				continue
			}

			if err := r.processEventByID(ctx, notification.Extra); err != nil {
				r.logger.Error("processing event", zap.String("event_id", notification.Extra), zap.Error(err))
				continue
			}
			r.markProcessed()
			r.healthy.Store(true)

		case <-ticker.C:
			go listener.Ping()

			if err := r.processUnprocessedEvents(ctx); err != nil {
				r.logger.Error("periodic processing", zap.Error(err))
				continue
			}
			r.markProcessed()
		}
	}
}

func (r *Relay) processEventByID(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, eventProcessTimeout)
	defer cancel()

	_, err := r.dbCB.Execute(func() (interface{}, error) {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return nil, err
		}
		defer tx.Rollback()

		var rec record
		err = tx.QueryRowContext(ctx, `
			SELECT id, event_type, payload
			FROM outbox_events
			WHERE id = $1 AND processed_at IS NULL
			FOR UPDATE SKIP LOCKED`, eventID).Scan(&rec.ID, &rec.EventType, &rec.Payload)
		if errors.Is(err, sql.ErrNoRows) {
			// Already handled by another relay or by the batch sweep.
			return nil, nil
		}
		if err != nil {
			return nil, err
		}

		if err := r.publish(ctx, rec); err != nil {
			return nil, err
		}
		if err := markDone(ctx, tx, rec.ID); err != nil {
			return nil, err
		}
		return nil, tx.Commit()
	})
	return err
}

// processUnprocessedEvents sweeps pending events in creation order. A failed
// publish leaves the event pending for the next sweep.
func (r *Relay) processUnprocessedEvents(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, batchProcessTimeout)
	defer cancel()

	_, err := r.dbCB.Execute(func() (interface{}, error) {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return nil, err
		}
		defer tx.Rollback()

		rows, err := tx.QueryContext(ctx, `
			SELECT id, event_type, payload
			FROM outbox_events
			WHERE processed_at IS NULL
			ORDER BY created_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED`, maxEventsPerBatch)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var records []record
		for rows.Next() {
			var rec record
			if err := rows.Scan(&rec.ID, &rec.EventType, &rec.Payload); err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}

		for _, rec := range records {
			if err := r.publish(ctx, rec); err != nil {
				r.logger.Error("publishing event", zap.String("event_id", rec.ID), zap.Error(err))
				continue
			}
			if err := markDone(ctx, tx, rec.ID); err != nil {
				return nil, err
			}
			r.logger.Debug("event processed", zap.String("event_id", rec.ID))
		}
		return nil, tx.Commit()
	})
	return err
}

// publish forwards rec to the broker. Unknown types and undecodable payloads
// are logged and reported as done so they are not retried forever.
func (r *Relay) publish(ctx context.Context, rec record) error {
	if rec.EventType != ports.EventMatchConfirmed {
		r.logger.Warn("skipping unknown event type",
			zap.String("event_id", rec.ID),
			zap.String("event_type", rec.EventType),
		)
		return nil
	}

	var evt ports.MatchConfirmedEvent
	if err := json.Unmarshal(rec.Payload, &evt); err != nil {
		r.logger.Error("invalid event payload", zap.String("event_id", rec.ID), zap.Error(err))
		return nil
	}
	return r.publisher.PublishMatchConfirmed(ctx, evt)
}

func markDone(ctx context.Context, tx *sql.Tx, id string) error {
	_, err := tx.ExecContext(ctx, `UPDATE outbox_events SET processed_at = NOW() WHERE id = $1`, id)
	return err
}
