package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/matchmyvibe/roommate-service/internal/core/ports"
	"github.com/matchmyvibe/roommate-service/test/mocks"
)

const (
	selectByID    = `SELECT id, event_type, payload\s+FROM outbox_events\s+WHERE id = \$1 AND processed_at IS NULL`
	selectPending = `SELECT id, event_type, payload\s+FROM outbox_events\s+WHERE processed_at IS NULL`
	markProcessed = `UPDATE outbox_events SET processed_at = NOW\(\) WHERE id = \$1`
)

func matchPayload(t *testing.T, pair string) []byte {
	t.Helper()
	body, err := json.Marshal(ports.MatchConfirmedEvent{
		PairKey: pair,
		RoomID:  "101",
		Score:   70,
	})
	require.NoError(t, err)
	return body
}

func setupRelay(t *testing.T) (sqlmock.Sqlmock, *mocks.MockMatchEventPublisher, *Relay, *observer.ObservedLogs) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	core, logs := observer.New(zapcore.DebugLevel)
	publisher := mocks.NewMockMatchEventPublisher()
	return mock, publisher, NewRelay(db, "postgres://unused", publisher, zap.New(core)), logs
}

func TestProcessEventByID(t *testing.T) {
	mock, publisher, relay, _ := setupRelay(t)

	mock.ExpectBegin()
	mock.ExpectQuery(selectByID).
		WithArgs("evt-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_type", "payload"}).
			AddRow("evt-1", ports.EventMatchConfirmed, matchPayload(t, "a|b")))
	mock.ExpectExec(markProcessed).WithArgs("evt-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, relay.processEventByID(context.Background(), "evt-1"))

	events := publisher.GetPublishedEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "a|b", events[0].PairKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessEventByID_AlreadyProcessed(t *testing.T) {
	mock, publisher, relay, _ := setupRelay(t)

	mock.ExpectBegin()
	mock.ExpectQuery(selectByID).
		WithArgs("evt-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_type", "payload"}))
	mock.ExpectRollback()

	require.NoError(t, relay.processEventByID(context.Background(), "evt-1"))
	assert.Zero(t, publisher.GetPublishCount())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessEventByID_PublishFailureKeepsEventPending(t *testing.T) {
	mock, publisher, relay, _ := setupRelay(t)
	publisher.PublishError = errors.New("broker unavailable")

	mock.ExpectBegin()
	mock.ExpectQuery(selectByID).
		WithArgs("evt-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_type", "payload"}).
			AddRow("evt-1", ports.EventMatchConfirmed, matchPayload(t, "a|b")))
	mock.ExpectRollback()

	err := relay.processEventByID(context.Background(), "evt-1")
	assert.ErrorContains(t, err, "broker unavailable")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessEventByID_InvalidPayloadIsDropped(t *testing.T) {
	mock, publisher, relay, logs := setupRelay(t)

	mock.ExpectBegin()
	mock.ExpectQuery(selectByID).
		WithArgs("evt-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_type", "payload"}).
			AddRow("evt-1", ports.EventMatchConfirmed, []byte(`{not json`)))
	mock.ExpectExec(markProcessed).WithArgs("evt-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, relay.processEventByID(context.Background(), "evt-1"))
	assert.Zero(t, publisher.GetPublishCount())
	assert.Equal(t, 1, logs.FilterMessage("invalid event payload").Len())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessUnprocessedEvents(t *testing.T) {
	mock, publisher, relay, logs := setupRelay(t)

	mock.ExpectBegin()
	mock.ExpectQuery(selectPending).
		WithArgs(maxEventsPerBatch).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_type", "payload"}).
			AddRow("evt-1", ports.EventMatchConfirmed, matchPayload(t, "a|b")).
			AddRow("evt-2", "profile.deleted", []byte(`{}`)).
			AddRow("evt-3", ports.EventMatchConfirmed, matchPayload(t, "c|d")))
	mock.ExpectExec(markProcessed).WithArgs("evt-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(markProcessed).WithArgs("evt-2").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(markProcessed).WithArgs("evt-3").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, relay.processUnprocessedEvents(context.Background()))

	events := publisher.GetPublishedEvents()
	require.Len(t, events, 2)
	assert.Equal(t, "a|b", events[0].PairKey)
	assert.Equal(t, "c|d", events[1].PairKey)
	assert.Equal(t, 1, logs.FilterMessage("skipping unknown event type").Len())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessUnprocessedEvents_PublishFailureSkipsEvent(t *testing.T) {
	mock, publisher, relay, _ := setupRelay(t)
	publisher.PublishError = errors.New("broker unavailable")

	mock.ExpectBegin()
	mock.ExpectQuery(selectPending).
		WithArgs(maxEventsPerBatch).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_type", "payload"}).
			AddRow("evt-1", ports.EventMatchConfirmed, matchPayload(t, "a|b")))
	mock.ExpectCommit()

	require.NoError(t, relay.processUnprocessedEvents(context.Background()))
	assert.Equal(t, 1, publisher.GetPublishCount())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsReady(t *testing.T) {
	_, _, relay, _ := setupRelay(t)
	now := time.Now()
	relay.now = func() time.Time { return now }
	relay.markProcessed()

	assert.True(t, relay.IsHealthy())
	assert.True(t, relay.IsReady())

	now = now.Add(healthCheckStaleThreshold + time.Second)
	assert.False(t, relay.IsReady())
	assert.True(t, relay.IsHealthy())
}
