package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/matchmyvibe/roommate-service/internal/core/ports"
	"github.com/matchmyvibe/roommate-service/internal/logger"
)

//go:embed schema.sql
var schema string

const uniqueViolation = "23505"

// PostgresRepository implements the repository ports on PostgreSQL.
type PostgresRepository struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time
}

var (
	_ ports.ProfileRepository = (*PostgresRepository)(nil)
	_ ports.RoomRepository    = (*PostgresRepository)(nil)
	_ ports.SwipeRepository   = (*PostgresRepository)(nil)
	_ ports.MatchRepository   = (*PostgresRepository)(nil)
)

func NewPostgresRepository(db *sql.DB, log *zap.Logger) *PostgresRepository {
	return &PostgresRepository{
		db:     db,
		logger: logger.OrNop(log),
		now:    time.Now,
	}
}

// Migrate creates the tables when they do not exist yet.
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// withTx runs fn in a transaction and commits when it returns nil.
func (r *PostgresRepository) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ports.ErrNotFound
	}
	return err
}
