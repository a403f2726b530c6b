package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/matchmyvibe/roommate-service/internal/adapters/repository"
	"github.com/matchmyvibe/roommate-service/internal/core/services"
	"github.com/matchmyvibe/roommate-service/internal/logger"
)

const app = "seeder"

var rootCmd = &cobra.Command{
	Use:          app,
	Short:        "seeder loads rooms and personas from JSON files into Postgres",
	SilenceUsage: true,
}

func init() {
	if err := viper.BindEnv("database", "DB_CONNECTION_STRING"); err != nil {
		fmt.Fprintf(os.Stderr, "binding DB_CONNECTION_STRING environment variable: %v\n", err)
		os.Exit(1)
	}

	rootCmd.PersistentFlags().String("database", "", "postgres connection string (default $DB_CONNECTION_STRING)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("database"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

// seedEnv is what every subcommand needs: a migrated repository and a logger.
type seedEnv struct {
	db     *sql.DB
	seeder *services.SeedService
	logger *zap.Logger
}

func (e *seedEnv) Close() {
	e.db.Close()
	_ = e.logger.Sync()
}

func openSeedEnv(ctx context.Context) (*seedEnv, error) {
	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	dsn := viper.GetString("database")
	if dsn == "" {
		return nil, errors.New("no database: pass --database or set DB_CONNECTION_STRING")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	repo := repository.NewPostgresRepository(db, log)
	if err := repo.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return &seedEnv{
		db:     db,
		seeder: services.NewSeedService(repo, repo, log),
		logger: log,
	}, nil
}
