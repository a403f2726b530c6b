package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/matchmyvibe/roommate-service/internal/adapters/handler"
	"github.com/matchmyvibe/roommate-service/internal/adapters/metrics"
	"github.com/matchmyvibe/roommate-service/internal/adapters/middleware"
	"github.com/matchmyvibe/roommate-service/internal/adapters/repository"
	"github.com/matchmyvibe/roommate-service/internal/adapters/session"
	"github.com/matchmyvibe/roommate-service/internal/config"
	"github.com/matchmyvibe/roommate-service/internal/core/matching"
	"github.com/matchmyvibe/roommate-service/internal/core/services"
	"github.com/matchmyvibe/roommate-service/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogJSON, cfg.LogDebug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	repo := repository.NewPostgresRepository(db, log.Named("repository"))
	if err := repo.Migrate(ctx); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	log.Info("connected to redis", zap.String("address", cfg.RedisAddress))

	sessions := session.NewRedisStore(redisClient, log.Named("session"))
	recorder := metrics.NewRecorder()
	engine := matching.NewEngine(matching.Options{PartialCredit: cfg.PartialCredit}, log.Named("matching"))

	accounts := services.NewAccountService(repo, sessions, cfg.JWTPrivateKey, cfg.TokenTTL, log)
	ranking := services.NewRankingService(repo, repo, repo, engine, recorder, log)
	matches := services.NewMatchService(repo, repo, repo, repo, engine, recorder, log)
	traits := services.NewTraitService(repo, sessions, log)

	router := handler.NewRouter(handler.Handlers{
		Account: handler.NewAccountHandler(accounts, log),
		Match:   handler.NewMatchHandler(ranking, matches, log),
		Trait:   handler.NewTraitHandler(traits, cfg.WebhookSecret, log),
		Health: handler.NewHealthHandler(map[string]handler.Pinger{
			"database": handler.PingerFunc(db.PingContext),
			"redis":    sessions,
		}, log),
		Auth:    middleware.NewAuthMiddleware(cfg.JWTPublicKey, sessions, log),
		Metrics: recorder.Handler(),
	}, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("could not start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("error shutting down server", zap.Error(err))
	}
}
