package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"

	"yatube-api/internal/auth"
	redis_cache "yatube-api/internal/cache/redis"
	"yatube-api/internal/config"
	delivery_http "yatube-api/internal/delivery/http"
	"yatube-api/internal/delivery/http/middleware"
	metrics_server "yatube-api/internal/delivery/metrics"
	"yatube-api/internal/logger"
	prometheus_metrics "yatube-api/internal/metrics/prometheus"
	comment_repository_postgres "yatube-api/internal/repository/comment/postgres"
	follow_repository_postgres "yatube-api/internal/repository/follow/postgres"
	group_repository_postgres "yatube-api/internal/repository/group/postgres"
	post_repository_postgres "yatube-api/internal/repository/post/postgres"
	"yatube-api/internal/repository/postgres"
	user_repository_postgres "yatube-api/internal/repository/user/postgres"
	comment_service "yatube-api/internal/service/comment"
	follow_service "yatube-api/internal/service/follow"
	group_service "yatube-api/internal/service/group"
	post_service "yatube-api/internal/service/post"
)

func main() {
	cfg := config.MustLoad()
	dsn := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DbName)
	ctx := context.Background()
	log := logger.New(cfg.Env)

	if err := runMigrations(cfg.Database.MigrationsPath, dsn); err != nil {
		log.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Error("Failed to parse postgres poolConfig", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Error("Failed to create postgres pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	metricsProvider := prometheus_metrics.NewPrometheusMetricsProvider()
	metricsProvider.SetServiceHealth(true)

	userRepo := user_repository_postgres.NewUserRepository(pool, log, metricsProvider)
	postRepo := post_repository_postgres.NewPostRepository(pool, log, metricsProvider)
	commentRepo := comment_repository_postgres.NewCommentRepository(pool, log, metricsProvider)
	groupRepo := group_repository_postgres.NewGroupRepository(pool, log, metricsProvider)
	followRepo := follow_repository_postgres.NewFollowRepository(pool, log, metricsProvider)
	unitOfWork := postgres.NewPostgresUOW(pool, log, metricsProvider)

	var posts post_service.Service = post_service.NewPostService(postRepo, userRepo, unitOfWork, log)

	if cfg.Redis.Enabled {
		log.Info("Connecting to Redis",
			slog.String("address", cfg.Redis.Address),
			slog.Int("port", cfg.Redis.Port),
			slog.Int("db", cfg.Redis.DB))
		redisClient, err := redis_cache.NewClient(cfg.Redis, log)
		if err != nil {
			log.Error("Failed to create Redis client", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", slog.String("error", err.Error()))
			}
		}()

		postCache := redis_cache.NewPostCache(redisClient, log)
		posts = post_service.NewCacheDecorator(posts, postCache, log, metricsProvider)
	}

	comments := comment_service.NewCommentService(commentRepo, userRepo, unitOfWork, log)
	groups := group_service.NewGroupService(groupRepo, log)
	follows := follow_service.NewFollowService(followRepo, userRepo, unitOfWork, log)

	tokenService, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		log.Error("Failed to create token service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	router := delivery_http.NewRouter(
		delivery_http.NewPostHandler(posts, log),
		delivery_http.NewCommentHandler(comments, log),
		delivery_http.NewGroupHandler(groups, log),
		delivery_http.NewFollowHandler(follows, log),
		delivery_http.NewAuthHandler(userRepo, tokenService, auth.NewBcryptVerifier(), log),
		middleware.NewAuthMiddleware(tokenService, log),
		metricsProvider,
	)

	httpServer := delivery_http.NewServer(router, cfg.HTTPServer.Address, cfg.HTTPServer.Port, log)
	metricsServer := metrics_server.NewMetricsServer(cfg.Prometheus.Address, cfg.Prometheus.Port, log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	done := make(chan bool, 1)
	metricsDone := make(chan bool, 1)

	go func() {
		if err := httpServer.Run(); err != nil {
			log.Error("HTTP server error", slog.String("error", err.Error()))
		}
		done <- true
	}()

	go func() {
		if err := metricsServer.Run(); err != nil {
			log.Error("Metrics server error", slog.String("error", err.Error()))
		}
		metricsDone <- true
	}()

	<-quit
	log.Info("Shutting down servers...")

	metricsProvider.SetServiceHealth(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Metrics server shutdown error", slog.String("error", err.Error()))
	}

	<-done
	<-metricsDone

	log.Info("Server exited")
}

func runMigrations(migrationsPath, dsn string) error {
	m, err := migrate.New("file://"+migrationsPath, dsn)
	if err != nil {
		return fmt.Errorf("initializing migrations: %w", err)
	}
	defer func() {
		_, _ = m.Close()
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}
