package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	comment_service "blogicum/internal/application/service/comment"
	feed_service "blogicum/internal/application/service/feed"
	post_service "blogicum/internal/application/service/post"
	user_service "blogicum/internal/application/service/user"
	"blogicum/internal/infrastructure/config"
	http_server "blogicum/internal/infrastructure/inbound/http"
	comment_http "blogicum/internal/infrastructure/inbound/http/comment"
	feed_http "blogicum/internal/infrastructure/inbound/http/feed"
	"blogicum/internal/infrastructure/inbound/http/forms"
	post_http "blogicum/internal/infrastructure/inbound/http/post"
	user_http "blogicum/internal/infrastructure/inbound/http/user"
	"blogicum/internal/infrastructure/inbound/http/view"
	metrics_server "blogicum/internal/infrastructure/inbound/metrics"
	"blogicum/internal/infrastructure/logger"
	redis_cache "blogicum/internal/infrastructure/outbound/cache/redis"
	prometheus_metrics "blogicum/internal/infrastructure/outbound/metrics/prometheus"
	category_postgres "blogicum/internal/infrastructure/outbound/repository/category/postgres"
	comment_postgres "blogicum/internal/infrastructure/outbound/repository/comment/postgres"
	location_postgres "blogicum/internal/infrastructure/outbound/repository/location/postgres"
	post_postgres "blogicum/internal/infrastructure/outbound/repository/post/postgres"
	"blogicum/internal/infrastructure/outbound/repository/postgres"
	user_postgres "blogicum/internal/infrastructure/outbound/repository/user/postgres"
	"blogicum/internal/infrastructure/outbound/storage/local"
	"blogicum/internal/infrastructure/outbound/token/jwt"
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

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := postgres.RunMigrations(dsn, cfg.Database.MigrationsPath, log); err != nil {
		log.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Error("Failed to parse postgres poolConfig", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.Database.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Database.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Error("Failed to create postgres pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	metrics := prometheus_metrics.NewPrometheusMetricsProvider()

	log.Info("Connecting to Redis",
		slog.String("address", cfg.Redis.Address),
		slog.Int("port", cfg.Redis.Port),
		slog.Int("db", cfg.Redis.DB))
	redisClient, err := redis_cache.NewClient(cfg.Redis, log, metrics)
	if err != nil {
		log.Error("Failed to create Redis client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", slog.String("error", err.Error()))
		}
	}()

	userCache := redis_cache.NewUserCache(redisClient, log)
	postCache := redis_cache.NewPostCache(redisClient, log)

	mediaStorage, err := local.NewStorage(cfg.Media.Root, cfg.Media.MaxUploadSize, log)
	if err != nil {
		log.Error("Failed to prepare media storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	tokens := jwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, log)

	unitOfWork := postgres.NewPostgresUOW(pool, log, metrics)
	postRepo := post_postgres.NewPostRepository(pool, log, metrics)
	commentRepo := comment_postgres.NewCommentRepository(pool, log, metrics)
	categoryRepo := category_postgres.NewCategoryRepository(pool, log, metrics)
	locationRepo := location_postgres.NewLocationRepository(pool, log, metrics)
	userRepo := user_postgres.NewUserRepository(pool, log, metrics)

	originalPostService := post_service.NewPostService(postRepo, categoryRepo, locationRepo, unitOfWork, mediaStorage, log, metrics)
	postService := post_service.NewPostServiceCacheDecorator(originalPostService, postCache, categoryRepo, locationRepo, log)
	commentService := comment_service.NewCommentService(commentRepo, unitOfWork, postCache, log, metrics)
	feedService := feed_service.NewFeedService(postRepo, categoryRepo, userRepo, log)
	userService := user_service.NewUserService(userRepo, unitOfWork, userCache, tokens, log, metrics)

	renderer, err := view.NewHTMLRenderer(cfg.Media.URLPrefix, log)
	if err != nil {
		log.Error("Failed to load templates", slog.String("error", err.Error()))
		os.Exit(1)
	}
	validate := forms.NewValidator()

	router := http_server.NewRouter(
		http_server.Handlers{
			Feed:    feed_http.NewFeedHandler(feedService, renderer, validate, log),
			Post:    post_http.NewPostHandlers(postService, commentService, renderer, validate, log),
			Comment: comment_http.NewCommentHandlers(commentService, postService, renderer, validate, log),
			User:    user_http.NewUserHandlers(userService, cfg.Auth, renderer, validate, log),
		},
		userService,
		renderer,
		http_server.RouterConfig{
			CookieName:   cfg.Auth.CookieName,
			SecureCookie: cfg.Auth.SecureCookie,
			MediaRoot:    cfg.Media.Root,
			MediaPrefix:  cfg.Media.URLPrefix,
		},
		log,
		metrics,
	)

	httpServer := http_server.NewServer(router, cfg.HTTPServer, log)
	metricsServer := metrics_server.NewMetricsServer(cfg.Prometheus.Address, cfg.Prometheus.Port, log, pool, redisClient)

	metrics.SetServiceHealth(true)

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

	metrics.SetServiceHealth(false)

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
