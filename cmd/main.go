package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/go-redis/redis_rate/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"github.com/mraditya/flight-journal-service/internal/app/config"
	"github.com/mraditya/flight-journal-service/internal/app/dto"
	"github.com/mraditya/flight-journal-service/internal/app/endpoints"
	"github.com/mraditya/flight-journal-service/internal/app/repository"
	"github.com/mraditya/flight-journal-service/internal/app/service"
	"github.com/mraditya/flight-journal-service/internal/app/transport"
	"github.com/mraditya/flight-journal-service/internal/pkg/logger"
	"github.com/mraditya/flight-journal-service/internal/pkg/statscache"
	"github.com/mraditya/flight-journal-service/migrations"
)

// @title           Flight Journal Service API
// @version         0.0.1
// @description     flight-journal-service
// @host      localhost:8080
// @BasePath  /
func main() {
	cfg := config.MustInitConfig(".env")
	logger.InitStructuredLogger(cfg.LogLevel)

	slog.Debug("config loaded successfully", slog.Any("config", cfg))
	runApp(cfg)
}

func runApp(cfg config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slog.InfoContext(ctx, "starting...", slog.String("log_level", string(cfg.LogLevel)))

	pool := mustInitDatabase(ctx, cfg)
	defer pool.Close()

	var waitGroup sync.WaitGroup
	// Starts the server in a go routine
	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		startHTTPServer(ctx, cfg, pool)
	}()

	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case sig := <-sigChannel:
		cancel()
		slog.InfoContext(ctx, "received OS signal. Exiting...", slog.String("signal", sig.String()))
	case <-ctx.Done():
		slog.ErrorContext(ctx, "failed to start HTTP server")
	}

	waitGroup.Wait()
	slog.InfoContext(ctx, "All service closed...")
}

func mustInitDatabase(ctx context.Context, cfg config.Config) *pgxpool.Pool {
	poolCfg, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		slog.ErrorContext(ctx, "invalid database DSN", slog.String("error", err.Error()))
		panic(err)
	}

	if cfg.DB.MaxConnections > 0 {
		poolCfg.MaxConns = int32(cfg.DB.MaxConnections)
	}

	if cfg.DB.MinConnections > 0 {
		poolCfg.MinConns = int32(cfg.DB.MinConnections)
	}

	if cfg.DB.MaxConnectionLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.DB.MaxConnectionLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create connection pool", slog.String("error", err.Error()))
		panic(err)
	}

	if err := pool.Ping(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to ping database", slog.String("error", err.Error()))
		panic(err)
	}

	mustRunMigrations(ctx, pool)

	return pool
}

func mustRunMigrations(ctx context.Context, pool *pgxpool.Pool) {
	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("postgres"); err != nil {
		slog.ErrorContext(ctx, "failed to set migration dialect", slog.String("error", err.Error()))
		panic(err)
	}

	db := stdlib.OpenDBFromPool(pool)

	if err := goose.UpContext(ctx, db, "."); err != nil {
		slog.ErrorContext(ctx, "failed to run migrations", slog.String("error", err.Error()))
		panic(err)
	}

	if err := db.Close(); err != nil {
		slog.WarnContext(ctx, "failed to close migration connection", slog.String("error", err.Error()))
	}

	slog.InfoContext(ctx, "database migrations applied")
}

func startHTTPServer(ctx context.Context, cfg config.Config, pool *pgxpool.Pool) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	limiter := redis_rate.NewLimiter(redisClient)

	endpts := makeEndpoints(ctx, &cfg, pool, redisClient)
	router := transport.MakeHTTPRouter(&cfg, endpts, limiter)
	server := &http.Server{
		Handler:      router,
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		WriteTimeout: cfg.HTTP.Timeout,
		ReadTimeout:  cfg.HTTP.Timeout,
	}

	slog.Info("running HTTP server...", slog.Int("port", cfg.HTTP.Port))

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "failed to start HTTP server", slog.String("error", err.Error()))
		}
	}()

	<-ctx.Done()

	if err := server.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to shutdown HTTP server", slog.String("error", err.Error()))
	}

	slog.InfoContext(ctx, "HTTP server shutdown gracefully")
}

func makeEndpoints(ctx context.Context, cfg *config.Config,
	pool *pgxpool.Pool, redisClient *redis.Client) endpoints.Endpoints {
	// init validator
	if err := dto.InitValidator(); err != nil {
		slog.ErrorContext(ctx, "failed to init validator", slog.String("error", err.Error()))
		panic(err)
	}

	// repositories
	flightRepo := repository.NewFlightRepo(pool)
	groupRepo := repository.NewGroupRepo(pool)
	emailAccountRepo := repository.NewEmailAccountRepo(pool)
	airlineRuleRepo := repository.NewAirlineRuleRepo(pool)

	// cache
	statsCache := statscache.NewStatsCache(redisClient)

	// services
	flightService := service.NewFlightService(flightRepo, statsCache,
		cfg.Stats.CacheExpiration, cfg.Stats.LockTimeout)
	groupService := service.NewGroupService(groupRepo, flightRepo)
	emailAccountService := service.NewEmailAccountService(emailAccountRepo)
	airlineRuleService := service.NewAirlineRuleService(airlineRuleRepo)
	inboxService := service.NewInboxService(flightRepo, emailAccountRepo,
		airlineRuleService, groupService, statsCache,
		cfg.Forwarding.Enabled, cfg.Forwarding.Domain)

	return endpoints.MakeEndpoints(flightService, groupService,
		emailAccountService, airlineRuleService, inboxService)
}
