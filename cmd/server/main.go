package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/dashboard/internal/app"
	"github.com/fastygo/dashboard/internal/config"
	"github.com/fastygo/dashboard/internal/infrastructure/monitor"
	pgInfra "github.com/fastygo/dashboard/internal/infrastructure/postgres"
	redisInfra "github.com/fastygo/dashboard/internal/infrastructure/redis"
	"github.com/fastygo/dashboard/internal/metrics"
	"github.com/fastygo/dashboard/internal/services/lifecycle"
	"github.com/fastygo/dashboard/pkg/logger"
	"github.com/fastygo/dashboard/repository/memory"
	"github.com/fastygo/dashboard/repository/postgres"
	redisRepo "github.com/fastygo/dashboard/repository/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		Service:  cfg.AppName,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	manager := lifecycle.New(context.Background(), cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen()

	repos, checks := openStorage(cfg, manager, zapLogger)

	var health *monitor.Monitor
	if len(checks) > 0 {
		health = monitor.New(10*time.Second, zapLogger, checks...)
		health.Start()
		manager.Register("monitor", func(ctx context.Context) error {
			health.Stop()
			return nil
		})
	}

	opts := app.Options{Pprof: cfg.HTTP.EnablePprof}
	if health != nil {
		opts.Health = health
	}
	if cfg.HTTP.EnableMetrics {
		opts.Metrics = metrics.NewHTTP()
	}

	server := &fasthttp.Server{
		Handler:      app.NewHandler(cfg, repos, opts, zapLogger),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Concurrency:  cfg.HTTP.MaxConn,
		Name:         cfg.AppName,
	}

	manager.Go("http_server", func() error {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("storage", cfg.Storage.Driver),
			zap.Bool("sessions", repos.Sessions != nil))
		return server.ListenAndServe(cfg.Address())
	})
	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-manager.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
	if err := manager.Err(); err != nil {
		zapLogger.Fatal("server stopped on error", zap.Error(err))
	}
}

// openStorage connects the configured driver and returns its repositories with
// the health checks that cover them. Connection failures at boot are fatal.
func openStorage(cfg *config.Config, manager *lifecycle.Manager, zapLogger *zap.Logger) (app.Repositories, []monitor.Check) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var (
		repos  app.Repositories
		checks []monitor.Check
	)

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store := memory.NewStore()
		repos = app.Repositories{
			Users:     store.Users(),
			Sessions:  store.Sessions(),
			Tasks:     store.Tasks(),
			Habits:    store.Habits(),
			Goals:     store.Goals(),
			Layouts:   store.Layouts(),
			Analytics: store.Analytics(),
		}
		zapLogger.Warn("using in-memory storage; data is lost on restart")
	default:
		if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
			zapLogger.Fatal("migrations failed", zap.Error(err))
		}

		pool, err := pgInfra.NewPool(ctx, cfg.Database, zapLogger)
		if err != nil {
			zapLogger.Fatal("postgres connection failed", zap.Error(err))
		}
		manager.Register("postgres", func(ctx context.Context) error {
			pgInfra.Close(pool, zapLogger)
			return nil
		})
		checks = append(checks, monitor.PostgresCheck(pool))

		repos = app.Repositories{
			Users:     postgres.NewUserRepository(pool),
			Tasks:     postgres.NewTaskRepository(pool),
			Habits:    postgres.NewHabitRepository(pool),
			Goals:     postgres.NewGoalRepository(pool),
			Layouts:   postgres.NewLayoutRepository(pool),
			Analytics: postgres.NewAnalyticsRepository(pool),
		}
	}

	if cfg.Redis.Enabled {
		redisClient, err := redisInfra.NewClient(ctx, cfg.Redis, zapLogger)
		if err != nil {
			zapLogger.Fatal("redis connection failed", zap.Error(err))
		}
		manager.Register("redis", func(ctx context.Context) error {
			redisInfra.Close(redisClient, zapLogger)
			return nil
		})
		checks = append(checks, monitor.RedisCheck(redisClient))
		repos.Sessions = redisRepo.NewSessionRepository(redisClient, cfg.JWT.TTL)
	}

	return repos, checks
}
