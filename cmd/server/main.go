package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/MarckFp/ppoc-gen-v2/internal/api"
	"github.com/MarckFp/ppoc-gen-v2/internal/engine"
	"github.com/MarckFp/ppoc-gen-v2/internal/job"
	"github.com/MarckFp/ppoc-gen-v2/internal/logger"
	"github.com/MarckFp/ppoc-gen-v2/internal/metrics"
	"github.com/MarckFp/ppoc-gen-v2/internal/repository"
	"github.com/MarckFp/ppoc-gen-v2/internal/repository/memory"
	"github.com/MarckFp/ppoc-gen-v2/internal/repository/postgres"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	log, err := logger.NewLogger(env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, closeStore := mustOpenStore(log)
	defer closeStore()

	registry := metrics.NewMetricsRegistry()

	driver := engine.NewDriver(asStore(db), engine.DefaultConfig())
	driver.Metrics = metrics.NewEngineRecorder(registry)
	driver.Logger = log
	if seed := os.Getenv("GENERATION_SEED"); seed != "" {
		if parsed, parseErr := strconv.ParseUint(seed, 10, 64); parseErr == nil {
			driver.Seed = parsed
		}
	}

	var scheduler *job.JobScheduler
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		scheduler, err = job.NewJobScheduler(redisAddr)
		if err != nil {
			log.Fatalw("failed to connect job scheduler to redis", "error", err)
		}
		defer scheduler.Close()
	} else {
		log.Warn("REDIS_ADDR not set, async shift generation is disabled")
	}

	router := api.NewRouter(db, driver, scheduler, log)
	router.Echo().GET("/metrics", echo.WrapHandler(registry.GetHandler()))

	addr := os.Getenv("SERVER_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	go func() {
		log.Infow("starting server", "addr", addr)
		if startErr := router.Start(addr); startErr != nil && startErr != http.ErrServerClosed {
			log.Fatalw("server failed", "error", startErr)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	_, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if shutdownErr := router.Shutdown(); shutdownErr != nil {
		log.Errorw("server shutdown error", "error", shutdownErr)
	}
}

// mustOpenStore opens the configured backing store (postgres when
// DATABASE_URL is set, in-memory otherwise) and returns it alongside a
// function that releases its resources.
func mustOpenStore(log *zap.SugaredLogger) (repository.Database, func()) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Warn("DATABASE_URL not set, using in-memory store")
		store := memory.New()
		return store, func() {}
	}

	db, err := postgres.New(dsn)
	if err != nil {
		log.Fatalw("failed to connect to postgres", "error", err)
	}
	return db, func() { _ = db.Close() }
}

// asStore adapts a Database into the narrower Store interface the
// engine depends on. memory.Store already satisfies Store directly;
// postgres.DB needs the generic adapter.
func asStore(db repository.Database) repository.Store {
	if store, ok := db.(repository.Store); ok {
		return store
	}
	return repository.NewStoreAdapter(db)
}
