package main

import (
	"net/http"
	"os"

	"github.com/hibiken/asynq"

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

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		log.Fatal("REDIS_ADDR must be set to run the worker")
	}

	var db repository.Database
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		pg, err := postgres.New(dsn)
		if err != nil {
			log.Fatalw("failed to connect to postgres", "error", err)
		}
		defer pg.Close()
		db = pg
	} else {
		log.Warn("DATABASE_URL not set, using in-memory store")
		db = memory.New()
	}

	var store repository.Store
	if s, ok := db.(repository.Store); ok {
		store = s
	} else {
		store = repository.NewStoreAdapter(db)
	}

	registry := metrics.NewMetricsRegistry()

	driver := engine.NewDriver(store, engine.DefaultConfig())
	driver.Metrics = metrics.NewEngineRecorder(registry)
	driver.Logger = log

	handlers := job.NewJobHandlers(driver, log)
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	if metricsAddr := os.Getenv("METRICS_ADDR"); metricsAddr != "" {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", registry.GetHandler())
		go func() {
			log.Infow("serving worker metrics", "addr", metricsAddr)
			if err := http.ListenAndServe(metricsAddr, metricsMux); err != nil {
				log.Errorw("metrics server stopped", "error", err)
			}
		}()
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	log.Infow("starting shift generation worker", "redis_addr", redisAddr)
	if err := srv.Run(mux); err != nil {
		log.Fatalw("worker server failed", "error", err)
	}
}
