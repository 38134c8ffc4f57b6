// cmd/worker-manager/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"studyabroad-workers/internal/api"
	"studyabroad-workers/internal/catalog"
	awsclients "studyabroad-workers/internal/common/aws"
	"studyabroad-workers/internal/common/camunda"
	"studyabroad-workers/internal/common/config"
	"studyabroad-workers/internal/common/database"
	"studyabroad-workers/internal/common/logger"
	"studyabroad-workers/internal/common/observability"
	"studyabroad-workers/internal/counsellor"
	"studyabroad-workers/internal/store"
	"studyabroad-workers/pkg/registry"

	// Profile & discovery workers
	ap "studyabroad-workers/internal/workers/profile/analyze-profile"
	euf "studyabroad-workers/internal/workers/discovery/explain-university-fit"
	fu "studyabroad-workers/internal/workers/discovery/filter-universities"
	ru "studyabroad-workers/internal/workers/discovery/recommend-universities"

	// Counsellor workers
	aca "studyabroad-workers/internal/workers/counsellor/apply-counsellor-action"
	cc "studyabroad-workers/internal/workers/counsellor/counsellor-chat"
	cg "studyabroad-workers/internal/workers/counsellor/counsellor-greeting"

	sn "studyabroad-workers/internal/workers/notification/send-notification"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

// workerTimeout returns the configured timeout for taskType, or def when unset.
func workerTimeout(cfg *config.Config, taskType string, def time.Duration) time.Duration {
	if ms := config.GetWorkerConfig(cfg, taskType).Timeout; ms > 0 {
		return config.GetDuration(ms)
	}
	return def
}

func main() {
	bootLog := logger.New("info", "console")

	// CONFIG_FILE points at one explicit file; otherwise configs/ is searched.
	var cfg *config.Config
	var err error
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
		zap.String("catalogSource", cfg.Catalog.Source),
		zap.String("counsellor", cfg.Counsellor.Provider),
	)

	names := make([]string, 0, len(cfg.Workers))
	for name := range cfg.Workers {
		names = append(names, name)
	}
	if unknown := registry.Unknown(names); len(unknown) > 0 {
		zapLog.Warn("config lists workers that do not exist", zap.Strings("taskTypes", unknown))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}

	// --- Zeebe ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.Dial(ctx, cfg.Camunda)
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	defer zeebe.Close()
	zapLog.Info("Zeebe client connected successfully")

	// --- PostgreSQL ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Redis ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	checks := map[string]api.Check{
		"postgres": pg.Ping,
		"redis":    rdb.Ping,
		"zeebe":    zeebe.HealthCheck,
	}

	// --- Elasticsearch, only for an indexed catalog ---
	var es *elasticsearch.Client
	if cfg.Catalog.Source == config.CatalogSourceElasticsearch {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		es = esClient.Client
		checks["elasticsearch"] = esClient.Ping
		zapLog.Info("Elasticsearch connected successfully")
	}

	// --- Domain services ---
	profiles := store.New(pg.DB, rdb.Client, rdb.TTL)
	if err := profiles.Migrate(ctx); err != nil {
		zapLog.Fatal("profile store migration failed", zap.Error(err))
	}

	src, err := catalog.New(cfg.Catalog, pg.DB, es, rdb.Client)
	if err != nil {
		zapLog.Fatal("catalog init failed", zap.Error(err))
	}

	responder, err := counsellor.New(ctx, cfg.Counsellor, log.WithFields(map[string]interface{}{"component": "counsellor"}))
	if err != nil {
		zapLog.Fatal("counsellor init failed", zap.Error(err))
	}

	// --- Workers ---
	workers := camunda.NewRegistry(zeebe, obs, log)

	{
		c := ap.LoadConfig()
		c.Timeout = workerTimeout(cfg, ap.TaskType, c.Timeout)
		workers.Start(ap.TaskType, config.GetWorkerConfig(cfg, ap.TaskType), ap.NewHandler(c, profiles, log).Handle)
	}
	{
		c := ru.LoadConfig()
		c.Timeout = workerTimeout(cfg, ru.TaskType, c.Timeout)
		workers.Start(ru.TaskType, config.GetWorkerConfig(cfg, ru.TaskType), ru.NewHandler(c, src, profiles, log).Handle)
	}
	{
		c := euf.LoadConfig()
		c.Timeout = workerTimeout(cfg, euf.TaskType, c.Timeout)
		workers.Start(euf.TaskType, config.GetWorkerConfig(cfg, euf.TaskType), euf.NewHandler(c, src, profiles, log).Handle)
	}
	{
		c := fu.LoadConfig()
		c.Timeout = workerTimeout(cfg, fu.TaskType, c.Timeout)
		workers.Start(fu.TaskType, config.GetWorkerConfig(cfg, fu.TaskType), fu.NewHandler(c, src, log).Handle)
	}
	{
		c := cc.LoadConfig()
		c.Timeout = workerTimeout(cfg, cc.TaskType, c.Timeout)
		workers.Start(cc.TaskType, config.GetWorkerConfig(cfg, cc.TaskType), cc.NewHandler(c, profiles, src, responder, log).Handle)
	}
	{
		c := cg.LoadConfig()
		c.Timeout = workerTimeout(cfg, cg.TaskType, c.Timeout)
		workers.Start(cg.TaskType, config.GetWorkerConfig(cfg, cg.TaskType), cg.NewHandler(c, profiles, src, log).Handle)
	}
	{
		c := aca.LoadConfig()
		c.Timeout = workerTimeout(cfg, aca.TaskType, c.Timeout)
		workers.Start(aca.TaskType, config.GetWorkerConfig(cfg, aca.TaskType), aca.NewHandler(c, profiles, src, log).Handle)
	}
	// AWS clients are only built when notifications are on.
	if config.IsWorkerEnabled(cfg, sn.TaskType) {
		clients, err := awsclients.NewClients(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("aws clients init failed", zap.Error(err))
		}
		c := sn.LoadConfig(cfg.Notifications)
		c.Timeout = workerTimeout(cfg, sn.TaskType, c.Timeout)
		workers.Start(sn.TaskType, config.GetWorkerConfig(cfg, sn.TaskType), sn.NewHandler(c, profiles, src, clients.SES, clients.SNS, log).Handle)
	}

	zapLog.Info("Workers registered", zap.Int("count", workers.Count()))

	// --- HTTP: health, readiness, metrics and the API ---
	server := api.NewServer(src, profiles, responder, api.Options{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		Checks:         checks,
	}, log)
	httpServer := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.HTTP.Address))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		zapLog.Info("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			zapLog.Warn("HTTP shutdown", zap.Error(err))
		}
		workers.Close()
		return obs.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zapLog.Error("worker manager exited with error", zap.Error(err))
	}
	zapLog.Info("Worker manager stopped")
}
