// cmd/worker-manager/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"marketplace-workers/internal/common/camunda"
	"marketplace-workers/internal/common/config"
	"marketplace-workers/internal/common/logger"
	"marketplace-workers/internal/common/observability"
	"marketplace-workers/pkg/registry"

	cr "marketplace-workers/internal/workers/matching/classify-request"
	ep "marketplace-workers/internal/workers/matching/estimate-price"
	gb "marketplace-workers/internal/workers/matching/generate-bids"
	mp "marketplace-workers/internal/workers/matching/match-professionals"
)

func main() {
	configPath := flag.String("config", "", "Path to a config file; defaults to configs/config.yaml")
	registryPath := flag.String("registry", "configs/activity-registry.json", "Path to the activity registry")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("environment", cfg.App.Environment),
		zap.String("snapshotSource", cfg.Matching.SnapshotSource),
	)

	obs := observability.New(cfg.App.Name, cfg.App.Version)
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Zeebe client with retry ---
	var client *camunda.Client
	err = retryWithBackoff(ctx, func() error {
		var err error
		client, err = camunda.NewClientWithConfig(camunda.ConfigFrom(cfg.Camunda))
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected", zap.String("gateway", cfg.Camunda.BrokerAddress))

	backends, err := openBackends(ctx, cfg, log)
	if err != nil {
		client.Close()
		zapLog.Fatal("snapshot backend unavailable", zap.Error(err))
	}
	defer backends.Close()

	handlers := map[string]camunda.JobHandler{
		mp.TaskType: mp.NewHandler(
			mp.LoadConfig(config.GetWorkerConfig(cfg, mp.TaskType), cfg.Matching),
			backends.Source, obs, log),
		gb.TaskType: gb.NewHandler(
			gb.LoadConfig(config.GetWorkerConfig(cfg, gb.TaskType), cfg.Matching),
			backends.Source, obs, log),
		cr.TaskType: cr.NewHandler(
			cr.LoadConfig(config.GetWorkerConfig(cfg, cr.TaskType)), log),
		ep.TaskType: ep.NewHandler(
			ep.LoadConfig(config.GetWorkerConfig(cfg, ep.TaskType), cfg.Matching), log),
	}
	taskTypes := []string{mp.TaskType, gb.TaskType, cr.TaskType, ep.TaskType}

	checkRegistry(*registryPath, taskTypes, zapLog)

	var workers []*camunda.CamundaWorker
	for _, taskType := range taskTypes {
		if !config.IsWorkerEnabled(cfg, taskType) {
			zapLog.Info("worker disabled", zap.String("taskType", taskType))
			continue
		}
		opts := camunda.OptionsFrom(cfg.App.Name, config.GetWorkerConfig(cfg, taskType))
		workers = append(workers, camunda.NewWorker(client.GetClient(), taskType, opts, handlers[taskType], log))
	}
	zapLog.Info("All workers started", zap.Int("count", len(workers)))

	srv := newHealthServer(cfg.Server.Addr(), client, backends.Pingers())
	go func() {
		zapLog.Info("Health server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("health server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLog.Info("Shutdown signal received, stopping workers...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Warn("health server shutdown", zap.Error(err))
	}

	for _, w := range workers {
		w.Stop()
	}
	if err := client.Close(); err != nil {
		zapLog.Warn("zeebe client close", zap.Error(err))
	}
	zapLog.Info("Worker manager stopped")
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// retryWithBackoff runs operation until it succeeds, doubling the delay after
// each failure.
func retryWithBackoff(ctx context.Context, operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		if err = operation(); err == nil {
			return nil
		}
		if i == maxRetries-1 {
			break
		}
		log.Warn(operationName+" failed, retrying...",
			zap.Error(err),
			zap.Int("attempt", i+1),
			zap.Int("maxRetries", maxRetries),
			zap.Duration("nextRetryIn", delay),
		)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		delay *= 2
	}
	return err
}

// checkRegistry warns about task types served here but absent from the
// activity registry. A missing registry file is not fatal.
func checkRegistry(path string, taskTypes []string, log *zap.Logger) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		log.Warn("activity registry not loaded", zap.String("path", path), zap.Error(err))
		return
	}
	if err := reg.Validate(); err != nil {
		log.Warn("activity registry invalid", zap.Error(err))
	}
	if missing := reg.Missing(taskTypes...); len(missing) > 0 {
		log.Warn("task types missing from activity registry", zap.Strings("taskTypes", missing))
	}
}
