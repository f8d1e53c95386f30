package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/quangdm-dev/meeting-flow/internal/config"
	"github.com/quangdm-dev/meeting-flow/internal/logger"
	"github.com/quangdm-dev/meeting-flow/internal/orchestrator"
	"github.com/quangdm-dev/meeting-flow/internal/provider"
	"github.com/quangdm-dev/meeting-flow/internal/storage"
	"github.com/quangdm-dev/meeting-flow/internal/watcher"
)

func main() {
	ctx := context.Background()

	// API keys usually live in .env during local runs
	_ = godotenv.Load()

	configPath := "config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Meeting Summarization Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Providers configured: %d", len(cfg.Providers))
	log.Info(ctx, "Max concurrent processing: %d", cfg.Watcher.MaxConcurrent)
	log.Info(ctx, "Configuration loaded successfully")

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	providers, err := provider.FromConfig(cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to build providers: %v", err)
		os.Exit(1)
	}

	writer := storage.New(cfg.Paths, log)
	orch := orchestrator.New(cfg, providers, writer, log)

	handler := func(ctx context.Context, filePath string) error {
		_, err := orch.Process(ctx, filePath)
		if errors.Is(err, orchestrator.ErrAlreadyProcessing) {
			log.Debug(ctx, "Skipping %s: already in flight", filePath)
			return nil
		}
		return err
	}

	w, err := watcher.New(cfg.Paths.Input, cfg.Watcher, handler, log)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	if found := w.ScanExisting(ctx); found > 0 {
		log.Info(ctx, "Startup scan dispatched %d transcript(s)", found)
	}

	log.Info(ctx, "========================================")
	log.Info(ctx, "Pipeline is ready!")
	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Summaries: %s", cfg.Paths.Summaries)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Watcher error: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	log.Info(ctx, "Pipeline stopped")
}

// ensureDirectories creates the working tree if it doesn't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Summaries,
		cfg.Paths.Archived,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
