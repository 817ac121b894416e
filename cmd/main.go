package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cv-filters/config"
	"cv-filters/internal/api/telegram"
	"cv-filters/internal/api/web"
	"cv-filters/internal/container"
	"cv-filters/internal/infrastructure/rembg"
	"cv-filters/internal/infrastructure/scheduler"
	"cv-filters/internal/infrastructure/source"
	"cv-filters/internal/infrastructure/storage"
	"cv-filters/internal/infrastructure/vision"
)

const shutdownTimeout = 5 * time.Second

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := run(); err != nil {
		slog.Error("application stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	remover, err := rembg.New(rembg.Config{
		Mode:        cfg.RembgMode,
		ModelPath:   cfg.RembgModelPath,
		LibraryPath: cfg.OnnxRuntimeLib,
		URL:         cfg.RembgURL,
		Timeout:     cfg.RembgTimeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := remover.Close(); err != nil {
			slog.Error("close background remover", "error", err)
		}
	}()
	if cfg.RembgMode == rembg.ModeNone {
		slog.Warn("background removal is disabled, set REMBG_MODE to onnx or http")
	} else {
		slog.Info("background remover ready", "mode", cfg.RembgMode)
	}

	// Собираем сервисы приложения
	appContainer := container.New(container.Deps{
		Source:         source.NewFileSource(cfg.SamplesDir),
		Processor:      vision.NewProcessor(),
		Remover:        remover,
		Results:        storage.NewMemoryResultRepository(),
		Users:          storage.NewMemoryUserRepository(),
		DefaultSample:  cfg.DefaultSample,
		PreviewMaxSide: cfg.PreviewMaxSide,
	})

	cleanup, err := scheduler.NewCleanup(cfg.CleanupSchedule, cfg.ResultTTL, appContainer.ProcessingService)
	if err != nil {
		return err
	}
	cleanup.Start()

	server := web.NewServer(cfg.HTTPAddr, appContainer, web.Options{
		UploadMaxBytes: cfg.UploadMaxBytes,
		PreviewMaxSide: cfg.PreviewMaxSide,
	})

	errCh := make(chan error, 2)
	go func() {
		errCh <- server.Run()
	}()

	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(cfg.TelegramToken, appContainer, cfg.UploadMaxBytes)
		if err != nil {
			slog.Error("telegram bot disabled", "error", err)
		} else {
			go func() {
				errCh <- bot.Run(ctx)
			}()
		}
	}

	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case err = <-errCh:
		if err != nil {
			slog.Error("server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	cleanup.Stop(shutdownCtx)
	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil && !errors.Is(shutdownErr, context.DeadlineExceeded) {
		slog.Error("http shutdown", "error", shutdownErr)
	}

	return err
}
