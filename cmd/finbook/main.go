package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"finbook/internal/config"
	"finbook/internal/gateway"
	apphttp "finbook/internal/http"
	"finbook/internal/service"
	"finbook/internal/store"
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	st, err := store.New(store.Config{
		Type:         store.BackendType(cfg.Backend),
		FilePath:     cfg.SnapshotPath,
		SQLiteDBPath: cfg.SQLiteDBPath,
	}, logger)
	if err != nil {
		logger.Error("Failed to initialize snapshot store", "error", err, "backend", cfg.Backend)
		os.Exit(1)
	}
	defer st.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	book := service.NewFromStore(ctx, st, logger)
	gw := gateway.New(st, book, book, logger, gateway.Options{
		Debounce:      cfg.SaveDebounce,
		SaveInterval:  cfg.SaveInterval,
		WatchInterval: cfg.WatchInterval,
	})
	book.SetNotifier(gw.MarkDirty)

	srv := apphttp.NewServer(":"+cfg.Port, book, gw, logger)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return gw.Run(ctx)
	})

	g.Go(func() error {
		logger.Info("Starting finbook server", "port", cfg.Port, "backend", cfg.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
