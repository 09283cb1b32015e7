package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/koscheiundead/totkaa-v2/internal/bootstrap"
	"github.com/koscheiundead/totkaa-v2/internal/bridge"
	"github.com/koscheiundead/totkaa-v2/internal/catalog"
	"github.com/koscheiundead/totkaa-v2/internal/config"
	"github.com/koscheiundead/totkaa-v2/internal/handler"
	"github.com/koscheiundead/totkaa-v2/internal/logger"
	"github.com/koscheiundead/totkaa-v2/internal/server"
	"github.com/koscheiundead/totkaa-v2/internal/tracker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger.InitLogger(logger.DefaultConfig())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	if logFile := initLogger(cfg, handler.Version); logFile != nil {
		defer logFile.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Tracker exited with error", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	if err := bootstrap.EnsureAPIKey(cfg); err != nil {
		return err
	}

	cat, err := bootstrap.LoadCatalog(ctx, catalog.NewLoader(), cfg.CatalogDir)
	if err != nil {
		return err
	}

	storage, err := bootstrap.OpenStorage(ctx, cfg.DBPath, cfg.LegacyStatePath, cat)
	if err != nil {
		return err
	}

	svc := tracker.NewService(storage.Repository, cat, tracker.CacheConfig{
		Size: cfg.ShortfallCacheSize,
		TTL:  cfg.ShortfallCacheTTL,
	})
	srv := server.NewServer(server.Options{
		Host:           cfg.Host,
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
	}, storage.DB, bridge.New(svc))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	var runErr error
	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case runErr = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:   srv,
		Database: storage.DB,
	})

	stats := svc.GetCacheStats()
	slog.Info("Shortfall cache stats", "hits", stats.Hits, "misses", stats.Misses, "size", stats.Size)
	return runErr
}
