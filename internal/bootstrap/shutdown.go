package bootstrap

import (
	"context"
	"io"
	"log/slog"
)

// Stopper is anything that drains in-flight work before returning
type Stopper interface {
	Stop(ctx context.Context) error
}

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server   Stopper
	Database io.Closer
}

// GracefulShutdown stops the HTTP server first so no request is mid-write,
// then closes the database.
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)
	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Database != nil {
		slog.Info(LogMsgClosingDatabase)
		if err := components.Database.Close(); err != nil {
			slog.Error(LogMsgDatabaseCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
