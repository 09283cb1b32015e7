package main

import (
	"log/slog"
	"os"

	"github.com/koscheiundead/totkaa-v2/internal/bootstrap"
	"github.com/koscheiundead/totkaa-v2/internal/config"
	"github.com/koscheiundead/totkaa-v2/internal/logger"
)

// initLogger installs the session logger, falling back to stdout only when
// the log directory cannot be used. The returned file may be nil.
func initLogger(cfg *config.Config, version string) *os.File {
	logFile, err := bootstrap.SetupLogger(cfg, version)
	if err == nil {
		return logFile
	}

	logger.InitLogger(logger.ForEnvironment(cfg.LogLevel, cfg.LogFormat, version, cfg.Environment))
	slog.Warn("File logging disabled", "error", err)
	return nil
}
