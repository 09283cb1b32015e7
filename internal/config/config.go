package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/koscheiundead/totkaa-v2/internal/database"
)

// Config holds the application configuration
type Config struct {
	Host        string `validate:"required"`
	Port        int    `validate:"min=1,max=65535"`
	LogLevel    string `validate:"oneof=debug info warn warning error"`
	LogFormat   string `validate:"oneof=json text"`
	LogDir      string
	Environment string

	DataDir         string `validate:"required"`
	DBPath          string `validate:"required"`
	LegacyStatePath string // optional save file from the previous desktop app
	CatalogDir      string // optional directory overriding the embedded tables

	APIKey         string // empty means the server generates one under DataDir
	TrustedProxies []string

	ShortfallCacheSize int           `validate:"min=1"`
	ShortfallCacheTTL  time.Duration `validate:"gt=0"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	dataDir := getEnv(EnvDataDir, "")
	if dataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user config directory: %w", err)
		}
		dataDir = filepath.Join(base, AppDirName)
	}

	cfg := &Config{
		Host:               getEnv(EnvHost, DefaultHost),
		LogLevel:           strings.ToLower(getEnv(EnvLogLevel, DefaultLogLevel)),
		LogFormat:          strings.ToLower(getEnv(EnvLogFormat, DefaultLogFormat)),
		LogDir:             getEnv(EnvLogDir, DefaultLogDir),
		Environment:        getEnv(EnvEnvironment, DefaultEnvironment),
		DataDir:            dataDir,
		DBPath:             getEnv(EnvDBPath, database.DefaultDBPath(dataDir)),
		LegacyStatePath:    getEnv(EnvLegacyStatePath, ""),
		CatalogDir:         getEnv(EnvCatalogDir, ""),
		APIKey:             getEnv(EnvAPIKey, ""),
		TrustedProxies:     getEnvAsList(EnvTrustedProxies),
		ShortfallCacheSize: getEnvAsInt(EnvShortfallCacheSize, DefaultShortfallCacheSize),
		ShortfallCacheTTL:  getEnvAsDuration(EnvShortfallCacheTTL, DefaultShortfallCacheTTL),
	}

	portStr := getEnv(EnvPort, strconv.Itoa(DefaultPort))
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
// A variable set to the empty string counts as unset.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma separated variable, dropping empty entries
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
