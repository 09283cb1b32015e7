package config

import "time"

// Environment variable names
const (
	EnvHost               = "HOST"
	EnvPort               = "PORT"
	EnvLogLevel           = "LOG_LEVEL"
	EnvLogFormat          = "LOG_FORMAT"
	EnvLogDir             = "LOG_DIR"
	EnvEnvironment        = "ENVIRONMENT"
	EnvDataDir            = "DATA_DIR"
	EnvDBPath             = "DB_PATH"
	EnvLegacyStatePath    = "LEGACY_STATE_PATH"
	EnvCatalogDir         = "CATALOG_DIR"
	EnvAPIKey             = "API_KEY"
	EnvTrustedProxies     = "TRUSTED_PROXIES"
	EnvShortfallCacheSize = "SHORTFALL_CACHE_SIZE"
	EnvShortfallCacheTTL  = "SHORTFALL_CACHE_TTL"
)

// Defaults
const (
	DefaultHost               = "127.0.0.1"
	DefaultPort               = 4317
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "text"
	DefaultLogDir             = "logs"
	DefaultEnvironment        = "dev"
	DefaultShortfallCacheSize = 64
	DefaultShortfallCacheTTL  = 10 * time.Minute

	// AppDirName is created under the user config directory
	AppDirName = "totkaa"
)
