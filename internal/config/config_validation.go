package config

import (
	"fmt"
	"time"
)

// Storage backend identifiers accepted in [Storage.Backend].
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Built-in fallbacks applied after all sources are merged.
const (
	defaultHTTPAddress    = "localhost:8080"
	defaultDataDir        = "./data"
	defaultSessionTimeout = 30 * time.Minute
	defaultSweepInterval  = 5 * time.Minute
	defaultTokenDuration  = time.Hour
	defaultRequestTimeout = 30 * time.Second
)

// applyDefaults fills zero-valued fields the application cannot run without.
func (c *StructuredConfig) applyDefaults() {
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendFile
	}
	if c.Storage.Files.DataDir == "" {
		c.Storage.Files.DataDir = defaultDataDir
	}
	if c.Server.HTTPAddress == "" {
		c.Server.HTTPAddress = defaultHTTPAddress
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = defaultRequestTimeout
	}
	if c.Sessions.Timeout == 0 {
		c.Sessions.Timeout = defaultSessionTimeout
	}
	if c.Sessions.SweepInterval == 0 {
		c.Sessions.SweepInterval = defaultSweepInterval
	}
	if c.App.TokenDuration == 0 {
		c.App.TokenDuration = defaultTokenDuration
	}
}

// validate checks cross-field consistency of the merged configuration.
func (c *StructuredConfig) validate() error {
	switch c.Storage.Backend {
	case BackendFile:
		// DataDir is defaulted, nothing more to check.
	case BackendSQLite:
		if c.Storage.SQLite.DSN == "" {
			return fmt.Errorf("%w: sqlite backend requires STORAGE_SQLITE_DSN", errInvalidConfig)
		}
	case BackendPostgres:
		if c.Storage.DB.DSN == "" {
			return fmt.Errorf("%w: postgres backend requires STORAGE_DB_DATABASE_URI", errInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage backend %q", errInvalidConfig, c.Storage.Backend)
	}

	if c.Sessions.Timeout < 0 || c.Sessions.SweepInterval < 0 {
		return fmt.Errorf("%w: session durations must be positive", errInvalidConfig)
	}

	return nil
}
