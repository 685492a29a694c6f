// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-field-sync client. It is populated by merging values from defaults,
// environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings.
	App App `envPrefix:"APP_"`

	// Log holds logging settings.
	Log Log `envPrefix:"LOG_"`

	// Storage holds configuration of the local cache database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds settings of the local control API consumed by UI collaborators.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds settings of the remote REST API the engine syncs against.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds background sync settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Log holds logger settings.
type Log struct {
	// Level is a zerolog level name ("debug", "info", ...).
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`
}

// Storage groups the local persistence settings.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local cache.
type DB struct {
	// Driver is either "sqlite3" (default) or "pgx".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the SQLite file path (or ":memory:") or a PostgreSQL URL.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the control API.
type Server struct {
	// HTTPAddress is the "host:port" the control API listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Token, when set, must be sent as "Authorization: Bearer <token>" by
	// every control API caller.
	// Env: SERVER_TOKEN
	Token string `env:"TOKEN"`
}

// Adapter holds settings of the remote gateway.
type Adapter struct {
	// HTTPAddress is the base URL of the remote REST API.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the timeout of a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Token is the bearer token attached to every request.
	// Env: ADAPTER_TOKEN
	Token string `env:"TOKEN"`
}

// Workers holds configuration for background sync.
type Workers struct {
	// SyncInterval is the period of the background pull+push cycle.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// FanOutLimit caps concurrently running secondary syncs per page.
	// Env: WORKERS_FAN_OUT_LIMIT
	FanOutLimit int `env:"FAN_OUT_LIMIT"`
}

// Defaults returns the lowest-priority configuration layer.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		Log:     Log{Level: "info"},
		Storage: Storage{DB: DB{Driver: DriverSQLite, DSN: "fieldsync.db"}},
		Server:  Server{HTTPAddress: "localhost:8090", RequestTimeout: 2 * time.Minute},
		Adapter: Adapter{RequestTimeout: 30 * time.Second},
		Workers: Workers{SyncInterval: 5 * time.Minute, FanOutLimit: 4},
	}
}

// Supported local database drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// GetStructuredConfig loads, merges, and validates the configuration from all
// sources in the following priority order (last source wins for non-zero
// fields):
//  1. Defaults
//  2. Environment variables
//  3. Command-line flags (flagCfg, already parsed; may be nil)
//  4. JSON file (path resolved from sources 2 and 3)
func GetStructuredConfig(flagCfg *StructuredConfig) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(flagCfg).
		withJSON().
		build()
}
