package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/suparena/resthub/registry"
)

// EnvPrefix prefixes every settings environment variable.
const EnvPrefix = "RESTHUB"

// Settings holds process configuration.
type Settings struct {
	Database DatabaseSettings `envconfig:"DB"`
	Logging  LogSettings      `envconfig:"LOG"`
	Scan     ScanSettings     `envconfig:"SCAN"`
}

// DatabaseSettings selects the bun dialect and connection.
type DatabaseSettings struct {
	Driver string `envconfig:"DRIVER" default:"sqlite3"`
	DSN    string `envconfig:"DSN" default:"file:resthub.db?cache=shared"`
}

// LogSettings holds logging configuration.
type LogSettings struct {
	Level       string `envconfig:"LEVEL" default:"info"`
	Development bool   `envconfig:"DEV" default:"false"`
}

// ScanSettings holds entity scanning configuration.
type ScanSettings struct {
	// ContextFiles is a comma separated list of persistence-context documents.
	ContextFiles []string `envconfig:"CONTEXTS"`
	SourceDir    string   `envconfig:"DIR" default:"."`
	DefaultUnit  string   `envconfig:"UNIT" default:"resthub"`
}

// LoadSettings reads .env files (missing files are ignored) and then
// RESTHUB_* environment variables, e.g. RESTHUB_DB_DRIVER or RESTHUB_SCAN_CONTEXTS.
func LoadSettings(envFiles ...string) (*Settings, error) {
	if err := godotenv.Load(envFiles...); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	var s Settings
	if err := envconfig.Process(EnvPrefix, &s); err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return &s, nil
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() *Settings {
	return &Settings{
		Database: DatabaseSettings{
			Driver: "sqlite3",
			DSN:    "file:resthub.db?cache=shared",
		},
		Logging: LogSettings{
			Level: "info",
		},
		Scan: ScanSettings{
			SourceDir:   ".",
			DefaultUnit: registry.DefaultUnit,
		},
	}
}
