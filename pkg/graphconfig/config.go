// Package graphconfig configures the cmd/quackgraph driver.
//
// quackgraph is a library first: the index itself (pkg/graph) takes no
// configuration at all. This package configures only the thin CLI driver
// around it — where to read/write its default snapshot, whether to compact
// after ingestion, and a log level setting — following the same
// environment-variable-first pattern as the teacher's pkg/config
// (LoadFromEnv/Validate), scaled down to the handful of settings a library
// driver actually needs. Variables are prefixed QUACKGRAPH_.
package graphconfig

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the cmd/quackgraph driver's configuration.
type Config struct {
	// DataDir is the driver's data directory (the default SnapshotPath lies
	// inside its default). No command reads it; snapshot paths are used as
	// given, not resolved against DataDir.
	DataDir string `yaml:"data_dir"`

	// SnapshotPath is the default snapshot file used by `ingest`, `query`,
	// `stats`, and as the source of `snapshot save` when no --snapshot flag
	// is given. `snapshot load` takes its path as an argument instead.
	SnapshotPath string `yaml:"snapshot_path"`

	// CompactOnExit controls whether `ingest` runs Compact() before saving.
	CompactOnExit bool `yaml:"compact_on_exit"`

	// LogLevel names a verbosity level (debug, info, warn, error), checked
	// by Validate. The CLI commands print plain output and do not read it.
	LogLevel string `yaml:"log_level"`
}

// LoadFromEnv loads configuration from QUACKGRAPH_-prefixed environment
// variables, falling back to defaults for anything unset.
func LoadFromEnv() *Config {
	return &Config{
		DataDir:       getEnv("QUACKGRAPH_DATA_DIR", "./data"),
		SnapshotPath:  getEnv("QUACKGRAPH_SNAPSHOT_PATH", "./data/snapshot.json"),
		CompactOnExit: getEnvBool("QUACKGRAPH_COMPACT_ON_EXIT", true),
		LogLevel:      getEnv("QUACKGRAPH_LOG_LEVEL", "info"),
	}
}

// LoadFile loads configuration from a YAML file at path, following the same
// env-vars-or-file two-source pattern the teacher's apoc.Config documents
// (apoc.LoadFromEnv / apoc.LoadConfig). Fields absent from the file keep
// their LoadFromEnv default.
func LoadFile(path string) (*Config, error) {
	cfg := LoadFromEnv()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("graphconfig: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("graphconfig: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for logical errors.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("graphconfig: data dir must not be empty")
	}
	if c.SnapshotPath == "" {
		return fmt.Errorf("graphconfig: snapshot path must not be empty")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("graphconfig: invalid log level %q", c.LogLevel)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		val = strings.ToLower(val)
		return val == "true" || val == "1" || val == "yes" || val == "on"
	}
	return defaultVal
}
