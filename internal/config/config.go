// Package config loads kmerd's server configuration. It generalizes the
// teacher's two cmd-level flags (app/main.go: -dir, -dbfilename) into a
// small YAML file. The values come only from that file and Default();
// cmd/kmerd has no per-value flags, only --config to name the file.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is kmerd's top-level server configuration.
type Config struct {
	// ListenAddr is the TCP address the server accepts connections on.
	ListenAddr string `yaml:"listen_addr"`

	// SnapshotDir is the directory snapshot files are read from and
	// written to (teacher's RdbDir).
	SnapshotDir string `yaml:"snapshot_dir"`

	// SnapshotFile is the snapshot file name within SnapshotDir (teacher's
	// RdbFilename).
	SnapshotFile string `yaml:"snapshot_file"`

	// CacheSize is the number of scan results internal/cache keeps.
	CacheSize int `yaml:"cache_size"`
}

// Default returns the configuration kmerd runs with when no config file is
// given: listen on :6790, snapshot "kmerdump.kdb" in the current
// directory, and a 4096-entry scan cache.
func Default() *Config {
	return &Config{
		ListenAddr:   ":6790",
		SnapshotDir:  ".",
		SnapshotFile: "kmerdump.kdb",
		CacheSize:    4096,
	}
}

// Load reads and parses a YAML config file at path, starting from
// Default() so a partial file only overrides what it mentions.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
