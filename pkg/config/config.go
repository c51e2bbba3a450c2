// Copyright 2026 cloudygreybeard
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration loading and management.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the full configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store"`
	Export   ExportConfig   `yaml:"export"`
	Scrape   ScrapeConfig   `yaml:"scrape"`
	Pipeline PipelineConfig `yaml:"pipeline"`
}

// StoreConfig configures the persistence layer.
type StoreConfig struct {
	// Path is the SQLite database location.
	// Empty means ~/.marcador/marcador.db.
	Path string `yaml:"path"`
}

// ExportConfig configures export defaults.
type ExportConfig struct {
	Format string `yaml:"format"` // netscape or json
}

// ScrapeConfig configures the metadata scraper used by "add --scrape".
type ScrapeConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// PipelineConfig configures the processing pipeline applied on export.
type PipelineConfig struct {
	Filter    FilterConfig    `yaml:"filter"`
	Transform TransformConfig `yaml:"transform"`
}

// FilterConfig configures bookmark filtering.
type FilterConfig struct {
	IncludeCollections []string `yaml:"include_collections"`
	ExcludeCollections []string `yaml:"exclude_collections"`
	ExcludeURLPatterns []string `yaml:"exclude_url_patterns"`

	// URL protocol filtering
	ExcludeProtocols []string `yaml:"exclude_protocols"` // Protocols to exclude (e.g., data, javascript)
	WarnProtocols    []string `yaml:"warn_protocols"`    // Protocols to warn about but include
	MaxURLLength     int      `yaml:"max_url_length"`    // Exclude URLs longer than this (0 = no limit)
	WarnURLLength    int      `yaml:"warn_url_length"`   // Warn on URLs longer than this (0 = no warning)
}

// TransformConfig configures bookmark transformation.
type TransformConfig struct {
	Deduplicate bool `yaml:"deduplicate"`
}

// Default returns a configuration with sensible defaults.
func Default() Config {
	return Config{
		Export: ExportConfig{Format: "netscape"},
		Scrape: ScrapeConfig{TimeoutSeconds: 10},
		Pipeline: PipelineConfig{
			Filter: FilterConfig{
				ExcludeProtocols: []string{"data", "javascript"},
				WarnProtocols:    []string{"file", "chrome", "about", "blob"},
				WarnURLLength:    2048,
			},
		},
	}
}

// Load reads configuration from a file, merging with defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// StorePath returns the configured database path, defaulting to
// ~/.marcador/marcador.db.
func (c *Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".marcador", "marcador.db")
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".marcador", "config.yaml")
}

// LocalPath returns a local config file path if it exists.
func LocalPath() string {
	paths := []string{
		"marcador.yaml",
		"marcador.yml",
		".marcador.yaml",
		".marcador.yml",
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
