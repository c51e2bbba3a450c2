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

// Package cmd implements the marcador CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/marcador/pkg/config"
	"github.com/cloudygreybeard/marcador/pkg/store"
)

var (
	cfgFile string
	dbPath  string
	verbose bool
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "marcador",
	Short: "Personal bookmark manager with browser-portable import/export",
	Long: `marcador keeps bookmarks in a local SQLite database, organized into
nested collections, and moves them in and out of browsers through the
Netscape bookmark file format every browser understands.

Examples:
  marcador import bookmarks.html        # Import a browser export
  marcador import --format safari       # Import Safari's Bookmarks.plist
  marcador export -o bookmarks.html     # Export for any browser
  marcador export --format json         # Flat JSON interchange format
  marcador add https://example.com      # Add a single bookmark
  marcador list                         # List stored bookmarks
  marcador collections                  # Show the collection tree
  marcador serve                        # Run as MCP server`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ./marcador.yaml or ~/.marcador/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (default: ~/.marcador/marcador.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output to stderr")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("marcador %s (commit: %s, built: %s)\n", Version, Commit, Date))
}

func loadConfig() (config.Config, error) {
	path := cfgFile
	if path == "" {
		path = config.LocalPath()
	}
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, err
	}

	return cfg, nil
}

// openStore opens the database named by the --db flag, falling back to the
// configured path. Callers own the returned store and must Close it.
func openStore(cfg config.Config) (*store.Store, error) {
	path := dbPath
	if path == "" {
		path = cfg.StorePath()
	}

	logVerbose("Database: %s", path)
	return store.Open(path)
}

func logVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
