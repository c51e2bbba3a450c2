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

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/marcador/pkg/jsonfile"
	"github.com/cloudygreybeard/marcador/pkg/netscape"
	"github.com/cloudygreybeard/marcador/pkg/safari"
	"github.com/cloudygreybeard/marcador/pkg/store"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import bookmarks from a file",
	Long: `Imports bookmarks into the local database.

Supported formats:
  netscape   Netscape bookmark file (the HTML export every browser produces)
  json       Flat JSON interchange format ({"items": [...]})
  safari     Safari's Bookmarks.plist (defaults to the standard location)

Without --format the format is detected from the file extension and content.
Folders become collections, preserving nesting; items with invalid URLs are
skipped and counted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().String("format", "", "input format: netscape, json, or safari (default: auto-detect)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	format, _ := cmd.Flags().GetString("format")

	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		if format != "safari" {
			return fmt.Errorf("file argument required (only --format safari has a default location)")
		}
		path = safari.DefaultPath()
	}

	nodes, err := readForest(path, format)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer st.Close()

	stats, err := st.ImportForest(nodes)
	if err != nil {
		if errors.Is(err, store.ErrEmptyImport) {
			return fmt.Errorf("no bookmarks found in %s", path)
		}
		return fmt.Errorf("importing: %w", err)
	}

	fmt.Printf("Imported %d collections, %d bookmarks", stats.Collections, stats.Bookmarks)
	if stats.Skipped > 0 {
		fmt.Printf(" (skipped %d invalid)", stats.Skipped)
	}
	fmt.Println()
	return nil
}

// readForest parses the file at path into a folder/link forest. An empty
// format means detect from extension, then from content.
func readForest(path, format string) ([]netscape.Node, error) {
	if format == "" {
		format = detectFormatByExtension(path)
	}

	if format == "safari" {
		nodes, err := safari.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return nodes, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if format == "" {
		format = detectFormatByContent(data)
	}

	switch format {
	case "netscape":
		return netscape.Parse(string(data)), nil
	case "json":
		return jsonfile.Decode(data)
	case "safari":
		nodes, err := safari.Read(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return nodes, nil
	default:
		return nil, fmt.Errorf("unknown import format: %s (available: netscape, json, safari)", format)
	}
}

func detectFormatByExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".plist":
		return "safari"
	case ".html", ".htm":
		return "netscape"
	default:
		return ""
	}
}

// detectFormatByContent sniffs the leading bytes. Binary plists start with
// "bplist"; JSON documents with "{"; anything else is treated as Netscape
// HTML, which matches the parser's tolerance for malformed input.
func detectFormatByContent(data []byte) string {
	head := strings.TrimSpace(string(data[:min(len(data), 512)]))
	switch {
	case strings.HasPrefix(head, "bplist"):
		return "safari"
	case strings.HasPrefix(head, "{"):
		return "json"
	default:
		return "netscape"
	}
}
