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
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/marcador/pkg/bookmark"
	"github.com/cloudygreybeard/marcador/pkg/config"
	"github.com/cloudygreybeard/marcador/pkg/jsonfile"
	"github.com/cloudygreybeard/marcador/pkg/netscape"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export bookmarks to a browser-portable file",
	Long: `Exports all stored bookmarks.

Formats:
  netscape   Netscape bookmark file, importable by any browser (default)
  json       Flat JSON interchange format ({"items": [...]})

Output goes to stdout unless -o/--output names a file. When -o names a
directory, a dated filename is generated inside it. Configured pipeline
filters and deduplication apply before rendering.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "output file or directory (default: stdout)")
	exportCmd.Flags().String("format", "", "output format: netscape or json (default: from config)")
	exportCmd.Flags().StringSlice("exclude-protocols", nil, "protocols to exclude (e.g., data,javascript)")
	exportCmd.Flags().StringSlice("warn-protocols", nil, "protocols that trigger warnings (e.g., file,chrome)")
	exportCmd.Flags().Int("max-url-length", 0, "exclude URLs longer than this (0 = use config default)")
	exportCmd.Flags().Int("warn-url-length", 0, "warn on URLs longer than this (0 = use config default)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = cfg.Export.Format
	}
	if format != "netscape" && format != "json" {
		return fmt.Errorf("unknown export format: %s (available: netscape, json)", format)
	}

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer st.Close()

	bookmarks, err := st.ListBookmarks()
	if err != nil {
		return fmt.Errorf("listing bookmarks: %w", err)
	}
	collections, err := st.ListCollections()
	if err != nil {
		return fmt.Errorf("listing collections: %w", err)
	}

	if len(bookmarks) == 0 && len(collections) == 0 {
		return fmt.Errorf("nothing to export: the database is empty")
	}

	filtered := applyPipeline(cmd, cfg, bookmarks, collections)
	if len(filtered) == 0 && len(collections) == 0 {
		return fmt.Errorf("nothing to export: all bookmarks were excluded by filters")
	}

	var data []byte
	switch format {
	case "netscape":
		data = []byte(netscape.Generate(filtered, collections))
	case "json":
		data, err = jsonfile.Encode(filtered, collections)
		if err != nil {
			return fmt.Errorf("rendering JSON: %w", err)
		}
	}

	logVerbose("Bookmarks: %d", len(filtered))

	outPath, _ := cmd.Flags().GetString("output")
	return writeOutput(outPath, format, data)
}

// applyPipeline runs the configured filters and deduplication, with flag
// overrides for the protocol rules.
func applyPipeline(cmd *cobra.Command, cfg config.Config, bookmarks []bookmark.Bookmark, collections []bookmark.Collection) []bookmark.Bookmark {
	opts := bookmark.FilterOptions{
		IncludeCollections: cfg.Pipeline.Filter.IncludeCollections,
		ExcludeCollections: cfg.Pipeline.Filter.ExcludeCollections,
		ExcludeURLPatterns: cfg.Pipeline.Filter.ExcludeURLPatterns,
		ExcludeProtocols:   cfg.Pipeline.Filter.ExcludeProtocols,
		WarnProtocols:      cfg.Pipeline.Filter.WarnProtocols,
		MaxURLLength:       cfg.Pipeline.Filter.MaxURLLength,
		WarnURLLength:      cfg.Pipeline.Filter.WarnURLLength,
	}

	if excludeProtos, _ := cmd.Flags().GetStringSlice("exclude-protocols"); len(excludeProtos) > 0 {
		opts.ExcludeProtocols = excludeProtos
	}
	if warnProtos, _ := cmd.Flags().GetStringSlice("warn-protocols"); len(warnProtos) > 0 {
		opts.WarnProtocols = warnProtos
	}
	if maxLen, _ := cmd.Flags().GetInt("max-url-length"); maxLen > 0 {
		opts.MaxURLLength = maxLen
	}
	if warnLen, _ := cmd.Flags().GetInt("warn-url-length"); warnLen > 0 {
		opts.WarnURLLength = warnLen
	}

	result := bookmark.Filter(bookmarks, collections, opts)
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
	if result.Excluded > 0 {
		logVerbose("Excluded %d bookmarks by filter rules", result.Excluded)
	}

	filtered := result.Bookmarks
	if cfg.Pipeline.Transform.Deduplicate {
		filtered = bookmark.Deduplicate(filtered)
	}
	return filtered
}

func writeOutput(outPath, format string, data []byte) error {
	if outPath == "" || outPath == "-" {
		fmt.Print(string(data))
		return nil
	}

	if info, err := os.Stat(outPath); err == nil && info.IsDir() {
		outPath = filepath.Join(outPath, datedExportName(format))
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	logVerbose("Written to: %s", outPath)
	return nil
}

func datedExportName(format string) string {
	ext := ".html"
	if format == "json" {
		ext = ".json"
	}
	return "marcadores_" + time.Now().Format("2006-01-02") + ext
}
