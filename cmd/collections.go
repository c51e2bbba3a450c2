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
	"strings"

	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/marcador/pkg/bookmark"
)

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "Show the collection tree",
	RunE:  runCollections,
}

func init() {
	rootCmd.AddCommand(collectionsCmd)
}

func runCollections(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer st.Close()

	collections, err := st.ListCollections()
	if err != nil {
		return fmt.Errorf("listing collections: %w", err)
	}
	bookmarks, err := st.ListBookmarks()
	if err != nil {
		return fmt.Errorf("listing bookmarks: %w", err)
	}

	if len(collections) == 0 {
		fmt.Println("No collections.")
		return nil
	}

	counts := make(map[string]int)
	for _, b := range bookmarks {
		counts[b.CollectionID]++
	}

	byID := make(map[string]bool, len(collections))
	for _, c := range collections {
		byID[c.ID] = true
	}

	children := make(map[string][]bookmark.Collection)
	var roots []bookmark.Collection
	for _, c := range collections {
		// Dangling parents render at the root, matching export behavior.
		if c.ParentID == "" || !byID[c.ParentID] {
			roots = append(roots, c)
			continue
		}
		children[c.ParentID] = append(children[c.ParentID], c)
	}

	for _, c := range roots {
		printCollection(c, children, counts, 0)
	}
	if loose := counts[""]; loose > 0 {
		fmt.Printf("(no collection): %d bookmarks\n", loose)
	}
	return nil
}

func printCollection(c bookmark.Collection, children map[string][]bookmark.Collection, counts map[string]int, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Printf("%s%s %s (%d)\n", indent, c.Icon, c.Name, counts[c.ID])
	for _, child := range children[c.ID] {
		printCollection(child, children, counts, depth+1)
	}
}
