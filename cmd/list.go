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
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/marcador/pkg/bookmark"
	"github.com/cloudygreybeard/marcador/pkg/store"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored bookmarks",
	RunE:  runList,
}

func init() {
	listCmd.Flags().String("collection", "", "only bookmarks in this collection (by name)")
	listCmd.Flags().String("tag", "", "only bookmarks carrying this tag")
	listCmd.Flags().Bool("pinned", false, "only pinned bookmarks")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer st.Close()

	collectionName, _ := cmd.Flags().GetString("collection")
	tag, _ := cmd.Flags().GetString("tag")
	pinnedOnly, _ := cmd.Flags().GetBool("pinned")

	var bookmarks []bookmark.Bookmark
	if collectionName != "" {
		collection, err := st.FindCollectionByName(collectionName)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no collection named %q", collectionName)
			}
			return fmt.Errorf("looking up collection: %w", err)
		}
		bookmarks, err = st.ListBookmarksByCollection(collection.ID)
		if err != nil {
			return fmt.Errorf("listing bookmarks: %w", err)
		}
	} else {
		bookmarks, err = st.ListBookmarks()
		if err != nil {
			return fmt.Errorf("listing bookmarks: %w", err)
		}
	}

	collections, err := st.ListCollections()
	if err != nil {
		return fmt.Errorf("listing collections: %w", err)
	}
	paths := bookmark.CollectionPaths(collections)

	shown := 0
	for _, b := range bookmarks {
		if pinnedOnly && !b.Pinned {
			continue
		}
		if tag != "" && !hasTag(b, tag) {
			continue
		}

		line := fmt.Sprintf("%s  %s", b.DisplayTitle(), b.URL)
		if path := paths[b.CollectionID]; path != "" {
			line += fmt.Sprintf("  [%s]", path)
		}
		if len(b.Tags) > 0 {
			line += "  #" + strings.Join(b.Tags, " #")
		}
		if b.Pinned {
			line += "  (pinned)"
		}
		fmt.Println(line)
		shown++
	}

	logVerbose("Bookmarks: %d", shown)
	return nil
}

func hasTag(b bookmark.Bookmark, tag string) bool {
	for _, t := range b.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
