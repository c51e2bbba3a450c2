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
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/marcador/pkg/bookmark"
	"github.com/cloudygreybeard/marcador/pkg/scrape"
	"github.com/cloudygreybeard/marcador/pkg/store"
)

var addCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Add a bookmark",
	Long: `Adds a single bookmark to the database.

With --scrape the page is fetched and its title, description and favicon
fill in whatever the flags left empty. --collection names a collection,
creating it if it does not exist yet.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringP("title", "t", "", "bookmark title (default: the URL)")
	addCmd.Flags().StringP("description", "d", "", "bookmark description")
	addCmd.Flags().String("collection", "", "collection name (created if missing)")
	addCmd.Flags().StringSlice("tags", nil, "comma-separated tags")
	addCmd.Flags().Bool("pin", false, "pin the bookmark")
	addCmd.Flags().Bool("scrape", false, "fetch the page to fill in missing metadata")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	rawURL := args[0]
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" {
		return fmt.Errorf("invalid URL: %s", rawURL)
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	collectionName, _ := cmd.Flags().GetString("collection")
	tags, _ := cmd.Flags().GetStringSlice("tags")
	pin, _ := cmd.Flags().GetBool("pin")
	doScrape, _ := cmd.Flags().GetBool("scrape")

	b := bookmark.Bookmark{
		URL:         rawURL,
		Title:       title,
		Description: description,
		Tags:        tags,
		Pinned:      pin,
	}

	if doScrape {
		timeout := time.Duration(cfg.Scrape.TimeoutSeconds) * time.Second
		meta, err := scrape.New(timeout).Fetch(context.Background(), rawURL)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: scraping failed: %v\n", err)
		} else {
			if b.Title == "" {
				b.Title = meta.Title
			}
			if b.Description == "" {
				b.Description = meta.Description
			}
			b.FaviconURL = meta.FaviconURL
			b.ScreenshotURL = meta.ScreenshotURL
		}
	}
	if b.Title == "" {
		b.Title = rawURL
	}

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer st.Close()

	if collectionName != "" {
		collection, err := resolveCollection(st, collectionName)
		if err != nil {
			return err
		}
		b.CollectionID = collection.ID
	}

	if err := st.CreateBookmark(&b); err != nil {
		return fmt.Errorf("saving bookmark: %w", err)
	}

	fmt.Printf("Added %s (%s)\n", b.DisplayTitle(), b.ID)
	return nil
}

// resolveCollection finds a collection by name, creating it when absent.
func resolveCollection(st *store.Store, name string) (bookmark.Collection, error) {
	collection, err := st.FindCollectionByName(name)
	if err == nil {
		return collection, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return bookmark.Collection{}, fmt.Errorf("looking up collection %q: %w", name, err)
	}

	collection = bookmark.Collection{Name: name}
	if err := st.CreateCollection(&collection); err != nil {
		return bookmark.Collection{}, fmt.Errorf("creating collection %q: %w", name, err)
	}
	logVerbose("Created collection %q (%s)", name, collection.ID)
	return collection, nil
}
