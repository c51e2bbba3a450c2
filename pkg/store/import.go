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

package store

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/cloudygreybeard/marcador/pkg/bookmark"
	"github.com/cloudygreybeard/marcador/pkg/netscape"
)

// ErrEmptyImport is returned when a parsed file yields no nodes. A
// zero-node forest from a user-supplied file almost always means the wrong
// file was selected, so it is promoted from "tolerate" to "reject" before
// any write happens.
var ErrEmptyImport = errors.New("file does not match the expected bookmark structure")

// ImportStats aggregates the outcome of one import run.
type ImportStats struct {
	Collections int // collections created
	Bookmarks   int // bookmarks created
	Skipped     int // link nodes dropped (invalid url)
}

// ImportForest persists a parsed bookmark forest.
//
// The walk is strictly top-down: a folder's collection record is created
// (and its id assigned) before any of its children are persisted, so child
// records always hold a resolved parent reference. Subtrees are
// independent, but a node and its ancestor are not - ordering, not
// locking, is the constraint here.
//
// An individual link with an unparseable URL is skipped and counted, never
// aborting the run; a store error does abort, returning the stats
// accumulated so far.
func (s *Store) ImportForest(nodes []netscape.Node) (ImportStats, error) {
	if len(nodes) == 0 {
		return ImportStats{}, ErrEmptyImport
	}
	imp := &importer{store: s}
	err := imp.persist(nodes, "")
	return imp.stats, err
}

// importer carries the per-run state of one import walk. The color cursor
// is scoped here, not package-level, so concurrent imports stay
// independent.
type importer struct {
	store       *Store
	colorCursor int
	stats       ImportStats
}

func (imp *importer) nextColor() string {
	color := bookmark.Palette[imp.colorCursor%len(bookmark.Palette)]
	imp.colorCursor++
	return color
}

func (imp *importer) persist(nodes []netscape.Node, parentID string) error {
	for _, n := range nodes {
		switch node := n.(type) {
		case *netscape.Folder:
			if err := imp.persistFolder(node, parentID); err != nil {
				return err
			}
		case *netscape.Link:
			if err := imp.persistLink(node, parentID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (imp *importer) persistFolder(node *netscape.Folder, parentID string) error {
	name := node.Title
	if name == "" {
		name = "Unnamed collection"
	}
	c := &bookmark.Collection{
		Name:        name,
		Description: node.Description,
		Color:       imp.nextColor(),
		Icon:        bookmark.DefaultIcon,
		ParentID:    parentID,
		CreatedAt:   epochTime(node.AddDate),
		UpdatedAt:   epochTime(node.LastModified),
	}
	if err := imp.store.CreateCollection(c); err != nil {
		return fmt.Errorf("importing collection %q: %w", name, err)
	}
	imp.stats.Collections++
	return imp.persist(node.Children, c.ID)
}

func (imp *importer) persistLink(node *netscape.Link, parentID string) error {
	parsed, err := url.Parse(node.URL)
	if err != nil || parsed.Scheme == "" {
		imp.stats.Skipped++
		return nil
	}

	favicon := node.Icon
	if favicon == "" && parsed.Hostname() != "" {
		favicon = fmt.Sprintf("https://www.google.com/s2/favicons?domain=%s&sz=32", parsed.Hostname())
	}

	b := &bookmark.Bookmark{
		URL:           node.URL,
		Title:         node.Title,
		Description:   node.Description,
		FaviconURL:    favicon,
		ScreenshotURL: "https://image.thum.io/get/width/800/crop/600/" + url.QueryEscape(node.URL),
		CollectionID:  parentID,
		CreatedAt:     epochTime(node.AddDate),
		UpdatedAt:     epochTime(node.LastModified),
	}
	if b.Title == "" {
		b.Title = node.URL
	}
	if err := imp.store.CreateBookmark(b); err != nil {
		return fmt.Errorf("importing bookmark %q: %w", node.URL, err)
	}
	imp.stats.Bookmarks++
	return nil
}

// epochTime converts a parsed epoch-seconds attribute to a record
// timestamp; 0 stays the zero time so the store stamps it with "now".
func epochTime(secs int64) time.Time {
	if secs == 0 {
		return time.Time{}
	}
	return time.Unix(secs, 0)
}
