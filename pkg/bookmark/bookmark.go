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

// Package bookmark provides the core bookmark and collection model.
//
// This package defines the flat records that flow between the store (which
// persists them), the netscape converter (which serializes them), and the
// CLI commands. It is the common language of the application, independent
// of any specific storage backend or interchange format.
//
// # Core Types
//
// Bookmark is a single saved URL with all its metadata:
//
//	b := bookmark.Bookmark{
//	    Title:        "GitHub",
//	    URL:          "https://github.com",
//	    Tags:         []string{"dev", "git"},
//	    CollectionID: devCollection.ID,
//	    CreatedAt:    time.Now(),
//	}
//
// Collection is a named folder of bookmarks. Collections form a tree via
// ParentID; a collection with no ParentID is a root. Bookmarks reference
// their owning collection by CollectionID; an empty or unresolvable
// CollectionID means the bookmark lives at the root ("inbox").
//
// # Design Principles
//
//  1. Flat tables: both record kinds are flat rows with id references.
//     Tree shape is implicit and assembled on demand (see pkg/netscape).
//
//  2. Store-agnostic: nothing here knows about SQLite, document-store
//     timestamp objects, or file formats. CoerceTime normalizes foreign
//     timestamp encodings at the boundary so the rest of the code only
//     ever sees time.Time.
//
//  3. Tolerant of gaps: Title falls back to URL, timestamps may be zero,
//     descriptions are optional. Renderers and converters must cope.
package bookmark

import (
	"strings"
	"time"
)

// InboxCollectionID is the sentinel collection id meaning "unassigned".
// A bookmark whose CollectionID is empty or equal to this value is treated
// as a root-level bookmark.
const InboxCollectionID = "inbox"

// Bookmark represents a single saved URL.
//
// All fields except URL are optional, but callers should populate as many
// as the source provides for the best output quality.
type Bookmark struct {
	// ID uniquely identifies the bookmark. Assigned by the store.
	ID string

	// URL is the bookmark's target address (required).
	URL string

	// Title is the display name. If empty, renderers fall back to the URL.
	Title string

	// Description is optional free text. May span multiple lines.
	Description string

	// FaviconURL is an absolute URL to the site icon, if known.
	FaviconURL string

	// ScreenshotURL is an absolute URL to a page screenshot, if known.
	ScreenshotURL string

	// Tags are lowercase labels. Order is not significant.
	Tags []string

	// CollectionID references the owning Collection. Empty or "inbox"
	// means the bookmark is unassigned (root level).
	CollectionID string

	// Pinned marks the bookmark as pinned in listings.
	Pinned bool

	// CreatedAt / UpdatedAt are record timestamps.
	// Zero value means unknown.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayTitle returns the title, falling back to the URL.
func (b Bookmark) DisplayTitle() string {
	if b.Title != "" {
		return b.Title
	}
	return b.URL
}

// InCollection reports whether the bookmark is assigned to a collection.
func (b Bookmark) InCollection() bool {
	return b.CollectionID != "" && b.CollectionID != InboxCollectionID
}

// Collection is a named folder of bookmarks, persisted as a flat record.
//
// Collections form a tree via ParentID. The CLI only creates two levels of
// nesting, but imported files are not bound by that restriction, so
// consumers must handle arbitrary depth.
type Collection struct {
	// ID uniquely identifies the collection. Assigned by the store.
	ID string

	// Name is the display name (required, used as sort key).
	Name string

	// Description is optional free text.
	Description string

	// Color is a hex color string. Defaults are applied at creation.
	Color string

	// Icon is a short decorative string (typically an emoji).
	Icon string

	// ParentID references another Collection, forming a tree.
	// Empty means this is a root collection.
	ParentID string

	// CreatedAt / UpdatedAt are record timestamps.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Palette is the rotating color palette assigned to collections created
// without an explicit color (e.g. during import).
var Palette = []string{
	"#6366f1",
	"#8b5cf6",
	"#ec4899",
	"#ef4444",
	"#f97316",
	"#f59e0b",
	"#10b981",
	"#14b8a6",
	"#06b6d4",
}

// DefaultIcon is the icon assigned to collections created during import.
const DefaultIcon = "\U0001F4C1"

// NormalizeTags lowercases, trims, and deduplicates a tag list,
// preserving first-seen order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool)
	var result []string
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		result = append(result, t)
	}
	return result
}

// CoerceTime normalizes foreign timestamp encodings into a time.Time.
//
// Persistence layers and import formats hand us timestamps in several
// shapes: native time.Time, epoch seconds (int or float), ISO strings,
// or document-store objects exposing a "seconds" field. Everything else,
// including nil, coerces to the zero time (unknown).
func CoerceTime(v interface{}) time.Time {
	switch t := v.(type) {
	case nil:
		return time.Time{}
	case time.Time:
		return t
	case int64:
		return time.Unix(t, 0)
	case int:
		return time.Unix(int64(t), 0)
	case float64:
		return time.Unix(int64(t), 0)
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
		return time.Time{}
	case map[string]interface{}:
		if secs, ok := t["seconds"]; ok {
			return CoerceTime(secs)
		}
		return time.Time{}
	default:
		return time.Time{}
	}
}
