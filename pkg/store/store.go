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

// Package store provides SQLite persistence for bookmarks and collections.
//
// Records are stored as two flat tables mirroring the model in
// pkg/bookmark: collections reference a parent collection by id, bookmarks
// reference an owning collection by id. Tree shape stays implicit; the
// netscape converter assembles it on demand.
//
// The store assigns identifiers (UUIDs) and creation/update stamps on
// create, so callers can rely on a record's id immediately after the
// create call returns - the import walk depends on that to resolve parent
// references top-down.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("record not found")

// Store wraps a SQLite database holding bookmark and collection records.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS collections (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	color       TEXT NOT NULL DEFAULT '',
	icon        TEXT NOT NULL DEFAULT '',
	parent_id   TEXT NOT NULL DEFAULT '',
	created_at  INTEGER NOT NULL,
	updated_at  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS bookmarks (
	id             TEXT PRIMARY KEY,
	url            TEXT NOT NULL,
	title          TEXT NOT NULL DEFAULT '',
	description    TEXT NOT NULL DEFAULT '',
	favicon_url    TEXT NOT NULL DEFAULT '',
	screenshot_url TEXT NOT NULL DEFAULT '',
	tags           TEXT NOT NULL DEFAULT '',
	collection_id  TEXT NOT NULL DEFAULT '',
	pinned         INTEGER NOT NULL DEFAULT 0,
	created_at     INTEGER NOT NULL,
	updated_at     INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bookmarks_collection ON bookmarks(collection_id);
CREATE INDEX IF NOT EXISTS idx_collections_parent ON collections(parent_id);
`

// Open opens (creating if necessary) the store at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Counts returns the number of stored collections and bookmarks.
func (s *Store) Counts() (collections int, bookmarks int, err error) {
	if err = s.db.QueryRow("SELECT COUNT(*) FROM collections").Scan(&collections); err != nil {
		return 0, 0, err
	}
	if err = s.db.QueryRow("SELECT COUNT(*) FROM bookmarks").Scan(&bookmarks); err != nil {
		return 0, 0, err
	}
	return collections, bookmarks, nil
}

// encodeTags flattens a normalized tag list for storage.
func encodeTags(tags []string) string {
	return strings.Join(tags, ",")
}

// decodeTags restores a stored tag list.
func decodeTags(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// stampOrNow converts a record timestamp for storage, substituting the
// current time for unknown values so stored rows always carry a stamp.
func stampOrNow(t time.Time) int64 {
	if t.IsZero() {
		return time.Now().Unix()
	}
	return t.Unix()
}
