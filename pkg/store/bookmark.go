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
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cloudygreybeard/marcador/pkg/bookmark"
)

// CreateBookmark inserts a bookmark record, assigning its id and filling
// missing timestamps with the current time. The record is updated in place.
func (s *Store) CreateBookmark(b *bookmark.Bookmark) error {
	if b.URL == "" {
		return fmt.Errorf("bookmark url is required")
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.Tags = bookmark.NormalizeTags(b.Tags)
	created := stampOrNow(b.CreatedAt)
	updated := stampOrNow(b.UpdatedAt)
	b.CreatedAt = time.Unix(created, 0)
	b.UpdatedAt = time.Unix(updated, 0)

	_, err := s.db.Exec(`
		INSERT INTO bookmarks (id, url, title, description, favicon_url, screenshot_url, tags, collection_id, pinned, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.URL, b.Title, b.Description, b.FaviconURL, b.ScreenshotURL,
		encodeTags(b.Tags), b.CollectionID, b.Pinned, created, updated)
	if err != nil {
		return fmt.Errorf("inserting bookmark: %w", err)
	}
	return nil
}

// GetBookmark fetches a bookmark by id.
func (s *Store) GetBookmark(id string) (bookmark.Bookmark, error) {
	row := s.db.QueryRow(selectBookmark+" WHERE id = ?", id)
	b, err := scanBookmark(row)
	if err == sql.ErrNoRows {
		return bookmark.Bookmark{}, ErrNotFound
	}
	return b, err
}

// ListBookmarks returns all bookmarks, oldest first.
func (s *Store) ListBookmarks() ([]bookmark.Bookmark, error) {
	return s.queryBookmarks(selectBookmark + " ORDER BY created_at, id")
}

// ListBookmarksByCollection returns the bookmarks assigned to one
// collection, oldest first.
func (s *Store) ListBookmarksByCollection(collectionID string) ([]bookmark.Bookmark, error) {
	return s.queryBookmarks(selectBookmark+" WHERE collection_id = ? ORDER BY created_at, id", collectionID)
}

// UpdateBookmark rewrites the mutable fields of a bookmark and bumps its
// updated stamp.
func (s *Store) UpdateBookmark(b bookmark.Bookmark) error {
	res, err := s.db.Exec(`
		UPDATE bookmarks SET url = ?, title = ?, description = ?, favicon_url = ?, screenshot_url = ?, tags = ?, collection_id = ?, pinned = ?, updated_at = ?
		WHERE id = ?`,
		b.URL, b.Title, b.Description, b.FaviconURL, b.ScreenshotURL,
		encodeTags(bookmark.NormalizeTags(b.Tags)), b.CollectionID, b.Pinned, time.Now().Unix(), b.ID)
	if err != nil {
		return fmt.Errorf("updating bookmark: %w", err)
	}
	return requireRow(res)
}

// DeleteBookmark removes a bookmark by id.
func (s *Store) DeleteBookmark(id string) error {
	res, err := s.db.Exec("DELETE FROM bookmarks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting bookmark: %w", err)
	}
	return requireRow(res)
}

const selectBookmark = `
	SELECT id, url, title, description, favicon_url, screenshot_url, tags, collection_id, pinned, created_at, updated_at
	FROM bookmarks`

func (s *Store) queryBookmarks(query string, args ...interface{}) ([]bookmark.Bookmark, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing bookmarks: %w", err)
	}
	defer rows.Close()

	var bookmarks []bookmark.Bookmark
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, rows.Err()
}

func scanBookmark(row scanner) (bookmark.Bookmark, error) {
	var b bookmark.Bookmark
	var tags string
	var created, updated int64
	err := row.Scan(&b.ID, &b.URL, &b.Title, &b.Description, &b.FaviconURL, &b.ScreenshotURL,
		&tags, &b.CollectionID, &b.Pinned, &created, &updated)
	if err != nil {
		return bookmark.Bookmark{}, err
	}
	b.Tags = decodeTags(tags)
	b.CreatedAt = time.Unix(created, 0)
	b.UpdatedAt = time.Unix(updated, 0)
	return b, nil
}
