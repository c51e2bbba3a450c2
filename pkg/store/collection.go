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

// CreateCollection inserts a collection record, assigning its id and
// default color/icon, and filling missing timestamps with the current
// time. The record is updated in place so the caller can immediately use
// the assigned id as a parent reference.
func (s *Store) CreateCollection(c *bookmark.Collection) error {
	if c.Name == "" {
		return fmt.Errorf("collection name is required")
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Color == "" {
		c.Color = bookmark.Palette[0]
	}
	if c.Icon == "" {
		c.Icon = bookmark.DefaultIcon
	}
	created := stampOrNow(c.CreatedAt)
	updated := stampOrNow(c.UpdatedAt)
	c.CreatedAt = time.Unix(created, 0)
	c.UpdatedAt = time.Unix(updated, 0)

	_, err := s.db.Exec(`
		INSERT INTO collections (id, name, description, color, icon, parent_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Description, c.Color, c.Icon, c.ParentID, created, updated)
	if err != nil {
		return fmt.Errorf("inserting collection: %w", err)
	}
	return nil
}

// GetCollection fetches a collection by id.
func (s *Store) GetCollection(id string) (bookmark.Collection, error) {
	row := s.db.QueryRow(`
		SELECT id, name, description, color, icon, parent_id, created_at, updated_at
		FROM collections WHERE id = ?`, id)
	c, err := scanCollection(row)
	if err == sql.ErrNoRows {
		return bookmark.Collection{}, ErrNotFound
	}
	return c, err
}

// FindCollectionByName returns the first collection with the given name,
// or ErrNotFound.
func (s *Store) FindCollectionByName(name string) (bookmark.Collection, error) {
	row := s.db.QueryRow(`
		SELECT id, name, description, color, icon, parent_id, created_at, updated_at
		FROM collections WHERE name = ? ORDER BY created_at LIMIT 1`, name)
	c, err := scanCollection(row)
	if err == sql.ErrNoRows {
		return bookmark.Collection{}, ErrNotFound
	}
	return c, err
}

// ListCollections returns all collections ordered by name.
func (s *Store) ListCollections() ([]bookmark.Collection, error) {
	rows, err := s.db.Query(`
		SELECT id, name, description, color, icon, parent_id, created_at, updated_at
		FROM collections ORDER BY name, created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	defer rows.Close()

	var collections []bookmark.Collection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		collections = append(collections, c)
	}
	return collections, rows.Err()
}

// UpdateCollection rewrites the mutable fields of a collection and bumps
// its updated stamp.
func (s *Store) UpdateCollection(c bookmark.Collection) error {
	res, err := s.db.Exec(`
		UPDATE collections SET name = ?, description = ?, color = ?, icon = ?, parent_id = ?, updated_at = ?
		WHERE id = ?`,
		c.Name, c.Description, c.Color, c.Icon, c.ParentID, time.Now().Unix(), c.ID)
	if err != nil {
		return fmt.Errorf("updating collection: %w", err)
	}
	return requireRow(res)
}

// DeleteCollection removes a collection. Child collections and bookmarks
// are left pointing at the deleted id; they resolve as roots on the next
// tree assembly, matching the converter's dangling-reference handling.
func (s *Store) DeleteCollection(id string) error {
	res, err := s.db.Exec("DELETE FROM collections WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting collection: %w", err)
	}
	return requireRow(res)
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCollection(row scanner) (bookmark.Collection, error) {
	var c bookmark.Collection
	var created, updated int64
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Color, &c.Icon, &c.ParentID, &created, &updated)
	if err != nil {
		return bookmark.Collection{}, err
	}
	c.CreatedAt = time.Unix(created, 0)
	c.UpdatedAt = time.Unix(updated, 0)
	return c, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
