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

// Package jsonfile encodes and decodes the flat JSON interchange format.
//
// The document is a single object with an "items" array. Each item is one
// bookmark with its collection referenced by name, so the format survives
// round-trips between installs whose collection ids differ. Timestamps are
// written as RFC 3339 but accepted in several shapes on the way back in
// (epoch seconds, epoch millis, RFC 3339); see bookmark.CoerceTime.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cloudygreybeard/marcador/pkg/bookmark"
	"github.com/cloudygreybeard/marcador/pkg/netscape"
)

// Document is the top-level JSON structure.
type Document struct {
	Generated string `json:"generated,omitempty"`
	Items     []Item `json:"items"`
}

// Item is one bookmark record.
type Item struct {
	URL         string      `json:"url"`
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Collection  string      `json:"collection,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	Favicon     string      `json:"favicon,omitempty"`
	Pinned      bool        `json:"pinned,omitempty"`
	Created     interface{} `json:"created,omitempty"`
	Updated     interface{} `json:"updated,omitempty"`
}

// Encode renders bookmarks as an indented JSON document. Collections are
// flattened to their name; nesting is the HTML exporter's concern.
func Encode(bookmarks []bookmark.Bookmark, collections []bookmark.Collection) ([]byte, error) {
	names := make(map[string]string, len(collections))
	for _, c := range collections {
		names[c.ID] = c.Name
	}

	doc := Document{
		Generated: time.Now().Format(time.RFC3339),
		Items:     make([]Item, 0, len(bookmarks)),
	}

	for _, b := range bookmarks {
		item := Item{
			URL:         b.URL,
			Title:       b.Title,
			Description: b.Description,
			Collection:  names[b.CollectionID],
			Tags:        b.Tags,
			Favicon:     b.FaviconURL,
			Pinned:      b.Pinned,
		}
		if !b.CreatedAt.IsZero() {
			item.Created = b.CreatedAt.Format(time.RFC3339)
		}
		if !b.UpdatedAt.IsZero() {
			item.Updated = b.UpdatedAt.Format(time.RFC3339)
		}
		doc.Items = append(doc.Items, item)
	}

	return json.MarshalIndent(doc, "", "  ")
}

// Decode parses a JSON document into the same folder/link forest the HTML
// parser produces, grouping items by collection name. Items without a
// collection become root links. The regular import walk takes over from
// there, so both import paths share validation and derived-URL logic.
func Decode(data []byte) ([]netscape.Node, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing JSON document: %w", err)
	}

	var roots []netscape.Node
	folders := make(map[string]*netscape.Folder)

	for _, item := range doc.Items {
		link := &netscape.Link{
			Title:       item.Title,
			Description: item.Description,
			URL:         item.URL,
			Icon:        item.Favicon,
		}
		if created := bookmark.CoerceTime(item.Created); !created.IsZero() {
			link.AddDate = created.Unix()
		}
		if updated := bookmark.CoerceTime(item.Updated); !updated.IsZero() {
			link.LastModified = updated.Unix()
		}

		if item.Collection == "" {
			roots = append(roots, link)
			continue
		}

		folder, ok := folders[item.Collection]
		if !ok {
			folder = &netscape.Folder{Title: item.Collection}
			folders[item.Collection] = folder
			roots = append(roots, folder)
		}
		folder.Children = append(folder.Children, link)
	}

	return roots, nil
}
