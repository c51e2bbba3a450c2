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

package jsonfile

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudygreybeard/marcador/pkg/bookmark"
	"github.com/cloudygreybeard/marcador/pkg/netscape"
)

func TestEncode(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	data, err := Encode(
		[]bookmark.Bookmark{
			{URL: "https://example.com", Title: "Example", CollectionID: "c1", Tags: []string{"ref"}, CreatedAt: created},
			{URL: "https://loose.example", Title: "Loose"},
		},
		[]bookmark.Collection{{ID: "c1", Name: "Reading"}},
	)
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Items, 2)
	assert.Equal(t, "Reading", doc.Items[0].Collection)
	assert.Equal(t, "2024-03-01T12:00:00Z", doc.Items[0].Created)
	assert.Empty(t, doc.Items[1].Collection)
	assert.Nil(t, doc.Items[1].Created, "zero times are omitted")
}

func TestDecodeGroupsByCollection(t *testing.T) {
	input := `{"items": [
		{"url": "https://a.example", "title": "A", "collection": "Work"},
		{"url": "https://b.example", "title": "B", "collection": "Work", "created": 1709294400},
		{"url": "https://c.example", "title": "C"}
	]}`

	nodes, err := Decode([]byte(input))
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	work, ok := nodes[0].(*netscape.Folder)
	require.True(t, ok)
	assert.Equal(t, "Work", work.Title)
	require.Len(t, work.Children, 2)
	assert.Equal(t, int64(1709294400), work.Children[1].(*netscape.Link).AddDate, "epoch seconds pass through")

	loose, ok := nodes[1].(*netscape.Link)
	require.True(t, ok)
	assert.Equal(t, "https://c.example", loose.URL)
}

func TestDecodeTimestampShapes(t *testing.T) {
	input := `{"items": [
		{"url": "https://a.example", "created": "2024-03-01T12:00:00Z"},
		{"url": "https://b.example", "created": {"seconds": 1709294400}}
	]}`

	nodes, err := Decode([]byte(input))
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, int64(1709294400), nodes[0].(*netscape.Link).AddDate)
	assert.Equal(t, int64(1709294400), nodes[1].(*netscape.Link).AddDate)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("not json"))
	assert.Error(t, err)
}
