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

package bookmark

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterProtocols(t *testing.T) {
	bookmarks := []Bookmark{
		{Title: "Good", URL: "https://example.com"},
		{Title: "Inline", URL: "data:text/html,hello"},
		{Title: "Local", URL: "file:///etc/hosts"},
	}

	result := Filter(bookmarks, nil, FilterOptions{
		ExcludeProtocols: []string{"data"},
		WarnProtocols:    []string{"file"},
	})

	require.Len(t, result.Bookmarks, 2)
	assert.Equal(t, 1, result.Excluded)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "file")
}

func TestFilterURLLength(t *testing.T) {
	long := "https://example.com/" + strings.Repeat("x", 100)
	result := Filter([]Bookmark{{URL: long}}, nil, FilterOptions{MaxURLLength: 50})
	assert.Empty(t, result.Bookmarks)
	assert.Equal(t, 1, result.Excluded)
}

func TestFilterCollections(t *testing.T) {
	collections := []Collection{
		{ID: "work", Name: "Work"},
		{ID: "tools", Name: "Tools", ParentID: "work"},
		{ID: "play", Name: "Play"},
	}
	bookmarks := []Bookmark{
		{Title: "A", URL: "https://a.example", CollectionID: "tools"},
		{Title: "B", URL: "https://b.example", CollectionID: "play"},
	}

	result := Filter(bookmarks, collections, FilterOptions{IncludeCollections: []string{"Work"}})
	require.Len(t, result.Bookmarks, 1)
	assert.Equal(t, "A", result.Bookmarks[0].Title, "nested collections match their ancestor path")
}

func TestFilterURLPatterns(t *testing.T) {
	bookmarks := []Bookmark{
		{URL: "https://tracker.example/pixel"},
		{URL: "https://example.com"},
	}

	result := Filter(bookmarks, nil, FilterOptions{ExcludeURLPatterns: []string{`tracker\.`}})
	require.Len(t, result.Bookmarks, 1)
	assert.Equal(t, "https://example.com", result.Bookmarks[0].URL)
}

func TestCollectionPaths(t *testing.T) {
	paths := CollectionPaths([]Collection{
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B", ParentID: "a"},
		{ID: "c", Name: "C", ParentID: "missing"},
	})
	assert.Equal(t, "A", paths["a"])
	assert.Equal(t, "A/B", paths["b"])
	assert.Equal(t, "C", paths["c"], "dangling parents resolve as roots")
}

func TestCollectionPathsCycle(t *testing.T) {
	paths := CollectionPaths([]Collection{
		{ID: "a", Name: "A", ParentID: "b"},
		{ID: "b", Name: "B", ParentID: "a"},
	})
	// Cycles terminate rather than hang; exact prefix is unspecified.
	assert.Contains(t, paths["a"], "A")
}

func TestDeduplicate(t *testing.T) {
	result := Deduplicate([]Bookmark{
		{Title: "First", URL: "https://example.com"},
		{Title: "Second", URL: "https://example.com"},
		{Title: "Other", URL: "https://other.example"},
	})
	require.Len(t, result, 2)
	assert.Equal(t, "First", result[0].Title, "first occurrence wins")
}
