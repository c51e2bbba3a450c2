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

package mcp

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudygreybeard/marcador/pkg/bookmark"
	"github.com/cloudygreybeard/marcador/pkg/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	collection := bookmark.Collection{Name: "Reading"}
	require.NoError(t, st.CreateCollection(&collection))
	require.NoError(t, st.CreateBookmark(&bookmark.Bookmark{
		URL:          "https://go.dev",
		Title:        "The Go Programming Language",
		CollectionID: collection.ID,
		Tags:         []string{"golang"},
	}))
	require.NoError(t, st.CreateBookmark(&bookmark.Bookmark{
		URL:   "https://example.com",
		Title: "Example",
	}))

	return NewServer(st)
}

func call(t *testing.T, s *Server, method string, params interface{}) *Response {
	t.Helper()
	req := &Request{JSONRPC: "2.0", ID: 1, Method: method}
	if params != nil {
		raw, err := json.Marshal(params)
		require.NoError(t, err)
		req.Params = raw
	}
	return s.handleRequest(req)
}

func TestInitialize(t *testing.T) {
	resp := call(t, newTestServer(t), "initialize", nil)
	require.Nil(t, resp.Error)

	result := resp.Result.(map[string]interface{})
	assert.Equal(t, "2024-11-05", result["protocolVersion"])
}

func TestUnknownMethod(t *testing.T) {
	resp := call(t, newTestServer(t), "bogus/method", nil)
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32601, resp.Error.Code)
}

func TestResourcesRead(t *testing.T) {
	s := newTestServer(t)

	resp := call(t, s, "resources/read", map[string]string{"uri": "marcador://netscape"})
	require.Nil(t, resp.Error)

	contents := resp.Result.(map[string]interface{})["contents"].([]map[string]interface{})
	require.Len(t, contents, 1)
	text := contents[0]["text"].(string)
	assert.Contains(t, text, "NETSCAPE-Bookmark-file-1")
	assert.Contains(t, text, "https://go.dev")

	resp = call(t, s, "resources/read", map[string]string{"uri": "marcador://bookmarks"})
	require.Nil(t, resp.Error)
	contents = resp.Result.(map[string]interface{})["contents"].([]map[string]interface{})
	assert.Contains(t, contents[0]["text"].(string), `"items"`)
}

func TestResourcesReadUnknownURI(t *testing.T) {
	resp := call(t, newTestServer(t), "resources/read", map[string]string{"uri": "marcador://nope"})
	require.NotNil(t, resp.Error)
}

func TestSearchBookmarks(t *testing.T) {
	s := newTestServer(t)

	resp := call(t, s, "tools/call", map[string]interface{}{
		"name":      "search_bookmarks",
		"arguments": map[string]string{"query": "golang"},
	})
	require.Nil(t, resp.Error)

	content := resp.Result.(map[string]interface{})["content"].([]map[string]interface{})
	text := content[0]["text"].(string)
	assert.Contains(t, text, "Found 1 matches")
	assert.Contains(t, text, "https://go.dev", "tag search finds the bookmark")
}

func TestListCollections(t *testing.T) {
	resp := call(t, newTestServer(t), "tools/call", map[string]interface{}{
		"name":      "list_collections",
		"arguments": map[string]string{},
	})
	require.Nil(t, resp.Error)

	content := resp.Result.(map[string]interface{})["content"].([]map[string]interface{})
	assert.Contains(t, content[0]["text"].(string), "Reading")
}
