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

package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parse(t *testing.T, page string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func TestExtract(t *testing.T) {
	page := `<html><head>
		<title>Fallback Title</title>
		<meta property="og:title" content="OG Title">
		<meta name="description" content="A page description">
		<meta property="og:image" content="https://example.com/og.png">
		<link rel="icon" href="/icons/fav.png">
	</head><body></body></html>`

	m := Extract(parse(t, page), "https://example.com/page")
	assert.Equal(t, "OG Title", m.Title)
	assert.Equal(t, "A page description", m.Description)
	assert.Equal(t, "https://example.com/icons/fav.png", m.FaviconURL)
	assert.Equal(t, "https://example.com/og.png", m.OGImage)
	assert.Contains(t, m.ScreenshotURL, "image.thum.io")
}

func TestExtractFallbacks(t *testing.T) {
	page := `<html><head><title>Only Title</title></head><body></body></html>`

	m := Extract(parse(t, page), "https://example.com/page")
	assert.Equal(t, "Only Title", m.Title)
	assert.Empty(t, m.Description)
	assert.Equal(t, "https://example.com/favicon.ico", m.FaviconURL)
}

func TestExtractBarePage(t *testing.T) {
	m := Extract(parse(t, "<html></html>"), "https://example.com")
	assert.Equal(t, "https://example.com", m.Title, "title falls back to the URL")
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Served Page</title></head></html>`))
	}))
	defer srv.Close()

	c := New(5 * time.Second)
	m, err := c.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Served Page", m.Title)
}

func TestFetchBadURL(t *testing.T) {
	c := New(time.Second)
	_, err := c.Fetch(context.Background(), "http://127.0.0.1:1/unreachable")
	assert.Error(t, err)
}
