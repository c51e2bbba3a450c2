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

package netscape

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudygreybeard/marcador/pkg/bookmark"
)

var testStamp = time.Unix(1700000000, 0)

func testCollection(id, name, parentID string) bookmark.Collection {
	return bookmark.Collection{
		ID:        id,
		Name:      name,
		ParentID:  parentID,
		CreatedAt: testStamp,
		UpdatedAt: testStamp,
	}
}

func testBookmark(url, title, collectionID string) bookmark.Bookmark {
	return bookmark.Bookmark{
		ID:           "bm-" + url,
		URL:          url,
		Title:        title,
		CollectionID: collectionID,
		CreatedAt:    testStamp,
		UpdatedAt:    testStamp,
	}
}

func TestGenerateStructure(t *testing.T) {
	collections := []bookmark.Collection{testCollection("c1", "Dev", "")}
	bookmarks := []bookmark.Bookmark{
		testBookmark("https://example.com", "Example", "c1"),
		testBookmark("https://loose.example", "Loose", ""),
	}

	out := Generate(bookmarks, collections)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE NETSCAPE-Bookmark-file-1>"))
	assert.Contains(t, out, `<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">`)
	assert.Contains(t, out, "<TITLE>Bookmarks</TITLE>")
	assert.Contains(t, out, `PERSONAL_TOOLBAR_FOLDER="true">`+RootFolderTitle+"</H3>")
	assert.Contains(t, out, `<DT><H3 ADD_DATE="1700000000" LAST_MODIFIED="1700000000">Dev</H3>`)
	assert.Contains(t, out, `HREF="https://example.com"`)
	assert.True(t, strings.HasSuffix(out, "</DL><p>"))
}

func TestGenerateDeterministicOrdering(t *testing.T) {
	collections := []bookmark.Collection{
		testCollection("c1", "Banana", ""),
		testCollection("c2", "Apple", ""),
	}

	out := Generate(nil, collections)

	apple := strings.Index(out, ">Apple</H3>")
	banana := strings.Index(out, ">Banana</H3>")
	require.GreaterOrEqual(t, apple, 0)
	require.GreaterOrEqual(t, banana, 0)
	assert.Less(t, apple, banana, "Apple must sort before Banana regardless of input order")

	// Same data, reversed input order, identical output (modulo the
	// call-time stamps on the synthetic root line).
	reversed := Generate(nil, []bookmark.Collection{collections[1], collections[0]})
	assert.Equal(t, maskRootStamps(out), maskRootStamps(reversed))
}

// maskRootStamps blanks the call-time ADD_DATE/LAST_MODIFIED values on the
// synthetic root folder line so byte comparisons do not depend on the
// wall clock ticking between two Generate calls.
func maskRootStamps(out string) string {
	return regexp.MustCompile(`(?m)^.*PERSONAL_TOOLBAR_FOLDER.*$`).
		ReplaceAllString(out, "<root>")
}

func TestGenerateIdempotent(t *testing.T) {
	collections := []bookmark.Collection{
		testCollection("c1", "Dev", ""),
		testCollection("c2", "Tools", "c1"),
	}
	bookmarks := []bookmark.Bookmark{
		testBookmark("https://a.example", "Alpha", "c2"),
		testBookmark("https://b.example", "Beta", ""),
	}

	first := Generate(bookmarks, collections)
	second := Generate(bookmarks, collections)
	assert.Equal(t, maskRootStamps(first), maskRootStamps(second))
}

func TestGenerateTimestampFallback(t *testing.T) {
	bookmarks := []bookmark.Bookmark{{
		ID:  "bm1",
		URL: "https://example.com",
	}}

	before := time.Now().Unix()
	out := Generate(bookmarks, nil)
	after := time.Now().Unix()

	m := regexp.MustCompile(`HREF="https://example.com" ADD_DATE="(\d+)"`).FindStringSubmatch(out)
	require.NotNil(t, m, "ADD_DATE must be a decimal attribute even with no stored timestamp")

	stamp, err := strconv.ParseInt(m[1], 10, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stamp, before)
	assert.LessOrEqual(t, stamp, after)
}

func TestGenerateDanglingParentBecomesRoot(t *testing.T) {
	collections := []bookmark.Collection{testCollection("c1", "Orphan", "missing-parent")}

	out := Generate(nil, collections)
	assert.Contains(t, out, ">Orphan</H3>")
}

func TestGenerateTitleFallsBackToURL(t *testing.T) {
	bookmarks := []bookmark.Bookmark{testBookmark("https://untitled.example", "", "")}

	out := Generate(bookmarks, nil)
	assert.Contains(t, out, ">https://untitled.example</A>")
}

func TestGenerateEncodesEntities(t *testing.T) {
	bookmarks := []bookmark.Bookmark{testBookmark("https://example.com", `Tom & Jerry's "Show" <Live>`, "")}

	out := Generate(bookmarks, nil)
	assert.Contains(t, out, "Tom &amp; Jerry&#39;s &quot;Show&quot; &lt;Live&gt;")
	assert.NotContains(t, out, `>Tom & Jerry`)
}

// flatten walks a parsed forest into (folder-path, title, url) triples for
// round-trip comparison. Folders contribute a triple with an empty URL.
func flatten(nodes []Node, path string) []string {
	var out []string
	for _, n := range nodes {
		switch node := n.(type) {
		case *Folder:
			out = append(out, fmt.Sprintf("%s|%s|", path, node.Title))
			out = append(out, flatten(node.Children, path+"/"+node.Title)...)
		case *Link:
			out = append(out, fmt.Sprintf("%s|%s|%s", path, node.Title, node.URL))
		}
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	collections := []bookmark.Collection{
		testCollection("c1", "Dev", ""),
		testCollection("c2", "Tools", "c1"),
		testCollection("c3", "Reading", ""),
	}
	bookmarks := []bookmark.Bookmark{
		testBookmark("https://golang.org", "Go", "c1"),
		testBookmark("https://sqlite.org", "SQLite", "c2"),
		testBookmark("https://news.example", "News & Views", "c3"),
		testBookmark("https://root.example", "Root Link", ""),
	}

	nodes := Parse(Generate(bookmarks, collections))
	require.Len(t, nodes, 1, "generation wraps everything in one synthetic root folder")

	root, ok := nodes[0].(*Folder)
	require.True(t, ok)
	assert.Equal(t, RootFolderTitle, root.Title)

	got := flatten(root.Children, "")
	want := []string{
		"|Dev|",
		"/Dev|Go|https://golang.org",
		"/Dev|Tools|",
		"/Dev/Tools|SQLite|https://sqlite.org",
		"|Reading|",
		"/Reading|News & Views|https://news.example",
		"|Root Link|https://root.example",
	}
	assert.ElementsMatch(t, want, got)
}

func TestRoundTripStableAcrossCycles(t *testing.T) {
	collections := []bookmark.Collection{testCollection("c1", "Dev", "")}
	bookmarks := []bookmark.Bookmark{testBookmark("https://example.com", "Example", "c1")}

	first := Generate(bookmarks, collections)
	nodes := Parse(first)
	require.Len(t, nodes, 1)

	// A second export of the same records is line-identical in everything
	// except the synthetic root folder's call-time stamps.
	second := Generate(bookmarks, collections)
	firstLines := strings.Split(first, "\n")
	secondLines := strings.Split(second, "\n")
	require.Equal(t, len(firstLines), len(secondLines))
	for i := range firstLines {
		if strings.Contains(firstLines[i], "PERSONAL_TOOLBAR_FOLDER") {
			continue
		}
		assert.Equal(t, firstLines[i], secondLines[i])
	}
}
