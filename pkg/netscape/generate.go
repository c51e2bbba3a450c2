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
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/cloudygreybeard/marcador/pkg/bookmark"
)

// RootFolderTitle is the fixed label of the synthetic personal-toolbar
// folder wrapping all exported content. Not localizable: a stable wrapper
// name is what keeps export -> import -> export cycles from sprouting a
// new root per pass.
const RootFolderTitle = "Marcadores"

// fileHeader is the fixed Netscape boilerplate preceding the outermost
// <DL><p> container.
var fileHeader = strings.Join([]string{
	"<!DOCTYPE NETSCAPE-Bookmark-file-1>",
	"<!-- This is an automatically generated file.",
	"     It will be read and overwritten.",
	"     DO NOT EDIT! -->",
	`<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">`,
	"<TITLE>Bookmarks</TITLE>",
	"<H1>Bookmarks</H1>",
}, "\n")

// collator orders sibling folders and bookmarks. Und gives locale-neutral
// collation so output is deterministic regardless of the host locale.
var collator = collate.New(language.Und)

// Generate serializes flat collection and bookmark tables into a
// Netscape-compliant bookmark file.
//
// The two tables form an implicit tree: each collection may reference a
// parent collection, each bookmark may reference an owning collection.
// Collections with a dangling ParentID become roots; bookmarks with no
// resolvable collection are emitted as root-level links. Everything is
// wrapped in one synthetic personal-toolbar folder under the fixed header.
//
// Output is deterministic for a given input pair: siblings are ordered by
// collated name (bookmarks by title-or-url), and the fallback timestamp is
// captured once per call. Generate is pure and never fails for well-typed
// input; rejecting an empty data set is the caller's concern.
func Generate(bookmarks []bookmark.Bookmark, collections []bookmark.Collection) string {
	roots, rootLinks := buildTree(collections, bookmarks)
	now := time.Now()

	lines := []string{fileHeader, "<DL><p>"}
	lines = append(lines, fmt.Sprintf(
		`  <DT><H3 ADD_DATE="%d" LAST_MODIFIED="%d" PERSONAL_TOOLBAR_FOLDER="true">%s</H3>`,
		now.Unix(), now.Unix(), EscapeText(RootFolderTitle)))
	lines = append(lines, "  <DL><p>")
	for _, b := range rootLinks {
		lines = emitBookmark(lines, b, 2, now)
	}
	for _, node := range roots {
		lines = emitCollection(lines, node, 2, now)
	}
	lines = append(lines, "  </DL><p>", "</DL><p>")

	return strings.Join(lines, "\n")
}

// collectionNode is a collection joined with its resolved children for the
// duration of one Generate call.
type collectionNode struct {
	bookmark.Collection
	children  []*collectionNode
	bookmarks []bookmark.Bookmark
}

// buildTree assembles the flat tables into a forest. Iteration stays in
// input-slice order so ties between equal sort keys resolve the same way
// on every call.
func buildTree(collections []bookmark.Collection, bookmarks []bookmark.Bookmark) ([]*collectionNode, []bookmark.Bookmark) {
	byID := make(map[string]*collectionNode, len(collections))
	nodes := make([]*collectionNode, 0, len(collections))
	for _, c := range collections {
		node := &collectionNode{Collection: c}
		byID[c.ID] = node
		nodes = append(nodes, node)
	}

	var roots []*collectionNode
	for _, node := range nodes {
		if parent, ok := byID[node.ParentID]; ok && node.ParentID != "" && parent != node {
			parent.children = append(parent.children, node)
		} else {
			roots = append(roots, node)
		}
	}

	var rootLinks []bookmark.Bookmark
	for _, b := range bookmarks {
		if node, ok := byID[b.CollectionID]; ok && b.InCollection() {
			node.bookmarks = append(node.bookmarks, b)
		} else {
			rootLinks = append(rootLinks, b)
		}
	}

	sortSiblings(roots)
	sortBookmarks(rootLinks)
	return roots, rootLinks
}

func sortSiblings(nodes []*collectionNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return collator.CompareString(nodes[i].Name, nodes[j].Name) < 0
	})
	for _, n := range nodes {
		sortSiblings(n.children)
		sortBookmarks(n.bookmarks)
	}
}

func sortBookmarks(bookmarks []bookmark.Bookmark) {
	sort.SliceStable(bookmarks, func(i, j int) bool {
		return collator.CompareString(bookmarks[i].DisplayTitle(), bookmarks[j].DisplayTitle()) < 0
	})
}

func emitCollection(lines []string, node *collectionNode, level int, now time.Time) []string {
	indent := strings.Repeat("  ", level)
	lines = append(lines, fmt.Sprintf(`%s<DT><H3 ADD_DATE="%d" LAST_MODIFIED="%d">%s</H3>`,
		indent, unixSeconds(node.CreatedAt, now), unixSeconds(node.UpdatedAt, now), EscapeText(node.Name)))
	if node.Description != "" {
		lines = append(lines, indent+"<DD>"+EscapeText(node.Description))
	}
	lines = append(lines, indent+"<DL><p>")
	for _, b := range node.bookmarks {
		lines = emitBookmark(lines, b, level+1, now)
	}
	for _, child := range node.children {
		lines = emitCollection(lines, child, level+1, now)
	}
	lines = append(lines, indent+"</DL><p>")
	return lines
}

func emitBookmark(lines []string, b bookmark.Bookmark, level int, now time.Time) []string {
	indent := strings.Repeat("  ", level)
	attrs := []string{
		fmt.Sprintf(`HREF="%s"`, EscapeText(b.URL)),
		fmt.Sprintf(`ADD_DATE="%d"`, unixSeconds(b.CreatedAt, now)),
		fmt.Sprintf(`LAST_MODIFIED="%d"`, unixSeconds(b.UpdatedAt, now)),
	}
	if b.FaviconURL != "" {
		attrs = append(attrs, fmt.Sprintf(`ICON="%s"`, EscapeText(b.FaviconURL)))
	}
	lines = append(lines, indent+"<DT><A "+strings.Join(attrs, " ")+">"+EscapeText(b.DisplayTitle())+"</A>")
	if b.Description != "" {
		lines = append(lines, indent+"<DD>"+EscapeText(b.Description))
	}
	return lines
}

// unixSeconds normalizes a record timestamp to epoch seconds, substituting
// the call-time fallback for unknown values. A missing stored timestamp is
// silently replaced rather than flagged - a deliberate looseness inherited
// from the export contract, which never fails on bad timestamps.
func unixSeconds(t time.Time, now time.Time) int64 {
	if t.IsZero() {
		return now.Unix()
	}
	return t.Unix()
}
