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

// Package netscape implements the bidirectional Netscape bookmark-file
// converter.
//
// The NETSCAPE-Bookmark-file-1 format is the de facto interchange format
// for browser bookmarks: an SGML-like nested-list document with no formal
// grammar, produced (with variations) by Chrome, Firefox, Safari, and every
// other major browser. Two symmetric halves share one data-shape contract:
//
//   - Parse consumes raw bookmark-file text and produces an ordered forest
//     of Folder/Link nodes, preserving nesting, titles, descriptions,
//     timestamps, and icons.
//
//   - Generate consumes the application's flat collection and bookmark
//     tables, assembles them into the same forest shape, and emits
//     spec-compliant markup.
//
// # Why a line scanner
//
// Bookmark files are not valid HTML or XML: <DT> entries are never closed,
// <DL> openers carry a stray <p>, and descriptions are bare <DD> lines. A
// general markup parser needs extensive quirks handling to cope; a
// purpose-built line scanner tracking a container stack is simpler and more
// predictable for this one format. Parse is tolerant by construction - it
// never returns an error, and unrecognizable input yields an empty forest
// which callers must treat as a failed import.
//
// Both halves are pure, synchronous functions over in-memory data. They
// hold no shared state and are safe to call concurrently with independent
// inputs.
package netscape

// Node is a single entry in a parsed bookmark tree: either a *Folder or a
// *Link. The forest returned by Parse is transient - it exists only to be
// walked into persistent records and carries no identity of its own.
type Node interface {
	isNode()
}

// Folder is a parsed bookmark folder.
type Folder struct {
	Title        string
	Description  string
	AddDate      int64 // epoch seconds, 0 = unknown
	LastModified int64 // epoch seconds, 0 = unknown
	Children     []Node
}

// Link is a parsed bookmark entry.
type Link struct {
	Title        string
	Description  string
	URL          string
	Icon         string
	AddDate      int64 // epoch seconds, 0 = unknown
	LastModified int64 // epoch seconds, 0 = unknown
}

func (*Folder) isNode() {}
func (*Link) isNode()   {}
