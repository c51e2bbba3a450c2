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

// Package safari reads Safari's Bookmarks.plist as an import source.
//
// Safari does not export Netscape bookmark files on its own, so this
// package decodes the binary plist directly and converts it into the same
// Folder/Link forest the HTML importer produces. From there the regular
// import walk takes over; Safari-specific knowledge stops at this boundary.
package safari

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"howett.net/plist"

	"github.com/cloudygreybeard/marcador/pkg/netscape"
)

// DefaultPath returns the standard location of Safari's bookmarks file.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "Library", "Safari", "Bookmarks.plist")
}

// webBookmark mirrors the subset of Safari's plist schema we care about.
type webBookmark struct {
	WebBookmarkType string            `plist:"WebBookmarkType"`
	Title           string            `plist:"Title"`
	URLString       string            `plist:"URLString"`
	URIDictionary   map[string]string `plist:"URIDictionary"`
	Children        []webBookmark     `plist:"Children"`
}

// ReadFile parses a Safari Bookmarks.plist file into a bookmark forest.
func ReadFile(path string) ([]netscape.Node, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening plist: %w", err)
	}
	defer file.Close()
	return Read(file)
}

// Read parses plist data into a bookmark forest. The top-level plist node
// is Safari's invisible root list; its children become the forest. Proxy
// entries (History, Reading List internals) carry no URL or children and
// fall away naturally.
func Read(r io.ReadSeeker) ([]netscape.Node, error) {
	var root webBookmark
	if err := plist.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("decoding plist: %w", err)
	}
	return convertChildren(root.Children), nil
}

func convertChildren(children []webBookmark) []netscape.Node {
	var nodes []netscape.Node
	for _, child := range children {
		if node := convert(child); node != nil {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

func convert(node webBookmark) netscape.Node {
	switch node.WebBookmarkType {
	case "WebBookmarkTypeLeaf":
		url := node.URLString
		if url == "" && node.URIDictionary != nil {
			url = node.URIDictionary[""]
		}
		if url == "" {
			return nil
		}
		title := node.Title
		if title == "" && node.URIDictionary != nil {
			title = node.URIDictionary["title"]
		}
		if title == "" {
			title = url
		}
		return &netscape.Link{Title: title, URL: url}

	case "WebBookmarkTypeList":
		folder := &netscape.Folder{Title: node.Title}
		folder.Children = convertChildren(node.Children)
		return folder

	default:
		return nil
	}
}
