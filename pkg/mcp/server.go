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

// Package mcp provides an MCP (Model Context Protocol) server over the
// bookmark database.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cloudygreybeard/marcador/pkg/bookmark"
	"github.com/cloudygreybeard/marcador/pkg/jsonfile"
	"github.com/cloudygreybeard/marcador/pkg/netscape"
	"github.com/cloudygreybeard/marcador/pkg/store"
)

// Server implements an MCP server backed by the bookmark store.
type Server struct {
	store *store.Store
}

// NewServer creates a new MCP server over an open store.
func NewServer(st *store.Store) *Server {
	return &Server{store: st}
}

// Run starts the MCP server, reading JSON-RPC from stdin and writing to stdout.
func (s *Server) Run(ctx context.Context) error {
	decoder := json.NewDecoder(os.Stdin)
	encoder := json.NewEncoder(os.Stdout)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var req Request
		if err := decoder.Decode(&req); err != nil {
			if err == io.EOF {
				return nil
			}
			continue
		}

		resp := s.handleRequest(&req)
		if err := encoder.Encode(resp); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding response: %v\n", err)
		}
	}
}

func (s *Server) handleRequest(req *Request) *Response {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "resources/list":
		return s.handleResourcesList(req)
	case "resources/read":
		return s.handleResourcesRead(req)
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	default:
		return errorResponse(req.ID, -32601, "Method not found")
	}
}

func (s *Server) handleInitialize(req *Request) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"serverInfo": map[string]string{
				"name":    "marcador",
				"version": "1.0.0",
			},
			"capabilities": map[string]interface{}{
				"resources": map[string]bool{
					"subscribe":   false,
					"listChanged": false,
				},
				"tools": map[string]interface{}{},
			},
		},
	}
}

func (s *Server) handleResourcesList(req *Request) *Response {
	resources := []Resource{
		{
			URI:         "marcador://bookmarks",
			Name:        "All Bookmarks",
			Description: "All stored bookmarks in JSON format",
			MimeType:    "application/json",
		},
		{
			URI:         "marcador://netscape",
			Name:        "Bookmarks (Netscape HTML)",
			Description: "All stored bookmarks as a browser-importable bookmark file",
			MimeType:    "text/html",
		},
	}

	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"resources": resources,
		},
	}
}

func (s *Server) handleResourcesRead(req *Request) *Response {
	var params struct {
		URI string `json:"uri"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, -32602, "Invalid params")
	}

	bookmarks, collections, err := s.load()
	if err != nil {
		return errorResponse(req.ID, -32000, err.Error())
	}

	var text, mimeType string
	switch params.URI {
	case "marcador://bookmarks":
		data, err := jsonfile.Encode(bookmarks, collections)
		if err != nil {
			return errorResponse(req.ID, -32000, err.Error())
		}
		text, mimeType = string(data), "application/json"
	case "marcador://netscape":
		text, mimeType = netscape.Generate(bookmarks, collections), "text/html"
	default:
		return errorResponse(req.ID, -32000, "Unknown resource: "+params.URI)
	}

	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"contents": []map[string]interface{}{
				{
					"uri":      params.URI,
					"mimeType": mimeType,
					"text":     text,
				},
			},
		},
	}
}

func (s *Server) handleToolsList(req *Request) *Response {
	tools := []Tool{
		{
			Name:        "search_bookmarks",
			Description: "Search bookmarks by title, URL, or tag",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": map[string]interface{}{
						"type":        "string",
						"description": "Search query",
					},
				},
				"required": []string{"query"},
			},
		},
		{
			Name:        "list_collections",
			Description: "List collections with their bookmark counts",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}

	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": tools,
		},
	}
}

func (s *Server) handleToolsCall(req *Request) *Response {
	var params struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, -32602, "Invalid params")
	}

	switch params.Name {
	case "search_bookmarks":
		return s.toolSearchBookmarks(req, params.Arguments)
	case "list_collections":
		return s.toolListCollections(req)
	default:
		return errorResponse(req.ID, -32602, "Unknown tool")
	}
}

func (s *Server) toolSearchBookmarks(req *Request, args json.RawMessage) *Response {
	var searchArgs struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal(args, &searchArgs); err != nil {
		return errorResponse(req.ID, -32602, "Invalid search arguments")
	}

	bookmarks, collections, err := s.load()
	if err != nil {
		return errorResponse(req.ID, -32000, err.Error())
	}
	paths := bookmark.CollectionPaths(collections)

	var results []map[string]string
	for _, b := range bookmarks {
		if !matches(b, searchArgs.Query) {
			continue
		}
		results = append(results, map[string]string{
			"title":      b.DisplayTitle(),
			"url":        b.URL,
			"collection": paths[b.CollectionID],
		})
	}

	resultJSON, _ := json.MarshalIndent(results, "", "  ")

	return textResult(req.ID, fmt.Sprintf("Found %d matches:\n%s", len(results), string(resultJSON)))
}

func (s *Server) toolListCollections(req *Request) *Response {
	bookmarks, collections, err := s.load()
	if err != nil {
		return errorResponse(req.ID, -32000, err.Error())
	}

	counts := make(map[string]int)
	for _, b := range bookmarks {
		counts[b.CollectionID]++
	}
	paths := bookmark.CollectionPaths(collections)

	var results []map[string]interface{}
	for _, c := range collections {
		results = append(results, map[string]interface{}{
			"name":      c.Name,
			"path":      paths[c.ID],
			"bookmarks": counts[c.ID],
		})
	}

	resultJSON, _ := json.MarshalIndent(results, "", "  ")

	return textResult(req.ID, string(resultJSON))
}

func (s *Server) load() ([]bookmark.Bookmark, []bookmark.Collection, error) {
	bookmarks, err := s.store.ListBookmarks()
	if err != nil {
		return nil, nil, err
	}
	collections, err := s.store.ListCollections()
	if err != nil {
		return nil, nil, err
	}
	return bookmarks, collections, nil
}

func matches(b bookmark.Bookmark, query string) bool {
	query = strings.ToLower(query)
	if strings.Contains(strings.ToLower(b.Title), query) ||
		strings.Contains(strings.ToLower(b.URL), query) {
		return true
	}
	for _, tag := range b.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func textResult(id interface{}, text string) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": text,
				},
			},
		},
	}
}

func errorResponse(id interface{}, code int, message string) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	}
}

// MCP Protocol types

// Request represents a JSON-RPC request.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response represents a JSON-RPC response.
type Response struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents a JSON-RPC error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Resource represents an MCP resource.
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// Tool represents an MCP tool.
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}
