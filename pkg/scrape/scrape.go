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

// Package scrape fetches page metadata (title, description, favicon) for
// a URL. It is a convenience collaborator for the "add" flow; the core
// converter never depends on it.
package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Metadata holds the extracted page metadata. All fields may be empty
// except Title, which falls back to the page URL, and the derived
// FaviconURL/ScreenshotURL, which always resolve to something usable.
type Metadata struct {
	Title         string
	Description   string
	FaviconURL    string
	ScreenshotURL string
	OGImage       string
}

// Client fetches and extracts page metadata.
type Client struct {
	http *http.Client
}

// New creates a scrape client with the given request timeout.
func New(timeout time.Duration) *Client {
	return &Client{http: &http.Client{Timeout: timeout}}
}

// Fetch retrieves pageURL and extracts its metadata.
func (c *Client) Fetch(ctx context.Context, pageURL string) (Metadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return Metadata{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return Metadata{}, fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return Metadata{}, fmt.Errorf("parsing %s: %w", pageURL, err)
	}

	return Extract(doc, pageURL), nil
}

// Extract pulls metadata out of a parsed document. Preference order
// follows the usual conventions: og:title over <title>, description meta
// over og:description, any icon link over /favicon.ico.
func Extract(doc *html.Node, pageURL string) Metadata {
	var e extractor
	e.walk(doc)

	m := Metadata{
		Title:         strings.TrimSpace(firstNonEmpty(e.ogTitle, e.title, pageURL)),
		Description:   strings.TrimSpace(firstNonEmpty(e.description, e.ogDescription)),
		OGImage:       e.ogImage,
		ScreenshotURL: "https://image.thum.io/get/width/800/crop/600/" + url.QueryEscape(pageURL),
	}

	icon := firstNonEmpty(e.icon, "/favicon.ico")
	m.FaviconURL = resolveFavicon(icon, pageURL)
	return m
}

// resolveFavicon makes the icon reference absolute against the page URL,
// falling back to a favicon service keyed by hostname.
func resolveFavicon(icon, pageURL string) string {
	base, err := url.Parse(pageURL)
	if err == nil {
		if ref, err := url.Parse(icon); err == nil {
			resolved := base.ResolveReference(ref)
			if resolved.Scheme != "" && resolved.Host != "" {
				return resolved.String()
			}
		}
		if base.Hostname() != "" {
			return fmt.Sprintf("https://www.google.com/s2/favicons?domain=%s&sz=32", base.Hostname())
		}
	}
	return icon
}

type extractor struct {
	title         string
	ogTitle       string
	description   string
	ogDescription string
	ogImage       string
	icon          string
}

func (e *extractor) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "title":
			if e.title == "" {
				e.title = textContent(n)
			}
		case "meta":
			e.meta(attrMap(n))
		case "link":
			attrs := attrMap(n)
			rel := strings.ToLower(attrs["rel"])
			if e.icon == "" && (rel == "icon" || rel == "shortcut icon") {
				e.icon = attrs["href"]
			}
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		e.walk(child)
	}
}

func (e *extractor) meta(attrs map[string]string) {
	content := attrs["content"]
	if content == "" {
		return
	}
	switch {
	case attrs["property"] == "og:title" && e.ogTitle == "":
		e.ogTitle = content
	case attrs["property"] == "og:description" && e.ogDescription == "":
		e.ogDescription = content
	case attrs["property"] == "og:image" && e.ogImage == "":
		e.ogImage = content
	case strings.ToLower(attrs["name"]) == "description" && e.description == "":
		e.description = content
	}
}

func attrMap(n *html.Node) map[string]string {
	attrs := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		attrs[strings.ToLower(a.Key)] = a.Val
	}
	return attrs
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			sb.WriteString(child.Data)
		}
	}
	return sb.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
