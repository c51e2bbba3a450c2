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
	"html"
	"strings"
)

// escaper encodes the five characters that must not appear literally in
// attribute values or text content. strings.Replacer scans left to right
// in a single pass, so already-produced "&amp;" is never re-encoded.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeText encodes text for embedding in bookmark markup.
// Empty input encodes to an empty string; EscapeText never fails.
func EscapeText(s string) string {
	if s == "" {
		return ""
	}
	return escaper.Replace(s)
}

// UnescapeText decodes HTML character references to literal text.
// It handles the full set of named and numeric references, well beyond the
// five that EscapeText produces, since files in the wild use entities we
// never emit. Empty input decodes to an empty string; UnescapeText never
// fails.
func UnescapeText(s string) string {
	if s == "" {
		return ""
	}
	return html.UnescapeString(s)
}
