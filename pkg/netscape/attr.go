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
	"regexp"
	"strconv"
	"strings"
)

// attrPattern matches NAME="value" pairs with optional whitespace around
// the equals sign. Values may be empty. Unquoted or unterminated attributes
// do not match and are silently skipped - browser-exported files have the
// format but not a grammar, so tolerant extraction is required.
var attrPattern = regexp.MustCompile(`([A-Za-z0-9_:-]+)\s*=\s*"([^"]*)"`)

// parseAttributes extracts the attributes of a start tag into a lookup
// keyed by upper-cased attribute name. raw is everything between the tag
// name and the closing ">". Returns an empty map for empty input.
func parseAttributes(raw string) map[string]string {
	attrs := make(map[string]string)
	if raw == "" {
		return attrs
	}
	for _, m := range attrPattern.FindAllStringSubmatch(raw, -1) {
		attrs[strings.ToUpper(m[1])] = m[2]
	}
	return attrs
}

// parseEpoch parses a decimal epoch-seconds attribute value.
// Missing or malformed values yield 0 (unknown).
func parseEpoch(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
