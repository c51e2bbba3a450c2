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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAttributes(t *testing.T) {
	attrs := parseAttributes(` HREF="https://example.com" ADD_DATE="1700000000" ICON="data:image/png;base64,xyz"`)
	assert.Equal(t, "https://example.com", attrs["HREF"])
	assert.Equal(t, "1700000000", attrs["ADD_DATE"])
	assert.Equal(t, "data:image/png;base64,xyz", attrs["ICON"])
}

func TestParseAttributesEmptyInput(t *testing.T) {
	assert.Empty(t, parseAttributes(""))
}

func TestParseAttributesCaseNormalization(t *testing.T) {
	attrs := parseAttributes(` href="https://example.com" add_date="123"`)
	assert.Equal(t, "https://example.com", attrs["HREF"])
	assert.Equal(t, "123", attrs["ADD_DATE"])
}

func TestParseAttributesWhitespaceAroundEquals(t *testing.T) {
	attrs := parseAttributes(`HREF = "https://example.com"`)
	assert.Equal(t, "https://example.com", attrs["HREF"])
}

func TestParseAttributesEmptyValue(t *testing.T) {
	attrs := parseAttributes(`ICON=""`)
	val, ok := attrs["ICON"]
	assert.True(t, ok)
	assert.Equal(t, "", val)
}

func TestParseAttributesMalformedSkipped(t *testing.T) {
	// Unterminated and unquoted attributes are dropped without error.
	attrs := parseAttributes(`HREF="https://example.com" BROKEN="unterminated ADD_DATE=123`)
	assert.Equal(t, "https://example.com", attrs["HREF"])
	assert.NotContains(t, attrs, "ADD_DATE")
}

func TestParseEpoch(t *testing.T) {
	assert.Equal(t, int64(1700000000), parseEpoch("1700000000"))
	assert.Equal(t, int64(0), parseEpoch(""))
	assert.Equal(t, int64(0), parseEpoch("not-a-number"))
}
