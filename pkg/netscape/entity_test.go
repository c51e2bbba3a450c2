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

func TestEscapeText(t *testing.T) {
	assert.Equal(t, "", EscapeText(""))
	assert.Equal(t, "plain text", EscapeText("plain text"))
	assert.Equal(t, "a &amp; b", EscapeText("a & b"))
	assert.Equal(t, "&lt;b&gt;", EscapeText("<b>"))
	assert.Equal(t, "&quot;quoted&quot;", EscapeText(`"quoted"`))
	assert.Equal(t, "it&#39;s", EscapeText("it's"))
}

func TestEscapeTextNoDoubleEncoding(t *testing.T) {
	// A literal ampersand followed by entity-looking text must encode the
	// ampersand exactly once.
	assert.Equal(t, "&amp;lt;", EscapeText("&lt;"))
	assert.Equal(t, "&amp;amp;", EscapeText("&amp;"))
}

func TestUnescapeText(t *testing.T) {
	assert.Equal(t, "", UnescapeText(""))
	assert.Equal(t, "a & b", UnescapeText("a &amp; b"))
	assert.Equal(t, `<b>"x"</b>`, UnescapeText("&lt;b&gt;&quot;x&quot;&lt;/b&gt;"))
	assert.Equal(t, "it's", UnescapeText("it&#39;s"))

	// References beyond the five we emit must still decode.
	assert.Equal(t, "café…", UnescapeText("caf&eacute;&hellip;"))
	assert.Equal(t, "A", UnescapeText("&#65;"))
}

func TestEntityRoundTrip(t *testing.T) {
	original := `Tom & Jerry's "Show" <Live>`
	assert.Equal(t, original, UnescapeText(EscapeText(original)))
}
