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
	"strings"
)

var (
	folderLine = regexp.MustCompile(`(?i)^<DT><H3([^>]*)>(.*?)</H3>`)
	linkLine   = regexp.MustCompile(`(?i)^<DT><A([^>]*)>(.*?)</A>`)
	ddOpen     = regexp.MustCompile(`(?i)^<DD>`)
	ddClose    = regexp.MustCompile(`(?i)</DD>`)
)

// Parse converts raw Netscape bookmark-file text into an ordered forest of
// Folder and Link nodes.
//
// Parse never returns an error: unknown lines, missing optional attributes,
// and unterminated tags are silently ignored or defaulted. An empty forest
// signals input that is not a recognizable bookmark file - callers importing
// user-supplied files must treat a zero-node result as a failure rather
// than a zero-item success.
//
// Input is processed line by line (\n or \r\n), each line trimmed of
// surrounding whitespace, blank lines skipped. Unclosed containers at end
// of input are not an error; their children are returned as parsed.
func Parse(text string) []Node {
	root := &Folder{}
	p := &parser{stack: []*Folder{root}}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		p.consume(line)
	}

	return root.Children
}

// parser is the line-oriented state machine. The container stack is seeded
// with a synthetic root folder whose children become the returned forest;
// the stack never pops below it.
//
// pending holds a folder that has been declared by its <DT><H3> line but
// whose <DL> container has not opened yet. last tracks whichever node most
// recently became eligible to receive <DD> description lines.
type parser struct {
	stack   []*Folder
	pending *Folder
	last    Node
}

func (p *parser) top() *Folder {
	return p.stack[len(p.stack)-1]
}

func (p *parser) consume(line string) {
	upper := strings.ToUpper(line)
	switch {
	case strings.HasPrefix(upper, "<DT><H3"):
		p.folderDeclared(line)
	case strings.HasPrefix(upper, "<DT><A"):
		p.linkDeclared(line)
	case strings.HasPrefix(upper, "<DD>"):
		p.description(line)
	case strings.HasPrefix(upper, "</DL"):
		p.containerClosed()
	case strings.HasPrefix(upper, "<DL"):
		p.containerOpened()
	}
	// Everything else (doctype, meta, <DT> leftovers, <p>) is ignored.
}

// folderDeclared handles a <DT><H3 ...>Title</H3> line. The new folder is
// attached to the current container immediately and marked pending so the
// next <DL> pushes it instead of duplicating the stack top.
func (p *parser) folderDeclared(line string) {
	m := folderLine.FindStringSubmatch(line)
	if m == nil {
		return
	}
	attrs := parseAttributes(m[1])
	folder := &Folder{
		Title:        UnescapeText(m[2]),
		AddDate:      parseEpoch(attrs["ADD_DATE"]),
		LastModified: parseEpoch(attrs["LAST_MODIFIED"]),
	}
	top := p.top()
	top.Children = append(top.Children, folder)
	p.pending = folder
	p.last = folder
}

// linkDeclared handles a <DT><A ...>Title</A> line. Entries without an
// HREF attribute are dropped - browsers occasionally emit malformed lines,
// and a partial import beats an aborted one.
func (p *parser) linkDeclared(line string) {
	m := linkLine.FindStringSubmatch(line)
	if m == nil {
		return
	}
	attrs := parseAttributes(m[1])
	href := attrs["HREF"]
	if href == "" {
		return
	}
	icon := attrs["ICON"]
	if icon == "" {
		icon = attrs["ICON_URI"]
	}
	link := &Link{
		URL:          href,
		Title:        UnescapeText(m[2]),
		Icon:         icon,
		AddDate:      parseEpoch(attrs["ADD_DATE"]),
		LastModified: parseEpoch(attrs["LAST_MODIFIED"]),
	}
	top := p.top()
	top.Children = append(top.Children, link)
	p.last = link
}

// description handles a <DD> line, attaching the decoded text to the most
// recently declared link or folder. Successive description lines for the
// same node are newline-joined. A description with no current target
// (e.g. right after a container boundary reset it to the synthetic root)
// ends up on a node the caller never sees, which is as good as dropped.
func (p *parser) description(line string) {
	text := ddOpen.ReplaceAllString(line, "")
	text = ddClose.ReplaceAllString(text, "")
	text = UnescapeText(strings.TrimSpace(text))
	if text == "" {
		return
	}
	switch n := p.last.(type) {
	case *Link:
		n.Description = joined(n.Description, text)
	case *Folder:
		n.Description = joined(n.Description, text)
	}
}

// containerOpened handles a <DL line. If a folder is pending it becomes
// the new container; otherwise the current top is pushed again so stack
// depth keeps matching <DL>/</DL> balance even when a <DL> appears without
// a preceding <H3> (the synthetic root wrapper some exporters emit).
func (p *parser) containerOpened() {
	if p.pending != nil {
		p.stack = append(p.stack, p.pending)
		p.pending = nil
		return
	}
	p.stack = append(p.stack, p.top())
}

// containerClosed handles a </DL line: pop (never below the root sentinel)
// and reset description targeting to the enclosing folder.
func (p *parser) containerClosed() {
	if len(p.stack) > 1 {
		p.stack = p.stack[:len(p.stack)-1]
	}
	p.pending = nil
	p.last = p.top()
}

func joined(existing, text string) string {
	if existing == "" {
		return text
	}
	return existing + "\n" + text
}
