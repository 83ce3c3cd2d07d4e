// Copyright 2023 The Dawn Authors
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

package expectations

import "strings"

// Reserved comment prefixes that declare the expectations file header
const (
	tagsPrefix             = "# tags:"
	resultsPrefix          = "# results:"
	conflictsAllowedPrefix = "# conflicts_allowed:"
)

// Header holds the tag sets and results declared at the top of an
// expectations file.
type Header struct {
	// Tags holds each declared tag set, in declaration order and casing.
	Tags [][]string
	// Results holds the declared results, in declaration order and casing.
	Results []string
	// ConflictsAllowed is true if '# conflicts_allowed: true' was declared.
	ConflictsAllowed bool
}

// IsHeaderComment returns true if line is one of the reserved header comment
// lines.
func IsHeaderComment(line string) bool {
	line = strings.TrimSpace(line)
	for _, prefix := range []string{tagsPrefix, resultsPrefix, conflictsAllowedPrefix} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// Tag looks up the declared tag with the given name, case-insensitively.
// Returns the tag in its declared casing, and the index of the tag set that
// declared it.
func (h Header) Tag(name string) (tag string, set int, ok bool) {
	for i, tags := range h.Tags {
		for _, t := range tags {
			if strings.EqualFold(t, name) {
				return t, i, true
			}
		}
	}
	return "", 0, false
}

// TagOrder returns the position of the tag across all declared tag sets, or
// -1 if the tag is not declared.
func (h Header) TagOrder(name string) int {
	i := 0
	for _, tags := range h.Tags {
		for _, t := range tags {
			if strings.EqualFold(t, name) {
				return i
			}
			i++
		}
	}
	return -1
}

// Result looks up the declared result with the given name,
// case-insensitively.
func (h Header) Result(name string) (string, bool) {
	for _, r := range h.Results {
		if strings.EqualFold(r, name) {
			return r, true
		}
	}
	return "", false
}

// headerParser incrementally parses header comment lines, which may span
// multiple lines.
type headerParser struct {
	header *Header
	list   *[]string // The list being appended to. nil if not in a list.
}

// parse parses a single comment line. Returns a non-empty message if the line
// is malformed.
func (p *headerParser) parse(line string) string {
	line = strings.TrimSpace(line)
	if p.list != nil {
		return p.items(strings.Fields(strings.TrimPrefix(line, "#")))
	}
	switch {
	case strings.HasPrefix(line, tagsPrefix):
		p.header.Tags = append(p.header.Tags, []string{})
		return p.open(strings.TrimPrefix(line, tagsPrefix), &p.header.Tags[len(p.header.Tags)-1])
	case strings.HasPrefix(line, resultsPrefix):
		return p.open(strings.TrimPrefix(line, resultsPrefix), &p.header.Results)
	case strings.HasPrefix(line, conflictsAllowedPrefix):
		value := strings.Trim(strings.TrimPrefix(line, conflictsAllowedPrefix), " []")
		switch strings.ToLower(value) {
		case "true":
			p.header.ConflictsAllowed = true
		case "false":
			p.header.ConflictsAllowed = false
		default:
			return "conflicts_allowed must be 'true' or 'false'"
		}
	}
	return ""
}

func (p *headerParser) open(rest string, list *[]string) string {
	tokens := strings.Fields(rest)
	if len(tokens) == 0 || tokens[0] != "[" {
		return "expected '['"
	}
	p.list = list
	return p.items(tokens[1:])
}

func (p *headerParser) items(tokens []string) string {
	for i, t := range tokens {
		if t == "]" {
			p.list = nil
			if i != len(tokens)-1 {
				return "unexpected tokens after ']'"
			}
			return ""
		}
		*p.list = append(*p.list, t)
	}
	return ""
}
