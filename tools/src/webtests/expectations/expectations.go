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

// Package expectations provides types and helpers for parsing, editing and
// writing tagged web test expectations files.
package expectations

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Content holds the parsed lines of an expectations file, grouped into
// chunks.
type Content struct {
	// Chunks of comments, expectations and blank lines, in file order.
	Chunks []Chunk
	// Header declared with the '# tags:', '# results:' and
	// '# conflicts_allowed:' comments.
	Header Header
}

// Chunk is an optional block of comments followed by an optional block of
// expectations. A chunk with no expectations and only whitespace comment
// lines represents a run of blank lines.
type Chunk struct {
	Comments     []string
	Expectations []Expectation
}

// IsBlankLine returns true if the chunk only holds blank lines
func (c Chunk) IsBlankLine() bool {
	if len(c.Expectations) > 0 {
		return false
	}
	for _, l := range c.Comments {
		if strings.TrimSpace(l) != "" {
			return false
		}
	}
	return true
}

// Expectation holds a single expectation line
type Expectation struct {
	Line    int      // The 1-based source line. 0 if the line was added.
	Bug     string   // The bug(s) associated with the expectation
	Tags    []string // Tags used to filter the expectation, in source order
	Test    string   // The test name or glob
	Results []string // The expected results
	Comment string   // Optional trailing comment, including the leading '#'
	// Source is the original line text. Cleared when the expectation is
	// modified, in which case the line is re-serialized on write.
	Source string
}

// String returns the line text for the expectation
func (e Expectation) String() string {
	if e.Source != "" {
		return e.Source
	}
	return e.Format()
}

// Format returns the canonical line text for the expectation, ignoring
// Source.
func (e Expectation) Format() string {
	parts := []string{}
	if e.Bug != "" {
		parts = append(parts, e.Bug)
	}
	if len(e.Tags) > 0 {
		parts = append(parts, fmt.Sprintf("[ %v ]", strings.Join(e.Tags, " ")))
	}
	parts = append(parts, e.Test)
	parts = append(parts, fmt.Sprintf("[ %v ]", strings.Join(e.Results, " ")))
	if e.Comment != "" {
		parts = append(parts, e.Comment)
	}
	return strings.Join(parts, " ")
}

// HasTag returns true if the expectation carries the tag, compared
// case-insensitively
func (e Expectation) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// HasResult returns true if the expectation lists the result, compared
// case-insensitively
func (e Expectation) HasResult(result string) bool {
	for _, r := range e.Results {
		if strings.EqualFold(r, result) {
			return true
		}
	}
	return false
}

// Load loads the expectation file at the given path
func Load(path string) (*Content, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	content, err := Parse(string(body))
	if err != nil {
		return nil, fmt.Errorf("%v:%w", path, err)
	}
	return content, nil
}

// Save saves the content to the file at the given path
func (c *Content) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return c.Write(f)
}

// Empty returns true if the content has no chunks
func (c *Content) Empty() bool {
	return len(c.Chunks) == 0
}

// Expectations returns all the expectations of the content, in file order
func (c *Content) Expectations() []Expectation {
	out := []Expectation{}
	for _, chunk := range c.Chunks {
		out = append(out, chunk.Expectations...)
	}
	return out
}

// ExpectationsFor returns all the expectations for the given test name, in
// file order
func (c *Content) ExpectationsFor(test string) []Expectation {
	out := []Expectation{}
	for _, chunk := range c.Chunks {
		for _, ex := range chunk.Expectations {
			if ex.Test == test {
				out = append(out, ex)
			}
		}
	}
	return out
}

// Write writes the content to w. Each line is terminated with a newline.
func (c *Content) Write(w io.Writer) error {
	for _, chunk := range c.Chunks {
		for _, comment := range chunk.Comments {
			if _, err := fmt.Fprintln(w, comment); err != nil {
				return err
			}
		}
		for _, ex := range chunk.Expectations {
			if _, err := fmt.Fprintln(w, ex.String()); err != nil {
				return err
			}
		}
	}
	return nil
}

// String returns the serialized content
func (c *Content) String() string {
	sb := strings.Builder{}
	c.Write(&sb)
	return sb.String()
}

// Format returns a copy of the content with every expectation line
// re-serialized in canonical form. Comments and blank lines are unchanged.
func (c *Content) Format() *Content {
	out := &Content{Header: c.Header, Chunks: make([]Chunk, len(c.Chunks))}
	for i, chunk := range c.Chunks {
		formatted := Chunk{Comments: append([]string(nil), chunk.Comments...)}
		for _, ex := range chunk.Expectations {
			ex.Tags = append([]string(nil), ex.Tags...)
			ex.Results = append([]string(nil), ex.Results...)
			ex.Source = ""
			formatted.Expectations = append(formatted.Expectations, ex)
		}
		out.Chunks[i] = formatted
	}
	return out
}
