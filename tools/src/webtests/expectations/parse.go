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

import (
	"fmt"
	"strings"
)

// ParserError is the error returned by Parse for malformed content
type ParserError struct {
	Line    int
	Column  int
	Message string
}

func (e ParserError) Error() string {
	return fmt.Sprintf("%v:%v: %v", e.Line, e.Column, e.Message)
}

// Prefixes of the bug tokens that may start an expectation line
var bugPrefixes = []string{
	"crbug.com/",
	"crbug/",
	"skbug.com/",
	"webkit.org/b/",
	"Bug(",
}

func isBug(token string) bool {
	for _, prefix := range bugPrefixes {
		if strings.HasPrefix(token, prefix) {
			return true
		}
	}
	return false
}

// Parse parses an expectations file content.
// Tags and results are validated against the header, if one is declared.
func Parse(body string) (*Content, error) {
	type LineType int

	const (
		comment LineType = iota
		expectation
		blank
	)

	classifyLine := func(line string) LineType {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			return blank
		case strings.HasPrefix(line, "#"):
			return comment
		default:
			return expectation
		}
	}

	content := &Content{}
	header := headerParser{header: &content.Header}
	var pending Chunk
	flush := func() {
		content.Chunks = append(content.Chunks, pending)
		pending = Chunk{}
	}

	if body == "" {
		return content, nil
	}

	lastLineType := blank
	for i, l := range strings.Split(strings.TrimSuffix(body, "\n"), "\n") {
		line := i + 1
		lineType := classifyLine(l)

		if i > 0 {
			switch {
			case
				lastLineType == blank && lineType != blank,             // blank -> !blank
				lastLineType != blank && lineType == blank,             // !blank -> blank
				lastLineType == expectation && lineType != expectation: // expectation -> comment
				flush()
			}
		}

		lastLineType = lineType

		switch lineType {
		case blank:
			pending.Comments = append(pending.Comments, l)
			continue
		case comment:
			if msg := header.parse(l); msg != "" {
				return nil, ParserError{line, strings.Index(l, "#") + 1, msg}
			}
			pending.Comments = append(pending.Comments, l)
			continue
		}

		ex, err := parseExpectation(l, line, content.Header)
		if err != nil {
			return nil, err
		}
		pending.Expectations = append(pending.Expectations, ex)
	}

	flush()

	return content, nil
}

type token struct {
	text   string
	column int // 1-based
}

// tokenize splits the line on whitespace
func tokenize(line string) []token {
	out := []token{}
	start := -1
	for i, r := range line {
		isSpace := r == ' ' || r == '\t' || r == '\r'
		switch {
		case isSpace && start >= 0:
			out = append(out, token{line[start:i], start + 1})
			start = -1
		case !isSpace && start < 0:
			start = i
		}
	}
	if start >= 0 {
		out = append(out, token{line[start:], start + 1})
	}
	return out
}

func parseExpectation(l string, line int, header Header) (Expectation, error) {
	tokens := tokenize(l)
	column := 1

	syntaxErr := func(msg string, args ...interface{}) error {
		return ParserError{line, column, fmt.Sprintf(msg, args...)}
	}
	peek := func() string {
		if len(tokens) == 0 {
			column = len(l) + 1
			return ""
		}
		column = tokens[0].column
		return tokens[0].text
	}
	next := func() string {
		t := peek()
		if len(tokens) > 0 {
			tokens = tokens[1:]
		}
		return t
	}
	list := func() ([]string, []int, error) {
		if peek() != "[" {
			return nil, nil, nil
		}
		next()
		out, columns := []string{}, []int{}
		for {
			t := peek()
			switch {
			case t == "]":
				next()
				return out, columns, nil
			case t == "", strings.HasPrefix(t, "#"):
				return nil, nil, syntaxErr("expected ']'")
			default:
				out = append(out, t)
				columns = append(columns, column)
				next()
			}
		}
	}

	bugs := []string{}
	for isBug(peek()) {
		bugs = append(bugs, next())
	}
	tags, tagColumns, err := list()
	if err != nil {
		return Expectation{}, err
	}
	if len(header.Tags) > 0 {
		for i, tag := range tags {
			if _, _, ok := header.Tag(tag); !ok {
				return Expectation{}, ParserError{line, tagColumns[i], fmt.Sprintf("unknown tag '%v'", tag)}
			}
		}
	}
	if t := peek(); t == "[" || t == "" || strings.HasPrefix(t, "#") {
		return Expectation{}, syntaxErr("expected test name")
	}
	test := next()
	if peek() != "[" {
		return Expectation{}, syntaxErr("expected results")
	}
	results, resultColumns, err := list()
	if err != nil {
		return Expectation{}, err
	}
	if len(results) == 0 {
		return Expectation{}, syntaxErr("expected at least one result")
	}
	if len(header.Results) > 0 {
		for i, result := range results {
			if _, ok := header.Result(result); !ok {
				return Expectation{}, ParserError{line, resultColumns[i], fmt.Sprintf("unknown result '%v'", result)}
			}
		}
	}

	comment := ""
	if t := peek(); strings.HasPrefix(t, "#") {
		comment = strings.TrimRight(l[column-1:], " \t\r")
	} else if t != "" {
		return Expectation{}, syntaxErr("unexpected token '%v'", t)
	}

	return Expectation{
		Line:    line,
		Bug:     strings.Join(bugs, " "),
		Tags:    tags,
		Test:    test,
		Results: results,
		Comment: comment,
		Source:  l,
	}, nil
}
