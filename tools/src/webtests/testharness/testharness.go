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

// Package testharness classifies the text output of testharness.js tests.
package testharness

import "bytes"

const (
	// Header is the first line of every testharness.js text result.
	Header = "This is a testharness.js-based test."
	// Footer is emitted when the harness ran every test to completion.
	Footer = "Harness: the test ran to completion."
)

var passPrefix = []byte("PASS")

// IsOutput returns true if content looks like testharness.js text output,
// that is, it contains both the header and footer lines.
func IsOutput(content []byte) bool {
	header, footer := false, false
	for _, line := range lines(content) {
		switch string(line) {
		case Header:
			header = true
		case Footer:
			footer = true
		}
	}
	return header && footer
}

// IsAllPass returns true if content is a testharness.js result in which every
// subtest passed and nothing else was printed. Such a result carries no more
// information than having no baseline at all.
// Content that is not valid UTF-8 is simply not all-pass.
func IsAllPass(content []byte) bool {
	ls := lines(content)
	if len(ls) < 2 || string(ls[0]) != Header || string(ls[len(ls)-1]) != Footer {
		return false
	}
	for _, line := range ls[1 : len(ls)-1] {
		if !bytes.HasPrefix(line, passPrefix) {
			return false
		}
	}
	return true
}

// lines returns the non-empty, whitespace trimmed lines of content.
func lines(content []byte) [][]byte {
	out := [][]byte{}
	for _, line := range bytes.Split(content, []byte("\n")) {
		if line = bytes.TrimSpace(line); len(line) > 0 {
			out = append(out, line)
		}
	}
	return out
}
