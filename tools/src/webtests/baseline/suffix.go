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

package baseline

import (
	"fmt"
	"path"
	"strings"
)

// Suffix is the file extension of a baseline
type Suffix string

// Enumerator values for Suffix
const (
	TXT Suffix = "txt"
	PNG Suffix = "png"
	WAV Suffix = "wav"
)

// Suffixes holds all the baseline suffixes
var Suffixes = []Suffix{TXT, PNG, WAV}

// ParseSuffix parses the suffix, which may have a leading '.'
func ParseSuffix(s string) (Suffix, error) {
	switch suffix := Suffix(strings.TrimPrefix(strings.ToLower(s), ".")); suffix {
	case TXT, PNG, WAV:
		return suffix, nil
	}
	return "", fmt.Errorf("unknown baseline suffix '%v'", s)
}

// ParseSuffixes parses a comma separated list of suffixes
func ParseSuffixes(list string) ([]Suffix, error) {
	out := []Suffix{}
	for _, s := range strings.Split(list, ",") {
		if s = strings.TrimSpace(s); s == "" {
			continue
		}
		suffix, err := ParseSuffix(s)
		if err != nil {
			return nil, err
		}
		out = append(out, suffix)
	}
	return out, nil
}

// FileName returns the file name of the test's baseline, without the
// directory. For example 'fast/canvas/x.html' returns 'x-expected.txt'.
func FileName(test string, suffix Suffix) string {
	name := path.Base(test)
	return strings.TrimSuffix(name, path.Ext(name)) + "-expected." + string(suffix)
}

// referenceSuffixes are the file name endings of reference files
var referenceSuffixes = []string{
	"-expected.html",
	"-expected.svg",
	"-expected.xhtml",
	"-expected-mismatch.html",
	"-expected-mismatch.svg",
	"-expected-mismatch.xhtml",
}

// referencePaths returns the paths that hold a reference file if test is a
// reference test.
func referencePaths(test string) []string {
	stem := strings.TrimSuffix(test, path.Ext(test))
	out := make([]string, len(referenceSuffixes))
	for i, s := range referenceSuffixes {
		out[i] = stem + s
	}
	return out
}
