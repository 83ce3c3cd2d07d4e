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

package common

import (
	"io/fs"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"dawn.googlesource.com/blinktools/tools/src/container"
)

// testExtensions are the file extensions of web tests
var testExtensions = container.NewSet(".html", ".htm", ".xhtml", ".xht", ".svg", ".shtml")

// nonTestDirs are directories that never hold tests
var nonTestDirs = container.NewSet("platform", "flag-specific", "resources", "support")

// IsTest returns true if the slash separated path is of a web test
func IsTest(p string) bool {
	if !testExtensions.Contains(strings.ToLower(path.Ext(p))) {
		return false
	}
	stem := strings.TrimSuffix(path.Base(p), path.Ext(p))
	if strings.HasSuffix(stem, "-expected") || strings.HasSuffix(stem, "-expected-mismatch") {
		return false
	}
	for _, dir := range strings.Split(path.Dir(p), "/") {
		if nonTestDirs.Contains(dir) {
			return false
		}
	}
	return true
}

// FindTests returns the sorted, unique tests of fsys matched by the patterns.
// Patterns use doublestar glob syntax. A pattern without any glob meta
// characters is taken as a test name, even if the file does not exist, so
// that virtual tests can be named.
func FindTests(fsys fs.FS, patterns []string) ([]string, error) {
	tests := container.NewSet[string]()
	for _, pattern := range patterns {
		pattern = strings.TrimPrefix(path.Clean(pattern), "/")
		if !strings.ContainsAny(pattern, "*?[{") {
			if IsTest(pattern) {
				tests.Add(pattern)
				continue
			}
			// A directory. Match everything below it.
			pattern = path.Join(pattern, "**")
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if IsTest(m) {
				tests.Add(m)
			}
		}
	}
	return tests.List(), nil
}
