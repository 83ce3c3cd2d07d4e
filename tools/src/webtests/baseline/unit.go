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
	"bytes"
	"fmt"
	"path"
	"sort"

	"dawn.googlesource.com/blinktools/tools/src/container"
)

// unit holds the baselines of a single test and suffix, keyed by directory.
// The baselines are modified in memory, and the differences applied once the
// reduction is complete.
type unit struct {
	suffix    Suffix
	name      string // file name of the baseline
	isReftest bool
	original  map[string][]byte
	files     map[string][]byte
}

// path returns the path of the baseline in the given directory
func (u *unit) path(dir string) string { return path.Join(dir, u.name) }

// has returns true if the directory holds a baseline
func (u *unit) has(dir string) bool {
	_, ok := u.files[dir]
	return ok
}

// digest returns the digest of the baseline in the directory
func (u *unit) digest(dir string) Digest {
	content, ok := u.files[dir]
	return Classify(content, ok, u.suffix, u.isReftest)
}

// find returns the first directory of dirs that holds a baseline
func (u *unit) find(dirs []string) (string, bool) {
	for _, dir := range dirs {
		if u.has(dir) {
			return dir, true
		}
	}
	return "", false
}

// resolve returns the digest of the first baseline found in dirs, or Implicit
func (u *unit) resolve(dirs []string) Digest {
	if dir, ok := u.find(dirs); ok {
		return u.digest(dir)
	}
	return Implicit
}

// candidates returns the distinct digests of the baselines, along with the
// content of the first baseline, in directory order, with that digest.
func (u *unit) candidates() ([]Digest, [][]byte) {
	dirs := make([]string, 0, len(u.files))
	for dir := range u.files {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	digests, contents := []Digest{}, [][]byte{}
	seen := map[Digest]bool{}
	for _, dir := range dirs {
		if d := u.digest(dir); !seen[d] {
			seen[d] = true
			digests = append(digests, d)
			contents = append(contents, u.files[dir])
		}
	}
	return digests, contents
}

// reduce places the fewest baselines in the directories of the routes such
// that every route resolves to its expected digest.
func (u *unit) reduce(routes []route) error {
	if len(routes) == 0 {
		return nil
	}
	tree, err := buildTree(routes)
	if err != nil {
		return err
	}

	candidates, contents := u.candidates()
	index := map[Digest]int{}
	for i, d := range candidates {
		index[d] = i
	}
	for dir, n := range tree.nodes {
		if u.has(dir) {
			n.existing = index[u.digest(dir)]
		}
	}

	placement, err := tree.solve(candidates)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotTransparent, err)
	}

	for _, dir := range tree.dirs() {
		switch value := placement[dir]; {
		case value == noBaseline:
			delete(u.files, dir)
		case u.has(dir) && u.digest(dir) == candidates[value]:
			// Keep the existing baseline
		default:
			u.files[dir] = contents[value]
		}
	}
	return nil
}

// diff returns the paths of the baselines deleted and written, sorted
func (u *unit) diff() (deleted, written []string) {
	dirs := container.NewSet[string]()
	for dir := range u.original {
		dirs.Add(dir)
	}
	for dir := range u.files {
		dirs.Add(dir)
	}
	deleted, written = []string{}, []string{}
	for _, dir := range dirs.List() {
		before, hadBefore := u.original[dir]
		after, hasAfter := u.files[dir]
		switch {
		case hadBefore && !hasAfter:
			deleted = append(deleted, u.path(dir))
		case hasAfter && (!hadBefore || !bytes.Equal(before, after)):
			written = append(written, u.path(dir))
		}
	}
	return deleted, written
}

// dirOf returns the directory of the slash separated path, or an empty
// string for the web tests root.
func dirOf(p string) string {
	if dir := path.Dir(p); dir != "." {
		return dir
	}
	return ""
}
