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
	"sort"
	"strings"

	"dawn.googlesource.com/blinktools/tools/src/container"
)

// Remover removes OS version tags from the expectations of individual tests,
// splitting OS family and untagged lines into the versions that remain.
type Remover struct {
	content  *Content
	families []string            // OS families, lowercase, in output order
	versions map[string][]string // family -> versions, lowercase, in output order
	family   map[string]string   // version -> family, lowercase
	casing   map[string]string   // lowercase tag -> output casing
	emptied  container.Set[int]  // indices of chunks that lost all expectations
}

// NewRemover returns a Remover that edits content.
// osVersions maps each OS family tag to its version tags, for example
// {"Mac": ["Mac10.10", "Mac10.11"]}. Tags are compared case-insensitively,
// and written in the casing declared by the content header.
func NewRemover(content *Content, osVersions map[string][]string) *Remover {
	r := &Remover{
		content:  content,
		versions: map[string][]string{},
		family:   map[string]string{},
		casing:   map[string]string{},
		emptied:  container.NewSet[int](),
	}
	addCasing := func(tag string) string {
		lower := strings.ToLower(tag)
		if declared, _, ok := content.Header.Tag(tag); ok {
			r.casing[lower] = declared
		} else {
			r.casing[lower] = tag
		}
		return lower
	}
	for family, versions := range osVersions {
		f := addCasing(family)
		r.families = append(r.families, f)
		for _, v := range versions {
			v := addCasing(v)
			r.versions[f] = append(r.versions[f], v)
			r.family[v] = f
		}
	}
	sort.Slice(r.families, func(i, j int) bool {
		a, b := content.Header.TagOrder(r.families[i]), content.Header.TagOrder(r.families[j])
		if a != b {
			return a < b
		}
		return r.families[i] < r.families[j]
	})
	return r
}

// RemoveOSVersions removes the given OS versions from the expectations of
// test. Lines tagged with one of the versions are deleted. Lines tagged with
// an OS family that includes one of the versions, and lines without any OS
// tag, are replaced with lines for the remaining versions, where complete
// families are collapsed back to the family tag.
// RemoveOSVersions is a no-op if versions is empty, or the test has no
// expectations.
func (r *Remover) RemoveOSVersions(test string, versions []string) {
	remove := container.NewSet[string]()
	for _, v := range versions {
		remove.Add(strings.ToLower(v))
	}
	if len(remove) == 0 {
		return
	}

	for i := range r.content.Chunks {
		chunk := &r.content.Chunks[i]
		if len(chunk.Expectations) == 0 {
			continue
		}
		changed := false
		out := make([]Expectation, 0, len(chunk.Expectations))
		for _, ex := range chunk.Expectations {
			if ex.Test == test {
				if replacement, ok := r.remove(ex, remove); ok {
					out = append(out, replacement...)
					changed = true
					continue
				}
			}
			out = append(out, ex)
		}
		if changed {
			chunk.Expectations = out
			if len(out) == 0 {
				r.emptied.Add(i)
			}
		}
	}
}

// remove returns the expectations that replace ex once the versions are
// removed. Returns false if ex is unaffected.
func (r *Remover) remove(ex Expectation, remove container.Set[string]) ([]Expectation, bool) {
	osTag, osIdx := "", -1
	for i, tag := range ex.Tags {
		tag = strings.ToLower(tag)
		if remove.Contains(tag) {
			return nil, true
		}
		if _, isFamily := r.versions[tag]; osIdx < 0 && (isFamily || r.family[tag] != "") {
			osTag, osIdx = tag, i
		}
	}

	var candidates []string
	switch {
	case osIdx < 0:
		for _, f := range r.families {
			candidates = append(candidates, r.versions[f]...)
		}
	case r.versions[osTag] != nil:
		candidates = r.versions[osTag]
	default:
		return nil, false // Already scoped to a version that remains
	}
	if !remove.ContainsAny(container.SetFrom(candidates)) {
		return nil, false
	}

	remaining := container.NewSet[string]()
	for _, v := range candidates {
		if !remove.Contains(v) {
			remaining.Add(v)
		}
	}

	out := []Expectation{}
	for _, tag := range r.simplify(remaining) {
		split := ex
		split.Source = ""
		split.Results = append([]string(nil), ex.Results...)
		if osIdx < 0 {
			split.Tags = append([]string{tag}, ex.Tags...)
		} else {
			split.Tags = append([]string(nil), ex.Tags...)
			split.Tags[osIdx] = tag
		}
		out = append(out, split)
	}
	return out, true
}

// simplify returns the tags covering the versions, where families with all
// their versions present are collapsed into the family tag.
func (r *Remover) simplify(versions container.Set[string]) []string {
	out := []string{}
	for _, f := range r.families {
		all := r.versions[f]
		if len(all) > 0 && versions.ContainsAll(container.SetFrom(all)) {
			out = append(out, r.casing[f])
			continue
		}
		for _, v := range all {
			if versions.Contains(v) {
				out = append(out, r.casing[v])
			}
		}
	}
	return out
}

// Update drops the comments that described fully removed blocks of
// expectations, and returns the updated file content. Lines that were not
// affected by a removal are returned unchanged.
func (r *Remover) Update() string {
	r.prune()
	return r.content.String()
}

// UpdateFile is Update, writing the result to the file at path.
func (r *Remover) UpdateFile(path string) error {
	r.prune()
	return r.content.Save(path)
}

func (r *Remover) prune() {
	if len(r.emptied) == 0 {
		return
	}
	out := make([]Chunk, 0, len(r.content.Chunks))
	for i, chunk := range r.content.Chunks {
		if !r.emptied.Contains(i) {
			out = append(out, chunk)
			continue
		}
		kept := headerComments(chunk.Comments)
		if len(kept) > 0 {
			out = append(out, Chunk{Comments: kept})
			continue
		}
		if n := len(out); n > 0 && out[n-1].IsBlankLine() {
			out = out[:n-1]
		}
	}
	r.content.Chunks = out
	r.emptied = container.NewSet[int]()
}

// headerComments returns the header declaration lines of comments,
// including the continuation lines of multi-line lists.
func headerComments(comments []string) []string {
	out := []string{}
	p := headerParser{header: &Header{}}
	for _, line := range comments {
		inList := p.list != nil
		p.parse(line)
		if inList || IsHeaderComment(line) {
			out = append(out, line)
		}
	}
	return out
}
