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
	"errors"
	"testing"

	"dawn.googlesource.com/blinktools/tools/src/webtests/port"
	"github.com/google/go-cmp/cmp"
)

func TestBuildTreeErrors(t *testing.T) {
	p := port.Platform{Name: "x-one"}
	type Test struct {
		name   string
		routes [][]string
	}
	for _, test := range []Test{
		{name: "searched twice", routes: [][]string{{"a", "b", "a", "r"}}},
		{name: "two parents", routes: [][]string{{"a", "b", "r"}, {"a", "c", "r"}}},
		{name: "two roots", routes: [][]string{{"a", "r"}, {"b", "s"}}},
		{name: "root with parent", routes: [][]string{{"a", "r"}, {"r", "s"}}},
		{name: "parent becomes root", routes: [][]string{{"r", "s"}, {"a", "r"}}},
	} {
		routes := []route{}
		for _, dirs := range test.routes {
			routes = append(routes, route{platform: p, dirs: dirs})
		}
		if _, err := buildTree(routes); !errors.Is(err, ErrInconsistentGraph) {
			t.Errorf("'%v': buildTree() returned %v", test.name, err)
		}
	}
}

func TestTreeSolve(t *testing.T) {
	d1 := Classify([]byte("1"), true, TXT, false)
	d2 := Classify([]byte("2"), true, TXT, false)
	candidates := []Digest{d1, d2}

	type Test struct {
		name     string
		routes   []route
		existing map[string]int
		expect   map[string]int
	}
	for _, test := range []Test{
		{
			name: "shared value moves to root",
			routes: []route{
				{dirs: []string{"a", "r"}, expect: d1},
				{dirs: []string{"b", "r"}, expect: d1},
			},
			existing: map[string]int{"a": 0, "b": 0},
			expect:   map[string]int{"a": noBaseline, "b": noBaseline, "r": 0},
		},
		{
			name: "implicit needs no baseline",
			routes: []route{
				{dirs: []string{"a", "r"}, expect: Implicit},
				{dirs: []string{"b", "r"}, expect: d1},
			},
			existing: map[string]int{"b": 0},
			expect:   map[string]int{"a": noBaseline, "b": 0, "r": noBaseline},
		},
		{
			name: "tie keeps existing",
			routes: []route{
				{dirs: []string{"a", "r"}, expect: d1},
				{dirs: []string{"b", "r"}, expect: d2},
			},
			existing: map[string]int{"r": 1, "a": 0},
			expect:   map[string]int{"a": 0, "b": noBaseline, "r": 1},
		},
		{
			name: "tie prefers no baseline",
			routes: []route{
				{dirs: []string{"a", "r"}, expect: d1},
				{dirs: []string{"b", "r"}, expect: d2},
			},
			existing: map[string]int{"a": 0, "b": 1},
			expect:   map[string]int{"a": 0, "b": 1, "r": noBaseline},
		},
		{
			name: "fallback satisfies route",
			routes: []route{
				{dirs: []string{"a", "r"}, expect: d2, fallback: d2},
			},
			existing: map[string]int{"r": 1},
			expect:   map[string]int{"a": noBaseline, "r": noBaseline},
		},
	} {
		tree, err := buildTree(test.routes)
		if err != nil {
			t.Fatalf("'%v': buildTree() returned %v", test.name, err)
		}
		for dir, value := range test.existing {
			tree.nodes[dir].existing = value
		}
		got, err := tree.solve(candidates)
		if err != nil {
			t.Fatalf("'%v': solve() returned %v", test.name, err)
		}
		if diff := cmp.Diff(test.expect, got); diff != "" {
			t.Errorf("'%v': solve() was not as expected:\n%v", test.name, diff)
		}
	}
}

func TestTreeSolveUnsolvable(t *testing.T) {
	d1 := Classify([]byte("1"), true, TXT, false)
	tree, err := buildTree([]route{{dirs: []string{"a", "r"}, expect: d1}})
	if err != nil {
		t.Fatalf("buildTree() returned %v", err)
	}
	if _, err := tree.solve(nil); !errors.Is(err, errUnsolvable) {
		t.Errorf("solve() returned %v, expected errUnsolvable", err)
	}
}
