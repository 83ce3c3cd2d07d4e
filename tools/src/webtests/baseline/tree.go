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
	"fmt"
	"sort"

	"dawn.googlesource.com/blinktools/tools/src/container"
	"dawn.googlesource.com/blinktools/tools/src/webtests/port"
)

// ErrInconsistentGraph is returned when the search paths of the platforms do
// not form a single tree of directories.
var ErrInconsistentGraph = errors.New("inconsistent fallback graph")

// errUnsolvable is returned by dirTree.solve when no placement of baselines
// satisfies every platform.
var errUnsolvable = errors.New("no baseline placement satisfies every platform")

const (
	// noBaseline is the value used for 'no baseline placed'. When provided to
	// a node, it means that no directory above the node holds a baseline.
	noBaseline = -1
	infinity   = int(^uint(0) >> 2)
)

// route is a single platform's view of the tree
type route struct {
	platform port.Platform
	// The directories of the tree searched by the platform, most specific
	// first. The last directory is the tree root.
	dirs []string
	// The digest the platform must resolve to
	expect Digest
	// The digest the platform resolves to when no directory of dirs holds a
	// baseline
	fallback Digest
	// If true, the route accepts any digest Equivalent to expect
	equivalent bool
}

// accepts returns true if resolving to got satisfies the route
func (r route) accepts(got Digest) bool {
	if r.equivalent {
		return got.Equivalent(r.expect)
	}
	return got.Equal(r.expect)
}

// dirTree is a tree of baseline directories, where each directory's parent is
// the next directory searched by the platforms.
type dirTree struct {
	root  *dirNode
	nodes container.Map[string, *dirNode]
}

type dirNode struct {
	dir      string
	parent   *dirNode
	children []*dirNode // sorted by dir
	routes   []route    // routes that start at this node
	existing int        // candidate index of the current baseline, or noBaseline

	// memoized results of solve(), indexed by provided value + 1
	cost   []int
	choice []int
}

// buildTree builds a dirTree from the routes.
// Returns ErrInconsistentGraph if a directory has more than one parent, or if
// the routes do not share the same root.
func buildTree(routes []route) (*dirTree, error) {
	t := &dirTree{nodes: container.NewMap[string, *dirNode]()}
	node := func(dir string) *dirNode {
		return t.nodes.GetOrCreate(dir, func() *dirNode {
			return &dirNode{dir: dir, existing: noBaseline}
		})
	}

	for _, r := range routes {
		seen := map[string]bool{}
		for i, dir := range r.dirs {
			if seen[dir] {
				return nil, fmt.Errorf("%w: '%v' is searched twice by %v", ErrInconsistentGraph, dir, r.platform)
			}
			seen[dir] = true

			n := node(dir)
			if i == len(r.dirs)-1 {
				// Last directory searched. This must be the root.
				switch {
				case n.parent != nil:
					return nil, fmt.Errorf("%w: '%v' is the last directory searched by %v, but falls back to '%v' for another platform",
						ErrInconsistentGraph, dir, r.platform, n.parent.dir)
				case t.root == nil:
					t.root = n
				case t.root != n:
					return nil, fmt.Errorf("%w: multiple roots '%v' and '%v'", ErrInconsistentGraph, t.root.dir, dir)
				}
				continue
			}

			parent := node(r.dirs[i+1])
			switch {
			case n == t.root:
				return nil, fmt.Errorf("%w: root '%v' falls back to '%v' for %v", ErrInconsistentGraph, dir, parent.dir, r.platform)
			case n.parent == nil:
				n.parent = parent
				parent.children = append(parent.children, n)
			case n.parent != parent:
				return nil, fmt.Errorf("%w: '%v' falls back to both '%v' and '%v'", ErrInconsistentGraph, dir, n.parent.dir, parent.dir)
			}
		}
		if len(r.dirs) > 0 {
			start := t.nodes[r.dirs[0]]
			start.routes = append(start.routes, r)
		}
	}

	for _, n := range t.nodes {
		sort.Slice(n.children, func(i, j int) bool { return n.children[i].dir < n.children[j].dir })
	}
	return t, nil
}

// dirs returns all the directories of the tree, sorted
func (t *dirTree) dirs() []string { return t.nodes.Keys() }

// solve finds the placement of candidate digests that resolves every route to
// its expected digest, using the fewest baselines.
// Returns a map of directory to the index of the candidate placed in the
// directory, or noBaseline.
//
// When more than one placement uses the fewest baselines, a node prefers
// keeping its existing baseline, then holding no baseline, then the lowest
// candidate index.
func (t *dirTree) solve(candidates []Digest) (map[string]int, error) {
	for _, n := range t.nodes {
		n.cost = make([]int, len(candidates)+1)
		n.choice = make([]int, len(candidates)+1)
		for i := range n.cost {
			n.cost[i] = -1
		}
	}
	if t.root.solve(noBaseline, candidates) >= infinity {
		return nil, errUnsolvable
	}
	out := make(map[string]int, len(t.nodes))
	t.root.assign(noBaseline, out)
	return out, nil
}

// solve returns the fewest baselines required by the subtree of n, given the
// value provided by n's ancestors.
func (n *dirNode) solve(provided int, candidates []Digest) int {
	if cost := n.cost[provided+1]; cost >= 0 {
		return cost
	}

	best, choice := infinity, provided
	consider := func(value int) {
		if cost := n.costOf(value, provided, candidates); cost < best {
			best, choice = cost, value
		}
	}
	// Considered in order of preference, as only a lower cost replaces the
	// current best.
	if n.existing != noBaseline && n.existing != provided {
		consider(n.existing)
	}
	consider(provided)
	for value := range candidates {
		if value != provided && value != n.existing {
			consider(value)
		}
	}

	n.cost[provided+1], n.choice[provided+1] = best, choice
	return best
}

// costOf returns the fewest baselines required by the subtree of n when n
// resolves to value.
func (n *dirNode) costOf(value, provided int, candidates []Digest) int {
	cost := 0
	if value != provided {
		cost = 1 // A baseline is placed in n
	}
	for _, r := range n.routes {
		got := r.fallback
		if value != noBaseline {
			got = candidates[value]
		}
		if !r.accepts(got) {
			return infinity
		}
	}
	for _, child := range n.children {
		c := child.solve(value, candidates)
		if c >= infinity {
			return infinity
		}
		cost += c
	}
	return cost
}

// assign populates out with the choices made by solve()
func (n *dirNode) assign(provided int, out map[string]int) {
	value := n.choice[provided+1]
	if value == provided {
		out[n.dir] = noBaseline
	} else {
		out[n.dir] = value
	}
	for _, child := range n.children {
		child.assign(value, out)
	}
}
