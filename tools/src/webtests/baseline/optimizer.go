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

// Package baseline reduces the set of baseline files of web tests to the
// fewest files that every platform resolves identically.
package baseline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"sort"
	"strings"

	"dawn.googlesource.com/blinktools/tools/src/container"
	"dawn.googlesource.com/blinktools/tools/src/webtests/port"
)

// ErrNotTransparent is returned when a reduction would change the baseline
// resolved by a platform. The baselines are left unchanged.
var ErrNotTransparent = errors.New("optimization would change the resolved baseline")

// Strategy controls how the baselines of virtual tests are reduced
type Strategy int

const (
	// PatchVirtualSubtree copies the non-virtual baselines into the virtual
	// directories that fall back directly to the generic virtual directory,
	// reduces the virtual directories, then removes the copies that are
	// redundant with the non-virtual baselines. Flag-specific platforms are
	// handled in a separate pass.
	// This may change the baseline resolved for a virtual test.
	PatchVirtualSubtree Strategy = iota
	// TransparentVirtual reduces the virtual directories of every platform,
	// including flag-specific platforms, falling back to the non-virtual
	// baselines. No platform's resolved baseline is changed, except that a
	// baseline with an extra digest may be replaced by another, or removed.
	TransparentVirtual
)

func (s Strategy) String() string {
	switch s {
	case PatchVirtualSubtree:
		return "patch-virtual-subtree"
	case TransparentVirtual:
		return "transparent-virtual"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy parses the strategy name
func ParseStrategy(s string) (Strategy, error) {
	for _, strategy := range []Strategy{PatchVirtualSubtree, TransparentVirtual} {
		if strategy.String() == s {
			return strategy, nil
		}
	}
	return 0, fmt.Errorf("unknown strategy '%v'", s)
}

// Options control the behavior of the Optimizer
type Options struct {
	Strategy Strategy
	// If true, the changes are calculated, but not applied
	DryRun bool
	// If true, each unit of work is logged
	Verbose bool
}

// Optimizer removes redundant baselines
type Optimizer struct {
	fs    FS
	graph port.FallbackGraph
	opts  Options
}

// New returns a new Optimizer
func New(fs FS, graph port.FallbackGraph, opts Options) *Optimizer {
	return &Optimizer{fs: fs, graph: graph, opts: opts}
}

// Changes describes the files changed by optimizing a single test's
// baselines. Paths are relative to the web tests root.
type Changes struct {
	Test    string
	Suffix  Suffix
	Deleted []string
	Written []string
}

// Empty returns true if no files were changed
func (c Changes) Empty() bool {
	return len(c.Deleted) == 0 && len(c.Written) == 0
}

// Optimize reduces the baselines of the test with the given suffix.
// Optimizing a non-virtual test also optimizes each of the virtual tests that
// run it.
//
// If the test's directories do not form a consistent fallback tree, then a
// warning is logged and the baselines are left unchanged.
func (o *Optimizer) Optimize(ctx context.Context, test string, suffix Suffix) (Changes, error) {
	changes := Changes{Test: test, Suffix: suffix}
	if err := ctx.Err(); err != nil {
		return changes, err
	}

	wrap := func(err error) error { return fmt.Errorf("%v (%v): %w", test, suffix, err) }

	tests := []string{test}
	if _, _, virtual := o.graph.VirtualBase(test); !virtual {
		tests = append(tests, o.graph.VirtualTests(test)...)
	}

	u, err := o.load(test, suffix, tests)
	if err != nil {
		return changes, wrap(err)
	}

	before := o.resolveAll(u, tests)

	if err := o.reduce(u, tests); err != nil {
		if errors.Is(err, ErrInconsistentGraph) {
			log.Printf("warning: %v", wrap(err))
			return changes, nil
		}
		return changes, wrap(err)
	}

	if err := o.verify(u, tests, before); err != nil {
		return changes, wrap(err)
	}

	changes.Deleted, changes.Written = u.diff()
	if o.opts.Verbose {
		log.Printf("%v (%v): %v deleted, %v written", test, suffix, len(changes.Deleted), len(changes.Written))
	}
	if o.opts.DryRun {
		return changes, nil
	}
	if err := o.apply(u, changes); err != nil {
		return changes, wrap(err)
	}
	return changes, nil
}

// load reads the baselines of all the directories searched for the tests
func (o *Optimizer) load(test string, suffix Suffix, tests []string) (*unit, error) {
	base := test
	if b, _, ok := o.graph.VirtualBase(test); ok {
		base = b
	}
	u := &unit{
		suffix:   suffix,
		name:     FileName(test, suffix),
		original: map[string][]byte{},
		files:    map[string][]byte{},
	}
	for _, ref := range referencePaths(base) {
		if o.fs.Exists(ref) {
			u.isReftest = true
			break
		}
	}

	dirs := container.NewSet[string]()
	for _, p := range o.graph.Platforms() {
		for _, t := range tests {
			for _, dir := range o.graph.SearchPath(p, t) {
				dirs.Add(dir)
			}
		}
	}
	for _, dir := range dirs.List() {
		content, err := o.fs.ReadFile(u.path(dir))
		switch {
		case err == nil:
			u.original[dir] = content
			u.files[dir] = content
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read '%v': %w", u.path(dir), err)
		}
	}
	return u, nil
}

// reduce reduces the baselines held by u, using the optimizer's strategy
func (o *Optimizer) reduce(u *unit, tests []string) error {
	for _, test := range tests {
		var err error
		_, _, virtual := o.graph.VirtualBase(test)
		switch {
		case o.opts.Strategy == TransparentVirtual:
			err = o.reduceTest(u, test, true)
		case virtual:
			err = o.reducePatchedVirtual(u, test)
		default:
			err = o.reduceTest(u, test, false)
		}
		if err != nil {
			return err
		}
	}
	if o.opts.Strategy == PatchVirtualSubtree {
		o.reduceFlagSpecific(u, tests)
	}
	return nil
}

// split returns the search path of the platform for the test, split into the
// virtual directories and the directories of the non-virtual base test.
// If test is not virtual, then all the directories are returned as base.
func (o *Optimizer) split(p port.Platform, test string) (virtual, base []string) {
	dirs := o.graph.SearchPath(p, test)
	b, _, ok := o.graph.VirtualBase(test)
	if !ok {
		return nil, dirs
	}
	base = o.graph.SearchPath(p, b)
	return dirs[:len(dirs)-len(base)], base
}

// reduceTest reduces the directories of the test, without changing the
// baseline resolved by any platform. For virtual tests only the virtual
// directories are reduced.
//
// If transparent is true, then flag-specific platforms are included, and a
// platform may resolve to any Equivalent digest.
func (o *Optimizer) reduceTest(u *unit, test string, transparent bool) error {
	routes := []route{}
	for _, p := range o.graph.Platforms() {
		if (p.FlagSpecific != "" && !transparent) || o.graph.Skips(p, test) {
			continue
		}
		virtual, base := o.split(p, test)
		if virtual == nil {
			routes = append(routes, route{
				platform:   p,
				dirs:       base,
				expect:     u.resolve(base),
				fallback:   Implicit,
				equivalent: transparent,
			})
			continue
		}
		routes = append(routes, route{
			platform:   p,
			dirs:       virtual,
			expect:     u.resolve(o.graph.SearchPath(p, test)),
			fallback:   u.resolve(base),
			equivalent: transparent,
		})
	}
	return u.reduce(routes)
}

// reducePatchedVirtual reduces the virtual directories of the test, ignoring
// flag-specific platforms.
//
// If the generic virtual directory has no baseline, then each directory that
// falls back directly to it is first patched with the baseline that its
// platform resolves for the non-virtual test. The virtual directories are
// then reduced in isolation, the patched directories that duplicate the
// non-virtual baseline are removed, and finally the generic virtual baseline
// is removed if every platform resolves an equal non-virtual baseline.
func (o *Optimizer) reducePatchedVirtual(u *unit, test string) error {
	root := dirOf(test)

	type child struct {
		dir  string
		base []string // non-virtual search path of the child's platform
	}
	children := []child{}
	seen := container.NewSet[string]()
	live := []port.Platform{}
	for _, p := range o.graph.Platforms() {
		if p.FlagSpecific != "" {
			continue
		}
		if !o.graph.Skips(p, test) {
			live = append(live, p)
		}
		// The platform's own virtual directory falls back directly to root?
		virtual, base := o.split(p, test)
		if len(virtual) == 2 && virtual[1] == root && !seen.Contains(virtual[0]) {
			seen.Add(virtual[0])
			children = append(children, child{virtual[0], base})
		}
	}
	sort.Slice(children, func(i, j int) bool { return children[i].dir < children[j].dir })

	patched := !u.has(root)
	if patched {
		for _, c := range children {
			if u.has(c.dir) {
				continue
			}
			if dir, ok := u.find(c.base); ok {
				u.files[c.dir] = u.files[dir]
			}
		}
	}

	routes := []route{}
	for _, p := range live {
		virtual, base := o.split(p, test)
		fallback := Implicit
		if u.has(root) {
			fallback = u.resolve(base)
		}
		expect := fallback
		if dir, ok := u.find(virtual); ok {
			expect = u.digest(dir)
		}
		routes = append(routes, route{platform: p, dirs: virtual, expect: expect, fallback: fallback})
	}
	if err := u.reduce(routes); err != nil {
		return err
	}

	if patched && !u.has(root) {
		for _, c := range children {
			if u.has(c.dir) && u.digest(c.dir).Equal(u.resolve(c.base)) {
				delete(u.files, c.dir)
			}
		}
	}

	if u.has(root) && len(live) > 0 {
		digest := u.digest(root)
		redundant := true
		for _, p := range live {
			_, base := o.split(p, test)
			if !u.resolve(base).Equal(digest) {
				redundant = false
				break
			}
		}
		if redundant {
			delete(u.files, root)
		}
	}
	return nil
}

// reduceFlagSpecific removes each flag-specific baseline that is equal to the
// baseline the platform would resolve without it.
func (o *Optimizer) reduceFlagSpecific(u *unit, tests []string) {
	for _, p := range o.graph.Platforms() {
		if p.FlagSpecific == "" {
			continue
		}
		for _, test := range tests {
			if o.graph.Skips(p, test) {
				continue
			}
			dirs := o.graph.SearchPath(p, test)
			for i, dir := range dirs {
				if !strings.HasPrefix(dir, "flag-specific/") || !u.has(dir) {
					continue
				}
				if u.digest(dir).Equal(u.resolve(dirs[i+1:])) {
					delete(u.files, dir)
				}
			}
		}
	}
}

// resolution is the digest a platform resolves for a test
type resolution struct {
	platform port.Platform
	test     string
	digest   Digest
}

// resolveAll returns the resolutions of every platform that runs the tests
func (o *Optimizer) resolveAll(u *unit, tests []string) []resolution {
	out := []resolution{}
	for _, test := range tests {
		for _, p := range o.graph.Platforms() {
			if !o.graph.Skips(p, test) {
				out = append(out, resolution{p, test, u.resolve(o.graph.SearchPath(p, test))})
			}
		}
	}
	return out
}

// verify checks that the reduced baselines resolve as they did before.
// PatchVirtualSubtree is only verified for non-virtual tests.
// TransparentVirtual accepts any Equivalent digest.
func (o *Optimizer) verify(u *unit, tests []string, before []resolution) error {
	transparent := o.opts.Strategy == TransparentVirtual
	match := Digest.Equal
	if transparent {
		match = Digest.Equivalent
	}
	for _, r := range before {
		if _, _, virtual := o.graph.VirtualBase(r.test); virtual && !transparent {
			continue
		}
		if after := u.resolve(o.graph.SearchPath(r.platform, r.test)); !match(after, r.digest) {
			return fmt.Errorf("%w: %v would resolve '%v' to %v instead of %v",
				ErrNotTransparent, r.platform, r.test, after, r.digest)
		}
	}
	return nil
}

// apply writes and deletes the changed files
func (o *Optimizer) apply(u *unit, changes Changes) error {
	for _, p := range changes.Written {
		if err := o.fs.WriteFile(p, u.files[dirOf(p)]); err != nil {
			return fmt.Errorf("failed to write '%v': %w", p, err)
		}
	}
	for _, p := range changes.Deleted {
		if err := o.fs.Remove(p); err != nil {
			return fmt.Errorf("failed to delete '%v': %w", p, err)
		}
	}
	return nil
}
