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

// Package port describes the platforms that run web tests, and the order in
// which each platform searches directories for a test's baselines.
package port

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"dawn.googlesource.com/blinktools/tools/src/container"
	"dawn.googlesource.com/blinktools/tools/src/webtests/expectations"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the default number of search paths held by a Graph
const DefaultCacheSize = 4096

// Platform is a single configuration that runs web tests
type Platform struct {
	// Name of the port, for example 'mac-mac11'
	Name string
	// Baseline directories under 'platform/', most specific first.
	// For example: [ 'mac-mac11', 'mac' ]
	BaselineDirs []string
	// Expectation tags that apply to this platform, for example 'Mac11'.
	Specifiers []string
	// Name of the flag-specific configuration, or empty
	FlagSpecific string
}

// ID returns a string that uniquely identifies the platform
func (p Platform) ID() string {
	if p.FlagSpecific != "" {
		return p.Name + ":" + p.FlagSpecific
	}
	return p.Name
}

func (p Platform) String() string { return p.ID() }

// OS returns the operating system family of the platform, derived from the
// port name. For example 'mac-mac11' returns 'mac'.
func (p Platform) OS() string {
	if i := strings.Index(p.Name, "-"); i > 0 {
		return p.Name[:i]
	}
	return p.Name
}

// FallbackGraph is the interface to the platform configurations used to
// resolve baselines.
type FallbackGraph interface {
	// Platforms returns all the platforms, sorted by ID.
	Platforms() []Platform
	// SearchPath returns the directories searched by the platform for the
	// baselines of test, most specific first. Directories are relative to the
	// web tests root.
	SearchPath(p Platform, test string) []string
	// VirtualBase returns the non-virtual test that the virtual test runs,
	// and the suite it belongs to. Returns false if test is not a virtual
	// test.
	VirtualBase(test string) (base string, suite *VirtualSuite, ok bool)
	// VirtualTests returns all the virtual tests that run the given
	// non-virtual test, sorted.
	VirtualTests(test string) []string
	// Skips returns true if the platform never runs the test.
	Skips(p Platform, test string) bool
}

// Config holds the configuration used to build a Graph
type Config struct {
	Platforms     []Platform
	VirtualSuites []VirtualSuite
	// If non-nil, every flag-specific platform must name one of these.
	FlagSpecific []FlagSpecificConfig
	// Optional expectations listing the tests that are never run
	NeverFixTests *expectations.Content
	// Number of search paths to cache. Defaults to DefaultCacheSize.
	CacheSize int
}

// Graph implements FallbackGraph
type Graph struct {
	platforms []Platform
	suites    container.Map[string, *VirtualSuite]
	skips     []expectations.Expectation
	paths     *lru.Cache[string, []string]
}

var _ FallbackGraph = &Graph{}

// New returns a new Graph built from the config
func New(cfg Config) (*Graph, error) {
	size := cfg.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, []string](size)
	if err != nil {
		return nil, err
	}

	g := &Graph{
		suites: container.NewMap[string, *VirtualSuite](),
		paths:  cache,
	}

	var flags container.Set[string]
	if cfg.FlagSpecific != nil {
		flags = container.NewSet[string]()
		for _, f := range cfg.FlagSpecific {
			flags.Add(f.Name)
		}
	}

	ids := container.NewSet[string]()
	for _, p := range cfg.Platforms {
		if ids.Contains(p.ID()) {
			return nil, fmt.Errorf("duplicate platform '%v'", p.ID())
		}
		if len(p.BaselineDirs) == 0 {
			return nil, fmt.Errorf("platform '%v' has no baseline directories", p.ID())
		}
		if p.FlagSpecific != "" && flags != nil && !flags.Contains(p.FlagSpecific) {
			return nil, fmt.Errorf("platform '%v' uses undeclared flag-specific config '%v'", p.ID(), p.FlagSpecific)
		}
		ids.Add(p.ID())
		g.platforms = append(g.platforms, p)
	}
	sort.Slice(g.platforms, func(i, j int) bool { return g.platforms[i].ID() < g.platforms[j].ID() })

	for i := range cfg.VirtualSuites {
		suite := cfg.VirtualSuites[i]
		if suite.Prefix == "" {
			return nil, fmt.Errorf("virtual suite %v has no prefix", i)
		}
		if g.suites.Contains(suite.Prefix) {
			return nil, fmt.Errorf("duplicate virtual suite '%v'", suite.Prefix)
		}
		g.suites.Add(suite.Prefix, &suite)
	}

	if cfg.NeverFixTests != nil {
		for _, ex := range cfg.NeverFixTests.Expectations() {
			if ex.HasResult("Skip") {
				g.skips = append(g.skips, ex)
			}
		}
	}

	return g, nil
}

// Platforms returns all the platforms, sorted by ID
func (g *Graph) Platforms() []Platform {
	return append([]Platform(nil), g.platforms...)
}

// SearchPath returns the directories searched by the platform for the
// baselines of test, most specific first.
//
// For a test in the directory 'd' the search path is:
//
//	flag-specific/<flag>/d   (flag-specific platforms only)
//	platform/<dir>/d         (for each of the platform's baseline dirs)
//	d
//
// Virtual tests search the virtual directories first, followed by the search
// path of the non-virtual base test.
func (g *Graph) SearchPath(p Platform, test string) []string {
	key := p.ID() + "\x00" + test
	if cached, ok := g.paths.Get(key); ok {
		return append([]string(nil), cached...)
	}
	dirs := directories(p, testDir(test))
	if base, _, ok := g.VirtualBase(test); ok {
		dirs = append(dirs, g.SearchPath(p, base)...)
	}
	g.paths.Add(key, dirs)
	return append([]string(nil), dirs...)
}

func directories(p Platform, dir string) []string {
	out := make([]string, 0, len(p.BaselineDirs)+2)
	if p.FlagSpecific != "" {
		out = append(out, path.Join("flag-specific", p.FlagSpecific, dir))
	}
	for _, b := range p.BaselineDirs {
		out = append(out, path.Join("platform", b, dir))
	}
	return append(out, dir)
}

// testDir returns the directory of the test, or an empty string if the test
// is at the root.
func testDir(test string) string {
	if dir := path.Dir(test); dir != "." {
		return dir
	}
	return ""
}

// VirtualBase returns the non-virtual test that the virtual test runs.
func (g *Graph) VirtualBase(test string) (string, *VirtualSuite, bool) {
	rest, ok := strings.CutPrefix(test, "virtual/")
	if !ok {
		return "", nil, false
	}
	prefix, base, ok := strings.Cut(rest, "/")
	if !ok {
		return "", nil, false
	}
	suite, ok := g.suites[prefix]
	if !ok || !suite.Covers(base) {
		return "", nil, false
	}
	return base, suite, true
}

// VirtualTests returns all the virtual tests that run the non-virtual test
func (g *Graph) VirtualTests(test string) []string {
	out := []string{}
	if _, _, ok := g.VirtualBase(test); ok {
		return out
	}
	for _, prefix := range g.suites.Keys() {
		if g.suites[prefix].Covers(test) {
			out = append(out, "virtual/"+prefix+"/"+test)
		}
	}
	return out
}

// Skips returns true if the platform never runs the test, either because the
// test belongs to a virtual suite not run by the platform, or because a
// 'Skip' expectation applies to the platform.
func (g *Graph) Skips(p Platform, test string) bool {
	if _, suite, ok := g.VirtualBase(test); ok && !suite.RunsOn(p) {
		return true
	}
	for _, ex := range g.skips {
		if matchesTest(ex.Test, test) && appliesTo(ex, p) {
			return true
		}
	}
	return false
}

// matchesTest returns true if the expectation test pattern covers test.
// Patterns ending in '/' or '*' match by prefix.
func matchesTest(pattern, test string) bool {
	switch {
	case strings.HasSuffix(pattern, "*"):
		return strings.HasPrefix(test, strings.TrimSuffix(pattern, "*"))
	case strings.HasSuffix(pattern, "/"):
		return strings.HasPrefix(test, pattern)
	default:
		return pattern == test
	}
}

// appliesTo returns true if all of the expectation's tags are specifiers of
// the platform.
func appliesTo(ex expectations.Expectation, p Platform) bool {
	for _, tag := range ex.Tags {
		found := false
		for _, s := range p.Specifiers {
			if strings.EqualFold(tag, s) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
