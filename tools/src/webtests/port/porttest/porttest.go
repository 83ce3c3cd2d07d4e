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

// Package porttest provides a small, fixed set of platforms for testing code
// that resolves baselines.
package porttest

import (
	"testing"

	"dawn.googlesource.com/blinktools/tools/src/webtests/expectations"
	"dawn.googlesource.com/blinktools/tools/src/webtests/port"
)

// BaselineDirs holds the baseline directories of the mock ports
var BaselineDirs = map[string][]string{
	"win-win11":      {"win"},
	"win-win10.20h2": {"win10", "win"},
	"linux-trusty":   {"linux", "win"},
	"mac-mac12":      {"mac"},
	"mac-mac11":      {"mac-mac11", "mac"},
	"mac-mac10.15":   {"mac-mac10.15", "mac-mac11", "mac"},
	"mac-mac10.14":   {"mac-mac10.14", "mac-mac10.15", "mac-mac11", "mac"},
	"mac-mac10.13":   {"mac-mac10.13", "mac-mac10.14", "mac-mac10.15", "mac-mac11", "mac"},
}

// Builders holds the mock builders
var Builders = map[string]port.Builder{
	"Fake Test Win10.20h2": {PortName: "win-win10.20h2", Specifiers: []string{"Win10.20h2", "Release"}},
	"Fake Test Win11":      {PortName: "win-win11", Specifiers: []string{"Win11", "Release"}},
	"Fake Test Linux":      {PortName: "linux-trusty", Specifiers: []string{"Trusty", "Release"}},
	"Fake Test Linux HighDPI": {
		PortName:   "linux-trusty",
		Specifiers: []string{"Trusty", "Release"},
		Steps: map[string]port.Step{
			"high_dpi_blink_web_tests (with patch)": {FlagSpecific: "highdpi"},
		},
	},
	"Fake Test Mac12.0":  {PortName: "mac-mac12", Specifiers: []string{"Mac12", "Release"}},
	"Fake Test Mac11.0":  {PortName: "mac-mac11", Specifiers: []string{"Mac11", "Release"}},
	"Fake Test Mac10.15": {PortName: "mac-mac10.15", Specifiers: []string{"Mac10.15", "Release"}},
	"Fake Test Mac10.14": {PortName: "mac-mac10.14", Specifiers: []string{"Mac10.14", "Release"}},
	"Fake Test Mac10.13": {PortName: "mac-mac10.13", Specifiers: []string{"Mac10.13", "Release"}},
}

// VirtualSuites holds the mock virtual suites
var VirtualSuites = []port.VirtualSuite{
	{
		Prefix:    "gpu",
		Platforms: []string{"Linux", "Mac", "Win"},
		Bases:     []string{"fast/canvas", "slow/canvas/mock-test.html"},
		Args:      []string{"--foo"},
		Expires:   "never",
	},
}

// FlagSpecific holds the mock flag-specific configurations
var FlagSpecific = []port.FlagSpecificConfig{
	{Name: "highdpi", Args: []string{"--force-device-scale-factor=1.5"}},
}

// NeverFixTests is the mock NeverFixTests file
const NeverFixTests = `# tags: [ Linux Mac Mac10.13 Mac10.14 Mac10.15 Mac11 Mac12 Win Win10.20h2 Win11 ]
# results: [ Skip Pass ]
[ Win10.20h2 ] virtual/gpu/fast/canvas/mock-test.html [ Skip ]
`

// Config returns the mock graph configuration
func Config(t testing.TB) port.Config {
	t.Helper()
	platforms, err := port.PlatformsFromBuilders(Builders, BaselineDirs)
	if err != nil {
		t.Fatalf("PlatformsFromBuilders() returned %v", err)
	}
	neverFix, err := expectations.Parse(NeverFixTests)
	if err != nil {
		t.Fatalf("Parse() returned %v", err)
	}
	return port.Config{
		Platforms:     platforms,
		VirtualSuites: VirtualSuites,
		FlagSpecific:  FlagSpecific,
		NeverFixTests: neverFix,
	}
}

// New returns a graph of the mock platforms
func New(t testing.TB) *port.Graph {
	t.Helper()
	g, err := port.New(Config(t))
	if err != nil {
		t.Fatalf("port.New() returned %v", err)
	}
	return g
}
