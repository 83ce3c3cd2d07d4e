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

package port

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"dawn.googlesource.com/blinktools/tools/src/container"
	"github.com/tidwall/jsonc"
)

// VirtualSuite is a single entry of the VirtualTestSuites file
type VirtualSuite struct {
	Prefix    string   `json:"prefix"`
	Platforms []string `json:"platforms"`
	Bases     []string `json:"bases"`
	Args      []string `json:"args"`
	Expires   string   `json:"expires"`
}

// Covers returns true if the suite runs the non-virtual test.
// A base may be a directory or a single test.
func (s VirtualSuite) Covers(test string) bool {
	for _, base := range s.Bases {
		if test == base || strings.HasPrefix(test, strings.TrimSuffix(base, "/")+"/") {
			return true
		}
	}
	return false
}

// RunsOn returns true if the suite runs on the platform. A suite with no
// platforms runs everywhere.
func (s VirtualSuite) RunsOn(p Platform) bool {
	if len(s.Platforms) == 0 {
		return true
	}
	for _, name := range s.Platforms {
		if strings.EqualFold(name, p.OS()) {
			return true
		}
	}
	return false
}

// FlagSpecificConfig is a single entry of the FlagSpecificConfig file
type FlagSpecificConfig struct {
	Name string   `json:"name"`
	Args []string `json:"args"`
}

// Builder describes a single builder of the builders file
type Builder struct {
	PortName   string          `json:"port_name"`
	Specifiers []string        `json:"specifiers"`
	Steps      map[string]Step `json:"steps"`
}

// Step is a single test step of a Builder
type Step struct {
	FlagSpecific string `json:"flag_specific"`
}

// LoadVirtualSuites loads the VirtualTestSuites file at path
func LoadVirtualSuites(path string) ([]VirtualSuite, error) {
	out := []VirtualSuite{}
	if err := loadJSON(path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadFlagSpecific loads the FlagSpecificConfig file at path
func LoadFlagSpecific(path string) ([]FlagSpecificConfig, error) {
	out := []FlagSpecificConfig{}
	if err := loadJSON(path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadBuilders loads the builders file at path
func LoadBuilders(path string) (map[string]Builder, error) {
	out := map[string]Builder{}
	if err := loadJSON(path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// loadJSON parses the JSON file at path into out. Comments and trailing
// commas are permitted.
func loadJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), out); err != nil {
		return fmt.Errorf("failed to parse '%v': %w", path, err)
	}
	return nil
}

// PlatformsFromBuilders returns the platforms tested by the builders, sorted
// by ID. baselineDirs maps each port name to its baseline directories, most
// specific first.
func PlatformsFromBuilders(builders map[string]Builder, baselineDirs map[string][]string) ([]Platform, error) {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)

	seen := container.NewSet[string]()
	out := []Platform{}
	add := func(p Platform) {
		if !seen.Contains(p.ID()) {
			seen.Add(p.ID())
			out = append(out, p)
		}
	}

	for _, name := range names {
		b := builders[name]
		dirs, ok := baselineDirs[b.PortName]
		if !ok {
			return nil, fmt.Errorf("builder '%v' uses unknown port '%v'", name, b.PortName)
		}
		platform := Platform{
			Name:         b.PortName,
			BaselineDirs: append([]string(nil), dirs...),
			Specifiers:   append([]string(nil), b.Specifiers...),
		}
		if len(b.Steps) == 0 {
			add(platform)
			continue
		}
		steps := make([]string, 0, len(b.Steps))
		for step := range b.Steps {
			steps = append(steps, step)
		}
		sort.Strings(steps)
		for _, step := range steps {
			p := platform
			p.FlagSpecific = b.Steps[step].FlagSpecific
			add(p)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}
