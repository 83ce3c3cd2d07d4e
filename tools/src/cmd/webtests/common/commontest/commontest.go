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

// Package commontest builds fake web tests checkouts for testing the webtests
// commands.
package commontest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"dawn.googlesource.com/blinktools/tools/src/cmd/webtests/common"
	"dawn.googlesource.com/blinktools/tools/src/webtests/baseline"
	"dawn.googlesource.com/blinktools/tools/src/webtests/port/porttest"
)

// OSVersions are the OS version tags of the fake platforms
var OSVersions = map[string][]string{
	"Linux": {"Trusty"},
	"Mac":   {"Mac10.13", "Mac10.14", "Mac10.15", "Mac11", "Mac12"},
	"Win":   {"Win10.20h2", "Win11"},
}

// NewCheckout writes the fake platform data files and the given files to a
// temporary web tests directory, and returns the configuration for it.
func NewCheckout(t *testing.T, files map[string]string) *common.Config {
	t.Helper()
	dir := t.TempDir()
	write := func(name string, content []byte) {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, content, 0666); err != nil {
			t.Fatal(err)
		}
	}
	writeJSON := func(name string, v any) {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			t.Fatal(err)
		}
		write(name, data)
	}

	writeJSON("VirtualTestSuites", porttest.VirtualSuites)
	writeJSON("FlagSpecificConfig", porttest.FlagSpecific)
	writeJSON("builders.json", porttest.Builders)
	write("NeverFixTests", []byte(porttest.NeverFixTests))
	for name, content := range files {
		write(name, []byte(content))
	}

	return &common.Config{
		WebTestsDir:   dir,
		VirtualSuites: "VirtualTestSuites",
		FlagSpecific:  "FlagSpecificConfig",
		NeverFixTests: "NeverFixTests",
		Builders:      "builders.json",
		Expectations:  []string{"TestExpectations"},
		Strategy:      baseline.PatchVirtualSubtree.String(),
		Workers:       2,
		BaselineDirs:  porttest.BaselineDirs,
		OSVersions:    OSVersions,
	}
}

// ReadFile returns the content of the file in the checkout, or an empty string
// and false if the file does not exist.
func ReadFile(t *testing.T, cfg *common.Config, name string) (string, bool) {
	t.Helper()
	data, err := os.ReadFile(cfg.Path(name))
	if os.IsNotExist(err) {
		return "", false
	}
	if err != nil {
		t.Fatal(err)
	}
	return string(data), true
}
