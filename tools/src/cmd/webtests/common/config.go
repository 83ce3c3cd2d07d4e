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
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"dawn.googlesource.com/blinktools/tools/src/utils"
	"dawn.googlesource.com/blinktools/tools/src/webtests/baseline"
	"dawn.googlesource.com/blinktools/tools/src/webtests/expectations"
	"dawn.googlesource.com/blinktools/tools/src/webtests/port"
)

// DirEnv is the environment variable that overrides the configuration's
// web_tests_dir
const DirEnv = "WEBTESTS_DIR"

// Config is the webtests tool configuration, loaded from a TOML file
type Config struct {
	// Path to the web tests root directory. Relative paths are relative to the
	// directory holding the configuration file.
	WebTestsDir string `toml:"web_tests_dir"`
	// The following paths are relative to WebTestsDir
	VirtualSuites string   `toml:"virtual_suites"`
	FlagSpecific  string   `toml:"flag_specific"`
	NeverFixTests string   `toml:"never_fix_tests"`
	Builders      string   `toml:"builders"`
	Expectations  []string `toml:"expectations"`
	// Name of the baseline.Strategy used for virtual tests
	Strategy string `toml:"strategy"`
	// Number of tests optimized in parallel. 0 uses the number of CPUs.
	Workers int `toml:"workers"`
	// Number of search paths memoized by the fallback graph
	CacheSize int `toml:"cache_size"`
	// Port name to the platform baseline directories, most specific first
	BaselineDirs map[string][]string `toml:"baseline_dirs"`
	// OS family tag to the version tags of the family, as used by the
	// expectation files
	OSVersions map[string][]string `toml:"os_versions"`
}

// LoadConfig loads the TOML configuration file at path. If set, the
// WEBTESTS_DIR environment variable replaces web_tests_dir.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		VirtualSuites: "VirtualTestSuites",
		FlagSpecific:  "FlagSpecificConfig",
		NeverFixTests: "NeverFixTests",
		Expectations:  []string{"TestExpectations"},
		Strategy:      baseline.PatchVirtualSubtree.String(),
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config '%v': %w", path, err)
	}
	if dir := os.Getenv(DirEnv); dir != "" {
		cfg.WebTestsDir = dir
	}
	if cfg.WebTestsDir == "" {
		return nil, fmt.Errorf("%v: web_tests_dir is not set", path)
	}
	cfg.WebTestsDir = utils.ExpandHome(cfg.WebTestsDir)
	if !filepath.IsAbs(cfg.WebTestsDir) {
		cfg.WebTestsDir = filepath.Join(filepath.Dir(path), cfg.WebTestsDir)
	}
	if _, err := cfg.BaselineStrategy(); err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("%v: workers must not be negative", path)
	}
	return cfg, nil
}

// Path returns the absolute path of the file relative to the web tests root
func (c Config) Path(rel string) string {
	return filepath.Join(c.WebTestsDir, filepath.FromSlash(rel))
}

// BaselineStrategy returns the parsed Strategy
func (c Config) BaselineStrategy() (baseline.Strategy, error) {
	return baseline.ParseStrategy(c.Strategy)
}

// Graph loads the data files and returns the fallback graph of the platforms
func (c Config) Graph() (*port.Graph, error) {
	if c.Builders == "" {
		return nil, fmt.Errorf("builders file is not set")
	}
	builders, err := port.LoadBuilders(c.Path(c.Builders))
	if err != nil {
		return nil, err
	}
	platforms, err := port.PlatformsFromBuilders(builders, c.BaselineDirs)
	if err != nil {
		return nil, err
	}

	cfg := port.Config{Platforms: platforms, CacheSize: c.CacheSize}
	if c.VirtualSuites != "" {
		if cfg.VirtualSuites, err = port.LoadVirtualSuites(c.Path(c.VirtualSuites)); err != nil {
			return nil, err
		}
	}
	if c.FlagSpecific != "" {
		if cfg.FlagSpecific, err = port.LoadFlagSpecific(c.Path(c.FlagSpecific)); err != nil {
			return nil, err
		}
	}
	if c.NeverFixTests != "" {
		if cfg.NeverFixTests, err = expectations.Load(c.Path(c.NeverFixTests)); err != nil {
			return nil, err
		}
	}
	return port.New(cfg)
}
