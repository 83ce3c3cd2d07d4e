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

// Package remove implements the 'remove-versions' command, which removes OS
// versions from the expectations of tests.
package remove

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"dawn.googlesource.com/blinktools/tools/src/cmd/webtests/common"
	"dawn.googlesource.com/blinktools/tools/src/container"
	"dawn.googlesource.com/blinktools/tools/src/multicmd"
	"dawn.googlesource.com/blinktools/tools/src/webtests/expectations"
	"dawn.googlesource.com/blinktools/tools/src/webtests/port"
)

func init() {
	common.Register(&cmd{})
}

type cmd struct {
	flags struct {
		versions     string
		skipping     bool
		dryRun       bool
		expectations string
	}
	printer *common.Printer
}

func (cmd) Name() string {
	return "remove-versions"
}

func (cmd) Desc() string {
	return "removes OS versions from the expectations of tests"
}

func (c *cmd) RegisterFlags(ctx context.Context, cfg common.Config, fs *flag.FlagSet) ([]string, error) {
	fs.StringVar(&c.flags.versions, "versions", "", "comma separated list of OS version tags to remove")
	fs.BoolVar(&c.flags.skipping, "skipping", false, "also remove the OS versions of the platforms that skip each test")
	fs.BoolVar(&c.flags.dryRun, "dry-run", false, "print the changes as a diff without modifying any files")
	fs.StringVar(&c.flags.expectations, "expectations", "", "path to the expectations file to update. Defaults to the configured files")
	return []string{"<test>"}, nil
}

func (c *cmd) Run(ctx context.Context, cfg common.Config, tests []string) error {
	if c.printer == nil {
		c.printer = common.NewPrinter()
	}

	versions := []string{}
	for _, v := range strings.Split(c.flags.versions, ",") {
		if v = strings.TrimSpace(v); v != "" {
			versions = append(versions, v)
		}
	}
	if len(versions) == 0 && !c.flags.skipping {
		fmt.Fprintln(os.Stderr, "--versions or --skipping must be specified")
		return multicmd.ErrInvalidCLA
	}

	versionsFor := func(test string) []string { return versions }
	if c.flags.skipping {
		graph, err := cfg.Graph()
		if err != nil {
			return err
		}
		known := container.NewSet[string]()
		for _, vs := range cfg.OSVersions {
			for _, v := range vs {
				known.Add(strings.ToLower(v))
			}
		}
		versionsFor = func(test string) []string {
			return append(append([]string{}, versions...), skippedVersions(graph, test, known)...)
		}
	}

	paths := []string{}
	if c.flags.expectations != "" {
		paths = append(paths, c.flags.expectations)
	} else {
		for _, rel := range cfg.Expectations {
			paths = append(paths, cfg.Path(rel))
		}
	}

	for _, path := range paths {
		content, err := expectations.Load(path)
		if err != nil {
			return err
		}
		before := content.String()
		r := expectations.NewRemover(content, cfg.OSVersions)
		for _, test := range tests {
			r.RemoveOSVersions(test, versionsFor(test))
		}
		after := r.Update()
		if after == before {
			continue
		}
		if c.flags.dryRun {
			c.printer.Infof("%v\n", path)
			c.printer.Diff(before, after)
			continue
		}
		if err := r.UpdateFile(path); err != nil {
			return err
		}
		c.printer.Printf("updated %v\n", path)
	}
	return nil
}

// skippedVersions returns the OS version specifiers of the platforms that
// skip the test
func skippedVersions(g port.FallbackGraph, test string, known container.Set[string]) []string {
	out := container.NewSet[string]()
	for _, p := range g.Platforms() {
		if !g.Skips(p, test) {
			continue
		}
		for _, s := range p.Specifiers {
			if known.Contains(strings.ToLower(s)) {
				out.Add(s)
			}
		}
	}
	return out.List()
}
