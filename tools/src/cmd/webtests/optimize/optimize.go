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

// Package optimize implements the 'optimize-baselines' command, which removes
// redundant baselines.
package optimize

import (
	"context"
	"flag"
	"fmt"
	"os"

	"dawn.googlesource.com/blinktools/tools/src/cmd/webtests/common"
	"dawn.googlesource.com/blinktools/tools/src/multicmd"
	"dawn.googlesource.com/blinktools/tools/src/webtests/baseline"
)

func init() {
	common.Register(&cmd{})
}

type cmd struct {
	flags struct {
		all        bool
		suffixes   string
		dryRun     bool
		strategy   string
		workers    int
		checkClean bool
		verbose    bool
	}
	printer *common.Printer
}

func (cmd) Name() string {
	return "optimize-baselines"
}

func (cmd) Desc() string {
	return "removes baselines that are redundant with the baselines they fall back to"
}

func (c *cmd) RegisterFlags(ctx context.Context, cfg common.Config, fs *flag.FlagSet) ([]string, error) {
	fs.BoolVar(&c.flags.all, "all", false, "optimize the baselines of all the web tests")
	fs.StringVar(&c.flags.suffixes, "suffixes", "txt,png,wav", "comma separated list of baseline suffixes to optimize")
	fs.BoolVar(&c.flags.dryRun, "dry-run", false, "print the changes without modifying any files")
	fs.StringVar(&c.flags.strategy, "strategy", cfg.Strategy, "virtual test strategy: patch-virtual-subtree or transparent-virtual")
	fs.IntVar(&c.flags.workers, "workers", cfg.Workers, "number of tests to optimize in parallel. 0 uses the number of CPUs")
	fs.BoolVar(&c.flags.checkClean, "check-clean", false, "refuse to run if the web tests directory has uncommitted changes")
	fs.BoolVar(&c.flags.verbose, "verbose", false, "log each test optimized")
	return nil, nil
}

func (c *cmd) Run(ctx context.Context, cfg common.Config, patterns []string) error {
	if c.printer == nil {
		c.printer = common.NewPrinter()
	}

	if c.flags.all {
		if len(patterns) > 0 {
			fmt.Fprintln(os.Stderr, "--all cannot be used with test names")
			return multicmd.ErrInvalidCLA
		}
		patterns = []string{"**"}
	}
	if len(patterns) == 0 {
		fmt.Fprintln(os.Stderr, "no tests specified. Use --all to optimize all tests")
		return multicmd.ErrInvalidCLA
	}

	suffixes, err := baseline.ParseSuffixes(c.flags.suffixes)
	if err != nil {
		return err
	}
	strategy, err := baseline.ParseStrategy(c.flags.strategy)
	if err != nil {
		return err
	}

	if c.flags.checkClean && !c.flags.dryRun {
		if err := common.CheckClean(cfg.WebTestsDir); err != nil {
			return err
		}
	}

	graph, err := cfg.Graph()
	if err != nil {
		return err
	}
	tests, err := common.FindTests(os.DirFS(cfg.WebTestsDir), patterns)
	if err != nil {
		return err
	}
	if len(tests) == 0 {
		return fmt.Errorf("no tests found matching %v", patterns)
	}

	o := baseline.New(baseline.OSFS{Root: cfg.WebTestsDir}, graph, baseline.Options{
		Strategy: strategy,
		DryRun:   c.flags.dryRun,
		Verbose:  c.flags.verbose,
	})
	results, err := o.OptimizeAll(ctx, tests, suffixes, c.flags.workers)
	if err != nil {
		return err
	}

	deleted, written, failed := 0, 0, 0
	for _, r := range results {
		if r.Err != nil {
			c.printer.Warnf("%v\n", r.Err)
			failed++
			continue
		}
		c.printer.Changes(r.Changes)
		deleted += len(r.Deleted)
		written += len(r.Written)
	}

	verb := "optimized"
	if c.flags.dryRun {
		verb = "would optimize"
	}
	c.printer.Printf("%v %v tests: %v deleted, %v written\n", verb, len(tests), deleted, written)
	if failed > 0 {
		return fmt.Errorf("%v of %v baselines failed to optimize", failed, len(results))
	}
	return nil
}
