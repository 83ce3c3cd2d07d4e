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

// Package resolve implements the 'resolve' command, which prints the baseline
// each platform uses for a test.
package resolve

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"dawn.googlesource.com/blinktools/tools/src/cmd/webtests/common"
	"dawn.googlesource.com/blinktools/tools/src/multicmd"
	"dawn.googlesource.com/blinktools/tools/src/webtests/baseline"
)

func init() {
	common.Register(&cmd{})
}

type cmd struct {
	flags struct {
		suffix string
	}
	printer *common.Printer
}

func (cmd) Name() string {
	return "resolve"
}

func (cmd) Desc() string {
	return "prints the baseline used by each platform for the given tests"
}

func (c *cmd) RegisterFlags(ctx context.Context, cfg common.Config, fs *flag.FlagSet) ([]string, error) {
	fs.StringVar(&c.flags.suffix, "suffix", "txt", "baseline suffix: txt, png or wav")
	return []string{"<test>"}, nil
}

func (c *cmd) Run(ctx context.Context, cfg common.Config, tests []string) error {
	if c.printer == nil {
		c.printer = common.NewPrinter()
	}
	if len(tests) == 0 {
		fmt.Fprintln(os.Stderr, "no tests specified")
		return multicmd.ErrInvalidCLA
	}

	suffix, err := baseline.ParseSuffix(c.flags.suffix)
	if err != nil {
		return err
	}
	graph, err := cfg.Graph()
	if err != nil {
		return err
	}
	o := baseline.New(baseline.OSFS{Root: cfg.WebTestsDir}, graph, baseline.Options{})

	for _, test := range tests {
		resolutions, err := o.Resolve(test, suffix)
		if err != nil {
			return err
		}
		c.printer.Infof("%v (%v)\n", test, suffix)
		buf := &bytes.Buffer{}
		tw := tabwriter.NewWriter(buf, 0, 8, 2, ' ', 0)
		for _, r := range resolutions {
			path := r.Path
			if path == "" {
				path = "-"
			}
			fmt.Fprintf(tw, "  %v\t%v\t%v\n", r.Platform, path, r.Digest)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		c.printer.Printf("%s", buf.String())
	}
	return nil
}
