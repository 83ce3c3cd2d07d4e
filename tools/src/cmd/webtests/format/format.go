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

// Package format implements the 'format' command, which rewrites an
// expectations file in its canonical form.
package format

import (
	"context"
	"flag"
	"fmt"

	"dawn.googlesource.com/blinktools/tools/src/cmd/webtests/common"
	"dawn.googlesource.com/blinktools/tools/src/webtests/expectations"
)

func init() {
	common.Register(&cmd{})
}

type cmd struct {
	flags struct {
		check bool
	}
}

func (cmd) Name() string {
	return "format"
}

func (cmd) Desc() string {
	return "formats a TestExpectations file"
}

func (c *cmd) RegisterFlags(ctx context.Context, cfg common.Config, fs *flag.FlagSet) ([]string, error) {
	fs.BoolVar(&c.flags.check, "check", false, "return an error if the file is not formatted, instead of formatting it")
	return []string{"<file>"}, nil
}

func (c *cmd) Run(ctx context.Context, cfg common.Config, args []string) error {
	for _, path := range args {
		ex, err := expectations.Load(path)
		if err != nil {
			return err
		}
		formatted := ex.Format()
		if c.flags.check {
			if formatted.String() != ex.String() {
				return fmt.Errorf("%v is not formatted", path)
			}
			continue
		}
		if err := formatted.Save(path); err != nil {
			return err
		}
	}
	return nil
}
