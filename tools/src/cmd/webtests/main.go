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

// webtests is a collection of tools for maintaining the baselines and
// expectations of a web tests checkout.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"dawn.googlesource.com/blinktools/tools/src/cmd/webtests/common"
	"dawn.googlesource.com/blinktools/tools/src/multicmd"
	"dawn.googlesource.com/blinktools/tools/src/utils"

	// Register sub-commands
	_ "dawn.googlesource.com/blinktools/tools/src/cmd/webtests/format"
	_ "dawn.googlesource.com/blinktools/tools/src/cmd/webtests/optimize"
	_ "dawn.googlesource.com/blinktools/tools/src/cmd/webtests/remove"
	_ "dawn.googlesource.com/blinktools/tools/src/cmd/webtests/resolve"
)

// configEnv is the environment variable holding the path to the TOML
// configuration file
const configEnv = "WEBTESTS_CONFIG"

func main() {
	ctx := context.Background()

	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	path := os.Getenv(configEnv)
	if path == "" {
		path = filepath.Join(utils.ThisDir(), "webtests.toml")
	}
	cfg, err := common.LoadConfig(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := multicmd.Run(ctx, *cfg, common.Commands()...); err != nil {
		if !errors.Is(err, multicmd.ErrInvalidCLA) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
