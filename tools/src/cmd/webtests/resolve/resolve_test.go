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

package resolve

import (
	"bytes"
	"context"
	"flag"
	"testing"

	"github.com/stretchr/testify/require"

	"dawn.googlesource.com/blinktools/tools/src/cmd/webtests/common"
	"dawn.googlesource.com/blinktools/tools/src/cmd/webtests/common/commontest"
	"dawn.googlesource.com/blinktools/tools/src/multicmd"
)

func run(t *testing.T, cfg *common.Config, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	c := &cmd{printer: common.NewPrinterFor(out, false)}
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	_, err := c.RegisterFlags(context.Background(), *cfg, fs)
	require.NoError(t, err)
	require.NoError(t, fs.Parse(args))
	err = c.Run(context.Background(), *cfg, fs.Args())
	return out.String(), err
}

func TestResolve(t *testing.T) {
	cfg := commontest.NewCheckout(t, map[string]string{
		"fast/canvas/x.html":                            "<html>",
		"fast/canvas/x-expected.txt":                    "generic",
		"platform/win/fast/canvas/x-expected.txt":       "win",
		"platform/mac-mac11/fast/canvas/x-expected.png": "png",
	})

	out, err := run(t, cfg, "fast/canvas/x.html")
	require.NoError(t, err)
	require.Contains(t, out, "fast/canvas/x.html (txt)\n")
	require.Regexp(t, `(?m)^  linux-trusty +platform/win/fast/canvas/x-expected\.txt +\S+$`, out)
	require.Regexp(t, `(?m)^  mac-mac11 +fast/canvas/x-expected\.txt +\S+$`, out)
	require.Regexp(t, `(?m)^  win-win11 +platform/win/fast/canvas/x-expected\.txt +\S+$`, out)

	out, err = run(t, cfg, "--suffix", "png", "fast/canvas/x.html")
	require.NoError(t, err)
	require.Contains(t, out, "fast/canvas/x.html (png)\n")
	require.Regexp(t, `(?m)^  mac-mac10\.13 +platform/mac-mac11/fast/canvas/x-expected\.png +\S+$`, out)
	require.Regexp(t, `(?m)^  mac-mac12 +- +<implicit>$`, out)
}

func TestResolveSkipped(t *testing.T) {
	cfg := commontest.NewCheckout(t, map[string]string{
		"fast/canvas/mock-test.html": "<html>",
	})
	out, err := run(t, cfg, "virtual/gpu/fast/canvas/mock-test.html")
	require.NoError(t, err)
	require.Contains(t, out, "win-win11")
	require.NotContains(t, out, "win-win10.20h2")
}

func TestResolveInvalidArgs(t *testing.T) {
	cfg := commontest.NewCheckout(t, nil)

	_, err := run(t, cfg)
	require.ErrorIs(t, err, multicmd.ErrInvalidCLA)

	_, err = run(t, cfg, "--suffix", "gif", "fast/x.html")
	require.Error(t, err)
}
