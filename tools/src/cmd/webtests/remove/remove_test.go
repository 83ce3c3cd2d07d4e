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

package remove

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

const testExpectations = `# tags: [ Linux Trusty Mac Mac10.13 Mac10.14 Mac10.15 Mac11 Mac12 Win Win10.20h2 Win11 ]
# results: [ Failure Skip Pass ]

# Canvas is flaky on old macs
crbug.com/1 [ Mac ] fast/x.html [ Failure ]

crbug.com/2 [ Win11 ] virtual/gpu/fast/canvas/mock-test.html [ Failure ]
crbug.com/3 [ Win10.20h2 ] virtual/gpu/fast/canvas/mock-test.html [ Failure ]
`

func run(t *testing.T, cfg *common.Config, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	c := &cmd{printer: common.NewPrinterFor(out, false)}
	fs := flag.NewFlagSet("remove-versions", flag.ContinueOnError)
	_, err := c.RegisterFlags(context.Background(), *cfg, fs)
	require.NoError(t, err)
	require.NoError(t, fs.Parse(args))
	err = c.Run(context.Background(), *cfg, fs.Args())
	return out.String(), err
}

func TestRemoveVersions(t *testing.T) {
	cfg := commontest.NewCheckout(t, map[string]string{"TestExpectations": testExpectations})
	_, err := run(t, cfg, "--versions", "mac10.13", "fast/x.html")
	require.NoError(t, err)

	got, _ := commontest.ReadFile(t, cfg, "TestExpectations")
	require.Equal(t, `# tags: [ Linux Trusty Mac Mac10.13 Mac10.14 Mac10.15 Mac11 Mac12 Win Win10.20h2 Win11 ]
# results: [ Failure Skip Pass ]

# Canvas is flaky on old macs
crbug.com/1 [ Mac10.14 ] fast/x.html [ Failure ]
crbug.com/1 [ Mac10.15 ] fast/x.html [ Failure ]
crbug.com/1 [ Mac11 ] fast/x.html [ Failure ]
crbug.com/1 [ Mac12 ] fast/x.html [ Failure ]

crbug.com/2 [ Win11 ] virtual/gpu/fast/canvas/mock-test.html [ Failure ]
crbug.com/3 [ Win10.20h2 ] virtual/gpu/fast/canvas/mock-test.html [ Failure ]
`, got)
}

func TestRemoveSkipping(t *testing.T) {
	cfg := commontest.NewCheckout(t, map[string]string{"TestExpectations": testExpectations})
	_, err := run(t, cfg, "--skipping", "virtual/gpu/fast/canvas/mock-test.html")
	require.NoError(t, err)

	got, _ := commontest.ReadFile(t, cfg, "TestExpectations")
	require.Equal(t, `# tags: [ Linux Trusty Mac Mac10.13 Mac10.14 Mac10.15 Mac11 Mac12 Win Win10.20h2 Win11 ]
# results: [ Failure Skip Pass ]

# Canvas is flaky on old macs
crbug.com/1 [ Mac ] fast/x.html [ Failure ]

crbug.com/2 [ Win11 ] virtual/gpu/fast/canvas/mock-test.html [ Failure ]
`, got)
}

func TestRemoveDryRun(t *testing.T) {
	cfg := commontest.NewCheckout(t, map[string]string{"TestExpectations": testExpectations})
	out, err := run(t, cfg, "--dry-run", "--versions", "Win10.20h2", "virtual/gpu/fast/canvas/mock-test.html")
	require.NoError(t, err)
	require.Equal(t, cfg.Path("TestExpectations")+"\n"+
		"-crbug.com/3 [ Win10.20h2 ] virtual/gpu/fast/canvas/mock-test.html [ Failure ]\n", out)

	got, _ := commontest.ReadFile(t, cfg, "TestExpectations")
	require.Equal(t, testExpectations, got)
}

func TestRemoveNoChange(t *testing.T) {
	cfg := commontest.NewCheckout(t, map[string]string{"TestExpectations": testExpectations})
	out, err := run(t, cfg, "--versions", "Mac10.13", "fast/unknown.html")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestRemoveInvalidArgs(t *testing.T) {
	cfg := commontest.NewCheckout(t, map[string]string{"TestExpectations": testExpectations})
	_, err := run(t, cfg, "fast/x.html")
	require.ErrorIs(t, err, multicmd.ErrInvalidCLA)

	cfg.Expectations = []string{"Missing"}
	_, err = run(t, cfg, "--versions", "Mac10.13", "fast/x.html")
	require.Error(t, err)
}
