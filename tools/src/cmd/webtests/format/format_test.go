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

package format

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"dawn.googlesource.com/blinktools/tools/src/cmd/webtests/common"
)

func TestFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "TestExpectations")
	require.NoError(t, os.WriteFile(path, []byte(`# tags: [ Mac Win ]
# results: [ Failure Pass ]

crbug.com/1   [  Mac ]  fast/x.html [ Failure ]   # flaky
fast/y.html [ Failure   Pass ]
`), 0666))

	run := func(args ...string) error {
		c := &cmd{}
		fs := flag.NewFlagSet("format", flag.ContinueOnError)
		_, err := c.RegisterFlags(context.Background(), common.Config{}, fs)
		require.NoError(t, err)
		require.NoError(t, fs.Parse(append(args, path)))
		return c.Run(context.Background(), common.Config{}, fs.Args())
	}

	require.Error(t, run("--check"))
	require.NoError(t, run())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, `# tags: [ Mac Win ]
# results: [ Failure Pass ]

crbug.com/1 [ Mac ] fast/x.html [ Failure ] # flaky
fast/y.html [ Failure Pass ]
`, string(got))

	require.NoError(t, run("--check"))
}
