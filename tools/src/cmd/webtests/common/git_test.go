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

package common_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/src-d/go-git.v4"
	"gopkg.in/src-d/go-git.v4/plumbing/object"

	"dawn.googlesource.com/blinktools/tools/src/cmd/webtests/common"
)

func TestCheckClean(t *testing.T) {
	root := t.TempDir()
	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	webTests := filepath.Join(root, "web_tests")
	other := filepath.Join(root, "other")
	require.NoError(t, os.MkdirAll(webTests, 0777))
	require.NoError(t, os.MkdirAll(other, 0777))

	write := func(path, content string) {
		require.NoError(t, os.WriteFile(path, []byte(content), 0666))
	}
	write(filepath.Join(webTests, "x-expected.txt"), "1")
	write(filepath.Join(other, "y.txt"), "2")

	err = common.CheckClean(webTests)
	require.Error(t, err)
	require.Contains(t, err.Error(), "web_tests/x-expected.txt")

	_, err = wt.Add("web_tests/x-expected.txt")
	require.NoError(t, err)
	require.Error(t, common.CheckClean(webTests))

	_, err = wt.Commit("add baseline", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	// Untracked files outside of the directory are ignored
	require.NoError(t, common.CheckClean(webTests))
	require.Error(t, common.CheckClean(root))

	write(filepath.Join(webTests, "x-expected.txt"), "changed")
	require.Error(t, common.CheckClean(webTests))
}

func TestCheckCleanNotARepo(t *testing.T) {
	require.Error(t, common.CheckClean(t.TempDir()))
}
