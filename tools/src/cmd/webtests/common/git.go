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
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/src-d/go-git.v4"
)

// CheckClean returns an error if the git repository holding dir has
// uncommitted changes to files under dir.
func CheckClean(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return fmt.Errorf("failed to open git repository at '%v': %w", dir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open git worktree at '%v': %w", dir, err)
	}
	status, err := wt.Status()
	if err != nil {
		return fmt.Errorf("failed to get git status of '%v': %w", dir, err)
	}

	rel, err := filepath.Rel(wt.Filesystem.Root(), abs)
	if err != nil {
		return err
	}
	prefix := ""
	if rel = filepath.ToSlash(rel); rel != "." {
		prefix = rel + "/"
	}

	dirty := []string{}
	for path, s := range status {
		if s.Worktree == git.Unmodified && s.Staging == git.Unmodified {
			continue
		}
		if strings.HasPrefix(path, prefix) {
			dirty = append(dirty, path)
		}
	}
	if len(dirty) == 0 {
		return nil
	}
	sort.Strings(dirty)
	return fmt.Errorf("'%v' has uncommitted changes:\n  %v", dir, strings.Join(dirty, "\n  "))
}
