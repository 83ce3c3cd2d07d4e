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

package baseline

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"golang.org/x/sync/errgroup"

	"dawn.googlesource.com/blinktools/tools/src/container"
)

// Result is the outcome of optimizing a single test and suffix
type Result struct {
	Changes
	// Err is the error returned by Optimize, or nil
	Err error
}

// DefaultWorkers returns the default number of tests to optimize in parallel
func DefaultWorkers() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// OptimizeAll optimizes the baselines of each of the tests, for each of the
// suffixes, using up to workers goroutines. If workers is less than 1, then
// DefaultWorkers() is used.
//
// Virtual tests whose base test is also listed are skipped, as optimizing the
// base test also optimizes its virtual tests.
//
// The results are ordered by test, then suffix. Errors from individual tests
// are reported in the results. OptimizeAll only returns an error if the
// context is cancelled.
func (o *Optimizer) OptimizeAll(ctx context.Context, tests []string, suffixes []Suffix, workers int) ([]Result, error) {
	if workers < 1 {
		workers = DefaultWorkers()
	}

	listed := container.SetFrom(tests)
	units := []Result{}
	for _, test := range listed.List() {
		if base, _, ok := o.graph.VirtualBase(test); ok && listed.Contains(base) {
			continue
		}
		for _, suffix := range suffixes {
			units = append(units, Result{Changes: Changes{Test: test, Suffix: suffix}})
		}
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i := range units {
		i := i
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r := &units[i]
			r.Changes, r.Err = o.Optimize(ctx, r.Test, r.Suffix)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return units, nil
}
