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
	"fmt"

	"dawn.googlesource.com/blinktools/tools/src/webtests/port"
)

// Resolution is the baseline a platform resolves for a test
type Resolution struct {
	Platform port.Platform
	// Path of the baseline, relative to the web tests root. Empty if no
	// baseline was found, in which case Digest is Implicit.
	Path   string
	Digest Digest
}

// Resolve returns the baseline resolved by each platform that runs the test
func (o *Optimizer) Resolve(test string, suffix Suffix) ([]Resolution, error) {
	u, err := o.load(test, suffix, []string{test})
	if err != nil {
		return nil, fmt.Errorf("%v (%v): %w", test, suffix, err)
	}
	out := []Resolution{}
	for _, p := range o.graph.Platforms() {
		if o.graph.Skips(p, test) {
			continue
		}
		r := Resolution{Platform: p, Digest: Implicit}
		if dir, ok := u.find(o.graph.SearchPath(p, test)); ok {
			r.Path, r.Digest = u.path(dir), u.digest(dir)
		}
		out = append(out, r)
	}
	return out, nil
}
