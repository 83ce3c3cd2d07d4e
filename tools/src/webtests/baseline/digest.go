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

	"dawn.googlesource.com/blinktools/tools/src/utils"
	"dawn.googlesource.com/blinktools/tools/src/webtests/testharness"
)

type digestKind int

const (
	implicit digestKind = iota
	extra
	ordinary
)

// Digest identifies the content of a baseline, for the purpose of comparing
// baselines.
//
// A missing baseline has the implicit digest. A baseline that carries no more
// information than a missing one (an all-pass testharness.js result, an empty
// file, or a PNG of a reference test) has an extra digest. Implicit is equal
// to itself and to every extra digest. All other digests are equal when their
// contents are equal.
//
// Equal is not transitive: an empty baseline and an all-pass baseline are
// both equal to Implicit, but not to each other. Equivalent treats every
// extra digest as Implicit, and is transitive.
type Digest struct {
	kind digestKind
	key  string
}

// Implicit is the digest of a missing baseline
var Implicit = Digest{}

// Keys of the extra digests that do not depend on the content
const (
	emptyKey   = "<empty>"
	reftestKey = "<reftest>"
)

// Classify returns the digest of a baseline. present is false if the
// baseline file does not exist, in which case content is ignored.
func Classify(content []byte, present bool, suffix Suffix, isReftest bool) Digest {
	switch {
	case !present:
		return Implicit
	case suffix == PNG && isReftest:
		return Digest{extra, reftestKey}
	case len(content) == 0:
		return Digest{extra, emptyKey}
	case suffix == TXT && testharness.IsAllPass(content):
		return Digest{extra, utils.HashBytes(content)}
	}
	return Digest{ordinary, utils.HashBytes(content)}
}

// Equal returns true if the two digests represent equivalent baselines
func (d Digest) Equal(o Digest) bool {
	switch {
	case d.kind == implicit:
		return o.kind != ordinary
	case o.kind == implicit:
		return d.kind != ordinary
	}
	return d == o
}

// Equivalent returns true if the two digests are equal, or if neither digest
// is ordinary.
func (d Digest) Equivalent(o Digest) bool {
	if d.kind == ordinary || o.kind == ordinary {
		return d == o
	}
	return true
}

// IsImplicit returns true if the digest is of a missing baseline
func (d Digest) IsImplicit() bool { return d.kind == implicit }

// IsExtra returns true if the digest is of a baseline that is equivalent to
// a missing baseline.
func (d Digest) IsExtra() bool { return d.kind == extra }

func (d Digest) String() string {
	short := func(key string) string {
		if len(key) > 8 {
			return key[:8]
		}
		return key
	}
	switch d.kind {
	case implicit:
		return "<implicit>"
	case extra:
		return fmt.Sprintf("extra(%v)", short(d.key))
	}
	return short(d.key)
}
