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

package baseline_test

import (
	"testing"

	"dawn.googlesource.com/blinktools/tools/src/webtests/baseline"
)

const (
	allPass = "This is a testharness.js-based test.\n" +
		"PASS woohoo\n" +
		"Harness: the test ran to completion.\n"
	allPass2 = "This is a testharness.js-based test.\n" +
		"PASS woohoo\n" +
		"PASS yahoo\n" +
		"Harness: the test ran to completion.\n"
	failing = "This is a testharness.js-based test.\n" +
		"FAIL woohoo assert_true: expected true got false\n" +
		"Harness: the test ran to completion.\n"
)

func TestClassify(t *testing.T) {
	type Test struct {
		name      string
		content   string
		present   bool
		suffix    baseline.Suffix
		isReftest bool
		implicit  bool
		extra     bool
	}
	for _, test := range []Test{
		{name: "missing", present: false, suffix: baseline.TXT, implicit: true},
		{name: "missing reftest png", present: false, suffix: baseline.PNG, isReftest: true, implicit: true},
		{name: "all pass", content: allPass, present: true, suffix: baseline.TXT, extra: true},
		{name: "all pass 2", content: allPass2, present: true, suffix: baseline.TXT, extra: true},
		{name: "failure", content: "failure", present: true, suffix: baseline.TXT},
		{name: "failing testharness", content: failing, present: true, suffix: baseline.TXT},
		{name: "empty txt", content: "", present: true, suffix: baseline.TXT, extra: true},
		{name: "empty png", content: "", present: true, suffix: baseline.PNG, extra: true},
		{name: "png", content: "Something", present: true, suffix: baseline.PNG},
		{name: "reftest png", content: "extra", present: true, suffix: baseline.PNG, isReftest: true, extra: true},
		{name: "reftest txt", content: "failure", present: true, suffix: baseline.TXT, isReftest: true},
		{name: "all pass as png", content: allPass, present: true, suffix: baseline.PNG},
		{name: "invalid utf-8", content: "\xff\xfe\xfd", present: true, suffix: baseline.TXT},
	} {
		d := baseline.Classify([]byte(test.content), test.present, test.suffix, test.isReftest)
		if got := d.IsImplicit(); got != test.implicit {
			t.Errorf("'%v': IsImplicit() returned %v", test.name, got)
		}
		if got := d.IsExtra(); got != test.extra {
			t.Errorf("'%v': IsExtra() returned %v", test.name, got)
		}
		if got, expect := d.Equal(baseline.Implicit), test.implicit || test.extra; got != expect {
			t.Errorf("'%v': Equal(Implicit) returned %v", test.name, got)
		}
	}
}

func TestDigestEqual(t *testing.T) {
	txt := func(content string) baseline.Digest {
		return baseline.Classify([]byte(content), true, baseline.TXT, false)
	}
	reftest := func(content string) baseline.Digest {
		return baseline.Classify([]byte(content), true, baseline.PNG, true)
	}
	type Test struct {
		name   string
		a, b   baseline.Digest
		expect bool
	}
	for _, test := range []Test{
		{"implicit, implicit", baseline.Implicit, baseline.Implicit, true},
		{"implicit, all pass", baseline.Implicit, txt(allPass), true},
		{"implicit, all pass 2", baseline.Implicit, txt(allPass2), true},
		{"implicit, empty", baseline.Implicit, txt(""), true},
		{"implicit, reftest png", baseline.Implicit, reftest("extra"), true},
		{"implicit, failure", baseline.Implicit, txt("failure"), false},
		{"same content", txt("1"), txt("1"), true},
		{"different content", txt("1"), txt("2"), false},
		{"different all pass", txt(allPass), txt(allPass2), false},
		{"same all pass", txt(allPass), txt(allPass), true},
		{"empty, all pass", txt(""), txt(allPass), false},
		{"different reftest pngs", reftest("extra"), reftest("extra2"), true},
		{"all pass, failure", txt(allPass), txt("failure"), false},
	} {
		if got := test.a.Equal(test.b); got != test.expect {
			t.Errorf("'%v': a.Equal(b) returned %v, expected %v", test.name, got, test.expect)
		}
		if got := test.b.Equal(test.a); got != test.expect {
			t.Errorf("'%v': b.Equal(a) returned %v, expected %v", test.name, got, test.expect)
		}
	}
}

func TestDigestEquivalent(t *testing.T) {
	txt := func(content string) baseline.Digest {
		return baseline.Classify([]byte(content), true, baseline.TXT, false)
	}
	type Test struct {
		name   string
		a, b   baseline.Digest
		expect bool
	}
	for _, test := range []Test{
		{"implicit, implicit", baseline.Implicit, baseline.Implicit, true},
		{"implicit, all pass", baseline.Implicit, txt(allPass), true},
		{"implicit, failure", baseline.Implicit, txt("failure"), false},
		{"different all pass", txt(allPass), txt(allPass2), true},
		{"empty, all pass", txt(""), txt(allPass), true},
		{"same content", txt("1"), txt("1"), true},
		{"different content", txt("1"), txt("2"), false},
		{"empty, failure", txt(""), txt("failure"), false},
	} {
		if got := test.a.Equivalent(test.b); got != test.expect {
			t.Errorf("'%v': a.Equivalent(b) returned %v, expected %v", test.name, got, test.expect)
		}
		if got := test.b.Equivalent(test.a); got != test.expect {
			t.Errorf("'%v': b.Equivalent(a) returned %v, expected %v", test.name, got, test.expect)
		}
	}
}

func TestDigestString(t *testing.T) {
	if got, expect := baseline.Implicit.String(), "<implicit>"; got != expect {
		t.Errorf("Implicit.String() returned '%v', expected '%v'", got, expect)
	}
	empty := baseline.Classify(nil, true, baseline.TXT, false)
	if got, expect := empty.String(), "extra(<empty>)"; got != expect {
		t.Errorf("String() returned '%v', expected '%v'", got, expect)
	}
	if got := baseline.Classify([]byte("1"), true, baseline.TXT, false).String(); len(got) != 8 {
		t.Errorf("String() returned '%v', expected 8 characters", got)
	}
}
