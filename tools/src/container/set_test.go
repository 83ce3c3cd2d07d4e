package container_test

import (
	"testing"

	"dawn.googlesource.com/blinktools/tools/src/container"
)

func TestNewSet(t *testing.T) {
	s := container.NewSet[string]()
	expectEq(t, "len(s)", len(s), 0)
}

func TestSetFrom(t *testing.T) {
	s := container.SetFrom([]string{"c", "a", "b"})
	expectEq(t, "len(s)", len(s), 3)
}

func TestSetList(t *testing.T) {
	s := container.SetFrom([]string{"c", "a", "b"})
	expectEq(t, "s.List()", s.List(), []string{"a", "b", "c"})
}

func TestSetAdd(t *testing.T) {
	s := container.NewSet[string]()
	s.Add("c")
	expectEq(t, "len(s)", len(s), 1)
	expectEq(t, "s.List()", s.List(), []string{"c"})

	s.Add("a")
	expectEq(t, "len(s)", len(s), 2)
	expectEq(t, "s.List()", s.List(), []string{"a", "c"})

	s.Add("b")
	expectEq(t, "len(s)", len(s), 3)
	expectEq(t, "s.List()", s.List(), []string{"a", "b", "c"})
}

func TestSetRemove(t *testing.T) {
	s := container.SetFrom([]string{"c", "a", "b"})
	s.Remove("c")
	expectEq(t, "len(s)", len(s), 2)
	expectEq(t, "s.List()", s.List(), []string{"a", "b"})

	s.Remove("a")
	expectEq(t, "len(s)", len(s), 1)
	expectEq(t, "s.List()", s.List(), []string{"b"})

	s.Remove("b")
	expectEq(t, "len(s)", len(s), 0)
	expectEq(t, "s.List()", s.List(), []string{})
}

func TestSetAddAll(t *testing.T) {
	s := container.NewSet[string]()
	s.AddAll(container.SetFrom([]string{"c", "a"}))
	expectEq(t, "len(s)", len(s), 2)
	expectEq(t, "s.List()", s.List(), []string{"a", "c"})
}

func TestSetRemoveAll(t *testing.T) {
	s := container.SetFrom([]string{"c", "a", "b"})
	s.RemoveAll(container.SetFrom([]string{"c", "a"}))
	expectEq(t, "len(s)", len(s), 1)
	expectEq(t, "s.List()", s.List(), []string{"b"})
}

func TestSetClone(t *testing.T) {
	a := container.NewSet("a", "b")
	b := a.Clone()
	b.Add("c")
	expectEq(t, "a.List()", a.List(), []string{"a", "b"})
	expectEq(t, "b.List()", b.List(), []string{"a", "b", "c"})
}

func TestSetContainsAny(t *testing.T) {
	s := container.NewSet("a", "b")
	expectEq(t, `s.ContainsAny("b", "z")`, s.ContainsAny(container.NewSet("b", "z")), true)
	expectEq(t, `s.ContainsAny("y", "z")`, s.ContainsAny(container.NewSet("y", "z")), false)
	expectEq(t, `s.ContainsAny()`, s.ContainsAny(container.NewSet[string]()), false)
}

func TestSetIntersection(t *testing.T) {
	a := container.NewSet("a", "b", "c")
	b := container.NewSet("b", "c", "d")
	expectEq(t, "a.Intersection(b)", a.Intersection(b).List(), []string{"b", "c"})
	expectEq(t, "a.Equal(b)", a.Equal(b), false)
	expectEq(t, "a.Equal(a.Clone())", a.Equal(a.Clone()), true)
}
