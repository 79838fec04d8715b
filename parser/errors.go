package parser

import (
	"cmp"
	"slices"

	"github.com/henry-nazare/wildcat/charclass"
	"github.com/henry-nazare/wildcat/source"
)

// Error records one expectation that failed: at Loc the parser wanted
// Expected but saw Got.
type Error struct {
	Expected string
	Got      byte
	Loc      source.Location
}

func expectChar(c byte) string {
	return "'" + string([]byte{c}) + "'"
}

func expectString(s string) string {
	return `"` + s + `"`
}

func expectClass(c charclass.Class) string {
	return c.Label
}

func compareErrors(a, b Error) int {
	if c := cmp.Compare(a.Expected, b.Expected); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Got, b.Got); c != 0 {
		return c
	}
	return a.Loc.Compare(b.Loc)
}

// ErrorSet is an ordered set of errors without duplicates. It is a value:
// every method that changes the set returns a new one and leaves the
// receiver and any copies of it untouched, so parser states can be
// snapshotted by plain assignment.
type ErrorSet struct {
	errs []Error
}

func (s ErrorSet) Len() int {
	return len(s.errs)
}

// All returns the errors in order.
func (s ErrorSet) All() []Error {
	return slices.Clone(s.errs)
}

// Add inserts err unless an equal error is already present.
func (s ErrorSet) Add(err Error) ErrorSet {
	i, found := slices.BinarySearchFunc(s.errs, err, compareErrors)
	if found {
		return s
	}
	out := make([]Error, 0, len(s.errs)+1)
	out = append(out, s.errs[:i]...)
	out = append(out, err)
	out = append(out, s.errs[i:]...)
	return ErrorSet{errs: out}
}

// Merge returns the union of s and other.
func (s ErrorSet) Merge(other ErrorSet) ErrorSet {
	for _, err := range other.errs {
		s = s.Add(err)
	}
	return s
}

// ClearBefore drops every error located strictly before loc.
func (s ErrorSet) ClearBefore(loc source.Location) ErrorSet {
	return s.filter(func(err Error) bool { return !err.Loc.Before(loc) })
}

// ClearFrom drops every error located at or after loc.
func (s ErrorSet) ClearFrom(loc source.Location) ErrorSet {
	return s.filter(func(err Error) bool { return err.Loc.Before(loc) })
}

func (s ErrorSet) filter(keep func(Error) bool) ErrorSet {
	var out []Error
	for _, err := range s.errs {
		if keep(err) {
			out = append(out, err)
		}
	}
	if len(out) == len(s.errs) {
		return s
	}
	return ErrorSet{errs: out}
}

// Leading returns the first error in set order together with every other
// error at the same location, in set order. Diagnostics report this group.
func (s ErrorSet) Leading() []Error {
	if len(s.errs) == 0 {
		return nil
	}
	at := s.errs[0].Loc
	var out []Error
	for _, err := range s.errs {
		if err.Loc == at {
			out = append(out, err)
		}
	}
	return out
}
