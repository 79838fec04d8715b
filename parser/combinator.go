package parser

import (
	"github.com/henry-nazare/wildcat/charclass"
	"github.com/henry-nazare/wildcat/source"
)

// Step is a rule that produces no value.
type Step func(State) State

// Rule is a rule that produces a value, usually a syntax tree node.
type Rule[T any] func(State) (State, T)

type none struct{}

func (p Step) rule() Rule[none] {
	return func(s State) (State, none) {
		return p(s), none{}
	}
}

// Then runs step on s. A failed state is returned unchanged, so a chain of
// Then calls stops at the first failure. When step succeeds after consuming
// input, errors located before the new position are dropped: the input is
// committed and alternatives that failed earlier no longer matter.
func (s State) Then(step Step) State {
	if !s.valid {
		return s
	}
	return commit(s.Location(), step(s))
}

// Bind is Then for rules that produce a value.
func Bind[T any](s State, rule Rule[T]) (State, T) {
	if !s.valid {
		var zero T
		return s, zero
	}
	before := s.Location()
	next, v := rule(s)
	return commit(before, next), v
}

func commit(before source.Location, s State) State {
	if s.valid && s.Location() != before {
		s.errs = s.errs.ClearBefore(s.Location())
	}
	return s
}

// Maybe makes rule optional. When it fails, the position and validity from
// before the attempt are kept but the attempt's errors are not discarded:
// they still describe what could have matched here if a later rule fails at
// the same spot.
func Maybe[T any](rule Rule[T]) Rule[T] {
	return func(s State) (State, T) {
		next, v := Bind(s, rule)
		if next.valid {
			return next, v
		}
		s.errs = next.errs
		var zero T
		return s, zero
	}
}

// Try attempts rule and reports whether it matched. On failure s is
// returned with the attempt's errors merged in, so sibling alternatives
// tried at the same position add up to one "expected X or Y" diagnostic.
func Try[T any](s State, rule Rule[T]) (State, T, bool) {
	next, v := Bind(s, rule)
	if next.valid {
		return next, v, true
	}
	s.errs = s.errs.Merge(next.errs)
	var zero T
	return s, zero, false
}

// TryStep is Try for steps.
func TryStep(s State, step Step) (State, bool) {
	s, _, ok := Try(s, step.rule())
	return s, ok
}

// After runs step and then rule, producing rule's value.
func After[T any](step Step, rule Rule[T]) Rule[T] {
	return func(s State) (State, T) {
		return Bind(s.Then(step), rule)
	}
}

// Map converts the value produced by rule.
func Map[T, U any](rule Rule[T], f func(T) U) Rule[U] {
	return func(s State) (State, U) {
		s, v := Bind(s, rule)
		return s, f(v)
	}
}

func seq(steps ...Step) Step {
	return func(s State) State {
		for _, step := range steps {
			s = s.Then(step)
		}
		return s
	}
}

// either tries a and falls back to b.
func either(a, b Step) Step {
	return func(s State) State {
		if next, ok := TryStep(s, a); ok {
			return next
		}
		return s.Then(b)
	}
}

// SepBy parses zero or more rules separated by sep with optional
// whitespace before each separator and element. A separator that is not
// followed by an element is consumed and ends the list.
func SepBy[T any](sep byte, rule Rule[T]) Rule[[]T] {
	return func(s State) (State, []T) {
		var items []T
		s, first, ok := Try(s, rule)
		if !ok {
			return s, items
		}
		items = append(items, first)
		for {
			if s, ok = TryStep(s, seq(ws, lit(sep))); !ok {
				break
			}
			var item T
			if s, item, ok = Try(s, After(ws, rule)); !ok {
				break
			}
			items = append(items, item)
		}
		return s, items
	}
}

// SepBySpace parses one or more rules separated by runs of whitespace.
func SepBySpace[T any](rule Rule[T]) Rule[[]T] {
	return func(s State) (State, []T) {
		s, first := Bind(s, rule)
		if !s.valid {
			return s, nil
		}
		items := []T{first}
		for {
			var item T
			var ok bool
			if s, item, ok = Try(s, After(spaces, rule)); !ok {
				break
			}
			items = append(items, item)
		}
		return s, items
	}
}

// lit matches the single character c.
func lit(c byte) Step {
	return func(s State) State {
		if s.peek() != c {
			return s.fail(expectChar(c))
		}
		s.cur.Next()
		return s
	}
}

// str matches text. A mismatch part way through is reported once, for the
// whole literal, at the first character that differs.
func str(text string) Step {
	return func(s State) State {
		for i := 0; i < len(text); i++ {
			if s.peek() != text[i] {
				return s.fail(expectString(text))
			}
			s.cur.Next()
		}
		return s
	}
}

// many consumes the longest run of characters in class and returns it. An
// empty run is an error labelled with the class.
func many(class charclass.Class) Rule[string] {
	return func(s State) (State, string) {
		var lexeme []byte
		for class.Match(s.peek()) {
			lexeme = append(lexeme, s.cur.Next())
		}
		if len(lexeme) == 0 {
			return s.fail(expectClass(class)), ""
		}
		return s, string(lexeme)
	}
}

// ws skips zero or more spaces and never fails.
func ws(s State) State {
	for charclass.Space.Match(s.peek()) {
		s.cur.Next()
	}
	return s
}

// spaces requires at least one space.
func spaces(s State) State {
	s, _ = many(charclass.Space)(s)
	return s
}

// eof matches the end of input without recording an error.
func eof(s State) State {
	if !s.AtEOF() {
		return s.invalidate()
	}
	return s
}
