package parser

import "github.com/henry-nazare/wildcat/source"

// State is the value threaded through every rule: where the parse is, whether
// the current attempt is still alive, and what it could have matched but
// did not. States are copied to snapshot them; nothing inside a State is
// shared mutably between copies.
type State struct {
	cur   source.Cursor
	valid bool
	errs  ErrorSet
}

// NewState returns a valid state with no errors at the start of src.
func NewState(src *source.Source) State {
	return State{cur: src.Start(), valid: true}
}

func (s State) Valid() bool {
	return s.valid
}

func (s State) Errors() ErrorSet {
	return s.errs
}

func (s State) Location() source.Location {
	return s.cur.Location()
}

func (s State) AtEOF() bool {
	return s.cur.AtEOF()
}

// At returns a fresh valid state at loc with no errors.
func (s State) At(loc source.Location) State {
	s.cur.Seek(loc)
	s.valid = true
	s.errs = ErrorSet{}
	return s
}

func (s State) peek() byte {
	return s.cur.Peek()
}

func (s State) fail(expected string) State {
	s.errs = s.errs.Add(Error{Expected: expected, Got: s.peek(), Loc: s.Location()})
	s.valid = false
	return s
}

func (s State) invalidate() State {
	s.valid = false
	return s
}
