package parser

import (
	"github.com/henry-nazare/wildcat/charclass"
	"github.com/henry-nazare/wildcat/source"
)

// SyncState is the state of the recovery scan that runs after a definition
// failed to parse.
type SyncState int

const (
	Scanning SyncState = iota
	FoundBoundary
	Unterminated
)

var syncStateNames = map[SyncState]string{
	Scanning:      "scanning",
	FoundBoundary: "found boundary",
	Unterminated:  "unterminated",
}

func (s SyncState) String() string {
	return syncStateNames[s]
}

// Recovery is where parsing resumes after a failed definition.
type Recovery struct {
	State  SyncState
	Resume source.Location
	// Start is where the failed definition began; an unterminated
	// definition is reported there.
	Start source.Location
}

// Recover scans forward from s, the start of a failed definition, for a
// place where parsing can resume. stop is where the failed attempt gave up.
// At every location it checks, in order, for the end of input, for a
// terminator (" ; " or " ;" at the end of input) and for the head of a new
// definition (" name : "). Inside the text the failed attempt consumed, a
// head only counts when it starts a new line; a head in the middle of a
// line counts once the scan reaches stop or the whitespace just before it. The scan moves one character at a time, so
// the returned location is always past the start unless the start is
// already the end of input.
func Recover(s State, stop source.Location) Recovery {
	start := s.Location()
	r := Recovery{State: Scanning, Start: start}
	for r.State == Scanning {
		loc := s.Location()
		if lookahead(s, seq(ws, eof)).valid {
			r.State, r.Resume = Unterminated, s.cur.Source().End()
			break
		}
		if next := lookahead(s, boundary); next.valid {
			r.State, r.Resume = FoundBoundary, next.Location()
			break
		}
		if headAllowed(s, stop) && lookahead(s, definitionHead).valid {
			r.State, r.Resume = Unterminated, loc
			break
		}
		s = s.At(loc)
		s.cur.Next()
	}
	return r
}

func headAllowed(s State, stop source.Location) bool {
	cur := s.cur
	for charclass.Space.Match(cur.Peek()) {
		if cur.Next() == '\n' {
			return true
		}
	}
	return !cur.Location().Before(stop)
}

// lookahead runs step from a fresh copy of s. Nothing it does is visible
// through s.
func lookahead(s State, step Step) State {
	return s.At(s.Location()).Then(step)
}
