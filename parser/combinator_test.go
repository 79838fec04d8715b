package parser

import (
	"testing"

	"github.com/henry-nazare/wildcat/source"
)

func stateOf(text string) State {
	return NewState(source.New("test.wc", text))
}

func loc(line, col int) source.Location {
	return source.Location{Line: line, Column: col}
}

func TestErrorSetDedup(t *testing.T) {
	err := Error{Expected: "'('", Got: 'x', Loc: loc(1, 3)}
	var set ErrorSet
	set = set.Add(err)
	set = set.Add(err)
	if set.Len() != 1 {
		t.Errorf("Len() = %d after adding the same error twice", set.Len())
	}

	set = set.Add(Error{Expected: "'('", Got: 'y', Loc: loc(1, 3)})
	set = set.Add(Error{Expected: "'('", Got: 'x', Loc: loc(1, 4)})
	if set.Len() != 3 {
		t.Errorf("Len() = %d, want 3 distinct errors", set.Len())
	}
}

func TestErrorSetOrder(t *testing.T) {
	var set ErrorSet
	set = set.Add(Error{Expected: "space", Got: ')', Loc: loc(1, 5)})
	set = set.Add(Error{Expected: `"->"`, Got: ')', Loc: loc(1, 5)})
	set = set.Add(Error{Expected: "'('", Got: ')', Loc: loc(1, 5)})

	want := []string{`"->"`, "'('", "space"}
	for i, err := range set.All() {
		if err.Expected != want[i] {
			t.Errorf("error %d = %s, want %s", i, err.Expected, want[i])
		}
	}
}

func TestErrorSetIsAValue(t *testing.T) {
	var base ErrorSet
	base = base.Add(Error{Expected: "a", Loc: loc(1, 1)})
	snapshot := base

	_ = base.Add(Error{Expected: "b", Loc: loc(1, 1)})
	_ = base.ClearBefore(loc(2, 1))
	if snapshot.Len() != 1 || base.Len() != 1 {
		t.Errorf("operations modified the receiver: base=%d snapshot=%d", base.Len(), snapshot.Len())
	}
}

func TestErrorSetClear(t *testing.T) {
	var set ErrorSet
	set = set.Add(Error{Expected: "a", Loc: loc(1, 2)})
	set = set.Add(Error{Expected: "b", Loc: loc(1, 5)})
	set = set.Add(Error{Expected: "c", Loc: loc(2, 1)})

	if got := set.ClearBefore(loc(1, 5)).Len(); got != 2 {
		t.Errorf("ClearBefore kept %d errors, want 2", got)
	}
	if got := set.ClearFrom(loc(1, 5)).Len(); got != 1 {
		t.Errorf("ClearFrom kept %d errors, want 1", got)
	}

	var other ErrorSet
	other = other.Add(Error{Expected: "a", Loc: loc(1, 2)})
	other = other.Add(Error{Expected: "d", Loc: loc(3, 1)})
	if got := set.Merge(other).Len(); got != 4 {
		t.Errorf("Merge has %d errors, want 4", got)
	}
}

func TestErrorSetLeading(t *testing.T) {
	var set ErrorSet
	set = set.Add(Error{Expected: "z", Loc: loc(2, 1)})
	set = set.Add(Error{Expected: "b", Loc: loc(1, 2)})
	set = set.Add(Error{Expected: "a", Loc: loc(1, 2)})
	set = set.Add(Error{Expected: "c", Loc: loc(3, 1)})

	group := set.Leading()
	if len(group) != 2 || group[0].Expected != "a" || group[1].Expected != "b" {
		t.Errorf("Leading() = %+v", group)
	}
	if (ErrorSet{}).Leading() != nil {
		t.Errorf("Leading of empty set should be nil")
	}
}

func TestLiterals(t *testing.T) {
	s := stateOf("(->x")
	s = s.Then(lit('(')).Then(str("->"))
	if !s.Valid() || s.Location() != loc(1, 4) {
		t.Fatalf("state after literals: valid=%v at %v", s.Valid(), s.Location())
	}

	failed := s.Then(str("xy"))
	if failed.Valid() {
		t.Fatalf("str matched a prefix only")
	}
	errs := failed.Errors().All()
	if len(errs) != 1 || errs[0].Expected != `"xy"` || errs[0].Got != source.EOF || errs[0].Loc != loc(1, 5) {
		t.Errorf("errors = %+v", errs)
	}
}

func TestThenShortCircuits(t *testing.T) {
	s := stateOf("ab")
	s = s.Then(lit('x'))
	ran := false
	s = s.Then(func(s State) State {
		ran = true
		return s
	})
	if ran {
		t.Errorf("step ran on a failed state")
	}
	if s.Valid() || s.Location() != loc(1, 1) {
		t.Errorf("failed state moved or became valid")
	}
}

func TestThenCommits(t *testing.T) {
	s := stateOf("ab")
	s, _ = TryStep(s, lit('x'))
	if s.Errors().Len() != 1 {
		t.Fatalf("failed alternative left %d errors", s.Errors().Len())
	}
	s = s.Then(lit('a'))
	if s.Errors().Len() != 0 {
		t.Errorf("errors before consumed input survived: %+v", s.Errors().All())
	}
}

func TestTryMergesAlternatives(t *testing.T) {
	s := stateOf("b")
	s, ok := TryStep(s, lit('a'))
	if ok {
		t.Fatalf("'a' matched 'b'")
	}
	s, ok = TryStep(s, lit('c'))
	if ok {
		t.Fatalf("'c' matched 'b'")
	}
	if !s.Valid() || s.Location() != loc(1, 1) {
		t.Errorf("Try did not restore the state")
	}
	if s.Errors().Len() != 2 {
		t.Errorf("errors = %+v, want both alternatives", s.Errors().All())
	}

	s, ok = TryStep(s, lit('b'))
	if !ok || s.Location() != loc(1, 2) || s.Errors().Len() != 0 {
		t.Errorf("successful Try: ok=%v at %v with %d errors", ok, s.Location(), s.Errors().Len())
	}
}

func TestMaybeKeepsAttemptErrors(t *testing.T) {
	s := stateOf("xy")
	s, _ = Bind(s, Maybe(After(lit('x'), lit('z').rule())))
	if !s.Valid() || s.Location() != loc(1, 1) {
		t.Fatalf("Maybe did not restore: valid=%v at %v", s.Valid(), s.Location())
	}
	errs := s.Errors().All()
	if len(errs) != 1 || errs[0].Expected != "'z'" || errs[0].Loc != loc(1, 2) {
		t.Errorf("errors = %+v", errs)
	}
}

func TestMany(t *testing.T) {
	s, lexeme := Bind(stateOf("abc_1 rest"), identifier)
	if !s.Valid() || lexeme != "abc_1" || s.Location() != loc(1, 6) {
		t.Errorf("identifier = %q at %v", lexeme, s.Location())
	}

	s, lexeme = Bind(stateOf("-"), identifier)
	if s.Valid() || lexeme != "" {
		t.Fatalf("identifier matched %q", lexeme)
	}
	if errs := s.Errors().All(); len(errs) != 1 || errs[0].Expected != "identifier" || errs[0].Got != '-' {
		t.Errorf("errors = %+v", errs)
	}
}

func TestWordRejectsTerminator(t *testing.T) {
	s, _ := Bind(stateOf("; x"), wordNode)
	if s.Valid() {
		t.Errorf("a lone ';' parsed as a word")
	}
	s, w := Bind(stateOf("x; y"), wordNode)
	if !s.Valid() || w != "x;" {
		t.Errorf("word = %q, valid=%v", w, s.Valid())
	}
}

func TestSepBy(t *testing.T) {
	tests := []struct {
		input string
		want  int
		end   source.Location
	}{
		{"", 0, loc(1, 1)},
		{"a", 1, loc(1, 2)},
		{"a , b,c", 3, loc(1, 8)},
		{"a, ", 1, loc(1, 3)},
		{"a b", 1, loc(1, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s, items := Bind(stateOf(tt.input), SepBy(',', identifier))
			if !s.Valid() {
				t.Fatalf("SepBy failed")
			}
			if len(items) != tt.want || s.Location() != tt.end {
				t.Errorf("got %d items ending at %v, want %d at %v", len(items), s.Location(), tt.want, tt.end)
			}
		})
	}
}

func TestSepBySpace(t *testing.T) {
	s, items := Bind(stateOf("a b\n c)"), SepBySpace(identifier))
	if !s.Valid() || len(items) != 3 || s.Location() != loc(2, 3) {
		t.Errorf("got %v ending at %v", items, s.Location())
	}

	s, _ = Bind(stateOf(")"), SepBySpace(identifier))
	if s.Valid() {
		t.Errorf("SepBySpace accepted zero elements")
	}
}

func TestLookaheadDoesNotLeak(t *testing.T) {
	s := stateOf(" ; x")
	next := lookahead(s, boundary)
	if !next.Valid() || next.Location() != loc(1, 4) {
		t.Fatalf("boundary lookahead: valid=%v at %v", next.Valid(), next.Location())
	}
	if s.Location() != loc(1, 1) {
		t.Errorf("lookahead moved the original state to %v", s.Location())
	}
}

func TestRecoverProgress(t *testing.T) {
	tests := []struct {
		input  string
		stop   source.Location
		state  SyncState
		resume source.Location
	}{
		{"f : x ; g : ( -> ) -> ;", loc(1, 5), FoundBoundary, loc(1, 9)},
		{"f : x\ng : ( -> ) -> ;", loc(1, 5), Unterminated, loc(1, 6)},
		{"f : x", loc(1, 5), Unterminated, loc(1, 6)},
		{"f : x ;", loc(1, 5), FoundBoundary, loc(1, 8)},
		{";", loc(1, 1), Unterminated, loc(1, 2)},
		{"f : (a -> b) -> x : y", loc(1, 22), Unterminated, loc(1, 22)},
		{"f : (a -> b) -> x : y ;", loc(1, 22), FoundBoundary, loc(1, 24)},
		{"f : (a -> b\ng : (x -> y) -> z ;", loc(2, 3), Unterminated, loc(1, 12)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := stateOf(tt.input)
			r := Recover(s, tt.stop)
			if r.State != tt.state || r.Resume != tt.resume {
				t.Errorf("Recover = %v at %v, want %v at %v", r.State, r.Resume, tt.state, tt.resume)
			}
			if !r.Start.Before(r.Resume) {
				t.Errorf("no progress: start %v, resume %v", r.Start, r.Resume)
			}
		})
	}
}

func TestSyncStateString(t *testing.T) {
	if Unterminated.String() != "unterminated" || FoundBoundary.String() != "found boundary" || Scanning.String() != "scanning" {
		t.Errorf("unexpected names")
	}
}
