// Package parser parses wildcat definition files.
//
// # Overview
//
// A file is a sequence of definitions:
//
//	name : (input-types -> output-type) (args) -> body ;
//
// The argument list and the body may be left out. The grammar is written in
// EBNF in grammar.ebnf (see Grammar) and implemented by hand with the small
// set of combinators in combinator.go.
//
// # State
//
// Every rule is a function from State to State, optionally producing a
// value. A State carries the cursor, a validity flag and the set of errors
// describing what could have matched. States are plain values: snapshotting
// for backtracking is an assignment, and a discarded attempt leaves no trace.
//
//	s = s.Then(lit('(')).Then(ws)     // sequence, stops at the first failure
//	s, list := Bind(s, typeList)      // sequence a rule that produces a node
//	s, out := Bind(s, Maybe(rule))    // optional
//	s, v, ok := Try(s, rule)          // alternative, errors are merged
//
// When a step succeeds after consuming input, errors located before the new
// position are dropped. Sibling alternatives tried at the same position
// accumulate, so a diagnostic lists everything that would have been
// accepted:
//
//	defs.wc:1:14: error: expected "->" or '(', got 'x'
//	f : (a -> b) x -> y ;
//	             ^
//
// # Recovery
//
// When a definition fails, Recover scans forward from its start for either
// a terminator or the head of the next definition, and parsing resumes
// there. All definitions of a file are parsed in one pass; the Result
// holds the ones that parsed and one diagnostic per failure.
package parser
