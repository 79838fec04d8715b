package earley

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

type item struct {
	rule   int
	dot    int
	origin int
}

// itemSet is one column of the chart. Items are appended while the column
// is being processed.
type itemSet struct {
	items []item
	seen  map[item]bool
}

func (s *itemSet) add(it item) {
	if s.seen == nil {
		s.seen = make(map[item]bool)
	}
	if s.seen[it] {
		return
	}
	s.seen[it] = true
	s.items = append(s.items, it)
}

// Result describes one recognition.
type Result struct {
	Accepted bool
	// Offset is the number of bytes the longest viable prefix covers. On
	// rejection the input went wrong at this byte.
	Offset int
	// Line and Column locate Offset, 1-based.
	Line, Column int
	// Expected lists the bytes that would have let the parse continue at
	// Offset, as quoted characters or ranges.
	Expected []string
}

func (r Result) String() string {
	if r.Accepted {
		return "accepted"
	}
	return fmt.Sprintf("%d:%d: not accepted, expected %s", r.Line, r.Column, strings.Join(r.Expected, " or "))
}

// Recognize reports whether input is a sentence of the start production.
func (g *Grammar) Recognize(input []byte) Result {
	n := len(input)
	chart := make([]itemSet, n+1)
	for _, ri := range g.byLHS[g.start] {
		chart[0].add(item{rule: ri, origin: 0})
	}

	for i := 0; i <= n; i++ {
		for j := 0; j < len(chart[i].items); j++ {
			it := chart[i].items[j]
			r := g.rules[it.rule]
			if it.dot == len(r.rhs) {
				g.complete(chart, i, it)
				continue
			}
			next := r.rhs[it.dot]
			if next.isTerminal() {
				if i < n && next.lo <= input[i] && input[i] <= next.hi {
					chart[i+1].add(item{rule: it.rule, dot: it.dot + 1, origin: it.origin})
				}
				continue
			}
			for _, ri := range g.byLHS[next.nonterm] {
				chart[i].add(item{rule: ri, origin: i})
			}
			if g.nullable[next.nonterm] {
				chart[i].add(item{rule: it.rule, dot: it.dot + 1, origin: it.origin})
			}
		}
	}

	res := Result{}
	for _, it := range chart[n].items {
		r := g.rules[it.rule]
		if r.lhs == g.start && it.origin == 0 && it.dot == len(r.rhs) {
			res.Accepted = true
			break
		}
	}

	far := n
	if !res.Accepted {
		for far > 0 && len(chart[far].items) == 0 {
			far--
		}
		res.Expected = g.expected(chart[far])
	}
	res.Offset = far
	res.Line, res.Column = locate(input, far)
	return res
}

func (g *Grammar) complete(chart []itemSet, i int, done item) {
	lhs := g.rules[done.rule].lhs
	for k := 0; k < len(chart[done.origin].items); k++ {
		it := chart[done.origin].items[k]
		r := g.rules[it.rule]
		if it.dot < len(r.rhs) && r.rhs[it.dot].nonterm == lhs {
			chart[i].add(item{rule: it.rule, dot: it.dot + 1, origin: it.origin})
		}
	}
}

func (g *Grammar) expected(set itemSet) []string {
	var out []string
	for _, it := range set.items {
		r := g.rules[it.rule]
		if it.dot == len(r.rhs) || !r.rhs[it.dot].isTerminal() {
			continue
		}
		s := r.rhs[it.dot]
		label := strconv.QuoteRune(rune(s.lo))
		if s.lo != s.hi {
			label += "…" + strconv.QuoteRune(rune(s.hi))
		}
		out = append(out, label)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func locate(input []byte, offset int) (line, column int) {
	line, column = 1, 1
	for _, c := range input[:offset] {
		if c == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return line, column
}
