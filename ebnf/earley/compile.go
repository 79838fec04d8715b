// Package earley recognizes input against an EBNF grammar, one byte at a
// time. It is used to check that the hand-written parser and the published
// grammar agree.
package earley

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"golang.org/x/exp/ebnf"
)

// symbol is a nonterminal when nonterm >= 0, otherwise the byte range
// lo…hi.
type symbol struct {
	nonterm int
	lo, hi  byte
}

func (s symbol) isTerminal() bool {
	return s.nonterm < 0
}

type rule struct {
	lhs int
	rhs []symbol
}

// Grammar is an EBNF grammar flattened into plain rules. Options, groups,
// repetitions and nested alternatives become synthetic nonterminals.
type Grammar struct {
	start    int
	names    []string
	index    map[string]int
	rules    []rule
	byLHS    [][]int
	nullable []bool
}

// Compile flattens g for recognition from the production start. Every
// production reachable from start must be defined.
func Compile(g ebnf.Grammar, start string) (*Grammar, error) {
	if err := ebnf.Verify(g, start); err != nil {
		return nil, err
	}
	c := &Grammar{index: make(map[string]int)}
	names := slices.Sorted(maps.Keys(g))
	for _, name := range names {
		c.nonterm(name)
	}
	for _, name := range names {
		prod := g[name]
		lhs := c.index[name]
		if alt, ok := prod.Expr.(ebnf.Alternative); ok {
			for _, e := range alt {
				if err := c.addRule(g, lhs, e); err != nil {
					return nil, err
				}
			}
			continue
		}
		if err := c.addRule(g, lhs, prod.Expr); err != nil {
			return nil, err
		}
	}
	c.start = c.index[start]
	c.computeNullable()
	return c, nil
}

// Parse reads an EBNF grammar from r and compiles it.
func Parse(filename string, r io.Reader, start string) (*Grammar, error) {
	g, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return Compile(g, start)
}

func (c *Grammar) nonterm(name string) int {
	if i, ok := c.index[name]; ok {
		return i
	}
	i := len(c.names)
	c.names = append(c.names, name)
	c.index[name] = i
	c.byLHS = append(c.byLHS, nil)
	return i
}

func (c *Grammar) synthetic(owner string) int {
	return c.nonterm(fmt.Sprintf("%s#%d", owner, len(c.names)))
}

func (c *Grammar) addRule(g ebnf.Grammar, lhs int, e ebnf.Expression) error {
	rhs, err := c.expand(g, c.names[lhs], e)
	if err != nil {
		return err
	}
	c.byLHS[lhs] = append(c.byLHS[lhs], len(c.rules))
	c.rules = append(c.rules, rule{lhs: lhs, rhs: rhs})
	return nil
}

func (c *Grammar) expand(g ebnf.Grammar, owner string, expr ebnf.Expression) ([]symbol, error) {
	switch e := expr.(type) {
	case nil:
		return nil, nil

	case *ebnf.Name:
		if _, ok := g[e.String]; !ok {
			return nil, fmt.Errorf("%s: undefined production %s", e.Pos(), e.String)
		}
		return []symbol{{nonterm: c.index[e.String]}}, nil

	case *ebnf.Token:
		var out []symbol
		for i := 0; i < len(e.String); i++ {
			out = append(out, symbol{nonterm: -1, lo: e.String[i], hi: e.String[i]})
		}
		return out, nil

	case *ebnf.Range:
		if len(e.Begin.String) != 1 || len(e.End.String) != 1 {
			return nil, fmt.Errorf("%s: range bounds must be single bytes", e.Pos())
		}
		return []symbol{{nonterm: -1, lo: e.Begin.String[0], hi: e.End.String[0]}}, nil

	case ebnf.Sequence:
		var out []symbol
		for _, item := range e {
			syms, err := c.expand(g, owner, item)
			if err != nil {
				return nil, err
			}
			out = append(out, syms...)
		}
		return out, nil

	case ebnf.Alternative:
		x := c.synthetic(owner)
		for _, alt := range e {
			if err := c.addRule(g, x, alt); err != nil {
				return nil, err
			}
		}
		return []symbol{{nonterm: x}}, nil

	case *ebnf.Group:
		x := c.synthetic(owner)
		if err := c.addRules(g, x, e.Body); err != nil {
			return nil, err
		}
		return []symbol{{nonterm: x}}, nil

	case *ebnf.Option:
		// X = body | ε
		x := c.synthetic(owner)
		if err := c.addRules(g, x, e.Body); err != nil {
			return nil, err
		}
		c.addEmpty(x)
		return []symbol{{nonterm: x}}, nil

	case *ebnf.Repetition:
		// X = X body | ε
		x := c.synthetic(owner)
		body, err := c.expand(g, owner, e.Body)
		if err != nil {
			return nil, err
		}
		c.byLHS[x] = append(c.byLHS[x], len(c.rules))
		c.rules = append(c.rules, rule{lhs: x, rhs: append([]symbol{{nonterm: x}}, body...)})
		c.addEmpty(x)
		return []symbol{{nonterm: x}}, nil
	}
	return nil, fmt.Errorf("%s: unsupported expression %T", expr.Pos(), expr)
}

// addRules adds one rule per alternative of e.
func (c *Grammar) addRules(g ebnf.Grammar, lhs int, e ebnf.Expression) error {
	if alt, ok := e.(ebnf.Alternative); ok {
		for _, a := range alt {
			if err := c.addRule(g, lhs, a); err != nil {
				return err
			}
		}
		return nil
	}
	return c.addRule(g, lhs, e)
}

func (c *Grammar) addEmpty(lhs int) {
	c.byLHS[lhs] = append(c.byLHS[lhs], len(c.rules))
	c.rules = append(c.rules, rule{lhs: lhs})
}

func (c *Grammar) computeNullable() {
	c.nullable = make([]bool, len(c.names))
	for changed := true; changed; {
		changed = false
		for _, r := range c.rules {
			if c.nullable[r.lhs] {
				continue
			}
			all := true
			for _, s := range r.rhs {
				if s.isTerminal() || !c.nullable[s.nonterm] {
					all = false
					break
				}
			}
			if all {
				c.nullable[r.lhs] = true
				changed = true
			}
		}
	}
}
