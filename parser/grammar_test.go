package parser

import (
	"bytes"
	"testing"

	"github.com/henry-nazare/wildcat/ebnf/earley"
)

// The published grammar and the parser must accept the same files. Words
// consisting of a lone ";" and non-ASCII input are left out: the grammar
// cannot express either restriction.
func TestGrammarAgreesWithParser(t *testing.T) {
	g, err := earley.Parse("grammar.ebnf", bytes.NewReader(Grammar()), GrammarStart)
	if err != nil {
		t.Fatalf("compile grammar: %v", err)
	}

	inputs := []string{
		"",
		"  \n ",
		"f : (a b -> c) (x) -> y z ;",
		"f : ( -> ) -> ;",
		"f : (a b, c -> d e) (x y, z) -> w ;",
		"f : (a, -> b) -> ;",
		"f : (a -> b) () -> x ;",
		"add : (int, int -> int) (a, b) -> a b + ;",
		"f : ( -> a)\n  -> x\n  y ;\n\ng : ( -> ) -> ;\n",
		"f : ( -> ) -> ;g : ( -> ) -> ;",
		"f : ( -> ) ->x ;",
		"f : (a -> b) x -> y ;",
		"g : a -> b ;",
		"f : (a -> b",
		"f (a -> b) -> x ;",
		"f : (a -> b) (x) y ;",
		"f : ( -> ) -> x;",
		"f : (a -> b)(x) -> y ;",
		"f: ( -> ) -> ;",
		"f : ( , -> ) -> ;",
		"f : ( -> ) -> ;x",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			parsed := ParseString("test.wc", input).OK()
			recognized := g.Recognize([]byte(input))
			if parsed != recognized.Accepted {
				t.Errorf("parser OK = %v, grammar: %v", parsed, recognized)
			}
		})
	}
}
