package parser

import (
	"bytes"
	_ "embed"

	"golang.org/x/exp/ebnf"
)

// GrammarStart is the start production of the embedded grammar.
const GrammarStart = "Source"

//go:embed grammar.ebnf
var grammarText []byte

// Grammar returns the definition language in EBNF. The rules in grammar.go
// implement it; wordchar is approximated by printable ASCII because EBNF has
// no complement, while the parser accepts any non-space byte in a word.
func Grammar() []byte {
	return bytes.Clone(grammarText)
}

// VerifyGrammar parses the embedded grammar and checks that every
// production is defined and reachable from GrammarStart.
func VerifyGrammar() (ebnf.Grammar, error) {
	g, err := ebnf.Parse("grammar.ebnf", bytes.NewReader(grammarText))
	if err != nil {
		return nil, err
	}
	if err := ebnf.Verify(g, GrammarStart); err != nil {
		return nil, err
	}
	return g, nil
}
