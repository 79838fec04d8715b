// Package charclass defines the named character predicates used by the
// scanner. The label of a class is what diagnostics print when a run of
// that class was expected.
package charclass

import "github.com/henry-nazare/wildcat/source"

type Class struct {
	Label string
	Match func(c byte) bool
}

func (c Class) String() string {
	return c.Label
}

var (
	// Space matches the two whitespace characters of the language.
	Space = Class{Label: "space", Match: isSpace}

	// Ident matches ASCII letters, digits and the underscore.
	Ident = Class{Label: "identifier", Match: isIdent}

	// Word matches anything that is neither whitespace nor end of input.
	Word = Class{Label: "word", Match: isWord}
)

func isSpace(c byte) bool {
	return c == ' ' || c == '\n'
}

func isIdent(c byte) bool {
	return inRange('a', c, 'z') || inRange('A', c, 'Z') || inRange('0', c, '9') || c == '_'
}

func isWord(c byte) bool {
	return c != source.EOF && !isSpace(c)
}

func inRange(low, c, high byte) bool {
	return low <= c && c <= high
}
