// Package ast defines the syntax tree produced by the parser.
//
// The set of node types is closed: Node has an unexported method, so only
// the types in this package implement it. Consumers switch on the concrete
// type (or on Kind) instead of down-casting.
package ast

import (
	"strings"

	"github.com/henry-nazare/wildcat/source"
)

type Kind int

const (
	KindID Kind = iota
	KindWord
	KindTypeID
	KindArgID
	KindBody
	KindTypeCompound
	KindTypeList
	KindArgCompound
	KindArgList
	KindTypeFn
	KindDef
)

var kindNames = map[Kind]string{
	KindID:           "id",
	KindWord:         "word",
	KindTypeID:       "type_id",
	KindArgID:        "arg_id",
	KindBody:         "body",
	KindTypeCompound: "type_compound",
	KindTypeList:     "type_list",
	KindArgCompound:  "arg_compound",
	KindArgList:      "arg_list",
	KindTypeFn:       "type_fn",
	KindDef:          "def",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Node is implemented by every syntax tree type in this package.
type Node interface {
	Kind() Kind
	String() string
	node()
}

// Leaf nodes wrap a single lexeme.
type (
	ID     string
	Word   string
	TypeID string
	ArgID  string
)

// List nodes are ordered and may be empty.
type (
	Body         []Word
	TypeCompound []TypeID
	TypeList     []TypeCompound
	ArgCompound  []ArgID
	ArgList      []ArgCompound
)

// TypeFn is the signature of a definition.
type TypeFn struct {
	Inputs TypeList
	Output TypeCompound
}

// Def is one top-level definition. Args and Body are empty when the source
// leaves them out.
type Def struct {
	Name      Word
	Signature TypeFn
	Args      ArgList
	Body      Body
	Pos       source.Location
}

func (ID) Kind() Kind           { return KindID }
func (Word) Kind() Kind         { return KindWord }
func (TypeID) Kind() Kind       { return KindTypeID }
func (ArgID) Kind() Kind        { return KindArgID }
func (Body) Kind() Kind         { return KindBody }
func (TypeCompound) Kind() Kind { return KindTypeCompound }
func (TypeList) Kind() Kind     { return KindTypeList }
func (ArgCompound) Kind() Kind  { return KindArgCompound }
func (ArgList) Kind() Kind      { return KindArgList }
func (TypeFn) Kind() Kind       { return KindTypeFn }
func (Def) Kind() Kind          { return KindDef }

func (ID) node()           {}
func (Word) node()         {}
func (TypeID) node()       {}
func (ArgID) node()        {}
func (Body) node()         {}
func (TypeCompound) node() {}
func (TypeList) node()     {}
func (ArgCompound) node()  {}
func (ArgList) node()      {}
func (TypeFn) node()       {}
func (Def) node()          {}

func (n ID) String() string     { return leaf(KindID, string(n)) }
func (n Word) String() string   { return leaf(KindWord, string(n)) }
func (n TypeID) String() string { return leaf(KindTypeID, string(n)) }
func (n ArgID) String() string  { return leaf(KindArgID, string(n)) }

func (n Body) String() string         { return list(KindBody, n) }
func (n TypeCompound) String() string { return list(KindTypeCompound, n) }
func (n TypeList) String() string     { return list(KindTypeList, n) }
func (n ArgCompound) String() string  { return list(KindArgCompound, n) }
func (n ArgList) String() string      { return list(KindArgList, n) }

func (n TypeFn) String() string {
	return "[" + KindTypeFn.String() + ", " + n.Inputs.String() + ", " + n.Output.String() + "]"
}

func (n Def) String() string {
	return "[" + KindDef.String() + ", " + n.Name.String() + ", " + n.Signature.String() +
		", " + n.Args.String() + ", " + n.Body.String() + "]"
}

// Lexeme returns the text of a leaf node and false for anything else.
func Lexeme(n Node) (string, bool) {
	switch n := n.(type) {
	case ID:
		return string(n), true
	case Word:
		return string(n), true
	case TypeID:
		return string(n), true
	case ArgID:
		return string(n), true
	}
	return "", false
}

func leaf(k Kind, s string) string {
	return "[" + k.String() + ", " + s + "]"
}

func list[T Node](k Kind, items []T) string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(k.String())
	for _, item := range items {
		b.WriteString(", ")
		b.WriteString(item.String())
	}
	b.WriteString("]")
	return b.String()
}
