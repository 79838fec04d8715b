package format

import (
	"encoding/json"
	"io"

	"github.com/henry-nazare/wildcat/ast"
)

type ASTJSONEncoder struct {
	w    io.Writer
	defs []ast.Def
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(defs []ast.Def) error {
	e.defs = defs
	return write(e.w, e)
}

func (e *ASTJSONEncoder) MarshalText() ([]byte, error) {
	text, err := json.MarshalIndent(defsToTree(e.defs), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(text, '\n'), nil
}

// astNode is the serialized form of a syntax tree node shared by the JSON
// and YAML encoders.
type astNode struct {
	Kind     string       `json:"kind" yaml:"kind"`
	Name     string       `json:"name,omitempty" yaml:"name,omitempty"`
	Pos      *astPosition `json:"pos,omitempty" yaml:"pos,omitempty"`
	Token    string       `json:"token,omitempty" yaml:"token,omitempty"`
	Children []*astNode   `json:"children,omitempty" yaml:"children,omitempty"`
}

type astPosition struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

func defsToTree(defs []ast.Def) []*astNode {
	out := make([]*astNode, len(defs))
	for i, def := range defs {
		out[i] = nodeToTree(def)
	}
	return out
}

func nodeToTree(n ast.Node) *astNode {
	tn := &astNode{
		Kind: n.Kind().String(),
	}

	if def, ok := n.(ast.Def); ok {
		tn.Name = string(def.Name)
		if def.Pos.Line != 0 {
			tn.Pos = &astPosition{Line: def.Pos.Line, Column: def.Pos.Column}
		}
	}

	if lexeme, ok := ast.Lexeme(n); ok {
		tn.Token = lexeme
	}

	children := ast.Children(n)
	if len(children) > 0 {
		tn.Children = make([]*astNode, len(children))
		for i, child := range children {
			tn.Children[i] = nodeToTree(child)
		}
	}

	return tn
}
