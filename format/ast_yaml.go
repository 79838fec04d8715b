package format

import (
	"bytes"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/henry-nazare/wildcat/ast"
)

type ASTYAMLEncoder struct {
	w    io.Writer
	defs []ast.Def
}

func NewASTYAMLEncoder(w io.Writer) *ASTYAMLEncoder {
	return &ASTYAMLEncoder{w: w}
}

func (e *ASTYAMLEncoder) Encode(defs []ast.Def) error {
	e.defs = defs
	return write(e.w, e)
}

func (e *ASTYAMLEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(defsToTree(e.defs)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
