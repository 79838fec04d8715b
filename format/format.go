package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/henry-nazare/wildcat/ast"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(defs []ast.Def) error
}

// Names lists the formats accepted by New.
var Names = []string{"text", "source", "json", "yaml"}

// New returns the encoder called name writing to w.
func New(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "", "text":
		return NewLineEncoder(w), nil
	case "source":
		return NewPrettyPrinter(w), nil
	case "json":
		return NewASTJSONEncoder(w), nil
	case "yaml":
		return NewASTYAMLEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format %q", name)
}

func write(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
