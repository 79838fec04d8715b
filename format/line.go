package format

import (
	"io"
	"strings"

	"github.com/henry-nazare/wildcat/ast"
)

// LineEncoder writes one definition per line in bracket form.
type LineEncoder struct {
	w    io.Writer
	defs []ast.Def
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(defs []ast.Def) error {
	e.defs = defs
	return write(e.w, e)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, def := range e.defs {
		sb.WriteString(def.String())
		sb.WriteByte('\n')
	}
	return []byte(sb.String()), nil
}
