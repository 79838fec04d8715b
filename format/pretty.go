package format

import (
	"io"
	"strings"

	"github.com/henry-nazare/wildcat/ast"
)

// PrettyPrinter writes definitions back as source text, one per line, in
// a canonical layout that parses to the same tree.
type PrettyPrinter struct {
	w    io.Writer
	defs []ast.Def
}

func NewPrettyPrinter(w io.Writer) *PrettyPrinter {
	return &PrettyPrinter{w: w}
}

func (p *PrettyPrinter) Encode(defs []ast.Def) error {
	p.defs = defs
	return write(p.w, p)
}

func (p *PrettyPrinter) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, def := range p.defs {
		p.printDef(&sb, def)
		sb.WriteByte('\n')
	}
	return []byte(sb.String()), nil
}

// Head renders the name, signature and arguments of def as they are
// written in source.
func Head(def ast.Def) string {
	var sb strings.Builder
	printHead(&sb, def)
	return sb.String()
}

func (p *PrettyPrinter) printDef(sb *strings.Builder, def ast.Def) {
	printHead(sb, def)
	sb.WriteString(" ->")
	if len(def.Body) > 0 {
		sb.WriteString(" ")
		sb.WriteString(joinLeaves(def.Body))
	}
	sb.WriteString(" ;")
}

func printHead(sb *strings.Builder, def ast.Def) {
	sb.WriteString(string(def.Name))
	sb.WriteString(" : ")
	printTypeFn(sb, def.Signature)
	if len(def.Args) > 0 {
		sb.WriteString(" (")
		for i, c := range def.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(joinLeaves(c))
		}
		sb.WriteString(")")
	}
}

// An empty side leaves a single space, as in "( -> )".
func printTypeFn(sb *strings.Builder, fn ast.TypeFn) {
	sb.WriteString("(")
	for i, c := range fn.Inputs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(joinLeaves(c))
	}
	sb.WriteString(" ->")
	if len(fn.Output) == 0 {
		sb.WriteString(" )")
		return
	}
	sb.WriteString(" ")
	sb.WriteString(joinLeaves(fn.Output))
	sb.WriteString(")")
}

func joinLeaves[T ~string](items []T) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = string(item)
	}
	return strings.Join(parts, " ")
}
