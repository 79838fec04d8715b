package parser

import (
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/henry-nazare/wildcat/ast"
	"github.com/henry-nazare/wildcat/source"
)

type Option func(*Parser)

// WithLogger replaces the package logger.
func WithLogger(log commonlog.Logger) Option {
	return func(p *Parser) {
		p.log = log
	}
}

type Parser struct {
	src *source.Source
	log commonlog.Logger
}

// Result is everything one pass over a source produced.
type Result struct {
	Source      *source.Source
	Defs        []ast.Def
	Diagnostics []Diagnostic
	// Failed counts the definitions that did not parse.
	Failed int
}

// OK reports whether every definition parsed.
func (r *Result) OK() bool {
	return r.Failed == 0
}

func New(src *source.Source, opts ...Option) *Parser {
	p := &Parser{
		src: src,
		log: commonlog.GetLogger("wildcat.parser"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseString parses text as if read from a file called name.
func ParseString(name, text string, opts ...Option) *Result {
	return New(source.New(name, text), opts...).Parse()
}

// ParseFile reads and parses the file at path.
func ParseFile(path string, opts ...Option) (*Result, error) {
	src, err := source.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}
	return New(src, opts...).Parse(), nil
}

// Parse parses definitions until the end of input. A definition that fails
// is reported and skipped; parsing continues after it.
func (p *Parser) Parse() *Result {
	res := &Result{Source: p.src}
	s := NewState(p.src)
	for {
		s = ws(s)
		if s.AtEOF() {
			break
		}

		start := s.Location()
		next, def := Bind(s.At(start), definition)
		if next.Valid() {
			p.log.Debugf("%s:%v: parsed definition %q", p.src.Filename(), start, def.Name)
			res.Defs = append(res.Defs, def)
			s = next.At(next.Location())
			continue
		}

		res.Failed++
		if next.Errors().Len() > 0 {
			res.Diagnostics = append(res.Diagnostics, expectedDiagnostic(next.Errors()))
		}

		r := Recover(s.At(start), next.Location())
		if r.State == Unterminated {
			res.Diagnostics = append(res.Diagnostics, unterminatedDiagnostic(r.Start))
		}
		p.log.Debugf("%s:%v: definition failed, %s, resuming at %v", p.src.Filename(), start, r.State, r.Resume)
		s = s.At(r.Resume)
	}
	return res
}
