package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/henry-nazare/wildcat/source"
)

type DiagnosticKind int

const (
	// KindExpected reports the tokens that would have let a definition
	// continue at some location.
	KindExpected DiagnosticKind = iota
	// KindUnterminated reports a definition whose terminator was never
	// found.
	KindUnterminated
)

// Diagnostic is one reported syntax error.
type Diagnostic struct {
	Kind     DiagnosticKind
	Loc      source.Location
	Expected []string
	Got      byte
}

func expectedDiagnostic(errs ErrorSet) Diagnostic {
	group := errs.Leading()
	d := Diagnostic{Kind: KindExpected, Loc: group[0].Loc, Got: group[0].Got}
	for _, err := range group {
		d.Expected = append(d.Expected, err.Expected)
	}
	return d
}

func unterminatedDiagnostic(loc source.Location) Diagnostic {
	return Diagnostic{Kind: KindUnterminated, Loc: loc}
}

// Message returns the text that follows "error:".
func (d Diagnostic) Message() string {
	if d.Kind == KindUnterminated {
		return "unterminated definition"
	}
	return "expected " + joinLabels(d.Expected) + ", got '" + string([]byte{d.Got}) + "'"
}

func joinLabels(labels []string) string {
	switch len(labels) {
	case 0:
		return ""
	case 1:
		return labels[0]
	case 2:
		return labels[0] + " or " + labels[1]
	}
	return strings.Join(labels[:len(labels)-1], ", ") + ", or " + labels[len(labels)-1]
}

// ColorMode selects when the "error:" label is colored.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a mode given on the command line or in a
// configuration file.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	case "":
		return ColorAuto, nil
	}
	return "", fmt.Errorf("unknown color mode %q (expected auto, always or never)", s)
}

// Printer writes diagnostics in the compiler style:
//
//	file:line:col: error: message
//	source line
//	    ^
type Printer struct {
	w   io.Writer
	out *termenv.Output
}

func NewPrinter(w io.Writer, mode ColorMode) *Printer {
	var opts []termenv.OutputOption
	switch mode {
	case ColorAlways:
		opts = append(opts, termenv.WithProfile(termenv.ANSI))
	case ColorNever:
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	return &Printer{w: w, out: termenv.NewOutput(w, opts...)}
}

func (p *Printer) Print(src *source.Source, d Diagnostic) error {
	label := p.out.String("error:").Foreground(termenv.ANSIRed).String()
	caret := strings.Repeat(" ", max(d.Loc.Column-1, 0)) + "^"
	_, err := fmt.Fprintf(p.w, "%s:%d:%d: %s %s\n%s\n%s\n",
		src.Filename(), d.Loc.Line, d.Loc.Column, label, d.Message(),
		src.Line(d.Loc.Line), caret)
	return err
}

// PrintAll prints diagnostics in order and stops at the first write error.
func (p *Printer) PrintAll(src *source.Source, diags []Diagnostic) error {
	for _, d := range diags {
		if err := p.Print(src, d); err != nil {
			return err
		}
	}
	return nil
}
