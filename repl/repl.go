// Package repl reads definitions interactively and shows how they parse.
package repl

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/lmorg/readline"
	"github.com/tliron/commonlog"

	"github.com/henry-nazare/wildcat/charclass"
	"github.com/henry-nazare/wildcat/format"
	"github.com/henry-nazare/wildcat/parser"
)

const (
	Prompt             = "wildcat> "
	ContinuationPrompt = "...> "
	sourceName         = "<repl>"
)

type REPL struct {
	out     io.Writer
	printer *parser.Printer
	encoder format.Encoder
	log     commonlog.Logger

	pending strings.Builder
	names   []string
}

// New returns a REPL that prints definitions to out and diagnostics to
// errOut.
func New(out, errOut io.Writer, color parser.ColorMode) *REPL {
	return &REPL{
		out:     out,
		printer: parser.NewPrinter(errOut, color),
		encoder: format.NewLineEncoder(out),
		log:     commonlog.GetLogger("wildcat.repl"),
	}
}

// Run reads lines until :quit or until the line editor fails, which
// includes end of input and Ctrl-C.
func (r *REPL) Run() error {
	rl := readline.NewInstance()
	rl.TabCompleter = r.complete
	for {
		rl.SetPrompt(r.prompt())
		line, err := rl.Readline()
		if err != nil {
			r.log.Debugf("readline: %s", err)
			return nil
		}
		if r.Feed(line) {
			return nil
		}
	}
}

func (r *REPL) prompt() string {
	if r.pending.Len() > 0 {
		return ContinuationPrompt
	}
	return Prompt
}

// Feed handles one line of input and reports whether the session should
// end. Lines are buffered until the buffer ends with a terminator; the
// buffer is then parsed as a whole.
func (r *REPL) Feed(line string) bool {
	if r.pending.Len() == 0 {
		switch strings.TrimSpace(line) {
		case "":
			return false
		case ":quit", ":q":
			return true
		case ":defs":
			for _, name := range r.names {
				fmt.Fprintln(r.out, name)
			}
			return false
		}
	}
	if strings.TrimSpace(line) == ":clear" {
		r.pending.Reset()
		return false
	}

	r.pending.WriteString(line)
	r.pending.WriteByte('\n')
	if !terminated(r.pending.String()) {
		return false
	}

	text := r.pending.String()
	r.pending.Reset()
	r.eval(text)
	return false
}

func (r *REPL) eval(text string) {
	res := parser.ParseString(sourceName, text)
	if err := r.encoder.Encode(res.Defs); err != nil {
		r.log.Errorf("encode: %s", err)
	}
	if err := r.printer.PrintAll(res.Source, res.Diagnostics); err != nil {
		r.log.Errorf("print: %s", err)
	}
	for _, def := range res.Defs {
		r.define(string(def.Name))
	}
	r.log.Debugf("%d definitions, %d failed", len(res.Defs), res.Failed)
}

func (r *REPL) define(name string) {
	i, found := slices.BinarySearch(r.names, name)
	if !found {
		r.names = slices.Insert(r.names, i, name)
	}
}

// terminated reports whether text ends with a ";" that stands alone as a
// word.
func terminated(text string) bool {
	text = strings.TrimRight(text, " \n")
	if !strings.HasSuffix(text, ";") {
		return false
	}
	return len(text) == 1 || charclass.Space.Match(text[len(text)-2])
}

// complete offers the names defined so far for the word under the cursor.
func (r *REPL) complete(line []rune, pos int, dtx readline.DelayedTabContext) (string, []string, map[string]string, readline.TabDisplayType) {
	prefix := currentWord(string(line[:pos]))
	var suggestions []string
	for _, name := range r.names {
		if strings.HasPrefix(name, prefix) {
			suggestions = append(suggestions, name[len(prefix):])
		}
	}
	return prefix, suggestions, nil, readline.TabDisplayGrid
}

func currentWord(text string) string {
	i := strings.LastIndexFunc(text, func(c rune) bool {
		return c < 0x80 && charclass.Space.Match(byte(c))
	})
	return text[i+1:]
}
