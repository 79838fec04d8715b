package workspace

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/henry-nazare/wildcat/source"
)

func TestToProtocolDiagnostics(t *testing.T) {
	w := New(".", nil)
	f := w.UpdateFile("a.wc", []byte("f : (a -> b) x -> y ;\ng : (a -> b"))

	diags := toProtocolDiagnostics(f)
	if len(diags) != 3 {
		t.Fatalf("got %d diagnostics: %+v", len(diags), diags)
	}

	first := diags[0]
	if first.Range.Start.Line != 0 || first.Range.Start.Character != 13 || first.Range.End.Character != 14 {
		t.Errorf("range = %+v", first.Range)
	}
	if first.Message != `expected "->" or '(', got 'x'` {
		t.Errorf("message = %q", first.Message)
	}
	if first.Severity == nil || *first.Severity != protocol.DiagnosticSeverityError {
		t.Errorf("severity = %v", first.Severity)
	}

	last := diags[2]
	if last.Message != "unterminated definition" || last.Range.Start.Line != 1 || last.Range.Start.Character != 0 {
		t.Errorf("unterminated diagnostic = %+v", last)
	}
}

func TestDocumentSymbols(t *testing.T) {
	w := New(".", nil)
	f := w.UpdateFile("a.wc", []byte("add : (int, int -> int) (a, b) -> a b + ;\n  neg : (int -> int) -> 0 swap - ;"))

	symbols := documentSymbols(f)
	if len(symbols) != 2 {
		t.Fatalf("got %d symbols", len(symbols))
	}
	if symbols[0].Name != "add" || symbols[0].Kind != protocol.SymbolKindFunction {
		t.Errorf("symbol = %+v", symbols[0])
	}
	if *symbols[0].Detail != "add : (int, int -> int) (a, b)" {
		t.Errorf("detail = %q", *symbols[0].Detail)
	}
	r := symbols[1].Range
	if r.Start.Line != 1 || r.Start.Character != 2 || r.End.Character != 5 {
		t.Errorf("range = %+v", r)
	}
}

func TestPositions(t *testing.T) {
	loc := source.Location{Line: 3, Column: 7}
	pos := toPosition(loc)
	if pos.Line != 2 || pos.Character != 6 {
		t.Errorf("toPosition = %+v", pos)
	}
	if fromPosition(pos) != loc {
		t.Errorf("fromPosition = %v", fromPosition(pos))
	}
}

func TestURIs(t *testing.T) {
	path, err := uriToPath("file:///tmp/defs/a.wc")
	if err != nil || path != "/tmp/defs/a.wc" {
		t.Errorf("uriToPath = %q, %v", path, err)
	}
	if path, _ := uriToPath("untitled:1"); path != "untitled:1" {
		t.Errorf("uriToPath kept %q", path)
	}

	uri := pathToURI("/tmp/defs/a.wc")
	if uri != "file:///tmp/defs/a.wc" {
		t.Errorf("pathToURI = %q", uri)
	}
	if !strings.HasPrefix(pathToURI("a.wc"), "file:///") {
		t.Errorf("relative paths should become absolute URIs")
	}
}

func TestOpenBufferSurvivesPolling(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.wc")
	writeFile(t, path, "f : ( -> ) -> ;")

	ls := NewLSPServer("test", []string{".wc"}, time.Hour)
	ls.workspace = New(root, []string{".wc"})
	if err := ls.workspace.ScanAll(); err != nil {
		t.Fatal(err)
	}

	err := ls.textDocumentDidOpen(nil, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        pathToURI(path),
			LanguageID: "wildcat",
			Version:    1,
			Text:       "g : ( -> ) -> ;",
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	watcher := NewWatcher(ls.workspace, time.Hour)
	watcher.Skip = ls.isOpen
	watcher.scan()
	if _, _, ok := ls.workspace.Definition("g"); !ok {
		t.Fatalf("open buffer was replaced by the file on disk")
	}

	err = ls.textDocumentDidClose(nil, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: pathToURI(path)},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, _, ok := ls.workspace.Definition("f"); !ok {
		t.Errorf("closing the buffer did not reload the file from disk")
	}
}
