package workspace

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/henry-nazare/wildcat/ast"
	"github.com/henry-nazare/wildcat/format"
	"github.com/henry-nazare/wildcat/source"
)

const lsName = "wildcat"

type LSPServer struct {
	workspace    *Workspace
	watcher      *Watcher
	handler      protocol.Handler
	server       *server.Server
	version      string
	exts         []string
	pollInterval time.Duration
	log          commonlog.Logger

	mu     sync.Mutex
	notify glsp.NotifyFunc
	// open holds the files the client has open; their content comes from
	// the client, not the disk.
	open map[string]bool
}

// NewLSPServer returns a server that treats files with one of exts as
// definition files. When pollInterval is positive the workspace root is
// also watched for changes made outside the editor.
func NewLSPServer(version string, exts []string, pollInterval time.Duration) *LSPServer {
	ls := &LSPServer{
		version:      version,
		exts:         exts,
		pollInterval: pollInterval,
		log:          commonlog.GetLogger("wildcat.lsp"),
		open:         make(map[string]bool),
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
		TextDocumentDefinition:     ls.textDocumentDefinition,
		TextDocumentHover:          ls.textDocumentHover,
		TextDocumentCompletion:     ls.textDocumentCompletion,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}
	ls.log.Infof("workspace root %s", rootDir)

	ls.workspace = New(rootDir, ls.exts)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.mu.Lock()
	ls.notify = ctx.Notify
	ls.mu.Unlock()

	if err := ls.workspace.ScanAll(); err != nil {
		ls.log.Errorf("scan %s: %s", ls.workspace.RootDir(), err)
	}
	for _, f := range ls.workspace.Files() {
		ls.publish(f.Path)
	}

	if ls.pollInterval > 0 {
		ls.watcher = NewWatcher(ls.workspace, ls.pollInterval)
		ls.watcher.OnChange = ls.publish
		ls.watcher.Skip = ls.isOpen
		ls.watcher.Seed()
		ls.watcher.Start()
	}
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.watcher != nil {
		ls.watcher.Stop()
		ls.watcher = nil
	}
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.setOpen(path, true)
	ls.workspace.UpdateFile(path, []byte(params.TextDocument.Text))
	ls.publish(path)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.workspace.UpdateFile(path, []byte(textChange.Text))
			ls.publish(path)
		}
	}
	return nil
}

// An unsaved buffer is discarded on close, so the file is read back from
// disk.
func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.setOpen(path, false)
	if err := ls.workspace.ScanFile(path); err != nil {
		ls.log.Debugf("%s: %s", path, err)
		ls.workspace.RemoveFile(path)
	}
	ls.publish(path)
	return nil
}

func (ls *LSPServer) setOpen(path string, open bool) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if open {
		ls.open[path] = true
	} else {
		delete(ls.open, path)
	}
}

func (ls *LSPServer) isOpen(path string) bool {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.open[path]
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.workspace.UpdateFile(path, []byte(*params.Text))
	} else if err := ls.workspace.ScanFile(path); err != nil {
		ls.log.Errorf("%s: %s", path, err)
		return nil
	}
	ls.publish(path)
	return nil
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	f := ls.workspace.GetFile(path)
	if f == nil {
		return nil, nil
	}
	return documentSymbols(f), nil
}

func (ls *LSPServer) textDocumentDefinition(ctx *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	f, def, ok := ls.definitionAt(params.TextDocument.URI, params.Position)
	if !ok {
		return nil, nil
	}
	return protocol.Location{
		URI:   pathToURI(f.Path),
		Range: nameRange(def),
	}, nil
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	_, def, ok := ls.definitionAt(params.TextDocument.URI, params.Position)
	if !ok {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: "```\n" + format.Head(def) + "\n```",
		},
	}, nil
}

func (ls *LSPServer) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	var items []protocol.CompletionItem
	kind := protocol.CompletionItemKindFunction
	for _, name := range ls.workspace.Names() {
		_, def, _ := ls.workspace.Definition(name)
		detail := format.Head(def)
		items = append(items, protocol.CompletionItem{
			Label:  name,
			Kind:   &kind,
			Detail: &detail,
		})
	}
	return items, nil
}

func (ls *LSPServer) definitionAt(uri protocol.DocumentUri, pos protocol.Position) (*File, ast.Def, bool) {
	path, err := uriToPath(uri)
	if err != nil {
		return nil, ast.Def{}, false
	}
	word := ls.workspace.WordAt(path, fromPosition(pos))
	if word == "" {
		return nil, ast.Def{}, false
	}
	return ls.workspace.Definition(word)
}

// publish sends the diagnostics of path to the client. An empty list is
// sent too, so that fixed errors disappear.
func (ls *LSPServer) publish(path string) {
	ls.mu.Lock()
	notify := ls.notify
	ls.mu.Unlock()
	if notify == nil {
		return
	}

	diagnostics := []protocol.Diagnostic{}
	if f := ls.workspace.GetFile(path); f != nil {
		diagnostics = toProtocolDiagnostics(f)
	}
	notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         pathToURI(path),
		Diagnostics: diagnostics,
	})
}

func toProtocolDiagnostics(f *File) []protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	src := lsName
	out := make([]protocol.Diagnostic, 0, len(f.Diagnostics))
	for _, d := range f.Diagnostics {
		start := toPosition(d.Loc)
		end := start
		end.Character++
		out = append(out, protocol.Diagnostic{
			Range:    protocol.Range{Start: start, End: end},
			Severity: &severity,
			Source:   &src,
			Message:  d.Message(),
		})
	}
	return out
}

func documentSymbols(f *File) []protocol.DocumentSymbol {
	out := make([]protocol.DocumentSymbol, 0, len(f.Defs))
	for _, def := range f.Defs {
		detail := format.Head(def)
		out = append(out, protocol.DocumentSymbol{
			Name:           string(def.Name),
			Detail:         &detail,
			Kind:           protocol.SymbolKindFunction,
			Range:          nameRange(def),
			SelectionRange: nameRange(def),
		})
	}
	return out
}

func nameRange(def ast.Def) protocol.Range {
	start := toPosition(def.Pos)
	end := start
	end.Character += protocol.UInteger(len(def.Name))
	return protocol.Range{Start: start, End: end}
}

// LSP positions are 0-based.
func toPosition(loc source.Location) protocol.Position {
	return protocol.Position{
		Line:      protocol.UInteger(max(loc.Line-1, 0)),
		Character: protocol.UInteger(max(loc.Column-1, 0)),
	}
}

func fromPosition(pos protocol.Position) source.Location {
	return source.Location{Line: int(pos.Line) + 1, Column: int(pos.Character) + 1}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) protocol.DocumentUri {
	if strings.Contains(path, "://") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
