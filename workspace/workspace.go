// Package workspace keeps the parsed state of every definition file under a
// root directory and serves it to editors over the language server
// protocol.
package workspace

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/henry-nazare/wildcat/ast"
	"github.com/henry-nazare/wildcat/charclass"
	"github.com/henry-nazare/wildcat/parser"
	"github.com/henry-nazare/wildcat/source"
)

type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	exts    []string
	files   map[string]*File
	log     commonlog.Logger
}

// File is the last parsed version of one file.
type File struct {
	Path        string
	Content     []byte
	Source      *source.Source
	Defs        []ast.Def
	Diagnostics []parser.Diagnostic
	// Failed counts the definitions that did not parse.
	Failed int
}

func New(rootDir string, exts []string) *Workspace {
	return &Workspace{
		rootDir: rootDir,
		exts:    exts,
		files:   make(map[string]*File),
		log:     commonlog.GetLogger("wildcat.workspace"),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// Matches reports whether path has one of the workspace's extensions.
func (w *Workspace) Matches(path string) bool {
	return slices.Contains(w.exts, filepath.Ext(path))
}

func (w *Workspace) ScanAll() error {
	return filepath.Walk(w.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != w.rootDir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if w.Matches(path) {
			if err := w.ScanFile(path); err != nil {
				w.log.Errorf("%s: %s", path, err)
			}
		}
		return nil
	})
}

func (w *Workspace) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	w.UpdateFile(path, content)
	return nil
}

// UpdateFile parses content as the new text of path and stores the result.
func (w *Workspace) UpdateFile(path string, content []byte) *File {
	res := parser.ParseString(path, string(content))
	f := &File{
		Path:        path,
		Content:     content,
		Source:      res.Source,
		Defs:        res.Defs,
		Diagnostics: res.Diagnostics,
		Failed:      res.Failed,
	}
	w.log.Debugf("%s: %d definitions, %d diagnostics", path, len(f.Defs), len(f.Diagnostics))

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path] = f
	return f
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
}

func (w *Workspace) GetFile(path string) *File {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Files returns every file sorted by path.
func (w *Workspace) Files() []*File {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*File, 0, len(w.files))
	for _, f := range w.files {
		out = append(out, f)
	}
	slices.SortFunc(out, func(a, b *File) int {
		return strings.Compare(a.Path, b.Path)
	})
	return out
}

// Definition finds the first definition called name, searching files in
// path order.
func (w *Workspace) Definition(name string) (*File, ast.Def, bool) {
	for _, f := range w.Files() {
		for _, def := range f.Defs {
			if string(def.Name) == name {
				return f, def, true
			}
		}
	}
	return nil, ast.Def{}, false
}

// Names returns the names of all definitions, sorted and without
// duplicates.
func (w *Workspace) Names() []string {
	var names []string
	for _, f := range w.Files() {
		for _, def := range f.Defs {
			names = append(names, string(def.Name))
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// WordAt returns the word of path that covers loc, or "" when loc is on
// whitespace.
func (w *Workspace) WordAt(path string, loc source.Location) string {
	f := w.GetFile(path)
	if f == nil {
		return ""
	}
	line := f.Source.Line(loc.Line)
	i := loc.Column - 1
	if i < 0 || i >= len(line) || !charclass.Word.Match(line[i]) {
		return ""
	}
	start, end := i, i
	for start > 0 && charclass.Word.Match(line[start-1]) {
		start--
	}
	for end < len(line) && charclass.Word.Match(line[end]) {
		end++
	}
	return line[start:end]
}
