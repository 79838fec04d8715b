package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/henry-nazare/wildcat/parser"
	"github.com/henry-nazare/wildcat/source"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateFile(t *testing.T) {
	w := New(".", []string{".wc"})
	f := w.UpdateFile("a.wc", []byte("f : (a -> b) -> x ;\ng : a -> b ;\n"))

	if len(f.Defs) != 1 || f.Defs[0].Name != "f" {
		t.Errorf("Defs = %v", f.Defs)
	}
	if len(f.Diagnostics) != 1 || f.Diagnostics[0].Kind != parser.KindExpected {
		t.Errorf("Diagnostics = %+v", f.Diagnostics)
	}
	if w.GetFile("a.wc") != f {
		t.Errorf("GetFile did not return the stored file")
	}

	f = w.UpdateFile("a.wc", []byte("g : ( -> ) -> ;"))
	if len(f.Diagnostics) != 0 || w.GetFile("a.wc").Defs[0].Name != "g" {
		t.Errorf("update did not replace the file")
	}

	w.RemoveFile("a.wc")
	if w.GetFile("a.wc") != nil {
		t.Errorf("file survived RemoveFile")
	}
}

func TestDefinition(t *testing.T) {
	w := New(".", []string{".wc"})
	w.UpdateFile("b.wc", []byte("dup : ( -> ) -> b ;\nonly : ( -> ) -> ;"))
	w.UpdateFile("a.wc", []byte("dup : ( -> ) -> a ;"))

	files := w.Files()
	if len(files) != 2 || files[0].Path != "a.wc" || files[1].Path != "b.wc" {
		t.Fatalf("Files() not sorted by path")
	}

	f, def, ok := w.Definition("dup")
	if !ok || f.Path != "a.wc" || def.Body[0] != "a" {
		t.Errorf("Definition(dup) = %v %v %v", f, def, ok)
	}
	if _, _, ok := w.Definition("missing"); ok {
		t.Errorf("found a definition that does not exist")
	}

	names := w.Names()
	if len(names) != 2 || names[0] != "dup" || names[1] != "only" {
		t.Errorf("Names() = %v", names)
	}
}

func TestWordAt(t *testing.T) {
	w := New(".", nil)
	w.UpdateFile("a.wc", []byte("f : ( -> ) -> g h+ ;"))

	tests := []struct {
		col  int
		want string
	}{
		{1, "f"},
		{2, ""},
		{15, "g"},
		{17, "h+"},
		{18, "h+"},
		{40, ""},
	}
	for _, tt := range tests {
		if got := w.WordAt("a.wc", source.Location{Line: 1, Column: tt.col}); got != tt.want {
			t.Errorf("WordAt(1:%d) = %q, want %q", tt.col, got, tt.want)
		}
	}
	if got := w.WordAt("missing.wc", source.Location{Line: 1, Column: 1}); got != "" {
		t.Errorf("WordAt on an unknown file = %q", got)
	}
}

func TestScanAll(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.wc"), "f : ( -> ) -> ;")
	writeFile(t, filepath.Join(root, "sub", "b.wc"), "g : ( -> ) -> ;")
	writeFile(t, filepath.Join(root, "notes.txt"), "not a definition")
	writeFile(t, filepath.Join(root, ".hidden", "c.wc"), "h : ( -> ) -> ;")

	w := New(root, []string{".wc"})
	if err := w.ScanAll(); err != nil {
		t.Fatal(err)
	}

	files := w.Files()
	if len(files) != 2 {
		var paths []string
		for _, f := range files {
			paths = append(paths, f.Path)
		}
		t.Fatalf("scanned %v", paths)
	}
	if _, _, ok := w.Definition("h"); ok {
		t.Errorf("scanned a hidden directory")
	}
}
