package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Watcher polls the workspace root and rescans files whose modification
// time changed. Files that disappear are removed.
type Watcher struct {
	workspace    *Workspace
	stopCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time
	// OnChange, when set, is called with the path of every file that was
	// rescanned or removed.
	OnChange func(path string)
	// Skip, when set, reports files whose content is owned by someone else,
	// such as an editor buffer. Their modification time is tracked but they
	// are not rescanned.
	Skip func(path string) bool
}

func NewWatcher(w *Workspace, pollInterval time.Duration) *Watcher {
	return &Watcher{
		workspace:    w,
		stopCh:       make(chan struct{}),
		pollInterval: pollInterval,
		modTimes:     make(map[string]time.Time),
	}
}

func (w *Watcher) Start() {
	go w.run()
}

func (w *Watcher) Stop() {
	close(w.stopCh)
}

func (w *Watcher) run() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.scan()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

// Seed records the modification time of every matching file without
// rescanning it. Call it after the workspace was scanned and before Start,
// so the first poll only picks up real changes.
func (w *Watcher) Seed() {
	w.walk(func(path string, info os.FileInfo) {
		w.modTimes[path] = info.ModTime()
	})
}

func (w *Watcher) scan() {
	currentFiles := make(map[string]bool)

	w.walk(func(path string, info os.FileInfo) {
		currentFiles[path] = true

		lastMod, known := w.modTimes[path]
		if known && !info.ModTime().After(lastMod) {
			return
		}
		w.modTimes[path] = info.ModTime()
		if w.Skip != nil && w.Skip(path) {
			return
		}
		if err := w.workspace.ScanFile(path); err != nil {
			w.workspace.log.Errorf("%s: %s", path, err)
			return
		}
		w.changed(path)
	})

	for path := range w.modTimes {
		if !currentFiles[path] {
			delete(w.modTimes, path)
			w.workspace.RemoveFile(path)
			w.changed(path)
		}
	}
}

func (w *Watcher) walk(visit func(path string, info os.FileInfo)) {
	root := w.workspace.RootDir()
	filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if w.workspace.Matches(path) {
			visit(path, info)
		}
		return nil
	})
}

func (w *Watcher) changed(path string) {
	if w.OnChange != nil {
		w.OnChange(path)
	}
}
