package materials

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/sasha-s/go-deadlock"

	"github.com/milk9111/tilebrush/autoborder"
)

// Library owns the current material Set and swaps it atomically on reload.
// Readers take a Snapshot and keep using it for a whole gesture.
type Library struct {
	mu       deadlock.RWMutex
	dir      string
	files    []string
	set      *Set
	warnings autoborder.Warnings
	gen      int
}

// NewLibrary reads files from dir, falling back to the embedded defaults
// per file. An empty file list loads DefaultFiles.
func NewLibrary(dir string, files ...string) (*Library, error) {
	if len(files) == 0 {
		files = DefaultFiles
	}
	l := &Library{dir: dir, files: files}
	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

// Reload re-reads every file into a fresh Set. On error the previous Set
// stays current.
func (l *Library) Reload() error {
	b := newBuilder()
	for _, name := range l.files {
		data, err := Load(l.dir, name)
		if err != nil {
			return fmt.Errorf("materials: load %s: %w", name, err)
		}
		if err := b.parse(name, data); err != nil {
			return err
		}
	}
	set, warnings, err := b.finish()
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.set = set
	l.warnings = warnings
	l.gen++
	gen := l.gen
	l.mu.Unlock()

	for _, w := range warnings {
		log.Printf("materials: warning: %s", w)
	}
	log.Printf("materials: generation %d: %d borders, %d brushes, %d warnings", gen, set.Borders.Len(), set.Brushes.Len(), len(warnings))
	return nil
}

// Snapshot returns the current Set.
func (l *Library) Snapshot() *Set {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.set
}

// Warnings returns the problems reported by the last successful load.
func (l *Library) Warnings() autoborder.Warnings {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append(autoborder.Warnings(nil), l.warnings...)
}

// Generation counts successful loads.
func (l *Library) Generation() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.gen
}

// Watches reports whether a changed path belongs to this library.
func (l *Library) Watches(path string) bool {
	if l.dir == "" {
		return false
	}
	for _, name := range l.files {
		if filepath.Clean(path) == filepath.Clean(diskMaterialPath(l.dir, cleanMaterialPath(name))) {
			return true
		}
	}
	return false
}

// Follow reloads the library whenever w reports one of its files changed,
// calling onReload after each successful reload. It returns when ctx is done
// or w is closed.
func (l *Library) Follow(ctx context.Context, w *Watcher, onReload func(*Set)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !l.Watches(path) {
				continue
			}
			if err := l.Reload(); err != nil {
				log.Printf("materials: reload after %s: %v", path, err)
				continue
			}
			if onReload != nil {
				onReload(l.Snapshot())
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("materials: watch: %v", err)
		}
	}
}
