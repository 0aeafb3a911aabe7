// Package watch signals when template or styles files change, with
// debouncing, so a stylesheet can be rebuilt.
package watch

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher monitors the directories behind a set of scan patterns.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	patterns  []string
	recursive []string // bases of patterns that reach into subdirectories
	files     map[string]bool
	debounce  time.Duration
	log       *zap.Logger
	onChange  chan struct{}
	done      chan struct{}
}

// Config holds watcher configuration options.
type Config struct {
	Patterns    []string // doublestar patterns, e.g. "**/*.templ"
	Files       []string // exact paths, e.g. the styles file
	DebounceDur time.Duration
}

// DefaultConfig watches patterns and files with a short debounce.
func DefaultConfig(patterns []string, files ...string) Config {
	return Config{
		Patterns:    patterns,
		Files:       files,
		DebounceDur: 200 * time.Millisecond,
	}
}

// New creates a watcher. Nothing is watched until Start.
func New(cfg Config, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	files := make(map[string]bool, len(cfg.Files))
	for _, f := range cfg.Files {
		files[filepath.Clean(f)] = true
	}

	var recursive []string
	for _, pattern := range cfg.Patterns {
		if base, ok := recursiveBase(pattern); ok {
			recursive = append(recursive, base)
		}
	}

	return &Watcher{
		fsWatcher: fsw,
		patterns:  cfg.Patterns,
		recursive: recursive,
		files:     files,
		debounce:  cfg.DebounceDur,
		log:       log.Named("watch"),
		onChange:  make(chan struct{}, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching. The returned channel receives a signal after a
// burst of relevant changes settles. Directories created later under a
// recursive pattern are watched as they appear.
func (w *Watcher) Start() (<-chan struct{}, error) {
	dirs, err := watchDirs(w.patterns, w.fileList())
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.fsWatcher.Add(dir); err != nil {
			return nil, fmt.Errorf("watching directory %s: %w", dir, err)
		}
	}
	w.log.Debug("watching", zap.Strings("dirs", dirs))

	go w.loop()

	return w.onChange, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) fileList() []string {
	files := make([]string, 0, len(w.files))
	for f := range w.files {
		files = append(files, f)
	}
	return files
}

// loop processes file system events with debouncing.
func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		pending bool
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Create != 0 {
				w.watchNewDir(event.Name)
			}
			if !w.isRelevantEvent(event) {
				continue
			}
			w.log.Debug("change", zap.String("file", event.Name), zap.String("op", event.Op.String()))

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			pending = true

		case <-func() <-chan time.Time {
			if timer != nil {
				return timer.C
			}
			return nil
		}():
			if pending {
				// drop if a rebuild is already queued
				select {
				case w.onChange <- struct{}{}:
				default:
				}
				pending = false
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// watchNewDir adds a directory created under a recursive pattern base,
// along with anything already inside it.
func (w *Watcher) watchNewDir(path string) {
	path = filepath.Clean(path)
	if !w.coveredByRecursive(path) {
		return
	}

	err := walkDirs(path, func(dir string) {
		if err := w.fsWatcher.Add(dir); err != nil {
			w.log.Warn("watch failed", zap.String("dir", dir), zap.Error(err))
			return
		}
		w.log.Debug("watching new directory", zap.String("dir", dir))
	})
	if err != nil && !errors.Is(err, errNotDir) && !errors.Is(err, fs.ErrNotExist) {
		w.log.Warn("watch failed", zap.String("dir", path), zap.Error(err))
	}
}

func (w *Watcher) coveredByRecursive(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	for _, base := range w.recursive {
		rel, err := filepath.Rel(base, path)
		if err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			return true
		}
	}
	return false
}

// isRelevantEvent reports whether the event touches a watched file.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	name := filepath.Clean(event.Name)
	if w.files[name] {
		return true
	}
	for _, pattern := range w.patterns {
		if ok, _ := doublestar.PathMatch(filepath.Clean(pattern), name); ok {
			return true
		}
	}
	return false
}

// watchDirs lists the directories to watch: the static base of every
// pattern, every non-hidden directory below it when the pattern recurses,
// and the directory of every file.
func watchDirs(patterns, files []string) ([]string, error) {
	seen := make(map[string]bool)
	add := func(dir string) {
		seen[filepath.Clean(dir)] = true
	}

	for _, pattern := range patterns {
		base, ok := recursiveBase(pattern)
		if !ok {
			add(base)
			continue
		}
		if err := walkDirs(base, add); err != nil {
			return nil, fmt.Errorf("walking %s: %w", base, err)
		}
	}

	for _, f := range files {
		add(filepath.Dir(f))
	}

	dirs := make([]string, 0, len(seen))
	for dir := range seen {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs, nil
}

var errNotDir = errors.New("not a directory")

// recursiveBase returns the static directory of pattern and whether the
// rest of the pattern reaches into subdirectories.
func recursiveBase(pattern string) (string, bool) {
	base, rest := doublestar.SplitPattern(filepath.ToSlash(pattern))
	return filepath.Clean(filepath.FromSlash(base)), strings.Contains(rest, "/")
}

// walkDirs calls add for root and every non-hidden directory below it.
func walkDirs(root string, add func(dir string)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			if path == root {
				return errNotDir
			}
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		add(path)
		return nil
	})
}
