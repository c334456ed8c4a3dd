// Package watch keeps a media types table in sync with a mime.types file.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/indigo-web/mediatype"
	"github.com/indigo-web/mediatype/internal/logger"
	"github.com/indigo-web/mediatype/internal/metric"
)

const (
	logSender    = "watch"
	debounceTime = 100 * time.Millisecond
)

// Source binds a table to the mime.types file it is populated from.
type Source struct {
	Table *mediatype.Table
	Path  string
}

// Reload parses the whole file first and replaces the table content only if it succeeded,
// so a broken or missing file never leaves the table half-populated.
func (s Source) Reload() error {
	entries, err := parseFile(s.Path)
	metric.Reload(len(entries), err)
	if err != nil {
		logger.Warn(logSender, "unable to reload %q: %v", s.Path, err)
		return err
	}

	s.Table.Replace(entries)
	logger.Info(logSender, "reloaded %d media types from %q", len(entries), s.Path)

	return nil
}

func parseFile(path string) (map[string]mediatype.MediaType, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer file.Close()

	return mediatype.Parse(file)
}

// Watcher reloads the table every time its file is written or re-created. Removing the file
// keeps the last loaded content.
type Watcher struct {
	Source

	watcher *fsnotify.Watcher
	pending atomic.Bool
	fire    chan struct{}
	wg      sync.WaitGroup
}

// New starts watching the file. The table isn't reloaded initially, so it is up to the caller
// to populate it beforehand.
func New(table *mediatype.Table, path string) (*Watcher, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	// editors tend to replace files instead of writing them in place, and the file watch
	// doesn't survive this. Watching the parent directory does
	if err = fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %q: %w", path, err)
	}

	w := &Watcher{
		Source:  Source{Table: table, Path: path},
		watcher: fsw,
		fire:    make(chan struct{}, 1),
	}

	w.wg.Add(1)
	go w.loop()
	logger.Debug(logSender, "watching %q", path)

	return w, nil
}

// Close stops watching and waits until the watcher goroutine exits.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	w.wg.Wait()

	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != w.Path || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			w.debounce()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}

			logger.Warn(logSender, "watcher error: %v", err)
		case <-w.fire:
			_ = w.Reload()
		}
	}
}

// debounce collapses bursts of events, produced by a single save, into a single reload.
func (w *Watcher) debounce() {
	if !w.pending.CompareAndSwap(false, true) {
		return
	}

	time.AfterFunc(debounceTime, func() {
		w.pending.Store(false)

		select {
		case w.fire <- struct{}{}:
		default:
		}
	})
}
