// Package watch rebuilds the library when articles or the manifest
// change on disk. Rapid edits to the same topic collapse into one
// rebuild, and a rebuild that was overtaken by a newer edit is
// discarded instead of notifying viewers with stale content.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/socratesone/knowledge-navigator/internal/config"
	"github.com/socratesone/knowledge-navigator/internal/session"
	"github.com/socratesone/knowledge-navigator/internal/walker"
)

// DefaultDebounce is how long the watcher waits after the last change
// before rebuilding.
const DefaultDebounce = 300 * time.Millisecond

// Watcher observes the content directory and triggers rebuilds.
type Watcher struct {
	contentDir string
	manifest   string
	sess       *session.Session
	rebuild    func(context.Context) error
	Debounce   time.Duration

	fw *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a watcher over cfg's content directory. rebuild is called
// after changes settle; when it completes without being overtaken by a
// newer change, the session's commit hooks fire.
func New(cfg *config.Config, sess *session.Session, rebuild func(context.Context) error) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		contentDir: cfg.ContentDir,
		manifest:   filepath.Base(cfg.ManifestFile()),
		sess:       sess,
		rebuild:    rebuild,
		Debounce:   DefaultDebounce,
		fw:         fw,
	}

	if err := w.addRecursive(cfg.ContentDir); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

// addRecursive watches dir and every non-excluded subdirectory.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		for _, excl := range walker.DefaultExcludes {
			if strings.EqualFold(d.Name(), excl) {
				return filepath.SkipDir
			}
		}
		if err := w.fw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// Start processes filesystem events until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	defer w.fw.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	// New directories need their own watch.
	if event.Op.Has(fsnotify.Create) {
		if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
			_ = w.addRecursive(event.Name)
			return
		}
	}

	name := filepath.Base(event.Name)
	isArticle := strings.HasSuffix(strings.ToLower(name), ".md")
	isManifest := name == w.manifest
	if !isArticle && !isManifest {
		return
	}
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return
	}

	slug := strings.TrimSuffix(name, filepath.Ext(name))
	if isManifest {
		slug = "" // manifest edits supersede any in-flight topic rebuild
	}

	w.schedule(ctx, slug)
}

// schedule records the change and (re)arms the debounce timer. Each new
// change makes the previously issued rebuild token stale.
func (w *Watcher) schedule(ctx context.Context, slug string) {
	tok := w.sess.Begin(slug)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.Debounce, func() {
		w.fire(ctx, tok)
	})
}

// fire runs one rebuild for the given token. The result is kept only if
// no newer change arrived while rebuilding.
func (w *Watcher) fire(ctx context.Context, tok session.Token) {
	if ctx.Err() != nil {
		return
	}

	if err := w.rebuild(ctx); err != nil {
		log.Printf("watch: rebuild after %q changed: %v", tok.TopicID(), err)
		return
	}

	if !w.sess.Commit(tok) {
		log.Printf("watch: discarding stale rebuild for %q", tok.TopicID())
	}
}
