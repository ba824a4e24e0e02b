package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/socratesone/knowledge-navigator/internal/config"
	"github.com/socratesone/knowledge-navigator/internal/session"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "angular-signals.md"), []byte("# Signals\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg := config.DefaultConfig()
	cfg.ContentDir = dir
	return cfg
}

func TestWatcherRebuildsOnWrite(t *testing.T) {
	cfg := testConfig(t)
	sess := session.New()

	rebuilds := make(chan struct{}, 8)
	commits := make(chan string, 8)
	sess.OnCommit(func(topicID string) { commits <- topicID })

	w, err := New(cfg, sess, func(context.Context) error {
		rebuilds <- struct{}{}
		return nil
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w.Debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Start(ctx)
	}()

	// Settle, then touch the article.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(cfg.ContentDir, "angular-signals.md"), []byte("# Signals\n\nMore.\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case <-rebuilds:
	case <-time.After(3 * time.Second):
		t.Fatal("rebuild never ran")
	}

	select {
	case topicID := <-commits:
		if topicID != "angular-signals" {
			t.Errorf("committed topic = %q, want angular-signals", topicID)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("commit hook never fired")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcherIgnoresNonArticles(t *testing.T) {
	cfg := testConfig(t)
	sess := session.New()

	var rebuilds atomic.Int32
	w, err := New(cfg, sess, func(context.Context) error {
		rebuilds.Add(1)
		return nil
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w.Debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Start(ctx) }()

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(cfg.ContentDir, "scratch.txt"), []byte("noise"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	time.Sleep(300 * time.Millisecond)
	if n := rebuilds.Load(); n != 0 {
		t.Errorf("rebuilds = %d, want 0 for non-article change", n)
	}
}

func TestStaleRebuildDiscarded(t *testing.T) {
	cfg := testConfig(t)
	sess := session.New()

	var commits atomic.Int32
	sess.OnCommit(func(string) { commits.Add(1) })

	w, err := New(cfg, sess, func(context.Context) error { return nil })
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.fw.Close()

	ctx := context.Background()
	tok1 := sess.Begin("angular-signals")
	tok2 := sess.Begin("angular-signals")

	// The earlier attempt was overtaken; its rebuild must not commit.
	w.fire(ctx, tok1)
	if n := commits.Load(); n != 0 {
		t.Fatalf("stale rebuild committed (%d commits)", n)
	}

	w.fire(ctx, tok2)
	if n := commits.Load(); n != 1 {
		t.Errorf("commits = %d, want 1", n)
	}
}
