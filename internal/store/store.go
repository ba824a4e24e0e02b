// Package store persists reader preferences (expanded categories,
// bookmarks) and a render cache in a local SQLite file under the data
// directory. It is the server-side counterpart of the browser's local
// storage: state is keyed per reader id and never shared between keys.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite connection with viewer-specific helpers.
type Store struct {
	*sql.DB
	path string
}

// Open creates or opens the store database at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging store: %w", err)
	}

	s := &Store{DB: sqlDB, path: path}
	if err := s.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// OpenMemory creates an in-memory store (useful for testing).
func OpenMemory() (*Store, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory store: %w", err)
	}
	s := &Store{DB: sqlDB, path: ":memory:"}
	if err := s.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.Exec(schema)
	return err
}

// schema contains the full database schema. New tables are added here.
const schema = `
CREATE TABLE IF NOT EXISTS preferences (
    reader_id TEXT PRIMARY KEY,
    expanded_ids TEXT NOT NULL DEFAULT '[]',
    updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS bookmarks (
    id TEXT PRIMARY KEY,
    reader_id TEXT NOT NULL,
    topic_id TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT (datetime('now')),
    UNIQUE(reader_id, topic_id)
);

CREATE TABLE IF NOT EXISTS render_cache (
    topic_id TEXT NOT NULL,
    content_hash TEXT NOT NULL,
    options_hash TEXT NOT NULL,
    html TEXT NOT NULL,
    toc_json TEXT NOT NULL DEFAULT '[]',
    created_at DATETIME NOT NULL DEFAULT (datetime('now')),
    PRIMARY KEY (topic_id, content_hash, options_hash)
);
`

// ExpandedCategories returns the persisted expanded category ids for a
// reader. A reader with no saved preferences gets an empty list.
func (s *Store) ExpandedCategories(ctx context.Context, readerID string) ([]string, error) {
	var raw string
	err := s.QueryRowContext(ctx,
		`SELECT expanded_ids FROM preferences WHERE reader_id = ?`, readerID,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading preferences: %w", err)
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("decoding expanded ids: %w", err)
	}
	return ids, nil
}

// SaveExpandedCategories upserts the expanded category ids for a reader.
func (s *Store) SaveExpandedCategories(ctx context.Context, readerID string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encoding expanded ids: %w", err)
	}

	_, err = s.ExecContext(ctx,
		`INSERT INTO preferences (reader_id, expanded_ids, updated_at)
		 VALUES (?, ?, datetime('now'))
		 ON CONFLICT(reader_id) DO UPDATE SET expanded_ids = excluded.expanded_ids, updated_at = datetime('now')`,
		readerID, string(raw),
	)
	if err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}
	return nil
}

// AddBookmark bookmarks a topic for a reader. Bookmarking an already
// bookmarked topic is a no-op.
func (s *Store) AddBookmark(ctx context.Context, readerID, topicID string) error {
	_, err := s.ExecContext(ctx,
		`INSERT INTO bookmarks (id, reader_id, topic_id) VALUES (?, ?, ?)
		 ON CONFLICT(reader_id, topic_id) DO NOTHING`,
		uuid.NewString(), readerID, topicID,
	)
	if err != nil {
		return fmt.Errorf("adding bookmark: %w", err)
	}
	return nil
}

// RemoveBookmark deletes a bookmark; removing a missing one is a no-op.
func (s *Store) RemoveBookmark(ctx context.Context, readerID, topicID string) error {
	_, err := s.ExecContext(ctx,
		`DELETE FROM bookmarks WHERE reader_id = ? AND topic_id = ?`, readerID, topicID)
	if err != nil {
		return fmt.Errorf("removing bookmark: %w", err)
	}
	return nil
}

// Bookmarks returns the reader's bookmarked topic ids, oldest first.
func (s *Store) Bookmarks(ctx context.Context, readerID string) ([]string, error) {
	rows, err := s.QueryContext(ctx,
		`SELECT topic_id FROM bookmarks WHERE reader_id = ? ORDER BY created_at, topic_id`, readerID)
	if err != nil {
		return nil, fmt.Errorf("listing bookmarks: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning bookmark: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CachedRender is a stored sanitize+render result for one topic revision.
type CachedRender struct {
	TopicID     string
	ContentHash string
	OptionsHash string
	HTML        string
	TOCJSON     string
	CreatedAt   time.Time
}

// Render looks up a cached render; nil when absent.
func (s *Store) Render(ctx context.Context, topicID, contentHash, optionsHash string) (*CachedRender, error) {
	r := &CachedRender{}
	err := s.QueryRowContext(ctx,
		`SELECT topic_id, content_hash, options_hash, html, toc_json, created_at
		 FROM render_cache WHERE topic_id = ? AND content_hash = ? AND options_hash = ?`,
		topicID, contentHash, optionsHash,
	).Scan(&r.TopicID, &r.ContentHash, &r.OptionsHash, &r.HTML, &r.TOCJSON, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading cached render: %w", err)
	}
	return r, nil
}

// PutRender stores a render result, replacing any previous entry for the
// same (topic, content, options) key and dropping entries for older
// revisions of the topic.
func (s *Store) PutRender(ctx context.Context, r *CachedRender) error {
	tx, err := s.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting cache write: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM render_cache WHERE topic_id = ? AND content_hash != ?`,
		r.TopicID, r.ContentHash); err != nil {
		return fmt.Errorf("pruning stale renders: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO render_cache (topic_id, content_hash, options_hash, html, toc_json)
		 VALUES (?, ?, ?, ?, ?)`,
		r.TopicID, r.ContentHash, r.OptionsHash, r.HTML, r.TOCJSON); err != nil {
		return fmt.Errorf("storing render: %w", err)
	}

	return tx.Commit()
}
