// Package session holds the per-view state of one reader session: the
// currently selected topic and a last-write-wins guard that lets the
// shell discard render results that arrive for a topic the reader has
// already navigated away from.
package session

import "sync"

// Token identifies one render attempt for a topic. Tokens from
// superseded attempts fail to commit.
type Token struct {
	topicID string
	seq     uint64
}

// TopicID returns the topic the token was issued for.
func (t Token) TopicID() string { return t.topicID }

// Session is created when the manifest first loads and torn down when
// the view closes. It is safe for use from the event loop plus async
// fetch completions.
type Session struct {
	mu       sync.Mutex
	current  string
	seq      uint64
	closed   bool
	onCommit []func(topicID string)
}

// New returns an empty session with no topic selected.
func New() *Session {
	return &Session{}
}

// Begin records topicID as the current topic and returns a token for the
// render attempt. Any token issued earlier becomes stale.
func (s *Session) Begin(topicID string) Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.current = topicID
	return Token{topicID: topicID, seq: s.seq}
}

// Commit reports whether the render attempt behind tok is still current.
// It returns false when the reader has selected another topic since the
// token was issued, when a newer attempt for the same topic exists, or
// when the session is closed. On success the registered change callbacks
// fire with the topic id.
func (s *Session) Commit(tok Token) bool {
	s.mu.Lock()
	if s.closed || tok.topicID != s.current || tok.seq != s.seq {
		s.mu.Unlock()
		return false
	}
	callbacks := make([]func(string), len(s.onCommit))
	copy(callbacks, s.onCommit)
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn(tok.topicID)
	}
	return true
}

// CurrentTopic returns the most recently selected topic id, or "".
func (s *Session) CurrentTopic() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// OnCommit registers a callback invoked after each successful commit.
func (s *Session) OnCommit(fn func(topicID string)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onCommit = append(s.onCommit, fn)
}

// Close tears the session down; all outstanding tokens become stale.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.current = ""
	s.onCommit = nil
}
