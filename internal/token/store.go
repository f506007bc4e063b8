// Package token holds the in-memory session token cache shared by the
// request pipeline and the recovery interceptor.
//
// The store keeps at most one active token at a time and is never persisted:
// session (CSRF) tokens live only for the lifetime of the process. It is an
// explicitly owned, injectable object — constructed once per client and
// passed by reference — rather than process-global state.
package token

import "sync"

// Store caches zero or one session security token. Safe for concurrent use;
// the mutex preserves the at-most-one-active-token invariant when requests
// run on parallel goroutines.
type Store struct {
	mu  sync.Mutex
	tok string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Get returns the cached token and whether one is present.
func (s *Store) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tok, s.tok != ""
}

// Set replaces the cached token.
func (s *Store) Set(tok string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tok = tok
}

// Invalidate discards the cached token. Invalidation always precedes
// re-acquisition; callers must not re-acquire while still holding a stale
// token.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tok = ""
}
