// Package session keeps per-user conversation data in memory and serializes
// work on a single user.
package session

import "sync"

// Store is an in-memory keyed session store. Sessions are created lazily on
// first access and never expire; they live until Clear or process exit.
type Store[V any] struct {
	mu       sync.RWMutex
	sessions map[int64]V
	newFn    func() V

	lockMu sync.Mutex
	locks  map[int64]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

// NewStore builds a store; newFn produces the default session for unknown users.
func NewStore[V any](newFn func() V) *Store[V] {
	return &Store[V]{
		sessions: make(map[int64]V),
		newFn:    newFn,
		locks:    make(map[int64]*userLock),
	}
}

// Get returns the session for a user, creating the default one on first reference.
func (s *Store[V]) Get(userID int64) V {
	s.mu.RLock()
	v, ok := s.sessions[userID]
	s.mu.RUnlock()
	if ok {
		return v
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.sessions[userID]; ok {
		return v
	}
	v = s.newFn()
	s.sessions[userID] = v
	return v
}

// Peek returns the session without creating one.
func (s *Store[V]) Peek(userID int64) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.sessions[userID]
	return v, ok
}

// Put replaces the session for a user.
func (s *Store[V]) Put(userID int64, v V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = v
}

// Clear removes the session for a user.
func (s *Store[V]) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Has reports whether a session exists for the user.
func (s *Store[V]) Has(userID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[userID]
	return ok
}

// Len returns the number of stored sessions.
func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Range calls fn for every session until fn returns false. fn must not call back into the store.
func (s *Store[V]) Range(fn func(userID int64, v V) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, v := range s.sessions {
		if !fn(id, v) {
			return
		}
	}
}

// Lock acquires the per-user mutex and returns its release function.
// Work for one user runs strictly one at a time; different users do not block each other.
func (s *Store[V]) Lock(userID int64) func() {
	s.lockMu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &userLock{}
		s.locks[userID] = l
	}
	l.refs++
	s.lockMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.lockMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, userID)
		}
		s.lockMu.Unlock()
	}
}
