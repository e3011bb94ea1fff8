package ui

import "sync"

// Store holds the application state shared between listeners and render
// code. Listeners mutate it through Update, components read a copy with
// Load.
type Store[S any] struct {
	mu  sync.RWMutex
	val S
}

func NewStore[S any](initial S) *Store[S] {
	return &Store[S]{val: initial}
}

// Load returns a copy of the state.
func (s *Store[S]) Load() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.val
}

// Update runs fn with exclusive access to the state.
func (s *Store[S]) Update(fn func(*S)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.val)
}

// Store replaces the state.
func (s *Store[S]) Store(v S) {
	s.mu.Lock()
	s.val = v
	s.mu.Unlock()
}
