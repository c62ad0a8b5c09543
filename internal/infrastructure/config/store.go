package config

import "sync/atomic"

// Store holds the active config. The watcher swaps it while scenes read it
// on the game goroutine.
type Store struct {
	current atomic.Pointer[GameConfig]
}

// NewStore creates a store holding cfg
func NewStore(cfg *GameConfig) *Store {
	s := &Store{}
	s.current.Store(cfg)
	return s
}

// Current returns the active config. Callers must not modify it.
func (s *Store) Current() *GameConfig {
	return s.current.Load()
}

func (s *Store) Set(cfg *GameConfig) {
	s.current.Store(cfg)
}
