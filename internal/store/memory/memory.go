// Package memory is the in-process AuthStore used by a single-node
// deployment.
package memory

import (
	"sync"
	"time"

	"fillratedash/internal/store"
)

type Store struct {
	mu         sync.Mutex
	challenges map[string]store.Challenge
	attempts   map[string][]time.Time
}

func NewStore() *Store {
	return &Store{
		challenges: make(map[string]store.Challenge),
		attempts:   make(map[string][]time.Time),
	}
}

func ledgerKey(address string, kind store.ActionKind) string {
	return address + "_" + string(kind)
}

func (s *Store) GetChallenge(address string) (*store.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.challenges[address]
	if !ok {
		return nil, nil
	}
	return &ch, nil
}

func (s *Store) PutChallenge(ch store.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.challenges[ch.Address] = ch
	return nil
}

func (s *Store) DeleteChallenge(address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.challenges, address)
	return nil
}

func (s *Store) AppendAttempt(address string, kind store.ActionKind, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := ledgerKey(address, kind)
	s.attempts[key] = append(s.attempts[key], at)
	return nil
}

func (s *Store) CountAttemptsSince(address string, kind store.ActionKind, since time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := ledgerKey(address, kind)
	kept := s.attempts[key][:0]
	for _, at := range s.attempts[key] {
		if !at.Before(since) {
			kept = append(kept, at)
		}
	}
	if len(kept) == 0 {
		delete(s.attempts, key)
	} else {
		s.attempts[key] = kept
	}
	return len(kept), nil
}

func (s *Store) ClearAttempts(address string, kind store.ActionKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.attempts, ledgerKey(address, kind))
	return nil
}
