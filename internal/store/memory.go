// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package store

import (
	"context"
	"maps"
	"sync"

	"github.com/pkg/errors"
)

// MemoryStore keeps levels in memory.
//
type MemoryStore struct {
	mu sync.Mutex
	m  map[string]Levels
}

// NewMemoryStore returns an empty MemoryStore.
//
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]Levels)}
}

// Save implements Store.
//
func (s *MemoryStore) Save(_ context.Context, circuit string, lv Levels) error {
	if err := checkName(circuit); err != nil {
		return err
	}
	s.mu.Lock()
	s.m[circuit] = maps.Clone(lv)
	s.mu.Unlock()
	return nil
}

// Load implements Store.
//
func (s *MemoryStore) Load(_ context.Context, circuit string) (Levels, error) {
	if err := checkName(circuit); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	lv, ok := s.m[circuit]
	if !ok {
		return nil, errors.Wrap(ErrNotFound, circuit)
	}
	return maps.Clone(lv), nil
}

// Delete implements Store.
//
func (s *MemoryStore) Delete(_ context.Context, circuit string) error {
	s.mu.Lock()
	delete(s.m, circuit)
	s.mu.Unlock()
	return nil
}

// Close implements Store.
//
func (s *MemoryStore) Close() error { return nil }
