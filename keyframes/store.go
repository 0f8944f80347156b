// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: keyframes/store.go
// Summary: In-memory installed-rule store keyed by rule name or group key.
// Notes: Writes are replace-by-key; the last writer for a key wins.

package keyframes

import (
	"sort"
	"sync"
)

type storeEntry struct {
	text     string
	installs int
}

// Store is a thread-safe Installer that keeps exactly one block per key.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*storeEntry
	calls   int
	version uint64
}

// NewStore creates an empty rule store.
func NewStore() *Store {
	return &Store{entries: make(map[string]*storeEntry)}
}

// InstallOrReplace implements Installer. The entry is written under the
// store lock so a concurrent Remove cannot swallow the write.
func (s *Store) InstallOrReplace(key, ruleText string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.entries[key]
	if entry == nil {
		entry = &storeEntry{}
		s.entries[key] = entry
	}
	entry.text = ruleText
	entry.installs++
	s.calls++
	s.version++
}

// Rule returns the block installed under key.
func (s *Store) Rule(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry := s.entries[key]
	if entry == nil {
		return "", false
	}
	return entry.text, true
}

// Installs reports how many times key has been written since it was last
// removed.
func (s *Store) Installs(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if entry := s.entries[key]; entry != nil {
		return entry.installs
	}
	return 0
}

// Calls reports the total number of installer calls across all keys.
func (s *Store) Calls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calls
}

// Version increases on every write; readers use it to invalidate caches.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Keys returns the installed keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	s.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// Len reports the number of installed blocks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Remove drops the block installed under key.
func (s *Store) Remove(key string) {
	s.mu.Lock()
	if _, ok := s.entries[key]; ok {
		delete(s.entries, key)
		s.version++
	}
	s.mu.Unlock()
}

// Descriptors parses every installed block into descriptors keyed by rule name.
// Blocks that fail to parse are skipped and reported through the error.
func (s *Store) Descriptors() (map[string]*Descriptor, error) {
	var firstErr error
	out := make(map[string]*Descriptor)
	for _, key := range s.Keys() {
		text, ok := s.Rule(key)
		if !ok {
			continue
		}
		descs, err := Parse(text)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		for _, d := range descs {
			out[d.Name] = d
		}
	}
	return out, firstErr
}
