// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: anim/manager.go
// Summary: Named registry of running animations.
// Notes: Ownership is one-way; animations never call back into their manager.

package anim

import (
	"fmt"
	"sort"
	"sync"
)

// Manager owns the lifetime of the animations registered with it. A key in
// the registry always refers to a started animation that has not been stopped.
type Manager struct {
	mu      sync.Mutex
	running map[string]Animation
}

// NewManager creates an empty registry.
func NewManager() *Manager {
	return &Manager{running: make(map[string]Animation)}
}

// Add starts animation and registers it under id. The registration is not
// kept when Start fails.
func (m *Manager) Add(id string, animation Animation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.running[id]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateAnimation, id)
	}
	if err := animation.Start(); err != nil {
		return fmt.Errorf("start %q: %w", id, err)
	}
	m.running[id] = animation
	return nil
}

// Remove stops the animation registered under id and clears the slot.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	animation, ok := m.running[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAnimation, id)
	}
	animation.Stop()
	delete(m.running, id)
	return nil
}

// Clear stops and removes every registered animation. It is a no-op on an
// empty registry.
func (m *Manager) Clear() {
	for _, id := range m.IDs() {
		// An id removed since the snapshot is already gone; nothing to do.
		_ = m.Remove(id)
	}
}

// Get returns the animation registered under id.
func (m *Manager) Get(id string) (Animation, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.running[id]
	return a, ok
}

// Has reports whether id is registered.
func (m *Manager) Has(id string) bool {
	_, ok := m.Get(id)
	return ok
}

// Len reports the number of running animations.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.running)
}

// IDs returns a sorted snapshot of the registered ids.
func (m *Manager) IDs() []string {
	m.mu.Lock()
	ids := make([]string, 0, len(m.running))
	for id := range m.running {
		ids = append(ids, id)
	}
	m.mu.Unlock()
	sort.Strings(ids)
	return ids
}
