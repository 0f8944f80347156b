// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: presets/registry.go
// Summary: Named preset factories so the wiring layer can build effects by name.

package presets

import (
	"sort"
	"sync"

	"github.com/framegrace/hotcold/anim"
	"github.com/framegrace/hotcold/keyframes"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Factory constructs a preset bound to el.
type Factory func(el anim.Element, magnitude float64, inst keyframes.Installer, opts ...Option) (anim.Animation, error)

// Register associates a preset name with a factory. It panics on duplicate names.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		panic("presets: duplicate registration for " + name)
	}
	registry[name] = factory
}

// Lookup fetches a factory by name.
func Lookup(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// Names returns the registered preset names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register("hot", func(el anim.Element, m float64, inst keyframes.Installer, opts ...Option) (anim.Animation, error) {
		a, err := NewHot(el, m, inst, opts...)
		if err != nil {
			return nil, err
		}
		return a, nil
	})
	Register("cold", func(el anim.Element, m float64, inst keyframes.Installer, opts ...Option) (anim.Animation, error) {
		a, err := NewCold(el, m, inst, opts...)
		if err != nil {
			return nil, err
		}
		return a, nil
	})
}
