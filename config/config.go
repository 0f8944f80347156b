// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Configuration store for hotcold.
// Usage: cfg := config.System() or cfg, err := config.Load(path).
// Notes: Files ending in .yaml/.yml are decoded with yaml.v3, everything else as JSON.

package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const systemConfigName = "hotcold.json"

// Config stores configuration sections as JSON-compatible data.
type Config map[string]interface{}

// Section stores key/value pairs for a configuration section.
type Section map[string]interface{}

var (
	mu       sync.RWMutex
	once     sync.Once
	system   Config
	override string
	loadErr  error
)

// Err returns the most recent system config load error.
func Err() error {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return loadErr
}

// System returns the process configuration, loading it on first use.
func System() Config {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return system
}

// Path returns the file backing System.
func Path() (string, error) {
	mu.RLock()
	p := override
	mu.RUnlock()
	if p != "" {
		return p, nil
	}
	return DefaultPath()
}

// UsePath points the system store at path and reloads it.
func UsePath(path string) error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	override = path
	loadErr = loadSystemLocked()
	return loadErr
}

// Reload refreshes the system config from disk.
func Reload() error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	loadErr = loadSystemLocked()
	return loadErr
}

// SetSystem replaces the in-memory system config with the provided config.
func SetSystem(cfg Config) {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	if cfg == nil {
		cfg = make(Config)
	}
	system = Clone(cfg)
}

// SaveSystem persists the current system config to disk.
func SaveSystem() error {
	once.Do(initStore)
	path, err := Path()
	if err != nil {
		return err
	}
	mu.RLock()
	defer mu.RUnlock()
	return Save(path, system)
}

// Load reads the config at path and fills in missing keys from the embedded
// defaults. A missing file yields the defaults alone.
func Load(path string) (Config, error) {
	cfg, exists, err := readConfig(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if !exists || cfg == nil {
		cfg = make(Config)
	}
	applySystemDefaults(cfg)
	return cfg, nil
}

// Save writes cfg to path as indented JSON, creating parent directories.
func Save(path string, cfg Config) error {
	if cfg == nil {
		cfg = make(Config)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func initStore() {
	mu.Lock()
	defer mu.Unlock()
	system = make(Config)
	loadErr = loadSystemLocked()
}

func loadSystemLocked() error {
	path := override
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			log.Printf("Config: Failed to resolve config path: %v", err)
			system = make(Config)
			applySystemDefaults(system)
			return err
		}
		path = p
	}

	cfg, err := Load(path)
	if err != nil {
		log.Printf("Config: %v", err)
		cfg = make(Config)
		applySystemDefaults(cfg)
		system = cfg
		return err
	}
	system = cfg
	log.Printf("Config: Loaded config from %s", path)
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func readConfig(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, true, nil
	}

	// Decoding into a plain map keeps yaml.v3 from reusing the named
	// Config type for nested mappings.
	var raw map[string]interface{}
	if isYAML(path) {
		err = yaml.Unmarshal(data, &raw)
	} else {
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, true, err
	}
	return normalize(Config(raw)), true, nil
}

// normalize converts every nested mapping to Section so typed getters see
// one shape.
func normalize(cfg Config) Config {
	for name, raw := range cfg {
		cfg[name] = normalizeValue(raw)
	}
	return cfg
}

func normalizeValue(v interface{}) interface{} {
	switch m := v.(type) {
	case Config:
		return normalizeSection(m)
	case Section:
		return normalizeSection(m)
	case map[string]interface{}:
		return normalizeSection(m)
	case []interface{}:
		for i, item := range m {
			m[i] = normalizeValue(item)
		}
		return m
	}
	return v
}

func normalizeSection(m map[string]interface{}) Section {
	for key, value := range m {
		m[key] = normalizeValue(value)
	}
	return Section(m)
}
