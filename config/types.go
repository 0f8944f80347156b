// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/types.go
// Summary: Section lookup, default registration and typed getters.
// Notes: JSON decodes numbers as float64 and YAML as int; getters accept both.

package config

import (
	"encoding/json"
	"strconv"
)

// Section returns the named section or nil if missing. The empty name
// addresses the top level.
func (c Config) Section(name string) Section {
	if c == nil {
		return nil
	}
	if name == "" {
		return Section(c)
	}
	switch v := c[name].(type) {
	case Section:
		return v
	case Config:
		return Section(v)
	case map[string]interface{}:
		return Section(v)
	}
	return nil
}

// RegisterDefaults fills keys missing from the named section. Existing
// keys are never overwritten.
func (c Config) RegisterDefaults(name string, defaults Section) {
	if c == nil || len(defaults) == 0 {
		return
	}
	section := c.Section(name)
	if section == nil {
		section = make(Section, len(defaults))
		c[name] = section
	}
	for key, value := range defaults {
		if _, ok := section[key]; !ok {
			section[key] = value
		}
	}
}

func (c Config) lookup(name, key string) (interface{}, bool) {
	section := c.Section(name)
	if section == nil {
		return nil, false
	}
	v, ok := section[key]
	return v, ok
}

// GetString retrieves a string value.
func (c Config) GetString(name, key, fallback string) string {
	if v, ok := c.lookup(name, key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fallback
}

// GetFloat retrieves a numeric value.
func (c Config) GetFloat(name, key string, fallback float64) float64 {
	if v, ok := c.lookup(name, key); ok {
		if f, ok := number(v); ok {
			return f
		}
	}
	return fallback
}

// GetInt retrieves a numeric value truncated to int.
func (c Config) GetInt(name, key string, fallback int) int {
	if v, ok := c.lookup(name, key); ok {
		if f, ok := number(v); ok {
			return int(f)
		}
	}
	return fallback
}

// GetPositiveInt is GetInt that also falls back for zero and negative values.
// Frame and particle counts use it.
func (c Config) GetPositiveInt(name, key string, fallback int) int {
	if n := c.GetInt(name, key, fallback); n > 0 {
		return n
	}
	return fallback
}

// GetBool retrieves a boolean. Strings accepted by strconv.ParseBool and
// numbers (non-zero is true) are converted.
func (c Config) GetBool(name, key string, fallback bool) bool {
	v, ok := c.lookup(name, key)
	if !ok {
		return fallback
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		if parsed, err := strconv.ParseBool(b); err == nil {
			return parsed
		}
		return fallback
	}
	if f, ok := number(v); ok {
		return f != 0
	}
	return fallback
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}
