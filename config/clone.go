// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/clone.go
// Summary: Deep copy of decoded config trees.

package config

// Clone returns a copy of cfg that shares no maps or slices with it.
// Nested maps decoded from YAML or JSON come back as Section values.
func Clone(cfg Config) Config {
	if cfg == nil {
		return nil
	}
	out := make(Config, len(cfg))
	for name, value := range cfg {
		out[name] = cloneValue(value)
	}
	return out
}

func cloneValue(value interface{}) interface{} {
	switch v := value.(type) {
	case Section:
		return cloneSection(v)
	case Config:
		return cloneSection(v)
	case map[string]interface{}:
		return cloneSection(v)
	case []interface{}:
		items := make([]interface{}, len(v))
		for i, item := range v {
			items[i] = cloneValue(item)
		}
		return items
	default:
		return v
	}
}

func cloneSection(src map[string]interface{}) Section {
	dst := make(Section, len(src))
	for key, value := range src {
		dst[key] = cloneValue(value)
	}
	return dst
}
