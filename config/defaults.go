// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values, parsed once from the embedded hotcold.json.
// Notes: defaults/hotcold.json is the single source of truth.

package config

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/framegrace/hotcold/defaults"
)

var (
	embeddedOnce sync.Once
	embedded     Config
	embeddedErr  error
)

func embeddedDefaults() (Config, error) {
	embeddedOnce.Do(func() {
		data, err := defaults.SystemConfig()
		if err != nil {
			embeddedErr = err
			return
		}
		var cfg Config
		if err := json.Unmarshal(data, &cfg); err != nil {
			embeddedErr = err
			return
		}
		embedded = normalize(cfg)
	})
	return embedded, embeddedErr
}

// Default returns a fresh copy of the embedded defaults.
func Default() Config {
	cfg := make(Config)
	applySystemDefaults(cfg)
	return cfg
}

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	def, err := embeddedDefaults()
	if err != nil {
		log.Printf("Config: Failed to parse embedded defaults: %v", err)
		return
	}
	for name := range def {
		cfg.RegisterDefaults(name, def.Section(name))
	}
}
