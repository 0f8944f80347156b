// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: presets/options.go
// Summary: Functional options shared by the preset constructors.

package presets

import (
	"strconv"
	"time"

	"github.com/framegrace/hotcold/anim"
)

type settings struct {
	rng    anim.Random
	tuning Tuning
}

// Option customises a preset.
type Option func(*settings)

// WithRandom sets the jitter source. Tests pass a seeded anim.NewRandom.
func WithRandom(r anim.Random) Option {
	return func(s *settings) { s.rng = r }
}

// WithTuning replaces the default knobs.
func WithTuning(t Tuning) Option {
	return func(s *settings) { s.tuning = t }
}

func resolve(opts []Option) settings {
	s := settings{tuning: DefaultTuning()}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	if s.rng == nil {
		s.rng = anim.NewRandom(uint64(time.Now().UnixNano()))
	}
	return s
}

func millis(ms float64) string {
	return strconv.FormatFloat(ms, 'f', 0, 64) + "ms"
}

func seconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64) + "s"
}
