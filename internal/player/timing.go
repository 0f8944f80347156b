// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/player/timing.go
// Summary: Keyframe timing functions keyed by their CSS names.
// Notes: Curves come from gween's ease package; "ease" keeps the smoothstep S-curve.

package player

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tanema/gween/ease"
)

// ErrUnknownTiming is returned for a timing function name with no curve.
var ErrUnknownTiming = errors.New("player: unknown timing function")

// TimingFunc maps segment progress [0,1] to eased progress [0,1].
type TimingFunc func(t float64) float64

// tween adapts a gween ease curve over a unit range.
func tween(f ease.TweenFunc) TimingFunc {
	return func(t float64) float64 {
		return float64(f(float32(t), 0, 1, 1))
	}
}

var (
	// Linear - constant speed.
	Linear = tween(ease.Linear)

	// Ease - smooth S-curve, the default for keyframe segments.
	Ease TimingFunc = func(t float64) float64 {
		return t * t * (3.0 - 2.0*t)
	}

	EaseIn    = tween(ease.InCubic)
	EaseOut   = tween(ease.OutCubic)
	EaseInOut = tween(ease.InOutCubic)

	// StepEnd - holds the start value until the segment ends.
	StepEnd TimingFunc = func(t float64) float64 {
		if t >= 1 {
			return 1
		}
		return 0
	}
)

var timings = map[string]TimingFunc{
	"linear":      Linear,
	"ease":        Ease,
	"ease-in":     EaseIn,
	"ease-out":    EaseOut,
	"ease-in-out": EaseInOut,
	"step-end":    StepEnd,
}

// Timing resolves a CSS timing function name.
func Timing(name string) (TimingFunc, error) {
	if fn, ok := timings[name]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTiming, name)
}

// TimingNames lists the supported names, sorted.
func TimingNames() []string {
	names := make([]string, 0, len(timings))
	for name := range timings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
