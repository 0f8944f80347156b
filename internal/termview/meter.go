// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/termview/meter.go
// Summary: Status-bar thermometer that glides toward the current magnitude.

package termview

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const meterGlide = 0.3

// Meter is a 0..1 gauge whose displayed value tweens toward its target.
type Meter struct {
	tween  *gween.Tween
	value  float32
	target float32
}

// NewMeter returns a meter resting at v.
func NewMeter(v float64) *Meter {
	return &Meter{value: float32(v), target: float32(v)}
}

// Set starts a glide toward v.
func (m *Meter) Set(v float64) {
	target := float32(v)
	if target == m.target {
		return
	}
	m.target = target
	m.tween = gween.New(m.value, target, meterGlide, ease.OutCubic)
}

// Update advances the glide by dt and returns the displayed value.
func (m *Meter) Update(dt time.Duration) float64 {
	if m.tween != nil {
		v, done := m.tween.Update(float32(dt.Seconds()))
		m.value = v
		if done {
			m.value = m.target
			m.tween = nil
		}
	}
	return float64(m.value)
}

// Value returns the displayed value without advancing.
func (m *Meter) Value() float64 { return float64(m.value) }

// Target returns the value the meter is gliding toward.
func (m *Meter) Target() float64 { return float64(m.target) }
