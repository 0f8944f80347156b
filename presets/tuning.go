// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: presets/tuning.go
// Summary: Numeric knobs for the hot and cold presets and their config mapping.
// Notes: Every magnitude-derived value goes through curve.Scale over the unit domain.

package presets

import (
	"math"

	"github.com/framegrace/hotcold/config"
	"github.com/framegrace/hotcold/curve"
)

// HotTuning shapes the bounce and its sparks.
type HotTuning struct {
	Frames      int
	RangePx     float64
	FastMs      float64
	SlowMs      float64
	SparkFrames int
	SparkMin    float64
	SparkMax    float64

	SparkDistanceMin float64
	SparkDistanceMax float64
	// Spark arc height shrinks linearly from ArcNear to ArcFar with distance.
	SparkArcNear  float64
	SparkArcFar   float64
	SparkArcBoost float64
	SparkJitterPx float64
	SparkDropPx   float64
	SparkLiftPx   float64
	SparkFadeAt   float64
}

// ColdTuning shapes the shake and the snowflakes.
type ColdTuning struct {
	Frames   int
	ShakePx  float64
	ShakeDeg float64
	ShakeMs  float64
	FlakeMin float64
	FlakeMax float64

	FallPx      float64
	FallPhases  int
	FallSlowSec float64
	FallFastSec float64
	SpinMinDeg  float64
	SpinMaxDeg  float64
	IdleMaxPct  float64
}

// Tuning groups every preset knob.
type Tuning struct {
	Hot         HotTuning
	Cold        ColdTuning
	ParticleCap int
}

// DefaultTuning returns the built-in knobs.
func DefaultTuning() Tuning {
	return Tuning{
		Hot: HotTuning{
			Frames:           25,
			RangePx:          200,
			FastMs:           600,
			SlowMs:           1200,
			SparkFrames:      30,
			SparkMin:         3,
			SparkMax:         50,
			SparkDistanceMin: 50,
			SparkDistanceMax: 300,
			SparkArcNear:     150,
			SparkArcFar:      30,
			SparkArcBoost:    50,
			SparkJitterPx:    25,
			SparkDropPx:      -150,
			SparkLiftPx:      50,
			SparkFadeAt:      45.1,
		},
		Cold: ColdTuning{
			Frames:      20,
			ShakePx:     5,
			ShakeDeg:    5,
			ShakeMs:     500,
			FlakeMin:    1,
			FlakeMax:    100,
			FallPx:      300,
			FallPhases:  10,
			FallSlowSec: 2.5,
			FallFastSec: 1.5,
			SpinMinDeg:  180,
			SpinMaxDeg:  540,
			IdleMaxPct:  12,
		},
		ParticleCap: 200,
	}
}

// TuningFromConfig overlays the "hot", "cold" and "engine" sections of cfg
// on the defaults.
func TuningFromConfig(cfg config.Config) Tuning {
	t := DefaultTuning()
	if cfg == nil {
		return t
	}
	h := &t.Hot
	h.Frames = cfg.GetPositiveInt("hot", "frames", h.Frames)
	h.RangePx = cfg.GetFloat("hot", "range_px", h.RangePx)
	h.FastMs = cfg.GetFloat("hot", "duration_fast_ms", h.FastMs)
	h.SlowMs = cfg.GetFloat("hot", "duration_slow_ms", h.SlowMs)
	h.SparkFrames = cfg.GetPositiveInt("hot", "spark_frames", h.SparkFrames)
	h.SparkMin = cfg.GetFloat("hot", "spark_min", h.SparkMin)
	h.SparkMax = cfg.GetFloat("hot", "spark_max", h.SparkMax)

	c := &t.Cold
	c.Frames = cfg.GetPositiveInt("cold", "frames", c.Frames)
	c.ShakePx = cfg.GetFloat("cold", "shake_px", c.ShakePx)
	c.ShakeDeg = cfg.GetFloat("cold", "shake_deg", c.ShakeDeg)
	c.ShakeMs = cfg.GetFloat("cold", "shake_ms", c.ShakeMs)
	c.FlakeMin = cfg.GetFloat("cold", "flake_min", c.FlakeMin)
	c.FlakeMax = cfg.GetFloat("cold", "flake_max", c.FlakeMax)
	c.FallPx = cfg.GetFloat("cold", "fall_px", c.FallPx)
	c.FallPhases = cfg.GetPositiveInt("cold", "fall_phases", c.FallPhases)

	t.ParticleCap = cfg.GetPositiveInt("engine", "particle_cap", t.ParticleCap)
	return t
}

// ParticleCount derives a particle count from magnitude: ceil(scale(m, lo, hi))
// clamped to [0, limit].
func ParticleCount(magnitude, lo, hi float64, limit int) int {
	n := int(math.Ceil(curve.Scale(magnitude, lo, hi)))
	if n < 0 {
		return 0
	}
	if limit > 0 && n > limit {
		return limit
	}
	return n
}
