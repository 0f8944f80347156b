// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: presets/cold.go
// Summary: "Cold" preset: a trembling shake with a flurry of falling snowflakes.
// Notes: Each snowflake stitches several fall phases into one long timeline so the
//        group only needs a reflow when the whole flurry has played out.

package presets

import (
	"github.com/framegrace/hotcold/anim"
	"github.com/framegrace/hotcold/curve"
	"github.com/framegrace/hotcold/keyframes"
)

const (
	ColdClass      = "cold-shake"
	SnowflakeClass = "cold-snowflake"
	SnowflakeGlyph = "❄"
)

// Cold shakes its element and lets snowflakes fall across its width.
type Cold struct {
	*anim.BatchedReflowAnimation

	magnitude float64
	tuning    ColdTuning
	rng       anim.Random
	spread    float64
}

// NewCold builds an idle cold animation for el. The flurry spans el's
// layout width at construction time.
func NewCold(el anim.Element, magnitude float64, inst keyframes.Installer, opts ...Option) (*Cold, error) {
	if err := anim.ValidateMagnitude(magnitude); err != nil {
		return nil, err
	}
	s := resolve(opts)
	c := &Cold{
		magnitude: magnitude,
		tuning:    s.tuning.Cold,
		rng:       s.rng,
		spread:    el.Width(),
	}
	c.BatchedReflowAnimation = anim.NewBatchedReflow(
		anim.Options{
			Element:   el,
			Class:     ColdClass,
			Loop:      true,
			Installer: inst,
			Timeline:  anim.GeneratorFunc(c.next),
		},
		anim.ParticleOptions{
			Class:   SnowflakeClass,
			Glyph:   SnowflakeGlyph,
			Count:   ParticleCount(magnitude, c.tuning.FlakeMin, c.tuning.FlakeMax, s.tuning.ParticleCap),
			Refresh: anim.RefreshOnGroupFinish,
			New:     c.newSnowflake,
		},
	)
	return c, nil
}

// Magnitude returns the intensity the animation was built with.
func (c *Cold) Magnitude() float64 { return c.magnitude }

func (c *Cold) next() *keyframes.Descriptor {
	offset := c.tuning.ShakePx * c.magnitude
	turn := c.tuning.ShakeDeg * c.magnitude

	d := keyframes.New(ColdClass)
	frames := c.tuning.Frames
	for i := 0; i <= frames; i++ {
		d.Set(float64(i)*100/float64(frames), keyframes.Transform(keyframes.TranslateRotate(
			c.rng.Uniform(-offset, offset),
			c.rng.Uniform(-offset, offset),
			c.rng.Uniform(-turn, turn),
		)))
	}
	c.Element().SetStyle(anim.StyleAnimationDuration, millis(c.tuning.ShakeMs))
	return d
}

func (c *Cold) newSnowflake(base anim.ParticleBase) anim.ParticleEffect {
	return &snowflake{ParticleBase: base, cold: c}
}

type snowflake struct {
	anim.ParticleBase
	cold *Cold
}

func (f *snowflake) GenerateStyle() string {
	t := f.cold.tuning
	rng := f.cold.rng
	spin := curve.Scale(f.cold.magnitude, t.SpinMinDeg, t.SpinMaxDeg)
	fallSec := curve.Scale(f.cold.magnitude, t.FallSlowSec, t.FallFastSec)
	phase := 100 / float64(t.FallPhases)

	d := keyframes.New(f.Name).
		Set(0, keyframes.Transform(keyframes.TranslateRotate(0, 0, 0)), keyframes.Opacity(0))
	for at := rng.Uniform(0, t.IdleMaxPct); at <= 100-phase; at += phase {
		drift := rng.Uniform(0, 10)
		x := rng.Uniform(0, f.cold.spread)
		d.Set(at, keyframes.Transform(keyframes.TranslateRotate(x, 20+drift, 0)), keyframes.Opacity(1))
		d.Set(at+phase*0.3, keyframes.Opacity(1))
		d.Set(at+phase*0.9, keyframes.Transform(keyframes.TranslateRotate(x, t.FallPx+drift, spin)), keyframes.Opacity(0))
	}

	f.Element.SetStyle(anim.StyleAnimationDuration, seconds(fallSec*float64(t.FallPhases)))
	return keyframes.Compile(d)
}
