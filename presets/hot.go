// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: presets/hot.go
// Summary: "Hot" preset: a bouncing pulse that throws sparks from each take-off point.
// Usage: NewHot(el, magnitude, installer) then hand it to an anim.Manager.

package presets

import (
	"github.com/framegrace/hotcold/anim"
	"github.com/framegrace/hotcold/curve"
	"github.com/framegrace/hotcold/keyframes"
)

const (
	HotClass   = "hot-bounce"
	SparkClass = "hot-spark"
	SparkGlyph = "🌟"
)

// Hot bounces its element along random parabolic hops whose height and
// reach grow with magnitude, regenerating every spark on every hop.
type Hot struct {
	*anim.BatchedReflowAnimation

	magnitude float64
	tuning    HotTuning
	rng       anim.Random
	duration  string

	start   float64
	lastEnd float64
}

// NewHot builds an idle hot animation for el.
func NewHot(el anim.Element, magnitude float64, inst keyframes.Installer, opts ...Option) (*Hot, error) {
	if err := anim.ValidateMagnitude(magnitude); err != nil {
		return nil, err
	}
	s := resolve(opts)
	h := &Hot{
		magnitude: magnitude,
		tuning:    s.tuning.Hot,
		rng:       s.rng,
		duration:  millis(curve.Scale(1-magnitude, s.tuning.Hot.FastMs, s.tuning.Hot.SlowMs)),
	}
	h.BatchedReflowAnimation = anim.NewBatchedReflow(
		anim.Options{
			Element:   el,
			Class:     HotClass,
			Loop:      true,
			Installer: inst,
			Timeline:  anim.GeneratorFunc(h.next),
		},
		anim.ParticleOptions{
			Class:   SparkClass,
			Glyph:   SparkGlyph,
			Count:   ParticleCount(magnitude, h.tuning.SparkMin, h.tuning.SparkMax, s.tuning.ParticleCap),
			Refresh: anim.RefreshEveryCycle,
			New:     h.newSpark,
		},
	)
	return h, nil
}

// Magnitude returns the intensity the animation was built with.
func (h *Hot) Magnitude() float64 { return h.magnitude }

// LastEndPosition is the x offset where the current hop lands.
func (h *Hot) LastEndPosition() float64 { return h.lastEnd }

// Duration is the per-hop animation duration written onto the element.
func (h *Hot) Duration() string { return h.duration }

func (h *Hot) next() *keyframes.Descriptor {
	reach := h.tuning.RangePx * h.magnitude
	h.start = h.lastEnd
	h.lastEnd = h.rng.Uniform(-reach, reach)

	from := curve.Point{X: h.start}
	to := curve.Point{X: h.lastEnd}
	control := curve.Point{X: (from.X + to.X) / 2, Y: reach}

	d := keyframes.New(HotClass)
	frames := h.tuning.Frames
	for i, p := range curve.Sample(from, control, to, frames) {
		d.Set(float64(i)*100/float64(frames), keyframes.Transform(keyframes.Translate(p.X, -p.Y)))
	}
	h.Element().SetStyle(anim.StyleAnimationDuration, h.duration)
	return d
}

func (h *Hot) newSpark(base anim.ParticleBase) anim.ParticleEffect {
	dir := 1.0
	if base.Index%2 != 0 {
		dir = -1
	}
	return &spark{ParticleBase: base, hot: h, direction: dir}
}

// spark flies from the hop's take-off point along a random arc and fades out.
type spark struct {
	anim.ParticleBase
	hot       *Hot
	direction float64
}

func (s *spark) GenerateStyle() string {
	t := s.hot.tuning
	rng := s.hot.rng
	origin := s.hot.start

	distance := rng.Uniform(t.SparkDistanceMin, t.SparkDistanceMax)
	height := curve.Rescale(distance, t.SparkDistanceMin, t.SparkDistanceMax, t.SparkArcNear, t.SparkArcFar)
	from := curve.Point{X: origin + rng.Uniform(-t.SparkJitterPx, t.SparkJitterPx)}
	to := curve.Point{X: origin + distance*s.direction, Y: rng.Uniform(t.SparkDropPx, t.SparkLiftPx)}
	control := curve.Point{X: rng.Uniform(from.X, to.X), Y: height + t.SparkArcBoost}

	d := keyframes.New(s.Name)
	frames := t.SparkFrames
	for i, p := range curve.Sample(from, control, to, frames) {
		d.Set(float64(i)*100/float64(frames), keyframes.Transform(keyframes.Translate(p.X, -p.Y)))
	}
	d.Set(t.SparkFadeAt, keyframes.Opacity(1))
	d.Set(99.9, keyframes.Opacity(0))

	s.Element.SetStyle(anim.StyleAnimationDuration, s.hot.duration)
	return keyframes.Compile(d)
}
