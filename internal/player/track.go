// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/player/track.go
// Summary: Pre-parsed keyframe tracks and per-property interpolation.

package player

import (
	"fmt"
	"strconv"

	"github.com/framegrace/hotcold/keyframes"
)

type stop[T any] struct {
	at float64
	v  T
}

// compiled is a descriptor split into one sorted stop list per property.
type compiled struct {
	name      string
	transform []stop[keyframes.Motion]
	opacity   []stop[float64]
}

func compile(d *keyframes.Descriptor) (*compiled, error) {
	c := &compiled{name: d.Name}
	for _, f := range d.Frames {
		for _, p := range f.Props {
			switch p.Name {
			case "transform":
				m, err := keyframes.ParseTransform(p.Value)
				if err != nil {
					return nil, fmt.Errorf("%s at %s: %w", d.Name, keyframes.FormatPercent(f.Offset), err)
				}
				c.transform = append(c.transform, stop[keyframes.Motion]{at: f.Offset, v: m})
			case "opacity":
				v, err := strconv.ParseFloat(p.Value, 64)
				if err != nil {
					return nil, fmt.Errorf("%s at %s: %w: opacity %q", d.Name, keyframes.FormatPercent(f.Offset), keyframes.ErrMalformedRule, p.Value)
				}
				c.opacity = append(c.opacity, stop[float64]{at: f.Offset, v: v})
			}
		}
	}
	return c, nil
}

// sample evaluates every property at pct (0..100). Properties missing at the
// 0% or 100% ends fall back to the element's base value.
func (c *compiled) sample(pct float64, timing TimingFunc) (keyframes.Motion, float64) {
	m := interpolate(c.transform, pct, keyframes.Motion{}, timing, lerpMotion)
	o := interpolate(c.opacity, pct, 1, timing, lerp)
	return m, o
}

func interpolate[T any](stops []stop[T], pct float64, base T, timing TimingFunc, mix func(a, b T, t float64) T) T {
	if len(stops) == 0 {
		return base
	}
	prev := stop[T]{at: 0, v: base}
	for _, s := range stops {
		if s.at >= pct {
			span := s.at - prev.at
			if span <= 0 {
				return s.v
			}
			return mix(prev.v, s.v, timing((pct-prev.at)/span))
		}
		prev = s
	}
	span := 100 - prev.at
	if span <= 0 {
		return prev.v
	}
	return mix(prev.v, base, timing((pct-prev.at)/span))
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func lerpMotion(a, b keyframes.Motion, t float64) keyframes.Motion {
	return keyframes.Motion{
		X:      lerp(a.X, b.X, t),
		Y:      lerp(a.Y, b.Y, t),
		Rotate: lerp(a.Rotate, b.Rotate, t),
	}
}
