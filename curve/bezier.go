// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: curve/bezier.go
// Summary: Quadratic Bezier sampling used to shape generated motion paths.
// Usage: Presets sample a curve on an evenly spaced t grid and embed the points in rules.

// Package curve holds the pure numeric helpers behind generated timelines.
package curve

// Point is an immutable x/y pair in presentation pixels.
type Point struct {
	X float64
	Y float64
}

// QuadraticBezier evaluates the quadratic Bezier defined by p0, p1 (control)
// and p2 at parameter t. t is expected in [0,1]; values outside extrapolate.
func QuadraticBezier(p0, p1, p2 Point, t float64) Point {
	u := 1 - t
	a := u * u
	b := 2 * u * t
	c := t * t
	return Point{
		X: a*p0.X + b*p1.X + c*p2.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y,
	}
}

// Sample returns steps+1 points on the curve for t = 0, 1/steps, ..., 1.
// The first and last points are exactly p0 and p2.
func Sample(p0, p1, p2 Point, steps int) []Point {
	if steps < 1 {
		return []Point{p0, p2}
	}
	points := make([]Point, steps+1)
	for i := 0; i <= steps; i++ {
		switch i {
		case 0:
			points[i] = p0
		case steps:
			points[i] = p2
		default:
			points[i] = QuadraticBezier(p0, p1, p2, float64(i)/float64(steps))
		}
	}
	return points
}
