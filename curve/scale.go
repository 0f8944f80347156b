// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: curve/scale.go
// Summary: Linear rescale helpers that derive animation parameters from a magnitude.

package curve

// Scale maps x from the unit domain [0,1] onto [outMin, outMax].
// outMin may be greater than outMax to invert the mapping.
func Scale(x, outMin, outMax float64) float64 {
	return Rescale(x, 0, 1, outMin, outMax)
}

// Rescale maps x from [inMin, inMax] onto [outMin, outMax]. A degenerate input
// domain returns outMin.
func Rescale(x, inMin, inMax, outMin, outMax float64) float64 {
	if inMax == inMin {
		return outMin
	}
	return (x-inMin)/(inMax-inMin)*(outMax-outMin) + outMin
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
