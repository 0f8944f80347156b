// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: anim/errors.go
// Summary: Contract violations raised synchronously to the wiring layer.

package anim

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDuplicateAnimation is returned by Manager.Add for an id that is already running.
	ErrDuplicateAnimation = errors.New("anim: animation already running")
	// ErrUnknownAnimation is returned by Manager.Remove for an id that is not running.
	ErrUnknownAnimation = errors.New("anim: animation not running")
	// ErrInvalidMagnitude rejects intensities outside [0,1].
	ErrInvalidMagnitude = errors.New("anim: magnitude out of range")
	// ErrNotIdle is returned when starting an animation that already ran.
	ErrNotIdle = errors.New("anim: animation is not idle")
)

// ValidateMagnitude checks that m lies in [0,1].
func ValidateMagnitude(m float64) error {
	if math.IsNaN(m) || m < 0 || m > 1 {
		return fmt.Errorf("%w: %v not in [0,1]", ErrInvalidMagnitude, m)
	}
	return nil
}
