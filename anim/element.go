// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: anim/element.go
// Summary: Capabilities the engine consumes from its collaborators.
// Notes: The engine never owns a bound element; it only toggles classes and writes styles.

package anim

import "math/rand/v2"

// Style properties written directly onto elements.
const (
	StyleAnimationName     = "animation-name"
	StyleAnimationDuration = "animation-duration"
	StyleAnimationDelay    = "animation-delay"
)

// Element is an opaque handle to one node of the presentation tree.
type Element interface {
	AddClass(class string)
	RemoveClass(class string)
	// ReadLayout reads a layout-dependent property, flushing pending style
	// changes. Callers use it to force a reflow between class toggles.
	ReadLayout() float64
	// Width is the node's layout width in pixels.
	Width() float64
	SetStyle(property, value string)
	// InsertAfter creates an empty container node placed right after this one.
	InsertAfter(id string) Element
	// Append creates a child node carrying class and text.
	Append(class, text string) Element
	// Remove detaches the node and its subtree.
	Remove()
	// OnceFinished registers fn for the next "animation finished" event on
	// this node. The registration is consumed by that event; callers that
	// want another notification must register again. cancel drops the
	// registration if it has not fired; it is a no-op afterwards.
	OnceFinished(fn func()) (cancel func())
}

// Random supplies parameter jitter.
type Random interface {
	Uniform(min, max float64) float64
}

type pcgRandom struct {
	r *rand.Rand
}

// NewRandom returns a deterministic Random seeded with seed.
func NewRandom(seed uint64) Random {
	return &pcgRandom{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (p *pcgRandom) Uniform(min, max float64) float64 {
	return min + p.r.Float64()*(max-min)
}
