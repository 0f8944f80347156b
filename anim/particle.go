// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: anim/particle.go
// Summary: Particle effect capability and naming helpers for particle groups.
// Notes: Particles only generate rule text; their owner installs and reflows in bulk.

package anim

import "strconv"

// ParticleEffect generates the rule text for one particle's current cycle.
// Implementations may write duration and delay onto their own element but
// must not toggle classes or read layout.
type ParticleEffect interface {
	GenerateStyle() string
}

// ParticleBase carries what every particle knows about itself.
type ParticleBase struct {
	// Owner is a non-owning back reference to the parent animation.
	Owner   Animation
	Element Element
	Index   int
	// Name is the rule name this particle's timeline is installed under.
	Name string
}

// ParticleFactory builds the effect for one particle node.
type ParticleFactory func(base ParticleBase) ParticleEffect

// RefreshPolicy decides when a particle set regenerates its rules.
type RefreshPolicy int

const (
	// RefreshEveryCycle regenerates particles on every parent cycle.
	RefreshEveryCycle RefreshPolicy = iota
	// RefreshOnGroupFinish regenerates once the particle timeline completes.
	RefreshOnGroupFinish
)

// ParticleOptions describes the particle set owned by a batched animation.
type ParticleOptions struct {
	Class   string
	Glyph   string
	Count   int
	Refresh RefreshPolicy
	New     ParticleFactory
}

// RuleName is the timeline name of particle index within class.
func RuleName(class string, index int) string {
	return class + "-" + strconv.Itoa(index)
}

// GroupKey is the installer key of the batched particle block for an owner class.
func GroupKey(ownerClass string) string {
	return "particlestyle-" + ownerClass
}

// ContainerID is the id of the node holding an owner's particles.
func ContainerID(ownerClass string) string {
	return "particlecontainer-" + ownerClass
}
