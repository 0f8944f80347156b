// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: anim/batched.go
// Summary: Animation owning a particle set that shares a single reflow per cycle.
// Usage: Presets configure the parent timeline and a ParticleFactory; the loop is generic.
// Notes: Particle rule text is generated, batch-installed, then made visible by one reflow.

package anim

import "github.com/framegrace/hotcold/keyframes"

// BatchedReflowAnimation drives a parent timeline plus a particle set with
// O(1) reflows and O(1) installer calls per cycle regardless of particle count.
//
// The parent element holds the one listener that re-runs the cycle. Under
// RefreshOnGroupFinish a second listener sits on the last particle node; it
// only marks the set stale and never runs a cycle itself. Stop detaches both.
type BatchedReflowAnimation struct {
	lifecycle
	particleOpts ParticleOptions

	container Element
	nodes     []Element
	particles []ParticleEffect
	stale     bool
	// cancelGroup detaches the listener on the last particle node.
	cancelGroup func()
}

// NewBatchedReflow builds an idle animation from opts and particle options.
func NewBatchedReflow(opts Options, particles ParticleOptions) *BatchedReflowAnimation {
	return &BatchedReflowAnimation{
		lifecycle:    newLifecycle(opts),
		particleOpts: particles,
	}
}

// Start implements Animation. Particle nodes are created in one container
// placed after the bound element.
func (a *BatchedReflowAnimation) Start() error {
	if err := a.begin(); err != nil {
		return err
	}
	a.spawn()
	a.stale = true
	a.Run()
	return nil
}

func (a *BatchedReflowAnimation) spawn() {
	count := a.particleOpts.Count
	if count <= 0 || a.particleOpts.New == nil {
		return
	}
	a.container = a.element.InsertAfter(ContainerID(a.class))
	a.nodes = make([]Element, 0, count)
	a.particles = make([]ParticleEffect, 0, count)
	for i := 0; i < count; i++ {
		node := a.container.Append(a.particleOpts.Class, a.particleOpts.Glyph)
		a.nodes = append(a.nodes, node)
		a.particles = append(a.particles, a.particleOpts.New(ParticleBase{
			Owner:   a,
			Element: node,
			Index:   i,
			Name:    RuleName(a.particleOpts.Class, i),
		}))
	}
}

// Run implements Animation.
func (a *BatchedReflowAnimation) Run() {
	if a.state != Running {
		return
	}
	refresh := len(a.particles) > 0 &&
		(a.stale || a.particleOpts.Refresh == RefreshEveryCycle)

	// Parent parameters first so particles see this cycle's derived values.
	parent := a.timeline.Next()
	if refresh {
		batch := keyframes.NewBatch(len(a.particles))
		for _, p := range a.particles {
			batch.Add(p.GenerateStyle())
		}
		batch.Install(a.installer, GroupKey(a.class))
	}
	keyframes.Define(a.installer, parent)

	a.element.RemoveClass(a.class)
	if refresh {
		for _, n := range a.nodes {
			n.SetStyle(StyleAnimationName, "")
		}
	}
	a.element.ReadLayout()
	a.element.AddClass(a.class)
	if refresh {
		for i, n := range a.nodes {
			n.SetStyle(StyleAnimationName, RuleName(a.particleOpts.Class, i))
		}
		a.stale = false
		if a.particleOpts.Refresh == RefreshOnGroupFinish {
			if a.cancelGroup != nil {
				a.cancelGroup()
			}
			a.cancelGroup = a.nodes[len(a.nodes)-1].OnceFinished(a.groupFinished)
		}
	}

	a.cycles++
	a.arm(a.Run)
}

func (a *BatchedReflowAnimation) groupFinished() {
	a.cancelGroup = nil
	if a.state != Running {
		return
	}
	a.stale = true
}

// Invalidate marks the particle set for regeneration on the next cycle.
func (a *BatchedReflowAnimation) Invalidate() {
	a.stale = true
}

// Particles returns the particle effects in index order.
func (a *BatchedReflowAnimation) Particles() []ParticleEffect {
	return a.particles
}

// ParticleCount reports how many particle nodes are alive.
func (a *BatchedReflowAnimation) ParticleCount() int {
	return len(a.nodes)
}

// Stop implements Animation. The particle container and every particle node
// are removed from the presentation tree.
func (a *BatchedReflowAnimation) Stop() {
	if !a.halt() {
		return
	}
	if a.cancelGroup != nil {
		a.cancelGroup()
		a.cancelGroup = nil
	}
	if a.container != nil {
		a.container.Remove()
		a.container = nil
	}
	a.nodes = nil
	a.particles = nil
}
