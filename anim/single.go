// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: anim/single.go
// Summary: Animation that installs its own rule and forces one reflow per cycle.

package anim

import "github.com/framegrace/hotcold/keyframes"

// SingleReflowAnimation regenerates, installs and restarts one timeline per cycle.
type SingleReflowAnimation struct {
	lifecycle
}

// NewSingleReflow builds an idle animation from opts.
func NewSingleReflow(opts Options) *SingleReflowAnimation {
	return &SingleReflowAnimation{lifecycle: newLifecycle(opts)}
}

// Start implements Animation.
func (a *SingleReflowAnimation) Start() error {
	if err := a.begin(); err != nil {
		return err
	}
	a.Run()
	return nil
}

// Run implements Animation. Late completion callbacks land here after Stop
// and are dropped by the state check.
func (a *SingleReflowAnimation) Run() {
	if a.state != Running {
		return
	}
	keyframes.Define(a.installer, a.timeline.Next())

	a.element.RemoveClass(a.class)
	a.element.ReadLayout()
	a.element.AddClass(a.class)

	a.cycles++
	a.arm(a.Run)
}

// Stop implements Animation.
func (a *SingleReflowAnimation) Stop() {
	a.halt()
}
