// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: anim/animation.go
// Summary: Animation capability and the shared Idle/Running/Stopped lifecycle.
// Usage: SingleReflowAnimation and BatchedReflowAnimation embed lifecycle.

package anim

import (
	"fmt"

	"github.com/framegrace/hotcold/keyframes"
)

// State is the lifecycle position of an animation. Stopped is terminal.
type State int

const (
	Idle State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Animation is a restartable unit bound to one element.
type Animation interface {
	// Start moves Idle to Running, performs one-time setup and runs the first cycle.
	Start() error
	// Run performs one cycle. It is a no-op unless the animation is Running.
	Run()
	// Stop halts visible motion and releases owned nodes.
	Stop()
	State() State
}

// Generator produces the timeline for the next cycle, regenerating any
// derived parameters on the way.
type Generator interface {
	Next() *keyframes.Descriptor
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func() *keyframes.Descriptor

func (f GeneratorFunc) Next() *keyframes.Descriptor { return f() }

// Options configures the parent timeline of an animation.
type Options struct {
	Element   Element
	Class     string
	Loop      bool
	Installer keyframes.Installer
	Timeline  Generator
}

type lifecycle struct {
	element   Element
	class     string
	loop      bool
	installer keyframes.Installer
	timeline  Generator
	state     State
	cycles    int
	// pending cancels the listener armed for the current cycle.
	pending func()
}

func newLifecycle(opts Options) lifecycle {
	return lifecycle{
		element:   opts.Element,
		class:     opts.Class,
		loop:      opts.Loop,
		installer: opts.Installer,
		timeline:  opts.Timeline,
	}
}

func (l *lifecycle) begin() error {
	if l.state != Idle {
		return fmt.Errorf("%w: %s is %s", ErrNotIdle, l.class, l.state)
	}
	l.state = Running
	return nil
}

// State reports the lifecycle state.
func (l *lifecycle) State() State { return l.state }

// Class is the style class toggled on the bound element.
func (l *lifecycle) Class() string { return l.class }

// Element returns the bound element.
func (l *lifecycle) Element() Element { return l.element }

// Cycles counts completed Run calls that produced a cycle.
func (l *lifecycle) Cycles() int { return l.cycles }

func (l *lifecycle) arm(run func()) {
	if l.pending != nil {
		l.pending()
		l.pending = nil
	}
	if l.loop {
		l.pending = l.element.OnceFinished(run)
	}
}

// halt moves to Stopped and detaches the armed listener. It reports false
// when the animation was already stopped.
func (l *lifecycle) halt() bool {
	if l.state == Stopped {
		return false
	}
	l.state = Stopped
	if l.pending != nil {
		l.pending()
		l.pending = nil
	}
	l.element.RemoveClass(l.class)
	return true
}
