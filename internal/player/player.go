// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/player/player.go
// Summary: Virtual-clock interpreter for installed keyframe rules.
// Usage: p := player.New(doc, store); p.Advance(dt); poses := p.Poses().
// Notes: A node (re)starts its animation whenever its dom epoch changes. Completion
//        events are dispatched through dom.Node.Finish in document order.

// Package player plays keyframe rules against a dom.Document. It is driven
// from the same goroutine as the document and is not safe for concurrent use.
package player

import (
	"log"
	"time"

	"github.com/framegrace/hotcold/anim"
	"github.com/framegrace/hotcold/curve"
	"github.com/framegrace/hotcold/dom"
	"github.com/framegrace/hotcold/keyframes"
)

// Pose is the evaluated visual state of one animated node.
type Pose struct {
	Node     *dom.Node
	Name     string
	Motion   keyframes.Motion
	Opacity  float64
	Progress float64
	Running  bool
}

// Option configures a Player.
type Option func(*Player)

// WithTiming sets the per-segment timing function. Defaults to Ease.
func WithTiming(fn TimingFunc) Option {
	return func(p *Player) {
		if fn != nil {
			p.timing = fn
		}
	}
}

type track struct {
	epoch    uint64
	name     string
	start    time.Duration
	delay    time.Duration
	duration time.Duration
	done     bool
}

// Player advances a virtual clock and turns rules into poses.
type Player struct {
	doc    *dom.Document
	store  *keyframes.Store
	timing TimingFunc

	clock  time.Duration
	tracks map[*dom.Node]*track

	rules   map[string]*compiled
	version uint64
	loaded  bool
}

// New creates a player over doc reading rules from store.
func New(doc *dom.Document, store *keyframes.Store, opts ...Option) *Player {
	p := &Player{
		doc:    doc,
		store:  store,
		timing: Ease,
		tracks: make(map[*dom.Node]*track),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	p.sync()
	return p
}

// Now returns the virtual clock.
func (p *Player) Now() time.Duration { return p.clock }

// SetTiming swaps the timing function.
func (p *Player) SetTiming(fn TimingFunc) {
	if fn != nil {
		p.timing = fn
	}
}

// Advance moves the clock by dt and dispatches completion events for every
// animation that ran out. It returns the number of events dispatched.
func (p *Player) Advance(dt time.Duration) int {
	p.sync()
	if dt > 0 {
		p.clock += dt
	}

	var finished []*dom.Node
	p.doc.Walk(func(n *dom.Node, _ int) bool {
		tr := p.tracks[n]
		if tr == nil || tr.done {
			return true
		}
		if p.clock-tr.start >= tr.delay+tr.duration {
			tr.done = true
			finished = append(finished, n)
		}
		return true
	})
	for _, n := range finished {
		n.Finish()
	}
	p.sync()
	return len(finished)
}

// Poses returns the evaluated state of every node with an applied animation,
// in document order.
func (p *Player) Poses() []Pose {
	p.sync()
	var out []Pose
	p.doc.Walk(func(n *dom.Node, _ int) bool {
		if pose, ok := p.pose(n); ok {
			out = append(out, pose)
		}
		return true
	})
	return out
}

// Pose evaluates one node.
func (p *Player) Pose(n *dom.Node) (Pose, bool) {
	p.sync()
	return p.pose(n)
}

func (p *Player) pose(n *dom.Node) (Pose, bool) {
	tr := p.tracks[n]
	if tr == nil {
		return Pose{}, false
	}
	rule := p.rules[tr.name]
	pose := Pose{Node: n, Name: tr.name, Opacity: 1}
	elapsed := p.clock - tr.start - tr.delay
	if elapsed < 0 || tr.done || rule == nil {
		return pose, true
	}
	progress := 1.0
	if tr.duration > 0 {
		progress = curve.Clamp(float64(elapsed)/float64(tr.duration), 0, 1)
	}
	pose.Progress = progress
	pose.Running = true
	pose.Motion, pose.Opacity = rule.sample(progress*100, p.timing)
	return pose, true
}

// sync reloads rules when the store changed and starts, restarts or drops
// tracks to match the document.
func (p *Player) sync() {
	if v := p.store.Version(); !p.loaded || v != p.version {
		p.reload(v)
	}
	seen := make(map[*dom.Node]bool, len(p.tracks))
	p.doc.Walk(func(n *dom.Node, _ int) bool {
		name := p.resolve(n)
		if name == "" {
			return true
		}
		seen[n] = true
		tr := p.tracks[n]
		if tr != nil && tr.epoch == n.Epoch() && tr.name == name {
			return true
		}
		p.tracks[n] = &track{
			epoch:    n.Epoch(),
			name:     name,
			start:    p.clock,
			delay:    parseTime(n.Style(anim.StyleAnimationDelay)),
			duration: parseTime(n.Style(anim.StyleAnimationDuration)),
		}
		return true
	})
	for n := range p.tracks {
		if !seen[n] {
			delete(p.tracks, n)
		}
	}
}

// resolve picks the rule a node runs: its animation-name style, else the
// first class naming an installed rule.
func (p *Player) resolve(n *dom.Node) string {
	if name := n.Style(anim.StyleAnimationName); name != "" {
		if _, ok := p.rules[name]; ok {
			return name
		}
	}
	for _, class := range n.Classes() {
		if _, ok := p.rules[class]; ok {
			return class
		}
	}
	return ""
}

func (p *Player) reload(version uint64) {
	descs, err := p.store.Descriptors()
	if err != nil {
		log.Printf("Player: Skipping malformed rules: %v", err)
	}
	rules := make(map[string]*compiled, len(descs))
	for name, d := range descs {
		c, err := compile(d)
		if err != nil {
			log.Printf("Player: %v", err)
			continue
		}
		rules[name] = c
	}
	p.rules = rules
	p.version = version
	p.loaded = true
}

func parseTime(v string) time.Duration {
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Player: Bad time value %q: %v", v, err)
		return 0
	}
	return d
}
