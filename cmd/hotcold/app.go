// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/hotcold/app.go
// Summary: Interactive demo state: one guess label, one running preset, keyboard control.
// Usage: Driven by termview.Loop; every method runs on the loop goroutine.

package main

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/hotcold/anim"
	"github.com/framegrace/hotcold/config"
	"github.com/framegrace/hotcold/dom"
	"github.com/framegrace/hotcold/internal/player"
	"github.com/framegrace/hotcold/internal/termview"
	"github.com/framegrace/hotcold/keyframes"
	"github.com/framegrace/hotcold/presets"
)

const magnitudeStep = 0.1

type appOptions struct {
	Mode      string
	Magnitude float64
	Guess     string
	Config    config.Config
	Installer keyframes.Installer
	Store     *keyframes.Store
	Random    anim.Random
}

type app struct {
	cfg       config.Config
	tuning    presets.Tuning
	rng       anim.Random
	installer keyframes.Installer

	doc     *dom.Document
	guess   *dom.Node
	manager *anim.Manager
	player  *player.Player
	view    *termview.View

	mode      string
	magnitude float64
	paused    bool
	lastErr   error
}

func newApp(opts appOptions) (*app, error) {
	if _, ok := presets.Lookup(opts.Mode); !ok {
		return nil, fmt.Errorf("unknown mode %q (have %v)", opts.Mode, presets.Names())
	}
	if err := anim.ValidateMagnitude(opts.Magnitude); err != nil {
		return nil, fmt.Errorf("magnitude %v: %w", opts.Magnitude, err)
	}
	if opts.Store == nil {
		opts.Store = keyframes.NewStore()
	}
	if opts.Installer == nil {
		opts.Installer = opts.Store
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Guess == "" {
		opts.Guess = "42"
	}

	doc := dom.NewDocument(0)
	a := &app{
		rng:       opts.Random,
		installer: opts.Installer,
		doc:       doc,
		guess:     doc.Body().AppendNode("guess", opts.Guess),
		manager:   anim.NewManager(),
		mode:      opts.Mode,
		magnitude: opts.Magnitude,
	}
	a.player = player.New(doc, opts.Store)
	a.view = termview.New(doc, a.player, termview.Options{})
	a.configure(opts.Config)
	a.view.Meter().Set(a.magnitude)
	return a, nil
}

// configure applies cfg without restarting the running preset.
func (a *app) configure(cfg config.Config) {
	a.cfg = cfg
	a.tuning = presets.TuningFromConfig(cfg)
	a.view.SetScale(cfg.GetFloat("render", "px_per_col", 8), cfg.GetFloat("render", "px_per_row", 16))
	name := cfg.GetString("render", "timing", "ease")
	timing, err := player.Timing(name)
	if err != nil {
		log.Printf("Hotcold: %v; keeping current timing", err)
		return
	}
	a.player.SetTiming(timing)
}

// reload swaps in a freshly loaded config and restarts the preset with it.
func (a *app) reload(cfg config.Config) {
	log.Printf("Hotcold: Config reloaded")
	a.configure(cfg)
	a.restart()
}

func (a *app) restart() {
	a.manager.Clear()
	factory, ok := presets.Lookup(a.mode)
	if !ok {
		a.lastErr = fmt.Errorf("unknown mode %q", a.mode)
		return
	}
	opts := []presets.Option{presets.WithTuning(a.tuning)}
	if a.rng != nil {
		opts = append(opts, presets.WithRandom(a.rng))
	}
	animation, err := factory(a.guess, a.magnitude, a.installer, opts...)
	if err == nil {
		err = a.manager.Add(a.mode, animation)
	}
	a.lastErr = err
	if err != nil {
		log.Printf("Hotcold: Failed to start %s: %v", a.mode, err)
	}
}

func (a *app) setMode(mode string) {
	if mode == a.mode && a.manager.Has(mode) {
		return
	}
	a.mode = mode
	a.restart()
}

func (a *app) nudge(delta float64) {
	m := math.Round((a.magnitude+delta)*10) / 10
	if m < 0 {
		m = 0
	}
	if m > 1 {
		m = 1
	}
	if m == a.magnitude {
		return
	}
	a.magnitude = m
	a.view.Meter().Set(m)
	a.restart()
}

func (a *app) Resize(cols, rows int) {
	width := float64(cols) * a.cfg.GetFloat("render", "px_per_col", 8)
	if width == a.doc.Body().Width() && a.manager.Len() > 0 {
		return
	}
	a.doc.Body().SetWidth(width)
	a.restart()
}

func (a *app) Tick(dt time.Duration) {
	if !a.paused {
		a.player.Advance(dt)
	}
	a.view.Tick(dt)
}

func (a *app) Draw(s tcell.Screen) {
	a.view.SetStatus(a.status())
	a.view.Draw(s)
}

func (a *app) status() string {
	if a.lastErr != nil {
		return "error: " + a.lastErr.Error()
	}
	particles := 0
	if current, ok := a.manager.Get(a.mode); ok {
		if p, ok := current.(interface{ ParticleCount() int }); ok {
			particles = p.ParticleCount()
		}
	}
	state := "running"
	if a.paused {
		state = "paused"
	}
	return fmt.Sprintf("%s %s  m=%s  particles=%d  t=%.1fs  [h]ot [c]old [+/-] [space] [q]uit",
		a.mode, state, strconv.FormatFloat(a.magnitude, 'f', 1, 64), particles, a.player.Now().Seconds())
}

func (a *app) HandleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape {
		return false
	}
	if ev.Key() != tcell.KeyRune {
		return true
	}
	switch ev.Rune() {
	case 'q':
		a.manager.Clear()
		return false
	case 'h':
		a.setMode("hot")
	case 'c':
		a.setMode("cold")
	case '+', '=':
		a.nudge(magnitudeStep)
	case '-', '_':
		a.nudge(-magnitudeStep)
	case ' ':
		a.paused = !a.paused
	case 'r':
		a.restart()
	}
	return true
}
