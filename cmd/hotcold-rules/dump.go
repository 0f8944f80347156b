// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/hotcold-rules/dump.go
// Summary: Plays a preset headlessly and writes the installed rules.

package main

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/framegrace/hotcold/anim"
	"github.com/framegrace/hotcold/dom"
	"github.com/framegrace/hotcold/internal/highlight"
	"github.com/framegrace/hotcold/internal/player"
	"github.com/framegrace/hotcold/keyframes"
	"github.com/framegrace/hotcold/presets"
)

type dumpOptions struct {
	Mode      string
	Magnitude float64
	Width     float64
	Elapsed   time.Duration
	Step      time.Duration
	Tuning    presets.Tuning
	Random    anim.Random
	Indent    bool
	Colour    bool
	Style     string
}

type dumpResult struct {
	Cycles    int
	Reflows   int
	Particles int
}

// simulate starts the preset and plays it for opts.Elapsed on a virtual clock.
func simulate(store *keyframes.Store, opts dumpOptions) (dumpResult, error) {
	factory, ok := presets.Lookup(opts.Mode)
	if !ok {
		return dumpResult{}, fmt.Errorf("unknown mode %q (have %v)", opts.Mode, presets.Names())
	}
	doc := dom.NewDocument(opts.Width)
	el := doc.Body().AppendNode("guess", "42")

	popts := []presets.Option{presets.WithTuning(opts.Tuning)}
	if opts.Random != nil {
		popts = append(popts, presets.WithRandom(opts.Random))
	}
	a, err := factory(el, opts.Magnitude, store, popts...)
	if err != nil {
		return dumpResult{}, err
	}
	manager := anim.NewManager()
	if err := manager.Add(opts.Mode, a); err != nil {
		return dumpResult{}, err
	}
	defer manager.Clear()

	step := opts.Step
	if step <= 0 {
		step = time.Second / 30
	}
	p := player.New(doc, store)
	for p.Now() < opts.Elapsed {
		dt := step
		if rest := opts.Elapsed - p.Now(); rest < dt {
			dt = rest
		}
		p.Advance(dt)
	}

	res := dumpResult{Reflows: doc.Reflows()}
	if c, ok := a.(interface{ Cycles() int }); ok {
		res.Cycles = c.Cycles()
	}
	if pc, ok := a.(interface{ ParticleCount() int }); ok {
		res.Particles = pc.ParticleCount()
	}
	return res, nil
}

// dump writes every installed block, one comment header per installer key.
func dump(w io.Writer, store *keyframes.Store, res dumpResult, opts dumpOptions) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "/* %s m=%.2f cycles=%d reflows=%d particles=%d */\n",
		opts.Mode, opts.Magnitude, res.Cycles, res.Reflows, res.Particles)
	for _, key := range store.Keys() {
		text, _ := store.Rule(key)
		fmt.Fprintf(&buf, "/* %s installs=%d */\n", key, store.Installs(key))
		if !opts.Indent {
			buf.WriteString(text)
			buf.WriteByte('\n')
			continue
		}
		descs, err := keyframes.Parse(text)
		if err != nil {
			return fmt.Errorf("rule %s: %w", key, err)
		}
		for _, d := range descs {
			buf.WriteString(keyframes.CompileIndented(d))
		}
	}

	hl := highlight.Plain
	if opts.Colour {
		hl = highlight.Options{Style: opts.Style}
	}
	return highlight.Write(w, buf.String(), hl)
}
