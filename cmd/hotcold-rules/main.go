// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/hotcold-rules/main.go
// Summary: Prints the keyframe rules a preset installs after a stretch of simulated time.
// Usage: hotcold-rules -mode cold -magnitude 1 -time 16s -indent

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/framegrace/hotcold/anim"
	"github.com/framegrace/hotcold/config"
	"github.com/framegrace/hotcold/keyframes"
	"github.com/framegrace/hotcold/presets"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out *os.File) error {
	fs := flag.NewFlagSet("hotcold-rules", flag.ContinueOnError)
	mode := fs.String("mode", "hot", "Preset to dump")
	magnitude := fs.Float64("magnitude", 0.5, "Effect intensity in [0,1]")
	elapsed := fs.Duration("time", 0, "Simulated time to play before dumping")
	width := fs.Float64("width", 0, "Element width in px (0: terminal width, else 640)")
	configPath := fs.String("config", "", "Config file (.json or .yaml)")
	seed := fs.Uint64("seed", 1, "Random seed")
	indent := fs.Bool("indent", false, "One keyframe per line")
	colour := fs.String("color", "auto", "Colour output: auto, always or never")
	style := fs.String("style", "", "Chroma style name")
	verbose := fs.Bool("v", false, "Log to stderr")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	fd := int(out.Fd())
	tty := term.IsTerminal(fd)
	if *width <= 0 {
		*width = 640
		if tty {
			if cols, _, err := term.GetSize(fd); err == nil && cols > 0 {
				*width = float64(cols) * cfg.GetFloat("render", "px_per_col", 8)
			}
		}
	}

	var useColour bool
	switch *colour {
	case "always":
		useColour = true
	case "never":
		useColour = false
	case "auto":
		useColour = tty
	default:
		return fmt.Errorf("bad -color %q", *colour)
	}

	opts := dumpOptions{
		Mode:      *mode,
		Magnitude: *magnitude,
		Width:     *width,
		Elapsed:   *elapsed,
		Tuning:    presets.TuningFromConfig(cfg),
		Random:    anim.NewRandom(*seed),
		Indent:    *indent,
		Colour:    useColour,
		Style:     *style,
	}
	store := keyframes.NewStore()
	res, err := simulate(store, opts)
	if err != nil {
		return err
	}
	return dump(out, store, res, opts)
}
