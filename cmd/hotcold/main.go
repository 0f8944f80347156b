// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/hotcold/main.go
// Summary: Interactive terminal demo for the hot and cold presets.
// Usage: hotcold -mode hot -magnitude 0.6 [-config path] [-trace trace.db] [-log hotcold.log]
// Notes: Logs go to a file because tcell owns the terminal.

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/framegrace/hotcold/anim"
	"github.com/framegrace/hotcold/config"
	"github.com/framegrace/hotcold/internal/termview"
	"github.com/framegrace/hotcold/internal/trace"
	"github.com/framegrace/hotcold/keyframes"
	"github.com/framegrace/hotcold/presets"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("hotcold", flag.ContinueOnError)
	mode := fs.String("mode", "hot", "Preset to run ("+strings.Join(presets.Names(), ", ")+")")
	magnitude := fs.Float64("magnitude", 0.5, "Effect intensity in [0,1]")
	guess := fs.String("guess", "42", "Label the effect is attached to")
	configPath := fs.String("config", "", "Config file (.json or .yaml); default: user config dir")
	watch := fs.Bool("watch", true, "Reload the config file when it changes")
	tracePath := fs.String("trace", "", "Record installer calls to this SQLite file")
	seed := fs.Uint64("seed", 0, "Random seed (0 uses engine.seed, then the clock)")
	logPath := fs.String("log", "", "Append logs to this file (default: discard)")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	closeLog, err := setupLog(*logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	if *configPath != "" {
		if err := config.UsePath(*configPath); err != nil {
			return err
		}
	}
	cfg := config.System()
	path, err := config.Path()
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}

	store := keyframes.NewStore()
	var installer keyframes.Installer = store
	if *tracePath != "" {
		rec, err := trace.Open(store, trace.ConfigFrom(*tracePath, cfg))
		if err != nil {
			return fmt.Errorf("open trace: %w", err)
		}
		defer func() {
			logSummary(rec)
			rec.Close()
		}()
		installer = rec
	}

	var rng anim.Random
	if s := *seed; s != 0 {
		rng = anim.NewRandom(s)
	} else if s := cfg.GetInt("engine", "seed", 0); s > 0 {
		rng = anim.NewRandom(uint64(s))
	}

	a, err := newApp(appOptions{
		Mode:      *mode,
		Magnitude: *magnitude,
		Guess:     *guess,
		Config:    cfg,
		Installer: installer,
		Store:     store,
		Random:    rng,
	})
	if err != nil {
		return err
	}

	loop := &termview.Loop{}
	if *watch {
		w, err := config.Watch(path, config.DefaultDebounce)
		if err != nil {
			log.Printf("Hotcold: Config watch disabled: %v", err)
		} else {
			defer w.Close()
			go forwardReloads(w, loop, a)
		}
	}

	return loop.Run(a, cfg.GetInt("render", "fps", 30))
}

func forwardReloads(w *config.Watcher, loop *termview.Loop, a *app) {
	for {
		select {
		case cfg, ok := <-w.Changes:
			if !ok {
				return
			}
			loop.Post(func() { a.reload(cfg) })
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Printf("Hotcold: Config watch: %v", err)
		}
	}
}

func setupLog(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0640)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return func() { f.Close() }, nil
}

func logSummary(rec *trace.Recorder) {
	if err := rec.Flush(); err != nil {
		log.Printf("Hotcold: Trace flush: %v", err)
		return
	}
	stats, err := rec.Summary()
	if err != nil {
		log.Printf("Hotcold: Trace summary: %v", err)
		return
	}
	for _, s := range stats {
		log.Printf("Hotcold: Trace %s installs=%d blocks=%d bytes=%d", s.Key, s.Installs, s.Blocks, s.Bytes)
	}
}
