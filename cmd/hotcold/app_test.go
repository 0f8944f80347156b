// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/hotcold/anim"
	"github.com/framegrace/hotcold/config"
	"github.com/framegrace/hotcold/presets"
)

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func newTestApp(t *testing.T, mode string, m float64) *app {
	t.Helper()
	a, err := newApp(appOptions{Mode: mode, Magnitude: m, Random: anim.NewRandom(1)})
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	a.Resize(80, 24)
	return a
}

func TestAppSwitchesModes(t *testing.T) {
	a := newTestApp(t, "hot", 0.5)
	if !a.manager.Has("hot") || a.doc.Count(presets.SparkClass) != 27 {
		t.Fatalf("hot preset should be running with 27 sparks")
	}

	a.HandleKey(key('c'))
	if a.manager.Has("hot") || !a.manager.Has("cold") {
		t.Fatalf("expected only cold running, have %v", a.manager.IDs())
	}
	if a.doc.Count(presets.SparkClass) != 0 {
		t.Fatalf("sparks should be removed when hot stops")
	}
	if a.doc.Count(presets.SnowflakeClass) == 0 {
		t.Fatalf("expected snowflakes")
	}
	if a.guess.HasClass(presets.HotClass) || !a.guess.HasClass(presets.ColdClass) {
		t.Fatalf("unexpected classes %v", a.guess.Classes())
	}
}

func TestAppMagnitudeKeys(t *testing.T) {
	a := newTestApp(t, "cold", 0.9)
	a.HandleKey(key('+'))
	a.HandleKey(key('+'))
	if a.magnitude != 1 {
		t.Fatalf("magnitude should clamp at 1, got %v", a.magnitude)
	}
	if got := a.doc.Count(presets.SnowflakeClass); got != 100 {
		t.Fatalf("expected 100 flakes at full magnitude, got %d", got)
	}
	for i := 0; i < 12; i++ {
		a.HandleKey(key('-'))
	}
	if a.magnitude != 0 {
		t.Fatalf("magnitude should clamp at 0, got %v", a.magnitude)
	}
	if got := a.doc.Count(presets.SnowflakeClass); got != 1 {
		t.Fatalf("expected a single flake at zero magnitude, got %d", got)
	}
}

func TestAppPauseAndQuit(t *testing.T) {
	a := newTestApp(t, "hot", 0.5)
	a.HandleKey(key(' '))
	a.Tick(time.Second)
	if a.player.Now() != 0 {
		t.Fatalf("paused app should not advance the clock")
	}
	a.HandleKey(key(' '))
	a.Tick(time.Second)
	if a.player.Now() != time.Second {
		t.Fatalf("expected clock at 1s, got %v", a.player.Now())
	}
	if a.HandleKey(key('q')) {
		t.Fatalf("q should end the loop")
	}
	if a.manager.Len() != 0 {
		t.Fatalf("quit should stop every animation")
	}
}

func TestAppReloadAppliesTuning(t *testing.T) {
	a := newTestApp(t, "hot", 1)
	cfg := config.Default()
	cfg.Section("hot")["spark_max"] = 10
	a.reload(cfg)
	if got := a.doc.Count(presets.SparkClass); got != 10 {
		t.Fatalf("reload should rebuild with spark_max 10, got %d", got)
	}
}

func TestAppDraws(t *testing.T) {
	a := newTestApp(t, "hot", 0.5)
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer s.Fini()
	s.SetSize(80, 24)
	a.Tick(100 * time.Millisecond)
	a.Draw(s)
	r, _, _, _ := s.GetContent(1, 23)
	if r != 'h' {
		t.Fatalf("expected status line to start with the mode, got %q", r)
	}
}

func TestNewAppRejectsBadInput(t *testing.T) {
	if _, err := newApp(appOptions{Mode: "warm", Magnitude: 0.5}); err == nil {
		t.Fatalf("expected unknown mode error")
	}
	if _, err := newApp(appOptions{Mode: "hot", Magnitude: 3}); err == nil {
		t.Fatalf("expected invalid magnitude error")
	}
}

func TestAppRestartsKeepOneListener(t *testing.T) {
	a := newTestApp(t, "hot", 0.5)
	a.HandleKey(key(' '))
	for _, r := range []rune{'+', '-', 'r', 'c', 'h', '+'} {
		a.HandleKey(key(r))
	}
	if got := a.guess.PendingFinish(); got != 1 {
		t.Fatalf("expected one completion listener on the guess after restarts, got %d", got)
	}
}
