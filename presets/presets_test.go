// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package presets

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/framegrace/hotcold/anim"
	"github.com/framegrace/hotcold/config"
	"github.com/framegrace/hotcold/dom"
	"github.com/framegrace/hotcold/keyframes"
)

func newGuess(width float64) (*dom.Document, *dom.Node) {
	doc := dom.NewDocument(width)
	return doc, doc.Body().AppendNode("guess", "42")
}

func TestHotCycle(t *testing.T) {
	doc, el := newGuess(400)
	store := keyframes.NewStore()
	h, err := NewHot(el, 0.5, store, WithRandom(anim.NewRandom(1)))
	if err != nil {
		t.Fatalf("NewHot: %v", err)
	}
	if err := h.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := h.ParticleCount(); got != 27 {
		t.Fatalf("expected 27 sparks at 0.5, got %d", got)
	}
	if got := doc.Count(SparkClass); got != 27 {
		t.Fatalf("expected 27 spark nodes, got %d", got)
	}
	if got := el.Style(anim.StyleAnimationDuration); got != "900ms" {
		t.Fatalf("expected 900ms duration, got %q", got)
	}
	end := h.LastEndPosition()
	if end == 0 || math.Abs(end) > 100 {
		t.Fatalf("landing %v outside (0, 100]", end)
	}

	adds, removes := el.ClassAdds(HotClass), el.ClassRemoves(HotClass)
	el.Finish()
	if el.ClassAdds(HotClass) != adds+1 || el.ClassRemoves(HotClass) != removes+1 {
		t.Fatalf("completion must remove and re-add the class exactly once")
	}
	if h.LastEndPosition() == end {
		t.Fatalf("landing position should move on the next hop")
	}

	text, ok := store.Rule(HotClass)
	if !ok || strings.Count(text, "@keyframes") != 1 {
		t.Fatalf("expected a single hot-bounce block, got %q", text)
	}
	parsed, err := keyframes.Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := parsed[0].Len(); got != 26 {
		t.Fatalf("expected 26 bounce frames, got %d", got)
	}

	group, ok := store.Rule(anim.GroupKey(HotClass))
	if !ok {
		t.Fatalf("spark rules not installed")
	}
	sparks, err := keyframes.Parse(group)
	if err != nil {
		t.Fatalf("Parse sparks: %v", err)
	}
	if len(sparks) != 27 || sparks[0].Name != anim.RuleName(SparkClass, 0) {
		t.Fatalf("unexpected spark rules: %d first=%q", len(sparks), sparks[0].Name)
	}
	if got := store.Installs(anim.GroupKey(HotClass)); got != 2 {
		t.Fatalf("sparks regenerate every hop, got %d installs", got)
	}
	if doc.Reflows() != 2 {
		t.Fatalf("expected one reflow per hop, got %d", doc.Reflows())
	}
}

func TestHotSparkFades(t *testing.T) {
	_, el := newGuess(400)
	store := keyframes.NewStore()
	h, err := NewHot(el, 1, store, WithRandom(anim.NewRandom(3)))
	if err != nil {
		t.Fatalf("NewHot: %v", err)
	}
	if err := h.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	group, _ := store.Rule(anim.GroupKey(HotClass))
	if !strings.Contains(group, "45.1% { opacity:1; }") {
		t.Fatalf("spark should hold full opacity until 45.1%%")
	}
	if !strings.Contains(group, "99.9% { opacity:0; }") {
		t.Fatalf("spark should vanish at 99.9%%")
	}
}

func TestHotDeterministicWithSeed(t *testing.T) {
	run := func() string {
		_, el := newGuess(400)
		store := keyframes.NewStore()
		h, err := NewHot(el, 0.7, store, WithRandom(anim.NewRandom(42)))
		if err != nil {
			t.Fatalf("NewHot: %v", err)
		}
		if err := h.Start(); err != nil {
			t.Fatalf("Start: %v", err)
		}
		text, _ := store.Rule(HotClass)
		group, _ := store.Rule(anim.GroupKey(HotClass))
		return text + group
	}
	if run() != run() {
		t.Fatalf("same seed should produce the same rules")
	}
}

func TestColdFlurry(t *testing.T) {
	doc, el := newGuess(400)
	store := keyframes.NewStore()
	c, err := NewCold(el, 1, store, WithRandom(anim.NewRandom(7)))
	if err != nil {
		t.Fatalf("NewCold: %v", err)
	}
	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := doc.Count(SnowflakeClass); got != 100 {
		t.Fatalf("expected 100 snowflakes, got %d", got)
	}
	if got := el.Style(anim.StyleAnimationDuration); got != "500ms" {
		t.Fatalf("expected 500ms shake, got %q", got)
	}

	container := doc.FindByID(anim.ContainerID(ColdClass))
	if container == nil {
		t.Fatalf("particle container missing")
	}
	flakes := container.Children()
	if got := flakes[0].Style(anim.StyleAnimationDuration); got != "15s" {
		t.Fatalf("expected 15s fall at full magnitude, got %q", got)
	}

	rules, err := keyframes.Parse(mustRule(t, store, anim.GroupKey(ColdClass)))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for _, d := range rules {
		for _, f := range d.Frames {
			if f.Offset < 0 || f.Offset > 100 {
				t.Fatalf("%s has offset %v outside [0,100]", d.Name, f.Offset)
			}
		}
	}

	group := anim.GroupKey(ColdClass)
	el.Finish()
	if got := store.Installs(group); got != 1 {
		t.Fatalf("flakes must not regenerate before the flurry ends, got %d installs", got)
	}
	flakes[len(flakes)-1].Finish()
	el.Finish()
	if got := store.Installs(group); got != 2 {
		t.Fatalf("flakes should regenerate after the flurry ends, got %d installs", got)
	}

	c.Stop()
	if got := doc.Count(SnowflakeClass); got != 0 {
		t.Fatalf("stop should remove every snowflake, %d left", got)
	}
	if el.HasClass(ColdClass) {
		t.Fatalf("stop should remove the shake class")
	}
}

func TestParticleCapApplies(t *testing.T) {
	doc, el := newGuess(400)
	tuning := DefaultTuning()
	tuning.ParticleCap = 10
	c, err := NewCold(el, 1, keyframes.NewStore(), WithTuning(tuning), WithRandom(anim.NewRandom(1)))
	if err != nil {
		t.Fatalf("NewCold: %v", err)
	}
	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := doc.Count(SnowflakeClass); got != 10 {
		t.Fatalf("expected cap of 10, got %d", got)
	}
}

func TestInvalidMagnitude(t *testing.T) {
	_, el := newGuess(400)
	for _, m := range []float64{-0.1, 1.01, math.NaN()} {
		if _, err := NewHot(el, m, keyframes.NewStore()); !errors.Is(err, anim.ErrInvalidMagnitude) {
			t.Fatalf("NewHot(%v): expected ErrInvalidMagnitude, got %v", m, err)
		}
		if _, err := NewCold(el, m, keyframes.NewStore()); !errors.Is(err, anim.ErrInvalidMagnitude) {
			t.Fatalf("NewCold(%v): expected ErrInvalidMagnitude, got %v", m, err)
		}
	}
}

func TestRegistry(t *testing.T) {
	if got := Names(); !reflect.DeepEqual(got, []string{"cold", "hot"}) {
		t.Fatalf("unexpected presets %v", got)
	}
	factory, ok := Lookup("hot")
	if !ok {
		t.Fatalf("hot preset missing")
	}
	_, el := newGuess(400)
	a, err := factory(el, 0.2, keyframes.NewStore(), WithRandom(anim.NewRandom(1)))
	if err != nil || a == nil {
		t.Fatalf("factory: %v", err)
	}
	if a, err := factory(el, 2, keyframes.NewStore()); err == nil || a != nil {
		t.Fatalf("factory should reject magnitude 2 with a nil animation")
	}
	if _, ok := Lookup("warm"); ok {
		t.Fatalf("unexpected preset warm")
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("duplicate registration should panic")
		}
	}()
	Register("hot", nil)
}

func TestTuningFromConfig(t *testing.T) {
	cfg := config.Config{
		"hot":    config.Section{"range_px": 50.0, "spark_max": 10},
		"cold":   config.Section{"fall_phases": 4},
		"engine": config.Section{"particle_cap": 0},
	}
	tuning := TuningFromConfig(cfg)
	if tuning.Hot.RangePx != 50 || tuning.Hot.SparkMax != 10 {
		t.Fatalf("hot overrides not applied: %+v", tuning.Hot)
	}
	if tuning.Cold.FallPhases != 4 {
		t.Fatalf("fall phases override not applied")
	}
	if tuning.ParticleCap != 200 {
		t.Fatalf("non-positive cap should keep the default, got %d", tuning.ParticleCap)
	}
	if got := TuningFromConfig(config.Default()); !reflect.DeepEqual(got, DefaultTuning()) {
		t.Fatalf("embedded defaults should match DefaultTuning")
	}
}

func TestParticleCount(t *testing.T) {
	cases := []struct {
		m, lo, hi float64
		limit     int
		want      int
	}{
		{0, 3, 50, 200, 3},
		{0.5, 3, 50, 200, 27},
		{1, 1, 100, 200, 100},
		{1, 1, 100, 50, 50},
	}
	for _, tc := range cases {
		if got := ParticleCount(tc.m, tc.lo, tc.hi, tc.limit); got != tc.want {
			t.Fatalf("ParticleCount(%v,%v,%v,%d) = %d, want %d", tc.m, tc.lo, tc.hi, tc.limit, got, tc.want)
		}
	}
}

func mustRule(t *testing.T, store *keyframes.Store, key string) string {
	t.Helper()
	text, ok := store.Rule(key)
	if !ok {
		t.Fatalf("rule %q not installed", key)
	}
	return text
}
