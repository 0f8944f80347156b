// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package termview

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/hotcold/anim"
	"github.com/framegrace/hotcold/dom"
	"github.com/framegrace/hotcold/internal/player"
	"github.com/framegrace/hotcold/keyframes"
	"github.com/framegrace/hotcold/presets"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func TestDrawCentresText(t *testing.T) {
	s := newScreen(t, 40, 11)
	doc := dom.NewDocument(400)
	doc.Body().AppendNode("guess", "42")

	New(doc, nil, Options{}).Draw(s)
	if runeAt(s, 19, 5) != '4' || runeAt(s, 20, 5) != '2' {
		t.Fatalf("expected 42 centred at row 5, got %q%q", runeAt(s, 19, 5), runeAt(s, 20, 5))
	}
}

func TestDrawAppliesMotion(t *testing.T) {
	s := newScreen(t, 40, 11)
	doc := dom.NewDocument(400)
	el := doc.Body().AppendNode("", "42")
	el.SetStyle(anim.StyleAnimationDuration, "1s")
	store := keyframes.NewStore()
	keyframes.Define(store, keyframes.New("slide").
		Set(0, keyframes.Transform(keyframes.Translate(80, 32))).
		Set(100, keyframes.Transform(keyframes.Translate(80, 32))))
	el.AddClass("slide")

	New(doc, player.New(doc, store), Options{PxPerCol: 8, PxPerRow: 16}).Draw(s)
	if runeAt(s, 29, 7) != '4' {
		t.Fatalf("expected node moved 10 cols right and 2 rows down")
	}
	if runeAt(s, 19, 5) == '4' {
		t.Fatalf("node still drawn at its resting cell")
	}
}

func TestSparksRendered(t *testing.T) {
	s := newScreen(t, 160, 50)
	doc := dom.NewDocument(400)
	el := doc.Body().AppendNode("guess", "42")
	store := keyframes.NewStore()
	h, err := presets.NewHot(el, 1, store, presets.WithRandom(anim.NewRandom(5)))
	if err != nil {
		t.Fatalf("NewHot: %v", err)
	}
	if err := h.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	p := player.New(doc, store)
	p.Advance(200 * time.Millisecond)

	New(doc, p, Options{}).Draw(s)
	w, ht := s.Size()
	sparks := 0
	for y := 0; y < ht; y++ {
		for x := 0; x < w; x++ {
			if runeAt(s, x, y) == '🌟' {
				sparks++
			}
		}
	}
	if sparks == 0 {
		t.Fatalf("expected sparks on screen")
	}
}

func TestStatusLine(t *testing.T) {
	s := newScreen(t, 60, 10)
	doc := dom.NewDocument(400)
	v := New(doc, nil, Options{})
	v.SetStatus("hot 0.50")
	v.Meter().Set(1)
	v.Tick(time.Second)
	v.Draw(s)
	if runeAt(s, 1, 9) != 'h' {
		t.Fatalf("status text missing")
	}
	if runeAt(s, 60-meterCells-1, 9) != '█' || runeAt(s, 60-2, 9) != '█' {
		t.Fatalf("meter should be full")
	}
}

func TestMeterGlides(t *testing.T) {
	m := NewMeter(0)
	m.Set(1)
	mid := m.Update(100 * time.Millisecond)
	if mid <= 0 || mid >= 1 {
		t.Fatalf("expected value between 0 and 1 mid-glide, got %v", mid)
	}
	if got := m.Update(time.Second); got != 1 {
		t.Fatalf("expected glide to settle at 1, got %v", got)
	}
	if m.Target() != 1 {
		t.Fatalf("unexpected target %v", m.Target())
	}
}

type quitApp struct {
	screen  tcell.SimulationScreen
	loop    *Loop
	posted  bool
	resized [2]int
}

func (a *quitApp) Resize(cols, rows int) {
	a.resized = [2]int{cols, rows}
	a.loop.Post(func() { a.posted = true })
	a.screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
}
func (a *quitApp) Tick(time.Duration)  {}
func (a *quitApp) Draw(s tcell.Screen) { s.Show() }
func (a *quitApp) HandleKey(ev *tcell.EventKey) bool {
	return !(ev.Key() == tcell.KeyRune && ev.Rune() == 'q')
}

func TestRunStopsOnQuitKey(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	SetScreenFactory(func() (tcell.Screen, error) { return s, nil })
	defer SetScreenFactory(nil)

	app := &quitApp{screen: s, loop: &Loop{}}
	done := make(chan error, 1)
	go func() { done <- app.loop.Run(app, 60) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return after quit key")
	}
	if !app.posted {
		t.Fatalf("posted work should run before the quit key")
	}
	if app.resized[0] == 0 {
		t.Fatalf("app was not sized")
	}
}
