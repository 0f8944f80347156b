// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/termview/runner.go
// Summary: Terminal event loop driving an App at a fixed frame rate.
// Notes: Every App method runs on the loop goroutine. Work from other goroutines
//        is handed over through Post.

package termview

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

// App is what Run drives.
type App interface {
	Resize(cols, rows int)
	Tick(dt time.Duration)
	Draw(s tcell.Screen)
	// HandleKey returns false to end the loop.
	HandleKey(ev *tcell.EventKey) bool
}

var screenFactory = tcell.NewScreen

// SetScreenFactory overrides the screen factory used by Run. Passing nil restores the default.
func SetScreenFactory(factory func() (tcell.Screen, error)) {
	if factory == nil {
		screenFactory = tcell.NewScreen
		return
	}
	screenFactory = factory
}

// Loop owns the screen while Run is active.
type Loop struct {
	mu     sync.Mutex
	screen tcell.Screen
	queue  []func()
}

// Post schedules fn on the loop goroutine. It is a no-op once the loop ends.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	screen := l.screen
	if screen != nil {
		l.queue = append(l.queue, fn)
	}
	l.mu.Unlock()
	if screen != nil {
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	}
}

func (l *Loop) drain() []func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	q := l.queue
	l.queue = nil
	return q
}

type frameTick struct{}

// Run executes app inside a tcell screen until HandleKey returns false or
// Ctrl-C is pressed. fps <= 0 defaults to 30.
func (l *Loop) Run(app App, fps int) error {
	screen, err := screenFactory()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	screen.Clear()
	screen.HideCursor()

	l.mu.Lock()
	l.screen = screen
	l.mu.Unlock()
	defer func() {
		l.mu.Lock()
		l.screen = nil
		l.queue = nil
		l.mu.Unlock()
	}()

	if fps <= 0 {
		fps = 30
	}
	frame := time.Second / time.Duration(fps)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(frame)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				_ = screen.PostEvent(tcell.NewEventInterrupt(frameTick{}))
			case <-stop:
				return
			}
		}
	}()

	width, height := screen.Size()
	app.Resize(width, height)
	app.Draw(screen)

	last := time.Now()
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}
		switch tev := ev.(type) {
		case *tcell.EventInterrupt:
			if _, ok := tev.Data().(frameTick); ok {
				now := time.Now()
				app.Tick(now.Sub(last))
				last = now
				app.Draw(screen)
				continue
			}
			for _, fn := range l.drain() {
				fn()
			}
			app.Draw(screen)
		case *tcell.EventResize:
			w, h := tev.Size()
			app.Resize(w, h)
			screen.Sync()
			app.Draw(screen)
		case *tcell.EventKey:
			if tev.Key() == tcell.KeyCtrlC {
				return nil
			}
			if !app.HandleKey(tev) {
				return nil
			}
			app.Draw(screen)
		}
	}
}
