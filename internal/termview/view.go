// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/termview/view.go
// Summary: Draws a dom.Document and its animation poses onto a tcell screen.
// Usage: v := termview.New(doc, player, opts); v.Draw(screen) once per frame.

// Package termview renders the presentation tree in a terminal.
package termview

import (
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/hotcold/dom"
	"github.com/framegrace/hotcold/internal/player"
)

// Options controls how pixel motion maps to terminal cells.
type Options struct {
	PxPerCol float64
	PxPerRow float64
	// Palette colours nodes by their first matching class.
	Palette map[string]tcell.Color
}

// DefaultPalette colours the hot and cold classes.
func DefaultPalette() map[string]tcell.Color {
	return map[string]tcell.Color{
		"hot-bounce":     tcell.ColorRed,
		"hot-spark":      tcell.ColorYellow,
		"cold-shake":     tcell.ColorAqua,
		"cold-snowflake": tcell.ColorWhite,
	}
}

// View renders one document.
type View struct {
	doc    *dom.Document
	player *player.Player
	opts   Options

	status string
	meter  *Meter
}

// New creates a view. Zero cell sizes default to 8x16 pixels.
func New(doc *dom.Document, p *player.Player, opts Options) *View {
	if opts.PxPerCol <= 0 {
		opts.PxPerCol = 8
	}
	if opts.PxPerRow <= 0 {
		opts.PxPerRow = 16
	}
	if opts.Palette == nil {
		opts.Palette = DefaultPalette()
	}
	return &View{doc: doc, player: p, opts: opts, meter: NewMeter(0)}
}

// SetScale updates the pixel-to-cell ratios.
func (v *View) SetScale(pxPerCol, pxPerRow float64) {
	if pxPerCol > 0 {
		v.opts.PxPerCol = pxPerCol
	}
	if pxPerRow > 0 {
		v.opts.PxPerRow = pxPerRow
	}
}

// SetStatus replaces the status line text.
func (v *View) SetStatus(text string) { v.status = text }

// Meter exposes the status-bar thermometer.
func (v *View) Meter() *Meter { return v.meter }

// Tick advances view-only animation such as the meter glide.
func (v *View) Tick(dt time.Duration) { v.meter.Update(dt) }

// Draw clears s and paints every text node at its animated position.
func (v *View) Draw(s tcell.Screen) {
	s.Clear()
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	anchors := layout(v.doc, w, h-1)
	v.doc.Walk(func(n *dom.Node, depth int) bool {
		if depth == 0 || n.Text() == "" {
			return true
		}
		at := anchors[n]
		style := v.styleFor(n)
		if v.player != nil {
			if pose, ok := v.player.Pose(n); ok {
				if pose.Opacity < 0.05 {
					return true
				}
				at.x += int(math.Round(pose.Motion.X / v.opts.PxPerCol))
				at.y += int(math.Round(pose.Motion.Y / v.opts.PxPerRow))
				if pose.Opacity < 0.5 {
					style = style.Dim(true)
				}
			}
		}
		if at.y < 0 || at.y >= h-1 {
			return true
		}
		drawText(s, textStart(at.x, n.Text()), at.y, w, n.Text(), style)
		return true
	})
	v.drawStatus(s, w, h-1)
	s.Show()
}

func (v *View) styleFor(n *dom.Node) tcell.Style {
	style := tcell.StyleDefault
	for _, class := range n.Classes() {
		if c, ok := v.opts.Palette[class]; ok {
			return style.Foreground(c).Bold(true)
		}
	}
	return style
}

const meterCells = 20

func (v *View) drawStatus(s tcell.Screen, w, y int) {
	base := tcell.StyleDefault.Reverse(true)
	for x := 0; x < w; x++ {
		s.SetContent(x, y, ' ', nil, base)
	}
	drawText(s, 1, y, w, v.status, base)

	start := w - meterCells - 2
	if start <= runewidth.StringWidth(v.status)+2 {
		return
	}
	filled := int(math.Round(v.meter.Value() * meterCells))
	s.SetContent(start, y, '[', nil, base)
	for i := 0; i < meterCells; i++ {
		ch, style := '·', base
		if i < filled {
			ch = '█'
			style = base.Foreground(meterColour(float64(i) / meterCells))
		}
		s.SetContent(start+1+i, y, ch, nil, style)
	}
	s.SetContent(start+1+meterCells, y, ']', nil, base)
}

func meterColour(t float64) tcell.Color {
	switch {
	case t < 0.33:
		return tcell.ColorAqua
	case t < 0.66:
		return tcell.ColorYellow
	default:
		return tcell.ColorRed
	}
}

// drawText writes text from column x, advancing by each rune's display width.
func drawText(s tcell.Screen, x, y, w int, text string, style tcell.Style) {
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x >= 0 && x+rw <= w {
			s.SetContent(x, y, r, nil, style)
		}
		x += rw
	}
}
