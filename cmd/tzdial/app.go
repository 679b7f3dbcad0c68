package main

import (
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tzdial/dial"
	"github.com/lixenwraith/tzdial/dialtime"
	"github.com/lixenwraith/tzdial/engine"
	"github.com/lixenwraith/tzdial/orbit"
	"github.com/lixenwraith/tzdial/timezone"
)

const frameInterval = 16 * time.Millisecond

var (
	styleFace     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHour     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleMarker   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleArrow    = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleInner    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleOuter    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleConflict = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

// app is the terminal host: it feeds mouse drags into the loop and draws snapshots
type app struct {
	screen tcell.Screen
	loop   *engine.Loop
	dial   *dial.Dial
	rings  orbit.Geometry

	width, height int
	face          face
	dragging      bool

	preview atomic.Pointer[dialtime.TimeOfDay]
}

func (a *app) setPreview(t dialtime.TimeOfDay) {
	a.preview.Store(&t)
}

func (a *app) resize() {
	a.width, a.height = a.screen.Size()
	a.face = newFace(a.width, a.height)
	a.screen.Clear()
}

// handleInput returns false when the user quits
func (a *app) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case 'z':
			a.submit(a.loop.ResetToZero(), "reset to zero")
		case 'n':
			a.submit(a.loop.ResetToNow(), "reset to now")
		case 's':
			on := !a.loop.Snapshot().SelectionMode
			if !on {
				a.preview.Store(nil)
			}
			a.submit(a.loop.SetSelectionMode(on), "selection mode")
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		angle, ok := a.face.pointerAngle(x, y)
		pressed := ev.Buttons()&tcell.Button1 != 0

		switch {
		case pressed && !a.dragging && ok:
			a.dragging = a.submit(a.loop.StartDrag(angle), "start drag")
		case pressed && a.dragging && ok:
			a.submit(a.loop.UpdateDrag(angle), "update drag")
		case !pressed && a.dragging:
			a.dragging = false
			a.submit(a.loop.EndDrag(), "end drag")
		}

	case *tcell.EventResize:
		a.resize()
	}
	return true
}

func (a *app) submit(ok bool, what string) bool {
	if !ok {
		log.Printf("tzdial: command queue full, dropped %s", what)
	}
	return ok
}

func (a *app) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	goSafe(func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	})

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !a.handleInput(ev) {
				return
			}
		case <-ticker.C:
			a.draw()
		}
	}
}

func (a *app) draw() {
	a.screen.Clear()
	snap := a.loop.Snapshot()
	layout := a.dial.Current()

	a.drawFace(snap.Angle)
	a.drawCities(layout, snap.Angle)

	// Fixed marker: the frame turns beneath it
	mx, my := a.face.cell(0, 1.12)
	a.screen.SetContent(mx, my, '▼', nil, styleMarker)

	a.drawText(0, 0, "tzdial  drag the dial | z reset to zero | n reset to now | s selection | q quit", styleStatus)
	a.drawStatus(snap)
	a.screen.Show()
}

func (a *app) drawFace(rotation float64) {
	for i := 0; i < dialtime.TicksPerDay; i++ {
		at := dial.ScreenAngle(dialtime.AngleFromTickIndex(i), rotation)
		x, y := a.face.cell(at, 1)
		switch engine.GranularityOf(i) {
		case engine.GranularityHour:
			a.screen.SetContent(x, y, '•', nil, styleHour)
		case engine.GranularityHalf:
			a.screen.SetContent(x, y, '·', nil, styleFace)
		}
	}
	// Hour numerals every three hours
	for h := 0; h < 24; h += 3 {
		at := dial.ScreenAngle(dialtime.AngleFromTime(h, 0), rotation)
		x, y := a.face.cell(at, 0.62)
		a.drawText(x-1, y, fmt.Sprintf("%02d", h), styleHour)
	}
}

func (a *app) drawCities(layout dial.Layout, rotation float64) {
	for _, arrow := range layout.Arrows {
		if !arrow.Resolved {
			continue
		}
		at := dial.ScreenAngle(arrow.Angle, rotation)
		for rf := 0.1; rf < 0.5; rf += 0.08 {
			x, y := a.face.cell(at, rf)
			a.screen.SetContent(x, y, '∙', nil, styleArrow)
		}

		ring := layout.Placement.Ring(arrow.City.ID)
		style, rf := styleConflict, 0.5
		switch ring {
		case orbit.RingInner:
			style, rf = styleInner, a.rings.InnerRadius
		case orbit.RingOuter:
			style, rf = styleOuter, a.rings.OuterRadius
		}
		x, y := a.face.cell(at, rf)
		a.drawText(x-len(arrow.City.Code)/2, y, arrow.City.Code, style)
	}
}

func (a *app) drawStatus(snap engine.Snapshot) {
	line := fmt.Sprintf("selected %s  tick %2d  %-9s  %+.2f rad/s",
		snap.Selected, snap.SelectedTick, snap.Phase, snap.Velocity)
	if snap.SelectionMode {
		if p := a.preview.Load(); p != nil {
			line += "  preview " + p.String()
		}
	}
	a.drawText(0, a.height-2, line, styleStatus)

	layout := a.dial.Current()
	var parts []string
	for _, sel := range a.dial.Selected(snap) {
		part := sel.City.Code + " " + sel.Local.String()
		if arrow, ok := layout.Arrow(sel.City.ID); ok && arrow.Resolved {
			part += " (" + timezone.FormatOffset(arrow.Offset) + ")"
		}
		parts = append(parts, part)
	}
	for _, arrow := range layout.Arrows {
		if !arrow.Resolved {
			parts = append(parts, arrow.City.Code+" ?")
		}
	}
	a.drawText(0, a.height-1, strings.Join(parts, "  "), styleStatus)
}

func (a *app) drawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= 0 && x < a.width && y >= 0 && y < a.height {
			a.screen.SetContent(x, y, r, nil, style)
		}
		x++
	}
}
