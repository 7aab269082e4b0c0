package fynegrid

import (
	"time"

	"fyne.io/fyne/v2"
)

// resizeMinInterval coalesces bursts of layouts during a window resize.
const resizeMinInterval = 60 * time.Millisecond

// resizeLayout wraps a layout and reports real size changes, outside of the
// layout pass, so the engine can rebuild its blocks for the new viewport.
type resizeLayout struct {
	internal fyne.Layout
	onResize func()

	lastSize  fyne.Size
	lastFired time.Time
	timer     *time.Timer
}

func (r *resizeLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	r.internal.Layout(objects, size)
	if r.onResize == nil {
		return
	}

	// layouts also run for refreshes
	if abs32(size.Width-r.lastSize.Width) < 0.5 && abs32(size.Height-r.lastSize.Height) < 0.5 {
		return
	}
	r.lastSize = size
	r.scheduleResize()
}

func (r *resizeLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	return r.internal.MinSize(objects)
}

func (r *resizeLayout) scheduleResize() {
	now := time.Now()
	elapsed := now.Sub(r.lastFired)
	if elapsed >= resizeMinInterval {
		r.lastFired = now
		fyne.Do(r.onResize)
		return
	}

	delay := max(resizeMinInterval-elapsed, 0)
	if r.timer == nil {
		r.timer = time.AfterFunc(delay, func() {
			fyne.Do(func() {
				r.timer = nil
				r.lastFired = time.Now()
				r.onResize()
			})
		})
		return
	}
	r.timer.Reset(delay)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
