package fynegrid

import (
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// zoomLevels scale the row height the table was created with.
var zoomLevels = []float64{
	0.75,
	1.0,
	1.25,
	1.5,
	1.75,
	2.0,
}

const defaultZoomLevelIndex = 1 // 1.0

func clampZoomLevelIndex(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(zoomLevels) {
		return len(zoomLevels) - 1
	}
	return i
}

// Zoom is the current row height scale.
func (t *Table) Zoom() float64 {
	return zoomLevels[t.zoomLevel]
}

func (t *Table) adjustZoom(steps int) {
	t.setZoomLevel(t.zoomLevel + steps)
}

func (t *Table) setZoomLevel(level int) {
	level = clampZoomLevelIndex(level)
	if level == t.zoomLevel {
		return
	}
	if err := t.engine.SetRowHeight(t.baseRowHeight * zoomLevels[level]); err != nil {
		t.log.Warn("zoom rejected", "level", zoomLevels[level], "err", err)
		return
	}
	t.zoomLevel = level
	t.refreshAll()
}

func isZoomModifierActive() bool {
	d, ok := fyne.CurrentApp().Driver().(desktop.Driver)
	if !ok {
		return false
	}

	mods := d.CurrentKeyModifiers()
	if mods&fyne.KeyModifierControl != 0 {
		return true
	}
	return mods&fyne.KeyModifierShortcutDefault != 0
}

// zoomScrollOverlay covers the body and takes wheel events only while the
// zoom modifier is held; otherwise it is invisible and the scroll container
// gets them.
type zoomScrollOverlay struct {
	widget.BaseWidget
	onStep func(steps int)
	accDY  float32
}

func newZoomScrollOverlay(onStep func(steps int)) *zoomScrollOverlay {
	z := &zoomScrollOverlay{onStep: onStep}
	z.ExtendBaseWidget(z)
	return z
}

func (z *zoomScrollOverlay) Visible() bool {
	if !z.BaseWidget.Visible() {
		return false
	}
	return isZoomModifierActive()
}

func (z *zoomScrollOverlay) Scrolled(e *fyne.ScrollEvent) {
	// about 40 per wheel notch, accumulated for touchpads
	const notch = float32(40)

	if math.IsNaN(float64(e.Scrolled.DY)) || math.IsInf(float64(e.Scrolled.DY), 0) {
		return
	}
	z.accDY += e.Scrolled.DY

	var steps int
	for z.accDY >= notch {
		steps++
		z.accDY -= notch
	}
	for z.accDY <= -notch {
		steps--
		z.accDY += notch
	}
	if steps != 0 {
		z.onStep(steps)
	}
}

func (z *zoomScrollOverlay) CreateRenderer() fyne.WidgetRenderer {
	return &zoomScrollOverlayRenderer{}
}

var _ fyne.Scrollable = (*zoomScrollOverlay)(nil)

type zoomScrollOverlayRenderer struct{}

func (r *zoomScrollOverlayRenderer) Layout(fyne.Size) {}
func (r *zoomScrollOverlayRenderer) MinSize() fyne.Size {
	return fyne.NewSize(0, 0)
}
func (r *zoomScrollOverlayRenderer) Refresh()                     {}
func (r *zoomScrollOverlayRenderer) Objects() []fyne.CanvasObject { return nil }
func (r *zoomScrollOverlayRenderer) Destroy()                     {}
