package fynegrid

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// dragState follows a drag selection that started on a row.
type dragState struct {
	active  bool
	pointer fyne.Position // viewport coordinates

	ticker *time.Ticker
	stop   chan struct{}
	dir    int
	step   float32
}

func (b *body) Dragged(e *fyne.DragEvent) {
	b.table.dragged(e.Position)
}

func (b *body) DragEnd() {
	b.table.dragEnd()
}

// dragged receives a pointer position in content coordinates.
func (t *Table) dragged(pos fyne.Position) {
	if !t.engine.Dragging() {
		return
	}
	t.drag.active = true
	t.drag.pointer = pos.Subtract(t.scroll.Offset)

	t.updateAutoScroll()
	t.updateDragSelection()
}

func (t *Table) dragEnd() {
	t.stopAutoScroll()
	if !t.drag.active {
		return
	}
	t.drag.active = false
	t.engine.PointerUp()
}

// updateDragSelection hit tests the pointer, clamped to the viewport so it
// always lands on a row the pool currently shows.
func (t *Table) updateDragSelection() {
	if !t.drag.active {
		return
	}
	e := t.engine
	vh := float32(e.Viewport().Height)
	y := fyne.Min(fyne.Max(t.drag.pointer.Y, 0), vh-1)
	top := float32(e.ScrollTop())

	target, ok := e.HitTest(float64(t.drag.pointer.X), float64(top+y))
	if !ok {
		return
	}
	e.PointerMove(target)
	t.sync(false)
}

func (t *Table) updateAutoScroll() {
	if !t.drag.active {
		t.stopAutoScroll()
		return
	}

	height := float32(t.engine.Viewport().Height)
	if height <= 0 {
		t.stopAutoScroll()
		return
	}

	zone := fyne.Max(theme.Padding()*4, 24)
	zone = fyne.Min(zone, height/2)

	var dir int
	var intensity float32
	if y := t.drag.pointer.Y; y < zone {
		dir = -1
		intensity = (zone - y) / zone
	} else if y > height-zone {
		dir = 1
		intensity = (y - (height - zone)) / zone
	}
	intensity = fyne.Min(intensity, 1)

	if dir == 0 || intensity <= 0 {
		t.stopAutoScroll()
		return
	}

	maxStep := float32(t.engine.Geometry().RowHeight) * 0.5
	maxStep = fyne.Min(fyne.Max(maxStep, 12), 80)

	t.drag.dir = dir
	t.drag.step = intensity * maxStep
	t.startAutoScroll()
}

func (t *Table) startAutoScroll() {
	if t.drag.ticker != nil {
		return
	}
	t.drag.ticker = time.NewTicker(autoScrollInterval)
	t.drag.stop = make(chan struct{})

	stop := t.drag.stop
	ticker := t.drag.ticker
	go func() {
		for {
			select {
			case <-ticker.C:
				fyne.Do(t.autoScrollTick)
			case <-stop:
				return
			}
		}
	}()
}

func (t *Table) stopAutoScroll() {
	if t.drag.ticker == nil {
		return
	}
	t.drag.ticker.Stop()
	t.drag.ticker = nil
	close(t.drag.stop)
	t.drag.stop = nil
	t.drag.dir = 0
	t.drag.step = 0
}

func (t *Table) autoScrollTick() {
	if !t.drag.active || t.drag.dir == 0 || t.drag.step <= 0 {
		t.stopAutoScroll()
		return
	}

	offset := t.engine.ScrollTop()
	maxOffset := t.engine.MaxScrollY()
	if maxOffset <= 0 {
		t.stopAutoScroll()
		return
	}

	next := min(max(offset+float64(t.drag.dir)*float64(t.drag.step), 0), maxOffset)
	if next == offset {
		t.stopAutoScroll()
		return
	}
	t.scrollTo(next)
}
