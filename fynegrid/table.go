// Package fynegrid draws a datagrid.Engine as a fyne widget.
package fynegrid

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/alexballas/xdatagrid/datagrid"
)

// Table is a scrollable grid widget. Only the two pool blocks of the engine
// exist as canvas objects, whatever the dataset length.
//
// Applications talk to the engine for data and signals and call Refresh
// after changing it outside of Table's own input handling.
type Table struct {
	widget.BaseWidget

	engine *datagrid.Engine
	log    *slog.Logger

	header *header
	body   *body
	scroll *container.Scroll
	zoom   *zoomScrollOverlay
	shadow *canvas.Rectangle

	baseRowHeight float64
	zoomLevel     int

	synced [2]uint64
	shape  contentShape
	images *imageCache
	drag   dragState
}

// contentShape is what the size of the scroll content depends on.
type contentShape struct {
	rows      int
	rowHeight float64
	width     float64
}

// New creates a table for e. The engine viewport follows the widget size
// once it is shown.
func New(e *datagrid.Engine) *Table {
	t := &Table{
		engine:        e,
		log:           e.Options().Logger,
		baseRowHeight: e.Geometry().RowHeight,
		zoomLevel:     defaultZoomLevelIndex,
	}
	t.images = newImageCache(loadImageFile, t.log)
	t.header = newHeader(t)
	t.body = newBody(t)
	t.scroll = container.NewScroll(t.body)
	t.scroll.OnScrolled = t.scrolled
	t.zoom = newZoomScrollOverlay(t.adjustZoom)
	t.shadow = canvas.NewRectangle(theme.Color(theme.ColorNameShadow))
	t.shadow.Hide()

	t.ExtendBaseWidget(t)
	t.refreshAll()
	return t
}

// Engine returns the engine drawn by the table.
func (t *Table) Engine() *datagrid.Engine {
	return t.engine
}

// SetDataset replaces the dataset and redraws.
func (t *Table) SetDataset(ds datagrid.Dataset) {
	t.engine.SetDataset(ds)
	t.Refresh()
}

func (t *Table) CreateRenderer() fyne.WidgetRenderer {
	overlay := container.NewWithoutLayout(t.shadow)
	content := container.NewBorder(t.header, nil, nil, nil, container.NewStack(t.scroll, overlay, t.zoom))
	root := container.New(&resizeLayout{
		internal: layout.NewStackLayout(),
		onResize: t.onResize,
	}, content)
	return &tableRenderer{t: t, root: root}
}

// onResize hands the visible data area to the engine.
func (t *Table) onResize() {
	size := t.scroll.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return
	}
	vp := datagrid.Viewport{Width: float64(size.Width), Height: float64(size.Height)}
	if vp == t.engine.Viewport() {
		return
	}
	t.engine.OnResize(vp)
	t.refreshAll()
}

func (t *Table) scrolled(pos fyne.Position) {
	left := t.engine.ScrollLeft()
	t.engine.OnScroll(float64(pos.Y), float64(pos.X))

	moved := left != t.engine.ScrollLeft()
	if moved {
		t.header.layoutCells()
	}
	t.sync(moved && t.engine.Layout().TotalFixed > 0)

	if t.drag.active {
		t.updateDragSelection()
	}
}

// scrollTo moves the scroll container vertically and feeds the result back
// to the engine.
func (t *Table) scrollTo(top float64) {
	t.scroll.Offset.Y = float32(top)
	t.scroll.Refresh()
	t.scrolled(t.scroll.Offset)
}

// ScrollToTop moves the view back to the first row.
func (t *Table) ScrollToTop() {
	t.scrollTo(0)
}

// refreshAll redraws the header and both blocks.
func (t *Table) refreshAll() {
	t.header.refresh()
	t.sync(true)
}

// sync redraws the blocks whose version changed since the last call.
func (t *Table) sync(force bool) {
	e := t.engine
	shape := contentShape{rows: e.Len(), rowHeight: e.Geometry().RowHeight, width: e.Layout().Width()}
	if shape != t.shape {
		t.shape = shape
		force = true
		t.body.Refresh()
		t.scroll.Refresh()
	}

	for slot := range t.body.blocks {
		b := e.Block(slot)
		if !force && b.Version == t.synced[slot] {
			continue
		}
		t.synced[slot] = b.Version
		t.body.blocks[slot].update(b)
	}
	t.updateShadow()
}

func (t *Table) updateShadow() {
	l := t.engine.Layout()
	if !t.engine.FixedCovering() || !l.FixedFits {
		t.shadow.Hide()
		return
	}
	t.shadow.Move(fyne.NewPos(float32(l.TotalFixed), 0))
	t.shadow.Resize(fyne.NewSize(shadowWidth, t.scroll.Size().Height))
	t.shadow.Show()
}

func (t *Table) focus() {
	app := fyne.CurrentApp()
	if app == nil {
		return
	}
	if c := app.Driver().CanvasForObject(t); c != nil {
		c.Focus(t)
	}
}

type tableRenderer struct {
	t    *Table
	root *fyne.Container
}

func (r *tableRenderer) Layout(size fyne.Size) {
	r.root.Resize(size)
}

func (r *tableRenderer) MinSize() fyne.Size {
	return r.root.MinSize()
}

func (r *tableRenderer) Refresh() {
	r.t.refreshAll()
	r.root.Refresh()
}

func (r *tableRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.root}
}

func (r *tableRenderer) Destroy() {
	r.t.stopAutoScroll()
	r.t.images.close()
}

var (
	_ fyne.Widget       = (*Table)(nil)
	_ fyne.Focusable    = (*Table)(nil)
	_ fyne.Shortcutable = (*Table)(nil)
)
