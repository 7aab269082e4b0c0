package fynegrid

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/alexballas/xdatagrid/datagrid"
)

// header shows column labels above the scroll container. It scrolls
// horizontally with the body but never vertically.
type header struct {
	widget.BaseWidget
	table *Table

	bg      *canvas.Rectangle
	guide   *canvas.Rectangle
	cells   []*headerCell
	handles []*resizeHandle
}

func newHeader(t *Table) *header {
	h := &header{
		table: t,
		bg:    canvas.NewRectangle(theme.Color(theme.ColorNameHeaderBackground)),
		guide: canvas.NewRectangle(theme.Color(theme.ColorNamePrimary)),
	}
	h.guide.Hide()
	h.ExtendBaseWidget(h)
	return h
}

func (h *header) height() float32 {
	e := h.table.engine
	if hh := e.Options().HeaderHeight; hh > 0 {
		return float32(hh)
	}
	return float32(e.Geometry().RowHeight)
}

// refresh rebuilds labels and sort marks from the engine.
func (h *header) refresh() {
	e := h.table.engine
	cols := e.Columns()
	if len(h.cells) != len(cols) {
		h.cells = make([]*headerCell, len(cols))
		h.handles = make([]*resizeHandle, len(cols))
		for i := range cols {
			h.cells[i] = newHeaderCell(h.table, i)
			h.handles[i] = newResizeHandle(h.table, i)
		}
	}

	for i, c := range cols {
		label := c.Label
		switch e.SortState(c.Field) {
		case datagrid.SortAscending:
			label += sortAscendingMark
		case datagrid.SortDescending:
			label += sortDescendingMark
		}
		h.cells[i].label = label
		h.cells[i].fixed = c.Fixed
		h.handles[i].Hidden = !e.Options().ResizableColumns
	}
	h.layoutCells()
	h.Refresh()
}

// layoutCells places cells for the current horizontal scroll.
func (h *header) layoutCells() {
	e := h.table.engine
	l := e.Layout()
	left := float32(e.ScrollLeft())
	height := h.height()

	h.bg.Move(fyne.NewPos(0, 0))
	h.bg.Resize(fyne.NewSize(h.Size().Width, height))

	for i, cell := range h.cells {
		if i >= len(l.Columns) {
			break
		}
		col := l.Columns[i]
		x := float32(col.X) - left
		if col.Fixed && l.FixedFits {
			x = float32(col.X)
		}
		w := float32(col.Width)
		cell.Move(fyne.NewPos(x, 0))
		cell.Resize(fyne.NewSize(w, height))
		cell.layout()

		handle := h.handles[i]
		handle.Move(fyne.NewPos(x+w-resizeHandleWidth/2, 0))
		handle.Resize(fyne.NewSize(resizeHandleWidth, height))
	}
}

func (h *header) showGuide(column int, delta float64) {
	l := h.table.engine.Layout()
	if column < 0 || column >= len(l.Columns) {
		return
	}
	col := l.Columns[column]
	x := float32(col.X+col.Width+delta) - float32(h.table.engine.ScrollLeft())
	if col.Fixed && l.FixedFits {
		x = float32(col.X + col.Width + delta)
	}
	h.guide.Move(fyne.NewPos(x-1, 0))
	h.guide.Resize(fyne.NewSize(shadowWidth, h.height()))
	h.guide.Show()
}

func (h *header) hideGuide() {
	h.guide.Hide()
}

func (h *header) CreateRenderer() fyne.WidgetRenderer {
	return &headerRenderer{h: h}
}

type headerRenderer struct {
	h *header
}

func (r *headerRenderer) Layout(fyne.Size) {
	r.h.layoutCells()
}

func (r *headerRenderer) MinSize() fyne.Size {
	return fyne.NewSize(0, r.h.height())
}

func (r *headerRenderer) Refresh() {
	for _, o := range r.Objects() {
		o.Refresh()
	}
}

func (r *headerRenderer) Objects() []fyne.CanvasObject {
	h := r.h
	objs := make([]fyne.CanvasObject, 0, 2+len(h.cells)*2)
	objs = append(objs, h.bg)
	for _, fixedPass := range []bool{false, true} {
		for i, c := range h.cells {
			if c.fixed == fixedPass {
				objs = append(objs, c, h.handles[i])
			}
		}
	}
	return append(objs, h.guide)
}

func (r *headerRenderer) Destroy() {}

// headerCell is a column label. Tapping it cycles the sort state.
type headerCell struct {
	widget.BaseWidget
	table  *Table
	column int
	label  string
	fixed  bool

	bg   *canvas.Rectangle
	text *canvas.Text
}

func newHeaderCell(t *Table, column int) *headerCell {
	c := &headerCell{
		table:  t,
		column: column,
		bg:     canvas.NewRectangle(theme.Color(theme.ColorNameHeaderBackground)),
		text:   canvas.NewText("", theme.Color(theme.ColorNameForeground)),
	}
	c.text.TextStyle = fyne.TextStyle{Bold: true}
	c.ExtendBaseWidget(c)
	return c
}

func (c *headerCell) layout() {
	size := c.Size()
	pad := theme.Padding()
	c.bg.Resize(size)
	c.text.TextSize = theme.TextSize()
	c.text.Text = fitText(c.label, size.Width-pad*2, c.text.TextSize, c.text.TextStyle)
	th := c.text.MinSize().Height
	c.text.Move(fyne.NewPos(pad, (size.Height-th)/2))
	c.text.Resize(fyne.NewSize(fyne.Max(size.Width-pad*2, 0), th))
}

func (c *headerCell) Tapped(*fyne.PointEvent) {
	t := c.table
	t.engine.HeaderClick(c.column)
	t.header.refresh()
}

func (c *headerCell) CreateRenderer() fyne.WidgetRenderer {
	return &headerCellRenderer{c: c}
}

type headerCellRenderer struct {
	c *headerCell
}

func (r *headerCellRenderer) Layout(fyne.Size) { r.c.layout() }

func (r *headerCellRenderer) MinSize() fyne.Size { return fyne.NewSize(0, 0) }

func (r *headerCellRenderer) Refresh() {
	r.c.layout()
	r.c.bg.Refresh()
	r.c.text.Refresh()
}

func (r *headerCellRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.c.bg, r.c.text}
}

func (r *headerCellRenderer) Destroy() {}

// resizeHandle sits on the right edge of a header cell. Dragging it shows a
// guide clamped to the column minimum and commits the width on release.
type resizeHandle struct {
	widget.BaseWidget
	table  *Table
	column int

	delta   float64
	preview float64
}

func newResizeHandle(t *Table, column int) *resizeHandle {
	h := &resizeHandle{table: t, column: column}
	h.ExtendBaseWidget(h)
	return h
}

func (h *resizeHandle) Cursor() desktop.Cursor {
	return desktop.HResizeCursor
}

func (h *resizeHandle) Dragged(e *fyne.DragEvent) {
	h.delta += float64(e.Dragged.DX)
	h.preview = h.table.engine.PreviewColumnResize(h.column, h.delta)
	h.table.header.showGuide(h.column, h.preview)
}

func (h *resizeHandle) DragEnd() {
	delta := h.preview
	h.delta, h.preview = 0, 0
	h.table.header.hideGuide()
	if delta == 0 {
		return
	}
	h.table.engine.ResizeColumn(h.column, delta)
	h.table.refreshAll()
}

func (h *resizeHandle) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(canvas.NewRectangle(theme.Color(theme.ColorNameSeparator)))
}

var (
	_ fyne.Tappable      = (*headerCell)(nil)
	_ fyne.Draggable     = (*resizeHandle)(nil)
	_ desktop.Cursorable = (*resizeHandle)(nil)
)
