package fynegrid

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/alexballas/xdatagrid/datagrid"
)

// rowView draws one physical pool row.
type rowView struct {
	widget.BaseWidget
	table *Table
	slot  int
	index int

	dataIndex int64
	selected  bool

	bg     *canvas.Rectangle
	anchor *canvas.Rectangle
	cells  []*cellView
}

type cellView struct {
	field    string
	selected bool

	bg    *canvas.Rectangle
	text  *canvas.Text
	image *canvas.Image

	content  string
	imageKey string
}

func newRowView(t *Table, slot, index, columns int) *rowView {
	r := &rowView{
		table:     t,
		slot:      slot,
		index:     index,
		dataIndex: -1,
		bg:        canvas.NewRectangle(theme.Color(theme.ColorNameSelection)),
		anchor:    canvas.NewRectangle(color.Transparent),
		cells:     make([]*cellView, columns),
	}
	r.bg.Hide()
	r.anchor.StrokeColor = theme.Color(theme.ColorNameFocus)
	r.anchor.StrokeWidth = 1
	r.anchor.Hide()

	for i := range r.cells {
		c := &cellView{
			bg:    canvas.NewRectangle(theme.Color(theme.ColorNameSelection)),
			text:  canvas.NewText("", theme.Color(theme.ColorNameForeground)),
			image: canvas.NewImageFromImage(nil),
		}
		c.bg.Hide()
		c.image.FillMode = canvas.ImageFillContain
		c.image.Hide()
		r.cells[i] = c
	}
	r.ExtendBaseWidget(r)
	return r
}

func (r *rowView) update(row *datagrid.Row) {
	e := r.table.engine
	rowMode := e.Options().SelectionType == datagrid.SelectRow

	r.dataIndex = row.DataIndex
	r.selected = rowMode && row.Selected
	r.bg.Hidden = !r.selected
	r.anchor.Hidden = !row.Anchor

	for i, c := range row.Cells {
		r.cells[i].set(r.table, c, r.selected)
	}
	r.layoutCells(r.Size())
	r.Refresh()
}

// set copies the engine cell and starts loading its image.
func (c *cellView) set(t *Table, cell datagrid.Cell, rowSelected bool) {
	c.field = cell.Field
	c.selected = cell.Selected || rowSelected
	c.content = cell.Content.Text
	c.text.Color = theme.Color(theme.ColorNameForeground)

	content := cell.Content
	if content.Image == nil && content.ImageKey == "" {
		c.imageKey = ""
		c.image.Image = nil
		c.image.Hide()
		return
	}
	c.text.Text = ""
	c.content = ""
	c.image.Show()
	if content.ImageKey == "" {
		c.imageKey = ""
		c.image.Image = content.Image
		return
	}
	if c.imageKey == content.ImageKey && c.image.Image != nil {
		return
	}

	key := content.ImageKey
	size := int(t.engine.Geometry().RowHeight * 2)
	c.imageKey = key
	if img := t.images.memoryOnly(key, size); img != nil {
		c.image.Image = img
		return
	}
	c.image.Image = nil
	t.images.request(imageRequest{key: key, src: content.Image, size: size, callback: func(img image.Image) {
		fyne.Do(func() {
			if c.imageKey != key {
				return
			}
			c.image.Image = img
			c.image.Refresh()
		})
	}})
}

// layoutCells places cells from the engine layout. Fixed columns follow
// the horizontal scroll so they stay in view when they fit.
func (r *rowView) layoutCells(size fyne.Size) {
	e := r.table.engine
	l := e.Layout()
	pad := theme.Padding()
	left := float32(e.ScrollLeft())
	textSize := theme.TextSize()

	r.bg.Move(fyne.NewPos(0, 0))
	r.bg.Resize(size)
	r.anchor.Move(fyne.NewPos(0, 0))
	r.anchor.Resize(size)

	for i, c := range r.cells {
		if i >= len(l.Columns) {
			break
		}
		col := l.Columns[i]
		x := float32(col.X)
		fixed := col.Fixed && l.FixedFits
		if fixed {
			x += left
		}
		w := float32(col.Width)

		switch {
		case c.selected:
			c.bg.FillColor = theme.Color(theme.ColorNameSelection)
			c.bg.Show()
		case fixed:
			c.bg.FillColor = theme.Color(theme.ColorNameBackground)
			c.bg.Show()
		default:
			c.bg.Hide()
		}
		c.bg.Move(fyne.NewPos(x, 0))
		c.bg.Resize(fyne.NewSize(w, size.Height))

		if c.image.Visible() {
			side := fyne.Max(size.Height-pad*2, 0)
			c.image.Move(fyne.NewPos(x+pad, pad))
			c.image.Resize(fyne.NewSquareSize(side))
			continue
		}

		c.text.TextSize = textSize
		c.text.Text = fitText(c.content, w-pad*2, textSize, c.text.TextStyle)
		th := c.text.MinSize().Height
		c.text.Move(fyne.NewPos(x+pad, (size.Height-th)/2))
		c.text.Resize(fyne.NewSize(fyne.Max(w-pad*2, 0), th))
	}
}

// Tapped selects on touch devices, which deliver no mouse events.
func (r *rowView) Tapped(*fyne.PointEvent) {
	if !fyne.CurrentDevice().IsMobile() {
		return
	}
	t := r.table
	t.engine.Click(r.target(0), 0)
	t.sync(false)
}

var _ desktop.Mouseable = (*rowView)(nil)

func (r *rowView) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	t := r.table
	t.focus()

	var mods datagrid.Modifier
	if e.Modifier&fyne.KeyModifierShift != 0 {
		mods |= datagrid.ModShift
	}
	t.engine.PointerDown(r.target(e.Position.X), mods)
	t.sync(false)
}

func (r *rowView) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary || r.table.drag.active {
		return
	}
	r.table.engine.PointerUp()
}

// target addresses the cell at x, in row coordinates.
func (r *rowView) target(x float32) datagrid.Target {
	e := r.table.engine
	return datagrid.Target{
		Slot:  r.slot,
		Row:   r.index,
		Field: e.ColumnAt(float64(x) - e.ScrollLeft()),
	}
}

func (r *rowView) CreateRenderer() fyne.WidgetRenderer {
	return &rowRenderer{r: r}
}

type rowRenderer struct {
	r *rowView
}

func (rr *rowRenderer) Layout(size fyne.Size) {
	rr.r.layoutCells(size)
}

func (rr *rowRenderer) MinSize() fyne.Size {
	return fyne.NewSize(0, float32(rr.r.table.engine.Geometry().RowHeight))
}

func (rr *rowRenderer) Refresh() {
	for _, o := range rr.Objects() {
		o.Refresh()
	}
}

// Objects lists loose cells before fixed ones so fixed cells paint over
// the columns scrolled under them.
func (rr *rowRenderer) Objects() []fyne.CanvasObject {
	r := rr.r
	l := r.table.engine.Layout()
	objs := make([]fyne.CanvasObject, 0, 2+len(r.cells)*3)
	objs = append(objs, r.bg)
	for _, fixedPass := range []bool{false, true} {
		for i, c := range r.cells {
			fixed := i < len(l.Columns) && l.Columns[i].Fixed
			if fixed != fixedPass {
				continue
			}
			objs = append(objs, c.bg, c.image, c.text)
		}
	}
	return append(objs, r.anchor)
}

func (rr *rowRenderer) Destroy() {}
