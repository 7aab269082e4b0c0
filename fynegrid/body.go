package fynegrid

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/alexballas/xdatagrid/datagrid"
)

// body is the scroll content. It is as large as every row together and
// holds the two block views at their pool offsets.
type body struct {
	widget.BaseWidget
	table  *Table
	blocks [2]*blockView
}

func newBody(t *Table) *body {
	b := &body{table: t}
	for slot := range b.blocks {
		b.blocks[slot] = newBlockView(t, slot)
	}
	b.ExtendBaseWidget(b)
	return b
}

func (b *body) CreateRenderer() fyne.WidgetRenderer {
	return &bodyRenderer{b: b}
}

type bodyRenderer struct {
	b *body
}

// Layout is empty: blocks are placed by Table.sync.
func (r *bodyRenderer) Layout(fyne.Size) {}

func (r *bodyRenderer) MinSize() fyne.Size {
	e := r.b.table.engine
	return fyne.NewSize(float32(e.Layout().Width()), float32(e.TotalHeight()))
}

func (r *bodyRenderer) Refresh() {}

func (r *bodyRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.b.blocks[0], r.b.blocks[1]}
}

func (r *bodyRenderer) Destroy() {}

// blockView draws one pool block.
type blockView struct {
	widget.BaseWidget
	table *Table
	slot  int
	rows  []*rowView
}

func newBlockView(t *Table, slot int) *blockView {
	v := &blockView{table: t, slot: slot}
	v.ExtendBaseWidget(v)
	return v
}

func (v *blockView) update(b *datagrid.Block) {
	if len(v.rows) != len(b.Rows) || (len(b.Rows) > 0 && len(v.rows[0].cells) != len(b.Rows[0].Cells)) {
		v.rows = make([]*rowView, len(b.Rows))
		for i := range v.rows {
			v.rows[i] = newRowView(v.table, v.slot, i, len(b.Rows[i].Cells))
		}
		v.Refresh()
	}

	rh := float32(v.table.engine.Geometry().RowHeight)
	width := float32(v.table.engine.Layout().Width())
	v.Move(fyne.NewPos(0, float32(b.Offset)))
	v.Resize(fyne.NewSize(width, rh*float32(len(v.rows))))

	for i, row := range v.rows {
		row.Move(fyne.NewPos(0, rh*float32(i)))
		row.Resize(fyne.NewSize(width, rh))
		row.update(&b.Rows[i])
	}
}

func (v *blockView) CreateRenderer() fyne.WidgetRenderer {
	return &blockRenderer{v: v}
}

type blockRenderer struct {
	v *blockView
}

func (r *blockRenderer) Layout(fyne.Size) {}

func (r *blockRenderer) MinSize() fyne.Size {
	return fyne.NewSize(0, 0)
}

func (r *blockRenderer) Refresh() {}

func (r *blockRenderer) Objects() []fyne.CanvasObject {
	objs := make([]fyne.CanvasObject, len(r.v.rows))
	for i, row := range r.v.rows {
		objs[i] = row
	}
	return objs
}

func (r *blockRenderer) Destroy() {}

var _ fyne.Draggable = (*body)(nil)
