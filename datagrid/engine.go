// Package datagrid is a headless virtual-window engine for large tables.
//
// It renders a dataset of any length through two recycled blocks of rows.
// The blocks are repositioned and refilled as the host reports scroll
// offsets, and a selection keyed by record keeps following the records
// whichever block shows them. The engine never draws: a host reads Block and
// Layout and forwards pointer and keyboard input. All methods must be called
// from a single goroutine.
package datagrid

import (
	"log/slog"
	"math"
	"strings"
	"time"
)

// Engine is the virtual-window state of one grid.
type Engine struct {
	opts Options
	log  *slog.Logger
	now  func() time.Time

	dataset  Dataset
	columns  []Column
	layout   Layout
	viewport Viewport
	geom     Geometry

	pool    pool
	tracker tracker
	sel     selection
	sorts   map[string]SortState

	signals      signals
	scrollEvents []scrollEvent

	scrollTop     float64
	scrollLeft    float64
	lastScrollTop float64
	lastDir       Direction
	th            thresholds
	overflowed    bool

	stats Stats
}

// New builds an engine and fills both pool blocks from the top of the
// dataset. With no columns, columns are discovered from the first record.
func New(ds Dataset, cols []Column, rowHeight float64, vp Viewport, opts Options) (*Engine, error) {
	e := &Engine{}
	if err := e.Configure(ds, cols, rowHeight, vp, opts); err != nil {
		return nil, err
	}
	return e, nil
}

// Configure reinitialises every component. On error nothing changes.
// Subscriptions and threshold events survive.
func (e *Engine) Configure(ds Dataset, cols []Column, rowHeight float64, vp Viewport, opts Options) error {
	opts, err := opts.normalized()
	if err != nil {
		return err
	}
	if ds == nil {
		ds = Rows(nil)
	}
	g, err := NewGeometry(vp.Height, rowHeight, *opts.Overscan)
	if err != nil {
		return err
	}
	cols, err = checkColumns(ds, cols)
	if err != nil {
		return err
	}

	e.opts = opts
	e.log = opts.Logger
	e.now = opts.Clock
	if g.Clamped {
		e.log.Warn("viewport shorter than one row, clamping", "height", vp.Height, "row_height", rowHeight)
	}

	e.dataset = ds
	e.columns = orderColumns(cols)
	e.viewport = vp
	e.geom = g
	e.layout = AllocateWidths(e.columns, vp.Width, opts.MinColumnWidth)
	e.sorts = map[string]SortState{}
	e.sel = newSelection(opts)
	e.tracker = newTracker(opts.TrackBy)
	e.tracker.rebuild(ds, e.log)

	e.scrollTop, e.scrollLeft, e.lastScrollTop = 0, 0, 0
	e.lastDir = Static
	e.th = g.initialThresholds()
	e.pool.rebuild(g.RowsPerBlock, e.columns)
	e.initialFill()

	e.log.Debug("grid configured",
		"rows", ds.Len(), "columns", len(e.columns),
		"rows_per_block", g.RowsPerBlock, "block_height", g.BlockHeight)
	e.emit(Event{Type: SignalLoaded, DataIndex: -1, Column: -1})
	return nil
}

func checkColumns(ds Dataset, cols []Column) ([]Column, error) {
	if len(cols) == 0 {
		return discoverColumns(ds)
	}
	seen := map[string]bool{}
	for i, c := range cols {
		if c.Field == "" {
			return nil, configErrorf("column %d has no field", i)
		}
		if seen[c.Field] {
			return nil, configErrorf("column field %q is used twice", c.Field)
		}
		seen[c.Field] = true
	}
	return cols, nil
}

// OnResize rebuilds geometry, column widths and both blocks for a new
// viewport and refills them at the current scroll offset.
func (e *Engine) OnResize(vp Viewport) {
	g, err := NewGeometry(vp.Height, e.geom.RowHeight, *e.opts.Overscan)
	if err != nil {
		e.log.Warn("ignoring resize", "err", err)
		return
	}
	if g.Clamped {
		e.log.Warn("viewport shorter than one row, clamping", "height", vp.Height, "row_height", g.RowHeight)
	}
	e.viewport = vp
	e.geom = g
	e.layout = AllocateWidths(e.columns, vp.Width, e.opts.MinColumnWidth)
	e.rebuild()
}

// SetRowHeight changes the row height and rebuilds the blocks.
func (e *Engine) SetRowHeight(h float64) error {
	g, err := NewGeometry(e.viewport.Height, h, *e.opts.Overscan)
	if err != nil {
		return err
	}
	e.geom = g
	e.rebuild()
	return nil
}

// SetColumns replaces the columns. Sort states are reset.
func (e *Engine) SetColumns(cols []Column) error {
	cols, err := checkColumns(e.dataset, cols)
	if err != nil {
		return err
	}
	e.columns = orderColumns(cols)
	e.layout = AllocateWidths(e.columns, e.viewport.Width, e.opts.MinColumnWidth)
	e.sorts = map[string]SortState{}
	e.rebuild()
	return nil
}

func (e *Engine) rebuild() {
	e.th = e.geom.initialThresholds()
	e.pool.rebuild(e.geom.RowsPerBlock, e.columns)
	e.reposition(e.scrollTop, Down, true)
	e.log.Debug("grid rebuilt", "rows_per_block", e.geom.RowsPerBlock, "block_height", e.geom.BlockHeight)
}

// SetDataset replaces the dataset. Selections survive when their track key
// still resolves.
func (e *Engine) SetDataset(ds Dataset) {
	if ds == nil {
		ds = Rows(nil)
	}
	e.dataset = ds
	e.refreshData()
}

// MutateDataset is called after the dataset changed in place.
func (e *Engine) MutateDataset() {
	e.refreshData()
}

func (e *Engine) refreshData() {
	live := e.tracker.rebuild(e.dataset, e.log)
	e.sel.prune(func(key any) bool {
		id, ok := key.(identity)
		if !ok {
			return false
		}
		_, alive := live[id]
		return !alive
	})
	if a := e.sel.anchor; a != nil {
		if i, ok := e.tracker.find(a.TrackKey); ok {
			a.DataIndex = i
		} else {
			e.sel.anchor = nil
		}
	}
	if e.sel.dragging {
		e.sel.endDrag()
	}
	e.reposition(e.scrollTop, Down, true)
}

// resolve maps a pool target to the data index of the record it shows.
func (e *Engine) resolve(t Target) (int, error) {
	invalid := func(di int64, reason string) (int, error) {
		return 0, &InvalidSelectionTarget{Target: t, DataIndex: di, Reason: reason}
	}
	if t.Slot < 0 || t.Slot >= len(e.pool.blocks) {
		return invalid(-1, "no such slot")
	}
	b := &e.pool.blocks[t.Slot]
	if t.Row < 0 || t.Row >= len(b.Rows) {
		return invalid(-1, "no such row")
	}
	di := b.Rows[t.Row].DataIndex
	switch {
	case di < 0:
		return invalid(di, "row is not bound to a record")
	case di > MaxSafeIndex || di >= int64(e.dataset.Len()) || di >= int64(len(e.tracker.keys)):
		return invalid(di, "data index out of range")
	case t.Field != "" && e.columnIndex(t.Field) < 0:
		return invalid(di, "unknown column "+t.Field)
	}
	return int(di), nil
}

// invalidTarget recovers from a bad pointer target.
func (e *Engine) invalidTarget(err error) {
	e.log.Warn("selected row is not pointing to valid data", "err", err)
	e.sel.clear()
	e.sel.endDrag()
	e.reposition(e.scrollTop, Down, true)
}

func (e *Engine) columnIndex(field string) int {
	for i, c := range e.columns {
		if c.Field == field {
			return i
		}
	}
	return -1
}

// HitTest maps a point to a pool target. y is in content coordinates, x in
// viewport coordinates of the data area. Points on rows outside the two
// pooled blocks miss.
func (e *Engine) HitTest(x, y float64) (Target, bool) {
	if !(y >= 0) || y >= e.TotalHeight() {
		return Target{}, false
	}
	di := int64(math.Floor(y / e.geom.RowHeight))
	rows := int64(e.geom.RowsPerBlock)
	block := di / rows
	slot := slotOf(block)
	if e.pool.blocks[slot].Index != block {
		return Target{}, false
	}
	return Target{Slot: slot, Row: int(di % rows), Field: e.ColumnAt(x)}, true
}

// ColumnAt returns the field under x in viewport coordinates, or "".
func (e *Engine) ColumnAt(x float64) string {
	for _, c := range e.layout.Columns {
		cx := x + e.scrollLeft
		if c.Fixed && e.layout.FixedFits {
			cx = x
		}
		if cx >= c.X && cx < c.X+c.Width {
			return c.Field
		}
	}
	return ""
}

// SelectedText returns the selected records in data order, cells separated
// by a space and rows by a newline. Cell mode only includes selected cells.
func (e *Engine) SelectedText() string {
	if e.sel.len() == 0 {
		return ""
	}
	var lines []string
	for i, key := range e.tracker.keys {
		if !e.sel.has(key) || i >= e.dataset.Len() {
			continue
		}
		rec := e.dataset.Record(i)
		var cells []string
		for _, c := range e.columns {
			if e.opts.SelectionType == SelectCell && !e.sel.hasField(key, c.Field) {
				continue
			}
			cells = append(cells, renderCell(c, rec, i).Text)
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return strings.Join(lines, "\n")
}

func (e *Engine) Options() Options     { return e.opts }
func (e *Engine) Geometry() Geometry   { return e.geom }
func (e *Engine) Layout() Layout       { return e.layout }
func (e *Engine) Viewport() Viewport   { return e.viewport }
func (e *Engine) Dataset() Dataset     { return e.dataset }
func (e *Engine) Len() int             { return e.dataset.Len() }
func (e *Engine) ScrollTop() float64   { return e.scrollTop }
func (e *Engine) ScrollLeft() float64  { return e.scrollLeft }
func (e *Engine) Direction() Direction { return e.lastDir }
func (e *Engine) Stats() Stats         { return e.stats }

// Columns returns the active columns, fixed columns first. Width holds the
// user width, see Layout for computed widths.
func (e *Engine) Columns() []Column {
	out := make([]Column, len(e.columns))
	copy(out, e.columns)
	return out
}

// Block returns the pool block in slot 0 or 1. The block is owned by the
// engine and must not be modified.
func (e *Engine) Block(slot int) *Block {
	return &e.pool.blocks[slot]
}

// Thresholds returns the scroll offsets that bound the current block
// placement.
func (e *Engine) Thresholds() (last, next float64) {
	return e.th.last, e.th.next
}
