package datagrid

import (
	"reflect"
	"strconv"
)

// reposition places both pool blocks around the data block visible at
// scrollTop and refills the slots that now show a different block. Offsets
// depend only on the block index, so scrolling up or down converges on the
// same layout.
func (e *Engine) reposition(scrollTop float64, dir Direction, force bool) {
	current := e.geom.BlockAt(scrollTop)
	top := slotOf(current)
	bottom := 1 - top
	bh := e.geom.BlockHeight

	e.pool.moveTo(top, float64(current)*bh)
	e.pool.moveTo(bottom, float64(current+1)*bh)
	e.th = e.geom.thresholdsAfter(current, scrollTop, dir)
	e.stats.Repositions++

	if force || e.pool.blocks[top].Index != current {
		e.refill(top, current)
	}
	if force || e.pool.blocks[bottom].Index != current+1 {
		e.refill(bottom, current+1)
	}

	if e.overflowed {
		e.overflowed = false
		if e.sel.len() > 0 {
			e.log.Warn("clearing selection", "err", &InvalidSelectionTarget{
				Target:    Target{Slot: top},
				DataIndex: current,
				Reason:    "data index exceeds the safe integer range",
			})
			e.sel.clear()
		}
	}
	e.applySelection()
}

// refill binds every row of slot to data block index and rewrites its cells.
func (e *Engine) refill(slot int, index int64) {
	b := &e.pool.blocks[slot]
	b.Index = index
	n := int64(e.dataset.Len())

	for r := range b.Rows {
		row := &b.Rows[r]
		di, ok := dataIndexFor(index, r, e.geom.RowsPerBlock)
		if !ok {
			e.overflowed = true
		}
		if !ok || di >= n {
			row.DataIndex = -1
			row.Selected = false
			row.Anchor = false
			for c := range row.Cells {
				row.Cells[c].Content = CellContent{}
				row.Cells[c].Selected = false
			}
			continue
		}

		row.DataIndex = di
		rec := e.dataset.Record(int(di))
		for c := range row.Cells {
			row.Cells[c].Content = renderCell(e.columns[c], rec, int(di))
		}
	}
	b.Version++
	e.stats.Refills++
}

// applySelection copies the selection state onto whatever rows are bound.
func (e *Engine) applySelection() {
	cellMode := e.opts.SelectionType == SelectCell
	for s := range e.pool.blocks {
		b := &e.pool.blocks[s]
		changed := false
		for r := range b.Rows {
			row := &b.Rows[r]

			var fields map[string]struct{}
			selected, anchor := false, false
			if row.DataIndex >= 0 && row.DataIndex < int64(len(e.tracker.keys)) {
				di := int(row.DataIndex)
				fields, selected = e.sel.entries[e.tracker.keys[di]]
				anchor = e.sel.anchor != nil && e.sel.anchor.DataIndex == di
			}
			if row.Selected != selected || row.Anchor != anchor {
				row.Selected = selected
				row.Anchor = anchor
				changed = true
			}

			for c := range row.Cells {
				cs := false
				if cellMode && selected {
					_, cs = fields[row.Cells[c].Field]
				}
				if row.Cells[c].Selected != cs {
					row.Cells[c].Selected = cs
					changed = true
				}
			}
		}
		if changed {
			b.Version++
		}
	}
}

// initialFill binds slot 0 to block 0 and slot 1 to block 1.
func (e *Engine) initialFill() {
	e.pool.moveTo(0, 0)
	e.pool.moveTo(1, e.geom.BlockHeight)
	e.refill(0, 0)
	e.refill(1, 1)
	e.applySelection()
}

func renderCell(col Column, rec Record, dataIndex int) CellContent {
	if rec == nil {
		return CellContent{}
	}
	v, _ := rec.Field(col.Field)
	if col.Render != nil {
		return col.Render(v, dataIndex, rec)
	}
	return defaultContent(v)
}

// defaultContent shows strings and numbers. Anything else renders empty.
func defaultContent(v any) CellContent {
	if v == nil {
		return CellContent{}
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return CellContent{Text: rv.String()}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return CellContent{Text: strconv.FormatInt(rv.Int(), 10)}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return CellContent{Text: strconv.FormatUint(rv.Uint(), 10)}
	case reflect.Float32:
		return CellContent{Text: strconv.FormatFloat(rv.Float(), 'f', -1, 32)}
	case reflect.Float64:
		return CellContent{Text: strconv.FormatFloat(rv.Float(), 'f', -1, 64)}
	}
	return CellContent{}
}
