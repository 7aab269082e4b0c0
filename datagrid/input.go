package datagrid

// PointerDown handles a primary button press on a cell. A repeat press on
// the same target within the double click interval emits double-select and
// leaves the selection alone. Shift extends from the anchor in multi-select
// mode. In multi-select row mode the press also starts a drag selection.
func (e *Engine) PointerDown(t Target, mods Modifier) {
	di, err := e.resolve(t)
	if err != nil {
		e.invalidTarget(err)
		return
	}
	key := e.tracker.key(di)
	now := e.now()
	ev := Event{DataIndex: di, Field: t.Field, TrackKey: key, Column: e.columnIndex(t.Field)}

	if e.sel.isDoubleClick(now, key, t.Field) {
		e.sel.noteClick(now, key, t.Field)
		ev.Type = SignalDoubleSelect
		e.emit(ev)
		ev.Type = SignalDataClick
		e.emit(ev)
		return
	}
	e.sel.noteClick(now, key, t.Field)

	if mods&ModShift != 0 && e.sel.multi && e.sel.anchor != nil {
		e.sel.selectRange(e.tracker.keys, e.sel.anchor.DataIndex, di, e.sel.anchor.Field)
	} else {
		e.sel.click(key, t.Field, di)
		if e.sel.multi && e.sel.kind == SelectRow {
			e.sel.beginDrag(di)
		}
	}
	e.applySelection()

	ev.Type = SignalSelect
	e.emit(ev)
	ev.Type = SignalDataClick
	e.emit(ev)
}

// PointerMove reports the cell under the pointer while the primary button
// is held. Each time the hovered row changes during a drag, the selection is
// replaced by the contiguous range from the pressed row to the hovered one.
func (e *Engine) PointerMove(t Target) {
	if !e.sel.dragging {
		return
	}
	di, err := e.resolve(t)
	if err != nil || di == e.sel.dragHover {
		return
	}
	e.sel.dragHover = di

	field := t.Field
	if a := e.sel.anchor; a != nil {
		field = a.Field
	}
	e.sel.selectRange(e.tracker.keys, e.sel.dragOrigin, di, field)
	e.applySelection()
	e.emit(Event{Type: SignalSelect, DataIndex: di, Field: field, TrackKey: e.tracker.key(di), Column: e.columnIndex(field)})
}

// PointerUp ends a drag selection.
func (e *Engine) PointerUp() {
	e.sel.endDrag()
}

// Click is a press and release on the same target, for hosts that only
// deliver taps.
func (e *Engine) Click(t Target, mods Modifier) {
	e.PointerDown(t, mods)
	e.PointerUp()
}

// Dragging reports whether a drag selection is in progress.
func (e *Engine) Dragging() bool {
	return e.sel.dragging
}

// KeyDown handles keyboard navigation. Up and Down move the anchor and
// select only that record, scrolling it into view. Enter emits enter-select
// for the anchor. The returned offset is the scrollTop the host should apply
// when scrolled is true.
func (e *Engine) KeyDown(k Key) (scrollTop float64, scrolled bool) {
	a := e.sel.anchor
	if a == nil {
		return e.scrollTop, false
	}

	idx := a.DataIndex
	switch k {
	case KeyEnter:
		e.emit(Event{Type: SignalEnterSelect, DataIndex: a.DataIndex, Field: a.Field, TrackKey: a.TrackKey, Column: e.columnIndex(a.Field)})
		return e.scrollTop, false
	case KeyDown:
		if idx >= e.dataset.Len()-1 {
			return e.scrollTop, false
		}
		idx++
	case KeyUp:
		if idx <= 0 {
			return e.scrollTop, false
		}
		idx--
	default:
		return e.scrollTop, false
	}

	key := e.tracker.key(idx)
	e.sel.replace(key, a.Field, idx)

	rh := e.geom.RowHeight
	itemY := float64(idx) * rh
	target := e.scrollTop
	if itemY < e.scrollTop {
		target = itemY
	} else if itemY > e.scrollTop+e.geom.ViewportHeight-rh {
		target = itemY - e.geom.ViewportHeight + rh
	}
	scrolled = target != e.scrollTop
	if scrolled {
		e.scrollY(target)
	}
	e.applySelection()

	e.emit(Event{Type: SignalSelect, DataIndex: idx, Field: a.Field, TrackKey: key, Column: e.columnIndex(a.Field)})
	return e.scrollTop, scrolled
}

// HeaderClick cycles the sort state of a column through ascending,
// descending and none, resetting the other columns, and emits sort-request.
// Sorting the data is left to the subscriber.
func (e *Engine) HeaderClick(column int) {
	if !e.opts.Sortable || column < 0 || column >= len(e.columns) {
		return
	}
	field := e.columns[column].Field
	state := e.sorts[field].next()
	e.sorts = map[string]SortState{field: state}
	e.emit(Event{Type: SignalSortRequest, DataIndex: -1, Field: field, Column: column, Sort: state})
}

// SortState returns the sort state of a column field.
func (e *Engine) SortState(field string) SortState {
	return e.sorts[field]
}

// PreviewColumnResize clamps a drag delta so the column would not shrink
// below its minimum width.
func (e *Engine) PreviewColumnResize(column int, delta float64) float64 {
	if column < 0 || column >= len(e.columns) {
		return 0
	}
	width := e.layout.Columns[column].Width
	minWidth := max(e.columns[column].MinWidth, e.opts.MinColumnWidth)
	if width+delta < minWidth {
		return minWidth - width
	}
	return delta
}

// ResizeColumn commits a column resize. The column keeps the new width as a
// user width, the other columns are recomputed and resize-column-request is
// emitted.
func (e *Engine) ResizeColumn(column int, delta float64) {
	if !e.opts.ResizableColumns || column < 0 || column >= len(e.columns) {
		return
	}
	c := &e.columns[column]
	c.Width = max(e.layout.Columns[column].Width+delta, c.MinWidth, e.opts.MinColumnWidth)
	e.layout = AllocateWidths(e.columns, e.viewport.Width, e.opts.MinColumnWidth)
	for s := range e.pool.blocks {
		e.pool.blocks[s].Version++
	}
	e.emit(Event{Type: SignalResizeColumn, DataIndex: -1, Field: c.Field, Column: column, Width: c.Width})
}

// ClearSelection drops every selection entry and the anchor.
func (e *Engine) ClearSelection() {
	e.sel.clear()
	e.sel.endDrag()
	e.applySelection()
}

// SelectionLen is the number of selected records.
func (e *Engine) SelectionLen() int {
	return e.sel.len()
}

// IsSelected reports whether the record at dataIndex is selected.
func (e *Engine) IsSelected(dataIndex int) bool {
	key := e.tracker.key(dataIndex)
	return key != nil && e.sel.has(key)
}

// SelectedFields returns the selected fields of the record at dataIndex,
// sorted. In row mode it is the field that was clicked.
func (e *Engine) SelectedFields(dataIndex int) []string {
	key := e.tracker.key(dataIndex)
	if key == nil || !e.sel.has(key) {
		return nil
	}
	return e.sel.fields(key)
}

// SelectedIndexes returns the data indexes of selected records in order.
func (e *Engine) SelectedIndexes() []int {
	var out []int
	for i, key := range e.tracker.keys {
		if e.sel.has(key) {
			out = append(out, i)
		}
	}
	return out
}

// Anchor returns the most recently clicked record.
func (e *Engine) Anchor() (Anchor, bool) {
	if e.sel.anchor == nil {
		return Anchor{}, false
	}
	return *e.sel.anchor, true
}

// TrackKey returns the track key of the record at dataIndex.
func (e *Engine) TrackKey(dataIndex int) any {
	return e.tracker.key(dataIndex)
}
