package datagrid

import (
	"sort"
	"time"
)

// selection tracks selected records by track key, independent of which pool
// row shows them. Row mode stores the clicked field but reads an entry as
// the whole row.
type selection struct {
	multi       bool
	kind        SelectionType
	doubleClick time.Duration

	entries map[any]map[string]struct{}
	anchor  *Anchor

	lastClickAt    time.Time
	lastClickKey   any
	lastClickField string
	clicked        bool

	dragging   bool
	dragOrigin int
	dragHover  int
}

func newSelection(opts Options) selection {
	return selection{
		multi:       opts.MultiSelect,
		kind:        opts.SelectionType,
		doubleClick: time.Duration(opts.DoubleClickMS) * time.Millisecond,
		entries:     map[any]map[string]struct{}{},
		dragHover:   -1,
	}
}

func (s *selection) len() int {
	return len(s.entries)
}

func (s *selection) has(key any) bool {
	_, ok := s.entries[key]
	return ok
}

func (s *selection) hasField(key any, field string) bool {
	_, ok := s.entries[key][field]
	return ok
}

func (s *selection) clear() {
	clear(s.entries)
	s.anchor = nil
}

// isDoubleClick reports whether a click on key/field repeats the previous
// click within the double click interval. In row mode any cell of the same
// row counts as the same target.
func (s *selection) isDoubleClick(now time.Time, key any, field string) bool {
	if !s.clicked || now.Sub(s.lastClickAt) > s.doubleClick {
		return false
	}
	if s.lastClickKey != key {
		return false
	}
	return s.kind != SelectCell || s.lastClickField == field
}

func (s *selection) noteClick(now time.Time, key any, field string) {
	s.clicked = true
	s.lastClickAt = now
	s.lastClickKey = key
	s.lastClickField = field
}

// click applies a plain click on the cell field of the record at dataIndex.
func (s *selection) click(key any, field string, dataIndex int) {
	if !s.multi && !s.has(key) {
		clear(s.entries)
	}

	fields, ok := s.entries[key]
	switch {
	case !ok:
		s.entries[key] = map[string]struct{}{field: {}}
		s.anchor = &Anchor{DataIndex: dataIndex, Field: field, TrackKey: key}
	case s.kind == SelectRow:
		delete(s.entries, key)
		s.anchor = nil
	default:
		if _, selected := fields[field]; selected {
			delete(fields, field)
			if len(fields) == 0 {
				delete(s.entries, key)
			}
			s.anchor = nil
		} else {
			fields[field] = struct{}{}
			s.anchor = &Anchor{DataIndex: dataIndex, Field: field, TrackKey: key}
		}
	}
}

// replace selects exactly one record.
func (s *selection) replace(key any, field string, dataIndex int) {
	clear(s.entries)
	s.entries[key] = map[string]struct{}{field: {}}
	s.anchor = &Anchor{DataIndex: dataIndex, Field: field, TrackKey: key}
}

// selectRange replaces the selection with the records from..to inclusive.
// The anchor is left alone.
func (s *selection) selectRange(keys []any, from, to int, field string) {
	if from > to {
		from, to = to, from
	}
	clear(s.entries)
	for i := max(from, 0); i <= to && i < len(keys); i++ {
		if _, ok := s.entries[keys[i]]; !ok {
			s.entries[keys[i]] = map[string]struct{}{field: {}}
		}
	}
}

func (s *selection) beginDrag(dataIndex int) {
	s.dragging = true
	s.dragOrigin = dataIndex
	s.dragHover = dataIndex
}

func (s *selection) endDrag() {
	s.dragging = false
	s.dragHover = -1
}

// prune drops entries for which stale reports true.
func (s *selection) prune(stale func(key any) bool) {
	for k := range s.entries {
		if stale(k) {
			delete(s.entries, k)
		}
	}
}

func (s *selection) fields(key any) []string {
	out := make([]string, 0, len(s.entries[key]))
	for f := range s.entries[key] {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
