package datagrid

import (
	"log/slog"
	"reflect"
)

// identity is the surrogate key of a record selected by identity rather than
// by a track-by field.
type identity uint64

// identityRef is how a record is recognised across refreshes: by address
// for reference kinds and by value for comparable values.
type identityRef struct {
	typ reflect.Type
	ptr uintptr
}

// occurrence tells apart records sharing a ref: the n-th equal value (or
// the n-th repeat of a pointer) in dataset order.
type occurrence struct {
	ref any
	n   int
}

// tracker derives the track key of every record in the dataset.
type tracker struct {
	trackBy string

	keys  []any
	index map[any]int

	ids    map[occurrence]identity
	nextID identity
}

func newTracker(trackBy string) tracker {
	return tracker{trackBy: trackBy, ids: map[occurrence]identity{}}
}

// rebuild recomputes every track key. Records that are still the same
// object (or the same occurrence of an equal value) keep their identity,
// replaced records get a new one. Every record gets its own identity. It
// returns the identities still in use.
func (t *tracker) rebuild(ds Dataset, log *slog.Logger) map[identity]struct{} {
	n := ds.Len()
	t.keys = make([]any, n)
	t.index = make(map[any]int, n)
	ids := make(map[occurrence]identity, len(t.ids))
	seen := map[any]int{}
	live := map[identity]struct{}{}

	var first *TrackKeyResolutionWarning
	fallbacks := 0
	for i := range n {
		rec := ds.Record(i)
		key, warn := t.trackValue(i, rec)
		if key == nil {
			if warn != nil {
				fallbacks++
				if first == nil {
					first = warn
				}
			}
			id := t.identityOf(rec, ids, seen)
			live[id] = struct{}{}
			key = id
		}
		t.keys[i] = key
		if _, ok := t.index[key]; !ok {
			t.index[key] = i
		}
	}
	t.ids = ids

	if fallbacks > 0 {
		log.Warn("track key falls back to record identity", "records", fallbacks, "err", first)
	}
	return live
}

// trackValue returns the track-by value of rec, or nil when identity must be
// used. The warning is nil when no track-by field is configured.
func (t *tracker) trackValue(i int, rec Record) (any, *TrackKeyResolutionWarning) {
	if t.trackBy == "" {
		return nil, nil
	}
	warn := &TrackKeyResolutionWarning{DataIndex: i, Field: t.trackBy}
	if rec == nil {
		warn.Reason = "record is nil"
		return nil, warn
	}
	v, ok := rec.Field(t.trackBy)
	switch {
	case !ok:
		warn.Reason = "field is missing"
	case v == nil:
		warn.Reason = "field is nil"
	case !reflect.ValueOf(v).Comparable():
		warn.Reason = "field value of type " + reflect.TypeOf(v).String() + " is not comparable"
	default:
		return v, nil
	}
	return nil, warn
}

func (t *tracker) identityOf(rec Record, next map[occurrence]identity, seen map[any]int) identity {
	ref, ok := identityRefOf(rec)
	if !ok {
		t.nextID++
		return t.nextID
	}
	occ := occurrence{ref: ref, n: seen[ref]}
	seen[ref]++

	id, ok := t.ids[occ]
	if !ok {
		t.nextID++
		id = t.nextID
	}
	next[occ] = id
	return id
}

func identityRefOf(rec Record) (any, bool) {
	if rec == nil {
		return nil, false
	}
	v := reflect.ValueOf(rec)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.UnsafePointer:
		return identityRef{typ: v.Type(), ptr: v.Pointer()}, true
	}
	if v.Comparable() {
		return rec, true
	}
	return nil, false
}

// key returns the track key of a data index, or nil when out of range.
func (t *tracker) key(dataIndex int) any {
	if dataIndex < 0 || dataIndex >= len(t.keys) {
		return nil
	}
	return t.keys[dataIndex]
}

// find returns the data index of key.
func (t *tracker) find(key any) (int, bool) {
	if key == nil {
		return 0, false
	}
	i, ok := t.index[key]
	return i, ok
}
