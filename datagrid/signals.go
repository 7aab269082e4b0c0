package datagrid

import "slices"

// Signal names an event emitted by the grid. Threshold events registered
// with RegisterThresholdEvent use their own name as the signal.
type Signal string

const (
	SignalSelect       Signal = "select"
	SignalDoubleSelect Signal = "double-select"
	SignalDataClick    Signal = "data-click"
	SignalEnterSelect  Signal = "enter-select"
	SignalSortRequest  Signal = "sort-request"
	SignalResizeColumn Signal = "resize-column-request"
	SignalLoaded       Signal = "loaded"
)

// Event is the payload of a signal. Fields that do not apply are zero,
// DataIndex and Column are -1.
type Event struct {
	Type      Signal
	DataIndex int
	Field     string
	TrackKey  any
	Column    int
	Sort      SortState
	Width     float64
}

type listener struct {
	id int
	fn func(Event)
}

type signals struct {
	nextID    int
	listeners map[Signal][]listener
}

func (s *signals) on(sig Signal, fn func(Event)) func() {
	if s.listeners == nil {
		s.listeners = map[Signal][]listener{}
	}
	s.nextID++
	id := s.nextID
	s.listeners[sig] = append(s.listeners[sig], listener{id: id, fn: fn})
	return func() {
		s.listeners[sig] = slices.DeleteFunc(s.listeners[sig], func(l listener) bool {
			return l.id == id
		})
	}
}

func (s *signals) emit(ev Event) {
	for _, l := range slices.Clone(s.listeners[ev.Type]) {
		l.fn(ev)
	}
}

// On subscribes fn to a signal and returns a function that unsubscribes it.
func (e *Engine) On(sig Signal, fn func(Event)) (remove func()) {
	return e.signals.on(sig, fn)
}

func (e *Engine) emit(ev Event) {
	e.signals.emit(ev)
}
