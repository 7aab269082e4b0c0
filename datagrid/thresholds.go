package datagrid

import "slices"

// covering is how far the loose columns must scroll before fixed columns are
// drawn as overlapping them.
const covering = 5

type scrollEvent struct {
	name       string
	amount     float64
	fromBottom bool
}

// RegisterThresholdEvent adds a named signal that fires on every vertical
// scroll while scrollTop is within amount pixels of the bottom (fromBottom)
// or the top of the scrollable range. It keeps firing while the condition
// holds, so a loader subscribed to it can keep appending rows until the user
// is no longer near the edge.
func (e *Engine) RegisterThresholdEvent(name string, amount float64, fromBottom bool) {
	e.scrollEvents = append(e.scrollEvents, scrollEvent{name: name, amount: amount, fromBottom: fromBottom})
}

// OnScroll feeds a scroll position from the host.
func (e *Engine) OnScroll(scrollTop, scrollLeft float64) {
	e.scrollY(scrollTop)
	if scrollLeft != e.scrollLeft {
		e.scrollX(scrollLeft)
	}
}

func (e *Engine) scrollY(scrollTop float64) {
	dir := Down
	if scrollTop < e.lastScrollTop {
		dir = Up
	}

	if e.lastDir != dir ||
		(dir == Down && scrollTop >= e.th.next) ||
		(dir == Up && scrollTop <= e.th.next) {
		e.reposition(scrollTop, dir, false)
	}

	// saved before dispatching, handlers may scroll again
	e.scrollTop = scrollTop
	e.lastScrollTop = scrollTop
	e.lastDir = dir

	e.dispatchThresholds(scrollTop)
}

func (e *Engine) dispatchThresholds(scrollTop float64) {
	if len(e.scrollEvents) == 0 {
		return
	}
	maxY := e.MaxScrollY()
	for _, ev := range slices.Clone(e.scrollEvents) {
		if (ev.fromBottom && scrollTop >= maxY-ev.amount) || (!ev.fromBottom && scrollTop <= ev.amount) {
			e.emit(Event{Type: Signal(ev.name), DataIndex: -1, Column: -1})
		}
	}
}

func (e *Engine) scrollX(scrollLeft float64) {
	e.scrollLeft = scrollLeft
}

// FixedCovering reports whether fixed columns currently overlap scrolled
// loose columns, for hosts that draw a separator shadow.
func (e *Engine) FixedCovering() bool {
	return e.layout.TotalFixed > 0 && e.scrollLeft >= covering
}

// MaxScrollY is the largest meaningful scrollTop.
func (e *Engine) MaxScrollY() float64 {
	return max(e.TotalHeight()-e.geom.ViewportHeight, 0)
}

// TotalHeight is the height of all rows.
func (e *Engine) TotalHeight() float64 {
	return e.geom.RowHeight * float64(e.dataset.Len())
}
