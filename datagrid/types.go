package datagrid

import (
	"image"
	"sort"
)

// Record is one application data item. The grid only reads field values by
// column key.
type Record interface {
	Field(key string) (any, bool)
}

// FieldLister is implemented by records that can enumerate their fields.
// It is used to discover columns when none are configured.
type FieldLister interface {
	Fields() []string
}

// Map is a Record backed by a map.
type Map map[string]any

func (m Map) Field(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// Fields returns the map keys in sorted order.
func (m Map) Fields() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Dataset is an ordered, indexable and possibly mutable set of records.
type Dataset interface {
	Len() int
	Record(i int) Record
}

// Rows is a Dataset backed by a slice.
type Rows []Record

func (r Rows) Len() int            { return len(r) }
func (r Rows) Record(i int) Record { return r[i] }

// CellContent is what a cell displays.
type CellContent struct {
	Text string
	// Image is drawn instead of Text when set. ImageKey identifies it for
	// caching scaled copies.
	Image    image.Image
	ImageKey string
}

// RenderFunc produces the content of a cell from its raw field value.
type RenderFunc func(value any, dataIndex int, rec Record) CellContent

// Column describes one grid column. A zero Width asks the grid to compute it.
type Column struct {
	Field    string
	Label    string
	Width    float64
	MinWidth float64
	Fixed    bool
	Render   RenderFunc
}

// Viewport is the visible data area, excluding the header.
type Viewport struct {
	Width, Height float64
}

// SelectionType is the granularity of selection.
type SelectionType string

const (
	SelectRow  SelectionType = "row"
	SelectCell SelectionType = "cell"
)

// Direction is the last vertical scroll direction.
type Direction int

const (
	Static Direction = iota
	Down
	Up
)

func (d Direction) String() string {
	switch d {
	case Down:
		return "down"
	case Up:
		return "up"
	}
	return "static"
}

// SortState of a column, cycled by header clicks.
type SortState int

const (
	SortNone SortState = iota
	SortAscending
	SortDescending
)

func (s SortState) String() string {
	switch s {
	case SortAscending:
		return "ascending"
	case SortDescending:
		return "descending"
	}
	return "none"
}

func (s SortState) next() SortState {
	switch s {
	case SortNone:
		return SortAscending
	case SortAscending:
		return SortDescending
	}
	return SortNone
}

// Modifier is a set of keyboard modifiers held during a pointer event.
type Modifier uint8

const ModShift Modifier = 1

// Key is a navigation key understood by the grid.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyEnter
)

// Target addresses a cell by its physical position in the block pool.
type Target struct {
	Slot  int
	Row   int
	Field string
}

// Anchor is the most recently clicked record.
type Anchor struct {
	DataIndex int
	Field     string
	TrackKey  any
}

// Stats counts work done by the window controller.
type Stats struct {
	Repositions int
	Refills     int
}
