package datagrid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testViewport = Viewport{Width: 400, Height: 320}

func TestNew_RejectsConfiguration(t *testing.T) {
	bogus := DefaultOptions()
	bogus.SelectionType = "column"
	negative := DefaultOptions()
	negative.Overscan = Float(-1)

	for name, tc := range map[string]struct {
		ds        Dataset
		cols      []Column
		rowHeight float64
		opts      Options
	}{
		"zero row height":   {testRows(3), testColumns, 0, DefaultOptions()},
		"duplicate field":   {testRows(3), []Column{{Field: "id"}, {Field: "id"}}, 32, DefaultOptions()},
		"empty field":       {testRows(3), []Column{{Field: "id"}, {}}, 32, DefaultOptions()},
		"selection type":    {testRows(3), testColumns, 32, bogus},
		"negative overscan": {testRows(3), testColumns, 32, negative},
		"nothing to show":   {Rows{}, nil, 32, DefaultOptions()},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := New(tc.ds, tc.cols, tc.rowHeight, testViewport, tc.opts)
			require.Error(t, err)

			var cfgErr *ConfigurationError
			assert.True(t, errors.As(err, &cfgErr), "%v", err)
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	e, err := New(nil, testColumns, 32, testViewport, Options{})
	require.NoError(t, err)

	opts := e.Options()
	assert.Equal(t, SelectRow, opts.SelectionType)
	assert.Equal(t, DefaultOverscan, *opts.Overscan)
	assert.Equal(t, float64(DefaultMinColumnWidth), opts.MinColumnWidth)
	assert.Equal(t, DefaultDoubleClickMS, opts.DoubleClickMS)
	assert.Zero(t, e.Len())
	assert.False(t, e.Block(0).Rows[0].Bound())
}

func TestNew_ZeroOverscan(t *testing.T) {
	e, err := New(testRows(100), testColumns, 32, testViewport, Options{Overscan: Float(0)})
	require.NoError(t, err)

	g := e.Geometry()
	assert.Equal(t, 10, g.RowsPerBlock)
	assert.Equal(t, 320.0, g.BlockHeight)
	assert.Zero(t, g.ThresholdMargin)
	assert.Zero(t, *e.Options().Overscan)
}

func TestConfigure_KeepsStateOnError(t *testing.T) {
	g := newTestGrid(t, testRows(50), DefaultOptions())
	g.click(t, 3, "name", 0)

	err := g.Configure(testRows(3), testColumns, 0, testViewport, DefaultOptions())
	require.Error(t, err)
	assert.Equal(t, 50, g.Len())
	assert.Equal(t, []int{3}, g.SelectedIndexes())
}

func TestConfigure_Reinitialises(t *testing.T) {
	g := newTestGrid(t, testRows(50), DefaultOptions())
	loaded := g.record(t, SignalLoaded)
	selects := g.record(t, SignalSelect)
	g.click(t, 3, "name", 0)
	g.OnScroll(5000, 0)

	opts := DefaultOptions()
	opts.Clock = g.clock.now
	require.NoError(t, g.Configure(testRows(5), nil, 32, testViewport, opts))

	assert.Len(t, *loaded, 1)
	assert.Zero(t, g.SelectionLen())
	assert.Zero(t, g.ScrollTop())
	assert.Equal(t, int64(0), g.Block(0).Index)

	cols := g.Columns()
	require.Len(t, cols, 2)
	assert.Equal(t, "Id", cols[0].Label)
	assert.Equal(t, "Name", cols[1].Label)

	g.click(t, 1, "id", 0)
	assert.Len(t, *selects, 2)
}

func TestOn_Remove(t *testing.T) {
	g := newTestGrid(t, testRows(50), DefaultOptions())

	calls := 0
	remove := g.On(SignalSelect, func(Event) { calls++ })
	g.click(t, 1, "name", 0)
	remove()
	g.click(t, 2, "name", 0)

	assert.Equal(t, 1, calls)
}

func TestSetColumns(t *testing.T) {
	g := newTestGrid(t, testRows(50), DefaultOptions())
	g.HeaderClick(0)

	require.NoError(t, g.SetColumns([]Column{{Field: "id"}, {Field: "name", Fixed: true}}))

	cols := g.Columns()
	assert.Equal(t, "name", cols[0].Field)
	assert.Equal(t, "row 3", g.Block(0).Rows[3].Cells[0].Content.Text)
	assert.Equal(t, SortNone, g.SortState("id"))

	require.Error(t, g.SetColumns([]Column{{Field: "id"}, {Field: "id"}}))
	assert.Equal(t, "name", g.Columns()[0].Field)
}

func TestHeaderClick_CyclesSort(t *testing.T) {
	g := newTestGrid(t, testRows(50), DefaultOptions())
	events := g.record(t, SignalSortRequest)

	g.HeaderClick(0)
	g.HeaderClick(0)
	assert.Equal(t, SortDescending, g.SortState("id"))

	g.HeaderClick(1)
	assert.Equal(t, SortNone, g.SortState("id"))
	assert.Equal(t, SortAscending, g.SortState("name"))

	g.HeaderClick(1)
	g.HeaderClick(1)
	assert.Equal(t, SortNone, g.SortState("name"))

	g.HeaderClick(7)

	require.Len(t, *events, 5)
	assert.Equal(t, Event{Type: SignalSortRequest, DataIndex: -1, Field: "id", Column: 0, Sort: SortAscending}, (*events)[0])
	assert.Equal(t, SortDescending, (*events)[1].Sort)
	assert.Equal(t, "name", (*events)[2].Field)
	assert.Equal(t, SortNone, (*events)[4].Sort)
}

func TestHeaderClick_NotSortable(t *testing.T) {
	opts := DefaultOptions()
	opts.Sortable = false
	g := newTestGrid(t, testRows(50), opts)
	events := g.record(t, SignalSortRequest)

	g.HeaderClick(0)
	assert.Empty(t, *events)
	assert.Equal(t, SortNone, g.SortState("id"))
}

func TestResizeColumn(t *testing.T) {
	g := newTestGrid(t, testRows(50), DefaultOptions())
	events := g.record(t, SignalResizeColumn)
	require.Equal(t, []float64{200, 200}, widths(g.Layout()))

	assert.Equal(t, -150.0, g.PreviewColumnResize(0, -300))
	assert.Equal(t, -100.0, g.PreviewColumnResize(0, -100))
	assert.Equal(t, 30.0, g.PreviewColumnResize(0, 30))
	assert.Zero(t, g.PreviewColumnResize(9, 30))

	version := g.Block(0).Version
	g.ResizeColumn(0, 50)

	assert.Equal(t, []float64{250, 150}, widths(g.Layout()))
	assert.Equal(t, 250.0, g.Columns()[0].Width)
	assert.Greater(t, g.Block(0).Version, version)
	require.Len(t, *events, 1)
	assert.Equal(t, Event{Type: SignalResizeColumn, DataIndex: -1, Field: "id", Column: 0, Width: 250}, (*events)[0])

	g.ResizeColumn(0, -1000)
	assert.Equal(t, []float64{50, 350}, widths(g.Layout()))
}

func TestResizeColumn_Disabled(t *testing.T) {
	opts := DefaultOptions()
	opts.ResizableColumns = false
	g := newTestGrid(t, testRows(50), opts)

	g.ResizeColumn(0, 50)
	assert.Equal(t, []float64{200, 200}, widths(g.Layout()))
}
