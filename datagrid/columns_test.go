package datagrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func widths(l Layout) []float64 {
	out := make([]float64, len(l.Columns))
	for i, c := range l.Columns {
		out[i] = c.Width
	}
	return out
}

func sum(ws []float64) float64 {
	s := 0.0
	for _, w := range ws {
		s += w
	}
	return s
}

func TestAllocateWidths_RemainderGoesToFirst(t *testing.T) {
	l := AllocateWidths([]Column{{Field: "a"}, {Field: "b"}, {Field: "c"}}, 1000, 50)

	assert.Equal(t, []float64{334, 333, 333}, widths(l))
	assert.Equal(t, 1000.0, l.Width())
	assert.Equal(t, []float64{0, 334, 667}, []float64{l.Columns[0].X, l.Columns[1].X, l.Columns[2].X})
}

func TestAllocateWidths_FillsViewport(t *testing.T) {
	for vw := 300.0; vw <= 2000; vw += 13 {
		cols := []Column{
			{Field: "a", Width: 40},
			{Field: "b"},
			{Field: "c", Width: 120, Fixed: true},
			{Field: "d", MinWidth: 60},
		}
		l := AllocateWidths(cols, vw, 50)
		assert.Equal(t, vw, sum(widths(l)), "viewport %v", vw)
		for i, c := range l.Columns {
			assert.GreaterOrEqual(t, c.Width, max(cols[i].MinWidth, 50.0))
		}
	}
}

func TestAllocateWidths_ClampsUserWidth(t *testing.T) {
	l := AllocateWidths([]Column{{Field: "a", Width: 40}, {Field: "b", Width: 90, MinWidth: 120}}, 1000, 50)
	assert.Equal(t, []float64{50, 120}, widths(l))
}

func TestAllocateWidths_SkipsClampedColumnForRemainder(t *testing.T) {
	l := AllocateWidths([]Column{{Field: "a", MinWidth: 600}, {Field: "b"}}, 1001, 50)
	assert.Equal(t, []float64{600, 501}, widths(l))
}

func TestAllocateWidths_NoUndefinedColumns(t *testing.T) {
	l := AllocateWidths([]Column{{Field: "a", Width: 100}, {Field: "b", Width: 200, Fixed: true}}, 1000, 50)

	assert.Equal(t, []float64{100, 200}, widths(l))
	assert.Equal(t, 200.0, l.TotalFixed)
	assert.Equal(t, 100.0, l.TotalLoose)
}

func TestAllocateWidths_NoSpaceLeft(t *testing.T) {
	l := AllocateWidths([]Column{{Field: "a", Width: 900}, {Field: "b", Width: 900}, {Field: "c"}}, 1000, 50)
	assert.Equal(t, []float64{900, 900, 50}, widths(l))
}

func TestAllocateWidths_FixedFits(t *testing.T) {
	cols := []Column{{Field: "a", Width: 300, Fixed: true}, {Field: "b"}}

	assert.True(t, AllocateWidths(cols, 400, 50).FixedFits)
	assert.False(t, AllocateWidths(cols, 300, 50).FixedFits)
	assert.False(t, AllocateWidths(cols, 250, 50).FixedFits)
}

func TestOrderColumns_FixedFirst(t *testing.T) {
	cols := orderColumns([]Column{
		{Field: "a"},
		{Field: "b", Fixed: true},
		{Field: "c"},
		{Field: "d", Fixed: true},
	})

	var fields []string
	for _, c := range cols {
		fields = append(fields, c.Field)
	}
	assert.Equal(t, []string{"b", "d", "a", "c"}, fields)
	assert.Equal(t, "A", cols[2].Label)
}

func TestLabelFromField(t *testing.T) {
	for field, want := range map[string]string{
		"name":       "Name",
		"first_name": "First Name",
		"last-name":  "Last Name",
		"user_id_x":  "User Id_x",
		"size 2kb":   "Size 2kb",
	} {
		assert.Equal(t, want, labelFromField(field), field)
	}
}

func TestDiscoverColumns(t *testing.T) {
	cols, err := discoverColumns(Rows{Map{"size": 1, "file_name": "a"}})
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, Column{Field: "file_name", Label: "File Name"}, cols[0])
	assert.Equal(t, Column{Field: "size", Label: "Size"}, cols[1])

	_, err = discoverColumns(Rows{})
	assert.Error(t, err)

	_, err = discoverColumns(Rows{plainRecord{}})
	assert.Error(t, err)
}

type plainRecord struct{}

func (plainRecord) Field(string) (any, bool) { return nil, false }
