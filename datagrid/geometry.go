package datagrid

import "math"

const (
	DefaultOverscan = 0.4

	// MaxSafeIndex is the largest data index the grid will bind. Indexes past
	// it cannot be represented exactly by a float64 scroll offset.
	MaxSafeIndex int64 = 1<<53 - 1

	// guards ceil/floor against float noise, 320*1.4/32 is 14.000000000000002
	epsilon = 1e-9
)

// Geometry holds the block dimensions derived from the viewport height, the
// row height and the overscan factor.
type Geometry struct {
	ViewportHeight float64
	RowHeight      float64
	Overscan       float64

	RowsPerBlock    int
	BlockHeight     float64
	ThresholdMargin float64

	// Clamped is set when the viewport was shorter than one row.
	Clamped bool
}

// NewGeometry computes block dimensions. RowsPerBlock is always even so two
// adjacent blocks split evenly around the overscan threshold.
func NewGeometry(viewportHeight, rowHeight, overscan float64) (Geometry, error) {
	if !(rowHeight > 0) || math.IsInf(rowHeight, 0) {
		return Geometry{}, configErrorf("row height must be positive, got %v", rowHeight)
	}
	if !(overscan >= 0) || math.IsInf(overscan, 0) {
		return Geometry{}, configErrorf("overscan must be a non-negative number, got %v", overscan)
	}

	g := Geometry{RowHeight: rowHeight, Overscan: overscan}
	if !(viewportHeight >= rowHeight) {
		viewportHeight = rowHeight
		g.Clamped = true
	}
	g.ViewportHeight = viewportHeight

	rows := int(math.Ceil(viewportHeight*(1+overscan)/rowHeight - epsilon))
	if rows < 1 {
		rows = 1
	}
	if rows%2 != 0 {
		rows++
	}
	g.RowsPerBlock = rows
	g.BlockHeight = float64(rows) * rowHeight
	g.ThresholdMargin = math.Floor(g.BlockHeight*overscan/2 + epsilon)
	return g, nil
}

// BlockAt returns the data block index shown at scrollTop.
func (g Geometry) BlockAt(scrollTop float64) int64 {
	if g.BlockHeight <= 0 || !(scrollTop > 0) {
		return 0
	}
	b := math.Floor(scrollTop / g.BlockHeight)
	if b >= float64(MaxSafeIndex) {
		return MaxSafeIndex
	}
	return int64(b)
}

type thresholds struct {
	last, next float64
}

func (g Geometry) initialThresholds() thresholds {
	return thresholds{last: g.ThresholdMargin, next: g.ThresholdMargin + g.BlockHeight}
}

// thresholdsAfter places the thresholds around the block just positioned for
// scrollTop, so the next reposition happens once the user scrolls past the
// overscan margin of the neighbouring block.
func (g Geometry) thresholdsAfter(current int64, scrollTop float64, dir Direction) thresholds {
	bh := g.BlockHeight
	if dir == Up {
		last := float64(current+1)*bh + g.ThresholdMargin
		if scrollTop <= last {
			return thresholds{last: last, next: last - bh}
		}
		return thresholds{last: last + bh, next: last}
	}

	last := float64(current)*bh + g.ThresholdMargin
	if scrollTop >= last {
		return thresholds{last: last, next: last + bh}
	}
	return thresholds{last: last - bh, next: last}
}
