package datagrid

// Cell is one rendered cell of a pool row.
type Cell struct {
	Field    string
	Content  CellContent
	Selected bool
}

// Row is one physical row container. DataIndex is -1 while the row pads the
// end of the dataset.
type Row struct {
	DataIndex int64
	// Selected is set when the record has a selection entry. In cell mode the
	// selected fields are flagged on the cells.
	Selected bool
	Anchor   bool
	Cells    []Cell
}

// Bound reports whether the row shows a record.
func (r *Row) Bound() bool {
	return r.DataIndex >= 0
}

// Block is one of the two recycled row containers. Index is the data block
// it currently shows and Offset its vertical position in content pixels.
// Version changes whenever anything a host draws from the block changes.
type Block struct {
	Slot    int
	Index   int64
	Offset  float64
	Rows    []Row
	Version uint64
}

// pool is the two-slot ring. The block showing data block n always sits in
// slot n%2, so two adjacent data blocks never compete for the same slot.
type pool struct {
	blocks [2]Block
}

func slotOf(index int64) int {
	return int(index % 2)
}

// rebuild allocates rowsPerBlock empty rows in both slots and unbinds them.
func (p *pool) rebuild(rowsPerBlock int, cols []Column) {
	for s := range p.blocks {
		b := &p.blocks[s]
		b.Slot = s
		b.Index = -1
		b.Offset = 0
		b.Rows = make([]Row, rowsPerBlock)
		for r := range b.Rows {
			cells := make([]Cell, len(cols))
			for c, col := range cols {
				cells[c].Field = col.Field
			}
			b.Rows[r] = Row{DataIndex: -1, Cells: cells}
		}
		b.Version++
	}
}

func (p *pool) moveTo(slot int, offset float64) {
	b := &p.blocks[slot]
	if b.Offset != offset {
		b.Offset = offset
		b.Version++
	}
}

// dataIndexFor maps a row of a data block to a data index. It fails instead
// of overflowing past MaxSafeIndex.
func dataIndexFor(block int64, row, rowsPerBlock int) (int64, bool) {
	if block < 0 || rowsPerBlock <= 0 {
		return 0, false
	}
	if block > (MaxSafeIndex-int64(row))/int64(rowsPerBlock) {
		return 0, false
	}
	return block*int64(rowsPerBlock) + int64(row), true
}
