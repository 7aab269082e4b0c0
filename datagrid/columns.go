package datagrid

import (
	"math"
	"strings"
	"unicode"
)

const DefaultMinColumnWidth = 50

// ColumnLayout is the computed placement of one column. X is measured from
// the left edge of the unscrolled content.
type ColumnLayout struct {
	Field string
	Width float64
	X     float64
	Fixed bool
}

// Layout is the result of a width allocation.
type Layout struct {
	Columns    []ColumnLayout
	TotalFixed float64
	TotalLoose float64
	// FixedFits reports whether the fixed columns leave room for the loose
	// ones. When false the host scrolls fixed columns with the rest.
	FixedFits bool
}

// Width is the full content width.
func (l Layout) Width() float64 {
	return l.TotalFixed + l.TotalLoose
}

// AllocateWidths sizes every column. Columns with a Width keep it, clamped to
// their minimum. The remaining viewport width is split evenly between the
// others and the integer remainder goes to the first column that took the
// even share, so the total matches the viewport exactly.
func AllocateWidths(cols []Column, viewportWidth, globalMin float64) Layout {
	l := Layout{Columns: make([]ColumnLayout, len(cols))}

	used := 0.0
	undefined := 0
	for i, c := range cols {
		cl := ColumnLayout{Field: c.Field, Fixed: c.Fixed}
		if c.Width > 0 {
			cl.Width = max(c.Width, c.MinWidth, globalMin)
			used += cl.Width
		} else {
			undefined++
		}
		l.Columns[i] = cl
	}

	if undefined > 0 {
		available := viewportWidth - used
		share := math.Floor(available / float64(undefined))
		if !(share > 0) {
			share = 0
		}
		remainder := available - share*float64(undefined)
		for i, c := range cols {
			if c.Width > 0 {
				continue
			}
			w := max(c.MinWidth, globalMin, share)
			if remainder > 0 && w == share {
				w += remainder
				remainder = 0
			}
			l.Columns[i].Width = w
		}
	}

	x := 0.0
	for i := range l.Columns {
		l.Columns[i].X = x
		x += l.Columns[i].Width
		if l.Columns[i].Fixed {
			l.TotalFixed += l.Columns[i].Width
		} else {
			l.TotalLoose += l.Columns[i].Width
		}
	}
	l.FixedFits = l.TotalFixed < viewportWidth
	return l
}

// orderColumns returns a copy of cols with fixed columns first, keeping the
// relative order inside each group.
func orderColumns(cols []Column) []Column {
	out := make([]Column, 0, len(cols))
	for _, c := range cols {
		if c.Fixed {
			out = append(out, c)
		}
	}
	for _, c := range cols {
		if !c.Fixed {
			out = append(out, c)
		}
	}
	for i := range out {
		if out[i].Label == "" {
			out[i].Label = labelFromField(out[i].Field)
		}
	}
	return out
}

// discoverColumns builds one column per field of the first record.
func discoverColumns(ds Dataset) ([]Column, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, configErrorf("no columns given and the dataset is empty")
	}
	lister, ok := ds.Record(0).(FieldLister)
	if !ok {
		return nil, configErrorf("no columns given and records of type %T cannot list their fields", ds.Record(0))
	}
	fields := lister.Fields()
	if len(fields) == 0 {
		return nil, configErrorf("no columns given and the first record has no fields")
	}
	cols := make([]Column, len(fields))
	for i, f := range fields {
		cols[i] = Column{Field: f, Label: labelFromField(f)}
	}
	return cols, nil
}

// labelFromField turns "first_name" into "First Name". Only the first dash or
// underscore becomes a space.
func labelFromField(field string) string {
	if i := strings.IndexAny(field, "-_"); i >= 0 {
		field = field[:i] + " " + field[i+1:]
	}

	var b strings.Builder
	prevWord := false
	for _, r := range field {
		word := r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
		if word && !prevWord {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
		prevWord = word
	}
	return b.String()
}
