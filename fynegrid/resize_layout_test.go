package fynegrid

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/test"

	"github.com/alexballas/xdatagrid/datagrid"
)

func TestResizeLayout_OnResizeWhenSizeChanges(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	callbacks := 0
	r := &resizeLayout{
		internal: layout.NewStackLayout(),
		onResize: func() {
			callbacks++
		},
	}

	size := fyne.NewSize(700, 500)
	r.Layout(nil, size)
	fyne.DoAndWait(func() {})
	if callbacks != 1 {
		t.Fatalf("expected 1 resize callback after initial layout, got %d", callbacks)
	}

	// A layout pass without a size change is a refresh.
	r.lastFired = time.Now().Add(-time.Second)
	r.Layout(nil, size)
	fyne.DoAndWait(func() {})
	if callbacks != 1 {
		t.Fatalf("expected callback count to stay at 1, got %d", callbacks)
	}

	r.lastFired = time.Now().Add(-time.Second)
	r.Layout(nil, fyne.NewSize(700, 640))
	fyne.DoAndWait(func() {})
	if callbacks != 2 {
		t.Fatalf("expected callback count to be 2 after resize, got %d", callbacks)
	}
}

func TestTable_ResizeUpdatesViewport(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	tbl := newTestTable(t, 100, datagrid.DefaultOptions())
	tbl.scroll.Resize(fyne.NewSize(800, 640))
	tbl.onResize()

	vp := tbl.engine.Viewport()
	if vp.Width != 800 || vp.Height != 640 {
		t.Fatalf("expected viewport 800x640, got %vx%v", vp.Width, vp.Height)
	}
	if got := len(tbl.body.blocks[0].rows); got != 28 {
		t.Fatalf("expected 28 rows per block, got %d", got)
	}
	if got := tbl.engine.Layout().Columns[1].Width; got != 400 {
		t.Fatalf("expected the second column to be 400 wide, got %v", got)
	}
}
