package fynegrid

import "time"

const (
	// resizeHandleWidth is the grab area at the right edge of a header cell.
	resizeHandleWidth = 6

	shadowWidth = 2

	// imageWorkers scale cell images in the background.
	imageWorkers     = 2
	maxPendingImages = 100

	autoScrollInterval = 30 * time.Millisecond

	sortAscendingMark  = " ▲"
	sortDescendingMark = " ▼"
	ellipsis           = "…"
)
