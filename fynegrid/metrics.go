package fynegrid

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// DefaultRowHeight is one line of theme text plus padding. A running fyne
// app is required to measure text.
func DefaultRowHeight() float64 {
	s, _ := fyne.CurrentApp().Driver().RenderedTextSize("A", theme.TextSize(), fyne.TextStyle{}, nil)
	return float64(fyne.Max(s.Height+theme.Padding()*2, 24))
}

// fitText shortens s with an ellipsis until it fits width.
func fitText(s string, width float32, size float32, style fyne.TextStyle) string {
	if s == "" || width <= 0 {
		return ""
	}
	measure := func(s string) float32 {
		return fyne.MeasureText(s, size, style).Width
	}
	if measure(s) <= width {
		return s
	}

	target := width - measure(ellipsis)
	if target <= 0 {
		return ""
	}
	runes := []rune(s)
	low, high := 0, len(runes)
	best := 0
	for low <= high {
		mid := (low + high) / 2
		if measure(string(runes[:mid])) <= target {
			best = mid
			low = mid + 1
		} else {
			high = mid - 1
		}
	}
	return string(runes[:best]) + ellipsis
}
