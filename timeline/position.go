package timeline

import "time"

// TodayMarker is the position of now on the grid.
type TodayMarker struct {
	Percent float64 `json:"percent" yaml:"percent"`
}

// PositionPercent maps date to its position within window as a percentage.
// Dates outside the window clamp to 0 or 100.
func PositionPercent(date time.Time, window Window) float64 {
	span := window.Span()
	if span <= 0 {
		return 0
	}
	p := float64(date.Sub(window.Start)) / float64(span) * 100
	return clampPercent(p)
}

// clampPercent limits p to [0, 100].
func clampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
