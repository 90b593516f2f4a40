package timeline

import "time"

// Window is the visible date range of the timeline grid.
type Window struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

// Span returns the duration covered by the window.
func (w Window) Span() time.Duration {
	return w.End.Sub(w.Start)
}

// NewWindow derives the visible range from now and the configured
// look-back/look-ahead offsets. Offsets are calendar days, so the window
// edges keep the wall-clock time of now across DST changes.
func NewWindow(now time.Time, lookBackDays, lookAheadDays int) (Window, error) {
	if lookBackDays < 0 {
		return Window{}, &ConfigurationError{Field: "lookBackDays", Reason: "must not be negative"}
	}
	if lookAheadDays <= 0 {
		return Window{}, &ConfigurationError{Field: "lookAheadDays", Reason: "must be positive"}
	}

	w := Window{
		Start: now.AddDate(0, 0, -lookBackDays),
		End:   now.AddDate(0, 0, lookAheadDays),
	}
	if !w.End.After(w.Start) {
		return Window{}, &ConfigurationError{Field: "window", Reason: "end must be after start"}
	}
	return w, nil
}

// StartOfDay truncates t to midnight in its own location. Callers sample the
// clock once per layout pass and pass the result as now.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
