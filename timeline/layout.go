/*
Package timeline lays out dated records on a fixed grid of calendar weeks.

Compute runs the whole pipeline: it derives the visible window from now,
tiles it with Monday-aligned ISO weeks, projects every record to a bar
(start and width in percent of the window), and groups the bars into ordered
swimlanes. Everything is a pure function of (records, now, config): nothing
reads the clock, nothing is cached, and the input records are never
modified.
*/
package timeline

import (
	"errors"
	"time"
)

// Layout is the render-ready result of one layout pass.
type Layout struct {
	Window           Window       `json:"window" yaml:"window"`
	Weeks            []WeekBucket `json:"weeks" yaml:"weeks"`
	TodayMarker      TodayMarker  `json:"todayMarker" yaml:"today_marker"`
	Swimlanes        []Swimlane   `json:"swimlanes" yaml:"swimlanes"`
	SkippedRecordIDs []string     `json:"skippedRecordIds" yaml:"skipped_record_ids"`

	// Problems holds one *InvalidDateError per skipped record.
	Problems []error `json:"-" yaml:"-"`
}

// Err joins Problems into one error, or returns nil when nothing was skipped.
func (l *Layout) Err() error {
	return errors.Join(l.Problems...)
}

// BarCount returns the number of bars across all swimlanes.
func (l *Layout) BarCount() int {
	n := 0
	for _, lane := range l.Swimlanes {
		n += len(lane.Bars)
	}
	return n
}

// Compute lays out records relative to now.
//
// A configuration that cannot produce a window fails the call with a
// *ConfigurationError. Records with an unusable creation date do not: they are
// left out of the swimlanes, listed in SkippedRecordIDs and described in
// Problems, and every other record is still laid out.
func Compute(records []Record, now time.Time, cfg Config) (*Layout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	window, err := NewWindow(now, cfg.LookBackDays, cfg.LookAheadDays)
	if err != nil {
		return nil, err
	}

	layout := &Layout{
		Window:           window,
		Weeks:            BuildWeeks(window, now, cfg.weekLabelPrefix()),
		TodayMarker:      TodayMarker{Percent: PositionPercent(now, window)},
		SkippedRecordIDs: []string{},
	}

	placements := make([]Placement, 0, len(records))
	for _, r := range records {
		bar, err := LayoutBar(r, window, now, cfg)
		if err != nil {
			layout.SkippedRecordIDs = append(layout.SkippedRecordIDs, r.ID)
			layout.Problems = append(layout.Problems, err)
			continue
		}
		placements = append(placements, Placement{Record: r, Bar: bar})
	}

	layout.Swimlanes = GroupBars(placements, cfg)
	if layout.Swimlanes == nil {
		layout.Swimlanes = []Swimlane{}
	}
	return layout, nil
}
