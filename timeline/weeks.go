package timeline

import (
	"strconv"
	"time"
)

// DefaultWeekLabelPrefix is prepended to the ISO week number in bucket labels.
const DefaultWeekLabelPrefix = "KW "

// WeekBucket is one Monday-to-Sunday column of the grid.
type WeekBucket struct {
	Start         time.Time `json:"start" yaml:"start"`
	End           time.Time `json:"end" yaml:"end"`
	Label         string    `json:"label" yaml:"label"`
	IsCurrentWeek bool      `json:"isCurrentWeek" yaml:"is_current_week"`
}

// BuildWeeks partitions the window into contiguous Monday-aligned weeks.
// The first bucket starts on the Monday on or before window.Start and buckets
// are emitted while their start is before window.End, so the last bucket may
// overshoot the window by up to six days.
func BuildWeeks(window Window, now time.Time, labelPrefix string) []WeekBucket {
	cursor := StartOfDay(window.Start)
	cursor = cursor.AddDate(0, 0, -(isoWeekday(cursor) - 1))

	var weeks []WeekBucket
	for cursor.Before(window.End) {
		next := cursor.AddDate(0, 0, 7)
		weeks = append(weeks, WeekBucket{
			Start:         cursor,
			End:           cursor.AddDate(0, 0, 6),
			Label:         labelPrefix + strconv.Itoa(ISOWeekNumber(cursor)),
			IsCurrentWeek: !now.Before(cursor) && now.Before(next),
		})
		cursor = next
	}
	return weeks
}

// ISOWeekNumber returns the ISO-8601 week of year for the calendar date of t.
// The date is moved to the Thursday of its week and counted from January 1st
// of that Thursday's year, all on UTC midnights so DST never skews the count.
func ISOWeekNumber(t time.Time) int {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	thursday := day.AddDate(0, 0, 4-isoWeekday(day))
	yearStart := time.Date(thursday.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	days := int(thursday.Sub(yearStart) / (24 * time.Hour))
	// ceil((days+1)/7)
	return (days + 7) / 7
}

// isoWeekday maps Go's Sunday-first weekday to Monday=1 ... Sunday=7.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
