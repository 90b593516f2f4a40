package timeline

import (
	"math"
	"time"
)

// Record is one briefing or task as supplied by the caller. The engine only
// reads it. A zero CreatedAt marks a creation date that could not be parsed.
type Record struct {
	ID        string     `json:"id" yaml:"id"`
	CreatedAt time.Time  `json:"createdAt" yaml:"created_at"`
	Deadline  *time.Time `json:"deadline,omitempty" yaml:"deadline,omitempty"`
	Status    string     `json:"status" yaml:"status"`
	Category  string     `json:"category,omitempty" yaml:"category,omitempty"`
	SortHint  int        `json:"sortHint,omitempty" yaml:"sort_hint,omitempty"`
}

// HasDeadline reports whether the record carries a usable deadline. A zero
// deadline counts as none.
func (r Record) HasDeadline() bool {
	return r.Deadline != nil && !r.Deadline.IsZero()
}

// Bar is the horizontal placement of one record on the grid.
type Bar struct {
	RecordID     string  `json:"recordId" yaml:"record_id"`
	LeftPercent  float64 `json:"leftPercent" yaml:"left_percent"`
	WidthPercent float64 `json:"widthPercent" yaml:"width_percent"`
	IsOverdue    bool    `json:"isOverdue" yaml:"is_overdue"`
	IsStub       bool    `json:"isStub" yaml:"is_stub"`
}

// LayoutBar projects a record onto the window.
//
// Records without a deadline get a stub bar StubOffsetPercent wide. Widths are
// floored at MinWidthPercent, which also covers deadlines before the creation
// date: such bars keep their start and render at minimum width.
func LayoutBar(r Record, window Window, now time.Time, cfg Config) (Bar, error) {
	if r.CreatedAt.IsZero() {
		return Bar{}, &InvalidDateError{RecordID: r.ID, Reason: "creation date missing or unparseable"}
	}

	start := PositionPercent(r.CreatedAt, window)
	end := start + cfg.StubOffsetPercent
	if r.HasDeadline() {
		end = PositionPercent(*r.Deadline, window)
	}

	return Bar{
		RecordID:     r.ID,
		LeftPercent:  start,
		WidthPercent: math.Max(cfg.MinWidthPercent, end-start),
		IsStub:       !r.HasDeadline(),
		IsOverdue:    r.HasDeadline() && r.Deadline.Before(now) && !cfg.isTerminal(r.Status),
	}, nil
}
