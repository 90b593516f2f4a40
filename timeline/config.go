package timeline

import (
	"fmt"
	"slices"
)

// GroupField selects the record attribute a swimlane dimension is keyed by.
type GroupField string

const (
	GroupByStatus   GroupField = "status"
	GroupByCategory GroupField = "category"
)

// Default engine parameters, as used by the briefing timeline.
const (
	DefaultLookBackDays      = 14
	DefaultLookAheadDays     = 70
	DefaultMinWidthPercent   = 2.5
	DefaultStubOffsetPercent = 3
)

// Config holds everything a caller tunes per screen. The engine carries no
// status vocabulary of its own: group order, labels and terminal statuses all
// come from here.
type Config struct {
	LookBackDays      int
	LookAheadDays     int
	MinWidthPercent   float64
	StubOffsetPercent float64

	// GroupBy is the primary swimlane dimension, status when empty. GroupOrder
	// lists its keys in display order; keys seen in records but not listed
	// follow alphabetically.
	GroupBy    GroupField
	GroupOrder []string

	// SecondaryGroupBy optionally splits every primary lane once more.
	// Leave empty for single-level swimlanes.
	SecondaryGroupBy    GroupField
	SecondaryGroupOrder []string

	// Labels maps group keys to display labels. Unmapped keys label themselves.
	Labels map[string]string

	// TerminalStatuses exempt a record from being flagged overdue.
	TerminalStatuses []string

	// WeekLabelPrefix precedes week numbers, DefaultWeekLabelPrefix when empty.
	WeekLabelPrefix string
}

// DefaultConfig returns a status-grouped configuration with the default window
// and bar sizes.
func DefaultConfig() Config {
	return Config{
		LookBackDays:      DefaultLookBackDays,
		LookAheadDays:     DefaultLookAheadDays,
		MinWidthPercent:   DefaultMinWidthPercent,
		StubOffsetPercent: DefaultStubOffsetPercent,
		GroupBy:           GroupByStatus,
		WeekLabelPrefix:   DefaultWeekLabelPrefix,
	}
}

// Validate reports the first setting that makes a layout impossible.
func (c Config) Validate() error {
	if c.LookBackDays < 0 {
		return &ConfigurationError{Field: "lookBackDays", Reason: "must not be negative"}
	}
	if c.LookAheadDays <= 0 {
		return &ConfigurationError{Field: "lookAheadDays", Reason: "must be positive"}
	}
	if c.MinWidthPercent < 0 {
		return &ConfigurationError{Field: "minWidthPercent", Reason: "must not be negative"}
	}
	if c.StubOffsetPercent < 0 {
		return &ConfigurationError{Field: "stubOffsetPercent", Reason: "must not be negative"}
	}
	if !c.groupBy().valid() {
		return &ConfigurationError{Field: "groupBy", Reason: fmt.Sprintf("unknown field %q", c.GroupBy)}
	}
	if c.SecondaryGroupBy != "" {
		if !c.SecondaryGroupBy.valid() {
			return &ConfigurationError{Field: "secondaryGroupBy", Reason: fmt.Sprintf("unknown field %q", c.SecondaryGroupBy)}
		}
		if c.SecondaryGroupBy == c.groupBy() {
			return &ConfigurationError{Field: "secondaryGroupBy", Reason: "must differ from groupBy"}
		}
	}
	if dup, ok := firstDuplicate(c.GroupOrder); ok {
		return &ConfigurationError{Field: "groupOrder", Reason: fmt.Sprintf("duplicate key %q", dup)}
	}
	if dup, ok := firstDuplicate(c.SecondaryGroupOrder); ok {
		return &ConfigurationError{Field: "secondaryGroupOrder", Reason: fmt.Sprintf("duplicate key %q", dup)}
	}
	return nil
}

// groupBy returns the primary swimlane dimension.
func (c Config) groupBy() GroupField {
	if c.GroupBy == "" {
		return GroupByStatus
	}
	return c.GroupBy
}

// weekLabelPrefix returns the prefix for week bucket labels.
func (c Config) weekLabelPrefix() string {
	if c.WeekLabelPrefix == "" {
		return DefaultWeekLabelPrefix
	}
	return c.WeekLabelPrefix
}

// isTerminal reports whether status exempts a record from being overdue.
func (c Config) isTerminal(status string) bool {
	return slices.Contains(c.TerminalStatuses, status)
}

// label returns the display label for a group key.
func (c Config) label(key string) string {
	if l, ok := c.Labels[key]; ok {
		return l
	}
	return key
}

// valid reports whether f names a supported record attribute.
func (f GroupField) valid() bool {
	return f == GroupByStatus || f == GroupByCategory
}

// key extracts the group key of r for this dimension.
func (f GroupField) key(r Record) string {
	if f == GroupByCategory {
		return r.Category
	}
	return r.Status
}

// firstDuplicate returns the first key listed more than once.
func firstDuplicate(keys []string) (string, bool) {
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if seen[k] {
			return k, true
		}
		seen[k] = true
	}
	return "", false
}
