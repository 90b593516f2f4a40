// Package config loads timelinegrid settings from YAML.
//
// A file holds a base configuration plus optional named profiles, one per
// dashboard screen. A profile only lists the settings it changes; everything
// else comes from the base, which itself starts from DefaultConfig.
package config

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"timelinegrid/timeline"
)

// WindowSection controls the visible date range around today.
type WindowSection struct {
	LookBackDays  int `yaml:"look_back_days"`  // Days shown before today
	LookAheadDays int `yaml:"look_ahead_days"` // Days shown after today, must be positive
}

// BarsSection controls bar geometry in percent of the window width.
type BarsSection struct {
	MinWidthPercent   float64 `yaml:"min_width_percent"`   // Floor for every bar width
	StubOffsetPercent float64 `yaml:"stub_offset_percent"` // Width of bars without a deadline
}

// GroupingSection controls how bars are split into swimlanes.
type GroupingSection struct {
	GroupBy             string            `yaml:"group_by"`              // "status" or "category"
	GroupOrder          []string          `yaml:"group_order"`           // Lane order for the primary key
	SecondaryGroupBy    string            `yaml:"secondary_group_by"`    // Optional second dimension
	SecondaryGroupOrder []string          `yaml:"secondary_group_order"` // Lane order within a primary lane
	Labels              map[string]string `yaml:"labels"`                // Display label per group key
}

// StatusesSection names the statuses that end a record's lifecycle.
type StatusesSection struct {
	Terminal []string `yaml:"terminal"` // Never flagged overdue
}

// WeeksSection controls week column labels.
type WeeksSection struct {
	LabelPrefix string `yaml:"label_prefix"` // Prepended to the ISO week number
}

// ColumnsSection maps record fields to CSV header names (case-insensitive).
type ColumnsSection struct {
	ID        string `yaml:"id"`
	CreatedAt string `yaml:"created_at"`
	Deadline  string `yaml:"deadline"`
	Status    string `yaml:"status"`
	Category  string `yaml:"category"`
	SortHint  string `yaml:"sort_hint"`
}

// Config is one complete set of settings.
type Config struct {
	Window   WindowSection   `yaml:"window"`
	Bars     BarsSection     `yaml:"bars"`
	Grouping GroupingSection `yaml:"grouping"`
	Statuses StatusesSection `yaml:"statuses"`
	Weeks    WeeksSection    `yaml:"weeks"`
	Columns  ColumnsSection  `yaml:"columns"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() Config {
	return Config{
		Window: WindowSection{
			LookBackDays:  timeline.DefaultLookBackDays,
			LookAheadDays: timeline.DefaultLookAheadDays,
		},
		Bars: BarsSection{
			MinWidthPercent:   timeline.DefaultMinWidthPercent,
			StubOffsetPercent: timeline.DefaultStubOffsetPercent,
		},
		Grouping: GroupingSection{
			GroupBy: string(timeline.GroupByStatus),
		},
		Weeks: WeeksSection{
			LabelPrefix: timeline.DefaultWeekLabelPrefix,
		},
		Columns: ColumnsSection{
			ID:        "id",
			CreatedAt: "created_at",
			Deadline:  "deadline",
			Status:    "status",
			Category:  "category",
			SortHint:  "sort_hint",
		},
	}
}

// builtinProfiles are the window settings of the two existing timeline
// screens. A profile of the same name in a file replaces them.
var builtinProfiles = map[string]WindowSection{
	"briefings": {LookBackDays: 14, LookAheadDays: 70},
	"tasks":     {LookBackDays: 7, LookAheadDays: 56},
}

// File is a parsed configuration file.
type File struct {
	Config   `yaml:",inline"`
	Profiles map[string]yaml.Node `yaml:"profiles"`
}

// Load reads a YAML configuration file. An empty path yields the defaults.
func Load(path string) (*File, error) {
	file := &File{Config: DefaultConfig()}
	if path == "" {
		return file, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, file); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
	}
	return file, nil
}

// Profile returns the base configuration with the named profile applied.
// An empty name returns the base configuration.
func (f *File) Profile(name string) (Config, error) {
	cfg := f.Config.clone()
	if name == "" {
		return cfg, nil
	}

	if node, ok := f.Profiles[name]; ok {
		if err := node.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("error parsing profile %q: %w", name, err)
		}
		return cfg, nil
	}
	if window, ok := builtinProfiles[name]; ok {
		cfg.Window = window
		return cfg, nil
	}
	return Config{}, fmt.Errorf("unknown profile %q (available: %s)", name, strings.Join(f.ProfileNames(), ", "))
}

// ProfileNames lists file and built-in profile names, sorted.
func (f *File) ProfileNames() []string {
	names := make(map[string]bool)
	for n := range f.Profiles {
		names[n] = true
	}
	for n := range builtinProfiles {
		names[n] = true
	}
	out := make([]string, 0, len(names))
	for n := range names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Engine converts the settings into a layout engine configuration.
func (c Config) Engine() timeline.Config {
	return timeline.Config{
		LookBackDays:        c.Window.LookBackDays,
		LookAheadDays:       c.Window.LookAheadDays,
		MinWidthPercent:     c.Bars.MinWidthPercent,
		StubOffsetPercent:   c.Bars.StubOffsetPercent,
		GroupBy:             timeline.GroupField(c.Grouping.GroupBy),
		GroupOrder:          slices.Clone(c.Grouping.GroupOrder),
		SecondaryGroupBy:    timeline.GroupField(c.Grouping.SecondaryGroupBy),
		SecondaryGroupOrder: slices.Clone(c.Grouping.SecondaryGroupOrder),
		Labels:              maps.Clone(c.Grouping.Labels),
		TerminalStatuses:    slices.Clone(c.Statuses.Terminal),
		WeekLabelPrefix:     c.Weeks.LabelPrefix,
	}
}

// Validate checks the settings the same way the layout engine will.
func (c Config) Validate() error {
	return c.Engine().Validate()
}

// clone copies c so that decoding a profile into the copy leaves c intact.
func (c Config) clone() Config {
	out := c
	out.Grouping.GroupOrder = slices.Clone(c.Grouping.GroupOrder)
	out.Grouping.SecondaryGroupOrder = slices.Clone(c.Grouping.SecondaryGroupOrder)
	out.Grouping.Labels = maps.Clone(c.Grouping.Labels)
	out.Statuses.Terminal = slices.Clone(c.Statuses.Terminal)
	return out
}
