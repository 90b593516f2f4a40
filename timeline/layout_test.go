package timeline

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func sampleRecords() []Record {
	return []Record{
		{ID: "b1", CreatedAt: date(2024, 1, 2), Deadline: ptr(date(2024, 1, 10)), Status: "in_progress"},
		{ID: "b2", CreatedAt: date(2024, 1, 8), Status: "ordered"},
		{ID: "b3", CreatedAt: date(2023, 11, 1), Deadline: ptr(date(2024, 2, 1)), Status: "completed"},
		{ID: "bad", Status: "ordered"},
		{ID: "b4", CreatedAt: date(2024, 1, 12), Deadline: ptr(date(2024, 1, 5)), Status: "in_progress"},
		{ID: "b5", CreatedAt: date(2024, 1, 14), Deadline: ptr(date(2024, 3, 30)), Status: "ordered"},
	}
}

func sampleConfig() Config {
	cfg := DefaultConfig()
	cfg.GroupOrder = []string{"ordered", "in_progress", "completed"}
	cfg.TerminalStatuses = []string{"completed"}
	return cfg
}

func TestCompute(t *testing.T) {
	now := date(2024, 1, 15)
	records := sampleRecords()

	layout, err := Compute(records, now, sampleConfig())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if !layout.Window.Start.Equal(date(2024, 1, 1)) || !layout.Window.End.Equal(date(2024, 3, 25)) {
		t.Errorf("window = [%s, %s]", layout.Window.Start, layout.Window.End)
	}
	if want := 14.0 / 84.0 * 100; !approx(layout.TodayMarker.Percent, want) {
		t.Errorf("today marker = %v, want %v", layout.TodayMarker.Percent, want)
	}
	if len(layout.Weeks) != 12 {
		t.Errorf("got %d weeks, want 12", len(layout.Weeks))
	}

	if got := layout.SkippedRecordIDs; !reflect.DeepEqual(got, []string{"bad"}) {
		t.Errorf("skipped = %v, want [bad]", got)
	}
	if !errors.Is(layout.Err(), ErrInvalidDate) {
		t.Errorf("Err() = %v, want ErrInvalidDate", layout.Err())
	}

	if got := layout.BarCount() + len(layout.SkippedRecordIDs); got != len(records) {
		t.Errorf("bars + skipped = %d, want %d", got, len(records))
	}

	wantLanes := map[string][]string{
		"ordered":     {"b5", "b2"},
		"in_progress": {"b4", "b1"},
		"completed":   {"b3"},
	}
	if got := laneKeys(layout.Swimlanes); !reflect.DeepEqual(got, []string{"ordered", "in_progress", "completed"}) {
		t.Fatalf("lane keys = %v", got)
	}
	for _, lane := range layout.Swimlanes {
		if got := laneIDs(lane); !reflect.DeepEqual(got, wantLanes[lane.Key]) {
			t.Errorf("lane %s = %v, want %v", lane.Key, got, wantLanes[lane.Key])
		}
	}
}

func TestComputeProperties(t *testing.T) {
	now := date(2024, 1, 15)
	cfg := sampleConfig()
	layout, err := Compute(sampleRecords(), now, cfg)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	byID := make(map[string]Record)
	for _, r := range sampleRecords() {
		byID[r.ID] = r
	}

	for _, lane := range layout.Swimlanes {
		for _, bar := range lane.Bars {
			if bar.LeftPercent < 0 || bar.LeftPercent > 100 {
				t.Errorf("%s: left %v out of [0,100]", bar.RecordID, bar.LeftPercent)
			}
			if bar.WidthPercent < cfg.MinWidthPercent {
				t.Errorf("%s: width %v below minimum", bar.RecordID, bar.WidthPercent)
			}
			r := byID[bar.RecordID]
			wantOverdue := r.HasDeadline() && r.Deadline.Before(now) && r.Status != "completed"
			if bar.IsOverdue != wantOverdue {
				t.Errorf("%s: IsOverdue = %t, want %t", bar.RecordID, bar.IsOverdue, wantOverdue)
			}
			if bar.IsStub == r.HasDeadline() {
				t.Errorf("%s: IsStub = %t with deadline %v", bar.RecordID, bar.IsStub, r.Deadline)
			}
		}
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	now := date(2024, 1, 15)
	records := sampleRecords()
	snapshot := append([]Record(nil), records...)

	first, err := Compute(records, now, sampleConfig())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	second, err := Compute(records, now, sampleConfig())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("two identical calls produced different layouts")
	}
	if !reflect.DeepEqual(records, snapshot) {
		t.Error("Compute modified its input records")
	}
}

func TestComputeConfigurationErrors(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero look-ahead", func(c *Config) { c.LookAheadDays = 0 }},
		{"negative look-back", func(c *Config) { c.LookBackDays = -7 }},
		{"negative min width", func(c *Config) { c.MinWidthPercent = -1 }},
		{"negative stub offset", func(c *Config) { c.StubOffsetPercent = -3 }},
		{"unknown group field", func(c *Config) { c.GroupBy = "owner" }},
		{"same secondary field", func(c *Config) { c.SecondaryGroupBy = GroupByStatus }},
		{"duplicate group key", func(c *Config) { c.GroupOrder = []string{"a", "b", "a"} }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := sampleConfig()
			tc.mutate(&cfg)
			layout, err := Compute(sampleRecords(), date(2024, 1, 15), cfg)
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("err = %v, want ErrConfiguration", err)
			}
			if layout != nil {
				t.Error("expected no layout alongside a configuration error")
			}
		})
	}
}

func TestComputeNoRecords(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LookBackDays, cfg.LookAheadDays = 7, 56

	layout, err := Compute(nil, date(2024, 1, 17), cfg)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(layout.Swimlanes) != 0 || len(layout.SkippedRecordIDs) != 0 {
		t.Errorf("unexpected content: %+v", layout)
	}
	if layout.Err() != nil {
		t.Errorf("Err() = %v, want nil", layout.Err())
	}
	if len(layout.Weeks) != 10 {
		t.Errorf("got %d weeks, want 10", len(layout.Weeks))
	}
	if layout.Weeks[0].Label != "KW 2" {
		t.Errorf("first week = %q, want KW 2", layout.Weeks[0].Label)
	}
}

func TestComputeZeroGrouping(t *testing.T) {
	cfg := Config{
		LookBackDays:      7,
		LookAheadDays:     56,
		MinWidthPercent:   2.5,
		StubOffsetPercent: 3,
		GroupOrder:        []string{"doing", "todo"},
		TerminalStatuses:  []string{"done"},
	}
	records := []Record{
		{ID: "t1", CreatedAt: date(2024, 1, 10), Status: "todo", Category: "seo"},
		{ID: "t2", CreatedAt: date(2024, 1, 11), Deadline: ptr(date(2024, 1, 20)), Status: "doing", Category: "seo"},
		{ID: "t3", CreatedAt: date(2024, 1, 12), Status: "done", Category: "content"},
	}

	layout, err := Compute(records, date(2024, 1, 17), cfg)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if got := laneKeys(layout.Swimlanes); !reflect.DeepEqual(got, []string{"doing", "todo", "done"}) {
		t.Errorf("lane keys = %v, want status lanes [doing todo done]", got)
	}
	if layout.Weeks[0].Label != "KW 2" {
		t.Errorf("first week = %q, want KW 2", layout.Weeks[0].Label)
	}

	if _, err := Compute(records, date(2024, 1, 17), Config{LookAheadDays: 1}); err != nil {
		t.Errorf("Compute with minimal config: %v", err)
	}

	cfg.SecondaryGroupBy = GroupByStatus
	if _, err := Compute(records, date(2024, 1, 17), cfg); !errors.Is(err, ErrConfiguration) {
		t.Errorf("secondary status under implicit status grouping: err = %v, want ErrConfiguration", err)
	}
}

func TestComputeLocalMidnight(t *testing.T) {
	loc := time.FixedZone("CET", 60*60)
	now := StartOfDay(time.Date(2024, 1, 17, 15, 30, 0, 0, loc))

	layout, err := Compute([]Record{{ID: "x", CreatedAt: now, Status: "open"}}, now, DefaultConfig())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	bar := layout.Swimlanes[0].Bars[0]
	if !approx(bar.LeftPercent, layout.TodayMarker.Percent) {
		t.Errorf("bar created today at %v, marker at %v", bar.LeftPercent, layout.TodayMarker.Percent)
	}
}
