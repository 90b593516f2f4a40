package timeline

import (
	"sort"
)

// Placement pairs a record with its computed bar.
type Placement struct {
	Record Record
	Bar    Bar
}

// Swimlane is an ordered group of bars sharing a group key. With a secondary
// dimension configured, Key is "primary/secondary".
type Swimlane struct {
	Key          string `json:"key" yaml:"key"`
	Label        string `json:"label" yaml:"label"`
	PrimaryKey   string `json:"primaryKey" yaml:"primary_key"`
	SecondaryKey string `json:"secondaryKey,omitempty" yaml:"secondary_key,omitempty"`
	Bars         []Bar  `json:"bars" yaml:"bars"`
}

// GroupBars partitions placements into swimlanes and orders the bars inside
// each lane. Lanes follow cfg.GroupOrder (and cfg.SecondaryGroupOrder within a
// primary key); keys missing from the order follow the listed ones in
// alphabetical order, so no placement is ever dropped. Empty lanes are not
// emitted.
func GroupBars(placements []Placement, cfg Config) []Swimlane {
	byKey := make(map[string][]Placement)
	primaries := make(map[string]bool)
	secondaries := make(map[string]map[string]bool)

	for _, p := range placements {
		pk := cfg.groupBy().key(p.Record)
		sk := ""
		if cfg.SecondaryGroupBy != "" {
			sk = cfg.SecondaryGroupBy.key(p.Record)
		}
		primaries[pk] = true
		if secondaries[pk] == nil {
			secondaries[pk] = make(map[string]bool)
		}
		secondaries[pk][sk] = true
		k := laneKey(cfg, pk, sk)
		byKey[k] = append(byKey[k], p)
	}

	var lanes []Swimlane
	for _, pk := range orderKeys(cfg.GroupOrder, primaries) {
		subKeys := []string{""}
		if cfg.SecondaryGroupBy != "" {
			subKeys = orderKeys(cfg.SecondaryGroupOrder, secondaries[pk])
		}
		for _, sk := range subKeys {
			k := laneKey(cfg, pk, sk)
			members := byKey[k]
			if len(members) == 0 {
				continue
			}
			sortPlacements(members)

			lane := Swimlane{
				Key:          k,
				Label:        cfg.label(pk),
				PrimaryKey:   pk,
				SecondaryKey: sk,
				Bars:         make([]Bar, len(members)),
			}
			if cfg.SecondaryGroupBy != "" {
				lane.Label = cfg.label(pk) + " / " + cfg.label(sk)
			}
			for i, m := range members {
				lane.Bars[i] = m.Bar
			}
			lanes = append(lanes, lane)
		}
	}
	return lanes
}

// laneKey joins primary and secondary keys when a secondary dimension is set.
func laneKey(cfg Config, primary, secondary string) string {
	if cfg.SecondaryGroupBy == "" {
		return primary
	}
	return primary + "/" + secondary
}

// orderKeys returns the listed keys that are present, followed by the
// remaining present keys sorted alphabetically.
func orderKeys(listed []string, present map[string]bool) []string {
	out := make([]string, 0, len(present))
	seen := make(map[string]bool, len(listed))
	for _, k := range listed {
		seen[k] = true
		if present[k] {
			out = append(out, k)
		}
	}
	var rest []string
	for k := range present {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// sortPlacements orders a lane: dated records by ascending deadline first,
// then undated records newest first. Remaining ties fall back to SortHint and
// then to input order.
func sortPlacements(ps []Placement) {
	sort.SliceStable(ps, func(i, j int) bool {
		return recordLess(ps[i].Record, ps[j].Record)
	})
}

// recordLess is the in-lane ordering used by sortPlacements.
func recordLess(a, b Record) bool {
	ad, bd := a.HasDeadline(), b.HasDeadline()
	switch {
	case ad && bd:
		if !a.Deadline.Equal(*b.Deadline) {
			return a.Deadline.Before(*b.Deadline)
		}
	case ad != bd:
		return ad
	default:
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
	}
	return a.SortHint < b.SortHint
}
