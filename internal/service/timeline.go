package service

import (
	"sort"

	"github.com/TiebeBeniers/vvsrotselaar/internal/models"
)

// TimelineGroup is one phase bucket of the rendered timeline. Buckets are
// ordered newest phase first; inside a bucket play events run minute-
// descending so the latest action sits on top. The structural marker that
// closed the bucket's phase (rust, verlenging, einde) heads the bucket.
type TimelineGroup struct {
	Half   int             `json:"half"`
	Marker *models.Event   `json:"marker,omitempty"`
	Events []*models.Event `json:"events"`
}

// GroupTimeline arranges a match's raw event log for display.
func GroupTimeline(events []*models.Event) []*TimelineGroup {
	groups := make(map[int]*TimelineGroup)
	var halves []int

	group := func(half int) *TimelineGroup {
		g, ok := groups[half]
		if !ok {
			g = &TimelineGroup{Half: half, Events: []*models.Event{}}
			groups[half] = g
			halves = append(halves, half)
		}
		return g
	}

	for _, e := range events {
		g := group(e.Half)
		if e.Type.IsStructural() && e.Type != models.EventAftrap && e.Type != models.EventHervat {
			// rust / verlenging / einde closes the phase.
			g.Marker = e
			continue
		}
		g.Events = append(g.Events, e)
	}

	for _, g := range groups {
		evs := g.Events
		sort.SliceStable(evs, func(i, j int) bool {
			if evs[i].Minuut != evs[j].Minuut {
				return evs[i].Minuut > evs[j].Minuut
			}
			return evs[i].Timestamp.After(evs[j].Timestamp)
		})
	}

	sort.Sort(sort.Reverse(sort.IntSlice(halves)))

	result := make([]*TimelineGroup, 0, len(halves))
	for _, h := range halves {
		result = append(result, groups[h])
	}
	return result
}
