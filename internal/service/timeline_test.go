package service

import (
	"testing"
	"time"

	"github.com/TiebeBeniers/vvsrotselaar/internal/models"
)

func ev(half, minuut int, eventType models.EventType, offset time.Duration) *models.Event {
	return &models.Event{
		Half:      half,
		Minuut:    minuut,
		Type:      eventType,
		Timestamp: time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC).Add(offset),
	}
}

func TestGroupTimelineNewestPhaseFirst(t *testing.T) {
	events := []*models.Event{
		ev(1, 0, models.EventAftrap, 0),
		ev(1, 12, models.EventGoal, 12*time.Minute),
		ev(1, 45, models.EventRust, 46*time.Minute),
		ev(2, 45, models.EventHervat, 60*time.Minute),
		ev(2, 67, models.EventGoal, 82*time.Minute),
		ev(2, 90, models.EventEinde, 106*time.Minute),
	}

	groups := GroupTimeline(events)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Half != 2 || groups[1].Half != 1 {
		t.Errorf("expected halves [2 1], got [%d %d]", groups[0].Half, groups[1].Half)
	}
}

func TestGroupTimelineMinuteDescendingWithinBucket(t *testing.T) {
	events := []*models.Event{
		ev(1, 3, models.EventGoal, 3*time.Minute),
		ev(1, 28, models.EventYellow, 28*time.Minute),
		ev(1, 15, models.EventGoal, 15*time.Minute),
	}

	groups := GroupTimeline(events)

	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	got := []int{}
	for _, e := range groups[0].Events {
		got = append(got, e.Minuut)
	}
	want := []int{28, 15, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected minutes %v, got %v", want, got)
		}
	}
}

func TestGroupTimelineStructuralMarkers(t *testing.T) {
	events := []*models.Event{
		ev(1, 0, models.EventAftrap, 0),
		ev(1, 45, models.EventRust, 45*time.Minute),
		ev(2, 90, models.EventEinde, 106*time.Minute),
	}

	groups := GroupTimeline(events)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Marker == nil || groups[0].Marker.Type != models.EventEinde {
		t.Errorf("second half should be closed by einde")
	}
	if groups[1].Marker == nil || groups[1].Marker.Type != models.EventRust {
		t.Errorf("first half should be closed by rust")
	}
	// Aftrap is a regular entry inside its bucket, not a closing marker.
	if len(groups[1].Events) != 1 || groups[1].Events[0].Type != models.EventAftrap {
		t.Errorf("aftrap should stay inside the first-half bucket")
	}
}

func TestGroupTimelineSameMinuteOrdersByTimestamp(t *testing.T) {
	events := []*models.Event{
		ev(2, 67, models.EventGoal, 82*time.Minute),
		ev(2, 67, models.EventYellow, 83*time.Minute),
	}

	groups := GroupTimeline(events)

	if groups[0].Events[0].Type != models.EventYellow {
		t.Errorf("later event in the same minute should come first")
	}
}
