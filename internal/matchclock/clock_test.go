package matchclock

import (
	"testing"
	"time"

	"github.com/TiebeBeniers/vvsrotselaar/internal/models"
)

var kickoff = time.Date(2025, 9, 14, 15, 0, 0, 0, time.Local)

func liveMatch(team models.Division) *models.Match {
	t := kickoff
	return &models.Match{
		ID:         "m1",
		Team:       team,
		Status:     models.MatchStatusLive,
		Phase:      models.PhaseFirstHalf,
		Thuisploeg: "V.V.S Rotselaar",
		Uitploeg:   "FC Testelt",
		StartedAt:  &t,
	}
}

func at(d time.Duration) time.Time {
	return kickoff.Add(d)
}

func TestDisplayTime_FirstHalf(t *testing.T) {
	tests := []struct {
		name    string
		team    models.Division
		offset  time.Duration
		want    string
		overlay string
	}{
		{"kickoff", models.DivisionZondag, 0, "0:00", "0'"},
		{"mid first half", models.DivisionZondag, 23*time.Minute + 17*time.Second, "23:17", "23'"},
		{"last regular minute", models.DivisionZondag, 44*time.Minute + 59*time.Second, "44:59", "44'"},
		{"boundary tips into stoppage", models.DivisionZondag, 45 * time.Minute, "45+0:00", "45+0'"},
		{"two minutes of stoppage", models.DivisionZondag, 47 * time.Minute, "45+2:00", "45+2'"},
		{"veteranen boundary", models.DivisionVeteranen, 36 * time.Minute, "35+1:00", "35+1'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := liveMatch(tt.team)
			if got := DisplayTime(m, at(tt.offset)); got != tt.want {
				t.Errorf("DisplayTime = %q, want %q", got, tt.want)
			}
			if got := OverlayTime(m, at(tt.offset)); got != tt.overlay {
				t.Errorf("OverlayTime = %q, want %q", got, tt.overlay)
			}
		})
	}
}

func TestDisplayTime_MissingAnchor(t *testing.T) {
	m := liveMatch(models.DivisionZondag)
	m.StartedAt = nil

	if got := ElapsedSeconds(m, at(10*time.Minute)); got != 0 {
		t.Errorf("ElapsedSeconds without anchor = %d, want 0", got)
	}
	if got := DisplayTime(m, at(10*time.Minute)); got != "0:00" {
		t.Errorf("DisplayTime without anchor = %q, want 0:00", got)
	}
}

func TestElapsedSeconds_ClockSkewClamped(t *testing.T) {
	m := liveMatch(models.DivisionZondag)
	if got := ElapsedSeconds(m, kickoff.Add(-30*time.Second)); got != 0 {
		t.Errorf("ElapsedSeconds before anchor = %d, want 0", got)
	}
}

func TestFreezeUnderPause(t *testing.T) {
	// Paused at half-time: phase advanced to 2, no resume anchor yet.
	m := liveMatch(models.DivisionZondag)
	paused := at(46 * time.Minute)
	m.Status = models.MatchStatusRust
	m.Phase = models.PhaseSecondHalf
	m.HalfTimeReached = true
	m.PausedAt = &paused

	t1 := at(47 * time.Minute)
	t2 := at(2 * time.Hour)

	if DisplayTime(m, t1) != DisplayTime(m, t2) {
		t.Errorf("display advanced during rust: %q vs %q", DisplayTime(m, t1), DisplayTime(m, t2))
	}
	if got := DisplayTime(m, t1); got != "45:00" {
		t.Errorf("display during rust = %q, want 45:00", got)
	}
	if got := OverlayTime(m, t1); got != "45'" {
		t.Errorf("overlay during rust = %q, want 45'", got)
	}
	if got := EventMinute(m, t1); got != 45 {
		t.Errorf("event minute during rust = %d, want 45", got)
	}
}

func TestMonotonicityWithinPhase(t *testing.T) {
	m := liveMatch(models.DivisionZondag)

	prev := -1
	for offset := time.Duration(0); offset <= 50*time.Minute; offset += 13 * time.Second {
		cur := ElapsedSeconds(m, at(offset))
		if cur < prev {
			t.Fatalf("elapsed went backwards at +%v: %d < %d", offset, cur, prev)
		}
		prev = cur
	}
}

func TestPhaseBoundaryContinuity(t *testing.T) {
	tests := []struct {
		team models.Division
		want string
	}{
		{models.DivisionVeteranen, "35:00"},
		{models.DivisionZaterdag, "45:00"},
		{models.DivisionZondag, "45:00"},
	}

	for _, tt := range tests {
		t.Run(string(tt.team), func(t *testing.T) {
			m := liveMatch(tt.team)
			resume := at(60 * time.Minute)
			m.Phase = models.PhaseSecondHalf
			m.HalfTimeReached = true
			m.ResumeStartedAt = &resume

			if got := DisplayTime(m, resume); got != tt.want {
				t.Errorf("display right after resume = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEventMinute_SecondHalfRoundTrip(t *testing.T) {
	m := liveMatch(models.DivisionZondag)
	resume := at(50 * time.Minute)
	m.Phase = models.PhaseSecondHalf
	m.HalfTimeReached = true
	m.ResumeStartedAt = &resume

	if got := EventMinute(m, resume.Add(3*time.Minute)); got != 48 {
		t.Errorf("event minute = %d, want 48", got)
	}
}

func TestEventMinute_StoppageMapsToBoundary(t *testing.T) {
	m := liveMatch(models.DivisionZondag)

	if got := EventMinute(m, at(46*time.Minute)); got != 45 {
		t.Errorf("event minute at 45+1 = %d, want 45", got)
	}
}

func TestExtraTimeArithmetic(t *testing.T) {
	m := liveMatch(models.DivisionZondag)
	etStart := at(110 * time.Minute)
	m.Phase = models.PhaseFirstExtraHalf
	m.HalfTimeReached = true
	m.ExtraTimeStarted = true
	m.EtStartedAt = &etStart

	// First ET half counts from 90.
	if got := DisplayTime(m, etStart.Add(4*time.Minute)); got != "94:00" {
		t.Errorf("ET display = %q, want 94:00", got)
	}
	if got := DisplayTime(m, etStart.Add(16*time.Minute)); got != "105+1:00" {
		t.Errorf("ET stoppage display = %q, want 105+1:00", got)
	}

	// Paused before the second ET half: frozen at 105.
	paused := etStart.Add(15 * time.Minute)
	m.Status = models.MatchStatusRust
	m.Phase = models.PhaseSecondExtraHalf
	m.EtHalfTimeReached = true
	m.PausedAt = &paused
	if got := DisplayTime(m, paused.Add(10*time.Minute)); got != "105:00" {
		t.Errorf("display before 2nd ET half = %q, want 105:00", got)
	}

	// Second ET half counts from 105.
	etResume := paused.Add(3 * time.Minute)
	m.Status = models.MatchStatusLive
	m.PausedAt = nil
	m.EtResumeStartedAt = &etResume
	if got := DisplayTime(m, etResume.Add(7*time.Minute+30*time.Second)); got != "112:30" {
		t.Errorf("2nd ET half display = %q, want 112:30", got)
	}
	if got := OverlayTime(m, etResume.Add(16*time.Minute)); got != "120+1'" {
		t.Errorf("2nd ET half overlay = %q, want 120+1'", got)
	}
}

// Full run-through of a zondag match: kickoff, half-time whistled in
// stoppage, resume, and the final whistle at 65:00.
func TestMatchScenario_Zondag(t *testing.T) {
	m := liveMatch(models.DivisionZondag)

	// Pause clicked one minute into stoppage time.
	pauseAt := at(46 * time.Minute)
	if got := EventMinute(m, pauseAt); got != 45 {
		t.Fatalf("half-time event minute = %d, want 45", got)
	}
	m.Status = models.MatchStatusRust
	m.Phase = models.PhaseSecondHalf
	m.HalfTimeReached = true
	m.PausedAt = &pauseAt

	if got := DisplayTime(m, at(48*time.Minute)); got != "45:00" {
		t.Fatalf("frozen display = %q, want 45:00", got)
	}

	// Resume four minutes later.
	resume := at(50 * time.Minute)
	m.Status = models.MatchStatusLive
	m.PausedAt = nil
	m.ResumeStartedAt = &resume

	if got := DisplayTime(m, resume.Add(20*time.Minute)); got != "65:00" {
		t.Fatalf("second-half display = %q, want 65:00", got)
	}
	if got := EventMinute(m, resume.Add(20*time.Minute)); got != 65 {
		t.Fatalf("end event minute = %d, want 65", got)
	}
}
