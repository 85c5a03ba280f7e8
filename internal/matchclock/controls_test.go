package matchclock

import (
	"testing"

	"github.com/TiebeBeniers/vvsrotselaar/internal/models"
)

func TestControlsFor(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*models.Match)
		want  Controls
	}{
		{
			name:  "live first half",
			setup: func(m *models.Match) {},
			want:  Controls{Pause: true, End: true},
		},
		{
			name: "live second half level score ET eligible",
			setup: func(m *models.Match) {
				m.Phase = models.PhaseSecondHalf
				m.HalfTimeReached = true
			},
			want: Controls{End: true, ExtraTime: true},
		},
		{
			name: "live second half score not level",
			setup: func(m *models.Match) {
				m.Phase = models.PhaseSecondHalf
				m.HalfTimeReached = true
				m.ScoreThuis = 2
				m.ScoreUit = 1
			},
			want: Controls{End: true},
		},
		{
			name: "veteranen never get extra time",
			setup: func(m *models.Match) {
				m.Team = models.DivisionVeteranen
				m.Phase = models.PhaseSecondHalf
				m.HalfTimeReached = true
			},
			want: Controls{End: true},
		},
		{
			name: "extra time not offered twice",
			setup: func(m *models.Match) {
				m.Phase = models.PhaseSecondHalf
				m.HalfTimeReached = true
				m.ExtraTimeStarted = true
			},
			want: Controls{End: true},
		},
		{
			name: "live first ET half",
			setup: func(m *models.Match) {
				m.Phase = models.PhaseFirstExtraHalf
				m.HalfTimeReached = true
				m.ExtraTimeStarted = true
			},
			want: Controls{Pause: true, End: true},
		},
		{
			name: "live second ET half",
			setup: func(m *models.Match) {
				m.Phase = models.PhaseSecondExtraHalf
				m.HalfTimeReached = true
				m.ExtraTimeStarted = true
				m.EtHalfTimeReached = true
			},
			want: Controls{End: true},
		},
		{
			name: "rust before second half",
			setup: func(m *models.Match) {
				m.Status = models.MatchStatusRust
				m.Phase = models.PhaseSecondHalf
				m.HalfTimeReached = true
			},
			want: Controls{Resume: true, ResumeLabel: LabelStartSecondHalf},
		},
		{
			name: "rust before extra time",
			setup: func(m *models.Match) {
				m.Status = models.MatchStatusRust
				m.Phase = models.PhaseFirstExtraHalf
				m.HalfTimeReached = true
				m.ExtraTimeStarted = true
			},
			want: Controls{Resume: true, ResumeLabel: LabelStartExtraTime},
		},
		{
			name: "rust before second ET half",
			setup: func(m *models.Match) {
				m.Status = models.MatchStatusRust
				m.Phase = models.PhaseSecondExtraHalf
				m.HalfTimeReached = true
				m.ExtraTimeStarted = true
				m.EtHalfTimeReached = true
			},
			want: Controls{Resume: true, ResumeLabel: LabelStartSecondEtHalf},
		},
		{
			name: "finished match has no controls",
			setup: func(m *models.Match) {
				m.Status = models.MatchStatusFinished
			},
			want: Controls{},
		},
		{
			name: "planned match has no controls",
			setup: func(m *models.Match) {
				m.Status = models.MatchStatusPlanned
			},
			want: Controls{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := liveMatch(models.DivisionZondag)
			tt.setup(m)
			if got := ControlsFor(m); got != tt.want {
				t.Errorf("ControlsFor = %+v, want %+v", got, tt.want)
			}
		})
	}
}
