package service

import (
	"testing"

	"github.com/TiebeBeniers/vvsrotselaar/internal/models"
)

func TestScoringSide(t *testing.T) {
	tests := []struct {
		eventType models.EventType
		ploeg     models.TeamSide
		want      models.TeamSide
	}{
		{models.EventGoal, models.SideHome, models.SideHome},
		{models.EventGoal, models.SideAway, models.SideAway},
		{models.EventPenalty, models.SideHome, models.SideHome},
		{models.EventOwnGoal, models.SideHome, models.SideAway},
		{models.EventOwnGoal, models.SideAway, models.SideHome},
		{models.EventYellow, models.SideHome, ""},
		{models.EventRed, models.SideAway, ""},
		{models.EventSubstitution, models.SideHome, ""},
	}

	for _, tt := range tests {
		if got := scoringSide(tt.eventType, tt.ploeg); got != tt.want {
			t.Errorf("scoringSide(%s, %s) = %q, want %q", tt.eventType, tt.ploeg, got, tt.want)
		}
	}
}

func TestPromoteYellow(t *testing.T) {
	tests := []struct {
		name         string
		eventType    models.EventType
		priorYellows int
		want         models.EventType
	}{
		{"first yellow stays yellow", models.EventYellow, 0, models.EventYellow},
		{"second yellow promoted", models.EventYellow, 1, models.EventSecondYellow},
		{"straight red untouched", models.EventRed, 1, models.EventRed},
		{"goal untouched", models.EventGoal, 2, models.EventGoal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := promoteYellow(tt.eventType, tt.priorYellows); got != tt.want {
				t.Errorf("promoteYellow(%s, %d) = %s, want %s", tt.eventType, tt.priorYellows, got, tt.want)
			}
		})
	}
}
