package service

import (
	"testing"

	"github.com/TiebeBeniers/vvsrotselaar/internal/models"
)

func TestHasNameCaseInsensitive(t *testing.T) {
	persons := []models.ShiftPerson{
		{UID: "u1", Naam: "Jan Peeters"},
		{Naam: "Mie Wouters"},
	}

	tests := []struct {
		naam string
		want bool
	}{
		{"Jan Peeters", true},
		{"jan peeters", true},
		{"JAN PEETERS", true},
		{"Mie Wouters", true},
		{"Jos Claes", false},
	}

	for _, tt := range tests {
		if got := hasName(persons, tt.naam); got != tt.want {
			t.Errorf("hasName(%q) = %v, want %v", tt.naam, got, tt.want)
		}
	}
}

func TestShiftFull(t *testing.T) {
	shift := &models.Shift{Max: 2, Persons: []models.ShiftPerson{{Naam: "A"}, {Naam: "B"}}}
	if !shift.Full() {
		t.Error("shift at max should be full")
	}

	unlimited := &models.Shift{Max: 0, Persons: make([]models.ShiftPerson, 50)}
	if unlimited.Full() {
		t.Error("max 0 means unlimited")
	}
}
