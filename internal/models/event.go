package models

import "time"

// EventType enumerates timeline entries. The string values are the wire
// contract carried over from the old site, so the Dutch names stay.
type EventType string

const (
	EventAftrap       EventType = "aftrap"  // kickoff
	EventGoal         EventType = "goal"
	EventPenalty      EventType = "penalty"
	EventOwnGoal      EventType = "own-goal"
	EventYellow       EventType = "yellow"
	EventSecondYellow EventType = "second-yellow" // second yellow, walks
	EventRed          EventType = "red"
	EventSubstitution EventType = "substitution"
	EventRust         EventType = "rust"       // half-time pause
	EventHervat       EventType = "hervat"     // resume
	EventVerlenging   EventType = "verlenging" // end of regulation, extra time coming
	EventEinde        EventType = "einde"      // final whistle
)

// IsStructural reports whether the event marks a phase transition rather
// than a moment of play.
func (t EventType) IsStructural() bool {
	switch t {
	case EventAftrap, EventRust, EventHervat, EventVerlenging, EventEinde:
		return true
	}
	return false
}

// TeamSide is the side an event belongs to on the timeline.
type TeamSide string

const (
	SideHome   TeamSide = "home"
	SideAway   TeamSide = "away"
	SideCenter TeamSide = "center" // structural events
)

func (s TeamSide) Valid() bool {
	return s == SideHome || s == SideAway || s == SideCenter
}

// Event is an immutable timeline entry. Events are only ever appended;
// they disappear solely when the whole match is deleted.
type Event struct {
	ID      string    `json:"id" db:"id"`
	MatchID string    `json:"matchId" db:"match_id"`
	Minuut  int       `json:"minuut" db:"minuut"`
	Half    int       `json:"half" db:"half"` // phase at the time of logging
	Type    EventType `json:"type" db:"type"`
	Ploeg   TeamSide  `json:"ploeg" db:"ploeg"`
	Speler  string    `json:"speler,omitempty" db:"speler"`
	Assist  string    `json:"assist,omitempty" db:"assist"`

	// Substitutions only.
	SpelerUit string `json:"spelerUit,omitempty" db:"speler_uit"`
	SpelerIn  string `json:"spelerIn,omitempty" db:"speler_in"`

	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}
