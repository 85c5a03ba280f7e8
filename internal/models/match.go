package models

import (
	"fmt"
	"time"
)

type MatchStatus string

const (
	MatchStatusPlanned  MatchStatus = "planned"
	MatchStatusLive     MatchStatus = "live"
	MatchStatusRust     MatchStatus = "rust" // paused, between-halves included
	MatchStatusFinished MatchStatus = "finished"
)

// Division identifies one of the club's three squads. The division decides
// the regulation half length and whether extra time can be played.
type Division string

const (
	DivisionVeteranen Division = "veteranen"
	DivisionZaterdag  Division = "zaterdag"
	DivisionZondag    Division = "zondag"
)

func (d Division) Valid() bool {
	switch d {
	case DivisionVeteranen, DivisionZaterdag, DivisionZondag:
		return true
	}
	return false
}

// HalfLength returns the regulation half length in minutes.
func (d Division) HalfLength() int {
	if d == DivisionVeteranen {
		return 35
	}
	return 45
}

// ExtraTimeAllowed reports whether this division plays extra time.
// Veteranen matches end after regulation regardless of the score.
func (d Division) ExtraTimeAllowed() bool {
	return d != DivisionVeteranen
}

// ExtraHalfLength is the fixed extra-time half length in minutes,
// identical for every division that plays it.
const ExtraHalfLength = 15

// Match phases. A phase only ever advances.
const (
	PhaseFirstHalf       = 1
	PhaseSecondHalf      = 2
	PhaseFirstExtraHalf  = 3
	PhaseSecondExtraHalf = 4
)

type Match struct {
	ID           string   `json:"id" db:"id"`
	Datum        string   `json:"datum" db:"datum"` // YYYY-MM-DD
	Uur          string   `json:"uur" db:"uur"`     // HH:MM
	Locatie      string   `json:"locatie" db:"locatie"`
	Thuisploeg   string   `json:"thuisploeg" db:"thuisploeg"`
	Uitploeg     string   `json:"uitploeg" db:"uitploeg"`
	Team         Division `json:"team" db:"team"`
	Beschrijving string   `json:"beschrijving,omitempty" db:"beschrijving"`

	// User IDs allowed to run the match without being a board member.
	AangeduidePersonen []string `json:"aangeduidePersonen" db:"aangeduide_personen"`

	Status     MatchStatus `json:"status" db:"status"`
	Phase      int         `json:"phase" db:"phase"`
	ScoreThuis int         `json:"scoreThuis" db:"score_thuis"`
	ScoreUit   int         `json:"scoreUit" db:"score_uit"`

	// One-way latches recording that a transition happened; they pick the
	// anchor the clock counts from and which controls are visible.
	HalfTimeReached   bool `json:"halfTimeReached" db:"half_time_reached"`
	ExtraTimeStarted  bool `json:"extraTimeStarted" db:"extra_time_started"`
	EtHalfTimeReached bool `json:"etHalfTimeReached" db:"et_half_time_reached"`

	// Phase anchor timestamps, each written once. PausedAt is the exception:
	// set on pause, cleared again on resume.
	StartedAt          *time.Time `json:"startedAt,omitempty" db:"started_at"`
	PausedAt           *time.Time `json:"pausedAt,omitempty" db:"paused_at"`
	ResumeStartedAt    *time.Time `json:"resumeStartedAt,omitempty" db:"resume_started_at"`
	EtStartedAt        *time.Time `json:"etStartedAt,omitempty" db:"et_started_at"`
	EtResumeStartedAt  *time.Time `json:"etResumeStartedAt,omitempty" db:"et_resume_started_at"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// MatchTransition is the delta a phase transition writes. Anchor fields
// left nil are untouched; latches only ever flip to true. PausedAt needs
// its own flag because resume clears it back to NULL.
type MatchTransition struct {
	Status MatchStatus
	Phase  int

	HalfTimeReached   bool
	ExtraTimeStarted  bool
	EtHalfTimeReached bool

	StartedAt         *time.Time
	ResumeStartedAt   *time.Time
	EtStartedAt       *time.Time
	EtResumeStartedAt *time.Time

	SetPausedAt bool
	PausedAt    *time.Time
}

// Kickoff parses the scheduled date and time into a single instant.
func (m *Match) Kickoff() (time.Time, error) {
	uur := m.Uur
	if uur == "" {
		uur = "00:00"
	}
	t, err := time.ParseInLocation("2006-01-02T15:04", fmt.Sprintf("%sT%s", m.Datum, uur), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid match schedule %q %q: %w", m.Datum, m.Uur, err)
	}
	return t, nil
}

// IsController reports whether the given user may run this match: board
// members always can, others only when designated on the match itself.
func (m *Match) IsController(userID, categorie string) bool {
	if categorie == CategorieBestuurslid {
		return true
	}
	for _, uid := range m.AangeduidePersonen {
		if uid == userID {
			return true
		}
	}
	return false
}

// ScoresLevel reports whether the match is currently a draw.
func (m *Match) ScoresLevel() bool {
	return m.ScoreThuis == m.ScoreUit
}

// InPlay reports whether live tracking is running (live or paused).
func (m *Match) InPlay() bool {
	return m.Status == MatchStatusLive || m.Status == MatchStatusRust
}
