package matchclock

import "github.com/TiebeBeniers/vvsrotselaar/internal/models"

// Resume button labels. The same button restarts play after every pause;
// only the wording differs.
const (
	LabelStartSecondHalf   = "Start 2e helft"
	LabelStartExtraTime    = "Start verlenging"
	LabelStartSecondEtHalf = "Start 2e helft verlenging"
)

// Controls lists which match controls are enabled for the current record.
type Controls struct {
	Pause       bool   `json:"pause"`
	Resume      bool   `json:"resume"`
	ResumeLabel string `json:"resumeLabel,omitempty"`
	ExtraTime   bool   `json:"extraTime"`
	End         bool   `json:"end"`
}

// ControlsFor maps the match state to enabled controls. Pure; it never
// consults who is asking, authorization happens before this is shown.
func ControlsFor(m *models.Match) Controls {
	var c Controls

	switch m.Status {
	case models.MatchStatusLive:
		switch m.Phase {
		case models.PhaseFirstHalf, models.PhaseFirstExtraHalf:
			c.Pause = true
			c.End = true
		case models.PhaseSecondHalf:
			c.End = true
			c.ExtraTime = m.ScoresLevel() &&
				m.Team.ExtraTimeAllowed() &&
				!m.ExtraTimeStarted
		case models.PhaseSecondExtraHalf:
			c.End = true
		}

	case models.MatchStatusRust:
		c.Resume = true
		switch {
		case !m.ExtraTimeStarted:
			c.ResumeLabel = LabelStartSecondHalf
		case !m.EtHalfTimeReached:
			c.ResumeLabel = LabelStartExtraTime
		default:
			c.ResumeLabel = LabelStartSecondEtHalf
		}
	}

	return c
}
