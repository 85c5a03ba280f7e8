// Package matchclock computes everything time-related about a live match
// from the persisted record and the current instant. It keeps no state of
// its own: every viewer and every tick re-derives the display from the same
// anchor timestamps, so independently polling pages can never drift apart.
package matchclock

import (
	"fmt"
	"time"

	"github.com/TiebeBeniers/vvsrotselaar/internal/models"
)

// anchor returns the timestamp the current phase counts from, or nil when
// the phase has been entered but its anchor write has not been observed yet.
func anchor(m *models.Match) *time.Time {
	switch m.Phase {
	case models.PhaseSecondHalf:
		return m.ResumeStartedAt
	case models.PhaseFirstExtraHalf:
		return m.EtStartedAt
	case models.PhaseSecondExtraHalf:
		return m.EtResumeStartedAt
	default:
		return m.StartedAt
	}
}

// baseMinutes is the match minute at which the current phase begins.
func baseMinutes(m *models.Match) int {
	h := m.Team.HalfLength()
	switch m.Phase {
	case models.PhaseSecondHalf:
		return h
	case models.PhaseFirstExtraHalf:
		return 2 * h
	case models.PhaseSecondExtraHalf:
		return 2*h + models.ExtraHalfLength
	default:
		return 0
	}
}

// limitMinutes is the match minute where the current phase's regulation
// ends and stoppage-time notation starts.
func limitMinutes(m *models.Match) int {
	h := m.Team.HalfLength()
	switch m.Phase {
	case models.PhaseSecondHalf:
		return 2 * h
	case models.PhaseFirstExtraHalf:
		return 2*h + models.ExtraHalfLength
	case models.PhaseSecondExtraHalf:
		return 2*h + 2*models.ExtraHalfLength
	default:
		return h
	}
}

// frozen reports whether the clock should sit at the completed phase's
// boundary: paused, with the next phase's anchor not yet written.
func frozen(m *models.Match) bool {
	return m.Status == models.MatchStatusRust && anchor(m) == nil
}

// ElapsedSeconds returns whole seconds since the current phase's anchor.
// A missing anchor yields 0 rather than an error: a phase can be flagged
// active before the anchor write reaches this reader. While paused, the
// frozen pausedAt instant stands in for now, so the value stops advancing.
// Clock skew that would produce a negative duration is clamped to 0.
func ElapsedSeconds(m *models.Match, now time.Time) int {
	a := anchor(m)
	if a == nil {
		return 0
	}
	if m.Status == models.MatchStatusRust && m.PausedAt != nil {
		now = *m.PausedAt
	}
	elapsed := int(now.Sub(*a) / time.Second)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// EventMinute is the match minute to stamp on an event logged now. It uses
// the same arithmetic as the display so events sort into the right phase
// bucket, and holds at the boundary while the next phase hasn't kicked off.
// In stoppage time the minute is the phase boundary itself: an event at
// 45+2 belongs to minute 45, same as the display notation.
func EventMinute(m *models.Match, now time.Time) int {
	if frozen(m) {
		return baseMinutes(m)
	}
	minutes := baseMinutes(m) + ElapsedSeconds(m, now)/60
	if limit := limitMinutes(m); minutes > limit {
		return limit
	}
	return minutes
}

// DisplayTime formats the clock as M:SS for the live page, counting into
// stoppage time past the phase limit as "45+2:00".
func DisplayTime(m *models.Match, now time.Time) string {
	if frozen(m) {
		return fmt.Sprintf("%d:00", baseMinutes(m))
	}

	elapsed := ElapsedSeconds(m, now)
	minutes := baseMinutes(m) + elapsed/60
	seconds := elapsed % 60
	limit := limitMinutes(m)

	if withinRegulation(m.Phase, minutes, limit) {
		return fmt.Sprintf("%d:%02d", minutes, seconds)
	}
	return fmt.Sprintf("%d+%d:%02d", limit, minutes-limit, seconds)
}

// OverlayTime is the compact M' variant used on the homepage overlay and
// the team pages, "45+2'" in stoppage time.
func OverlayTime(m *models.Match, now time.Time) string {
	if frozen(m) {
		return fmt.Sprintf("%d'", baseMinutes(m))
	}

	minutes := baseMinutes(m) + ElapsedSeconds(m, now)/60
	limit := limitMinutes(m)

	if withinRegulation(m.Phase, minutes, limit) {
		return fmt.Sprintf("%d'", minutes)
	}
	return fmt.Sprintf("%d+%d'", limit, minutes-limit)
}

// withinRegulation decides when the raw minute is still shown. Opening
// halves (1 and 3) tip into "45+0" the moment the boundary minute is
// reached; closing halves display their final minute (90) raw, matching
// the old site's behaviour.
func withinRegulation(phase, minutes, limit int) bool {
	if phase == models.PhaseFirstHalf || phase == models.PhaseFirstExtraHalf {
		return minutes < limit
	}
	return minutes <= limit
}
