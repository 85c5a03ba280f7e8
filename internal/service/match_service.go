package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/itbasis/go-clock"

	"github.com/TiebeBeniers/vvsrotselaar/internal/matchclock"
	"github.com/TiebeBeniers/vvsrotselaar/internal/models"
	"github.com/TiebeBeniers/vvsrotselaar/internal/repository"
	"github.com/TiebeBeniers/vvsrotselaar/pkg/distributed"
	"github.com/TiebeBeniers/vvsrotselaar/pkg/jwt"
	"github.com/TiebeBeniers/vvsrotselaar/pkg/logger"
)

const (
	lockTTL           = 5 * time.Second
	lockRetries       = 3
	lockRetryInterval = 100 * time.Millisecond
)

// MatchService is the only writer of match status, phase, and anchor
// timestamps. Every transition runs behind a per-match distributed lock
// plus a conditional UPDATE on the expected prior status, so two
// controllers pressing the same button produce exactly one transition.
type MatchService struct {
	matchRepo   *repository.MatchRepository
	eventRepo   *repository.EventRepository
	lockManager *distributed.RedisLockManager
	coordinator *distributed.LiveCoordinator
	clock       clock.Clock

	graceWindow time.Duration
	startWindow time.Duration
}

func NewMatchService(
	matchRepo *repository.MatchRepository,
	eventRepo *repository.EventRepository,
	lockManager *distributed.RedisLockManager,
	coordinator *distributed.LiveCoordinator,
	clk clock.Clock,
	graceWindow, startWindow time.Duration,
) *MatchService {
	return &MatchService{
		matchRepo:   matchRepo,
		eventRepo:   eventRepo,
		lockManager: lockManager,
		coordinator: coordinator,
		clock:       clk,
		graceWindow: graceWindow,
		startWindow: startWindow,
	}
}

// Create registers a new match. Retro-entered results may come in
// directly as finished with a final score.
func (s *MatchService) Create(m *models.Match) (*models.Match, error) {
	if m.Datum == "" || m.Thuisploeg == "" || m.Uitploeg == "" {
		return nil, ErrInvalidInput
	}
	if !m.Team.Valid() {
		return nil, fmt.Errorf("%w: unknown team %q", ErrInvalidInput, m.Team)
	}
	if m.Status == "" {
		m.Status = models.MatchStatusPlanned
	}
	if m.Status != models.MatchStatusPlanned && m.Status != models.MatchStatusFinished {
		return nil, fmt.Errorf("%w: matches can only be created as planned or finished", ErrInvalidInput)
	}

	m.ID = uuid.New().String()
	created, err := s.matchRepo.Create(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return created, nil
}

// GetByID returns a single match.
func (s *MatchService) GetByID(id string) (*models.Match, error) {
	m, err := s.matchRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	if m == nil {
		return nil, ErrMatchNotFound
	}
	return m, nil
}

// List returns all matches, optionally filtered by team and status.
func (s *MatchService) List(team models.Division, status models.MatchStatus, limit int) ([]*models.Match, error) {
	if team != "" && !team.Valid() {
		return nil, fmt.Errorf("%w: unknown team %q", ErrInvalidInput, team)
	}
	matches, err := s.matchRepo.FindByTeam(team, status, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

// Update rewrites a match's scheduling fields. Live state is untouched;
// the transition endpoints own status, phase, and anchors.
func (s *MatchService) Update(id string, m *models.Match) (*models.Match, error) {
	existing, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m.Team != "" && !m.Team.Valid() {
		return nil, fmt.Errorf("%w: unknown team %q", ErrInvalidInput, m.Team)
	}

	m.ID = existing.ID
	if err := s.matchRepo.Update(m); err != nil {
		return nil, fmt.Errorf("failed to update match: %w", err)
	}
	return s.GetByID(id)
}

// Delete removes a match and its whole event log.
func (s *MatchService) Delete(id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.matchRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	return nil
}

// Startable reports whether the start control should be offered: a
// planned match within the start window before kickoff, or past it.
func (s *MatchService) Startable(m *models.Match) bool {
	if m.Status != models.MatchStatusPlanned {
		return false
	}
	kickoff, err := m.Kickoff()
	if err != nil {
		return false
	}
	return s.clock.Now().After(kickoff.Add(-s.startWindow))
}

// Start begins live tracking. Only one match may be live system-wide.
// When the button is pressed more than the grace window after the
// scheduled kickoff the clock is back-dated to the kickoff instant, on
// the assumption that play started on time and nobody pressed the button.
func (s *MatchService) Start(ctx context.Context, matchID string, claims *jwt.Claims) (*models.Match, error) {
	return s.transition(ctx, matchID, claims, func(m *models.Match, now time.Time) (*models.MatchTransition, *models.Event, error) {
		if m.Status != models.MatchStatusPlanned {
			return nil, nil, ErrConflict
		}
		if !s.Startable(m) {
			return nil, nil, ErrNotYetStartable
		}

		live, err := s.matchRepo.FindLive()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to check for live match: %w", err)
		}
		if live != nil && live.ID != m.ID {
			return nil, nil, ErrMatchAlreadyLive
		}

		startedAt := now
		if kickoff, err := m.Kickoff(); err == nil && now.Sub(kickoff) > s.graceWindow {
			startedAt = kickoff
		}

		t := &models.MatchTransition{
			Status:    models.MatchStatusLive,
			Phase:     models.PhaseFirstHalf,
			StartedAt: &startedAt,
		}
		e := &models.Event{
			Type:   models.EventAftrap,
			Minuut: 0,
			Half:   models.PhaseFirstHalf,
		}
		return t, e, nil
	})
}

// Pause blows the half-time whistle. Valid in an opening half only; the
// phase advances immediately and the clock freezes at the boundary until
// the closing half's anchor is written by Resume.
func (s *MatchService) Pause(ctx context.Context, matchID string, claims *jwt.Claims) (*models.Match, error) {
	return s.transition(ctx, matchID, claims, func(m *models.Match, now time.Time) (*models.MatchTransition, *models.Event, error) {
		if !matchclock.ControlsFor(m).Pause {
			return nil, nil, ErrConflict
		}

		minute := matchclock.EventMinute(m, now)

		t := &models.MatchTransition{
			Status:      models.MatchStatusRust,
			Phase:       m.Phase + 1,
			SetPausedAt: true,
			PausedAt:    &now,
		}
		if m.Phase == models.PhaseFirstHalf {
			t.HalfTimeReached = true
		} else {
			t.EtHalfTimeReached = true
		}

		e := &models.Event{
			Type:   models.EventRust,
			Minuut: minute,
			Half:   m.Phase,
		}
		return t, e, nil
	})
}

// Resume restarts play after any pause, writing the anchor the advanced
// phase counts from and clearing pausedAt.
func (s *MatchService) Resume(ctx context.Context, matchID string, claims *jwt.Claims) (*models.Match, error) {
	return s.transition(ctx, matchID, claims, func(m *models.Match, now time.Time) (*models.MatchTransition, *models.Event, error) {
		if !matchclock.ControlsFor(m).Resume {
			return nil, nil, ErrConflict
		}

		t := &models.MatchTransition{
			Status:      models.MatchStatusLive,
			Phase:       m.Phase,
			SetPausedAt: true, // PausedAt nil clears the freeze
		}
		switch m.Phase {
		case models.PhaseSecondHalf:
			t.ResumeStartedAt = &now
		case models.PhaseFirstExtraHalf:
			t.EtStartedAt = &now
		case models.PhaseSecondExtraHalf:
			t.EtResumeStartedAt = &now
		default:
			return nil, nil, ErrConflict
		}

		e := &models.Event{
			Type:   models.EventHervat,
			Minuut: matchclock.EventMinute(m, now),
			Half:   m.Phase,
		}
		return t, e, nil
	})
}

// StartExtraTime announces extra time at the end of a drawn regulation.
// The match drops into rust; the extra-time clock starts when the
// controller presses resume ("Start verlenging").
func (s *MatchService) StartExtraTime(ctx context.Context, matchID string, claims *jwt.Claims) (*models.Match, error) {
	return s.transition(ctx, matchID, claims, func(m *models.Match, now time.Time) (*models.MatchTransition, *models.Event, error) {
		if !matchclock.ControlsFor(m).ExtraTime {
			return nil, nil, ErrExtraTimeNotOpen
		}

		minute := matchclock.EventMinute(m, now)

		t := &models.MatchTransition{
			Status:           models.MatchStatusRust,
			Phase:            models.PhaseFirstExtraHalf,
			ExtraTimeStarted: true,
			SetPausedAt:      true,
			PausedAt:         &now,
		}
		e := &models.Event{
			Type:   models.EventVerlenging,
			Minuut: minute,
			Half:   m.Phase,
		}
		return t, e, nil
	})
}

// End blows the final whistle. Terminal: a finished match accepts only
// score corrections.
func (s *MatchService) End(ctx context.Context, matchID string, claims *jwt.Claims) (*models.Match, error) {
	return s.transition(ctx, matchID, claims, func(m *models.Match, now time.Time) (*models.MatchTransition, *models.Event, error) {
		if !matchclock.ControlsFor(m).End {
			return nil, nil, ErrConflict
		}

		t := &models.MatchTransition{
			Status:      models.MatchStatusFinished,
			Phase:       m.Phase,
			SetPausedAt: true,
			PausedAt:    &now,
		}
		e := &models.Event{
			Type:   models.EventEinde,
			Minuut: matchclock.EventMinute(m, now),
			Half:   m.Phase,
		}
		return t, e, nil
	})
}

// CorrectScore overwrites the score directly, for fixing mistakes after
// the fact. The event log is not touched.
func (s *MatchService) CorrectScore(matchID string, claims *jwt.Claims, scoreThuis, scoreUit int) (*models.Match, error) {
	if scoreThuis < 0 || scoreUit < 0 {
		return nil, ErrInvalidInput
	}

	m, err := s.GetByID(matchID)
	if err != nil {
		return nil, err
	}
	if !m.IsController(claims.UserID, claims.Categorie) {
		return nil, ErrUnauthorized
	}

	if err := s.matchRepo.UpdateScore(matchID, scoreThuis, scoreUit); err != nil {
		return nil, fmt.Errorf("failed to update score: %w", err)
	}

	updated, err := s.GetByID(matchID)
	if err != nil {
		return nil, err
	}
	s.publish(context.Background(), updated)
	return updated, nil
}

// transition runs one guarded state change: authorize, lock, re-read,
// decide, conditional write, append the structural event, publish.
func (s *MatchService) transition(
	ctx context.Context,
	matchID string,
	claims *jwt.Claims,
	decide func(m *models.Match, now time.Time) (*models.MatchTransition, *models.Event, error),
) (*models.Match, error) {
	m, err := s.GetByID(matchID)
	if err != nil {
		return nil, err
	}
	if !m.IsController(claims.UserID, claims.Categorie) {
		return nil, ErrUnauthorized
	}

	lock, err := s.lockManager.TryLockWithRetry(
		ctx,
		"match:lock:"+matchID,
		uuid.New().String(),
		lockTTL,
		lockRetries,
		lockRetryInterval,
	)
	if err == distributed.ErrLockNotAcquired {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("failed to acquire match lock: %w", err)
	}
	defer func() {
		if err := lock.Release(ctx); err != nil {
			logger.Warn("Failed to release match lock", "matchId", matchID, "error", err)
		}
	}()

	// Re-read under the lock so the decision sees the latest state.
	m, err = s.GetByID(matchID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	t, e, err := decide(m, now)
	if err != nil {
		return nil, err
	}

	ok, err := s.matchRepo.Transition(matchID, m.Status, t)
	if err != nil {
		return nil, fmt.Errorf("failed to write transition: %w", err)
	}
	if !ok {
		return nil, ErrConflict
	}

	if e != nil {
		e.ID = uuid.New().String()
		e.MatchID = matchID
		e.Ploeg = models.SideCenter
		e.Timestamp = now
		if err := s.eventRepo.Append(e); err != nil {
			// The transition already landed; losing the marker is
			// recoverable, losing the transition would not be.
			logger.Error("Failed to append structural event", "matchId", matchID, "type", e.Type, "error", err)
		}
	}

	updated, err := s.GetByID(matchID)
	if err != nil {
		return nil, err
	}

	logger.Info("Match transition",
		"matchId", matchID,
		"from", m.Status, "to", updated.Status,
		"phase", updated.Phase,
		"by", claims.UserID)

	s.publish(ctx, updated)
	return updated, nil
}

func (s *MatchService) publish(ctx context.Context, m *models.Match) {
	if s.coordinator == nil {
		return
	}
	if err := s.coordinator.Publish(ctx, &distributed.LiveUpdate{
		Type:    "match-update",
		MatchID: m.ID,
	}); err != nil {
		logger.Warn("Failed to publish live update", "matchId", m.ID, "error", err)
	}
}
