package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/itbasis/go-clock"

	"github.com/TiebeBeniers/vvsrotselaar/internal/matchclock"
	"github.com/TiebeBeniers/vvsrotselaar/internal/models"
	"github.com/TiebeBeniers/vvsrotselaar/internal/repository"
	"github.com/TiebeBeniers/vvsrotselaar/pkg/distributed"
	"github.com/TiebeBeniers/vvsrotselaar/pkg/jwt"
	"github.com/TiebeBeniers/vvsrotselaar/pkg/logger"
)

// EventService appends point-in-time events (goals, cards, substitutions)
// to a live match's log and keeps the score in step.
type EventService struct {
	matchRepo   *repository.MatchRepository
	eventRepo   *repository.EventRepository
	coordinator *distributed.LiveCoordinator
	clock       clock.Clock
}

func NewEventService(
	matchRepo *repository.MatchRepository,
	eventRepo *repository.EventRepository,
	coordinator *distributed.LiveCoordinator,
	clk clock.Clock,
) *EventService {
	return &EventService{
		matchRepo:   matchRepo,
		eventRepo:   eventRepo,
		coordinator: coordinator,
		clock:       clk,
	}
}

// LogActionRequest is a controller's report of a moment of play.
type LogActionRequest struct {
	Type      models.EventType `json:"type" binding:"required"`
	Ploeg     models.TeamSide  `json:"ploeg" binding:"required"`
	Speler    string           `json:"speler"`
	Assist    string           `json:"assist"`
	SpelerUit string           `json:"spelerUit"`
	SpelerIn  string           `json:"spelerIn"`
}

// scoringSide returns which score column an event increments, or ""
// when it does not change the score. An own goal credits the opponent.
func scoringSide(eventType models.EventType, ploeg models.TeamSide) models.TeamSide {
	switch eventType {
	case models.EventGoal, models.EventPenalty:
		return ploeg
	case models.EventOwnGoal:
		if ploeg == models.SideHome {
			return models.SideAway
		}
		return models.SideHome
	}
	return ""
}

// promoteYellow upgrades a yellow card to a second yellow when the player
// already holds one in this match's log. The tally is recounted from the
// log every time, never stored.
func promoteYellow(eventType models.EventType, priorYellows int) models.EventType {
	if eventType == models.EventYellow && priorYellows >= 1 {
		return models.EventSecondYellow
	}
	return eventType
}

// LogAction records an event on a match that is being tracked live. The
// minute is stamped server-side from the clock engine; clients never
// send a minute.
func (s *EventService) LogAction(ctx context.Context, matchID string, claims *jwt.Claims, req *LogActionRequest) (*models.Event, error) {
	if req.Type.IsStructural() {
		return nil, fmt.Errorf("%w: structural events come from transitions", ErrInvalidInput)
	}
	if req.Ploeg != models.SideHome && req.Ploeg != models.SideAway {
		return nil, fmt.Errorf("%w: ploeg must be home or away", ErrInvalidInput)
	}
	if req.Type == models.EventSubstitution && (req.SpelerUit == "" || req.SpelerIn == "") {
		return nil, fmt.Errorf("%w: substitution needs spelerUit and spelerIn", ErrInvalidInput)
	}

	m, err := s.matchRepo.FindByID(matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	if m == nil {
		return nil, ErrMatchNotFound
	}
	if !m.IsController(claims.UserID, claims.Categorie) {
		return nil, ErrUnauthorized
	}
	if !m.InPlay() {
		return nil, fmt.Errorf("%w: match is not being tracked live", ErrInvalidInput)
	}

	eventType := req.Type
	if eventType == models.EventYellow && req.Speler != "" {
		yellows, err := s.eventRepo.CountYellows(matchID, req.Speler)
		if err != nil {
			return nil, fmt.Errorf("failed to count yellows: %w", err)
		}
		eventType = promoteYellow(eventType, yellows)
	}

	now := s.clock.Now()
	e := &models.Event{
		ID:        uuid.New().String(),
		MatchID:   matchID,
		Minuut:    matchclock.EventMinute(m, now),
		Half:      m.Phase,
		Type:      eventType,
		Ploeg:     req.Ploeg,
		Speler:    req.Speler,
		Assist:    req.Assist,
		SpelerUit: req.SpelerUit,
		SpelerIn:  req.SpelerIn,
		Timestamp: now,
	}

	if side := scoringSide(eventType, req.Ploeg); side != "" {
		// Event insert and score bump commit together.
		err = s.eventRepo.AppendWithGoal(e, side)
	} else {
		err = s.eventRepo.Append(e)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to append event: %w", err)
	}

	logger.Info("Event logged",
		"matchId", matchID,
		"type", e.Type,
		"minuut", e.Minuut,
		"by", claims.UserID)

	if s.coordinator != nil {
		if err := s.coordinator.Publish(ctx, &distributed.LiveUpdate{
			Type:    "match-update",
			MatchID: matchID,
		}); err != nil {
			logger.Warn("Failed to publish live update", "matchId", matchID, "error", err)
		}
	}

	return e, nil
}

// Timeline returns a match's event log grouped for display.
func (s *EventService) Timeline(matchID string) ([]*TimelineGroup, error) {
	m, err := s.matchRepo.FindByID(matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	if m == nil {
		return nil, ErrMatchNotFound
	}

	events, err := s.eventRepo.FindByMatchID(matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	return GroupTimeline(events), nil
}
