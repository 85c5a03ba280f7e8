package service

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/itbasis/go-clock"

	"github.com/TiebeBeniers/vvsrotselaar/internal/matchclock"
	"github.com/TiebeBeniers/vvsrotselaar/internal/models"
	"github.com/TiebeBeniers/vvsrotselaar/internal/repository"
	"github.com/TiebeBeniers/vvsrotselaar/pkg/logger"
)

// Broadcaster pushes a message to every connected viewer.
type Broadcaster interface {
	Broadcast(message []byte)
}

// LiveSnapshot is what every viewer renders. One server-side ticker
// recomputes it from the persisted record; no client keeps its own timer,
// so two viewers opening the page at different moments converge within
// one tick.
type LiveSnapshot struct {
	// Status is live, rust, bezig, or none. "bezig" is the neutral
	// fallback when kickoff has passed but nobody started tracking.
	Status      string              `json:"status"`
	Match       *models.Match       `json:"match,omitempty"`
	DisplayTime string              `json:"displayTime,omitempty"`
	OverlayTime string              `json:"overlayTime,omitempty"`
	Controls    *matchclock.Controls `json:"controls,omitempty"`
}

// LiveService owns the broadcast ticker.
type LiveService struct {
	matchRepo        *repository.MatchRepository
	broadcaster      Broadcaster
	clock            clock.Clock
	tickInterval     time.Duration
	visibilityWindow time.Duration

	mu       sync.Mutex
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewLiveService(
	matchRepo *repository.MatchRepository,
	broadcaster Broadcaster,
	clk clock.Clock,
	tickInterval, visibilityWindow time.Duration,
) *LiveService {
	return &LiveService{
		matchRepo:        matchRepo,
		broadcaster:      broadcaster,
		clock:            clk,
		tickInterval:     tickInterval,
		visibilityWindow: visibilityWindow,
	}
}

// Snapshot computes the current live state. Also served on the REST API
// for the initial page render.
func (s *LiveService) Snapshot() (*LiveSnapshot, error) {
	now := s.clock.Now()

	live, err := s.matchRepo.FindLive()
	if err != nil {
		return nil, err
	}
	if live != nil {
		controls := matchclock.ControlsFor(live)
		return &LiveSnapshot{
			Status:      string(live.Status),
			Match:       live,
			DisplayTime: matchclock.DisplayTime(live, now),
			OverlayTime: matchclock.OverlayTime(live, now),
			Controls:    &controls,
		}, nil
	}

	// Kickoff passed but nobody pressed start: show a neutral marker
	// instead of nothing, and instead of a timer with no anchor.
	planned, err := s.matchRepo.FindPlanned()
	if err != nil {
		return nil, err
	}
	for _, m := range planned {
		kickoff, err := m.Kickoff()
		if err != nil {
			continue
		}
		if now.After(kickoff) && now.Before(kickoff.Add(s.visibilityWindow)) {
			return &LiveSnapshot{
				Status: "bezig",
				Match:  m,
			}, nil
		}
	}

	return &LiveSnapshot{Status: "none"}, nil
}

// Start launches the broadcast ticker.
func (s *LiveService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopChan != nil {
		return
	}
	s.stopChan = make(chan struct{})

	s.wg.Add(1)
	go s.run(s.stopChan)

	logger.Info("Live broadcast ticker started", "interval", s.tickInterval)
}

// Stop halts the ticker and waits for the loop to exit.
func (s *LiveService) Stop() {
	s.mu.Lock()
	if s.stopChan == nil {
		s.mu.Unlock()
		return
	}
	close(s.stopChan)
	s.stopChan = nil
	s.mu.Unlock()

	s.wg.Wait()
	logger.Info("Live broadcast ticker stopped")
}

func (s *LiveService) run(stop chan struct{}) {
	defer s.wg.Done()

	ticker := s.clock.Ticker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.BroadcastSnapshot()
		}
	}
}

// BroadcastSnapshot pushes the current snapshot to every viewer. Besides
// the ticker, this runs immediately when a cross-instance update arrives
// so transitions land within one tick everywhere.
func (s *LiveService) BroadcastSnapshot() {
	snapshot, err := s.Snapshot()
	if err != nil {
		logger.Warn("Failed to compute live snapshot", "error", err)
		return
	}

	msg, err := json.Marshal(map[string]interface{}{
		"type": "live-snapshot",
		"data": snapshot,
	})
	if err != nil {
		logger.Error("Failed to marshal live snapshot", "error", err)
		return
	}

	s.broadcaster.Broadcast(msg)
}
