package repository

import (
	"fmt"

	"github.com/TiebeBeniers/vvsrotselaar/internal/models"
	"github.com/TiebeBeniers/vvsrotselaar/pkg/database"
)

type EventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `
	id, match_id, minuut, half, type, ploeg, speler, assist,
	speler_uit, speler_in, timestamp
`

// Append writes one event. Events are insert-only; there is no update.
func (r *EventRepository) Append(e *models.Event) error {
	query := `
		INSERT INTO events (id, match_id, minuut, half, type, ploeg, speler, assist, speler_uit, speler_in)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(query,
		e.ID, e.MatchID, e.Minuut, e.Half, e.Type, e.Ploeg,
		e.Speler, e.Assist, e.SpelerUit, e.SpelerIn,
	)
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

// AppendWithGoal writes the event and bumps the scoring side's tally in
// one transaction, so no reader can observe the goal without the score.
func (r *EventRepository) AppendWithGoal(e *models.Event, scoringSide models.TeamSide) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insert := `
		INSERT INTO events (id, match_id, minuut, half, type, ploeg, speler, assist, speler_uit, speler_in)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	if _, err := tx.Exec(insert,
		e.ID, e.MatchID, e.Minuut, e.Half, e.Type, e.Ploeg,
		e.Speler, e.Assist, e.SpelerUit, e.SpelerIn,
	); err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}

	column := "score_thuis"
	if scoringSide == models.SideAway {
		column = "score_uit"
	}
	update := fmt.Sprintf(`UPDATE matches SET %s = %s + 1 WHERE id = $1`, column, column)
	if _, err := tx.Exec(update, e.MatchID); err != nil {
		return fmt.Errorf("failed to update score: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit event: %w", err)
	}
	return nil
}

// FindByMatchID returns a match's full event log, oldest first.
func (r *EventRepository) FindByMatchID(matchID string) ([]*models.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE match_id = $1
		ORDER BY timestamp ASC
	`

	rows, err := r.db.Query(query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		e := &models.Event{}
		err := rows.Scan(
			&e.ID, &e.MatchID, &e.Minuut, &e.Half, &e.Type, &e.Ploeg,
			&e.Speler, &e.Assist, &e.SpelerUit, &e.SpelerIn, &e.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// CountYellows returns how many plain yellow cards this player name has
// in the match's log. Used for the second-yellow promotion; the tally is
// never stored, always recounted.
func (r *EventRepository) CountYellows(matchID, speler string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM events
		WHERE match_id = $1 AND type = $2 AND speler = $3
	`

	var count int
	if err := r.db.QueryRow(query, matchID, models.EventYellow, speler).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count yellow cards: %w", err)
	}
	return count, nil
}
