package repository

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/TiebeBeniers/vvsrotselaar/internal/models"
	"github.com/TiebeBeniers/vvsrotselaar/pkg/database"
)

type MatchRepository struct {
	db *database.DB
}

func NewMatchRepository(db *database.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

const matchColumns = `
	id, datum, uur, locatie, thuisploeg, uitploeg, team, beschrijving,
	aangeduide_personen, status, phase, score_thuis, score_uit,
	half_time_reached, extra_time_started, et_half_time_reached,
	started_at, paused_at, resume_started_at, et_started_at, et_resume_started_at,
	created_at
`

func scanMatch(row interface{ Scan(...interface{}) error }) (*models.Match, error) {
	m := &models.Match{}
	err := row.Scan(
		&m.ID,
		&m.Datum,
		&m.Uur,
		&m.Locatie,
		&m.Thuisploeg,
		&m.Uitploeg,
		&m.Team,
		&m.Beschrijving,
		pq.Array(&m.AangeduidePersonen),
		&m.Status,
		&m.Phase,
		&m.ScoreThuis,
		&m.ScoreUit,
		&m.HalfTimeReached,
		&m.ExtraTimeStarted,
		&m.EtHalfTimeReached,
		&m.StartedAt,
		&m.PausedAt,
		&m.ResumeStartedAt,
		&m.EtStartedAt,
		&m.EtResumeStartedAt,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Create inserts a planned match.
func (r *MatchRepository) Create(m *models.Match) (*models.Match, error) {
	query := `
		INSERT INTO matches (
			id, datum, uur, locatie, thuisploeg, uitploeg, team, beschrijving,
			aangeduide_personen, status, phase, score_thuis, score_uit,
			half_time_reached, extra_time_started, et_half_time_reached,
			started_at, paused_at, resume_started_at, et_started_at, et_resume_started_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		        $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING ` + matchColumns

	row := r.db.QueryRow(query,
		m.ID, m.Datum, m.Uur, m.Locatie, m.Thuisploeg, m.Uitploeg, m.Team, m.Beschrijving,
		pq.Array(m.AangeduidePersonen), m.Status, m.Phase, m.ScoreThuis, m.ScoreUit,
		m.HalfTimeReached, m.ExtraTimeStarted, m.EtHalfTimeReached,
		m.StartedAt, m.PausedAt, m.ResumeStartedAt, m.EtStartedAt, m.EtResumeStartedAt,
	)

	created, err := scanMatch(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return created, nil
}

// FindByID returns the match, or nil when it does not exist.
func (r *MatchRepository) FindByID(id string) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	m, err := scanMatch(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find match: %w", err)
	}
	return m, nil
}

// FindLive returns the match currently being tracked (live or paused), or
// nil when nothing is running. At most one is expected system-wide.
func (r *MatchRepository) FindLive() (*models.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE status IN ('live', 'rust')
		ORDER BY started_at DESC NULLS LAST
		LIMIT 1
	`

	m, err := scanMatch(r.db.QueryRow(query))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find live match: %w", err)
	}
	return m, nil
}

// FindByStatus lists matches with the given status, newest schedule first.
func (r *MatchRepository) FindByStatus(status models.MatchStatus) ([]*models.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE status = $1
		ORDER BY datum DESC, uur DESC
	`
	return r.queryMatches(query, status)
}

// FindPlanned lists planned matches, soonest first.
func (r *MatchRepository) FindPlanned() ([]*models.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE status = 'planned'
		ORDER BY datum ASC, uur ASC
	`
	return r.queryMatches(query)
}

// FindByTeam lists matches, optionally filtered by division and status.
// Empty filters match everything; limit 0 means no limit.
func (r *MatchRepository) FindByTeam(team models.Division, status models.MatchStatus, limit int) ([]*models.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE ($1 = '' OR team = $1) AND ($2 = '' OR status = $2)
		ORDER BY datum DESC, uur DESC
		LIMIT NULLIF($3, 0)
	`
	return r.queryMatches(query, string(team), string(status), limit)
}

// FindAll lists every match, newest schedule first.
func (r *MatchRepository) FindAll() ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches ORDER BY datum DESC, uur DESC`
	return r.queryMatches(query)
}

func (r *MatchRepository) queryMatches(query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []*models.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// Update rewrites the editable scheduling fields of a match.
func (r *MatchRepository) Update(m *models.Match) error {
	query := `
		UPDATE matches
		SET datum = $1, uur = $2, locatie = $3, thuisploeg = $4, uitploeg = $5,
		    team = $6, beschrijving = $7, aangeduide_personen = $8
		WHERE id = $9
	`

	_, err := r.db.Exec(query,
		m.Datum, m.Uur, m.Locatie, m.Thuisploeg, m.Uitploeg,
		m.Team, m.Beschrijving, pq.Array(m.AangeduidePersonen), m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update match: %w", err)
	}
	return nil
}

// UpdateScore sets both score fields directly (manual correction).
func (r *MatchRepository) UpdateScore(id string, scoreThuis, scoreUit int) error {
	query := `UPDATE matches SET score_thuis = $1, score_uit = $2 WHERE id = $3`

	_, err := r.db.Exec(query, scoreThuis, scoreUit, id)
	if err != nil {
		return fmt.Errorf("failed to update score: %w", err)
	}
	return nil
}

// Transition applies a phase/status change conditionally: the row is only
// touched when its status still equals expectedStatus, so a concurrent
// duplicate transition loses and is reported as not-applied.
func (r *MatchRepository) Transition(id string, expectedStatus models.MatchStatus, t *models.MatchTransition) (bool, error) {
	query := `
		UPDATE matches
		SET status = $1,
		    phase = $2,
		    half_time_reached = half_time_reached OR $3,
		    extra_time_started = extra_time_started OR $4,
		    et_half_time_reached = et_half_time_reached OR $5,
		    started_at = COALESCE($6, started_at),
		    resume_started_at = COALESCE($7, resume_started_at),
		    et_started_at = COALESCE($8, et_started_at),
		    et_resume_started_at = COALESCE($9, et_resume_started_at),
		    paused_at = CASE WHEN $10 THEN $11 ELSE paused_at END
		WHERE id = $12 AND status = $13
	`

	res, err := r.db.Exec(query,
		t.Status, t.Phase,
		t.HalfTimeReached, t.ExtraTimeStarted, t.EtHalfTimeReached,
		t.StartedAt, t.ResumeStartedAt, t.EtStartedAt, t.EtResumeStartedAt,
		t.SetPausedAt, t.PausedAt,
		id, expectedStatus,
	)
	if err != nil {
		return false, fmt.Errorf("failed to apply transition: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read transition result: %w", err)
	}
	return n > 0, nil
}

// Delete removes a match and, via ON DELETE CASCADE, its event log.
func (r *MatchRepository) Delete(id string) error {
	query := `DELETE FROM matches WHERE id = $1`

	_, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	return nil
}
