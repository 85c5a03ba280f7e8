package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/TiebeBeniers/vvsrotselaar/internal/models"
	"github.com/TiebeBeniers/vvsrotselaar/pkg/database"
)

type ShiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

func scanShift(row interface{ Scan(...interface{}) error }) (*models.Shift, error) {
	s := &models.Shift{}
	var persons []byte
	if err := row.Scan(&s.ID, &s.Label, &s.Date, &s.Time, &s.Max, &persons); err != nil {
		return nil, err
	}
	if len(persons) > 0 {
		if err := json.Unmarshal(persons, &s.Persons); err != nil {
			return nil, fmt.Errorf("corrupt persons list on shift %s: %w", s.ID, err)
		}
	}
	return s, nil
}

// Upsert creates or rewrites a shift definition. The signup list is kept
// as stored unless one is provided.
func (r *ShiftRepository) Upsert(s *models.Shift) error {
	persons, err := json.Marshal(s.Persons)
	if err != nil {
		return fmt.Errorf("failed to encode persons: %w", err)
	}

	query := `
		INSERT INTO werchter_shifts (id, label, date, time, max, persons)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET label = $2, date = $3, time = $4, max = $5
	`

	if _, err := r.db.Exec(query, s.ID, s.Label, s.Date, s.Time, s.Max, persons); err != nil {
		return fmt.Errorf("failed to save shift: %w", err)
	}
	return nil
}

// FindByID returns a shift, or nil.
func (r *ShiftRepository) FindByID(id string) (*models.Shift, error) {
	query := `SELECT id, label, date, time, max, persons FROM werchter_shifts WHERE id = $1`

	s, err := scanShift(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find shift: %w", err)
	}
	return s, nil
}

// FindAll lists every shift ordered by date and start time.
func (r *ShiftRepository) FindAll() ([]*models.Shift, error) {
	query := `SELECT id, label, date, time, max, persons FROM werchter_shifts ORDER BY date ASC, time ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []*models.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}

// UpdatePersons replaces a shift's signup list.
func (r *ShiftRepository) UpdatePersons(id string, persons []models.ShiftPerson) error {
	encoded, err := json.Marshal(persons)
	if err != nil {
		return fmt.Errorf("failed to encode persons: %w", err)
	}

	query := `UPDATE werchter_shifts SET persons = $1 WHERE id = $2`
	if _, err := r.db.Exec(query, encoded, id); err != nil {
		return fmt.Errorf("failed to update shift persons: %w", err)
	}
	return nil
}

// Delete removes a shift and its signups.
func (r *ShiftRepository) Delete(id string) error {
	query := `DELETE FROM werchter_shifts WHERE id = $1`

	_, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	return nil
}
