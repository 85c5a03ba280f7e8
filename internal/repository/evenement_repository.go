package repository

import (
	"database/sql"
	"fmt"

	"github.com/TiebeBeniers/vvsrotselaar/internal/models"
	"github.com/TiebeBeniers/vvsrotselaar/pkg/database"
)

type EvenementRepository struct {
	db *database.DB
}

func NewEvenementRepository(db *database.DB) *EvenementRepository {
	return &EvenementRepository{db: db}
}

const evenementColumns = `id, titel, datum, tijd, locatie, beschrijving, afbeelding_naam, link, created_at`

func scanEvenement(row interface{ Scan(...interface{}) error }) (*models.Evenement, error) {
	e := &models.Evenement{}
	err := row.Scan(
		&e.ID, &e.Titel, &e.Datum, &e.Tijd, &e.Locatie,
		&e.Beschrijving, &e.AfbeeldingNaam, &e.Link, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Create inserts a club event.
func (r *EvenementRepository) Create(e *models.Evenement) (*models.Evenement, error) {
	query := `
		INSERT INTO evenementen (id, titel, datum, tijd, locatie, beschrijving, afbeelding_naam, link)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + evenementColumns

	created, err := scanEvenement(r.db.QueryRow(query,
		e.ID, e.Titel, e.Datum, e.Tijd, e.Locatie, e.Beschrijving, e.AfbeeldingNaam, e.Link,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create evenement: %w", err)
	}
	return created, nil
}

// FindByID returns the event, or nil.
func (r *EvenementRepository) FindByID(id string) (*models.Evenement, error) {
	query := `SELECT ` + evenementColumns + ` FROM evenementen WHERE id = $1`

	e, err := scanEvenement(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find evenement: %w", err)
	}
	return e, nil
}

// FindAll lists events, soonest first.
func (r *EvenementRepository) FindAll() ([]*models.Evenement, error) {
	query := `SELECT ` + evenementColumns + ` FROM evenementen ORDER BY datum ASC, tijd ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query evenementen: %w", err)
	}
	defer rows.Close()

	var out []*models.Evenement
	for rows.Next() {
		e, err := scanEvenement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan evenement: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Update rewrites a club event.
func (r *EvenementRepository) Update(e *models.Evenement) error {
	query := `
		UPDATE evenementen
		SET titel = $1, datum = $2, tijd = $3, locatie = $4,
		    beschrijving = $5, afbeelding_naam = $6, link = $7
		WHERE id = $8
	`

	_, err := r.db.Exec(query,
		e.Titel, e.Datum, e.Tijd, e.Locatie, e.Beschrijving, e.AfbeeldingNaam, e.Link, e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update evenement: %w", err)
	}
	return nil
}

// Delete removes a club event.
func (r *EvenementRepository) Delete(id string) error {
	query := `DELETE FROM evenementen WHERE id = $1`

	_, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete evenement: %w", err)
	}
	return nil
}

// GetAnnouncement returns the banner text, or the default when unset.
func (r *EvenementRepository) GetAnnouncement() (string, error) {
	query := `SELECT text FROM announcement WHERE id = 1`

	var text string
	err := r.db.QueryRow(query).Scan(&text)
	if err == sql.ErrNoRows {
		return models.DefaultAnnouncement, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load announcement: %w", err)
	}
	if text == "" {
		return models.DefaultAnnouncement, nil
	}
	return text, nil
}

// SetAnnouncement stores the banner text (single well-known row).
func (r *EvenementRepository) SetAnnouncement(text string) error {
	query := `
		INSERT INTO announcement (id, text, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET text = $1, updated_at = NOW()
	`

	_, err := r.db.Exec(query, text)
	if err != nil {
		return fmt.Errorf("failed to set announcement: %w", err)
	}
	return nil
}
