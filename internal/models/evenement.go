package models

import "time"

// Evenement is a club activity shown on the events page.
type Evenement struct {
	ID             string    `json:"id" db:"id"`
	Titel          string    `json:"titel" db:"titel"`
	Datum          string    `json:"datum" db:"datum"` // YYYY-MM-DD
	Tijd           string    `json:"tijd" db:"tijd"`   // HH:MM
	Locatie        string    `json:"locatie" db:"locatie"`
	Beschrijving   string    `json:"beschrijving,omitempty" db:"beschrijving"`
	AfbeeldingNaam string    `json:"afbeeldingNaam,omitempty" db:"afbeelding_naam"`
	Link           string    `json:"link,omitempty" db:"link"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// Announcement is the single scrolling banner text on the homepage.
type Announcement struct {
	Text      string    `json:"text" db:"text"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// DefaultAnnouncement is shown when nothing has been configured.
const DefaultAnnouncement = "Bier van de maand: Primus"
