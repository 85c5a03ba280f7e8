package models

// ShiftPerson is one signup on a shift. UID is empty for names an admin
// typed in by hand for people without an account.
type ShiftPerson struct {
	UID         string `json:"uid"`
	Naam        string `json:"naam"`
	Responsible bool   `json:"responsible"`
}

// Shift is a volunteer slot on the festival work list.
type Shift struct {
	ID      string        `json:"id" db:"id"`
	Label   string        `json:"label" db:"label"`
	Date    string        `json:"date" db:"date"` // YYYY-MM-DD
	Time    string        `json:"time" db:"time"` // "08:00 – 14:00"
	Max     int           `json:"max" db:"max"`   // 0 means unlimited
	Persons []ShiftPerson `json:"persons" db:"persons"`
}

// Full reports whether the shift has reached its cap.
func (s *Shift) Full() bool {
	return s.Max > 0 && len(s.Persons) >= s.Max
}

// HasUID reports whether a member with this account id is already
// signed up. Hand-typed names have no uid and never match.
func (s *Shift) HasUID(uid string) bool {
	if uid == "" {
		return false
	}
	for _, p := range s.Persons {
		if p.UID == uid {
			return true
		}
	}
	return false
}
