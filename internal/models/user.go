package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Member categories. Bestuurslid grants control over every match; the
// division categories tie a member to one squad.
const (
	CategorieBestuurslid = "bestuurslid"
	CategorieVeteranen   = "veteranen"
	CategorieZaterdag    = "zaterdag"
	CategorieZondag      = "zondag"
)

const (
	RolAdmin = "admin"
	RolLid   = "lid"
)

type User struct {
	ID           string    `json:"id" db:"id"`
	Naam         string    `json:"naam" db:"naam"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Categorie    string    `json:"categorie" db:"categorie"`
	Rol          string    `json:"rol" db:"rol"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

type UpdateUserRequest struct {
	Naam      string `json:"naam"`
	Categorie string `json:"categorie"`
	Rol       string `json:"rol"`
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// IsBestuurslid reports board membership.
func (u *User) IsBestuurslid() bool {
	return u.Categorie == CategorieBestuurslid
}

// IsAdmin reports site administration rights.
func (u *User) IsAdmin() bool {
	return u.Rol == RolAdmin
}
