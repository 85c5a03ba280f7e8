package models

import "time"

// Payment methods the kiosk registers. Registration only: the actual
// payment happens at the terminal / in the Payconiq app / in the cash box.
const (
	BetaalmethodeKaart    = "kaart"
	BetaalmethodePayconiq = "payconiq"
	BetaalmethodeCash     = "cash"
)

type OrderItem struct {
	Product   string  `json:"product"`
	Aantal    int     `json:"aantal"`
	Prijs     float64 `json:"prijs"`
	Subtotaal float64 `json:"subtotaal"`
}

// Order is a registered kiosk sale.
type Order struct {
	ID            string      `json:"id" db:"id"`
	UserID        string      `json:"userId" db:"user_id"`
	Naam          string      `json:"naam" db:"naam"`
	Items         []OrderItem `json:"items" db:"items"`
	Totaal        float64     `json:"totaal" db:"totaal"`
	Betaalmethode string      `json:"betaalmethode" db:"betaalmethode"`
	CreatedAt     time.Time   `json:"createdAt" db:"created_at"`
}
