package domain

import "time"

// User is the minimal account record the point core needs.
// There is deliberately no points column; the balance is always derived from
// the ledger.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
