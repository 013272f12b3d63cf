package models

import "time"

// Usuario defines a login account based on the 'usuarios' table. Accounts are
// provisioned out-of-band (seed step); there is no registration endpoint.
type Usuario struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Password  string    `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	Disabled  bool      `json:"disabled" db:"disabled"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
