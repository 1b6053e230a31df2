package domain

import "time"

// Role enumerates the access levels an account can hold.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is a recognized role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Account represents a user account as stored at rest, password hash
// included. Only the directory service may touch PasswordHash; everything
// that leaves the directory is a PublicAccount.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`

	// Informational monotonic counters, maintained by the directory.
	EmailsSent     int `json:"emails_sent"`
	CampaignsCount int `json:"campaigns_count"`
}

// PublicAccount is the redacted projection of an Account: everything except
// the password hash. The conversion happens exactly once, at the directory
// boundary.
type PublicAccount struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	EmailsSent     int       `json:"emails_sent"`
	CampaignsCount int       `json:"campaigns_count"`
}

// Public returns the redacted projection of the account.
func (a Account) Public() PublicAccount {
	return PublicAccount{
		ID:             a.ID,
		Email:          a.Email,
		Name:           a.Name,
		Role:           a.Role,
		CreatedAt:      a.CreatedAt,
		EmailsSent:     a.EmailsSent,
		CampaignsCount: a.CampaignsCount,
	}
}

// IsAdmin reports whether the account holds the admin role.
func (a PublicAccount) IsAdmin() bool { return a.Role == RoleAdmin }
