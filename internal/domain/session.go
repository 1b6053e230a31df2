package domain

import "time"

// Session is the persisted record of who is currently logged in. It holds a
// weak reference to an account by id, never the account itself: resolving
// the reference against the accounts collection is the session manager's
// job, and a dangling reference simply means nobody is logged in.
type Session struct {
	AccountID     string    `json:"account_id"`
	EstablishedAt time.Time `json:"established_at"`
}
