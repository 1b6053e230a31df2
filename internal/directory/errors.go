package directory

import "errors"

// Sentinel errors for the directory service layer.
var (
	ErrNotFound = errors.New("account not found")

	// ErrDuplicateEmail means the email is already registered. The compare
	// is case-sensitive, matching how emails are stored.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, so a failed login never reveals whether the account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSelfDeleteForbidden guards the admin delete path: the currently
	// authenticated account cannot delete itself.
	ErrSelfDeleteForbidden = errors.New("cannot delete your own account")

	ErrInvalidRole   = errors.New("invalid role")
	ErrNegativeDelta = errors.New("usage deltas must be non-negative")
)
