// Package directory implements the account directory.
//
// The service layer owns all account business rules: email uniqueness, the
// first-account-is-admin bootstrap, credential verification, and the
// self-delete guard. It is the only code that may read or write password
// hashes; every account that leaves this package is a redacted
// domain.PublicAccount.
//
// Persistence goes through the store contract; the session manager is
// updated as a side effect of Register and Authenticate.
package directory
