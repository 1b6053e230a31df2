// Package ledger implements campaign lifecycle management.
//
// The service owns campaign records end to end: creation in draft, the
// status state machine, delivery-counter accounting, and deletion. Derived
// metrics (progress, open rate, click rate) are pure functions on
// domain.Campaign and are never persisted.
//
// The state machine:
//
//	draft -> scheduled -> active <-> paused
//	                      active -> completed
//
// completed is terminal; nothing leaves it. Nothing in this repo drives
// active -> completed on its own, the edge is only taken when a caller
// asks for it.
package ledger
