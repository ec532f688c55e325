// Package ledger holds the ordered delivery log for one innings.
//
// The ledger is the single source of truth for scoring. Every aggregate
// (runs, wickets, legal balls, positions) is derived from it on read; the
// ledger itself stores nothing but the deliveries in bowling order.
//
// POSITIONS:
//
// A delivery's over and ball-in-over are stamped at append time from the
// count of prior legal deliveries:
//
//	over       = legal / 6
//	ballInOver = legal % 6
//
// Amend and Delete do not restamp other deliveries. Readers that need the
// positions of the log as it stands now use Positions, which re-derives
// them from the current order.
//
// LOCKING:
//
// Once Lock is called every mutation returns an error with code LOCKED and
// leaves the log untouched. Reads keep working.
package ledger
