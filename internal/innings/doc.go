// Package innings implements the scoring state machine for one innings of
// a limited-overs match.
//
// The Engine sits on top of a ledger.Ledger and owns nothing else that
// can drift: totals, rates, positions and even the batters at the crease
// are recomputed from the delivery log on every read. Corrections (undo,
// amend, delete) therefore never leave stale counters or a wrongly
// swapped strike behind.
//
// STRIKE ROTATION (per delivery, in log order):
//
//  1. Odd runs off the bat swap the batters, whatever the extra type.
//  2. The sixth legal ball of an over swaps them again.
//  3. A wicket replaces the batter who faced the ball, in whichever end
//     they hold after steps 1 and 2, with the next batter from the lineup.
//
// COMPLETION:
//
// Decided reports the completion predicate; it never freezes anything.
// Only Finalize locks the ledger and produces the Summary.
package innings
