// Package harness runs scripted scoring scenarios against the innings
// engine.
//
// A scenario is a YAML file holding a setup, a flow of scoring steps and
// expectations. Each run uses deterministic ids and a fixed clock, so the
// step trace is byte-for-byte reproducible and can be compared against a
// golden file.
//
// Flow steps (exactly one action per step):
//
//	- ball: 4                  # runs off the bat
//	  extra: wide|noball       # optional
//	- wicket: Caught           # optional runs via ball:
//	- undo: true
//	- amend: {ball: 2, runs: 3, wide: false}
//	- delete: 3                # 1-based log position
//	- bowler: kane
//	- finalize: true
//	- advise: true             # advisory commentary, never affects state
//
// Any step may carry an expect block; the scenario's top-level expect is
// checked after the last step.
package harness
