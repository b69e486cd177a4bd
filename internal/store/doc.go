// Package store provides SQLite-backed storage for computed R² results.
//
// The store records one row per run (an analysis computed against a
// specific draws input) plus the full per-draw R² sequence:
//   - Runs: analysis name, outcome family, input fingerprint, dimensions
//   - R² draws: the computed values, keyed by (run, draw index)
//
// The input fingerprint gives provenance: a stored result can always be
// traced back to the exact draws that produced it, and recomputing the
// same input yields a run with the same fingerprint.
//
// Draw order is preserved via an explicit draw_idx column and every read
// orders by it; listings order by creation time with the run id as a
// deterministic tiebreak.
package store
