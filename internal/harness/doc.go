// Package harness provides a conformance testing framework for the R²
// calculator.
//
// Scenarios are YAML files declaring inline posterior draws, the
// expected per-draw R² values (or the expected error code), and optional
// summary assertions. The harness runs the real calculator against the
// declared input - nothing is mocked - and evaluates every assertion,
// reporting all failures rather than stopping at the first.
//
// Golden-file snapshots complement scenario expectations: RunWithGolden
// serializes the computed result with fixed-precision formatting and
// compares it byte-for-byte against testdata/<name>.golden via goldie.
// Fixed precision keeps snapshots stable across platforms whose float
// formatting agrees to the printed digits.
package harness
