// Package bayesr2 implements the Bayesian R² calculator.
//
// The calculator is the heart of this module - it consumes posterior
// predictive draws and produces one R² value per draw, defined as the
// ratio of fitted-mean variance to fitted-mean variance plus residual
// variance.
//
// Per draw s, independently:
//  1. varMu = sample variance (N−1 denominator) of draw s's fitted values
//  2. varRes = the residual-variance draw for s (gaussian), or the mean
//     of p·(1−p) over draw s's predicted probabilities (binomial)
//  3. R²_s = varMu / (varMu + varRes)
//
// The computation is a single-pass, stateless transform: no shared
// mutable state, no goroutines, no I/O. Each draw's R² is independent of
// all others, but draw counts are small enough that a synchronous loop
// completes in well under a second; the loop is deliberately
// single-threaded for determinism.
//
// Input is validated eagerly. On any contract violation the calculator
// returns a draws.InvalidInputError and no results - callers never see a
// partial output sequence.
package bayesr2
