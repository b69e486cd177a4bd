// Package draws provides the posterior-draw data model for bayesr2.
//
// This package contains type definitions and input validation only. All
// other internal packages import draws; draws imports nothing internal.
// This keeps it the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Draw matrices are row-major: one row per posterior draw, one column
//     per observation. Row order is the sampler's draw order and is never
//     reordered.
//   - Residual draws carry their scale (sd or variance) explicitly so a
//     standard-deviation draw is squared exactly once.
//   - Validation is eager: a Draws value either validates completely or
//     reports a structured InvalidInputError; downstream code never sees
//     partially-checked input.
package draws
