// Package manifest loads and validates analysis manifests.
//
// A manifest is a CUE file (or directory of CUE files) declaring the
// analyses to run: the outcome family, the draws CSV file, and for
// gaussian outcomes the residual column and its scale.
//
//	analysis: kidscore: {
//		family: "gaussian"
//		draws:  "kidscore_draws.csv"
//		residual: {column: "sigma", scale: "sd"}
//	}
//
// Loading resolves the CUE value and decodes each analysis; Validate
// then cross-checks the declarations (residual rules per family, trials,
// draws file existence) and collects every problem before reporting.
package manifest
