package testutil

import "github.com/statpost/bayesr2/internal/draws"

// BinomialDraws builds a binomial fixture with numDraws rows of numObs
// predicted probabilities taken from seq.
//
// Probabilities are mapped into (0.05, 0.95) so no fixture row sits on
// the domain boundary or collapses to zero variance.
func BinomialDraws(seq *Sequence, numDraws, numObs int) *draws.Draws {
	fitted := make([][]float64, numDraws)
	for i := range fitted {
		row := make([]float64, numObs)
		for j := range row {
			row[j] = 0.05 + 0.9*seq.Next()
		}
		fitted[i] = row
	}
	return &draws.Draws{
		Family: draws.FamilyBinomial,
		Fitted: fitted,
	}
}

// GaussianDraws builds a gaussian fixture with numDraws rows of numObs
// fitted means and one residual sd per draw, all taken from seq.
//
// Residual sds are offset away from zero so every draw is strictly
// positive on the residual scale.
func GaussianDraws(seq *Sequence, numDraws, numObs int) *draws.Draws {
	fitted := make([][]float64, numDraws)
	residual := make([]float64, numDraws)
	for i := range fitted {
		row := make([]float64, numObs)
		for j := range row {
			row[j] = 10 * seq.Next()
		}
		fitted[i] = row
		residual[i] = 0.5 + seq.Next()
	}
	return &draws.Draws{
		Family:        draws.FamilyGaussian,
		Fitted:        fitted,
		Residual:      residual,
		ResidualScale: draws.ScaleSD,
	}
}
