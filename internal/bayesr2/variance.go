package bayesr2

// bernoulliResidualVariance returns the modeled residual variance implied
// by a row of predicted probabilities: the mean of p·(1−p) over the
// observations. This is the residual term of Tjur's
// proportion-of-variance-explained decomposition for binary outcomes.
//
// Callers guarantee len(p) >= 2 and every value in [0,1].
func bernoulliResidualVariance(p []float64) float64 {
	var sum float64
	for _, v := range p {
		sum += v * (1 - v)
	}
	return sum / float64(len(p))
}
