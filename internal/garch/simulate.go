package garch

import (
	"fmt"
	"math"
	"math/rand"
)

// Simulate draws a GARCH(1,1) return path of length n with Gaussian
// innovations. The recursion is primed at the unconditional variance
// omega/(1-alpha-beta) and a short warm-up segment is discarded so the path
// starts in the stationary regime.
func Simulate(n int, omega, alpha, beta float64, seed int64) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: path length must be positive", ErrInvalidInput)
	}
	if omega <= 0 || alpha < 0 || beta < 0 || alpha+beta >= 1 {
		return nil, fmt.Errorf("%w: parameters outside the stationary region", ErrInvalidInput)
	}

	const warmup = 200
	rng := rand.New(rand.NewSource(seed))

	v := omega / (1 - alpha - beta)
	out := make([]float64, 0, n)
	var prev float64
	for i := 0; i < warmup+n; i++ {
		if i > 0 {
			v = omega + alpha*prev*prev + beta*v
		}
		r := math.Sqrt(v) * rng.NormFloat64()
		prev = r
		if i >= warmup {
			out = append(out, r)
		}
	}
	return out, nil
}
