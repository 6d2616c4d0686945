package stats

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// JarqueBera tests the null hypothesis that xs is drawn from a normal
// distribution, using sample skewness and excess kurtosis. The statistic is
// asymptotically chi-squared with 2 degrees of freedom.
func JarqueBera(xs []float64) (TestResult, error) {
	n := len(xs)
	if n < 8 {
		return TestResult{}, fmt.Errorf("%w: need at least 8 observations, got %d", ErrInsufficientSample, n)
	}

	skew := stat.Skew(xs, nil)
	exKurt := stat.ExKurtosis(xs, nil)

	jb := float64(n) / 6.0 * (skew*skew + exKurt*exKurt/4.0)

	chi2 := distuv.ChiSquared{K: 2}
	return TestResult{
		Name:      "Jarque-Bera",
		Statistic: jb,
		DF:        2,
		PValue:    chi2.Survival(jb),
	}, nil
}
