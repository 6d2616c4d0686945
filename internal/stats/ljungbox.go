package stats

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrInsufficientSample indicates too few observations for the requested lag.
var ErrInsufficientSample = errors.New("insufficient sample for test")

// TestResult is the outcome of a hypothesis test.
type TestResult struct {
	Name      string
	Statistic float64
	DF        int
	PValue    float64
}

// LjungBox computes the portmanteau statistic
//
//	Q = n(n+2) * sum_{k=1}^{lag} rho_k^2 / (n-k)
//
// and its p-value against a chi-squared distribution with lag degrees of
// freedom. The null hypothesis is no autocorrelation up to the given lag.
func LjungBox(xs []float64, lag int) (TestResult, error) {
	n := len(xs)
	if lag < 1 {
		return TestResult{}, fmt.Errorf("%w: lag must be >= 1, got %d", ErrInsufficientSample, lag)
	}
	if n <= lag+1 {
		return TestResult{}, fmt.Errorf("%w: need more than %d observations, got %d", ErrInsufficientSample, lag+1, n)
	}

	acf := ACF(xs, lag)

	var q float64
	for k := 1; k <= lag; k++ {
		rho := acf.Values[k]
		q += rho * rho / float64(n-k)
	}
	q *= float64(n) * float64(n+2)

	chi2 := distuv.ChiSquared{K: float64(lag)}
	return TestResult{
		Name:      "Ljung-Box",
		Statistic: q,
		DF:        lag,
		PValue:    chi2.Survival(q),
	}, nil
}
