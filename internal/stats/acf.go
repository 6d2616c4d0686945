// Package stats provides the autocorrelation and portmanteau diagnostics used
// around the volatility fit. Everything here is a pure function of its input.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// ACFResult holds sample autocorrelations for lags 0..MaxLag together with
// the 95% confidence bound ±1.96/sqrt(n).
type ACFResult struct {
	Lags      []int
	Values    []float64
	ConfBound float64
}

// ACF computes sample autocorrelations of xs for lags 0 through maxLag.
// The lag-0 value is 1 by construction. maxLag is clamped to len(xs)-1.
func ACF(xs []float64, maxLag int) ACFResult {
	n := len(xs)
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return ACFResult{}
	}

	mean := stat.Mean(xs, nil)
	var denom float64
	for _, v := range xs {
		d := v - mean
		denom += d * d
	}

	values := make([]float64, maxLag+1)
	lags := make([]int, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		lags[k] = k
		if denom == 0 {
			continue
		}
		var num float64
		for i := k; i < n; i++ {
			num += (xs[i] - mean) * (xs[i-k] - mean)
		}
		values[k] = num / denom
	}

	return ACFResult{
		Lags:      lags,
		Values:    values,
		ConfBound: 1.96 / math.Sqrt(float64(n)),
	}
}
