package timeseries

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// ErrInvalidInput indicates a series that cannot be transformed (non-positive
// price, too few observations).
var ErrInvalidInput = errors.New("invalid input series")

// Observation is a single dated price level.
type Observation struct {
	Date  time.Time
	Price float64
}

// PriceSeries is a chronologically ordered price level series. It is built
// once by the loader and never mutated afterward.
type PriceSeries struct {
	obs []Observation
}

// NewPriceSeries validates chronological order and duplicate dates before
// wrapping the observations.
func NewPriceSeries(obs []Observation) (PriceSeries, error) {
	for i := 1; i < len(obs); i++ {
		if !obs[i].Date.After(obs[i-1].Date) {
			return PriceSeries{}, fmt.Errorf("%w: observation %d (%s) is not after %s",
				ErrInvalidInput, i, obs[i].Date.Format("2006-01-02"), obs[i-1].Date.Format("2006-01-02"))
		}
	}
	copied := make([]Observation, len(obs))
	copy(copied, obs)
	return PriceSeries{obs: copied}, nil
}

// Len returns the number of observations.
func (ps PriceSeries) Len() int { return len(ps.obs) }

// At returns the observation at index i.
func (ps PriceSeries) At(i int) Observation { return ps.obs[i] }

// Prices returns a copy of the price levels.
func (ps PriceSeries) Prices() []float64 {
	out := make([]float64, len(ps.obs))
	for i, o := range ps.obs {
		out[i] = o.Price
	}
	return out
}

// Dates returns a copy of the observation dates.
func (ps PriceSeries) Dates() []time.Time {
	out := make([]time.Time, len(ps.obs))
	for i, o := range ps.obs {
		out[i] = o.Date
	}
	return out
}

// ReturnSeries holds percentage log returns derived from a PriceSeries.
// Values[i] corresponds to the price move into Dates[i]; the series is one
// element shorter than the prices it came from.
type ReturnSeries struct {
	Dates  []time.Time
	Values []float64
}

// Len returns the number of returns.
func (rs ReturnSeries) Len() int { return len(rs.Values) }

// Squared returns the element-wise squared returns.
func (rs ReturnSeries) Squared() []float64 {
	out := make([]float64, len(rs.Values))
	for i, v := range rs.Values {
		out[i] = v * v
	}
	return out
}

// LogReturns computes 100 * ln(p[t]/p[t-1]) for each adjacent pair.
func LogReturns(prices PriceSeries) (ReturnSeries, error) {
	if prices.Len() < 2 {
		return ReturnSeries{}, fmt.Errorf("%w: need at least 2 prices, got %d", ErrInvalidInput, prices.Len())
	}
	dates := make([]time.Time, 0, prices.Len()-1)
	values := make([]float64, 0, prices.Len()-1)
	for i := 0; i < prices.Len(); i++ {
		o := prices.At(i)
		if o.Price <= 0 {
			return ReturnSeries{}, fmt.Errorf("%w: non-positive price %.6f at %s",
				ErrInvalidInput, o.Price, o.Date.Format("2006-01-02"))
		}
		if i == 0 {
			continue
		}
		prev := prices.At(i - 1)
		dates = append(dates, o.Date)
		values = append(values, 100*(math.Log(o.Price)-math.Log(prev.Price)))
	}
	return ReturnSeries{Dates: dates, Values: values}, nil
}

// Summary holds descriptive statistics for a return series.
type Summary struct {
	N        int
	Mean     float64
	StdDev   float64
	Skewness float64
	Kurtosis float64 // excess kurtosis
	Min      float64
	Max      float64
}

// Summarize computes descriptive statistics over the returns.
func Summarize(rs ReturnSeries) Summary {
	if rs.Len() == 0 {
		return Summary{}
	}
	s := Summary{
		N:        rs.Len(),
		Mean:     stat.Mean(rs.Values, nil),
		StdDev:   stat.StdDev(rs.Values, nil),
		Skewness: stat.Skew(rs.Values, nil),
		Kurtosis: stat.ExKurtosis(rs.Values, nil),
		Min:      rs.Values[0],
		Max:      rs.Values[0],
	}
	for _, v := range rs.Values {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	return s
}
