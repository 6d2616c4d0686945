package timeseries

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(i int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)
}

func seriesFromPrices(t *testing.T, prices []float64) PriceSeries {
	t.Helper()
	obs := make([]Observation, len(prices))
	for i, p := range prices {
		obs[i] = Observation{Date: day(i), Price: p}
	}
	ps, err := NewPriceSeries(obs)
	require.NoError(t, err)
	return ps
}

func TestLogReturns_KnownValues(t *testing.T) {
	ps := seriesFromPrices(t, []float64{100, 101, 99, 102})

	rs, err := LogReturns(ps)
	require.NoError(t, err)

	require.Equal(t, ps.Len()-1, rs.Len())

	expected := []float64{
		100 * math.Log(101.0/100.0),
		100 * math.Log(99.0/101.0),
		100 * math.Log(102.0/99.0),
	}
	for i, want := range expected {
		assert.InDelta(t, want, rs.Values[i], 1e-12)
	}

	// End-to-end sanity against hand-computed magnitudes
	assert.InDelta(t, 0.995, rs.Values[0], 0.001)
	assert.InDelta(t, -2.000, rs.Values[1], 0.001)
	assert.InDelta(t, 2.985, rs.Values[2], 0.001)
}

func TestLogReturns_ExactIdentity(t *testing.T) {
	prices := []float64{120.5, 121.3, 119.8, 118.2, 122.9, 125.0}
	ps := seriesFromPrices(t, prices)

	rs, err := LogReturns(ps)
	require.NoError(t, err)
	require.Equal(t, len(prices)-1, rs.Len())

	for i := 0; i < rs.Len(); i++ {
		want := 100 * math.Log(prices[i+1]/prices[i])
		assert.InDelta(t, want, rs.Values[i], 1e-12)
		assert.Equal(t, day(i+1), rs.Dates[i])
	}
}

func TestLogReturns_NonPositivePrice(t *testing.T) {
	ps := seriesFromPrices(t, []float64{100, -3, 102})

	_, err := LogReturns(ps)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLogReturns_TooShort(t *testing.T) {
	ps := seriesFromPrices(t, []float64{100})

	_, err := LogReturns(ps)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewPriceSeries_RejectsOutOfOrderDates(t *testing.T) {
	obs := []Observation{
		{Date: day(1), Price: 100},
		{Date: day(0), Price: 101},
	}
	_, err := NewPriceSeries(obs)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewPriceSeries_RejectsDuplicateDates(t *testing.T) {
	obs := []Observation{
		{Date: day(0), Price: 100},
		{Date: day(0), Price: 101},
	}
	_, err := NewPriceSeries(obs)
	require.Error(t, err)
}

func TestSquared(t *testing.T) {
	rs := ReturnSeries{Values: []float64{1.5, -2.0, 0.0}}
	assert.Equal(t, []float64{2.25, 4.0, 0.0}, rs.Squared())
}

func TestSummarize(t *testing.T) {
	rs := ReturnSeries{Values: []float64{-2, -1, 0, 1, 2}}
	s := Summarize(rs)

	assert.Equal(t, 5, s.N)
	assert.InDelta(t, 0.0, s.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(2.5), s.StdDev, 1e-12)
	assert.InDelta(t, 0.0, s.Skewness, 1e-12)
	assert.Equal(t, -2.0, s.Min)
	assert.Equal(t, 2.0, s.Max)
}
