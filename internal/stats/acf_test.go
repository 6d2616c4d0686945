package stats

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestACF_LagZeroIsOne(t *testing.T) {
	xs := []float64{1.2, -0.4, 0.8, 2.1, -1.3, 0.2, 0.9}
	res := ACF(xs, 3)

	require.Len(t, res.Values, 4)
	assert.InDelta(t, 1.0, res.Values[0], 1e-12)
	assert.Equal(t, []int{0, 1, 2, 3}, res.Lags)
}

func TestACF_AlternatingSeries(t *testing.T) {
	// Perfect alternation has strongly negative lag-1 autocorrelation
	xs := make([]float64, 100)
	for i := range xs {
		if i%2 == 0 {
			xs[i] = 1
		} else {
			xs[i] = -1
		}
	}
	res := ACF(xs, 2)

	assert.Less(t, res.Values[1], -0.9)
	assert.Greater(t, res.Values[2], 0.9)
}

func TestACF_ConfidenceBound(t *testing.T) {
	xs := make([]float64, 400)
	for i := range xs {
		xs[i] = float64(i % 7)
	}
	res := ACF(xs, 5)
	assert.InDelta(t, 1.96/math.Sqrt(400), res.ConfBound, 1e-12)
}

func TestACF_ClampsLag(t *testing.T) {
	xs := []float64{1, 2, 3}
	res := ACF(xs, 10)
	assert.Len(t, res.Values, 3)
}

func TestACF_ConstantSeries(t *testing.T) {
	xs := []float64{5, 5, 5, 5, 5}
	res := ACF(xs, 2)
	// Degenerate variance: autocorrelations beyond lag 0 are reported as zero
	assert.Equal(t, 0.0, res.Values[1])
}

func TestLjungBox_IIDNoiseSanity(t *testing.T) {
	// Under the null, p-values should not be systematically below 0.05.
	const trials = 20
	above := 0
	for seed := int64(0); seed < trials; seed++ {
		rng := rand.New(rand.NewSource(seed))
		xs := make([]float64, 500)
		for i := range xs {
			xs[i] = rng.NormFloat64()
		}
		res, err := LjungBox(xs, 12)
		require.NoError(t, err)
		require.Equal(t, 12, res.DF)
		if res.PValue > 0.05 {
			above++
		}
	}
	assert.GreaterOrEqual(t, above, 15, "iid noise should rarely reject the null")
}

func TestLjungBox_DetectsAutocorrelation(t *testing.T) {
	// Strong AR(1) process should reject the null decisively
	rng := rand.New(rand.NewSource(7))
	xs := make([]float64, 500)
	for i := 1; i < len(xs); i++ {
		xs[i] = 0.8*xs[i-1] + rng.NormFloat64()
	}

	res, err := LjungBox(xs, 12)
	require.NoError(t, err)
	assert.Less(t, res.PValue, 1e-6)
	assert.Greater(t, res.Statistic, 0.0)
}

func TestLjungBox_InsufficientSample(t *testing.T) {
	_, err := LjungBox([]float64{1, 2, 3}, 12)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientSample)
}

func TestLjungBox_BadLag(t *testing.T) {
	_, err := LjungBox(make([]float64, 100), 0)
	require.Error(t, err)
}

func TestJarqueBera_NormalSample(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	xs := make([]float64, 2000)
	for i := range xs {
		xs[i] = rng.NormFloat64()
	}

	res, err := JarqueBera(xs)
	require.NoError(t, err)
	assert.Greater(t, res.PValue, 0.01)
}

func TestJarqueBera_SkewedSample(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	xs := make([]float64, 2000)
	for i := range xs {
		xs[i] = rng.ExpFloat64()
	}

	res, err := JarqueBera(xs)
	require.NoError(t, err)
	assert.Less(t, res.PValue, 1e-6)
}

func TestJarqueBera_TooFew(t *testing.T) {
	_, err := JarqueBera([]float64{1, 2, 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientSample)
}
