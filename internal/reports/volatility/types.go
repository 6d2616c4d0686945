package volatility

import (
	"time"

	"github.com/Yuta-Kondo/USDJPY-Risk-Analysis/internal/garch"
	"github.com/Yuta-Kondo/USDJPY-Risk-Analysis/internal/stats"
	"github.com/Yuta-Kondo/USDJPY-Risk-Analysis/internal/timeseries"
)

// Config controls a single analysis run.
type Config struct {
	LjungBoxLag     int
	ACFLags         int
	MinObservations int
}

// DefaultConfig mirrors the standard exploratory setup: lag-12 portmanteau
// tests and a 20-lag correlogram.
func DefaultConfig() Config {
	return Config{
		LjungBoxLag:     12,
		ACFLags:         20,
		MinObservations: garch.MinObservations,
	}
}

// ReportData is everything the generator needs to render the report bundle.
type ReportData struct {
	RunID       string
	GeneratedAt time.Time
	Source      string

	Returns timeseries.ReturnSeries
	Summary timeseries.Summary

	// PreFit tests squared returns for ARCH effects; PostFit tests squared
	// standardized residuals for remaining structure.
	PreFit    stats.TestResult
	PostFit   stats.TestResult
	Normality stats.TestResult

	Fit *garch.Fit

	// ResidualACF is the correlogram of squared standardized residuals,
	// burn-in already dropped.
	ResidualACF stats.ACFResult
}

// GeneratorConfig controls artifact rendering.
type GeneratorConfig struct {
	OutputDir string
	Charts    bool
}
