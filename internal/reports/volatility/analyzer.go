// Package volatility runs the USD/JPY volatility analysis pipeline and
// renders its report bundle: a GARCH(1,1) coefficient table, pre- and
// post-fit Ljung-Box diagnostics, CSV artifacts and three charts.
package volatility

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Yuta-Kondo/USDJPY-Risk-Analysis/internal/garch"
	"github.com/Yuta-Kondo/USDJPY-Risk-Analysis/internal/stats"
	"github.com/Yuta-Kondo/USDJPY-Risk-Analysis/internal/timeseries"
)

// Analyzer runs the sequential pipeline: summarize returns, pre-fit
// Ljung-Box on squared returns, GARCH(1,1) fit, post-fit Ljung-Box on
// squared standardized residuals.
type Analyzer struct {
	config Config
}

// NewAnalyzer creates an analyzer with default settings.
func NewAnalyzer() *Analyzer {
	return &Analyzer{config: DefaultConfig()}
}

// NewAnalyzerWithConfig creates an analyzer with custom settings.
func NewAnalyzerWithConfig(config Config) *Analyzer {
	return &Analyzer{config: config}
}

// Analyze runs the full pipeline over a return series. Any failure is
// terminal: there is no retry and no fallback value.
func (a *Analyzer) Analyze(source string, returns timeseries.ReturnSeries) (*ReportData, error) {
	runID := uuid.New().String()

	log.Info().
		Str("run_id", runID).
		Str("source", source).
		Int("observations", returns.Len()).
		Int("ljung_box_lag", a.config.LjungBoxLag).
		Msg("Starting volatility analysis")

	if returns.Len() < a.config.MinObservations {
		return nil, fmt.Errorf("%w: need at least %d returns, got %d",
			garch.ErrInsufficientData, a.config.MinObservations, returns.Len())
	}

	summary := timeseries.Summarize(returns)

	preFit, err := stats.LjungBox(returns.Squared(), a.config.LjungBoxLag)
	if err != nil {
		return nil, fmt.Errorf("pre-fit Ljung-Box test failed: %w", err)
	}
	log.Info().
		Float64("statistic", preFit.Statistic).
		Float64("p_value", preFit.PValue).
		Msg("Pre-fit Ljung-Box on squared returns")

	fit, err := garch.Estimate(returns.Values)
	if err != nil {
		return nil, fmt.Errorf("GARCH estimation failed: %w", err)
	}

	stdRes := fit.TrimmedStdResiduals()
	sqStdRes := make([]float64, len(stdRes))
	for i, v := range stdRes {
		sqStdRes[i] = v * v
	}

	postFit, err := stats.LjungBox(sqStdRes, a.config.LjungBoxLag)
	if err != nil {
		return nil, fmt.Errorf("post-fit Ljung-Box test failed: %w", err)
	}
	log.Info().
		Float64("statistic", postFit.Statistic).
		Float64("p_value", postFit.PValue).
		Msg("Post-fit Ljung-Box on squared standardized residuals")

	normality, err := stats.JarqueBera(stdRes)
	if err != nil {
		return nil, fmt.Errorf("normality test failed: %w", err)
	}

	data := &ReportData{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Source:      source,
		Returns:     returns,
		Summary:     summary,
		PreFit:      preFit,
		PostFit:     postFit,
		Normality:   normality,
		Fit:         fit,
		ResidualACF: stats.ACF(sqStdRes, a.config.ACFLags),
	}

	log.Info().
		Str("run_id", runID).
		Float64("persistence", fit.Persistence()).
		Float64("log_likelihood", fit.LogLikelihood).
		Msg("Volatility analysis complete")

	return data, nil
}
