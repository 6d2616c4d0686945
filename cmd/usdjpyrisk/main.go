package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	appName = "usdjpyrisk"
	version = "v1.0.0"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	if term.IsTerminal(int(os.Stderr.Fd())) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	} else {
		log.Logger = log.Output(os.Stderr)
	}

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "USD/JPY exchange-rate volatility analysis",
		Version: version,
		Long: `usdjpyrisk fits a GARCH(1,1) volatility model to USD/JPY exchange-rate
data and produces a diagnostic report: a coefficient table, Ljung-Box tests
before and after the fit, and charts of returns, residual autocorrelation
and conditional volatility bands.`,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full volatility analysis pipeline",
		Long:  "Load a CSV price series, compute log returns, fit GARCH(1,1) and write the report bundle",
		RunE:  runAnalyze,
	}
	analyzeCmd.Flags().String("input", "", "Path to CSV input (overrides config)")
	analyzeCmd.Flags().String("config", "", "Path to YAML analysis config")
	analyzeCmd.Flags().String("out", "", "Output directory for report artifacts (overrides config)")
	analyzeCmd.Flags().Bool("charts", true, "Render PNG charts")

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Generate a simulated GARCH(1,1) return path",
		Long:  "Write a CSV of simulated GARCH(1,1) returns, useful as a test fixture or for power studies",
		RunE:  runSimulate,
	}
	simulateCmd.Flags().Int("n", 2000, "Number of observations")
	simulateCmd.Flags().Float64("omega", 0.1, "Constant variance term")
	simulateCmd.Flags().Float64("alpha", 0.1, "ARCH coefficient")
	simulateCmd.Flags().Float64("beta", 0.8, "GARCH coefficient")
	simulateCmd.Flags().Int64("seed", 1, "RNG seed")
	simulateCmd.Flags().String("out", "simulated_garch.csv", "Output CSV path")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(simulateCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
