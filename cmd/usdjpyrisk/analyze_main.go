package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Yuta-Kondo/USDJPY-Risk-Analysis/internal/config"
	"github.com/Yuta-Kondo/USDJPY-Risk-Analysis/internal/dataload"
	"github.com/Yuta-Kondo/USDJPY-Risk-Analysis/internal/reports/volatility"
	"github.com/Yuta-Kondo/USDJPY-Risk-Analysis/internal/timeseries"
)

// runAnalyze executes the full pipeline: load, transform, test, fit, test,
// report. All errors are terminal.
func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd.Flags())
	if err != nil {
		return err
	}

	log.Info().
		Str("input", cfg.Input.Path).
		Str("output_dir", cfg.Output.Dir).
		Bool("charts", cfg.Output.Charts).
		Msg("Starting USD/JPY volatility analysis")

	prices, err := dataload.LoadCSV(cfg.Input.Path, dataload.Options{
		DateColumn:  cfg.Input.DateColumn,
		PriceColumn: cfg.Input.PriceColumn,
		DateFormat:  cfg.Input.DateFormat,
		Sentinel:    cfg.Input.Sentinel,
	})
	if err != nil {
		return fmt.Errorf("data load failed: %w", err)
	}

	returns, err := timeseries.LogReturns(prices)
	if err != nil {
		return fmt.Errorf("return transform failed: %w", err)
	}

	analyzer := volatility.NewAnalyzerWithConfig(volatility.Config{
		LjungBoxLag:     cfg.Diagnostics.LjungBoxLag,
		ACFLags:         cfg.Diagnostics.ACFLags,
		MinObservations: cfg.Model.MinObservations,
	})
	data, err := analyzer.Analyze(cfg.Input.Path, returns)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("GARCH(1,1) coefficient estimates")
	fmt.Print(volatility.CoefficientTable(data))
	fmt.Printf("persistence (alpha1+beta1): %.4f\n", data.Fit.Persistence())
	fmt.Printf("pre-fit  Ljung-Box(%d) on squared returns:   Q=%.3f p=%.6f\n",
		data.PreFit.DF, data.PreFit.Statistic, data.PreFit.PValue)
	fmt.Printf("post-fit Ljung-Box(%d) on squared residuals: Q=%.3f p=%.6f\n",
		data.PostFit.DF, data.PostFit.Statistic, data.PostFit.PValue)
	fmt.Println()

	files, err := volatility.NewGenerator(analyzer).Generate(data, volatility.GeneratorConfig{
		OutputDir: cfg.Output.Dir,
		Charts:    cfg.Output.Charts,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Report artifacts written to %s:\n", cfg.Output.Dir)
	for _, f := range files {
		fmt.Printf("  • %s\n", f)
	}
	return nil
}

// resolveConfig layers CLI flags over the config file over the defaults.
func resolveConfig(flags *pflag.FlagSet) (config.Config, error) {
	cfg := config.Default()

	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if input, _ := flags.GetString("input"); input != "" {
		cfg.Input.Path = input
	}
	if out, _ := flags.GetString("out"); out != "" {
		cfg.Output.Dir = out
	}
	if flags.Changed("charts") {
		cfg.Output.Charts, _ = flags.GetBool("charts")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
