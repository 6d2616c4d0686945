package volatility

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/template"
	"time"

	"github.com/rs/zerolog/log"
)

// Generator renders a ReportData into markdown, CSV and chart artifacts.
type Generator struct {
	analyzer *Analyzer
}

// NewGenerator creates a report generator.
func NewGenerator(analyzer *Analyzer) *Generator {
	return &Generator{analyzer: analyzer}
}

// Generate writes the artifact bundle for an analysis run and returns the
// paths written.
func (g *Generator) Generate(data *ReportData, config GeneratorConfig) ([]string, error) {
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := data.GeneratedAt.Format("20060102_150405")
	var written []string

	mdPath := filepath.Join(config.OutputDir, fmt.Sprintf("volatility_report_%s.md", timestamp))
	if err := g.generateMarkdownReport(data, mdPath, config.Charts); err != nil {
		return nil, fmt.Errorf("failed to generate markdown report: %w", err)
	}
	written = append(written, mdPath)

	csvFiles, err := g.generateCSVArtifacts(data, config.OutputDir, timestamp)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV artifacts: %w", err)
	}
	written = append(written, csvFiles...)

	if config.Charts {
		chartFiles, err := renderCharts(data, config.OutputDir, timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to render charts: %w", err)
		}
		written = append(written, chartFiles...)
	}

	log.Info().
		Str("run_id", data.RunID).
		Str("markdown", mdPath).
		Int("artifacts", len(written)).
		Msg("Volatility report generated")

	return written, nil
}

// CoefficientTable renders the fitted parameters as a fixed-width text table
// for terminal display.
func CoefficientTable(data *ReportData) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%-8s %12s %12s %10s %10s\n", "param", "estimate", "std.error", "t-value", "p-value")
	for _, c := range data.Fit.Coefficients() {
		fmt.Fprintf(&buf, "%-8s %12.6f %12.6f %10.3f %10.4f\n",
			c.Name, c.Estimate, c.StdError, c.TStat, c.PValue)
	}
	return buf.String()
}

func (g *Generator) generateMarkdownReport(data *ReportData, outputPath string, charts bool) error {
	tmpl := template.Must(template.New("volatility_report").Parse(volatilityReportTemplate))

	// The chart list only appears when the PNGs are actually rendered
	view := struct {
		*ReportData
		Charts bool
	}{ReportData: data, Charts: charts}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write markdown file: %w", err)
	}
	return nil
}

func (g *Generator) generateCSVArtifacts(data *ReportData, outputDir, timestamp string) ([]string, error) {
	var csvFiles []string

	coeffPath := filepath.Join(outputDir, fmt.Sprintf("garch_coefficients_%s.csv", timestamp))
	if err := g.generateCoefficientsCSV(data, coeffPath); err != nil {
		return nil, fmt.Errorf("failed to generate coefficients CSV: %w", err)
	}
	csvFiles = append(csvFiles, coeffPath)

	volPath := filepath.Join(outputDir, fmt.Sprintf("conditional_volatility_%s.csv", timestamp))
	if err := g.generateVolatilityCSV(data, volPath); err != nil {
		return nil, fmt.Errorf("failed to generate volatility CSV: %w", err)
	}
	csvFiles = append(csvFiles, volPath)

	acfPath := filepath.Join(outputDir, fmt.Sprintf("residual_acf_%s.csv", timestamp))
	if err := g.generateACFCSV(data, acfPath); err != nil {
		return nil, fmt.Errorf("failed to generate ACF CSV: %w", err)
	}
	csvFiles = append(csvFiles, acfPath)

	return csvFiles, nil
}

func (g *Generator) generateCoefficientsCSV(data *ReportData, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	writer.Write([]string{"param", "estimate", "std_error", "t_value", "p_value"})
	for _, c := range data.Fit.Coefficients() {
		writer.Write([]string{
			c.Name,
			fmt.Sprintf("%.8f", c.Estimate),
			fmt.Sprintf("%.8f", c.StdError),
			fmt.Sprintf("%.4f", c.TStat),
			fmt.Sprintf("%.6f", c.PValue),
		})
	}
	return writer.Error()
}

func (g *Generator) generateVolatilityCSV(data *ReportData, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	writer.Write([]string{"date", "return_pct", "cond_std_dev", "std_residual"})
	for i, d := range data.Returns.Dates {
		writer.Write([]string{
			d.Format(time.DateOnly),
			fmt.Sprintf("%.6f", data.Returns.Values[i]),
			fmt.Sprintf("%.6f", data.Fit.CondStdDev[i]),
			fmt.Sprintf("%.6f", data.Fit.StdResiduals[i]),
		})
	}
	return writer.Error()
}

func (g *Generator) generateACFCSV(data *ReportData, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	writer.Write([]string{"lag", "acf", "conf_bound"})
	for i, lag := range data.ResidualACF.Lags {
		writer.Write([]string{
			strconv.Itoa(lag),
			fmt.Sprintf("%.6f", data.ResidualACF.Values[i]),
			fmt.Sprintf("%.6f", data.ResidualACF.ConfBound),
		})
	}
	return writer.Error()
}

// volatilityReportTemplate is the markdown template for the analysis report.
const volatilityReportTemplate = `# USD/JPY Volatility Analysis

**Run ID:** {{.RunID}}
**Generated:** {{.GeneratedAt.Format "2006-01-02 15:04:05 UTC"}}
**Source:** {{.Source}}
**Observations:** {{.Summary.N}} daily log returns

## Return Summary

| Statistic | Value |
|-----------|------:|
| Mean | {{printf "%.4f" .Summary.Mean}} |
| Std. dev. | {{printf "%.4f" .Summary.StdDev}} |
| Skewness | {{printf "%.4f" .Summary.Skewness}} |
| Excess kurtosis | {{printf "%.4f" .Summary.Kurtosis}} |
| Min | {{printf "%.4f" .Summary.Min}} |
| Max | {{printf "%.4f" .Summary.Max}} |

## Pre-Fit Diagnostics

Ljung-Box on squared returns, lag {{.PreFit.DF}}:
Q = {{printf "%.3f" .PreFit.Statistic}}, p = {{printf "%.6f" .PreFit.PValue}}
{{if lt .PreFit.PValue 0.05}}Squared returns are autocorrelated — volatility clustering is present and a GARCH model is warranted.{{else}}No significant ARCH effects detected at the 5% level.{{end}}

## GARCH(1,1) Coefficients

| Parameter | Estimate | Std. Error | t-value | p-value |
|-----------|---------:|-----------:|--------:|--------:|
{{range .Fit.Coefficients -}}
| {{.Name}} | {{printf "%.6f" .Estimate}} | {{printf "%.6f" .StdError}} | {{printf "%.3f" .TStat}} | {{printf "%.4f" .PValue}} |
{{end}}
**Persistence (alpha1+beta1):** {{printf "%.4f" .Fit.Persistence}}
**Log-likelihood:** {{printf "%.3f" .Fit.LogLikelihood}} | **AIC:** {{printf "%.3f" .Fit.AIC}} | **BIC:** {{printf "%.3f" .Fit.BIC}}

## Post-Fit Diagnostics

Ljung-Box on squared standardized residuals, lag {{.PostFit.DF}}:
Q = {{printf "%.3f" .PostFit.Statistic}}, p = {{printf "%.6f" .PostFit.PValue}}
{{if lt .PostFit.PValue 0.05}}Residual volatility structure remains — the GARCH(1,1) specification may be inadequate.{{else}}No remaining autocorrelation in squared standardized residuals — the fit captures the volatility dynamics.{{end}}

Jarque-Bera on standardized residuals:
JB = {{printf "%.3f" .Normality.Statistic}}, p = {{printf "%.6f" .Normality.PValue}}

{{if .Charts -}}
## Charts

- returns_{{.GeneratedAt.Format "20060102_150405"}}.png — daily log returns
- residual_acf_{{.GeneratedAt.Format "20060102_150405"}}.png — ACF of squared standardized residuals
- volatility_bands_{{.GeneratedAt.Format "20060102_150405"}}.png — returns with ±1 conditional std. dev. bands
{{end -}}
`
