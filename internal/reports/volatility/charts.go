package volatility

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	returnColor = color.RGBA{R: 70, G: 100, B: 180, A: 255}
	bandColor   = color.RGBA{R: 200, G: 60, B: 60, A: 255}
	barColor    = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	boundColor  = color.RGBA{R: 60, G: 120, B: 200, A: 255}
)

// renderCharts writes the three report charts as PNG files and returns their
// paths.
func renderCharts(data *ReportData, outputDir, timestamp string) ([]string, error) {
	var files []string

	returnsPath := filepath.Join(outputDir, fmt.Sprintf("returns_%s.png", timestamp))
	if err := renderReturnsChart(data, returnsPath); err != nil {
		return nil, fmt.Errorf("returns chart: %w", err)
	}
	files = append(files, returnsPath)

	acfPath := filepath.Join(outputDir, fmt.Sprintf("residual_acf_%s.png", timestamp))
	if err := renderACFChart(data, acfPath); err != nil {
		return nil, fmt.Errorf("acf chart: %w", err)
	}
	files = append(files, acfPath)

	bandsPath := filepath.Join(outputDir, fmt.Sprintf("volatility_bands_%s.png", timestamp))
	if err := renderBandsChart(data, bandsPath); err != nil {
		return nil, fmt.Errorf("volatility bands chart: %w", err)
	}
	files = append(files, bandsPath)

	return files, nil
}

func returnXYs(data *ReportData) plotter.XYs {
	xys := make(plotter.XYs, data.Returns.Len())
	for i := range xys {
		xys[i].X = float64(data.Returns.Dates[i].Unix())
		xys[i].Y = data.Returns.Values[i]
	}
	return xys
}

func renderReturnsChart(data *ReportData, path string) error {
	p := plot.New()
	p.Title.Text = "USD/JPY Daily Log Returns (%)"
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Return (%)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(returnXYs(data))
	if err != nil {
		return err
	}
	line.Color = returnColor
	line.Width = vg.Points(0.5)
	p.Add(line)

	return p.Save(10*vg.Inch, 4*vg.Inch, path)
}

func renderACFChart(data *ReportData, path string) error {
	p := plot.New()
	p.Title.Text = "ACF of Squared Standardized Residuals"
	p.X.Label.Text = "Lag"
	p.Y.Label.Text = "Autocorrelation"

	// Lag 0 is identically 1 and only compresses the scale
	vals := make(plotter.Values, 0, len(data.ResidualACF.Values))
	labels := make([]string, 0, len(data.ResidualACF.Values))
	for i, v := range data.ResidualACF.Values {
		if data.ResidualACF.Lags[i] == 0 {
			continue
		}
		vals = append(vals, v)
		labels = append(labels, strconv.Itoa(data.ResidualACF.Lags[i]))
	}

	bars, err := plotter.NewBarChart(vals, vg.Points(6))
	if err != nil {
		return err
	}
	bars.Color = barColor
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(labels...)

	for _, bound := range []float64{data.ResidualACF.ConfBound, -data.ResidualACF.ConfBound} {
		line, err := plotter.NewLine(plotter.XYs{
			{X: -0.5, Y: bound},
			{X: float64(len(vals)) - 0.5, Y: bound},
		})
		if err != nil {
			return err
		}
		line.Color = boundColor
		line.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(line)
	}

	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

func renderBandsChart(data *ReportData, path string) error {
	p := plot.New()
	p.Title.Text = "USD/JPY Returns with ±1 Conditional Std. Dev."
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Return (%)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(returnXYs(data))
	if err != nil {
		return err
	}
	line.Color = returnColor
	line.Width = vg.Points(0.5)
	p.Add(line)
	p.Legend.Add("returns", line)

	for _, sign := range []float64{1, -1} {
		band := make(plotter.XYs, data.Returns.Len())
		for i := range band {
			band[i].X = float64(data.Returns.Dates[i].Unix())
			band[i].Y = sign * data.Fit.CondStdDev[i]
		}
		bandLine, err := plotter.NewLine(band)
		if err != nil {
			return err
		}
		bandLine.Color = bandColor
		bandLine.Width = vg.Points(1)
		p.Add(bandLine)
		if sign > 0 {
			p.Legend.Add("±1 cond. std. dev.", bandLine)
		}
	}
	p.Legend.Top = true

	return p.Save(10*vg.Inch, 4*vg.Inch, path)
}
