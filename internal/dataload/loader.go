// Package dataload ingests tabular exchange-rate observations into an
// in-memory price series. Missing observations are marked in the source data
// by a sentinel token and are dropped during ingestion.
package dataload

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Yuta-Kondo/USDJPY-Risk-Analysis/internal/timeseries"
)

// ErrDataFormat indicates malformed input: a missing column, an unparsable
// cell, or rows out of order.
var ErrDataFormat = errors.New("data format error")

// Options controls how the CSV is interpreted.
type Options struct {
	DateColumn  string
	PriceColumn string
	DateFormat  string
	Sentinel    string // token marking a missing observation
}

// DefaultOptions matches the FRED DEXJPUS export layout.
func DefaultOptions() Options {
	return Options{
		DateColumn:  "DATE",
		PriceColumn: "DEXJPUS",
		DateFormat:  "2006-01-02",
		Sentinel:    ".",
	}
}

// LoadCSV reads a price series from the file at path. The file handle is
// released as soon as parsing completes.
func LoadCSV(path string, opts Options) (timeseries.PriceSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return timeseries.PriceSeries{}, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	series, dropped, err := parse(f, opts)
	if err != nil {
		return timeseries.PriceSeries{}, err
	}

	log.Info().
		Str("path", path).
		Int("observations", series.Len()).
		Int("dropped_missing", dropped).
		Msg("Price series loaded")

	return series, nil
}

func parse(r io.Reader, opts Options) (timeseries.PriceSeries, int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return timeseries.PriceSeries{}, 0, fmt.Errorf("%w: failed to read header: %v", ErrDataFormat, err)
	}

	dateIdx, priceIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case opts.DateColumn:
			dateIdx = i
		case opts.PriceColumn:
			priceIdx = i
		}
	}
	if dateIdx < 0 {
		return timeseries.PriceSeries{}, 0, fmt.Errorf("%w: date column %q not found in header %v", ErrDataFormat, opts.DateColumn, header)
	}
	if priceIdx < 0 {
		return timeseries.PriceSeries{}, 0, fmt.Errorf("%w: price column %q not found in header %v", ErrDataFormat, opts.PriceColumn, header)
	}

	var obs []timeseries.Observation
	dropped := 0
	row := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return timeseries.PriceSeries{}, 0, fmt.Errorf("%w: row %d: %v", ErrDataFormat, row, err)
		}
		row++

		raw := strings.TrimSpace(record[priceIdx])
		if raw == opts.Sentinel || raw == "" {
			dropped++
			continue
		}

		date, err := time.Parse(opts.DateFormat, strings.TrimSpace(record[dateIdx]))
		if err != nil {
			return timeseries.PriceSeries{}, 0, fmt.Errorf("%w: row %d: bad date %q: %v", ErrDataFormat, row, record[dateIdx], err)
		}
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return timeseries.PriceSeries{}, 0, fmt.Errorf("%w: row %d: bad price %q: %v", ErrDataFormat, row, raw, err)
		}

		obs = append(obs, timeseries.Observation{Date: date, Price: price})
	}

	series, err := timeseries.NewPriceSeries(obs)
	if err != nil {
		return timeseries.PriceSeries{}, 0, fmt.Errorf("%w: %v", ErrDataFormat, err)
	}
	return series, dropped, nil
}
