package dataload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCSV_DropsSentinelRows(t *testing.T) {
	path := writeCSV(t, `DATE,DEXJPUS
2024-01-02,141.50
2024-01-03,.
2024-01-04,143.20
2024-01-05,142.80
`)

	series, err := LoadCSV(path, DefaultOptions())
	require.NoError(t, err)

	// Sentinel row removed, indices renumbered contiguously
	require.Equal(t, 3, series.Len())
	assert.Equal(t, 141.50, series.At(0).Price)
	assert.Equal(t, 143.20, series.At(1).Price)
	assert.Equal(t, 142.80, series.At(2).Price)
	assert.Equal(t, "2024-01-04", series.At(1).Date.Format("2006-01-02"))
}

func TestLoadCSV_MissingPriceColumn(t *testing.T) {
	path := writeCSV(t, `DATE,CLOSE
2024-01-02,141.50
`)

	_, err := LoadCSV(path, DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDataFormat)
	assert.Contains(t, err.Error(), "DEXJPUS")
}

func TestLoadCSV_MissingDateColumn(t *testing.T) {
	path := writeCSV(t, `day,DEXJPUS
2024-01-02,141.50
`)

	_, err := LoadCSV(path, DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDataFormat)
}

func TestLoadCSV_BadPriceCell(t *testing.T) {
	path := writeCSV(t, `DATE,DEXJPUS
2024-01-02,141.50
2024-01-03,not-a-number
`)

	_, err := LoadCSV(path, DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDataFormat)
}

func TestLoadCSV_OutOfOrderDates(t *testing.T) {
	path := writeCSV(t, `DATE,DEXJPUS
2024-01-05,141.50
2024-01-02,143.20
`)

	_, err := LoadCSV(path, DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDataFormat)
}

func TestLoadCSV_CustomColumns(t *testing.T) {
	path := writeCSV(t, `date,rate
2024/01/02,141.50
2024/01/03,ND
2024/01/04,143.20
`)

	opts := Options{
		DateColumn:  "date",
		PriceColumn: "rate",
		DateFormat:  "2006/01/02",
		Sentinel:    "ND",
	}
	series, err := LoadCSV(path, opts)
	require.NoError(t, err)
	assert.Equal(t, 2, series.Len())
}

func TestLoadCSV_FileNotFound(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"), DefaultOptions())
	require.Error(t, err)
}
