package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 12, cfg.Diagnostics.LjungBoxLag)
	assert.Equal(t, ".", cfg.Input.Sentinel)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.yaml")
	content := `input:
  path: data/custom.csv
  date_column: DATE
  price_column: RATE
  date_format: "2006-01-02"
  sentinel: "NA"
diagnostics:
  ljung_box_lag: 8
  acf_lags: 15
model:
  min_observations: 50
output:
  dir: out/custom
  charts: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "data/custom.csv", cfg.Input.Path)
	assert.Equal(t, "RATE", cfg.Input.PriceColumn)
	assert.Equal(t, "NA", cfg.Input.Sentinel)
	assert.Equal(t, 8, cfg.Diagnostics.LjungBoxLag)
	assert.Equal(t, 50, cfg.Model.MinObservations)
	assert.False(t, cfg.Output.Charts)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	content := `diagnostics:
  ljung_box_lag: 0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ljung_box_lag")
}

func TestValidate_EmptyOutputDir(t *testing.T) {
	cfg := Default()
	cfg.Output.Dir = ""
	require.Error(t, cfg.Validate())
}
