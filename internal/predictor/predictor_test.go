package predictor

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/indicator"
	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/model"
)

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestStandardScalerTransform(t *testing.T) {
	s := &StandardScaler{Mean: []float64{1, 2}, Scale: []float64{2, 4}}

	got, err := s.Transform([]float64{3, 10})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got[0], 1e-12)
	assert.InDelta(t, 2.0, got[1], 1e-12)

	_, err = s.Transform([]float64{3})
	assert.Error(t, err)
}

func TestLinearModelPredict(t *testing.T) {
	m := &LinearModel{Coefficients: []float64{2, -1}, Intercept: 0.5}

	got, err := m.Predict([]float64{3, 4})
	require.NoError(t, err)
	assert.InDelta(t, 2.5, got, 1e-12)

	_, err = m.Predict([]float64{3})
	assert.Error(t, err)
}

func TestLoadArtifacts(t *testing.T) {
	dir := t.TempDir()
	meta := model.Metadata{
		ModelName:    "Ridge Regression",
		TestRMSE:     2.41,
		TestR2:       0.93,
		Features:     []string{"Close", "MA_5"},
		TrainingDate: "2026-08-01",
	}
	writeJSON(t, filepath.Join(dir, "AAPL_model_metadata.json"), meta)
	writeJSON(t, filepath.Join(dir, "AAPL_scaler.json"), StandardScaler{Mean: []float64{0, 0}, Scale: []float64{1, 1}})
	writeJSON(t, filepath.Join(dir, "AAPL_model.json"), LinearModel{Coefficients: []float64{1, 0}, Intercept: 2})

	art, err := Load(dir, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "Ridge Regression", art.Meta.ModelName)
	assert.Equal(t, []string{"Close", "MA_5"}, art.Meta.Features)

	scaled, err := art.Scaler.Transform([]float64{180, 178})
	require.NoError(t, err)
	pred, err := art.Model.Predict(scaled)
	require.NoError(t, err)
	assert.InDelta(t, 182.0, pred, 1e-12)
}

func TestLoadArtifactsNotTrained(t *testing.T) {
	_, err := Load(t.TempDir(), "TSLA")
	assert.ErrorIs(t, err, ErrNotTrained)

	_, err = LoadMetadata(t.TempDir(), "TSLA")
	assert.ErrorIs(t, err, ErrNotTrained)
}

func TestLoadArtifactsDimensionMismatch(t *testing.T) {
	dir := t.TempDir()
	meta := model.Metadata{ModelName: "lr", Features: []string{"Close", "MA_5"}}
	writeJSON(t, filepath.Join(dir, "AAPL_model_metadata.json"), meta)
	writeJSON(t, filepath.Join(dir, "AAPL_scaler.json"), StandardScaler{Mean: []float64{0}, Scale: []float64{1}})
	writeJSON(t, filepath.Join(dir, "AAPL_model.json"), LinearModel{Coefficients: []float64{1, 0}})

	_, err := Load(dir, "AAPL")
	assert.ErrorContains(t, err, "scaler")
}

func TestLoadArtifactsCorruptMetadata(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "AAPL_model_metadata.json"), []byte("{not json"), 0o644))

	_, err := Load(dir, "AAPL")
	assert.ErrorContains(t, err, "parse metadata")
}

func testFrame(t *testing.T, cols map[string][]float64) *indicator.Frame {
	t.Helper()
	var n int
	for _, vals := range cols {
		n = len(vals)
		break
	}
	dates := make([]time.Time, n)
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	f := indicator.NewFrame(dates)
	for name, vals := range cols {
		require.NoError(t, f.Add(name, vals))
	}
	return f
}

func TestPrepareInput(t *testing.T) {
	identity := &StandardScaler{Mean: []float64{0, 0}, Scale: []float64{1, 1}}

	t.Run("selects latest row in feature order", func(t *testing.T) {
		f := testFrame(t, map[string][]float64{
			"Close": {100, 101},
			"RSI":   {48, 52},
		})
		scaled, raw, err := PrepareInput(f, []string{"RSI", "Close"}, identity)
		require.NoError(t, err)
		assert.Equal(t, []float64{52, 101}, scaled)
		assert.Equal(t, 52.0, raw["RSI"])
		assert.Equal(t, 101.0, raw["Close"])
	})

	t.Run("missing feature", func(t *testing.T) {
		f := testFrame(t, map[string][]float64{"Close": {100, 101}})
		_, _, err := PrepareInput(f, []string{"Close", "BB_Width"}, identity)
		assert.ErrorIs(t, err, ErrMissingFeature)
	})

	t.Run("infinity filled from earlier row", func(t *testing.T) {
		f := testFrame(t, map[string][]float64{
			"Close":        {100, 101, 102},
			"Volume_Ratio": {1.2, 0.9, math.Inf(1)},
		})
		scaled, raw, err := PrepareInput(f, []string{"Close", "Volume_Ratio"}, identity)
		require.NoError(t, err)
		assert.Equal(t, []float64{102, 0.9}, scaled)
		assert.Equal(t, 0.9, raw["Volume_Ratio"])
	})

	t.Run("nothing usable defaults to zero", func(t *testing.T) {
		f := testFrame(t, map[string][]float64{
			"Close":        {100, 101},
			"Volume_Ratio": {math.Inf(-1), math.Inf(1)},
		})
		scaled, raw, err := PrepareInput(f, []string{"Close", "Volume_Ratio"}, identity)
		require.NoError(t, err)
		assert.Equal(t, []float64{101, 0}, scaled)
		assert.Equal(t, 0.0, raw["Volume_Ratio"])
	})

	t.Run("scaler mismatch propagates", func(t *testing.T) {
		f := testFrame(t, map[string][]float64{"Close": {100}})
		_, _, err := PrepareInput(f, []string{"Close"}, &StandardScaler{Mean: []float64{0, 0}, Scale: []float64{1, 1}})
		assert.ErrorContains(t, err, "scale input")
	})

	t.Run("empty table", func(t *testing.T) {
		_, _, err := PrepareInput(nil, []string{"Close"}, identity)
		assert.Error(t, err)
	})
}
