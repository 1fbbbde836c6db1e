package predictor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/floats"

	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/model"
)

// ErrNotTrained means no exported artifacts exist for the symbol.
var ErrNotTrained = errors.New("model artifacts not found")

// Artifacts bundles everything the training side exports for one symbol:
// metadata, the fitted scaler, and the regressor itself.
type Artifacts struct {
	Meta   model.Metadata
	Scaler Scaler
	Model  Model
}

// Load reads the three artifact files for a symbol from dir and checks
// that their dimensions agree with the declared feature list.
func Load(dir, symbol string) (*Artifacts, error) {
	meta, err := LoadMetadata(dir, symbol)
	if err != nil {
		return nil, err
	}

	scaler, err := loadScaler(filepath.Join(dir, symbol+"_scaler.json"))
	if err != nil {
		return nil, fmt.Errorf("load scaler for %s: %w", symbol, err)
	}
	if got := len(scaler.Mean); got != len(meta.Features) {
		return nil, fmt.Errorf("scaler for %s covers %d features, metadata declares %d", symbol, got, len(meta.Features))
	}

	lm, err := loadModel(filepath.Join(dir, symbol+"_model.json"))
	if err != nil {
		return nil, fmt.Errorf("load model for %s: %w", symbol, err)
	}
	if got := len(lm.Coefficients); got != len(meta.Features) {
		return nil, fmt.Errorf("model for %s has %d coefficients, metadata declares %d features", symbol, got, len(meta.Features))
	}

	return &Artifacts{Meta: meta, Scaler: scaler, Model: lm}, nil
}

// LoadMetadata reads only the metadata file; the dashboard uses it to
// report which symbols have a trained model.
func LoadMetadata(dir, symbol string) (model.Metadata, error) {
	path := filepath.Join(dir, symbol+"_model_metadata.json")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.Metadata{}, fmt.Errorf("%w: %s", ErrNotTrained, symbol)
	}
	if err != nil {
		return model.Metadata{}, fmt.Errorf("read metadata for %s: %w", symbol, err)
	}

	var meta model.Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return model.Metadata{}, fmt.Errorf("parse metadata for %s: %w", symbol, err)
	}
	if len(meta.Features) == 0 {
		return model.Metadata{}, fmt.Errorf("metadata for %s declares no features", symbol)
	}
	return meta, nil
}

// StandardScaler applies the (x - mean) / scale transform fitted during
// training.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

func (s *StandardScaler) Transform(raw []float64) ([]float64, error) {
	if len(raw) != len(s.Mean) {
		return nil, fmt.Errorf("scaler expects %d features, got %d", len(s.Mean), len(raw))
	}
	out := make([]float64, len(raw))
	floats.SubTo(out, raw, s.Mean)
	floats.DivTo(out, out, s.Scale)
	return out, nil
}

func loadScaler(path string) (*StandardScaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s StandardScaler
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if len(s.Mean) == 0 || len(s.Mean) != len(s.Scale) {
		return nil, fmt.Errorf("scaler has %d means and %d scales", len(s.Mean), len(s.Scale))
	}
	return &s, nil
}
