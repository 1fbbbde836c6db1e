package predictor

import (
	"errors"
	"fmt"
	"math"

	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/indicator"
)

// ErrMissingFeature means the model declares a feature the computed
// table does not have, which indicates a model/pipeline version
// mismatch.
var ErrMissingFeature = errors.New("feature missing from computed table")

// PrepareInput selects the newest row of the feature table in the
// model's declared feature order and scales it. Infinities count as
// undefined; undefined values are filled from the nearest earlier
// defined value in the same column, and whatever is still undefined
// defaults to 0. The sanitized pre-scale row is returned alongside the
// vector so callers can log what the model actually saw (RSI and MACD
// pass through it).
func PrepareInput(f *indicator.Frame, features []string, scaler Scaler) ([]float64, map[string]float64, error) {
	if f == nil || f.Len() == 0 {
		return nil, nil, fmt.Errorf("empty feature table")
	}

	last := f.Len() - 1
	raw := make([]float64, len(features))
	rawRow := make(map[string]float64, len(features))
	for i, name := range features {
		col, ok := f.Column(name)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingFeature, name)
		}
		v := col[last]
		if !finite(v) {
			v = lastFinite(col, last-1)
		}
		if math.IsNaN(v) {
			// Lossy fallback: nothing usable anywhere in the column.
			v = 0
		}
		raw[i] = v
		rawRow[name] = v
	}

	scaled, err := scaler.Transform(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("scale input: %w", err)
	}
	return scaled, rawRow, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func lastFinite(col []float64, from int) float64 {
	for i := from; i >= 0; i-- {
		if finite(col[i]) {
			return col[i]
		}
	}
	return math.NaN()
}
