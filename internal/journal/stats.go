package journal

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/model"
)

// Stats summarizes a symbol's prediction history. The error metrics
// compare predicted against same-run current price, a proxy for
// accuracy until next-day actuals are joined in.
type Stats struct {
	Count        int     `json:"count"`
	AvgChange    float64 `json:"avg_price_change"`
	AvgChangePct float64 `json:"avg_price_change_pct"`
	MAE          float64 `json:"mae"`
	RMSE         float64 `json:"rmse"`
	MAPE         float64 `json:"mape"`
}

// Statistics computes summary stats over a record history.
func Statistics(recs []model.PredictionRecord) Stats {
	s := Stats{Count: len(recs)}
	if len(recs) == 0 {
		return s
	}

	changes := make([]float64, len(recs))
	changePcts := make([]float64, len(recs))
	absErrs := make([]float64, len(recs))
	sqErrs := make([]float64, len(recs))
	absPctErrs := make([]float64, len(recs))
	for i, r := range recs {
		err := r.PredictedPrice - r.CurrentPrice
		changes[i] = r.PriceChange
		changePcts[i] = r.PriceChangePct
		absErrs[i] = math.Abs(err)
		sqErrs[i] = err * err
		absPctErrs[i] = math.Abs(err/r.CurrentPrice) * 100
	}

	s.AvgChange = stat.Mean(changes, nil)
	s.AvgChangePct = stat.Mean(changePcts, nil)
	s.MAE = stat.Mean(absErrs, nil)
	s.RMSE = math.Sqrt(stat.Mean(sqErrs, nil))
	s.MAPE = stat.Mean(absPctErrs, nil)
	return s
}
