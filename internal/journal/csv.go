package journal

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/model"
)

var csvHeader = []string{
	"timestamp", "ticker", "company_name", "sector",
	"current_price", "predicted_price", "price_change", "price_change_pct",
	"rsi", "macd",
}

// WriteCSV exports records verbatim, one row per record. Absent RSI or
// MACD becomes an empty cell.
func WriteCSV(w io.Writer, recs []model.PredictionRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range recs {
		row := []string{
			r.Timestamp.Format(model.TimeLayout),
			r.Ticker,
			r.CompanyName,
			r.Sector,
			formatFloat(r.CurrentPrice),
			formatFloat(r.PredictedPrice),
			formatFloat(r.PriceChange),
			formatFloat(r.PriceChangePct),
			formatOptional(r.RSI),
			formatOptional(r.MACD),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
