package model

import (
	"encoding/json"
	"time"
)

// TimeLayout is the timestamp format used in prediction log records.
const TimeLayout = "2006-01-02 15:04:05"

// Timestamp wraps time.Time so log records marshal with TimeLayout
// instead of RFC 3339.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to whole seconds, matching log precision.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.Truncate(time.Second)}
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.Format(TimeLayout))
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return err
	}
	ts.Time = t
	return nil
}

// PredictionRecord is one pipeline run's output, persisted as a single
// JSON line in the symbol's append-only log. RSI and MACD are null when
// the model's feature list does not include them.
type PredictionRecord struct {
	Timestamp      Timestamp `json:"timestamp"`
	Ticker         string    `json:"ticker"`
	CompanyName    string    `json:"company_name"`
	Sector         string    `json:"sector"`
	CurrentPrice   float64   `json:"current_price"`
	PredictedPrice float64   `json:"predicted_price"`
	PriceChange    float64   `json:"price_change"`
	PriceChangePct float64   `json:"price_change_pct"`
	RSI            *float64  `json:"rsi"`
	MACD           *float64  `json:"macd"`
}
