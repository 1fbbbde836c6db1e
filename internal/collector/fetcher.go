package collector

import (
	"errors"

	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/model"
)

// ErrNoData is returned when a provider responds successfully but carries no
// usable bars for the requested symbol.
var ErrNoData = errors.New("no market data returned")

// Fetcher defines the interface for fetching daily market data.
type Fetcher interface {
	FetchDailyBars(symbol string, days int) ([]model.OHLCV, error)
	Name() string
}
