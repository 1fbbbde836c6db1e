// Package signal turns predictions into discrete trading signals and
// plain-language interpretations. Everything here is stateless.
package signal

import (
	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/model"
)

// Classify maps a predicted percentage change and an optional RSI
// reading to a trading signal. Thresholds are fixed constants in
// percent units; the first matching rule wins. A nil rsi drops the RSI
// conditions entirely.
func Classify(pctChange float64, rsi *float64) model.Signal {
	if rsi != nil {
		switch {
		case pctChange > 2 && *rsi < 70:
			return model.SignalStrongBuy
		case pctChange > 0.5 && *rsi < 65:
			return model.SignalBuy
		case pctChange < -2 && *rsi > 30:
			return model.SignalStrongSell
		case pctChange < -0.5 && *rsi > 35:
			return model.SignalSell
		default:
			return model.SignalHold
		}
	}

	switch {
	case pctChange > 2:
		return model.SignalStrongBuy
	case pctChange > 0.5:
		return model.SignalBuy
	case pctChange < -2:
		return model.SignalStrongSell
	case pctChange < -0.5:
		return model.SignalSell
	default:
		return model.SignalHold
	}
}
