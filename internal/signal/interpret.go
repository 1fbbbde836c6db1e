package signal

import (
	"fmt"
	"math"

	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/model"
)

// Interpretation is the plain-language reading of a prediction, used by
// the dashboard's latest-prediction endpoint.
type Interpretation struct {
	Direction  string       `json:"direction"`
	Outlook    string       `json:"outlook"`
	Signal     model.Signal `json:"signal"`
	RSI        string       `json:"rsi"`
	MACD       string       `json:"macd"`
	Volatility string       `json:"volatility"`
}

// Interpret explains a prediction record. Volatility is not part of the
// persisted record, so it arrives separately and may be nil.
func Interpret(rec *model.PredictionRecord, volatility *float64) Interpretation {
	out := Interpretation{
		Signal: Classify(rec.PriceChangePct, rec.RSI),
	}

	word := "downward"
	out.Outlook = "negative"
	if rec.PriceChangePct > 0 {
		word = "upward"
		out.Outlook = "positive"
	}
	out.Direction = fmt.Sprintf("%s movement of $%.2f (%.2f%%)",
		word, math.Abs(rec.PriceChange), math.Abs(rec.PriceChangePct))

	switch {
	case rec.RSI == nil:
		out.RSI = "RSI data not available"
	case *rec.RSI > 70:
		out.RSI = "overbought (RSI > 70), price may correct downward"
	case *rec.RSI < 30:
		out.RSI = "oversold (RSI < 30), potential buying opportunity"
	default:
		out.RSI = "neutral (RSI in healthy range)"
	}

	switch {
	case rec.MACD == nil:
		out.MACD = "MACD data not available"
	case *rec.MACD > 0:
		out.MACD = "bullish momentum (MACD > 0)"
	default:
		out.MACD = "bearish momentum (MACD < 0)"
	}

	switch {
	case volatility == nil:
		out.Volatility = "volatility data not available"
	case *volatility > 0.03:
		out.Volatility = "high volatility, higher risk and opportunity"
	case *volatility > 0.015:
		out.Volatility = "moderate volatility, normal market conditions"
	default:
		out.Volatility = "low volatility, stable market conditions"
	}

	return out
}
