package indicator

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/model"
)

// ErrInsufficientHistory means no row survived the dense filter; the
// longest warm-up (the 50-day moving average) needs at least 50 bars.
var ErrInsufficientHistory = errors.New("insufficient history for indicator warm-up")

// lagSteps are the lookback offsets for close and volume lag features.
var lagSteps = []int{1, 2, 3, 5, 7}

// Compute derives the full feature table from a chronological daily bar
// sequence. The returned frame is dense: every row where any column is
// still in warm-up (NaN) has been dropped, so the caller always sees
// fully populated rows ending at the input's last date.
func Compute(bars []model.OHLCV) (*Frame, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: no bars", ErrInsufficientHistory)
	}

	n := len(bars)
	dates := make([]time.Time, n)
	opens := make([]float64, n)
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	volumes := make([]float64, n)
	for i, b := range bars {
		dates[i] = b.Time
		opens[i] = b.Open
		highs[i] = b.High
		lows[i] = b.Low
		closes[i] = b.Close
		volumes[i] = b.Volume
	}

	f := newFrame(dates)
	f.add("Open", opens)
	f.add("High", highs)
	f.add("Low", lows)
	f.add("Close", closes)
	f.add("Volume", volumes)

	// Moving averages
	f.add("MA_5", rollingMean(closes, 5))
	f.add("MA_10", rollingMean(closes, 10))
	f.add("MA_20", rollingMean(closes, 20))
	f.add("MA_50", rollingMean(closes, 50))

	// Exponential MAs and MACD
	ema12 := ema(closes, 12)
	ema26 := ema(closes, 26)
	f.add("EMA_12", ema12)
	f.add("EMA_26", ema26)
	macd := make([]float64, n)
	for i := range macd {
		macd[i] = ema12[i] - ema26[i]
	}
	f.add("MACD", macd)
	f.add("MACD_Signal", ema(macd, 9))

	f.add("RSI", rsi(closes, 14))

	// Bollinger Bands
	bbMiddle := rollingMean(closes, 20)
	bbStd := rollingStd(closes, 20)
	bbUpper := make([]float64, n)
	bbLower := make([]float64, n)
	for i := range bbMiddle {
		bbUpper[i] = bbMiddle[i] + 2*bbStd[i]
		bbLower[i] = bbMiddle[i] - 2*bbStd[i]
	}
	f.add("BB_Middle", bbMiddle)
	f.add("BB_Upper", bbUpper)
	f.add("BB_Lower", bbLower)

	// Price features
	dailyReturn := pctChange(closes)
	f.add("Daily_Return", dailyReturn)
	priceRange := make([]float64, n)
	priceChange := make([]float64, n)
	for i := range bars {
		priceRange[i] = highs[i] - lows[i]
		priceChange[i] = closes[i] - opens[i]
	}
	f.add("Price_Range", priceRange)
	f.add("Price_Change", priceChange)

	// Volume features
	volumeMA5 := rollingMean(volumes, 5)
	volumeRatio := make([]float64, n)
	for i := range volumes {
		volumeRatio[i] = volumes[i] / volumeMA5[i]
	}
	f.add("Volume_MA_5", volumeMA5)
	f.add("Volume_Ratio", volumeRatio)

	f.add("Volatility", rollingStd(dailyReturn, 20))

	// Lag features
	for _, lag := range lagSteps {
		f.add(fmt.Sprintf("Close_Lag_%d", lag), shift(closes, lag))
		f.add(fmt.Sprintf("Volume_Lag_%d", lag), shift(volumes, lag))
	}

	dense := f.dropNaNRows()
	if dense.Len() == 0 {
		return nil, fmt.Errorf("%w: %d bars left no fully populated rows", ErrInsufficientHistory, n)
	}
	return dense, nil
}

// rsi computes the Relative Strength Index over simple rolling means of
// gains and losses. A zero loss mean leaves RSI undefined for that row,
// which the dense filter then drops.
func rsi(closes []float64, window int) []float64 {
	deltas := diff(closes)
	gains := make([]float64, len(deltas))
	losses := make([]float64, len(deltas))
	for i, d := range deltas {
		// NaN compares false, so the leading NaN delta becomes 0 in
		// both series, matching the training pipeline.
		if d > 0 {
			gains[i] = d
		}
		if d < 0 {
			losses[i] = -d
		}
	}

	gainMean := rollingMean(gains, window)
	lossMean := rollingMean(losses, window)

	out := nanSlice(len(closes))
	for i := range out {
		if math.IsNaN(gainMean[i]) || math.IsNaN(lossMean[i]) || lossMean[i] == 0 {
			continue
		}
		rs := gainMean[i] / lossMean[i]
		out[i] = 100 - 100/(1+rs)
	}
	return out
}
