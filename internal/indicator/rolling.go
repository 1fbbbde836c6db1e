package indicator

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// rollingMean computes a trailing simple moving average. The first
// window-1 positions are NaN, and any NaN inside a window propagates.
func rollingMean(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	for i := window - 1; i < len(values); i++ {
		out[i] = stat.Mean(values[i-window+1:i+1], nil)
	}
	return out
}

// rollingStd computes a trailing sample standard deviation (ddof=1),
// the convention the model artifacts were trained with.
func rollingStd(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	for i := window - 1; i < len(values); i++ {
		out[i] = stat.StdDev(values[i-window+1:i+1], nil)
	}
	return out
}

// ema computes an exponential moving average with alpha = 2/(span+1),
// seeded with the first value (the no-adjust convention).
func ema(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 2.0 / (float64(span) + 1.0)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// diff computes first differences; the first position is NaN.
func diff(values []float64) []float64 {
	out := nanSlice(len(values))
	for i := 1; i < len(values); i++ {
		out[i] = values[i] - values[i-1]
	}
	return out
}

// pctChange computes (v_t - v_{t-1}) / v_{t-1}; the first position is
// NaN. Division follows IEEE semantics, so a zero previous value yields
// an infinity that survives until input preparation.
func pctChange(values []float64) []float64 {
	out := nanSlice(len(values))
	for i := 1; i < len(values); i++ {
		out[i] = (values[i] - values[i-1]) / values[i-1]
	}
	return out
}

// shift delays a series by n positions, filling the head with NaN.
func shift(values []float64, n int) []float64 {
	out := nanSlice(len(values))
	for i := n; i < len(values); i++ {
		out[i] = values[i-n]
	}
	return out
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
