package indicator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/model"
)

// alternatingBars builds n daily bars whose close goes +2, -1, +2, -1
// so every RSI window sees both gains and losses. Closes follow
// c[2k] = 100+k, c[2k+1] = 102+k; volume ramps 1000, 1010, 1020, ...
func alternatingBars(n int) []model.OHLCV {
	bars := make([]model.OHLCV, n)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	price := 100.0
	for i := 0; i < n; i++ {
		if i > 0 {
			if i%2 == 1 {
				price += 2
			} else {
				price -= 1
			}
		}
		bars[i] = model.OHLCV{
			Time:   start.AddDate(0, 0, i),
			Open:   price - 0.5,
			High:   price + 1,
			Low:    price - 1.5,
			Close:  price,
			Volume: 1000 + 10*float64(i),
		}
	}
	return bars
}

func TestComputeDenseTable(t *testing.T) {
	bars := alternatingBars(60)

	f, err := Compute(bars)
	require.NoError(t, err)

	// MA_50 has the longest warm-up: rows 49..59 survive.
	assert.Equal(t, 11, f.Len())
	assert.Len(t, f.Columns(), 33)
	assert.True(t, f.Date(f.Len()-1).Equal(bars[59].Time))
	assert.True(t, f.Date(0).Equal(bars[49].Time))

	for _, name := range f.Columns() {
		vals, ok := f.Column(name)
		require.True(t, ok)
		for i, v := range vals {
			assert.False(t, math.IsNaN(v), "column %s row %d is NaN", name, i)
		}
	}

	last := f.Len() - 1
	get := func(name string) float64 {
		v, ok := f.Value(name, last)
		require.True(t, ok, "missing column %s", name)
		return v
	}

	assert.InDelta(t, 131.0, get("Close"), 1e-9)
	assert.InDelta(t, 129.4, get("MA_5"), 1e-9)
	assert.InDelta(t, 118.0, get("MA_50"), 1e-9)

	// Alternating +2/-1 gives a full window of 7 gains and 7 losses:
	// RS = 2, RSI = 100 - 100/3.
	assert.InDelta(t, 100.0-100.0/3.0, get("RSI"), 1e-9)

	assert.InDelta(t, 2.5, get("Price_Range"), 1e-9)
	assert.InDelta(t, 0.5, get("Price_Change"), 1e-9)
	assert.InDelta(t, 1570.0, get("Volume_MA_5"), 1e-9)
	assert.InDelta(t, 1590.0/1570.0, get("Volume_Ratio"), 1e-9)
	assert.InDelta(t, 2.0/129.0, get("Daily_Return"), 1e-9)

	assert.InDelta(t, 129.0, get("Close_Lag_1"), 1e-9)
	assert.InDelta(t, 126.0, get("Close_Lag_7"), 1e-9)
	assert.InDelta(t, 1520.0, get("Volume_Lag_7"), 1e-9)

	assert.InDelta(t, get("MA_20"), get("BB_Middle"), 1e-12)
	assert.Greater(t, get("BB_Upper"), get("BB_Middle"))
	assert.Less(t, get("BB_Lower"), get("BB_Middle"))

	assert.InDelta(t, get("EMA_12")-get("EMA_26"), get("MACD"), 1e-12)
}

func TestComputeWarmupBoundary(t *testing.T) {
	f, err := Compute(alternatingBars(50))
	require.NoError(t, err)
	assert.Equal(t, 1, f.Len())
	assert.True(t, f.Date(0).Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 49)))

	_, err = Compute(alternatingBars(49))
	assert.ErrorIs(t, err, ErrInsufficientHistory)
}

func TestComputeEmptyInput(t *testing.T) {
	_, err := Compute(nil)
	assert.ErrorIs(t, err, ErrInsufficientHistory)
}

func TestComputeMonotonicRiseLeavesRSIUndefined(t *testing.T) {
	bars := alternatingBars(60)
	for i := range bars {
		bars[i].Close = 100 + float64(i)
		bars[i].Open = bars[i].Close - 0.5
		bars[i].High = bars[i].Close + 1
		bars[i].Low = bars[i].Close - 1.5
	}

	// Every 14-bar window has zero loss mean, so RSI is undefined in
	// every row and the dense filter empties the table.
	_, err := Compute(bars)
	assert.ErrorIs(t, err, ErrInsufficientHistory)
}

func TestRSIValues(t *testing.T) {
	bars := alternatingBars(60)
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}

	vals := rsi(closes, 14)

	for i := 0; i < 13; i++ {
		assert.True(t, math.IsNaN(vals[i]), "row %d should be warming up", i)
	}
	// First defined window: the leading NaN delta counts as zero, so
	// 7 gains of 2 against 6 losses of 1: RSI = 100 - 100/(1+14/6).
	assert.InDelta(t, 70.0, vals[13], 1e-9)
	assert.InDelta(t, 100.0-100.0/3.0, vals[14], 1e-9)

	for i := 13; i < len(vals); i++ {
		assert.GreaterOrEqual(t, vals[i], 0.0)
		assert.LessOrEqual(t, vals[i], 100.0)
	}
}

func TestRSIUndefinedOnZeroLossMean(t *testing.T) {
	// Rise for 20 bars, then flat: once a window holds no losses the
	// loss mean is zero and RSI must be undefined, not 100.
	closes := make([]float64, 40)
	for i := range closes {
		if i < 20 {
			closes[i] = 100 + float64(i)
		} else {
			closes[i] = 119
		}
	}

	vals := rsi(closes, 14)
	for i := 13; i < len(vals); i++ {
		assert.True(t, math.IsNaN(vals[i]), "row %d: zero loss mean should leave RSI undefined", i)
	}
}

func TestEMA(t *testing.T) {
	t.Run("seeded with first value", func(t *testing.T) {
		// span 3 gives alpha 0.5: 2, 0.5*4+0.5*2=3, 0.5*8+0.5*3=5.5
		got := ema([]float64{2, 4, 8}, 3)
		assert.Equal(t, []float64{2, 3, 5.5}, got)
	})

	t.Run("constant series stays constant", func(t *testing.T) {
		vals := make([]float64, 80)
		for i := range vals {
			vals[i] = 42.5
		}
		got := ema(vals, 12)
		for i, v := range got {
			assert.InDelta(t, 42.5, v, 1e-12, "position %d", i)
		}
	})
}

func TestRollingPrimitives(t *testing.T) {
	t.Run("rollingMean", func(t *testing.T) {
		got := rollingMean([]float64{1, 2, 3, 4, 5}, 3)
		assert.True(t, math.IsNaN(got[0]))
		assert.True(t, math.IsNaN(got[1]))
		assert.InDelta(t, 2.0, got[2], 1e-12)
		assert.InDelta(t, 3.0, got[3], 1e-12)
		assert.InDelta(t, 4.0, got[4], 1e-12)
	})

	t.Run("rollingMean propagates NaN inside window", func(t *testing.T) {
		got := rollingMean([]float64{1, math.NaN(), 3, 4, 5}, 3)
		assert.True(t, math.IsNaN(got[2]))
		assert.True(t, math.IsNaN(got[3]))
		assert.InDelta(t, 4.0, got[4], 1e-12)
	})

	t.Run("rollingStd is sample stddev", func(t *testing.T) {
		got := rollingStd([]float64{1, 2, 3, 4, 5}, 5)
		// variance of 1..5 with ddof=1 is 2.5
		assert.InDelta(t, math.Sqrt(2.5), got[4], 1e-12)
	})

	t.Run("diff", func(t *testing.T) {
		got := diff([]float64{3, 5, 4})
		assert.True(t, math.IsNaN(got[0]))
		assert.Equal(t, 2.0, got[1])
		assert.Equal(t, -1.0, got[2])
	})

	t.Run("pctChange", func(t *testing.T) {
		got := pctChange([]float64{100, 102, 51})
		assert.True(t, math.IsNaN(got[0]))
		assert.InDelta(t, 0.02, got[1], 1e-12)
		assert.InDelta(t, -0.5, got[2], 1e-12)
	})

	t.Run("pctChange over zero is infinite", func(t *testing.T) {
		got := pctChange([]float64{0, 5})
		assert.True(t, math.IsInf(got[1], 1))
	})

	t.Run("shift", func(t *testing.T) {
		got := shift([]float64{1, 2, 3, 4}, 2)
		assert.True(t, math.IsNaN(got[0]))
		assert.True(t, math.IsNaN(got[1]))
		assert.Equal(t, 1.0, got[2])
		assert.Equal(t, 2.0, got[3])
	})
}

func TestDropNaNRowsKeepsInfinities(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	f := newFrame([]time.Time{start, start.AddDate(0, 0, 1), start.AddDate(0, 0, 2)})
	f.add("A", []float64{1, 2, 3})
	f.add("B", []float64{10, math.NaN(), math.Inf(1)})

	got := f.dropNaNRows()
	require.Equal(t, 2, got.Len())
	assert.True(t, got.Date(0).Equal(start))
	assert.True(t, got.Date(1).Equal(start.AddDate(0, 0, 2)))

	b, _ := got.Column("B")
	assert.Equal(t, 10.0, b[0])
	assert.True(t, math.IsInf(b[1], 1))
}
