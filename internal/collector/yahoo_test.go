package collector

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chartPayload covers the shapes the chart API actually serves: parallel
// arrays, null entries for market holidays, out-of-order timestamps.
const chartPayload = `{
  "chart": {
    "result": [{
      "timestamp": [1704240000, 1704153600, 1704067200, 1704326400],
      "indicators": {
        "quote": [{
          "open":   [102,   null, 100,   103],
          "high":   [103,   null, 101,   104],
          "low":    [101,   null, 99,    102],
          "close":  [102.5, null, 100.5, 103.5],
          "volume": [1200,  null, 1000,  1300]
        }]
      }
    }],
    "error": null
  }
}`

func newTestFetcher(handler http.HandlerFunc) (*YahooFetcher, *httptest.Server) {
	srv := httptest.NewServer(handler)
	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	return f, srv
}

func TestYahooFetchDailyBars(t *testing.T) {
	f, srv := newTestFetcher(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		fmt.Fprint(w, chartPayload)
	})
	defer srv.Close()

	bars, err := f.FetchDailyBars("AAPL", 30)
	require.NoError(t, err)
	require.Len(t, bars, 3, "null bar should be dropped")

	closes := []float64{bars[0].Close, bars[1].Close, bars[2].Close}
	assert.Equal(t, []float64{100.5, 102.5, 103.5}, closes, "bars should be chronological")
	assert.Equal(t, 1000.0, bars[0].Volume)
	assert.True(t, bars[0].Time.Before(bars[1].Time))
	assert.True(t, bars[1].Time.Before(bars[2].Time))
}

func TestYahooFetchDailyBarsTrimsToDays(t *testing.T) {
	f, srv := newTestFetcher(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, chartPayload)
	})
	defer srv.Close()

	bars, err := f.FetchDailyBars("AAPL", 2)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, 102.5, bars[0].Close)
	assert.Equal(t, 103.5, bars[1].Close)
}

func TestYahooFetchDailyBarsAPIError(t *testing.T) {
	f, srv := newTestFetcher(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)
	})
	defer srv.Close()

	_, err := f.FetchDailyBars("NOPE", 30)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No data found")
}

func TestYahooFetchDailyBarsNoData(t *testing.T) {
	cases := map[string]string{
		"empty result":  `{"chart":{"result":[],"error":null}}`,
		"all null bars": `{"chart":{"result":[{"timestamp":[1704067200],"indicators":{"quote":[{"open":[null],"high":[null],"low":[null],"close":[null],"volume":[null]}]}}],"error":null}}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			f, srv := newTestFetcher(func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, payload)
			})
			defer srv.Close()

			_, err := f.FetchDailyBars("AAPL", 30)
			require.ErrorIs(t, err, ErrNoData)
		})
	}
}

func TestYahooFetchDailyBarsHTTPError(t *testing.T) {
	f, srv := newTestFetcher(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	})
	defer srv.Close()

	_, err := f.FetchDailyBars("AAPL", 30)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestYahooSymbolMapping(t *testing.T) {
	var gotPath string
	f, srv := newTestFetcher(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, chartPayload)
	})
	defer srv.Close()

	_, err := f.FetchDailyBars("BRK.B", 30)
	require.NoError(t, err)
	assert.Equal(t, "/v8/finance/chart/BRK-B", gotPath)
}

func TestRangeForDays(t *testing.T) {
	cases := []struct {
		days int
		want string
	}{
		{7, "1mo"},
		{30, "1mo"},
		{31, "3mo"},
		{150, "6mo"},
		{365, "1y"},
		{500, "2y"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, rangeForDays(tc.days), "days=%d", tc.days)
	}
}
