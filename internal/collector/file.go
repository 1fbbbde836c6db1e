package collector

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/model"
)

// FileFetcher implements Fetcher from per-symbol CSV files on disk, for
// offline runs and backtests. Each file is {dir}/{SYMBOL}.csv with columns
// date,open,high,low,close,volume and dates formatted 2006-01-02.
type FileFetcher struct {
	Dir string
}

// NewFileFetcher creates a fetcher reading bar files from dir.
func NewFileFetcher(dir string) *FileFetcher {
	return &FileFetcher{Dir: dir}
}

func (f *FileFetcher) Name() string { return "csv" }

func (f *FileFetcher) FetchDailyBars(symbol string, days int) ([]model.OHLCV, error) {
	path := filepath.Join(f.Dir, symbol+".csv")
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bar file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read bar file %s: %w", path, err)
	}

	bars := make([]model.OHLCV, 0, len(rows))
	for i, row := range rows {
		if i == 0 && strings.EqualFold(row[0], "date") {
			continue // header row
		}
		if len(row) != 6 {
			return nil, fmt.Errorf("bar file %s row %d: want 6 fields, got %d", path, i+1, len(row))
		}
		bar, err := parseBarRow(row)
		if err != nil {
			return nil, fmt.Errorf("bar file %s row %d: %w", path, i+1, err)
		}
		bars = append(bars, bar)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("csv %s: %w", symbol, ErrNoData)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

func parseBarRow(row []string) (model.OHLCV, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(row[0]))
	if err != nil {
		return model.OHLCV{}, fmt.Errorf("parse date: %w", err)
	}
	vals := make([]float64, 5)
	for i := 1; i < 6; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
		if err != nil {
			return model.OHLCV{}, fmt.Errorf("parse field %d: %w", i+1, err)
		}
		vals[i-1] = v
	}
	return model.OHLCV{
		Time:   t,
		Open:   vals[0],
		High:   vals[1],
		Low:    vals[2],
		Close:  vals[3],
		Volume: vals[4],
	}, nil
}
