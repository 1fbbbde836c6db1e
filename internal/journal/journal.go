// Package journal is the persistence layer for prediction results: one
// append-only JSON-lines file per symbol, written by the pipeline and
// read back by the dashboard.
package journal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/model"
)

// ErrZeroCurrentPrice guards the percentage-change division.
var ErrZeroCurrentPrice = errors.New("current price is zero")

// Journal appends to and reads per-symbol prediction logs under dir.
type Journal struct {
	dir string
}

func New(dir string) *Journal {
	return &Journal{dir: dir}
}

// LogPath returns the log file path for a symbol.
func (j *Journal) LogPath(symbol string) string {
	return filepath.Join(j.dir, symbol+"_predictions.log")
}

// HasLog reports whether a symbol has any log file yet.
func (j *Journal) HasLog(symbol string) bool {
	_, err := os.Stat(j.LogPath(symbol))
	return err == nil
}

// NewRecord derives a prediction record from one pipeline run. raw is
// the sanitized feature row the model saw; RSI and MACD are lifted from
// it when the model's feature list includes them. All monetary and
// percentage fields are rounded to two decimals.
func NewRecord(now time.Time, info model.TickerInfo, currentPrice, predictedPrice float64, raw map[string]float64) (*model.PredictionRecord, error) {
	if currentPrice == 0 {
		return nil, ErrZeroCurrentPrice
	}

	change := predictedPrice - currentPrice
	pct := change / currentPrice * 100

	rec := &model.PredictionRecord{
		Timestamp:      model.NewTimestamp(now),
		Ticker:         info.Symbol,
		CompanyName:    info.Name,
		Sector:         info.Sector,
		CurrentPrice:   round2(currentPrice),
		PredictedPrice: round2(predictedPrice),
		PriceChange:    round2(change),
		PriceChangePct: round2(pct),
	}
	if v, ok := raw["RSI"]; ok {
		r := round2(v)
		rec.RSI = &r
	}
	if v, ok := raw["MACD"]; ok {
		m := round2(v)
		rec.MACD = &m
	}
	return rec, nil
}

// Append writes one record as a single JSON line. Existing records are
// never rewritten.
func (j *Journal) Append(rec *model.PredictionRecord) error {
	if err := os.MkdirAll(j.dir, 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode prediction: %w", err)
	}

	f, err := os.OpenFile(j.LogPath(rec.Ticker), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open prediction log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append prediction: %w", err)
	}
	return nil
}

// Read returns all records for a symbol in log order. Blank and corrupt
// lines are skipped rather than failing the whole read; a missing file
// simply means no predictions yet.
func (j *Journal) Read(symbol string) ([]model.PredictionRecord, error) {
	f, err := os.Open(j.LogPath(symbol))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open prediction log: %w", err)
	}
	defer f.Close()

	var out []model.PredictionRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec model.PredictionRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			continue
		}
		out = append(out, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan prediction log: %w", err)
	}
	return out, nil
}

// Latest returns the newest record for a symbol, or nil when there is
// none.
func (j *Journal) Latest(symbol string) (*model.PredictionRecord, error) {
	recs, err := j.Read(symbol)
	if err != nil || len(recs) == 0 {
		return nil, err
	}
	return &recs[len(recs)-1], nil
}

// Tail returns at most n newest records in log order.
func (j *Journal) Tail(symbol string, n int) ([]model.PredictionRecord, error) {
	recs, err := j.Read(symbol)
	if err != nil {
		return nil, err
	}
	if n > 0 && len(recs) > n {
		recs = recs[len(recs)-n:]
	}
	return recs, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
