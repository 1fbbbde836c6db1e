// Package pipeline runs one end-to-end prediction cycle for a symbol:
// fetch bars, compute indicators, predict, journal, classify, notify.
package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/collector"
	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/config"
	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/indicator"
	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/journal"
	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/metrics"
	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/model"
	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/notifier"
	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/predictor"
	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/recorder"
	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/signal"
	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/subscriber"
)

// Pipeline wires the collaborators for prediction runs. One instance serves
// both the one-shot CLI path and the cron daemon.
type Pipeline struct {
	cfg      *config.Config
	fetcher  collector.Fetcher
	journal  *journal.Journal
	store    *subscriber.Store
	mailer   *notifier.Mailer
	recorder recorder.Recorder
}

// New assembles a pipeline from its collaborators.
func New(cfg *config.Config, fetcher collector.Fetcher, jnl *journal.Journal, store *subscriber.Store, mailer *notifier.Mailer, rec recorder.Recorder) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		fetcher:  fetcher,
		journal:  jnl,
		store:    store,
		mailer:   mailer,
		recorder: rec,
	}
}

// Run executes one prediction cycle for symbol. Fetch, indicator, model and
// journal failures abort the run; recorder and email failures only warn.
// There are no retries; rescheduling is the caller's concern.
func (p *Pipeline) Run(symbol string) (*model.PredictionRecord, model.Signal, error) {
	start := time.Now()
	logger := log.With().Str("run_id", uuid.NewString()).Str("symbol", symbol).Logger()

	rec, sig, err := p.run(symbol, logger)

	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.PipelineRuns.WithLabelValues(symbol, status).Inc()
	metrics.PipelineDuration.WithLabelValues(symbol).Observe(time.Since(start).Seconds())

	if err != nil {
		logger.Error().Err(err).Msg("pipeline failed")
		return nil, "", err
	}
	logger.Info().
		Float64("current", rec.CurrentPrice).
		Float64("predicted", rec.PredictedPrice).
		Float64("change_pct", rec.PriceChangePct).
		Str("signal", string(sig)).
		Dur("elapsed", time.Since(start)).
		Msg("pipeline completed")
	return rec, sig, nil
}

func (p *Pipeline) run(symbol string, logger zerolog.Logger) (*model.PredictionRecord, model.Signal, error) {
	info, ok := p.cfg.Lookup(symbol)
	if !ok {
		return nil, "", fmt.Errorf("unknown ticker %q", symbol)
	}

	arts, err := predictor.Load(p.cfg.Paths.ModelsDir, symbol)
	if err != nil {
		return nil, "", err
	}
	logger.Info().
		Str("model", arts.Meta.ModelName).
		Float64("test_rmse", arts.Meta.TestRMSE).
		Int("features", len(arts.Meta.Features)).
		Msg("model loaded")

	bars, err := p.fetcher.FetchDailyBars(symbol, p.cfg.Data.FetchDays)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s bars: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, "", fmt.Errorf("fetch %s bars: %w", symbol, collector.ErrNoData)
	}
	logger.Info().Int("bars", len(bars)).Str("provider", p.fetcher.Name()).Msg("market data fetched")

	frame, err := indicator.Compute(bars)
	if err != nil {
		return nil, "", err
	}

	input, raw, err := predictor.PrepareInput(frame, arts.Meta.Features, arts.Scaler)
	if err != nil {
		return nil, "", err
	}

	predicted, err := arts.Model.Predict(input)
	if err != nil {
		return nil, "", fmt.Errorf("predict %s: %w", symbol, err)
	}

	// Current price is the last close of the raw series, not of the dense
	// feature table, so a trailing warm-up row cannot shift it.
	currentPrice := bars[len(bars)-1].Close

	rec, err := journal.NewRecord(time.Now(), info, currentPrice, predicted, raw)
	if err != nil {
		return nil, "", err
	}
	if err := p.journal.Append(rec); err != nil {
		return nil, "", fmt.Errorf("append journal: %w", err)
	}

	sig := signal.Classify(rec.PriceChangePct, rec.RSI)

	if err := p.recorder.RecordPrediction(rec, sig); err != nil {
		logger.Warn().Err(err).Msg("recorder write failed")
	}
	metrics.PredictedChangePct.WithLabelValues(symbol).Set(rec.PriceChangePct)

	p.notify(symbol, rec, logger)

	return rec, sig, nil
}

// notify emails the symbol's subscribers. Failures never propagate.
func (p *Pipeline) notify(symbol string, rec *model.PredictionRecord, logger zerolog.Logger) {
	recipients := p.store.Subscribers(symbol)
	sent, err := p.mailer.Send(rec, recipients)
	if err != nil {
		logger.Warn().Err(err).Int("sent", sent).Msg("email delivery incomplete")
	}
	if sent > 0 {
		metrics.EmailsSent.WithLabelValues(symbol).Add(float64(sent))
		logger.Info().Int("sent", sent).Msg("alert emails sent")
	}
	if len(recipients) == 0 {
		return
	}

	evt := &recorder.EmailEvent{Ticker: symbol, Recipients: len(recipients), Sent: sent}
	if err != nil {
		evt.Err = err.Error()
	}
	if rerr := p.recorder.RecordEmail(evt); rerr != nil {
		logger.Warn().Err(rerr).Msg("recorder write failed")
	}
}
