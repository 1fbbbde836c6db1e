// Package scheduler drives the daily prediction batch over the ticker
// registry when the monitor runs as a daemon.
package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/pipeline"
)

// Scheduler owns the cron instance and the symbols it works through.
type Scheduler struct {
	Cron     *cron.Cron
	Pipeline *pipeline.Pipeline
	Symbols  []string
}

// NewScheduler creates a scheduler for the given pipeline and symbols.
func NewScheduler(p *pipeline.Pipeline, symbols []string) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Pipeline: p,
		Symbols:  symbols,
	}
}

// Register adds the daily batch at the given cron spec (seconds field first).
func (s *Scheduler) Register(dailySpec string) error {
	if _, err := s.Cron.AddFunc(dailySpec, s.RunBatch); err != nil {
		return fmt.Errorf("register daily batch: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Int("symbols", len(s.Symbols)).Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Info().Msg("scheduler stopped")
}

// RunBatch runs the pipeline for every registry symbol in order. One
// symbol's failure never aborts the rest of the batch.
func (s *Scheduler) RunBatch() {
	start := time.Now()
	log.Info().Int("symbols", len(s.Symbols)).Msg("daily batch started")

	failed := 0
	for _, symbol := range s.Symbols {
		if _, _, err := s.Pipeline.Run(symbol); err != nil {
			failed++
		}
	}

	log.Info().
		Int("symbols", len(s.Symbols)).
		Int("failed", failed).
		Dur("elapsed", time.Since(start)).
		Msg("daily batch finished")
}
