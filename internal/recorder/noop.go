package recorder

import "github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordPrediction(_ *model.PredictionRecord, _ model.Signal) error { return nil }
func (n *NoopRecorder) RecordEmail(_ *EmailEvent) error                                  { return nil }
func (n *NoopRecorder) Close() error                                                     { return nil }
