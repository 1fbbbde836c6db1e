package recorder

import "github.com/MUSBAUDEEN-OPS/Automation-project-Market-price-prediction/internal/model"

// EmailEvent records one alert delivery attempt for a symbol.
type EmailEvent struct {
	Ticker     string
	Recipients int
	Sent       int
	Err        string
}

// Recorder mirrors pipeline events into a queryable store for analysis.
// The JSON-lines journal stays authoritative; recorder failures are
// reported but never abort a run.
type Recorder interface {
	RecordPrediction(rec *model.PredictionRecord, signal model.Signal) error
	RecordEmail(evt *EmailEvent) error
	Close() error
}
