// Package metrics holds the Prometheus instruments shared by the monitor
// pipeline and the dashboard.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PipelineRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "monitor_pipeline_runs_total",
		Help: "Total pipeline runs by symbol and outcome",
	}, []string{"symbol", "status"})

	PipelineDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "monitor_pipeline_duration_seconds",
		Help: "Wall-clock duration of one pipeline run",
	}, []string{"symbol"})

	PredictedChangePct = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "monitor_predicted_change_pct",
		Help: "Latest predicted next-day price change percentage",
	}, []string{"symbol"})

	EmailsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "monitor_emails_sent_total",
		Help: "Total alert emails delivered",
	}, []string{"symbol"})

	DashboardRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_requests_total",
		Help: "Total dashboard HTTP requests by path and status code",
	}, []string{"path", "code"})
)
