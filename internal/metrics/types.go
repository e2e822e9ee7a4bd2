package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	MatchesCreated     prometheus.Counter
	ScoreUpdates       prometheus.Counter
	PlayerStatUpdates  prometheus.Counter
	Requests           *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	EventsPublished    *prometheus.CounterVec
	EventsFailed       *prometheus.CounterVec
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
