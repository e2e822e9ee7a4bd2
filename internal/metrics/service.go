package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		MatchesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crease_matches_created_total",
			Help: "The total number of matches created.",
		}),
		ScoreUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crease_score_updates_total",
			Help: "The total number of successful match score updates.",
		}),
		PlayerStatUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crease_player_stat_updates_total",
			Help: "The total number of successful player stat updates.",
		}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crease_http_requests_total",
			Help: "HTTP requests by route pattern and status code.",
		}, []string{"route", "code"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "crease_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"route"}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crease_events_published_total",
			Help: "Match events published, by topic.",
		}, []string{"topic"}),
		EventsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crease_events_failed_total",
			Help: "Match events that failed to publish, by topic.",
		}, []string{"topic"}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crease_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crease_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "crease_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MatchesCreated,
		s.ScoreUpdates,
		s.PlayerStatUpdates,
		s.Requests,
		s.RequestDuration,
		s.EventsPublished,
		s.EventsFailed,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMatchesCreated() {
	s.MatchesCreated.Inc()
}

func (s *Service) IncScoreUpdates() {
	s.ScoreUpdates.Inc()
}

func (s *Service) IncPlayerStatUpdates() {
	s.PlayerStatUpdates.Inc()
}

func (s *Service) ObserveRequest(route string, code int, duration float64) {
	s.Requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	s.RequestDuration.WithLabelValues(route).Observe(duration)
}

func (s *Service) IncEventsPublished(topic string) {
	s.EventsPublished.WithLabelValues(topic).Inc()
}

func (s *Service) IncEventsFailed(topic string) {
	s.EventsFailed.WithLabelValues(topic).Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
