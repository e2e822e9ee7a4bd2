package metrics

// Metrics defines the interface for collecting application metrics.
type Metrics interface {
	IncMatchesCreated()
	IncScoreUpdates()
	IncPlayerStatUpdates()
	ObserveRequest(route string, code int, duration float64)
	IncEventsPublished(topic string)
	IncEventsFailed(topic string)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
