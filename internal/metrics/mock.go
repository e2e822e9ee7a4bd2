package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                sync.Mutex
	matchesCreated    int
	scoreUpdates      int
	playerStatUpdates int
	requests          map[string]int
	eventsPublished   map[string]int
	eventsFailed      map[string]int
	slackNotifSent    int
	slackNotifFailed  int
	startupTime       float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		requests:        make(map[string]int),
		eventsPublished: make(map[string]int),
		eventsFailed:    make(map[string]int),
	}
}

func (m *Mock) IncMatchesCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesCreated++
}

func (m *Mock) IncScoreUpdates() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scoreUpdates++
}

func (m *Mock) IncPlayerStatUpdates() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playerStatUpdates++
}

func (m *Mock) ObserveRequest(route string, code int, duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[route]++
}

func (m *Mock) IncEventsPublished(topic string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsPublished[topic]++
}

func (m *Mock) IncEventsFailed(topic string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsFailed[topic]++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MatchesCreated returns the number of times IncMatchesCreated was called.
func (m *Mock) MatchesCreated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesCreated
}

// ScoreUpdates returns the number of times IncScoreUpdates was called.
func (m *Mock) ScoreUpdates() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scoreUpdates
}

// PlayerStatUpdates returns the number of times IncPlayerStatUpdates was called.
func (m *Mock) PlayerStatUpdates() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playerStatUpdates
}

// Requests returns how many requests were observed for route.
func (m *Mock) Requests(route string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[route]
}

// EventsPublished returns how many events were published on topic.
func (m *Mock) EventsPublished(topic string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsPublished[topic]
}

// EventsFailed returns how many events failed to publish on topic.
func (m *Mock) EventsFailed(topic string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsFailed[topic]
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// StartupTime returns the last value passed to SetStartupTime.
func (m *Mock) StartupTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startupTime
}
