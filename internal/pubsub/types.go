package pubsub

import (
	"time"

	"cloud.google.com/go/pubsub"
)

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType is the topic a match event is published on.
type EventType string

const (
	EventScoreUpdated   EventType = "match-score-updated"
	EventStatusChanged  EventType = "match-status-changed"
	EventMatchCompleted EventType = "match-completed"
)

// MatchEvent is the payload of every match topic.
type MatchEvent struct {
	MatchID        string    `msgpack:"match_id"`
	Status         string    `msgpack:"status,omitempty"`
	PreviousStatus string    `msgpack:"previous_status,omitempty"`
	TeamAScore     int       `msgpack:"team_a_score"`
	TeamAWickets   int       `msgpack:"team_a_wkts"`
	TeamAOvers     float64   `msgpack:"team_a_overs"`
	TeamBScore     int       `msgpack:"team_b_score"`
	TeamBWickets   int       `msgpack:"team_b_wkts"`
	TeamBOvers     float64   `msgpack:"team_b_overs"`
	OccurredAt     time.Time `msgpack:"occurred_at"`
}
