package http

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/crease/internal/match"
	"github.com/mauv0809/crease/internal/pubsub"
)

const publishTimeout = 5 * time.Second

// publish sends a match event. Failures are logged and counted but never
// reach the caller, the store write has already happened.
func (s *Server) publish(ctx context.Context, topic pubsub.EventType, event pubsub.MatchEvent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.pubsub.SendMessage(ctx, topic, event); err != nil {
		s.Metrics.IncEventsFailed(string(topic))
		log.Error("Failed to publish match event", "topic", topic, "matchID", event.MatchID, "error", err)
		return
	}
	s.Metrics.IncEventsPublished(string(topic))
}

func scoreEvent(score *match.ScoreView) pubsub.MatchEvent {
	return pubsub.MatchEvent{
		MatchID:      score.MatchID,
		TeamAScore:   score.TeamAScore,
		TeamAWickets: score.TeamAWickets,
		TeamAOvers:   score.TeamAOvers,
		TeamBScore:   score.TeamBScore,
		TeamBWickets: score.TeamBWickets,
		TeamBOvers:   score.TeamBOvers,
		OccurredAt:   time.Now().UTC(),
	}
}

func statusEvent(m *match.Match, previous match.Status) pubsub.MatchEvent {
	return pubsub.MatchEvent{
		MatchID:        m.ID,
		Status:         string(m.Status),
		PreviousStatus: string(previous),
		OccurredAt:     time.Now().UTC(),
	}
}
