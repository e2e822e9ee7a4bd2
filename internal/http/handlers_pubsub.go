package http

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/crease/internal/apperr"
	"github.com/mauv0809/crease/internal/match"
	"github.com/mauv0809/crease/internal/pubsub"
)

// decodePush unwraps a Pub/Sub push delivery into a match event.
func (s *Server) decodePush(w http.ResponseWriter, r *http.Request) (*pubsub.MatchEvent, error) {
	var envelope pushEnvelope
	if err := decodeJSON(w, r, &envelope); err != nil {
		return nil, err
	}
	data, err := base64.StdEncoding.DecodeString(envelope.Message.Data)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "Invalid message data", err)
	}

	var event pubsub.MatchEvent
	if err := s.pubsub.ProcessMessage(data, &event); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "Invalid match event", err)
	}
	if event.MatchID == "" {
		return nil, apperr.Validation("match_id is required")
	}
	log.Debug("Received push message", "subscription", envelope.Subscription, "messageID", envelope.Message.MessageID, "matchID", event.MatchID)
	return &event, nil
}

// MatchCompletedPushHandler posts the final scoreboard of a completed match.
// A match that no longer exists is acknowledged so the message is not retried.
func (s *Server) MatchCompletedPushHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event, err := s.decodePush(w, r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		board, err := s.Matches.Scoreboard(r.Context(), event.MatchID)
		if apperr.Is(err, apperr.KindNotFound) {
			log.Warn("Completed match not found, dropping message", "matchID", event.MatchID)
			w.WriteHeader(http.StatusOK)
			return
		}
		if err != nil {
			writeError(w, r, err)
			return
		}
		if err := s.Notifier.SendMatchResult(context.WithoutCancel(r.Context()), board, isDryRunFromContext(r)); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

// StatusChangedPushHandler announces matches going live or being cancelled.
// Completion is announced by MatchCompletedPushHandler.
func (s *Server) StatusChangedPushHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event, err := s.decodePush(w, r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if match.Status(event.Status) == match.StatusCompleted {
			w.WriteHeader(http.StatusOK)
			return
		}
		m, err := s.Matches.Get(r.Context(), event.MatchID)
		if apperr.Is(err, apperr.KindNotFound) {
			log.Warn("Match not found, dropping message", "matchID", event.MatchID)
			w.WriteHeader(http.StatusOK)
			return
		}
		if err != nil {
			writeError(w, r, err)
			return
		}
		previous := match.Status(event.PreviousStatus)
		if err := s.Notifier.SendStatusChange(context.WithoutCancel(r.Context()), m, previous, isDryRunFromContext(r)); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
