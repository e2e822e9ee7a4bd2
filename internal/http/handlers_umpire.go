package http

import (
	"net/http"
	"strings"

	"github.com/mauv0809/crease/internal/apperr"
	"github.com/mauv0809/crease/internal/match"
	"github.com/mauv0809/crease/internal/pubsub"
)

func (s *Server) UpdateScoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.PathValue("matchId")
		var u match.ScoreUpdate
		if err := decodeJSON(w, r, &u); err != nil {
			writeError(w, r, err)
			return
		}
		score, err := s.Matches.UpdateScore(r.Context(), matchID, u)
		if err != nil {
			writeError(w, r, err)
			return
		}
		s.Metrics.IncScoreUpdates()
		s.publish(r.Context(), pubsub.EventScoreUpdated, scoreEvent(score))

		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Score updated successfully",
			"score":   score,
		})
	}
}

func (s *Server) UpdateStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.PathValue("matchId")
		var req statusRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		if strings.TrimSpace(req.Status) == "" {
			writeError(w, r, apperr.Validation("status is required"))
			return
		}
		next, err := match.ParseStatus(req.Status)
		if err != nil {
			writeError(w, r, err)
			return
		}

		updated, previous, err := s.Matches.UpdateStatus(r.Context(), matchID, next)
		if err != nil {
			writeError(w, r, err)
			return
		}

		// Only the request that moved the match publishes.
		if previous != updated.Status {
			s.publish(r.Context(), pubsub.EventStatusChanged, statusEvent(updated, previous))
			if updated.Status == match.StatusCompleted {
				s.publish(r.Context(), pubsub.EventMatchCompleted, statusEvent(updated, previous))
			}
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Match status updated successfully",
			"match":   updated,
		})
	}
}

func (s *Server) AddPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.PathValue("matchId")
		var in match.AddPlayerInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, err)
			return
		}
		stat, err := s.Matches.AddPlayer(r.Context(), matchID, in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"message":    "Player added to match successfully",
			"playerStat": stat.Enrich(),
		})
	}
}

func (s *Server) RemovePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID, statID := r.PathValue("matchId"), r.PathValue("playerStatId")
		if err := s.Matches.RemovePlayer(r.Context(), matchID, statID); err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "Player removed from match successfully"})
	}
}

func (s *Server) UpdatePlayerStatHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID, statID := r.PathValue("matchId"), r.PathValue("playerStatId")
		var u match.StatUpdate
		if err := decodeJSON(w, r, &u); err != nil {
			writeError(w, r, err)
			return
		}
		stat, err := s.Matches.UpdatePlayerStat(r.Context(), matchID, statID, u)
		if err != nil {
			writeError(w, r, err)
			return
		}
		s.Metrics.IncPlayerStatUpdates()
		writeJSON(w, http.StatusOK, map[string]any{
			"message":    "Player stats updated successfully",
			"playerStat": stat,
		})
	}
}

func (s *Server) AddCommentaryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.PathValue("matchId")
		var in match.CommentaryInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, err)
			return
		}
		in.AuthorID = userFromContext(r).ID
		c, err := s.Matches.AddCommentary(r.Context(), matchID, in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"message":    "Commentary added successfully",
			"commentary": c,
		})
	}
}

func (s *Server) ListCommentaryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := s.Matches.ListCommentary(r.Context(), r.PathValue("matchId"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"commentary": entries})
	}
}
