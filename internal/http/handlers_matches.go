package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mauv0809/crease/internal/apperr"
	"github.com/mauv0809/crease/internal/match"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.Matches.List(r.Context(), match.ListFilter{Limit: defaultListLimit})
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"matches": matches})
	}
}

func (s *Server) CreateMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createMatchRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		overs, err := oversFrom(req.Overs)
		if err != nil {
			writeError(w, r, err)
			return
		}
		s.createMatch(w, r, match.CreateInput{
			TeamAName: req.TeamAName,
			TeamBName: req.TeamBName,
			VenueID:   strings.TrimSpace(req.Venue),
			Overs:     overs,
		})
	}
}

func (s *Server) UmpireCreateMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req umpireCreateMatchRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		overs, err := oversFrom(req.Overs)
		if err != nil {
			writeError(w, r, err)
			return
		}
		start, err := parseDate(req.Date)
		if err != nil {
			writeError(w, r, err)
			return
		}
		var status match.Status
		if req.Status != "" {
			if status, err = match.ParseStatus(req.Status); err != nil {
				writeError(w, r, err)
				return
			}
		}
		s.createMatch(w, r, match.CreateInput{
			TeamAName:    req.TeamAName,
			TeamBName:    req.TeamBName,
			VenueID:      strings.TrimSpace(req.LocationID),
			LocationName: req.LocationName,
			Overs:        overs,
			StartDate:    start,
			Status:       status,
			CreatedBy:    userFromContext(r).ID,
		})
	}
}

func (s *Server) createMatch(w http.ResponseWriter, r *http.Request, in match.CreateInput) {
	id, err := s.Matches.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.Metrics.IncMatchesCreated()
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Match created successfully",
		"matchId": id,
	})
}

func (s *Server) UmpireListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.Matches.List(r.Context(), match.ListFilter{CreatedBy: userFromContext(r).ID})
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"matches": matches})
	}
}

func (s *Server) UserListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter match.ListFilter
		q := r.URL.Query()
		if raw := q.Get("status"); raw != "" {
			status, err := match.ParseStatus(raw)
			if err != nil {
				writeError(w, r, err)
				return
			}
			filter.Status = status
		}
		limit, err := parseLimit(q.Get("limit"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		filter.Limit = limit

		matches, err := s.Matches.List(r.Context(), filter)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"matches": matches})
	}
}

// MatchDetailsHandler serves the umpire view of a match, which is its scoreboard.
func (s *Server) MatchDetailsHandler() http.HandlerFunc {
	return s.ScoreboardHandler()
}

func (s *Server) ScoreboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, err := s.Matches.Scoreboard(r.Context(), r.PathValue("matchId"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"match": board})
	}
}

func oversFrom(raw *int) (int, error) {
	if raw == nil {
		return 0, nil
	}
	if *raw <= 0 {
		return 0, apperr.Validation("overs must be positive")
	}
	return *raw, nil
}

// parseDate accepts RFC 3339 timestamps and plain dates. Empty means now.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	return time.Time{}, apperr.Validation("date must be YYYY-MM-DD or RFC 3339")
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return defaultListLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, apperr.Validation("limit must be a positive integer")
	}
	return min(n, maxListLimit), nil
}
