package http

import (
	"net/http"

	"github.com/mauv0809/crease/internal/apperr"
	"github.com/mauv0809/crease/internal/profile"
	"github.com/mauv0809/crease/internal/scoring"
)

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Profiles.ListPlayers(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"players": players})
	}
}

// RegisterPlayerHandler creates an account with the player role.
func (s *Server) RegisterPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		user, err := s.register(r.Context(), req, profile.RolePlayer)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"message": "Player registered successfully",
			"player":  user,
		})
	}
}

func (s *Server) GetPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := s.Profiles.GetPlayer(r.Context(), r.PathValue("playerId"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"player": p})
	}
}

// PlayerStatsHandler returns career batting and bowling totals together with
// every per-match line they were computed from.
func (s *Server) PlayerStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := s.Profiles.GetPlayer(r.Context(), r.PathValue("playerId"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		stats, err := s.Matches.PlayerStats(r.Context(), p.ID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		lines := make([]scoring.StatLine, len(stats))
		for i, st := range stats {
			lines[i] = st.StatLine
		}
		batting, bowling := scoring.Accumulate(lines)

		writeJSON(w, http.StatusOK, map[string]any{
			"player": map[string]any{
				"id":   p.ID,
				"name": p.FullName,
			},
			"batting":    batting,
			"bowling":    bowling,
			"matchStats": stats,
		})
	}
}

// UpdatePlayerProfileHandler lets a player edit their own profile. Umpires
// may edit any player.
func (s *Server) UpdatePlayerProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := userFromContext(r)
		playerID := r.PathValue("playerId")

		if caller.ID != playerID {
			role, err := s.Profiles.Role(r.Context(), caller.ID)
			if err != nil && !apperr.Is(err, apperr.KindNotFound) {
				writeError(w, r, err)
				return
			}
			if role != profile.RoleUmpire {
				writeError(w, r, apperr.Forbidden("Insufficient permissions"))
				return
			}
		}

		if _, err := s.Profiles.GetPlayer(r.Context(), playerID); err != nil {
			writeError(w, r, err)
			return
		}

		var u profile.Update
		if err := decodeJSON(w, r, &u); err != nil {
			writeError(w, r, err)
			return
		}
		p, err := s.applyProfileUpdate(r.Context(), playerID, u)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Player profile updated successfully",
			"player":  p,
		})
	}
}
