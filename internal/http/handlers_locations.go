package http

import (
	"net/http"

	"github.com/mauv0809/crease/internal/location"
)

func (s *Server) ListLocationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locations, err := s.Locations.List(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"locations": locations})
	}
}

// CreateLocationHandler returns the existing location with 200 when the name
// is already known, otherwise 201.
func (s *Server) CreateLocationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in location.CreateInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, err)
			return
		}
		loc, created, err := s.Locations.Ensure(r.Context(), in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if !created {
			writeJSON(w, http.StatusOK, map[string]any{
				"message":  "Location already exists",
				"location": loc,
			})
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"message":  "Location created successfully",
			"location": loc,
		})
	}
}
