package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/crease/internal/apperr"
	"github.com/mauv0809/crease/internal/profile"
)

func (s *Server) SignupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		role, err := profile.ParseRole(req.Role)
		if err != nil {
			writeError(w, r, err)
			return
		}
		user, err := s.register(r.Context(), req, role)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"message": "User created successfully",
			"user":    user,
		})
	}
}

// register creates the identity and then its profile. When the profile write
// fails the identity is deleted again.
func (s *Server) register(ctx context.Context, req signupRequest, role profile.Role) (*registeredUser, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, apperr.Validation("Email and password are required")
	}

	user, err := s.Auth.CreateUser(ctx, email, req.Password)
	if err != nil {
		return nil, err
	}

	p := &profile.Profile{
		ID:       user.ID,
		FullName: req.FullName,
		Username: user.Email,
		Phone:    req.Phone,
		Role:     role,
	}
	if err := s.Profiles.Upsert(ctx, p); err != nil {
		log.Error("Failed to create profile, removing identity", "userID", user.ID, "error", err)
		if delErr := s.Auth.DeleteUser(context.WithoutCancel(ctx), user.ID); delErr != nil {
			log.Error("Failed to remove identity after profile error", "userID", user.ID, "error", delErr)
		}
		return nil, err
	}

	log.Info("Registered user", "userID", user.ID, "role", role)
	return &registeredUser{ID: user.ID, Email: user.Email, Role: role, FullName: req.FullName}, nil
}

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		if strings.TrimSpace(req.Email) == "" || req.Password == "" {
			writeError(w, r, apperr.Validation("Email and password are required"))
			return
		}

		user, session, err := s.Auth.SignIn(r.Context(), strings.TrimSpace(req.Email), req.Password)
		if err != nil {
			writeError(w, r, err)
			return
		}
		log.Info("User logged in", "userID", user.ID, "has_session", session != nil)

		out := loginUser{ID: user.ID, Email: user.Email, Role: profile.RoleUser}
		p, err := s.Profiles.Get(r.Context(), user.ID)
		switch {
		case err == nil:
			out.Role = p.Role
			out.FullName = p.FullName
			out.Phone = p.Phone
		case apperr.Is(err, apperr.KindNotFound):
			log.Warn("Profile missing for identity", "userID", user.ID)
		default:
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Login successful",
			"user":    out,
			"session": session,
		})
	}
}

func (s *Server) GetProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := s.Profiles.Get(r.Context(), userFromContext(r).ID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"profile": p})
	}
}

func (s *Server) UpdateProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var u profile.Update
		if err := decodeJSON(w, r, &u); err != nil {
			writeError(w, r, err)
			return
		}
		p, err := s.applyProfileUpdate(r.Context(), userFromContext(r).ID, u)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Profile updated successfully",
			"profile": p,
		})
	}
}

// applyProfileUpdate changes the identity email first so a taken address
// leaves the profile untouched.
func (s *Server) applyProfileUpdate(ctx context.Context, id string, u profile.Update) (*profile.Profile, error) {
	if u.IsEmpty() {
		return nil, apperr.Validation("No fields to update")
	}
	if u.Email != nil {
		email := strings.TrimSpace(*u.Email)
		if email == "" {
			return nil, apperr.Validation("email must not be empty")
		}
		u.Email = &email
		if err := s.Auth.UpdateEmail(ctx, id, email); err != nil {
			return nil, err
		}
	}
	return s.Profiles.Update(ctx, id, u)
}
