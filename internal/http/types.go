package http

import (
	"context"
	"net/http"

	"github.com/mauv0809/crease/internal/auth"
	"github.com/mauv0809/crease/internal/config"
	"github.com/mauv0809/crease/internal/location"
	"github.com/mauv0809/crease/internal/match"
	"github.com/mauv0809/crease/internal/metrics"
	"github.com/mauv0809/crease/internal/notifier"
	"github.com/mauv0809/crease/internal/profile"
	"github.com/mauv0809/crease/internal/pubsub"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	Auth           auth.Provider
	Profiles       profile.ProfileStore
	Locations      location.LocationStore
	Matches        match.MatchStore
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
	db             Pinger
}

type signupRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"fullName"`
	Role     string  `json:"role"`
	Phone    *string `json:"phone"`
}

type registeredUser struct {
	ID       string       `json:"id"`
	Email    string       `json:"email"`
	Role     profile.Role `json:"role"`
	FullName *string      `json:"fullName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginUser struct {
	ID       string       `json:"id"`
	Email    string       `json:"email"`
	Role     profile.Role `json:"role"`
	FullName *string      `json:"fullName"`
	Phone    *string      `json:"phone"`
}

type createMatchRequest struct {
	TeamAName string `json:"teamAName"`
	TeamBName string `json:"teamBName"`
	Venue     string `json:"venue"`
	Overs     *int   `json:"overs"`
}

type umpireCreateMatchRequest struct {
	TeamAName    string `json:"teamAName"`
	TeamBName    string `json:"teamBName"`
	LocationID   string `json:"locationId"`
	LocationName string `json:"locationName"`
	Overs        *int   `json:"overs"`
	Date         string `json:"date"`
	Status       string `json:"status"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// pushEnvelope is the body of a Pub/Sub push delivery.
type pushEnvelope struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data      string `json:"data"`
		MessageID string `json:"messageId"`
	} `json:"message"`
}
