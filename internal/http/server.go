package http

import (
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

func NewServer(authProvider auth.Provider, profiles profile.ProfileStore, locations location.LocationStore, matches match.MatchStore, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, pubsub pubsub.PubSubClient, db Pinger) *Server {
	server := &Server{
		Auth:           authProvider,
		Profiles:       profiles,
		Locations:      locations,
		Matches:        matches,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
		db:             db,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// Every route is wrapped by instrument and paramsMiddleware; extra
	// middlewares run after them, e.g. s.handle(p, h, s.requireAuth).
	umpire := []Middleware{s.requireAuth, s.requireRole(profile.RoleUmpire)}

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.handle("GET /health", s.HealthCheckHandler())

	s.handle("POST /auth/signup", s.SignupHandler())
	s.handle("POST /auth/login", s.LoginHandler())
	s.handle("GET /auth/profile", s.GetProfileHandler(), s.requireAuth)
	s.handle("PUT /auth/profile", s.UpdateProfileHandler(), s.requireAuth)

	s.handle("GET /locations", s.ListLocationsHandler(), s.requireAuth)
	s.handle("POST /locations", s.CreateLocationHandler(), s.requireAuth)

	s.handle("GET /matches", s.ListMatchesHandler())
	s.handle("POST /matches", s.CreateMatchHandler())

	s.handle("GET /players", s.ListPlayersHandler(), s.requireAuth)
	s.handle("POST /players", s.RegisterPlayerHandler(), umpire...)
	s.handle("GET /players/{playerId}", s.GetPlayerHandler(), s.requireAuth)
	s.handle("GET /players/{playerId}/stats", s.PlayerStatsHandler(), s.requireAuth)
	s.handle("PUT /players/{playerId}/profile", s.UpdatePlayerProfileHandler(), s.requireAuth)

	s.handle("POST /umpire/matches", s.UmpireCreateMatchHandler(), umpire...)
	s.handle("GET /umpire/matches", s.UmpireListMatchesHandler(), umpire...)
	s.handle("GET /umpire/matches/{matchId}", s.MatchDetailsHandler(), umpire...)
	s.handle("PUT /umpire/matches/{matchId}/score", s.UpdateScoreHandler(), umpire...)
	s.handle("PUT /umpire/matches/{matchId}/status", s.UpdateStatusHandler(), umpire...)
	s.handle("POST /umpire/matches/{matchId}/players", s.AddPlayerHandler(), umpire...)
	s.handle("DELETE /umpire/matches/{matchId}/players/{playerStatId}", s.RemovePlayerHandler(), umpire...)
	s.handle("PUT /umpire/matches/{matchId}/player-stats/{playerStatId}", s.UpdatePlayerStatHandler(), umpire...)
	s.handle("POST /umpire/matches/{matchId}/commentary", s.AddCommentaryHandler(), umpire...)
	s.handle("GET /umpire/matches/{matchId}/commentary", s.ListCommentaryHandler(), umpire...)

	s.handle("GET /user/matches", s.UserListMatchesHandler())
	s.handle("GET /user/matches/{matchId}/scoreboard", s.ScoreboardHandler())

	s.handle("POST /pubsub/match-completed", s.MatchCompletedPushHandler())
	s.handle("POST /pubsub/match-status-changed", s.StatusChangedPushHandler())

	s.Router.Handle("/", s.NotFoundHandler())
}

func (s *Server) handle(pattern string, h http.Handler, middlewares ...Middleware) {
	chain := append([]Middleware{s.instrument(pattern), paramsMiddleware}, middlewares...)
	s.Router.Handle(pattern, Chain(h, chain...))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
