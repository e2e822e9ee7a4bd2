package http

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mauv0809/crease/internal/auth"
	"github.com/mauv0809/crease/internal/config"
	"github.com/mauv0809/crease/internal/database"
	"github.com/mauv0809/crease/internal/location"
	"github.com/mauv0809/crease/internal/lookup"
	"github.com/mauv0809/crease/internal/match"
	"github.com/mauv0809/crease/internal/metrics"
	"github.com/mauv0809/crease/internal/notifier"
	"github.com/mauv0809/crease/internal/profile"
	"github.com/mauv0809/crease/internal/pubsub"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "s3cret-pass"

type testEnv struct {
	server   *Server
	metrics  *metrics.Mock
	notifier *notifier.Mock
	pubsub   *pubsub.MockPubSubClient
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()
	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err, "InitDB should not return an error")
	t.Cleanup(teardown)

	env := &testEnv{
		metrics:  metrics.NewMock(),
		notifier: notifier.NewMock(),
		pubsub:   pubsub.NewMock(),
	}
	resolver := lookup.New(db)
	env.server = NewServer(
		auth.NewLocal(db, "test-secret", time.Hour),
		profile.New(db),
		location.New(db, resolver),
		match.New(db, resolver),
		env.metrics,
		metrics.NewMetricsHandler(prometheus.NewRegistry()),
		config.Config{},
		env.notifier,
		env.pubsub,
		db,
	)
	return env
}

func doRequest(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), "body: %s", rr.Body.String())
	return out
}

// signupAndLogin registers an account with role and returns its id and token.
func signupAndLogin(t *testing.T, s *Server, email string, role profile.Role) (string, string) {
	t.Helper()
	rr := doRequest(t, s, http.MethodPost, "/auth/signup", "", map[string]any{
		"email": email, "password": testPassword, "fullName": "Test " + string(role), "role": role,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	id := decodeBody(t, rr)["user"].(map[string]any)["id"].(string)
	return id, login(t, s, email)
}

func login(t *testing.T, s *Server, email string) string {
	t.Helper()
	rr := doRequest(t, s, http.MethodPost, "/auth/login", "", map[string]any{"email": email, "password": testPassword})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return decodeBody(t, rr)["session"].(map[string]any)["access_token"].(string)
}

func createUmpireMatch(t *testing.T, s *Server, token string) string {
	t.Helper()
	rr := doRequest(t, s, http.MethodPost, "/umpire/matches", token, map[string]any{
		"teamAName": "Warriors", "teamBName": "Titans", "locationName": "Eden Park",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decodeBody(t, rr)["matchId"].(string)
}

func TestHealthCheckHandler(t *testing.T) {
	env := setupTestServer(t)

	rr := doRequest(t, env.server, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "crease", body["service"])
	assert.Equal(t, "ok", body["database"])

	env.server.db = pingFunc(func(ctx context.Context) error { return errors.New("connection refused") })
	rr = doRequest(t, env.server, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "unreachable", decodeBody(t, rr)["database"])
}

func TestUnknownRoute(t *testing.T) {
	env := setupTestServer(t)

	rr := doRequest(t, env.server, http.MethodGet, "/does-not-exist", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":{"message":"Not found"}}`, rr.Body.String())
}

func TestSignupHandler(t *testing.T) {
	env := setupTestServer(t)

	t.Run("missing password", func(t *testing.T) {
		rr := doRequest(t, env.server, http.MethodPost, "/auth/signup", "", map[string]any{"email": "a@example.com", "role": "user"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Email and password are required", decodeBody(t, rr)["message"])
	})

	t.Run("invalid role", func(t *testing.T) {
		rr := doRequest(t, env.server, http.MethodPost, "/auth/signup", "", map[string]any{
			"email": "a@example.com", "password": testPassword, "role": "captain",
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Valid role (user, player, umpire) is required", decodeBody(t, rr)["message"])
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewBufferString("{not json"))
		rr := httptest.NewRecorder()
		env.server.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid JSON body", decodeBody(t, rr)["message"])
	})

	t.Run("created then duplicate", func(t *testing.T) {
		payload := map[string]any{"email": "dup@example.com", "password": testPassword, "role": "player"}
		rr := doRequest(t, env.server, http.MethodPost, "/auth/signup", "", payload)
		require.Equal(t, http.StatusCreated, rr.Code)
		user := decodeBody(t, rr)["user"].(map[string]any)
		assert.Equal(t, "dup@example.com", user["email"])
		assert.Equal(t, "player", user["role"])

		rr = doRequest(t, env.server, http.MethodPost, "/auth/signup", "", payload)
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, "User already exists", decodeBody(t, rr)["message"])
	})
}

func TestSignupRemovesIdentityWhenProfileFails(t *testing.T) {
	authMock := auth.NewMock()
	profiles := profile.NewMock()
	profiles.UpsertFunc = func(ctx context.Context, p *profile.Profile) error {
		return errors.New("disk I/O error")
	}
	server := NewServer(authMock, profiles, location.NewMock(), match.NewMock(), metrics.NewMock(),
		metrics.NewMetricsHandler(prometheus.NewRegistry()), config.Config{}, notifier.NewMock(), pubsub.NewMock(),
		pingFunc(func(ctx context.Context) error { return nil }))

	rr := doRequest(t, server, http.MethodPost, "/auth/signup", "", map[string]any{
		"email": "a@example.com", "password": testPassword, "role": "user",
	})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "disk I/O error", decodeBody(t, rr)["error"].(map[string]any)["message"])
	assert.Equal(t, []string{"user-a@example.com"}, authMock.DeleteUserCalls)
}

func TestLoginAndProfile(t *testing.T) {
	env := setupTestServer(t)
	id, token := signupAndLogin(t, env.server, "fan@example.com", profile.RoleUser)

	rr := doRequest(t, env.server, http.MethodPost, "/auth/login", "", map[string]any{"email": "fan@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Invalid email or password", decodeBody(t, rr)["message"])

	rr = doRequest(t, env.server, http.MethodGet, "/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "No token provided", decodeBody(t, rr)["message"])

	rr = doRequest(t, env.server, http.MethodGet, "/auth/profile", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doRequest(t, env.server, http.MethodGet, "/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	p := decodeBody(t, rr)["profile"].(map[string]any)
	assert.Equal(t, id, p["id"])
	assert.Equal(t, "fan@example.com", p["username"])
	assert.Equal(t, "user", p["role"])

	rr = doRequest(t, env.server, http.MethodPut, "/auth/profile", token, map[string]any{
		"fullName": "Renamed Fan", "email": "new@example.com",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	p = decodeBody(t, rr)["profile"].(map[string]any)
	assert.Equal(t, "Renamed Fan", p["full_name"])
	assert.Equal(t, "new@example.com", p["username"])

	// The identity moved with the profile.
	assert.NotEmpty(t, login(t, env.server, "new@example.com"))

	rr = doRequest(t, env.server, http.MethodPut, "/auth/profile", token, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "No fields to update", decodeBody(t, rr)["message"])
}

func TestLocations(t *testing.T) {
	env := setupTestServer(t)
	_, token := signupAndLogin(t, env.server, "fan@example.com", profile.RoleUser)

	rr := doRequest(t, env.server, http.MethodPost, "/locations", "", map[string]any{"name": "Eden Park"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doRequest(t, env.server, http.MethodPost, "/locations", token, map[string]any{"name": "Eden Park", "city": "Auckland"})
	require.Equal(t, http.StatusCreated, rr.Code)
	created := decodeBody(t, rr)["location"].(map[string]any)

	rr = doRequest(t, env.server, http.MethodPost, "/locations", token, map[string]any{"name": "eden park"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, created["id"], decodeBody(t, rr)["location"].(map[string]any)["id"])

	rr = doRequest(t, env.server, http.MethodGet, "/locations", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeBody(t, rr)["locations"], 1)
}

func TestUmpireRoutesRequireRole(t *testing.T) {
	env := setupTestServer(t)
	_, playerToken := signupAndLogin(t, env.server, "player@example.com", profile.RolePlayer)

	rr := doRequest(t, env.server, http.MethodGet, "/umpire/matches", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doRequest(t, env.server, http.MethodGet, "/umpire/matches", playerToken, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "Insufficient permissions", decodeBody(t, rr)["message"])
}

func TestMatchLifecycle(t *testing.T) {
	env := setupTestServer(t)
	_, token := signupAndLogin(t, env.server, "umpire@example.com", profile.RoleUmpire)
	matchID := createUmpireMatch(t, env.server, token)
	assert.Equal(t, 1, env.metrics.MatchesCreated())

	// A fresh match has a zeroed score and no players.
	rr := doRequest(t, env.server, http.MethodGet, "/umpire/matches/"+matchID, token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	board := decodeBody(t, rr)["match"].(map[string]any)
	assert.Equal(t, "live", board["status"])
	assert.EqualValues(t, 20, board["overs"])
	assert.Equal(t, "Warriors", board["team_a"].(map[string]any)["name"])
	assert.Equal(t, "Eden Park", board["venue"].(map[string]any)["name"])
	score := board["score"].(map[string]any)
	assert.EqualValues(t, 0, score["team_a_score"])
	assert.EqualValues(t, 0, score["team_b_wickets"])
	assert.EqualValues(t, 0, score["team_a_run_rate"])
	assert.Empty(t, board["playerStats"])
	teamAID := board["team_a"].(map[string]any)["id"].(string)

	t.Run("players and stats", func(t *testing.T) {
		rr := doRequest(t, env.server, http.MethodPost, "/umpire/matches/"+matchID+"/players", token, map[string]any{
			"teamId": teamAID, "playerName": "Kane",
		})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		statID := decodeBody(t, rr)["playerStat"].(map[string]any)["id"].(string)

		rr = doRequest(t, env.server, http.MethodPut, "/umpire/matches/"+matchID+"/player-stats/"+statID, token, map[string]any{
			"runs": 50, "balls": 40,
		})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		stat := decodeBody(t, rr)["playerStat"].(map[string]any)
		assert.EqualValues(t, 125, stat["strike_rate"])
		assert.Nil(t, stat["economy"])
		assert.Equal(t, 1, env.metrics.PlayerStatUpdates())

		rr = doRequest(t, env.server, http.MethodPut, "/umpire/matches/"+matchID+"/player-stats/unknown", token, map[string]any{"runs": 1})
		assert.Equal(t, http.StatusNotFound, rr.Code)

		rr = doRequest(t, env.server, http.MethodGet, "/user/matches/"+matchID+"/scoreboard", "", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		board := decodeBody(t, rr)["match"].(map[string]any)
		assert.Len(t, board["team_a_stats"], 1)
		assert.Empty(t, board["team_b_stats"])

		rr = doRequest(t, env.server, http.MethodDelete, "/umpire/matches/"+matchID+"/players/"+statID, token, nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		rr = doRequest(t, env.server, http.MethodDelete, "/umpire/matches/"+matchID+"/players/"+statID, token, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("partial score update", func(t *testing.T) {
		rr := doRequest(t, env.server, http.MethodPut, "/umpire/matches/"+matchID+"/score", token, map[string]any{
			"teamAScore": 120, "teamAWkts": 3, "teamAOvers": 15,
		})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		score := decodeBody(t, rr)["score"].(map[string]any)
		assert.EqualValues(t, 8, score["team_a_run_rate"])

		rr = doRequest(t, env.server, http.MethodPut, "/umpire/matches/"+matchID+"/score", token, map[string]any{"teamBScore": 30})
		require.Equal(t, http.StatusOK, rr.Code)
		score = decodeBody(t, rr)["score"].(map[string]any)
		assert.EqualValues(t, 120, score["team_a_score"])
		assert.EqualValues(t, 3, score["team_a_wickets"])
		assert.EqualValues(t, 30, score["team_b_score"])

		rr = doRequest(t, env.server, http.MethodPut, "/umpire/matches/"+matchID+"/score", token, map[string]any{"teamAScore": -1})
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		assert.Equal(t, 2, env.metrics.ScoreUpdates())
		assert.Equal(t, 2, env.metrics.EventsPublished(string(pubsub.EventScoreUpdated)))
		assert.Equal(t, 3, env.metrics.Requests("PUT /umpire/matches/{matchId}/score"))
	})

	t.Run("commentary", func(t *testing.T) {
		rr := doRequest(t, env.server, http.MethodPost, "/umpire/matches/"+matchID+"/commentary", token, map[string]any{"text": ""})
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		rr = doRequest(t, env.server, http.MethodPost, "/umpire/matches/"+matchID+"/commentary", token, map[string]any{"over": 1.2, "text": "Four through covers"})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		rr = doRequest(t, env.server, http.MethodGet, "/umpire/matches/"+matchID+"/commentary", token, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		entries := decodeBody(t, rr)["commentary"].([]any)
		require.Len(t, entries, 1)
		assert.Equal(t, "Four through covers", entries[0].(map[string]any)["text"])
	})

	t.Run("status transitions", func(t *testing.T) {
		env.pubsub.Reset()

		rr := doRequest(t, env.server, http.MethodPut, "/umpire/matches/"+matchID+"/status", token, map[string]any{"status": "finished"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		rr = doRequest(t, env.server, http.MethodPut, "/umpire/matches/"+matchID+"/status", token, map[string]any{"status": "completed"})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, "completed", decodeBody(t, rr)["match"].(map[string]any)["status"])

		calls := env.pubsub.Calls()
		require.Len(t, calls, 2)
		assert.Equal(t, pubsub.EventStatusChanged, calls[0].Topic)
		assert.Equal(t, pubsub.EventMatchCompleted, calls[1].Topic)
		event := calls[1].Data.(pubsub.MatchEvent)
		assert.Equal(t, matchID, event.MatchID)
		assert.Equal(t, "live", event.PreviousStatus)

		rr = doRequest(t, env.server, http.MethodPut, "/umpire/matches/"+matchID+"/status", token, map[string]any{"status": "live"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		// Repeating the current status changes nothing and publishes nothing.
		rr = doRequest(t, env.server, http.MethodPut, "/umpire/matches/"+matchID+"/status", token, map[string]any{"status": "completed"})
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, env.pubsub.Calls(), 2)
	})

	rr = doRequest(t, env.server, http.MethodGet, "/umpire/matches", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeBody(t, rr)["matches"], 1)
}

func TestPublishFailureDoesNotFailRequest(t *testing.T) {
	env := setupTestServer(t)
	_, token := signupAndLogin(t, env.server, "umpire@example.com", profile.RoleUmpire)
	matchID := createUmpireMatch(t, env.server, token)
	env.pubsub.SendMessageFunc = func(topic pubsub.EventType, data any) error {
		return errors.New("topic not found")
	}

	rr := doRequest(t, env.server, http.MethodPut, "/umpire/matches/"+matchID+"/score", token, map[string]any{"teamAScore": 4})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, env.metrics.EventsFailed(string(pubsub.EventScoreUpdated)))
}

func TestStatusPublishedOnlyWhenChanged(t *testing.T) {
	authMock := auth.NewMock()
	authMock.Tokens["umpire-token"] = &auth.User{ID: "umpire-1", Email: "umpire@example.com"}
	profiles := profile.NewMock()
	profiles.Profiles["umpire-1"] = &profile.Profile{ID: "umpire-1", Username: "umpire@example.com", Role: profile.RoleUmpire}

	// Another request completed the match first; this one saw it already completed.
	matches := match.NewMock()
	matches.UpdateStatusFunc = func(ctx context.Context, matchID string, next match.Status) (*match.Match, match.Status, error) {
		return &match.Match{ID: matchID, Status: match.StatusCompleted}, match.StatusCompleted, nil
	}
	ps := pubsub.NewMock()
	server := NewServer(authMock, profiles, location.NewMock(), matches, metrics.NewMock(),
		metrics.NewMetricsHandler(prometheus.NewRegistry()), config.Config{}, notifier.NewMock(), ps,
		pingFunc(func(ctx context.Context) error { return nil }))

	rr := doRequest(t, server, http.MethodPut, "/umpire/matches/m-1/status", "umpire-token", map[string]any{"status": "completed"})

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Len(t, matches.UpdateStatusCalls, 1)
	assert.Empty(t, ps.Calls(), "a status that did not change is not published")

	matches.UpdateStatusFunc = func(ctx context.Context, matchID string, next match.Status) (*match.Match, match.Status, error) {
		return &match.Match{ID: matchID, Status: next}, match.StatusScheduled, nil
	}
	rr = doRequest(t, server, http.MethodPut, "/umpire/matches/m-1/status", "umpire-token", map[string]any{"status": "completed"})

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	calls := ps.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "scheduled", calls[1].Data.(pubsub.MatchEvent).PreviousStatus)
}

func TestBattingOnlyStatLine(t *testing.T) {
	env := setupTestServer(t)
	_, umpireToken := signupAndLogin(t, env.server, "umpire@example.com", profile.RoleUmpire)

	rr := doRequest(t, env.server, http.MethodPost, "/players", umpireToken, map[string]any{
		"email": "opener@example.com", "password": testPassword, "fullName": "Opener",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	playerID := decodeBody(t, rr)["player"].(map[string]any)["id"].(string)

	matchID := createUmpireMatch(t, env.server, umpireToken)
	rr = doRequest(t, env.server, http.MethodGet, "/umpire/matches/"+matchID, umpireToken, nil)
	teamAID := decodeBody(t, rr)["match"].(map[string]any)["team_a"].(map[string]any)["id"].(string)
	rr = doRequest(t, env.server, http.MethodPost, "/umpire/matches/"+matchID+"/players", umpireToken, map[string]any{
		"teamId": teamAID, "playerId": playerID,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	statID := decodeBody(t, rr)["playerStat"].(map[string]any)["id"].(string)

	rr = doRequest(t, env.server, http.MethodPut, fmt.Sprintf("/umpire/matches/%s/player-stats/%s", matchID, statID), umpireToken, map[string]any{
		"runs": 50, "balls": 40, "wickets": nil, "overs": nil,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	stat := decodeBody(t, rr)["playerStat"].(map[string]any)
	assert.Nil(t, stat["wickets"])
	assert.Nil(t, stat["overs"])
	assert.EqualValues(t, 50, stat["runs"])

	rr = doRequest(t, env.server, http.MethodGet, "/players/"+playerID+"/stats", umpireToken, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	body := decodeBody(t, rr)
	batting := body["batting"].(map[string]any)
	assert.EqualValues(t, 50, batting["totalRuns"])
	assert.EqualValues(t, 125, batting["strikeRate"])
	assert.EqualValues(t, 1, batting["matches"])
	bowling := body["bowling"].(map[string]any)
	assert.EqualValues(t, 0, bowling["totalRunsConceded"], "batting runs are not counted as conceded")
	assert.EqualValues(t, 0, bowling["matches"])

	rr = doRequest(t, env.server, http.MethodPut, "/umpire/matches/"+matchID+"/score", umpireToken, map[string]any{"target": 151})
	require.Equal(t, http.StatusOK, rr.Code)
	rr = doRequest(t, env.server, http.MethodPut, "/umpire/matches/"+matchID+"/score", umpireToken, map[string]any{"target": nil})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Nil(t, decodeBody(t, rr)["score"].(map[string]any)["target"])

	rr = doRequest(t, env.server, http.MethodPut, "/umpire/matches/"+matchID+"/score", umpireToken, map[string]any{"teamAScore": nil})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPublicMatchRoutes(t *testing.T) {
	env := setupTestServer(t)

	rr := doRequest(t, env.server, http.MethodPost, "/matches", "", map[string]any{"teamAName": "Warriors", "teamBName": "Warriors"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, env.server, http.MethodPost, "/matches", "", map[string]any{"teamAName": "Warriors", "teamBName": "Titans", "overs": 0})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "overs must be positive", decodeBody(t, rr)["message"])

	rr = doRequest(t, env.server, http.MethodPost, "/matches", "", map[string]any{"teamAName": "Warriors", "teamBName": "Titans", "venue": "missing"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, env.server, http.MethodPost, "/matches", "", map[string]any{"teamAName": "Warriors", "teamBName": "Titans", "overs": 50})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = doRequest(t, env.server, http.MethodGet, "/matches", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	matches := decodeBody(t, rr)["matches"].([]any)
	require.Len(t, matches, 1)
	assert.EqualValues(t, 50, matches[0].(map[string]any)["overs"])

	rr = doRequest(t, env.server, http.MethodGet, "/user/matches?status=live&limit=500", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeBody(t, rr)["matches"], 1)

	rr = doRequest(t, env.server, http.MethodGet, "/user/matches?status=completed", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decodeBody(t, rr)["matches"])

	rr = doRequest(t, env.server, http.MethodGet, "/user/matches?status=bogus", "", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, env.server, http.MethodGet, "/user/matches?limit=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, env.server, http.MethodGet, "/user/matches/missing/scoreboard", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Match not found", decodeBody(t, rr)["message"])
}

func TestPlayers(t *testing.T) {
	env := setupTestServer(t)
	_, umpireToken := signupAndLogin(t, env.server, "umpire@example.com", profile.RoleUmpire)
	_, otherToken := signupAndLogin(t, env.server, "other@example.com", profile.RolePlayer)

	rr := doRequest(t, env.server, http.MethodPost, "/players", otherToken, map[string]any{"email": "kane@example.com", "password": testPassword})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = doRequest(t, env.server, http.MethodPost, "/players", umpireToken, map[string]any{
		"email": "kane@example.com", "password": testPassword, "fullName": "Kane",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	player := decodeBody(t, rr)["player"].(map[string]any)
	assert.Equal(t, "player", player["role"])
	playerID := player["id"].(string)

	matchID := createUmpireMatch(t, env.server, umpireToken)
	rr = doRequest(t, env.server, http.MethodGet, "/umpire/matches/"+matchID, umpireToken, nil)
	board := decodeBody(t, rr)["match"].(map[string]any)
	teamBID := board["team_b"].(map[string]any)["id"].(string)

	rr = doRequest(t, env.server, http.MethodPost, "/umpire/matches/"+matchID+"/players", umpireToken, map[string]any{
		"teamId": teamBID, "playerId": playerID,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	statID := decodeBody(t, rr)["playerStat"].(map[string]any)["id"].(string)
	rr = doRequest(t, env.server, http.MethodPut, fmt.Sprintf("/umpire/matches/%s/player-stats/%s", matchID, statID), umpireToken, map[string]any{
		"runs": 20, "balls": 10, "wickets": 2, "overs": 4,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	t.Run("list and get", func(t *testing.T) {
		rr := doRequest(t, env.server, http.MethodGet, "/players", otherToken, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, decodeBody(t, rr)["players"], 2)

		rr = doRequest(t, env.server, http.MethodGet, "/players/"+playerID, otherToken, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Kane", decodeBody(t, rr)["player"].(map[string]any)["full_name"])

		rr = doRequest(t, env.server, http.MethodGet, "/players/missing", otherToken, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("career stats", func(t *testing.T) {
		rr := doRequest(t, env.server, http.MethodGet, "/players/"+playerID+"/stats", otherToken, nil)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		body := decodeBody(t, rr)
		batting := body["batting"].(map[string]any)
		assert.EqualValues(t, 20, batting["totalRuns"])
		assert.EqualValues(t, 200, batting["strikeRate"])
		bowling := body["bowling"].(map[string]any)
		assert.EqualValues(t, 2, bowling["totalWickets"])
		assert.EqualValues(t, 5, bowling["economy"])
		assert.EqualValues(t, 10, bowling["average"])
		assert.Len(t, body["matchStats"], 1)
	})

	t.Run("profile updates", func(t *testing.T) {
		rr := doRequest(t, env.server, http.MethodPut, "/players/"+playerID+"/profile", otherToken, map[string]any{"fullName": "Hijack"})
		assert.Equal(t, http.StatusForbidden, rr.Code)

		rr = doRequest(t, env.server, http.MethodPut, "/players/"+playerID+"/profile", umpireToken, map[string]any{"phone": "555-0100"})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		p := decodeBody(t, rr)["player"].(map[string]any)
		assert.Equal(t, "555-0100", p["phone"])
		assert.Equal(t, "Kane", p["full_name"])

		kaneToken := login(t, env.server, "kane@example.com")
		rr = doRequest(t, env.server, http.MethodPut, "/players/"+playerID+"/profile", kaneToken, map[string]any{"fullName": "Kane W"})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Kane W", decodeBody(t, rr)["player"].(map[string]any)["full_name"])
	})
}

func pushBody(t *testing.T, event pubsub.MatchEvent) map[string]any {
	t.Helper()
	data, err := pubsub.Encode(event)
	require.NoError(t, err)
	return map[string]any{
		"subscription": "projects/test/subscriptions/match-completed",
		"message":      map[string]any{"data": base64.StdEncoding.EncodeToString(data), "messageId": "1"},
	}
}

func TestMatchCompletedPushHandler(t *testing.T) {
	env := setupTestServer(t)
	_, token := signupAndLogin(t, env.server, "umpire@example.com", profile.RoleUmpire)
	matchID := createUmpireMatch(t, env.server, token)

	rr := doRequest(t, env.server, http.MethodPost, "/pubsub/match-completed?dry_run=true", "", pushBody(t, pubsub.MatchEvent{MatchID: matchID}))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Len(t, env.notifier.SendMatchResultCalls, 1)
	call := env.notifier.SendMatchResultCalls[0]
	assert.True(t, call.DryRun)
	assert.Equal(t, matchID, call.Board.ID)
	assert.Equal(t, "Warriors", call.Board.TeamA.Name)

	rr = doRequest(t, env.server, http.MethodPost, "/pubsub/match-completed", "", pushBody(t, pubsub.MatchEvent{MatchID: "gone"}))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, env.notifier.SendMatchResultCalls, 1)

	rr = doRequest(t, env.server, http.MethodPost, "/pubsub/match-completed", "", map[string]any{"message": map[string]any{"data": "%%%"}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	env.notifier.SendMatchResultFunc = func(board *match.Scoreboard, dryRun bool) error {
		return errors.New("slack unavailable")
	}
	rr = doRequest(t, env.server, http.MethodPost, "/pubsub/match-completed", "", pushBody(t, pubsub.MatchEvent{MatchID: matchID}))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestStatusChangedPushHandler(t *testing.T) {
	env := setupTestServer(t)
	_, token := signupAndLogin(t, env.server, "umpire@example.com", profile.RoleUmpire)
	matchID := createUmpireMatch(t, env.server, token)

	rr := doRequest(t, env.server, http.MethodPost, "/pubsub/match-status-changed", "", pushBody(t, pubsub.MatchEvent{
		MatchID: matchID, Status: "cancelled", PreviousStatus: "live",
	}))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Len(t, env.notifier.SendStatusChangeCalls, 1)
	assert.Equal(t, match.StatusLive, env.notifier.SendStatusChangeCalls[0].Previous)

	rr = doRequest(t, env.server, http.MethodPost, "/pubsub/match-status-changed", "", pushBody(t, pubsub.MatchEvent{
		MatchID: matchID, Status: "completed", PreviousStatus: "live",
	}))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, env.notifier.SendStatusChangeCalls, 1)
}
