package match

import (
	"context"
	"sync"

	"github.com/mauv0809/crease/internal/apperr"
)

// MockStore is a mock implementation of MatchStore for testing.
// Methods without a Func override return zero values, or not found for reads.
type MockStore struct {
	mu sync.Mutex

	CreateFunc           func(ctx context.Context, in CreateInput) (string, error)
	ListFunc             func(ctx context.Context, f ListFilter) ([]Summary, error)
	GetFunc              func(ctx context.Context, id string) (*Match, error)
	ScoreboardFunc       func(ctx context.Context, id string) (*Scoreboard, error)
	UpdateScoreFunc      func(ctx context.Context, matchID string, u ScoreUpdate) (*ScoreView, error)
	UpdateStatusFunc     func(ctx context.Context, matchID string, next Status) (*Match, Status, error)
	AddPlayerFunc        func(ctx context.Context, matchID string, in AddPlayerInput) (*PlayerStat, error)
	RemovePlayerFunc     func(ctx context.Context, matchID, statID string) error
	UpdatePlayerStatFunc func(ctx context.Context, matchID, statID string, u StatUpdate) (*PlayerStatView, error)
	PlayerStatsFunc      func(ctx context.Context, playerID string) ([]PlayerStat, error)
	AddCommentaryFunc    func(ctx context.Context, matchID string, in CommentaryInput) (*Commentary, error)
	ListCommentaryFunc   func(ctx context.Context, matchID string) ([]Commentary, error)

	CreateCalls      []CreateInput
	ListCalls        []ListFilter
	UpdateScoreCalls []struct {
		MatchID string
		Update  ScoreUpdate
	}
	UpdateStatusCalls []struct {
		MatchID string
		Status  Status
	}
	UpdatePlayerStatCalls []struct {
		MatchID string
		StatID  string
		Update  StatUpdate
	}
}

func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) Create(ctx context.Context, in CreateInput) (string, error) {
	m.mu.Lock()
	m.CreateCalls = append(m.CreateCalls, in)
	m.mu.Unlock()
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, in)
	}
	return "match-1", nil
}

func (m *MockStore) List(ctx context.Context, f ListFilter) ([]Summary, error) {
	m.mu.Lock()
	m.ListCalls = append(m.ListCalls, f)
	m.mu.Unlock()
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return []Summary{}, nil
}

func (m *MockStore) Get(ctx context.Context, id string) (*Match, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, apperr.NotFound("Match not found")
}

func (m *MockStore) Scoreboard(ctx context.Context, id string) (*Scoreboard, error) {
	if m.ScoreboardFunc != nil {
		return m.ScoreboardFunc(ctx, id)
	}
	return nil, apperr.NotFound("Match not found")
}

func (m *MockStore) UpdateScore(ctx context.Context, matchID string, u ScoreUpdate) (*ScoreView, error) {
	m.mu.Lock()
	m.UpdateScoreCalls = append(m.UpdateScoreCalls, struct {
		MatchID string
		Update  ScoreUpdate
	}{matchID, u})
	m.mu.Unlock()
	if m.UpdateScoreFunc != nil {
		return m.UpdateScoreFunc(ctx, matchID, u)
	}
	return &ScoreView{MatchID: matchID}, nil
}

func (m *MockStore) UpdateStatus(ctx context.Context, matchID string, next Status) (*Match, Status, error) {
	m.mu.Lock()
	m.UpdateStatusCalls = append(m.UpdateStatusCalls, struct {
		MatchID string
		Status  Status
	}{matchID, next})
	m.mu.Unlock()
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, matchID, next)
	}
	return &Match{ID: matchID, Status: next}, StatusLive, nil
}

func (m *MockStore) AddPlayer(ctx context.Context, matchID string, in AddPlayerInput) (*PlayerStat, error) {
	if m.AddPlayerFunc != nil {
		return m.AddPlayerFunc(ctx, matchID, in)
	}
	return &PlayerStat{ID: "stat-1", MatchID: matchID, TeamID: in.TeamID, PlayerID: in.PlayerID, PlayerName: in.PlayerName}, nil
}

func (m *MockStore) RemovePlayer(ctx context.Context, matchID, statID string) error {
	if m.RemovePlayerFunc != nil {
		return m.RemovePlayerFunc(ctx, matchID, statID)
	}
	return nil
}

func (m *MockStore) UpdatePlayerStat(ctx context.Context, matchID, statID string, u StatUpdate) (*PlayerStatView, error) {
	m.mu.Lock()
	m.UpdatePlayerStatCalls = append(m.UpdatePlayerStatCalls, struct {
		MatchID string
		StatID  string
		Update  StatUpdate
	}{matchID, statID, u})
	m.mu.Unlock()
	if m.UpdatePlayerStatFunc != nil {
		return m.UpdatePlayerStatFunc(ctx, matchID, statID, u)
	}
	return &PlayerStatView{PlayerStat: PlayerStat{ID: statID, MatchID: matchID}}, nil
}

func (m *MockStore) PlayerStats(ctx context.Context, playerID string) ([]PlayerStat, error) {
	if m.PlayerStatsFunc != nil {
		return m.PlayerStatsFunc(ctx, playerID)
	}
	return []PlayerStat{}, nil
}

func (m *MockStore) AddCommentary(ctx context.Context, matchID string, in CommentaryInput) (*Commentary, error) {
	if m.AddCommentaryFunc != nil {
		return m.AddCommentaryFunc(ctx, matchID, in)
	}
	return &Commentary{ID: "commentary-1", MatchID: matchID, Over: in.Over, Text: in.Text}, nil
}

func (m *MockStore) ListCommentary(ctx context.Context, matchID string) ([]Commentary, error) {
	if m.ListCommentaryFunc != nil {
		return m.ListCommentaryFunc(ctx, matchID)
	}
	return []Commentary{}, nil
}

// Reset clears all recorded calls.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = nil
	m.ListCalls = nil
	m.UpdateScoreCalls = nil
	m.UpdateStatusCalls = nil
	m.UpdatePlayerStatCalls = nil
}
