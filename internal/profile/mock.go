package profile

import (
	"context"
	"sync"

	"github.com/mauv0809/crease/internal/apperr"
)

// MockStore is an in-memory ProfileStore for handler tests. Without a Func
// override each method operates on Profiles.
type MockStore struct {
	mu sync.Mutex

	Profiles map[string]*Profile

	UpsertFunc func(ctx context.Context, p *Profile) error
	UpdateFunc func(ctx context.Context, id string, u Update) (*Profile, error)

	UpsertCalls []*Profile
	UpdateCalls []struct {
		ID     string
		Update Update
	}
}

func NewMock() *MockStore {
	return &MockStore{Profiles: map[string]*Profile{}}
}

func (m *MockStore) Upsert(ctx context.Context, p *Profile) error {
	m.mu.Lock()
	m.UpsertCalls = append(m.UpsertCalls, p)
	m.mu.Unlock()
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.Profiles[p.ID] = &cp
	return nil
}

func (m *MockStore) Get(ctx context.Context, id string) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Profiles[id]
	if !ok {
		return nil, apperr.NotFound("Profile not found")
	}
	cp := *p
	return &cp, nil
}

func (m *MockStore) Role(ctx context.Context, id string) (Role, error) {
	p, err := m.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return p.Role, nil
}

func (m *MockStore) Update(ctx context.Context, id string, u Update) (*Profile, error) {
	m.mu.Lock()
	m.UpdateCalls = append(m.UpdateCalls, struct {
		ID     string
		Update Update
	}{id, u})
	m.mu.Unlock()
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, u)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Profiles[id]
	if !ok {
		return nil, apperr.NotFound("Profile not found")
	}
	if u.FullName != nil {
		p.FullName = u.FullName
	}
	if u.Phone != nil {
		p.Phone = u.Phone
	}
	if u.Email != nil {
		p.Username = *u.Email
	}
	if u.ProfilePictureURL != nil {
		p.ProfilePictureURL = u.ProfilePictureURL
	}
	if u.TeamName != nil {
		p.TeamName = u.TeamName
	}
	cp := *p
	return &cp, nil
}

func (m *MockStore) ListPlayers(ctx context.Context) ([]Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	players := []Profile{}
	for _, p := range m.Profiles {
		if p.Role == RolePlayer {
			players = append(players, *p)
		}
	}
	return players, nil
}

func (m *MockStore) GetPlayer(ctx context.Context, id string) (*Profile, error) {
	p, err := m.Get(ctx, id)
	if err != nil || p.Role != RolePlayer {
		return nil, apperr.NotFound("Player not found")
	}
	return p, nil
}

// Reset clears recorded calls and stored profiles.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Profiles = map[string]*Profile{}
	m.UpsertCalls = nil
	m.UpdateCalls = nil
}
