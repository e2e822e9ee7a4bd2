package lookup

import (
	"context"
	"sync"
)

// MockResolver is a mock implementation of Resolver for testing.
type MockResolver struct {
	mu sync.Mutex

	TeamIDFunc         func(ctx context.Context, name string) (string, error)
	LocationIDFunc     func(ctx context.Context, name string) (string, error)
	EnsureLocationFunc func(ctx context.Context, name string) (string, bool, error)

	TeamIDCalls         []string
	LocationIDCalls     []string
	EnsureLocationCalls []string
}

func NewMock() *MockResolver {
	return &MockResolver{}
}

func (m *MockResolver) TeamID(ctx context.Context, name string) (string, error) {
	m.mu.Lock()
	m.TeamIDCalls = append(m.TeamIDCalls, name)
	m.mu.Unlock()
	if m.TeamIDFunc != nil {
		return m.TeamIDFunc(ctx, name)
	}
	return "team-" + name, nil
}

func (m *MockResolver) LocationID(ctx context.Context, name string) (string, error) {
	m.mu.Lock()
	m.LocationIDCalls = append(m.LocationIDCalls, name)
	m.mu.Unlock()
	if m.LocationIDFunc != nil {
		return m.LocationIDFunc(ctx, name)
	}
	return "location-" + name, nil
}

func (m *MockResolver) EnsureLocation(ctx context.Context, name string) (string, bool, error) {
	m.mu.Lock()
	m.EnsureLocationCalls = append(m.EnsureLocationCalls, name)
	m.mu.Unlock()
	if m.EnsureLocationFunc != nil {
		return m.EnsureLocationFunc(ctx, name)
	}
	return "location-" + name, true, nil
}

// Reset clears all recorded calls.
func (m *MockResolver) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TeamIDCalls = nil
	m.LocationIDCalls = nil
	m.EnsureLocationCalls = nil
}
