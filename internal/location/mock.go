package location

import (
	"context"
	"sync"
)

// MockStore is a mock implementation of LocationStore for testing.
type MockStore struct {
	mu sync.Mutex

	ListFunc   func(ctx context.Context) ([]Location, error)
	GetFunc    func(ctx context.Context, id string) (*Location, error)
	EnsureFunc func(ctx context.Context, in CreateInput) (*Location, bool, error)

	GetCalls    []string
	EnsureCalls []CreateInput
}

func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) List(ctx context.Context) ([]Location, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []Location{}, nil
}

func (m *MockStore) Get(ctx context.Context, id string) (*Location, error) {
	m.mu.Lock()
	m.GetCalls = append(m.GetCalls, id)
	m.mu.Unlock()
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return &Location{ID: id}, nil
}

func (m *MockStore) Ensure(ctx context.Context, in CreateInput) (*Location, bool, error) {
	m.mu.Lock()
	m.EnsureCalls = append(m.EnsureCalls, in)
	m.mu.Unlock()
	if m.EnsureFunc != nil {
		return m.EnsureFunc(ctx, in)
	}
	return &Location{ID: "location-" + in.Name, Name: in.Name}, true, nil
}

// Reset clears all recorded calls.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls = nil
	m.EnsureCalls = nil
}
