package auth

import (
	"context"
	"sync"
	"time"

	"github.com/mauv0809/crease/internal/apperr"
)

// MockProvider is a mock implementation of Provider for testing. Tokens are
// looked up in Tokens unless VerifyFunc is set.
type MockProvider struct {
	mu sync.Mutex

	Tokens map[string]*User

	CreateUserFunc  func(ctx context.Context, email, password string) (*User, error)
	DeleteUserFunc  func(ctx context.Context, id string) error
	SignInFunc      func(ctx context.Context, email, password string) (*User, *Session, error)
	VerifyFunc      func(ctx context.Context, token string) (*User, error)
	UpdateEmailFunc func(ctx context.Context, id, email string) error

	CreateUserCalls  []string
	DeleteUserCalls  []string
	UpdateEmailCalls []struct {
		ID    string
		Email string
	}
}

func NewMock() *MockProvider {
	return &MockProvider{Tokens: map[string]*User{}}
}

func (m *MockProvider) CreateUser(ctx context.Context, email, password string) (*User, error) {
	m.mu.Lock()
	m.CreateUserCalls = append(m.CreateUserCalls, email)
	m.mu.Unlock()
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, email, password)
	}
	return &User{ID: "user-" + email, Email: email}, nil
}

func (m *MockProvider) DeleteUser(ctx context.Context, id string) error {
	m.mu.Lock()
	m.DeleteUserCalls = append(m.DeleteUserCalls, id)
	m.mu.Unlock()
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(ctx, id)
	}
	return nil
}

func (m *MockProvider) SignIn(ctx context.Context, email, password string) (*User, *Session, error) {
	if m.SignInFunc != nil {
		return m.SignInFunc(ctx, email, password)
	}
	return &User{ID: "user-" + email, Email: email}, &Session{AccessToken: "token", TokenType: "bearer", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (m *MockProvider) Verify(ctx context.Context, token string) (*User, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.Tokens[token]; ok {
		return u, nil
	}
	return nil, apperr.Unauthorized("Invalid or expired token")
}

func (m *MockProvider) UpdateEmail(ctx context.Context, id, email string) error {
	m.mu.Lock()
	m.UpdateEmailCalls = append(m.UpdateEmailCalls, struct {
		ID    string
		Email string
	}{id, email})
	m.mu.Unlock()
	if m.UpdateEmailFunc != nil {
		return m.UpdateEmailFunc(ctx, id, email)
	}
	return nil
}

// Reset clears all recorded calls.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateUserCalls = nil
	m.DeleteUserCalls = nil
	m.UpdateEmailCalls = nil
}
