package auth

import "context"

// Provider creates identities and verifies credentials.
type Provider interface {
	// CreateUser registers email with password. A taken email is a conflict.
	CreateUser(ctx context.Context, email, password string) (*User, error)
	DeleteUser(ctx context.Context, id string) error
	// SignIn exchanges credentials for a session.
	SignIn(ctx context.Context, email, password string) (*User, *Session, error)
	// Verify resolves a bearer token to its identity.
	Verify(ctx context.Context, token string) (*User, error)
	UpdateEmail(ctx context.Context, id, email string) error
}
