package profile

import "context"

// ProfileStore defines the interface for reading and writing profiles.
type ProfileStore interface {
	// Upsert creates p or overwrites the profile with the same id.
	Upsert(ctx context.Context, p *Profile) error
	Get(ctx context.Context, id string) (*Profile, error)
	// Role returns only the role of the profile, for authorization checks.
	Role(ctx context.Context, id string) (Role, error)
	Update(ctx context.Context, id string, u Update) (*Profile, error)
	// ListPlayers returns every profile with the player role, ordered by name.
	ListPlayers(ctx context.Context) ([]Profile, error)
	// GetPlayer is Get restricted to the player role.
	GetPlayer(ctx context.Context, id string) (*Profile, error)
}
