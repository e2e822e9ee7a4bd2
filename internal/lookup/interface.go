package lookup

import "context"

// Resolver turns a free-text name into the id of a row, creating the row the
// first time the name is seen.
type Resolver interface {
	// TeamID matches names exactly after trimming.
	TeamID(ctx context.Context, name string) (string, error)
	// LocationID matches names case-insensitively after trimming.
	LocationID(ctx context.Context, name string) (string, error)
	// EnsureLocation is LocationID that also reports whether the row was
	// inserted by this call.
	EnsureLocation(ctx context.Context, name string) (id string, created bool, err error)
}
