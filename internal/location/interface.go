package location

import "context"

// LocationStore defines the interface for interacting with venues.
type LocationStore interface {
	// List returns every location ordered by name.
	List(ctx context.Context) ([]Location, error)
	// Get returns the location with id, or a not-found error.
	Get(ctx context.Context, id string) (*Location, error)
	// Ensure returns the location whose name matches in.Name case-insensitively,
	// creating it when absent. created reports whether a row was inserted.
	Ensure(ctx context.Context, in CreateInput) (loc *Location, created bool, err error)
}
