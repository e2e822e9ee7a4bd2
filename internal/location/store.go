package location

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/crease/internal/apperr"
	"github.com/mauv0809/crease/internal/lookup"
)

const selectLocation = `SELECT id, name, address, city, state, country, created_at FROM locations`

type store struct {
	db       *sql.DB
	resolver lookup.Resolver
}

// New creates a new LocationStore. Names are resolved through resolver, the
// same path match creation uses for venues.
func New(db *sql.DB, resolver lookup.Resolver) LocationStore {
	return &store{db: db, resolver: resolver}
}

func (s *store) List(ctx context.Context) ([]Location, error) {
	rows, err := s.db.QueryContext(ctx, selectLocation+` ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	locations := []Location{}
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, *loc)
	}
	return locations, rows.Err()
}

func (s *store) Get(ctx context.Context, id string) (*Location, error) {
	loc, err := scanLocation(s.db.QueryRowContext(ctx, selectLocation+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Location not found")
	}
	return loc, err
}

func (s *store) Ensure(ctx context.Context, in CreateInput) (*Location, bool, error) {
	id, created, err := s.resolver.EnsureLocation(ctx, in.Name)
	if err != nil {
		return nil, false, err
	}

	// Details are only written by the call that created the row.
	if created {
		_, err := s.db.ExecContext(ctx,
			`UPDATE locations SET address = ?, city = ?, state = ?, country = ? WHERE id = ?`,
			blankToNil(in.Address), blankToNil(in.City), blankToNil(in.State), blankToNil(in.Country), id,
		)
		if err != nil {
			return nil, false, fmt.Errorf("failed to store location details: %w", err)
		}
		log.Debug("Stored location details", "id", id)
	}

	loc, err := s.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return loc, created, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLocation(row scanner) (*Location, error) {
	var (
		loc       Location
		createdAt int64
	)
	err := row.Scan(&loc.ID, &loc.Name, &loc.Address, &loc.City, &loc.State, &loc.Country, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan location: %w", err)
	}
	loc.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &loc, nil
}

func blankToNil(v *string) *string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	return &trimmed
}
