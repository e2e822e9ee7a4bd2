package lookup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/crease/internal/apperr"
)

// entity describes a lookup table. Case sensitivity comes from the column
// collation: teams.name is BINARY, locations.name is NOCASE.
type entity struct {
	table string
	label string
}

var (
	teams     = entity{table: "teams", label: "Team"}
	locations = entity{table: "locations", label: "Location"}
)

type resolver struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a Resolver backed by db.
func New(db *sql.DB) Resolver {
	return &resolver{db: db, now: time.Now}
}

func (r *resolver) TeamID(ctx context.Context, name string) (string, error) {
	id, _, err := r.resolve(ctx, teams, name)
	return id, err
}

func (r *resolver) LocationID(ctx context.Context, name string) (string, error) {
	id, _, err := r.resolve(ctx, locations, name)
	return id, err
}

func (r *resolver) EnsureLocation(ctx context.Context, name string) (string, bool, error) {
	return r.resolve(ctx, locations, name)
}

func (r *resolver) resolve(ctx context.Context, e entity, name string) (string, bool, error) {
	normalized := strings.TrimSpace(name)
	if normalized == "" {
		return "", false, apperr.Validation("%s name is required", e.label)
	}

	id, err := r.find(ctx, e, normalized)
	if err != nil {
		return "", false, err
	}
	if id != "" {
		return id, false, nil
	}

	id = uuid.NewString()
	query := fmt.Sprintf("INSERT INTO %s (id, name, created_at) VALUES (?, ?, ?)", e.table)
	if _, insertErr := r.db.ExecContext(ctx, query, id, normalized, r.now().Unix()); insertErr != nil {
		// Another request may have inserted the same name in between.
		existing, err := r.find(ctx, e, normalized)
		if err == nil && existing != "" {
			log.Debug("Lost insert race, reusing existing row", "table", e.table, "name", normalized, "id", existing)
			return existing, false, nil
		}
		return "", false, fmt.Errorf("failed to insert into %s: %w", e.table, insertErr)
	}
	log.Info("Created lookup row", "table", e.table, "name", normalized, "id", id)
	return id, true, nil
}

func (r *resolver) find(ctx context.Context, e entity, name string) (string, error) {
	var id string
	query := fmt.Sprintf("SELECT id FROM %s WHERE name = ? LIMIT 1", e.table)
	err := r.db.QueryRowContext(ctx, query, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query %s: %w", e.table, err)
	}
	return id, nil
}
