package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/crease/internal/apperr"
)

const selectProfile = `SELECT id, full_name, username, phone, role, profile_picture_url, team_name, created_at, updated_at FROM profiles`

type store struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new ProfileStore.
func New(db *sql.DB) ProfileStore {
	return &store{db: db, now: time.Now}
}

func (s *store) Upsert(ctx context.Context, p *Profile) error {
	now := s.now().UTC().Truncate(time.Second)
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (id, full_name, username, phone, role, profile_picture_url, team_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			full_name = excluded.full_name,
			username = excluded.username,
			phone = excluded.phone,
			role = excluded.role,
			updated_at = excluded.updated_at`,
		p.ID, p.FullName, p.Username, p.Phone, string(p.Role), p.ProfilePictureURL, p.TeamName, p.CreatedAt.Unix(), p.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile %s: %w", p.ID, err)
	}
	log.Debug("Upserted profile", "id", p.ID, "role", p.Role)
	return nil
}

func (s *store) Get(ctx context.Context, id string) (*Profile, error) {
	p, err := scanProfile(s.db.QueryRowContext(ctx, selectProfile+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Profile not found")
	}
	return p, err
}

func (s *store) Role(ctx context.Context, id string) (Role, error) {
	var role string
	err := s.db.QueryRowContext(ctx, `SELECT role FROM profiles WHERE id = ?`, id).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperr.NotFound("Profile not found")
	}
	if err != nil {
		return "", fmt.Errorf("failed to query role: %w", err)
	}
	return Role(role), nil
}

func (s *store) Update(ctx context.Context, id string, u Update) (*Profile, error) {
	p, err := scanProfile(s.db.QueryRowContext(ctx, `
		UPDATE profiles SET
			full_name = COALESCE(?, full_name),
			phone = COALESCE(?, phone),
			username = COALESCE(?, username),
			profile_picture_url = COALESCE(?, profile_picture_url),
			team_name = COALESCE(?, team_name),
			updated_at = ?
		WHERE id = ?
		RETURNING id, full_name, username, phone, role, profile_picture_url, team_name, created_at, updated_at`,
		u.FullName, u.Phone, u.Email, u.ProfilePictureURL, u.TeamName, s.now().Unix(), id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Profile not found")
	}
	if err != nil {
		return nil, err
	}
	log.Info("Updated profile", "id", id)
	return p, nil
}

func (s *store) ListPlayers(ctx context.Context) ([]Profile, error) {
	rows, err := s.db.QueryContext(ctx, selectProfile+` WHERE role = ? ORDER BY full_name ASC, username ASC`, string(RolePlayer))
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	players := []Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

func (s *store) GetPlayer(ctx context.Context, id string) (*Profile, error) {
	p, err := scanProfile(s.db.QueryRowContext(ctx, selectProfile+` WHERE id = ? AND role = ?`, id, string(RolePlayer)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Player not found")
	}
	return p, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (*Profile, error) {
	var (
		p                    Profile
		role                 string
		createdAt, updatedAt int64
	)
	err := row.Scan(&p.ID, &p.FullName, &p.Username, &p.Phone, &role, &p.ProfilePictureURL, &p.TeamName, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan profile: %w", err)
	}
	p.Role = Role(role)
	p.CreatedAt = time.Unix(createdAt, 0).UTC()
	p.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &p, nil
}
