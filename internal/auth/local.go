package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mauv0809/crease/internal/apperr"
	"golang.org/x/crypto/bcrypt"
)

const issuer = "crease"

// Local is a Provider that keeps identities in the application database,
// hashes passwords with bcrypt and signs HS256 access tokens.
type Local struct {
	db     *sql.DB
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var _ Provider = (*Local)(nil)

// NewLocal creates a Local provider.
func NewLocal(db *sql.DB, secret string, ttl time.Duration) *Local {
	return &Local{
		db:     db,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (l *Local) CreateUser(ctx context.Context, email, password string) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperr.Validation("Email and password are required")
	}

	exists, err := l.emailTaken(ctx, email, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{ID: uuid.NewString(), Email: email}
	now := l.now().Unix()
	_, err = l.db.ExecContext(ctx,
		`INSERT INTO identities (id, email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Email, string(hash), now, now,
	)
	if err != nil {
		// The UNIQUE index catches a concurrent signup with the same email.
		if taken, _ := l.emailTaken(ctx, email, ""); taken {
			return nil, apperr.Conflict("User already exists")
		}
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}
	log.Info("Created identity", "id", user.ID)
	return user, nil
}

func (l *Local) DeleteUser(ctx context.Context, id string) error {
	res, err := l.db.ExecContext(ctx, `DELETE FROM identities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete identity %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.NotFound("User not found")
	}
	log.Info("Deleted identity", "id", id)
	return nil
}

func (l *Local) SignIn(ctx context.Context, email, password string) (*User, *Session, error) {
	var (
		user User
		hash string
	)
	err := l.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash FROM identities WHERE email = ?`, strings.TrimSpace(email),
	).Scan(&user.ID, &user.Email, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, apperr.Unauthorized("Invalid email or password")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query identity: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, nil, apperr.Unauthorized("Invalid email or password")
	}

	session, err := l.issue(&user)
	if err != nil {
		return nil, nil, err
	}
	return &user, session, nil
}

func (l *Local) Verify(ctx context.Context, token string) (*User, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return l.secret, nil
		},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(l.now),
	)
	if err != nil || !parsed.Valid {
		log.Debug("Rejected access token", "error", err)
		return nil, apperr.Unauthorized("Invalid or expired token")
	}

	// The identity may have been deleted after the token was issued.
	var user User
	err = l.db.QueryRowContext(ctx, `SELECT id, email FROM identities WHERE id = ?`, claims.Subject).Scan(&user.ID, &user.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.Unauthorized("Invalid or expired token")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query identity: %w", err)
	}
	return &user, nil
}

func (l *Local) UpdateEmail(ctx context.Context, id, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apperr.Validation("Email must not be empty")
	}
	taken, err := l.emailTaken(ctx, email, id)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflict("Email already in use")
	}

	res, err := l.db.ExecContext(ctx, `UPDATE identities SET email = ?, updated_at = ? WHERE id = ?`, email, l.now().Unix(), id)
	if err != nil {
		return fmt.Errorf("failed to update email: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.NotFound("User not found")
	}
	return nil
}

func (l *Local) issue(user *User) (*Session, error) {
	now := l.now()
	expiresAt := now.Add(l.ttl)
	claims := &Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(l.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &Session{AccessToken: signed, TokenType: "bearer", ExpiresAt: expiresAt.UTC()}, nil
}

// emailTaken reports whether email belongs to an identity other than exceptID.
func (l *Local) emailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	var id string
	err := l.db.QueryRowContext(ctx, `SELECT id FROM identities WHERE email = ?`, email).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query identity: %w", err)
	}
	return id != exceptID, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
