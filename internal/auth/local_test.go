package auth

import (
	"context"
	"testing"
	"time"

	"github.com/mauv0809/crease/internal/apperr"
	"github.com/mauv0809/crease/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*Local, func()) {
	t.Helper()
	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	return NewLocal(db, "test-secret", time.Hour), teardown
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	p, teardown := setupTestDB(t)
	defer teardown()

	user, err := p.CreateUser(ctx, "ump@example.com", "s3cret!!")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ump@example.com", user.Email)

	_, err = p.CreateUser(ctx, "UMP@example.com", "another")
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err), "emails are unique regardless of case")

	_, err = p.CreateUser(ctx, "", "pw")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestSignInAndVerify(t *testing.T) {
	ctx := context.Background()
	p, teardown := setupTestDB(t)
	defer teardown()

	created, err := p.CreateUser(ctx, "player@example.com", "password1")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, session, err := p.SignIn(ctx, "player@example.com", "password1")
		require.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)
		assert.Equal(t, "bearer", session.TokenType)
		assert.NotEmpty(t, session.AccessToken)

		verified, err := p.Verify(ctx, session.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, created.ID, verified.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := p.SignIn(ctx, "player@example.com", "nope")
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := p.SignIn(ctx, "ghost@example.com", "password1")
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := p.Verify(ctx, "not-a-jwt")
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := NewLocal(p.db, "other-secret", time.Hour)
		_, session, err := other.SignIn(ctx, "player@example.com", "password1")
		require.NoError(t, err)
		_, err = p.Verify(ctx, session.AccessToken)
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	})

	t.Run("expired token", func(t *testing.T) {
		_, session, err := p.SignIn(ctx, "player@example.com", "password1")
		require.NoError(t, err)

		later := *p
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err = later.Verify(ctx, session.AccessToken)
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	p, teardown := setupTestDB(t)
	defer teardown()

	user, err := p.CreateUser(ctx, "gone@example.com", "password1")
	require.NoError(t, err)
	_, session, err := p.SignIn(ctx, "gone@example.com", "password1")
	require.NoError(t, err)

	require.NoError(t, p.DeleteUser(ctx, user.ID))

	_, err = p.Verify(ctx, session.AccessToken)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err), "tokens of deleted identities are rejected")

	err = p.DeleteUser(ctx, user.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUpdateEmail(t *testing.T) {
	ctx := context.Background()
	p, teardown := setupTestDB(t)
	defer teardown()

	a, err := p.CreateUser(ctx, "a@example.com", "password1")
	require.NoError(t, err)
	_, err = p.CreateUser(ctx, "b@example.com", "password1")
	require.NoError(t, err)

	require.NoError(t, p.UpdateEmail(ctx, a.ID, "a@example.com"), "keeping the same email is allowed")
	require.NoError(t, p.UpdateEmail(ctx, a.ID, "new@example.com"))

	_, _, err = p.SignIn(ctx, "new@example.com", "password1")
	require.NoError(t, err)

	err = p.UpdateEmail(ctx, a.ID, "b@example.com")
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	err = p.UpdateEmail(ctx, "missing", "c@example.com")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
		{"abc", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, ok := BearerToken(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
