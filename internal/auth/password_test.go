package auth

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/spendtrack/internal/models"
	"github.com/mmynk/spendtrack/internal/storage"
)

// memUsers is an in-memory UserStorage.
type memUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[string]*models.User)}
}

func (m *memUsers) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return storage.ErrDuplicate
		}
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *memUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) UpdateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, u := range m.users {
		if id != user.ID && u.Email == user.Email {
			return storage.ErrDuplicate
		}
	}
	if _, ok := m.users[user.ID]; !ok {
		return storage.ErrNotFound
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func TestHashPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost(hash)
	require.NoError(t, err)
	assert.Equal(t, PasswordCost, cost)

	assert.True(t, VerifyPassword("secret1", hash))
	assert.False(t, VerifyPassword("secret2", hash))
	assert.False(t, VerifyPassword("secret1", []byte("not-a-hash")))

	_, err = HashPassword(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	a := NewPasswordAuthenticator(newMemUsers())

	user, err := a.Register(ctx, " A@X.com ", "Ann", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, "Ann", user.Name)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	_, err = a.Register(ctx, "a@x.com", "Bob", "other")
	assert.ErrorIs(t, err, ErrEmailExists)

	got, err := a.Authenticate(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = a.Authenticate(ctx, "a@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.Authenticate(ctx, "nobody@x.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	a := NewPasswordAuthenticator(newMemUsers())

	_, err := a.Register(ctx, "not-an-email", "", "secret1")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = a.Register(ctx, "Ann <a@x.com>", "", "secret1")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = a.Register(ctx, "a@x.com", "", "")
	assert.ErrorIs(t, err, ErrEmptyPassword)

	_, err = a.Register(ctx, "a@x.com", "", strings.Repeat("p", 100))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	users := newMemUsers()
	a := NewPasswordAuthenticator(users)

	ann, err := a.Register(ctx, "a@x.com", "Ann", "secret1")
	require.NoError(t, err)
	_, err = a.Register(ctx, "b@x.com", "Bob", "secret2")
	require.NoError(t, err)

	t.Run("password change requires current password", func(t *testing.T) {
		_, err := a.UpdateProfile(ctx, ann.ID, ProfileUpdate{NewPassword: "next"})
		assert.ErrorIs(t, err, ErrCurrentPassword)

		_, err = a.UpdateProfile(ctx, ann.ID, ProfileUpdate{CurrentPassword: "nope", NewPassword: "next"})
		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("email taken by another user", func(t *testing.T) {
		taken := "B@x.com"
		_, err := a.UpdateProfile(ctx, ann.ID, ProfileUpdate{Email: &taken})
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("name and password change", func(t *testing.T) {
		name := "Annie"
		updated, err := a.UpdateProfile(ctx, ann.ID, ProfileUpdate{
			Name:            &name,
			CurrentPassword: "secret1",
			NewPassword:     "secret9",
		})
		require.NoError(t, err)
		assert.Equal(t, "Annie", updated.Name)

		_, err = a.Authenticate(ctx, "a@x.com", "secret1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		_, err = a.Authenticate(ctx, "a@x.com", "secret9")
		assert.NoError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := a.UpdateProfile(ctx, "missing", ProfileUpdate{})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}
