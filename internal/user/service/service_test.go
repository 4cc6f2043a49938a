package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	usererrors "github.com/avlasov/sneakerhub/internal/user/errors"
	"github.com/avlasov/sneakerhub/internal/user/store"
	"github.com/avlasov/sneakerhub/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// mockUserStore is a mock implementation of the UserStore interface
type mockUserStore struct {
	created   *store.User
	createErr error

	found   *store.User
	findErr error
}

func (m *mockUserStore) Create(_ context.Context, user *store.User) error {
	m.created = user
	return m.createErr
}

func (m *mockUserStore) FindByEmail(_ context.Context, _ string) (*store.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.found, nil
}

func newTestUserService(m *mockUserStore) (*Service, *auth.Manager) {
	tokens := auth.NewManager("test-secret", time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(m, tokens, logger), tokens
}

func Test_UserService_Register(t *testing.T) {
	creds := CredentialsDto{Email: "john@example.com", Password: "sneakers123"}

	t.Run("Success - account created with hashed password and token", func(t *testing.T) {
		mockStore := &mockUserStore{}
		svc, tokens := newTestUserService(mockStore)

		result, err := svc.Register(context.Background(), creds)
		require.NoError(t, err)
		assert.Equal(t, creds.Email, result.User.Email)

		require.NotNil(t, mockStore.created)
		assert.Equal(t, creds.Email, mockStore.created.Email)
		assert.NotEqual(t, creds.Password, mockStore.created.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword(
			[]byte(mockStore.created.PasswordHash), []byte(creds.Password)))

		claims, err := tokens.Verify(result.Token)
		require.NoError(t, err)
		assert.Equal(t, mockStore.created.ID.String(), claims.Subject)
		assert.Equal(t, creds.Email, claims.Email)
	})

	t.Run("Error - duplicate email", func(t *testing.T) {
		mockStore := &mockUserStore{createErr: usererrors.ErrUserAlreadyExists}
		svc, _ := newTestUserService(mockStore)

		_, err := svc.Register(context.Background(), creds)
		assert.ErrorIs(t, err, usererrors.ErrUserAlreadyExists)
	})
}

func Test_UserService_Login(t *testing.T) {
	password := "sneakers123"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	existing := &store.User{Email: "john@example.com", PasswordHash: string(hash)}

	t.Run("Success", func(t *testing.T) {
		mockStore := &mockUserStore{found: existing}
		svc, tokens := newTestUserService(mockStore)

		result, err := svc.Login(context.Background(), CredentialsDto{Email: existing.Email, Password: password})
		require.NoError(t, err)
		assert.Equal(t, existing.Email, result.User.Email)

		claims, err := tokens.Verify(result.Token)
		require.NoError(t, err)
		assert.Equal(t, existing.Email, claims.Email)
	})

	t.Run("Error - wrong password", func(t *testing.T) {
		mockStore := &mockUserStore{found: existing}
		svc, _ := newTestUserService(mockStore)

		_, err := svc.Login(context.Background(), CredentialsDto{Email: existing.Email, Password: "wrong-pass"})
		assert.ErrorIs(t, err, usererrors.ErrInvalidCredentials)
	})

	t.Run("Error - unknown email reported as invalid credentials", func(t *testing.T) {
		mockStore := &mockUserStore{findErr: usererrors.ErrUserNotFound}
		svc, _ := newTestUserService(mockStore)

		_, err := svc.Login(context.Background(), CredentialsDto{Email: "nobody@example.com", Password: password})
		assert.ErrorIs(t, err, usererrors.ErrInvalidCredentials)
	})

	t.Run("Error - store failure propagates", func(t *testing.T) {
		mockStore := &mockUserStore{findErr: usererrors.ErrFailedToFindUser}
		svc, _ := newTestUserService(mockStore)

		_, err := svc.Login(context.Background(), CredentialsDto{Email: existing.Email, Password: password})
		assert.ErrorIs(t, err, usererrors.ErrFailedToFindUser)
	})
}
