package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	usererrors "github.com/avlasov/sneakerhub/internal/user/errors"
	"github.com/avlasov/sneakerhub/internal/user/service"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockUserService is a mock implementation of the UserService interface
type mockUserService struct {
	result *service.AuthResultDto
	err    error
}

func (m *mockUserService) Register(_ context.Context, _ service.CredentialsDto) (*service.AuthResultDto, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockUserService) Login(_ context.Context, _ service.CredentialsDto) (*service.AuthResultDto, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func newUserRouter(svc service.UserService) *chi.Mux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewUserHandler(svc, logger)
	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func authResult() *service.AuthResultDto {
	return &service.AuthResultDto{
		Token: "signed.jwt.token",
		User:  service.UserDto{Email: "john@example.com"},
	}
}

func Test_UserHandler_Register(t *testing.T) {
	creds := map[string]string{"email": "john@example.com", "password": "sneakers123"}

	t.Run("Success - 201 with token and user", func(t *testing.T) {
		router := newUserRouter(&mockUserService{result: authResult()})

		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", toJSON(t, creds))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var got map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "User registered successfully", got["message"])
		assert.Equal(t, "signed.jwt.token", got["token"])
		user, ok := got["user"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "john@example.com", user["email"])
	})

	t.Run("Error - 409 on duplicate email", func(t *testing.T) {
		router := newUserRouter(&mockUserService{err: usererrors.ErrUserAlreadyExists})

		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", toJSON(t, creds))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.JSONEq(t, `{"error":"User already exists"}`, rr.Body.String())
	})

	t.Run("Error - 400 on short password", func(t *testing.T) {
		router := newUserRouter(&mockUserService{})

		req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
			toJSON(t, map[string]string{"email": "john@example.com", "password": "abc"}))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"Password must be at least 6 characters"}`, rr.Body.String())
	})

	t.Run("Error - 400 on invalid email", func(t *testing.T) {
		router := newUserRouter(&mockUserService{})

		req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
			toJSON(t, map[string]string{"email": "not-an-email", "password": "sneakers123"}))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"A valid email address is required"}`, rr.Body.String())
	})

	t.Run("Error - 400 on missing fields", func(t *testing.T) {
		router := newUserRouter(&mockUserService{})

		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader([]byte(`{}`)))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"Email and password are required"}`, rr.Body.String())
	})
}

func Test_UserHandler_Login(t *testing.T) {
	creds := map[string]string{"email": "john@example.com", "password": "sneakers123"}

	t.Run("Success - 200 with token", func(t *testing.T) {
		router := newUserRouter(&mockUserService{result: authResult()})

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", toJSON(t, creds))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var got map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "Login successful", got["message"])
		assert.Equal(t, "signed.jwt.token", got["token"])
	})

	t.Run("Error - 401 on bad credentials", func(t *testing.T) {
		router := newUserRouter(&mockUserService{err: usererrors.ErrInvalidCredentials})

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", toJSON(t, creds))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"error":"Invalid credentials"}`, rr.Body.String())
	})

	t.Run("Error - 500 on store failure", func(t *testing.T) {
		router := newUserRouter(&mockUserService{err: usererrors.ErrFailedToFindUser})

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", toJSON(t, creds))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"error":"Login failed"}`, rr.Body.String())
	})
}
