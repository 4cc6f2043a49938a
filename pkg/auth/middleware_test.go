package auth

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avlasov/sneakerhub/pkg/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Middleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := NewManager("super-secret", time.Hour)

	validToken, err := tokens.Issue("123e4567-e89b-12d3-a456-426614174000", "john@example.com")
	require.NoError(t, err)

	expiredToken, err := NewManager("super-secret", -time.Minute).Issue("user-1", "john@example.com")
	require.NoError(t, err)

	testCases := []struct {
		name         string
		authHeader   string
		expectedCode int
		expectedUser string
	}{
		{
			name:         "Success - valid token",
			authHeader:   "Bearer " + validToken,
			expectedCode: http.StatusOK,
			expectedUser: "123e4567-e89b-12d3-a456-426614174000",
		},
		{
			name:         "Error - missing header",
			authHeader:   "",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "Error - no bearer prefix",
			authHeader:   validToken,
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "Error - expired token",
			authHeader:   "Bearer " + expiredToken,
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "Error - garbage token",
			authHeader:   "Bearer not.a.token",
			expectedCode: http.StatusForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var gotUser string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, _ = web.UserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rec := httptest.NewRecorder()

			Middleware(tokens, logger)(next).ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedCode, rec.Code)
			if tc.expectedUser != "" {
				assert.Equal(t, tc.expectedUser, gotUser)
			}
		})
	}
}
