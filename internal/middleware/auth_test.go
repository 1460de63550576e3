package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripmate/backend/internal/middleware"
)

// stubVerifier accepts a single token string and returns a fixed user ID.
type stubVerifier struct {
	token  string
	userID uuid.UUID
}

func (v stubVerifier) Verify(token string) (uuid.UUID, error) {
	if token == v.token {
		return v.userID, nil
	}
	return uuid.Nil, errors.New("bad token")
}

func authedHandler(t *testing.T, want uuid.UUID) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := middleware.ActorID(r.Context())
		require.True(t, ok, "actor must be in context behind the authenticator")
		assert.Equal(t, want, got)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticator_ValidToken(t *testing.T) {
	userID := uuid.New()
	authn := middleware.NewAuthenticator(stubVerifier{token: "good", userID: userID})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()

	authn(authedHandler(t, userID)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticator_Rejections(t *testing.T) {
	authn := middleware.NewAuthenticator(stubVerifier{token: "good", userID: uuid.New()})
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler must not be reached")
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic Zm9vOmJhcg=="},
		{"empty token", "Bearer "},
		{"invalid token", "Bearer forged"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			authn(next).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "unauthorized")
		})
	}
}

func TestActorID_AbsentWithoutAuthenticator(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := middleware.ActorID(req.Context())

	assert.False(t, ok)
}
