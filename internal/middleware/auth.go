package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ctxKey is unexported so no other package can forge context values.
type ctxKey int

const actorKey ctxKey = 0

// TokenVerifier is the slice of auth.TokenManager the middleware depends on.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

// NewAuthenticator returns a middleware that requires a "Bearer" token in
// the Authorization header, verifies it, and stores the actor's user ID in
// the request context. Requests without a valid token get 401 and never
// reach the next handler.
func NewAuthenticator(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				unauthorized(w)
				return
			}

			actorID, err := tokens.Verify(token)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), actorKey, actorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorID returns the authenticated user's ID from the request context.
// The second return is false for requests that did not pass the
// authenticator — handlers mounted behind it can ignore it.
func ActorID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(actorKey).(uuid.UUID)
	return id, ok
}

// WithActor returns a context carrying the given actor ID. Intended for
// handler tests that bypass the authenticator.
func WithActor(ctx context.Context, actorID uuid.UUID) context.Context {
	return context.WithValue(ctx, actorKey, actorID)
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	//nolint:errcheck
	w.Write([]byte(`{"error":{"code":"unauthorized","message":"missing or invalid token"}}`))
}
