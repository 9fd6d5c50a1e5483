package auth

import (
	"context"
	"net/http"
	"strings"

	"rippl-backend/internal/analytics"
	"rippl-backend/internal/httpx"
)

type ctxKey string

const identityKey ctxKey = "identity"

type Middleware struct {
	secret []byte
}

func New(secret []byte) Middleware {
	return Middleware{secret: secret}
}

// Wrap rejects requests without a valid bearer token.
func (m Middleware) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			httpx.WriteError(w, http.StatusUnauthorized, "missing token")
			return
		}

		id, err := ParseToken(m.secret, strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			httpx.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := WithIdentity(r.Context(), id)
		ctx = analytics.WithActor(ctx, id.Subject)

		next(w, r.WithContext(ctx))
	}
}

// Require is Wrap plus a user type check.
func (m Middleware) Require(ut UserType, next http.HandlerFunc) http.HandlerFunc {
	return m.Wrap(func(w http.ResponseWriter, r *http.Request) {
		id, _ := IdentityFromContext(r.Context())
		if id.UserType != ut {
			httpx.WriteError(w, http.StatusForbidden, "requires "+string(ut)+" session")
			return
		}
		next(w, r)
	})
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
