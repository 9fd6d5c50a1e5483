package auth

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"rippl-backend/internal/httpx"
)

// SessionHandler hands out a token for the requested side of the marketplace.
// There are no credentials: signing in is a redirect in the product.
func SessionHandler(secret []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !httpx.Methods(w, r, http.MethodPost) {
			return
		}

		var body struct {
			UserType string `json:"user_type"`
			Subject  string `json:"subject"`
		}
		if !httpx.DecodeJSON(w, r, &body) {
			return
		}

		ut, err := ParseUserType(strings.ToLower(strings.TrimSpace(body.UserType)))
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		sub := strings.TrimSpace(body.Subject)
		if sub == "" {
			sub = uuid.NewString()
		}

		id := Identity{Subject: sub, UserType: ut}
		token, err := GenerateToken(secret, id)
		if err != nil {
			httpx.WriteError(w, http.StatusInternalServerError, "token error")
			return
		}

		httpx.WriteJSON(w, map[string]any{
			"token":     token,
			"subject":   id.Subject,
			"user_type": id.UserType,
		})
	}
}

// WhoAmIHandler echoes the caller's identity.
func WhoAmIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		httpx.WriteJSON(w, id)
	}
}
