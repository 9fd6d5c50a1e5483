package auth

import (
	"net/http"

	"rippl-backend/internal/httpx"
)

// LogoutHandler acknowledges a sign-out. Tokens are stateless, so the client
// just forgets its token.
func LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !httpx.Methods(w, r, http.MethodPost) {
			return
		}
		httpx.WriteJSON(w, map[string]any{"ok": true})
	}
}
